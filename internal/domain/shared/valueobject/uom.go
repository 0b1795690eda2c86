package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Unit categories. Quantities only convert between units of the same category.
const (
	CategoryTime   = "time"
	CategoryUnit   = "unit"
	CategoryWeight = "weight"
	CategoryLength = "length"
)

// Seeded unit codes
const (
	UoMSecond = "S"
	UoMMinute = "MIN"
	UoMHour   = "H"
	UoMDay    = "D"
	UoMUnit   = "U"
)

var (
	ErrUoMCategoryMismatch = errors.New("units belong to different categories")
	ErrUoMNotTime          = errors.New("unit is not a time unit")
	ErrUoMInvalid          = errors.New("invalid unit of measure")
	ErrDurationOverflow    = errors.New("quantity exceeds the representable duration")
)

// UoM is an immutable unit of measure.
// Rate is the number of category reference units in one of this unit;
// the reference unit of the time category is the second.
type UoM struct {
	code     string
	name     string
	category string
	rate     decimal.Decimal
	digits   int32
}

// NewUoM creates a unit of measure.
// Code is normalized to upper case, rate must be positive and digits is the
// number of decimal places quantities expressed in this unit are rounded to.
func NewUoM(code, name, category string, rate decimal.Decimal, digits int32) (UoM, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	name = strings.TrimSpace(name)
	category = strings.TrimSpace(strings.ToLower(category))

	if code == "" || len(code) > 20 {
		return UoM{}, fmt.Errorf("%w: code must be 1-20 characters", ErrUoMInvalid)
	}
	if name == "" {
		return UoM{}, fmt.Errorf("%w: name cannot be empty", ErrUoMInvalid)
	}
	if category == "" {
		return UoM{}, fmt.Errorf("%w: category cannot be empty", ErrUoMInvalid)
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return UoM{}, fmt.Errorf("%w: rate must be positive", ErrUoMInvalid)
	}
	if digits < 0 || digits > 10 {
		return UoM{}, fmt.Errorf("%w: digits must be between 0 and 10", ErrUoMInvalid)
	}

	return UoM{
		code:     code,
		name:     name,
		category: category,
		rate:     rate,
		digits:   digits,
	}, nil
}

// MustNewUoM creates a UoM and panics on error.
func MustNewUoM(code, name, category string, rate decimal.Decimal, digits int32) UoM {
	u, err := NewUoM(code, name, category, rate, digits)
	if err != nil {
		panic(err)
	}
	return u
}

// Code returns the unit code
func (u UoM) Code() string { return u.code }

// Name returns the display name
func (u UoM) Name() string { return u.name }

// Category returns the unit category
func (u UoM) Category() string { return u.category }

// Rate returns the number of reference units in one unit
func (u UoM) Rate() decimal.Decimal { return u.rate }

// Digits returns the rounding precision
func (u UoM) Digits() int32 { return u.digits }

// IsZero returns true for the zero value
func (u UoM) IsZero() bool {
	return u.code == ""
}

// IsTime reports whether the unit measures time
func (u UoM) IsTime() bool {
	return u.category == CategoryTime
}

// SameCategory reports whether quantities convert between u and other
func (u UoM) SameCategory(other UoM) bool {
	return u.category == other.category
}

// Round rounds a quantity to the unit precision
func (u UoM) Round(qty decimal.Decimal) decimal.Decimal {
	return qty.Round(u.digits)
}

// ComputeQty converts qty expressed in from into the unit to.
// The result is rounded to the precision of the target unit.
func ComputeQty(from UoM, qty decimal.Decimal, to UoM) (decimal.Decimal, error) {
	if from.IsZero() || to.IsZero() {
		return decimal.Zero, ErrUoMInvalid
	}
	if from.code == to.code {
		return to.Round(qty), nil
	}
	if !from.SameCategory(to) {
		return decimal.Zero, fmt.Errorf("%w: %s (%s) to %s (%s)",
			ErrUoMCategoryMismatch, from.code, from.category, to.code, to.category)
	}
	reference := qty.Mul(from.rate)
	return to.Round(reference.Div(to.rate)), nil
}

// ToDuration converts a quantity of a time unit into a duration
func ToDuration(from UoM, qty decimal.Decimal) (time.Duration, error) {
	if !from.IsTime() {
		return 0, fmt.Errorf("%w: %s", ErrUoMNotTime, from.code)
	}
	seconds := qty.Mul(from.rate)
	nanos := seconds.Mul(decimal.NewFromInt(int64(time.Second))).Round(0)
	if nanos.Abs().GreaterThan(maxNanos) {
		return 0, fmt.Errorf("%w: %s %s", ErrDurationOverflow, qty.String(), from.code)
	}
	return time.Duration(nanos.IntPart()), nil
}

var maxNanos = decimal.NewFromInt(math.MaxInt64)

// AddDuration sums two durations, failing instead of wrapping around
func AddDuration(a, b time.Duration) (time.Duration, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, fmt.Errorf("%w: %s + %s", ErrDurationOverflow, a, b)
	}
	return a + b, nil
}

// FromDuration expresses a duration in the given time unit
func FromDuration(d time.Duration, to UoM) (decimal.Decimal, error) {
	if !to.IsTime() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUoMNotTime, to.code)
	}
	seconds := decimal.NewFromInt(int64(d)).Div(decimal.NewFromInt(int64(time.Second)))
	return to.Round(seconds.Div(to.rate)), nil
}

// String returns a string representation of the UoM.
func (u UoM) String() string {
	return fmt.Sprintf("%s (%s, %s x%s)", u.code, u.name, u.category, u.rate.String())
}

// MarshalJSON implements json.Marshaler.
func (u UoM) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Code     string `json:"code"`
		Name     string `json:"name"`
		Category string `json:"category"`
		Rate     string `json:"rate"`
		Digits   int32  `json:"digits"`
	}{
		Code:     u.code,
		Name:     u.name,
		Category: u.category,
		Rate:     u.rate.String(),
		Digits:   u.digits,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (u *UoM) UnmarshalJSON(data []byte) error {
	var v struct {
		Code     string `json:"code"`
		Name     string `json:"name"`
		Category string `json:"category"`
		Rate     string `json:"rate"`
		Digits   int32  `json:"digits"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	rate, err := decimal.NewFromString(v.Rate)
	if err != nil {
		return fmt.Errorf("invalid rate: %w", err)
	}
	parsed, err := NewUoM(v.Code, v.Name, v.Category, rate, v.Digits)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// Value implements driver.Valuer. Only the code is stored on referencing rows.
func (u UoM) Value() (driver.Value, error) {
	return u.code, nil
}
