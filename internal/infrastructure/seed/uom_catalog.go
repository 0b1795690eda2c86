// Package seed loads the reference data installed with the service.
package seed

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/erp/saleproject/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed uoms.yaml
var defaultUoMCatalog []byte

// uomCatalog is the YAML layout of a units of measure file
type uomCatalog struct {
	UoMs []uomEntry `yaml:"uoms"`
}

type uomEntry struct {
	Code     string `yaml:"code"`
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
	Rate     string `yaml:"rate"`
	Digits   int32  `yaml:"digits"`
}

// LoadUoMCatalog reads units of measure from path.
// An empty path loads the catalog embedded in the binary.
func LoadUoMCatalog(path string) ([]valueobject.UoM, error) {
	if path == "" {
		return ParseUoMCatalog(bytes.NewReader(defaultUoMCatalog))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open uom catalog: %w", err)
	}
	defer f.Close()

	return ParseUoMCatalog(f)
}

// ParseUoMCatalog decodes a YAML catalog. Codes must be unique.
func ParseUoMCatalog(r io.Reader) ([]valueobject.UoM, error) {
	var catalog uomCatalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&catalog); err != nil {
		return nil, fmt.Errorf("decode uom catalog: %w", err)
	}
	if len(catalog.UoMs) == 0 {
		return nil, fmt.Errorf("uom catalog is empty")
	}

	uoms := make([]valueobject.UoM, 0, len(catalog.UoMs))
	seen := make(map[string]bool, len(catalog.UoMs))
	for i, e := range catalog.UoMs {
		rate, err := decimal.NewFromString(e.Rate)
		if err != nil {
			return nil, fmt.Errorf("uom %d (%s): invalid rate %q: %w", i, e.Code, e.Rate, err)
		}
		u, err := valueobject.NewUoM(e.Code, e.Name, e.Category, rate, e.Digits)
		if err != nil {
			return nil, fmt.Errorf("uom %d (%s): %w", i, e.Code, err)
		}
		if seen[u.Code()] {
			return nil, fmt.Errorf("uom %s is declared twice", u.Code())
		}
		seen[u.Code()] = true
		uoms = append(uoms, u)
	}
	return uoms, nil
}

// RequireUnits checks that every code is in uoms and belongs to category
func RequireUnits(uoms []valueobject.UoM, category string, codes ...string) error {
	byCode := make(map[string]valueobject.UoM, len(uoms))
	for _, u := range uoms {
		byCode[u.Code()] = u
	}
	for _, code := range codes {
		u, ok := byCode[code]
		if !ok {
			return fmt.Errorf("uom %s is not in the catalog", code)
		}
		if u.Category() != category {
			return fmt.Errorf("uom %s is in category %s, want %s", code, u.Category(), category)
		}
	}
	return nil
}
