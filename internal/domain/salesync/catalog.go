package salesync

import (
	"fmt"

	"github.com/erp/saleproject/internal/domain/catalog"
	"github.com/erp/saleproject/internal/domain/shared"
	"github.com/erp/saleproject/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Units names the units the synchronization relies on
type Units struct {
	Hour   string
	Second string
}

// DefaultUnits returns the seeded hour and second codes
func DefaultUnits() Units {
	return Units{Hour: valueobject.UoMHour, Second: valueobject.UoMSecond}
}

// Catalog is the read-only view of products and units a synchronization works
// with. It is filled by the caller before the walk starts.
type Catalog struct {
	products map[uuid.UUID]*catalog.Product
	uoms     map[string]valueobject.UoM
	units    Units
}

// NewCatalog indexes the given products and units
func NewCatalog(products []catalog.Product, uoms []valueobject.UoM, units Units) *Catalog {
	c := &Catalog{
		products: make(map[uuid.UUID]*catalog.Product, len(products)),
		uoms:     make(map[string]valueobject.UoM, len(uoms)),
		units:    units,
	}
	for i := range products {
		c.products[products[i].ID] = &products[i]
	}
	for _, u := range uoms {
		c.uoms[u.Code()] = u
	}
	return c
}

// Product finds a product by ID
func (c *Catalog) Product(id uuid.UUID) (*catalog.Product, bool) {
	p, ok := c.products[id]
	return p, ok
}

// UoM finds a unit by code
func (c *Catalog) UoM(code string) (valueobject.UoM, error) {
	u, ok := c.uoms[code]
	if !ok {
		return valueobject.UoM{}, shared.NewDomainError("UOM_NOT_FOUND", fmt.Sprintf("Unit of measure %q not found", code))
	}
	return u, nil
}

// Hour returns the unit service lines are generated in
func (c *Catalog) Hour() (valueobject.UoM, error) {
	return c.UoM(c.units.Hour)
}
