// Package salesync keeps a sale's line tree and a project's work tree in step.
//
// Sale to project: every priced line becomes, or reuses, a task placed under
// the task of its parent line. Project to sale: every node below the project
// root becomes a sale line placed under the line of its parent node.
// Lines and nodes are correlated through SaleLine.TaskID only.
package salesync

import (
	"errors"
	"fmt"

	"github.com/erp/saleproject/internal/domain/project"
	"github.com/erp/saleproject/internal/domain/sale"
	"github.com/erp/saleproject/internal/domain/shared"
	"github.com/erp/saleproject/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Synchronizer runs the tree walks against an explicit catalog
type Synchronizer struct {
	catalog *Catalog
}

// New creates a Synchronizer
func New(c *Catalog) *Synchronizer {
	return &Synchronizer{catalog: c}
}

// ProjectResult describes what a sale to project walk changed
type ProjectResult struct {
	Created []*project.Work
	Updated []*project.Work
}

// NewProjectForSale builds the project root generated for a sale
func NewProjectForSale(sl *sale.Sale) (*project.Work, error) {
	partyID := sl.PartyID
	root, err := project.NewProject(sl.CompanyID, sl.Name(), &partyID)
	if err != nil {
		return nil, err
	}
	if err := root.SetInvoiceMethod(project.InvoiceMethodProgress); err != nil {
		return nil, err
	}
	root.InvoiceProductType = project.InvoiceProductService
	root.SetQuantity(decimal.Zero)
	root.CreatedBy = sl.CreatedBy
	return root, nil
}

func convertUoMError(err error, line *sale.SaleLine) error {
	if errors.Is(err, valueobject.ErrUoMCategoryMismatch) {
		return shared.NewDomainError("UOM_CATEGORY_MISMATCH", fmt.Sprintf(
			"Unit %q of sale line %q cannot be converted: %v", line.UnitCode, line.Name(), err))
	}
	if errors.Is(err, valueobject.ErrUoMNotTime) {
		return sale.NewUnsupportedServiceUnitError(line.Name())
	}
	if errors.Is(err, valueobject.ErrDurationOverflow) {
		return sale.NewEffortOutOfRangeError(line.Name())
	}
	return err
}
