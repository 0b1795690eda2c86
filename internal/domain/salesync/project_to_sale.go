package salesync

import (
	"fmt"

	"github.com/erp/saleproject/internal/domain/catalog"
	"github.com/erp/saleproject/internal/domain/project"
	"github.com/erp/saleproject/internal/domain/sale"
	"github.com/erp/saleproject/internal/domain/shared"
	"github.com/erp/saleproject/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateLinesFromProject appends one sale line per node below the root of
// tree, depth first. A line is placed under the line generated for the
// parent node; children of the root become top-level lines. Each line is
// linked to the node it was generated from.
func (s *Synchronizer) CreateLinesFromProject(sl *sale.Sale, tree *project.Tree) ([]uuid.UUID, error) {
	if !sl.CanLoadProject() {
		return nil, shared.NewDomainError(sale.ErrCodeCannotLoadProject, fmt.Sprintf(
			"Project lines can only be loaded into draft sale %q without lines", sl.Name()))
	}
	root := tree.Root()
	if root == nil || root.ID != *sl.WorkID {
		return nil, shared.NewDomainError(sale.ErrCodeInvalidWork, "Project tree does not match the sale project")
	}

	lineFor := make(map[uuid.UUID]uuid.UUID)
	var created []uuid.UUID
	err := tree.Walk(root.ID, func(node, parent *project.Work, _ int) error {
		spec, err := s.SaleLineFromTask(node)
		if err != nil {
			return err
		}
		if id, ok := lineFor[parent.ID]; ok {
			spec.ParentID = &id
		}
		line, err := sl.AddLine(spec)
		if err != nil {
			return err
		}
		if err := sl.LinkTask(line.ID, node.ID); err != nil {
			return err
		}
		node.LinkSaleLine(line.ID)
		lineFor[node.ID] = line.ID
		created = append(created, line.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// SaleLineFromTask returns the sale line fields a node turns into. Project
// nodes with nothing to bill become title lines.
func (s *Synchronizer) SaleLineFromTask(task *project.Work) (sale.LineSpec, error) {
	if task.IsProject() && !task.HasQuantity() {
		return sale.LineSpec{Type: sale.LineTypeTitle, Description: task.Name}, nil
	}

	var product *catalog.Product
	if pid := task.SaleProductID(); pid != nil {
		p, ok := s.catalog.Product(*pid)
		if !ok {
			return sale.LineSpec{}, shared.NewDomainError("PRODUCT_NOT_FOUND", fmt.Sprintf(
				"Product of task %q not found", task.Name))
		}
		if !p.CanBeSold() {
			return sale.LineSpec{}, sale.NewProductNotSalableError(p.Name, task.Name)
		}
		product = p
	}

	spec := sale.LineSpec{
		Type:        sale.LineTypeLine,
		ProductID:   task.SaleProductID(),
		Description: task.Name,
		UnitPrice:   task.ListPrice,
		CostPrice:   task.CostPrice,
	}

	if task.IsService() {
		hour, err := s.catalog.Hour()
		if err != nil {
			return sale.LineSpec{}, err
		}
		qty, err := valueobject.FromDuration(task.EffortDuration, hour)
		if err != nil {
			return sale.LineSpec{}, err
		}
		spec.Quantity = qty
		spec.UnitCode = hour.Code()
	} else {
		if task.UoMCode == "" {
			return sale.LineSpec{}, sale.NewMissingUnitError(task.Name)
		}
		spec.Quantity = task.Quantity
		spec.UnitCode = task.UoMCode
	}

	if product != nil {
		if spec.UnitPrice.IsZero() {
			spec.UnitPrice = product.ListPrice
		}
		if spec.CostPrice.IsZero() {
			spec.CostPrice = product.CostPrice
		}
	}
	if spec.Quantity.IsNegative() {
		spec.Quantity = decimal.Zero
	}
	return spec, nil
}
