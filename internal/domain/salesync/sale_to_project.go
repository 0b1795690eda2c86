package salesync

import (
	"fmt"
	"time"

	"github.com/erp/saleproject/internal/domain/catalog"
	"github.com/erp/saleproject/internal/domain/project"
	"github.com/erp/saleproject/internal/domain/sale"
	"github.com/erp/saleproject/internal/domain/shared"
	"github.com/erp/saleproject/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProjectFromSale mirrors the priced lines of sl into tree.
//
// Lines already linked to a node of tree reuse it; other lines get a new task
// attached under the node of their nearest mirrored ancestor line, or under
// the root. Title lines and lines without quantity are not mirrored, and
// neither are the lines below them. external holds the lines of other sales
// linked to nodes of tree; they contribute to the aggregate quantities.
//
// Running it twice over the same sale leaves the tree unchanged.
func (s *Synchronizer) CreateProjectFromSale(sl *sale.Sale, tree *project.Tree, external []sale.SaleLine) (*ProjectResult, error) {
	root := tree.Root()
	if root == nil {
		return nil, shared.NewDomainError(sale.ErrCodeInvalidWork, "Project tree is empty")
	}
	if root.CompanyID != sl.CompanyID {
		return nil, shared.NewDomainError(sale.ErrCodeInvalidWork, "Project belongs to another company")
	}

	w := &projectWalk{
		sync:     s,
		sale:     sl,
		tree:     tree,
		external: external,
		touched:  make(map[uuid.UUID]bool),
		result:   &ProjectResult{},
	}
	if err := w.walk(nil, root.ID); err != nil {
		return nil, err
	}
	return w.result, nil
}

type projectWalk struct {
	sync     *Synchronizer
	sale     *sale.Sale
	tree     *project.Tree
	external []sale.SaleLine
	touched  map[uuid.UUID]bool
	result   *ProjectResult
}

func (w *projectWalk) walk(parentLine *uuid.UUID, parentNode uuid.UUID) error {
	for _, lineID := range w.sale.ChildLines(parentLine) {
		line, _ := w.sale.Line(lineID)
		id := lineID

		// unmirrored lines close their whole subtree
		if !line.IsLine() || line.Quantity.IsZero() {
			continue
		}

		task, err := w.taskFor(&line, parentNode)
		if err != nil {
			return err
		}
		if err := w.aggregate(task); err != nil {
			return err
		}
		if err := w.walk(&id, task.ID); err != nil {
			return err
		}
	}
	return nil
}

// taskFor returns the node line feeds, creating and attaching it when missing
func (w *projectWalk) taskFor(line *sale.SaleLine, parentNode uuid.UUID) (*project.Work, error) {
	if line.TaskID != nil {
		task, ok := w.tree.Node(*line.TaskID)
		if !ok {
			return nil, shared.NewDomainError(sale.ErrCodeInvalidWork, fmt.Sprintf(
				"Sale line %q is linked to a task outside project %q", line.Name(), w.tree.Root().Name))
		}
		if pid := task.SaleProductID(); pid != nil && line.ProductID != nil && *pid != *line.ProductID {
			return nil, shared.NewDomainError(sale.ErrCodeTaskProductMismatch, fmt.Sprintf(
				"Sale line %q and task %q have different products", line.Name(), task.Name))
		}
		task.LinkSaleLine(line.ID)
		if !w.touched[task.ID] {
			w.result.Updated = append(w.result.Updated, task)
		}
		w.touched[task.ID] = true
		return task, nil
	}

	task, err := w.sync.TaskFromLine(w.sale, line)
	if err != nil {
		return nil, err
	}
	if err := w.tree.Attach(parentNode, task); err != nil {
		return nil, err
	}
	if err := w.sale.LinkTask(line.ID, task.ID); err != nil {
		return nil, err
	}
	task.LinkSaleLine(line.ID)
	w.touched[task.ID] = true
	w.result.Created = append(w.result.Created, task)
	return task, nil
}

// aggregate recomputes the quantity of task from every line linked to it
func (w *projectWalk) aggregate(task *project.Work) error {
	lines := w.linkedLines(task.ID)
	if task.IsService() {
		var total time.Duration
		for i := range lines {
			d, err := w.sync.lineDuration(&lines[i])
			if err != nil {
				return err
			}
			if total, err = valueobject.AddDuration(total, d); err != nil {
				return convertUoMError(err, &lines[i])
			}
		}
		task.SetEffortDuration(total)
		hour, err := w.sync.catalog.Hour()
		if err != nil {
			return err
		}
		hours, err := valueobject.FromDuration(total, hour)
		if err != nil {
			return err
		}
		task.UoMCode = hour.Code()
		task.SetQuantity(hours)
		return nil
	}

	to, err := w.sync.catalog.UoM(task.UoMCode)
	if err != nil {
		return err
	}
	total := decimal.Zero
	for i := range lines {
		line := &lines[i]
		if !line.HasUnit() {
			return sale.NewMissingUnitError(line.Name())
		}
		from, err := w.sync.catalog.UoM(line.UnitCode)
		if err != nil {
			return err
		}
		qty, err := valueobject.ComputeQty(from, line.Quantity, to)
		if err != nil {
			return convertUoMError(err, line)
		}
		total = total.Add(qty)
	}
	task.SetQuantity(total)
	return nil
}

// linkedLines collects the priced lines pointing at taskID. Lines of the sale
// being processed take precedence over stored copies of the same line.
func (w *projectWalk) linkedLines(taskID uuid.UUID) []sale.SaleLine {
	seen := make(map[uuid.UUID]bool)
	var out []sale.SaleLine
	for _, line := range w.sale.Lines {
		if line.IsLine() && line.TaskID != nil && *line.TaskID == taskID {
			seen[line.ID] = true
			out = append(out, line)
		}
	}
	for _, line := range w.external {
		if seen[line.ID] || line.SaleID == w.sale.ID {
			continue
		}
		if line.IsLine() && line.TaskID != nil && *line.TaskID == taskID {
			seen[line.ID] = true
			out = append(out, line)
		}
	}
	return out
}

// TaskFromLine builds the detached node a sale line turns into. Title lines
// give project nodes, priced lines give tasks and other line types give nil.
func (s *Synchronizer) TaskFromLine(sl *sale.Sale, line *sale.SaleLine) (*project.Work, error) {
	switch line.Type {
	case sale.LineTypeTitle:
		return project.NewWork(sl.CompanyID, project.WorkTypeProject, line.Name())
	case sale.LineTypeLine:
	default:
		return nil, nil
	}

	var product *catalog.Product
	if line.ProductID != nil {
		p, ok := s.catalog.Product(*line.ProductID)
		if !ok {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", fmt.Sprintf(
				"Product of sale line %q not found", line.Name()))
		}
		product = p
	}

	name := line.Description
	if name == "" && product != nil {
		name = product.Name
	}
	if name == "" {
		name = line.Name()
	}

	task, err := project.NewWork(sl.CompanyID, project.WorkTypeTask, name)
	if err != nil {
		return nil, err
	}
	partyID := sl.PartyID
	task.PartyID = &partyID
	task.CreatedBy = sl.CreatedBy

	if product == nil || product.IsService() {
		effort, err := s.lineDuration(line)
		if err != nil {
			return nil, err
		}
		if err := task.SetService(line.ProductID, effort); err != nil {
			return nil, err
		}
		hour, err := s.catalog.Hour()
		if err != nil {
			return nil, err
		}
		hours, err := valueobject.FromDuration(effort, hour)
		if err != nil {
			return nil, err
		}
		task.UoMCode = hour.Code()
		task.SetQuantity(hours)
	} else {
		if !line.HasUnit() {
			return nil, sale.NewMissingUnitError(line.Name())
		}
		if _, err := s.catalog.UoM(line.UnitCode); err != nil {
			return nil, err
		}
		if err := task.SetGoods(product.ID, line.UnitCode, line.Quantity, line.UnitPrice); err != nil {
			return nil, err
		}
	}

	if err := task.SetPrices(line.UnitPrice, line.CostPrice); err != nil {
		return nil, err
	}
	return task, nil
}

// lineDuration expresses the quantity of a service line as a duration
func (s *Synchronizer) lineDuration(line *sale.SaleLine) (time.Duration, error) {
	if !line.HasUnit() {
		return 0, sale.NewMissingUnitError(line.Name())
	}
	from, err := s.catalog.UoM(line.UnitCode)
	if err != nil {
		return 0, err
	}
	d, err := valueobject.ToDuration(from, line.Quantity)
	if err != nil {
		return 0, convertUoMError(err, line)
	}
	return d, nil
}
