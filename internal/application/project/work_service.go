package project

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/erp/saleproject/internal/domain/catalog"
	"github.com/erp/saleproject/internal/domain/project"
	"github.com/erp/saleproject/internal/domain/sale"
	"github.com/erp/saleproject/internal/domain/shared"
	"github.com/erp/saleproject/internal/infrastructure/logger"
	"github.com/erp/saleproject/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	nanosPerHour   = decimal.NewFromInt(int64(time.Hour))
	maxEffortNanos = decimal.NewFromInt(math.MaxInt64)
)

// WorkService handles project tree operations
type WorkService struct {
	workRepo       project.WorkRepository
	saleRepo       sale.SaleRepository
	productRepo    catalog.ProductRepository
	uomRepo        catalog.UoMRepository
	eventPublisher shared.EventPublisher
}

// NewWorkService creates a new WorkService
func NewWorkService(
	workRepo project.WorkRepository,
	saleRepo sale.SaleRepository,
	productRepo catalog.ProductRepository,
	uomRepo catalog.UoMRepository,
) *WorkService {
	return &WorkService{
		workRepo:    workRepo,
		saleRepo:    saleRepo,
		productRepo: productRepo,
		uomRepo:     uomRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *WorkService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateProject creates an empty project root
func (s *WorkService) CreateProject(ctx context.Context, companyID uuid.UUID, req CreateProjectRequest) (*WorkResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "project", "create")
	defer span.End()

	w, err := project.NewProject(companyID, req.Name, req.PartyID)
	if err != nil {
		return nil, err
	}
	if req.InvoiceMethod != "" {
		if err := w.SetInvoiceMethod(project.InvoiceMethod(req.InvoiceMethod)); err != nil {
			return nil, err
		}
	}
	if req.CreatedBy != nil {
		w.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.workRepo.Save(ctx, w); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.publishEvents(ctx, w)

	telemetry.SetAttributes(span, telemetry.SpanAttrProjectID, w.ID.String())
	logger.L(ctx).Info("project created",
		zap.String("project_id", w.ID.String()),
		zap.String("name", w.Name),
	)

	response := ToWorkResponse(w)
	return &response, nil
}

// GetTree returns a project with all its nodes
func (s *WorkService) GetTree(ctx context.Context, companyID, projectID uuid.UUID) (*TreeNodeResponse, error) {
	tree, err := s.findTree(ctx, companyID, projectID)
	if err != nil {
		return nil, err
	}
	response := ToTreeResponse(tree)
	return &response, nil
}

// List retrieves project roots with filtering and pagination
func (s *WorkService) List(ctx context.Context, companyID uuid.UUID, filter ProjectListFilter) ([]WorkResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.PartyID != nil {
		domainFilter.Filters["party_id"] = *filter.PartyID
	}

	works, err := s.workRepo.FindRootsForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.workRepo.CountRootsForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToWorkResponses(works), total, nil
}

// AddTask attaches a new node under the project root or under one of its nodes
func (s *WorkService) AddTask(ctx context.Context, companyID, projectID uuid.UUID, req AddTaskRequest) (*TreeNodeResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "project", "add_task",
		telemetry.WithAttribute(telemetry.SpanAttrProjectID, projectID.String()))
	defer span.End()

	tree, err := s.findTree(ctx, companyID, projectID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	parentID := tree.Root().ID
	if req.ParentID != nil {
		if !tree.Contains(*req.ParentID) {
			return nil, shared.NewDomainError("INVALID_PARENT", "Parent work does not belong to this project")
		}
		parentID = *req.ParentID
	}

	workType := project.WorkTypeTask
	if req.Type != "" {
		workType = project.WorkType(req.Type)
	}
	w, err := project.NewWork(companyID, workType, req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.applyProduct(ctx, companyID, w, req); err != nil {
		return nil, err
	}
	if err := tree.Attach(parentID, w); err != nil {
		return nil, err
	}

	if err := s.workRepo.SaveTree(ctx, tree); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	logger.L(ctx).Info("task added to project",
		zap.String("project_id", projectID.String()),
		zap.String("task_id", w.ID.String()),
		zap.String("parent_id", parentID.String()),
	)
	telemetry.SetOK(span)

	response := ToTreeResponse(tree)
	return &response, nil
}

// applyProduct sets the billing fields of a new node from the request and its product
func (s *WorkService) applyProduct(ctx context.Context, companyID uuid.UUID, w *project.Work, req AddTaskRequest) error {
	var product *catalog.Product
	if req.ProductID != nil {
		p, err := s.productRepo.FindByIDForCompany(ctx, companyID, *req.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
			}
			return err
		}
		product = p
	}

	listPrice, costPrice := decimal.Zero, req.CostPrice
	if product != nil {
		listPrice = product.ListPrice
		if costPrice.IsZero() {
			costPrice = product.CostPrice
		}
	}

	switch project.InvoiceProductType(req.ProductType) {
	case project.InvoiceProductGoods:
		if product == nil {
			return shared.NewDomainError("INVALID_PRODUCT", "A goods task requires a product")
		}
		if product.IsService() {
			return shared.NewDomainError("INVALID_PRODUCT", fmt.Sprintf("Product %q is a service", product.Code))
		}
		unit := req.Unit
		if unit == "" {
			unit = product.DefaultUoMCode
		}
		uom, err := s.uomRepo.FindByCode(ctx, unit)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("UOM_NOT_FOUND", fmt.Sprintf("Unit of measure %q not found", unit))
			}
			return err
		}
		if err := w.SetGoods(product.ID, uom.Code(), uom.Round(req.Quantity), listPrice); err != nil {
			return err
		}
	default:
		if product != nil && !product.IsService() {
			return shared.NewDomainError("INVALID_PRODUCT", fmt.Sprintf("Product %q is not a service", product.Code))
		}
		if req.EffortHours.IsNegative() {
			return shared.NewDomainError("INVALID_EFFORT", "Effort hours cannot be negative")
		}
		nanos := req.EffortHours.Mul(nanosPerHour).Round(0)
		if nanos.GreaterThan(maxEffortNanos) {
			return shared.NewDomainError("INVALID_EFFORT", "Effort hours are too large")
		}
		effort := time.Duration(nanos.IntPart())
		var productID *uuid.UUID
		if product != nil {
			productID = &product.ID
		}
		if err := w.SetService(productID, effort); err != nil {
			return err
		}
	}

	return w.SetPrices(listPrice, costPrice)
}

// Cost computes the cost of every node of a project. Nodes fed by sale lines
// are costed at the cost price of their first line.
func (s *WorkService) Cost(ctx context.Context, companyID, projectID uuid.UUID) (*CostResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "project", "cost",
		telemetry.WithAttribute(telemetry.SpanAttrProjectID, projectID.String()))
	defer span.End()

	tree, err := s.findTree(ctx, companyID, projectID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	var linked []uuid.UUID
	for _, n := range tree.Nodes() {
		if n.HasSaleLines() {
			linked = append(linked, n.ID)
		}
	}
	lines, err := s.saleRepo.FindLinesByTasks(ctx, companyID, linked)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	lineCosts := make(map[uuid.UUID]decimal.Decimal, len(lines))
	for i := range lines {
		lineCosts[lines[i].ID] = lines[i].CostPrice
	}

	breakdown := project.NewCostCalculator(lineCosts).Breakdown(tree)
	root := tree.Root()
	response := &CostResponse{
		ProjectID: root.ID,
		Total:     breakdown[root.ID],
		Nodes:     make([]NodeCostResponse, 0, tree.Len()),
	}
	for _, n := range tree.Nodes() {
		response.Nodes = append(response.Nodes, NodeCostResponse{
			ID:       n.ID,
			ParentID: n.ParentID,
			Name:     n.Name,
			Cost:     breakdown[n.ID],
		})
	}
	telemetry.SetOK(span)
	return response, nil
}

// Copy duplicates a whole project. The copy is a fresh tree with no sale
// lines linked and its progress reset.
func (s *WorkService) Copy(ctx context.Context, companyID, projectID uuid.UUID) (*TreeNodeResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "project", "copy",
		telemetry.WithAttribute(telemetry.SpanAttrProjectID, projectID.String()))
	defer span.End()

	original, err := s.findTree(ctx, companyID, projectID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	root := original.Root().Copy()
	root.AddDomainEvent(project.NewProjectCreatedEvent(root))
	copied := project.NewTree(root)

	mapped := map[uuid.UUID]uuid.UUID{original.Root().ID: root.ID}
	err = original.Walk(original.Root().ID, func(node, parent *project.Work, _ int) error {
		c := node.Copy()
		if err := copied.Attach(mapped[parent.ID], c); err != nil {
			return err
		}
		mapped[node.ID] = c.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.workRepo.SaveTree(ctx, copied); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.publishEvents(ctx, root)

	logger.L(ctx).Info("project copied",
		zap.String("project_id", projectID.String()),
		zap.String("copy_id", root.ID.String()),
		zap.Int("nodes", copied.Len()),
	)
	telemetry.SetOK(span)

	response := ToTreeResponse(copied)
	return &response, nil
}

// findTree loads a tree and checks that the ID names its root
func (s *WorkService) findTree(ctx context.Context, companyID, projectID uuid.UUID) (*project.Tree, error) {
	tree, err := s.workRepo.FindTree(ctx, companyID, projectID)
	if err != nil {
		return nil, err
	}
	if tree.Root() == nil || tree.Root().ID != projectID {
		return nil, shared.ErrNotFound
	}
	return tree, nil
}

// publishEvents publishes and clears the pending events of the aggregates
func (s *WorkService) publishEvents(ctx context.Context, aggregates ...shared.AggregateRoot) {
	for _, agg := range aggregates {
		events := agg.GetDomainEvents()
		agg.ClearDomainEvents()
		if s.eventPublisher == nil || len(events) == 0 {
			continue
		}
		if err := s.eventPublisher.Publish(ctx, events...); err != nil {
			logger.L(ctx).Warn("failed to publish project events", zap.Error(err))
		}
	}
}
