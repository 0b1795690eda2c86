package sale

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/erp/saleproject/internal/domain/catalog"
	"github.com/erp/saleproject/internal/domain/project"
	"github.com/erp/saleproject/internal/domain/sale"
	"github.com/erp/saleproject/internal/domain/salesync"
	"github.com/erp/saleproject/internal/domain/shared"
	"github.com/erp/saleproject/internal/infrastructure/logger"
	"github.com/erp/saleproject/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SyncOptions tunes the sale and project synchronization
type SyncOptions struct {
	// EnforceBackToDraftGuard refuses to reset a done sale to draft unless
	// both its invoice and shipment methods are manual
	EnforceBackToDraftGuard bool
	Units                   salesync.Units
}

// DefaultSyncOptions returns the options used when none are configured
func DefaultSyncOptions() SyncOptions {
	return SyncOptions{Units: salesync.DefaultUnits()}
}

// SaleService handles sale business operations
type SaleService struct {
	saleRepo        sale.SaleRepository
	workRepo        project.WorkRepository
	productRepo     catalog.ProductRepository
	uomRepo         catalog.UoMRepository
	txScope         TransactionScope
	eventPublisher  shared.EventPublisher
	businessMetrics *telemetry.BusinessMetrics
	options         SyncOptions
}

// NewSaleService creates a new SaleService
func NewSaleService(
	saleRepo sale.SaleRepository,
	workRepo project.WorkRepository,
	productRepo catalog.ProductRepository,
	uomRepo catalog.UoMRepository,
	txScope TransactionScope,
) *SaleService {
	return &SaleService{
		saleRepo:    saleRepo,
		workRepo:    workRepo,
		productRepo: productRepo,
		uomRepo:     uomRepo,
		txScope:     txScope,
		options:     DefaultSyncOptions(),
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *SaleService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetBusinessMetrics sets the business metrics collector
func (s *SaleService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// SetSyncOptions replaces the synchronization options
func (s *SaleService) SetSyncOptions(opts SyncOptions) {
	if opts.Units.Hour == "" {
		opts.Units = salesync.DefaultUnits()
	}
	s.options = opts
}

// Create creates a new draft sale with its lines
func (s *SaleService) Create(ctx context.Context, companyID uuid.UUID, req CreateSaleRequest) (*SaleResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sale", "create")
	defer span.End()

	number, err := s.saleRepo.GenerateNumber(ctx, companyID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	sl, err := sale.NewSale(companyID, number, req.PartyID, req.PartyName)
	if err != nil {
		return nil, err
	}
	if err := sl.Update(req.Description); err != nil {
		return nil, err
	}
	if req.InvoiceMethod != "" || req.ShipmentMethod != "" {
		invoice, shipment := sl.InvoiceMethod, sl.ShipmentMethod
		if req.InvoiceMethod != "" {
			invoice = sale.InvoiceMethod(req.InvoiceMethod)
		}
		if req.ShipmentMethod != "" {
			shipment = sale.ShipmentMethod(req.ShipmentMethod)
		}
		if err := sl.SetMethods(invoice, shipment); err != nil {
			return nil, err
		}
	}

	// lines reference earlier lines of the request by index
	created := make([]uuid.UUID, 0, len(req.Lines))
	for i, in := range req.Lines {
		if err := s.checkUnit(ctx, in.Unit); err != nil {
			return nil, err
		}
		spec := in.toSpec()
		if in.ParentIndex != nil {
			if *in.ParentIndex >= i {
				return nil, shared.NewDomainError("INVALID_PARENT", fmt.Sprintf("Line %d must come after its parent", i))
			}
			parent := created[*in.ParentIndex]
			spec.ParentID = &parent
		}
		line, err := sl.AddLine(spec)
		if err != nil {
			return nil, err
		}
		created = append(created, line.ID)
	}

	if err := s.saleRepo.Save(ctx, sl); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.publishEvents(ctx, sl)
	if s.businessMetrics != nil {
		s.businessMetrics.RecordSaleCreated(ctx, companyID, sl.TotalAmount())
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrSaleID, sl.ID.String(), telemetry.SpanAttrSaleNumber, sl.Number)

	response := ToSaleResponse(sl)
	return &response, nil
}

// GetByID retrieves a sale with its lines
func (s *SaleService) GetByID(ctx context.Context, companyID, saleID uuid.UUID) (*SaleResponse, error) {
	sl, err := s.saleRepo.FindByIDForCompany(ctx, companyID, saleID)
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(sl)
	return &response, nil
}

// List retrieves sales with filtering and pagination
func (s *SaleService) List(ctx context.Context, companyID uuid.UUID, filter SaleListFilter) ([]SaleListItemResponse, int64, error) {
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
	if filter.WorkID != nil {
		domainFilter.Filters["work_id"] = *filter.WorkID
	}
	if filter.State != "" {
		domainFilter.Filters["state"] = filter.State
	}

	sales, err := s.saleRepo.FindAllForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.saleRepo.CountForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToSaleListItemResponses(sales), total, nil
}

// Update updates the header of a sale
func (s *SaleService) Update(ctx context.Context, companyID, saleID uuid.UUID, req UpdateSaleRequest) (*SaleResponse, error) {
	return s.modify(ctx, companyID, saleID, func(sl *sale.Sale) error {
		if req.Description != nil {
			if err := sl.Update(*req.Description); err != nil {
				return err
			}
		}
		if req.InvoiceMethod == nil && req.ShipmentMethod == nil {
			return nil
		}
		invoice, shipment := sl.InvoiceMethod, sl.ShipmentMethod
		if req.InvoiceMethod != nil {
			invoice = sale.InvoiceMethod(*req.InvoiceMethod)
		}
		if req.ShipmentMethod != nil {
			shipment = sale.ShipmentMethod(*req.ShipmentMethod)
		}
		return sl.SetMethods(invoice, shipment)
	})
}

// AddLine adds a line to a draft sale
func (s *SaleService) AddLine(ctx context.Context, companyID, saleID uuid.UUID, req LineInput) (*SaleResponse, error) {
	if err := s.checkUnit(ctx, req.Unit); err != nil {
		return nil, err
	}
	return s.modify(ctx, companyID, saleID, func(sl *sale.Sale) error {
		_, err := sl.AddLine(req.toSpec())
		return err
	})
}

// UpdateLine replaces the fields of a line of a draft sale
func (s *SaleService) UpdateLine(ctx context.Context, companyID, saleID, lineID uuid.UUID, req LineInput) (*SaleResponse, error) {
	if err := s.checkUnit(ctx, req.Unit); err != nil {
		return nil, err
	}
	return s.modify(ctx, companyID, saleID, func(sl *sale.Sale) error {
		return sl.UpdateLine(lineID, req.toSpec())
	})
}

// checkUnit rejects a line unit that is not in the catalog. An empty unit is
// left to the synchronization, which reports it on the line.
func (s *SaleService) checkUnit(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil
	}
	if _, err := s.uomRepo.FindByCode(ctx, code); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("UOM_NOT_FOUND", fmt.Sprintf("Unit of measure %q not found", code))
		}
		return err
	}
	return nil
}

// RemoveLine removes a line and its descendants from a draft sale
func (s *SaleService) RemoveLine(ctx context.Context, companyID, saleID, lineID uuid.UUID) (*SaleResponse, error) {
	return s.modify(ctx, companyID, saleID, func(sl *sale.Sale) error {
		return sl.RemoveLine(lineID)
	})
}

// SetProject links the sale to a project, flags it for project generation,
// or clears both
func (s *SaleService) SetProject(ctx context.Context, companyID, saleID uuid.UUID, req SetProjectRequest) (*SaleResponse, error) {
	var work *project.Work
	if req.WorkID != nil {
		w, err := s.workRepo.FindByIDForCompany(ctx, companyID, *req.WorkID)
		if err != nil {
			return nil, err
		}
		work = w
	}

	return s.modify(ctx, companyID, saleID, func(sl *sale.Sale) error {
		if work != nil {
			return sl.SetWork(work)
		}
		if err := sl.SetWork(nil); err != nil {
			return err
		}
		return sl.SetCreateProject(req.CreateProject)
	})
}

// Quote moves a sale to quotation
func (s *SaleService) Quote(ctx context.Context, companyID, saleID uuid.UUID) (*SaleResponse, error) {
	return s.transition(ctx, companyID, saleID, "quote", (*sale.Sale).Quote)
}

// Confirm confirms a quoted sale
func (s *SaleService) Confirm(ctx context.Context, companyID, saleID uuid.UUID) (*SaleResponse, error) {
	return s.transition(ctx, companyID, saleID, "confirm", (*sale.Sale).Confirm)
}

// Done marks a processing sale as done
func (s *SaleService) Done(ctx context.Context, companyID, saleID uuid.UUID) (*SaleResponse, error) {
	return s.transition(ctx, companyID, saleID, "done", (*sale.Sale).Done)
}

// Cancel cancels a sale
func (s *SaleService) Cancel(ctx context.Context, companyID, saleID uuid.UUID) (*SaleResponse, error) {
	return s.transition(ctx, companyID, saleID, "cancel", (*sale.Sale).Cancel)
}

// Draft resets a sale to draft
func (s *SaleService) Draft(ctx context.Context, companyID, saleID uuid.UUID) (*SaleResponse, error) {
	return s.transition(ctx, companyID, saleID, "draft", func(sl *sale.Sale) error {
		return sl.Draft(s.options.EnforceBackToDraftGuard)
	})
}

// Copy duplicates a sale as a new draft
func (s *SaleService) Copy(ctx context.Context, companyID, saleID uuid.UUID) (*SaleResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sale", "copy",
		telemetry.WithAttribute(telemetry.SpanAttrSaleID, saleID.String()))
	defer span.End()

	original, err := s.saleRepo.FindByIDForCompany(ctx, companyID, saleID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	number, err := s.saleRepo.GenerateNumber(ctx, companyID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	c, err := original.Copy(number)
	if err != nil {
		return nil, err
	}
	if err := s.saleRepo.Save(ctx, c); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.publishEvents(ctx, c)
	logger.L(ctx).Info("sale copied",
		zap.String("sale_id", original.ID.String()),
		zap.String("copy_id", c.ID.String()),
		zap.String("number", c.Number),
	)

	response := ToSaleResponse(c)
	return &response, nil
}

// modify loads a sale, applies fn and saves it with optimistic locking
func (s *SaleService) modify(ctx context.Context, companyID, saleID uuid.UUID, fn func(*sale.Sale) error) (*SaleResponse, error) {
	sl, err := s.saleRepo.FindByIDForCompany(ctx, companyID, saleID)
	if err != nil {
		return nil, err
	}
	if err := fn(sl); err != nil {
		return nil, err
	}
	if err := s.saleRepo.SaveWithLock(ctx, sl); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, sl)

	response := ToSaleResponse(sl)
	return &response, nil
}

func (s *SaleService) transition(ctx context.Context, companyID, saleID uuid.UUID, action string, fn func(*sale.Sale) error) (*SaleResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sale", action,
		telemetry.WithAttribute(telemetry.SpanAttrSaleID, saleID.String()))
	defer span.End()

	response, err := s.modify(ctx, companyID, saleID, fn)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if s.businessMetrics != nil {
		s.businessMetrics.RecordSaleTransition(ctx, companyID, response.State)
	}
	logger.L(ctx).Info("sale state changed",
		zap.String("sale_id", saleID.String()),
		zap.String("action", action),
		zap.String("state", response.State),
	)
	telemetry.SetOK(span)
	return response, nil
}

// publishEvents publishes and clears the pending events of the aggregates
func (s *SaleService) publishEvents(ctx context.Context, aggregates ...shared.AggregateRoot) {
	for _, agg := range aggregates {
		events := agg.GetDomainEvents()
		agg.ClearDomainEvents()
		if s.eventPublisher == nil || len(events) == 0 {
			continue
		}
		if err := s.eventPublisher.Publish(ctx, events...); err != nil {
			// the state change is committed; handlers are best effort
			logger.L(ctx).Warn("failed to publish sale events", zap.Error(err))
		}
	}
}
