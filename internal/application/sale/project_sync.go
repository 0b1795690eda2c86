package sale

import (
	"context"
	"time"

	"github.com/erp/saleproject/internal/domain/project"
	"github.com/erp/saleproject/internal/domain/sale"
	"github.com/erp/saleproject/internal/domain/salesync"
	"github.com/erp/saleproject/internal/domain/shared"
	"github.com/erp/saleproject/internal/infrastructure/logger"
	"github.com/erp/saleproject/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Process moves a confirmed sale to processing. A sale carrying a project,
// or flagged to create one, has its priced lines mirrored into the project
// tree in the same transaction.
func (s *SaleService) Process(ctx context.Context, companyID, saleID uuid.UUID) (*ProcessResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sale", "process",
		telemetry.WithAttribute(telemetry.SpanAttrSaleID, saleID.String()))
	defer span.End()
	start := time.Now()

	var (
		processed *sale.Sale
		tree      *project.Tree
		result    *salesync.ProjectResult
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		sl, err := repos.SaleRepo().FindByIDForCompany(ctx, companyID, saleID)
		if err != nil {
			return err
		}
		if err := sl.Process(); err != nil {
			return err
		}
		if sl.HasProject() {
			tree, result, err = s.syncProject(ctx, repos, sl)
			if err != nil {
				return err
			}
		}
		if err := repos.SaleRepo().SaveWithLock(ctx, sl); err != nil {
			return err
		}
		processed = sl
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		if s.businessMetrics != nil {
			s.businessMetrics.RecordSyncFailure(ctx, companyID, telemetry.SyncSaleToProject, err)
		}
		logger.L(ctx).Warn("sale processing failed", zap.String("sale_id", saleID.String()), zap.Error(err))
		return nil, err
	}

	response := &ProcessResponse{Sale: ToSaleResponse(processed)}
	if tree != nil {
		rootID := tree.Root().ID
		response.ProjectID = &rootID
		response.TasksCreated = len(result.Created)
		response.TasksUpdated = len(result.Updated)

		for _, n := range tree.Nodes() {
			s.publishEvents(ctx, n)
		}
		if s.businessMetrics != nil {
			s.businessMetrics.RecordProjectSync(ctx, companyID, telemetry.SyncSaleToProject, time.Since(start))
		}
		telemetry.SetAttributes(span,
			telemetry.SpanAttrProjectID, rootID.String(),
			telemetry.SpanAttrTasksCreated, response.TasksCreated,
		)
	}
	s.publishEvents(ctx, processed)

	logger.L(ctx).Info("sale processed",
		zap.String("sale_id", processed.ID.String()),
		zap.String("number", processed.Number),
		zap.Int("tasks_created", response.TasksCreated),
		zap.Int("tasks_updated", response.TasksUpdated),
	)
	telemetry.SetOK(span)
	return response, nil
}

// syncProject mirrors sl into its project tree, creating the project first
// when the sale asks for one, and saves the tree.
func (s *SaleService) syncProject(ctx context.Context, repos TransactionalRepositories, sl *sale.Sale) (*project.Tree, *salesync.ProjectResult, error) {
	var tree *project.Tree
	if sl.WorkID != nil {
		t, err := repos.WorkRepo().FindTree(ctx, sl.CompanyID, *sl.WorkID)
		if err != nil {
			return nil, nil, err
		}
		tree = t
	} else {
		root, err := salesync.NewProjectForSale(sl)
		if err != nil {
			return nil, nil, err
		}
		tree = project.NewTree(root)
	}

	external, err := repos.SaleRepo().FindLinesByTasks(ctx, sl.CompanyID, nodeIDs(tree))
	if err != nil {
		return nil, nil, err
	}
	cat, err := s.loadCatalog(ctx, repos, sl, tree)
	if err != nil {
		return nil, nil, err
	}

	var result *salesync.ProjectResult
	telemetry.WithProfilingLabels(ctx, telemetry.SyncOperationLabels(telemetry.SyncSaleToProject, sl.CompanyID.String()), func(context.Context) {
		result, err = salesync.New(cat).CreateProjectFromSale(sl, tree, external)
	})
	if err != nil {
		return nil, nil, err
	}

	if err := repos.WorkRepo().SaveTree(ctx, tree); err != nil {
		return nil, nil, err
	}
	root := tree.Root()
	if sl.WorkID == nil {
		sl.AttachCreatedProject(root.ID)
	}
	sl.AddDomainEvent(sale.NewProjectCreatedFromSaleEvent(sl, root.ID, len(result.Created), len(result.Updated)))
	return tree, result, nil
}

// LoadProject fills an empty draft sale with one line per node of its project
func (s *SaleService) LoadProject(ctx context.Context, companyID, saleID uuid.UUID) (*LoadProjectResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sale", "load_project",
		telemetry.WithAttribute(telemetry.SpanAttrSaleID, saleID.String()))
	defer span.End()
	start := time.Now()

	var (
		loaded  *sale.Sale
		created []uuid.UUID
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		sl, err := repos.SaleRepo().FindByIDForCompany(ctx, companyID, saleID)
		if err != nil {
			return err
		}
		if !sl.CanLoadProject() {
			return shared.NewDomainError(sale.ErrCodeCannotLoadProject,
				"Project lines can only be loaded into a draft sale with a project and no lines")
		}
		tree, err := repos.WorkRepo().FindTree(ctx, companyID, *sl.WorkID)
		if err != nil {
			return err
		}
		cat, err := s.loadCatalog(ctx, repos, sl, tree)
		if err != nil {
			return err
		}

		telemetry.WithProfilingLabels(ctx, telemetry.SyncOperationLabels(telemetry.SyncProjectToSale, companyID.String()), func(context.Context) {
			created, err = salesync.New(cat).CreateLinesFromProject(sl, tree)
		})
		if err != nil {
			return err
		}

		sl.AddDomainEvent(sale.NewSaleLinesLoadedFromProjectEvent(sl, tree.Root().ID, len(created)))
		if err := repos.SaleRepo().SaveWithLock(ctx, sl); err != nil {
			return err
		}
		loaded = sl
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		if s.businessMetrics != nil {
			s.businessMetrics.RecordSyncFailure(ctx, companyID, telemetry.SyncProjectToSale, err)
		}
		return nil, err
	}

	s.publishEvents(ctx, loaded)
	if s.businessMetrics != nil {
		s.businessMetrics.RecordProjectSync(ctx, companyID, telemetry.SyncProjectToSale, time.Since(start))
	}
	logger.L(ctx).Info("project lines loaded into sale",
		zap.String("sale_id", loaded.ID.String()),
		zap.String("project_id", loaded.WorkID.String()),
		zap.Int("lines_created", len(created)),
	)
	telemetry.SetOK(span)
	return &LoadProjectResponse{Sale: ToSaleResponse(loaded), LinesCreated: len(created)}, nil
}

// ChangeParty moves a sale to another party. The nodes of its project that
// belonged to the previous party follow.
func (s *SaleService) ChangeParty(ctx context.Context, companyID, saleID uuid.UUID, req ChangePartyRequest) (*SaleResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sale", "change_party",
		telemetry.WithAttribute(telemetry.SpanAttrSaleID, saleID.String()))
	defer span.End()

	var (
		changed *sale.Sale
		moved   int
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		sl, err := repos.SaleRepo().FindByIDForCompany(ctx, companyID, saleID)
		if err != nil {
			return err
		}
		oldParty := sl.PartyID
		if err := sl.ChangeParty(req.PartyID, req.PartyName); err != nil {
			return err
		}

		if sl.WorkID != nil {
			tree, err := repos.WorkRepo().FindTree(ctx, companyID, *sl.WorkID)
			if err != nil {
				return err
			}
			for _, n := range tree.Nodes() {
				if n.ReplaceParty(&oldParty, req.PartyID) {
					moved++
				}
			}
			if err := repos.WorkRepo().SaveTree(ctx, tree); err != nil {
				return err
			}
		}

		if err := repos.SaleRepo().SaveWithLock(ctx, sl); err != nil {
			return err
		}
		changed = sl
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.publishEvents(ctx, changed)
	logger.L(ctx).Info("sale party changed",
		zap.String("sale_id", changed.ID.String()),
		zap.String("party_id", req.PartyID.String()),
		zap.Int("works_moved", moved),
	)

	response := ToSaleResponse(changed)
	return &response, nil
}

// loadCatalog fetches the products referenced by the sale lines and the tree
// nodes, along with every unit of measure. Reads go through repos when it
// can serve the catalog.
func (s *SaleService) loadCatalog(ctx context.Context, repos TransactionalRepositories, sl *sale.Sale, tree *project.Tree) (*salesync.Catalog, error) {
	productRepo, uomRepo := s.productRepo, s.uomRepo
	if cr, ok := repos.(CatalogRepositories); ok {
		productRepo, uomRepo = cr.ProductRepo(), cr.UoMRepo()
	}

	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	add := func(id *uuid.UUID) {
		if id != nil && !seen[*id] {
			seen[*id] = true
			ids = append(ids, *id)
		}
	}
	for i := range sl.Lines {
		add(sl.Lines[i].ProductID)
	}
	for _, n := range tree.Nodes() {
		add(n.SaleProductID())
	}

	products, err := productRepo.FindByIDs(ctx, sl.CompanyID, ids)
	if err != nil {
		return nil, err
	}
	uoms, err := uomRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return salesync.NewCatalog(products, uoms, s.options.Units), nil
}

func nodeIDs(tree *project.Tree) []uuid.UUID {
	nodes := tree.Nodes()
	ids := make([]uuid.UUID, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
