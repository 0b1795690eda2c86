package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/erp/saleproject/internal/domain/project"
	"github.com/erp/saleproject/internal/domain/shared"
	"github.com/erp/saleproject/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormWorkRepository implements WorkRepository using GORM.
// Trees are stored flat in the works table and rebuilt on load.
type GormWorkRepository struct {
	db *gorm.DB
}

// NewGormWorkRepository creates a new GormWorkRepository
func NewGormWorkRepository(db *gorm.DB) *GormWorkRepository {
	return &GormWorkRepository{db: db}
}

// FindByIDForCompany finds a single node within a company
func (r *GormWorkRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*project.Work, error) {
	var model models.WorkModel
	if err := r.db.WithContext(ctx).
		Scopes(CompanyScope(companyID)).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	w := model.ToDomain()
	if err := r.attachSaleLines(ctx, []*project.Work{w}); err != nil {
		return nil, err
	}
	return w, nil
}

// FindTree loads every node under a project root and links them back to their sale lines
func (r *GormWorkRepository) FindTree(ctx context.Context, companyID, rootID uuid.UUID) (*project.Tree, error) {
	var workModels []models.WorkModel
	if err := r.db.WithContext(ctx).
		Scopes(CompanyScope(companyID)).
		Where("root_id = ?", rootID).
		Order("sequence ASC, created_at ASC").
		Find(&workModels).Error; err != nil {
		return nil, err
	}
	if len(workModels) == 0 {
		return nil, shared.ErrNotFound
	}

	works := make([]*project.Work, len(workModels))
	for i := range workModels {
		works[i] = workModels[i].ToDomain()
	}
	if err := r.attachSaleLines(ctx, works); err != nil {
		return nil, err
	}
	return project.BuildTree(works)
}

// FindRootsForCompany lists project roots with search and pagination
func (r *GormWorkRepository) FindRootsForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]project.Work, error) {
	var workModels []models.WorkModel
	query := r.rootQuery(ctx, companyID, filter).
		Scopes(PageScope(filter, WorkSortColumns))
	if err := query.Find(&workModels).Error; err != nil {
		return nil, err
	}
	works := make([]project.Work, len(workModels))
	for i := range workModels {
		works[i] = *workModels[i].ToDomain()
	}
	return works, nil
}

// CountRootsForCompany counts project roots matching the filter
func (r *GormWorkRepository) CountRootsForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.rootQuery(ctx, companyID, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a single node
func (r *GormWorkRepository) Save(ctx context.Context, w *project.Work) error {
	return r.db.WithContext(ctx).Save(models.WorkModelFromDomain(w)).Error
}

// SaveTree inserts the nodes attached since the tree was loaded and updates
// the others with a version check. A stale node fails the whole save.
func (r *GormWorkRepository) SaveTree(ctx context.Context, tree *project.Tree) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		for _, w := range tree.Nodes() {
			if tree.IsAdded(w.ID) {
				if err := tx.Create(models.WorkModelFromDomain(w)).Error; err != nil {
					return err
				}
				continue
			}

			model := models.WorkModelFromDomain(w)
			model.Version = w.Version + 1
			model.UpdatedAt = now
			result := tx.Model(&models.WorkModel{}).
				Where("id = ? AND company_id = ? AND version = ?", w.ID, w.CompanyID, w.Version).
				Select("*").
				Omit("id", "created_at", "created_by").
				Updates(model)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return shared.ErrConcurrencyConflict
			}
			w.Version = model.Version
			w.UpdatedAt = now
		}
		return nil
	})
}

func (r *GormWorkRepository) rootQuery(ctx context.Context, companyID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&models.WorkModel{}).
		Scopes(CompanyScope(companyID), SearchScope(filter.Search, "name")).
		Where("parent_id IS NULL")
	if partyID, ok := filter.Filters["party_id"]; ok {
		query = query.Where("party_id = ?", partyID)
	}
	return query
}

// attachSaleLines fills the read-only SaleLineIDs back-reference from sale_lines.task_id
func (r *GormWorkRepository) attachSaleLines(ctx context.Context, works []*project.Work) error {
	ids := make([]uuid.UUID, len(works))
	byID := make(map[uuid.UUID]*project.Work, len(works))
	for i, w := range works {
		ids[i] = w.ID
		byID[w.ID] = w
		w.SaleLineIDs = nil
	}

	var links []struct {
		ID     uuid.UUID
		TaskID uuid.UUID
	}
	if err := r.db.WithContext(ctx).
		Model(&models.SaleLineModel{}).
		Select("id, task_id").
		Where("task_id IN ?", ids).
		Order("sequence ASC, created_at ASC").
		Scan(&links).Error; err != nil {
		return err
	}
	for _, l := range links {
		if w, ok := byID[l.TaskID]; ok {
			w.SaleLineIDs = append(w.SaleLineIDs, l.ID)
		}
	}
	return nil
}

// Ensure GormWorkRepository implements WorkRepository
var _ project.WorkRepository = (*GormWorkRepository)(nil)
