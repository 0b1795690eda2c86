package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/erp/saleproject/internal/domain/sale"
	"github.com/erp/saleproject/internal/domain/shared"
	"github.com/erp/saleproject/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SaleNumberPrefix starts every generated sale number
const SaleNumberPrefix = "SO-"

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByIDForCompany finds a sale with its lines within a company
func (r *GormSaleRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*sale.Sale, error) {
	var model models.SaleModel
	if err := r.db.WithContext(ctx).
		Scopes(CompanyScope(companyID)).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC, created_at ASC")
		}).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForCompany lists sales with filtering and pagination; lines are not loaded
func (r *GormSaleRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]sale.Sale, error) {
	var saleModels []models.SaleModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.SaleModel{}).Scopes(CompanyScope(companyID)), filter).
		Scopes(PageScope(filter, SaleSortColumns))
	if err := query.Find(&saleModels).Error; err != nil {
		return nil, err
	}
	return toDomainSales(saleModels), nil
}

// CountForCompany counts sales matching the filter
func (r *GormSaleRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.SaleModel{}).Scopes(CompanyScope(companyID)), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindLinesByTasks returns every sale line of the company linked to one of the tasks
func (r *GormSaleRepository) FindLinesByTasks(ctx context.Context, companyID uuid.UUID, taskIDs []uuid.UUID) ([]sale.SaleLine, error) {
	if len(taskIDs) == 0 {
		return []sale.SaleLine{}, nil
	}
	var lineModels []models.SaleLineModel
	if err := r.db.WithContext(ctx).
		Model(&models.SaleLineModel{}).
		Joins("JOIN sales ON sales.id = sale_lines.sale_id").
		Where("sales.company_id = ? AND sale_lines.task_id IN ?", companyID, taskIDs).
		Order("sale_lines.sequence ASC, sale_lines.created_at ASC").
		Find(&lineModels).Error; err != nil {
		return nil, err
	}
	lines := make([]sale.SaleLine, len(lineModels))
	for i := range lineModels {
		lines[i] = lineModels[i].ToDomain()
	}
	return lines, nil
}

// FindByWork lists the sales linked to a project root, lines included
func (r *GormSaleRepository) FindByWork(ctx context.Context, companyID, workID uuid.UUID) ([]sale.Sale, error) {
	var saleModels []models.SaleModel
	if err := r.db.WithContext(ctx).
		Scopes(CompanyScope(companyID)).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC, created_at ASC")
		}).
		Where("work_id = ?", workID).
		Order("created_at ASC").
		Find(&saleModels).Error; err != nil {
		return nil, err
	}
	return toDomainSales(saleModels), nil
}

// Save creates or updates a sale together with its lines
func (r *GormSaleRepository) Save(ctx context.Context, s *sale.Sale) error {
	model := models.SaleModelFromDomain(s)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(model).Error; err != nil {
			return err
		}
		return r.saveLines(tx, s)
	})
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormSaleRepository) SaveWithLock(ctx context.Context, s *sale.Sale) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var currentVersion int
		result := tx.Model(&models.SaleModel{}).
			Where("id = ? AND company_id = ?", s.ID, s.CompanyID).
			Select("version").
			Scan(&currentVersion)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		if currentVersion != s.Version {
			return shared.ErrConcurrencyConflict
		}

		nextVersion := s.Version + 1
		now := time.Now()

		updated := tx.Model(&models.SaleModel{}).
			Where("id = ? AND version = ?", s.ID, currentVersion).
			Updates(map[string]interface{}{
				"description":     s.Description,
				"party_id":        s.PartyID,
				"party_name":      s.PartyName,
				"invoice_method":  s.InvoiceMethod,
				"shipment_method": s.ShipmentMethod,
				"state":           s.State,
				"work_id":         s.WorkID,
				"create_project":  s.CreateProject,
				"quoted_at":       s.QuotedAt,
				"confirmed_at":    s.ConfirmedAt,
				"processed_at":    s.ProcessedAt,
				"done_at":         s.DoneAt,
				"cancelled_at":    s.CancelledAt,
				"version":         nextVersion,
				"updated_at":      now,
			})
		if updated.Error != nil {
			return updated.Error
		}
		if updated.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		if err := r.saveLines(tx, s); err != nil {
			return err
		}
		s.Version = nextVersion
		s.UpdatedAt = now
		return nil
	})
}

// saveLines deletes lines no longer on the sale and upserts the rest
func (r *GormSaleRepository) saveLines(tx *gorm.DB, s *sale.Sale) error {
	currentLineIDs := make([]uuid.UUID, len(s.Lines))
	for i := range s.Lines {
		currentLineIDs[i] = s.Lines[i].ID
	}

	stale := tx.Where("sale_id = ?", s.ID)
	if len(currentLineIDs) > 0 {
		stale = stale.Where("id NOT IN ?", currentLineIDs)
	}
	if err := stale.Delete(&models.SaleLineModel{}).Error; err != nil {
		return err
	}

	for i := range s.Lines {
		s.Lines[i].SaleID = s.ID
		if err := tx.Save(models.SaleLineModelFromDomain(&s.Lines[i])).Error; err != nil {
			return err
		}
	}
	return nil
}

// GenerateNumber generates the next sale number for a company.
// Format: SO-NNNNN (e.g., SO-00042)
func (r *GormSaleRepository) GenerateNumber(ctx context.Context, companyID uuid.UUID) (string, error) {
	var last models.SaleModel
	err := r.db.WithContext(ctx).
		Model(&models.SaleModel{}).
		Where("company_id = ? AND number LIKE ?", companyID, SaleNumberPrefix+"%").
		Order("number DESC").
		First(&last).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil {
		var num int64
		if _, scanErr := fmt.Sscanf(strings.TrimPrefix(last.Number, SaleNumberPrefix), "%d", &num); scanErr == nil {
			nextNum = num + 1
		}
	}

	for i := 0; i < 100; i++ {
		number := fmt.Sprintf("%s%05d", SaleNumberPrefix, nextNum)
		exists, err := r.existsByNumber(ctx, companyID, number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
		nextNum++
	}
	return "", fmt.Errorf("no free sale number after %s%05d", SaleNumberPrefix, nextNum)
}

func (r *GormSaleRepository) existsByNumber(ctx context.Context, companyID uuid.UUID, number string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SaleModel{}).
		Where("company_id = ? AND number = ?", companyID, number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies search and the state, party and work filters
func (r *GormSaleRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = query.Scopes(SearchScope(filter.Search, "number", "party_name", "description"))

	if state, ok := filter.Filters["state"]; ok && state != "" {
		query = query.Where("state = ?", state)
	}
	if partyID, ok := filter.Filters["party_id"]; ok {
		query = query.Where("party_id = ?", partyID)
	}
	if workID, ok := filter.Filters["work_id"]; ok {
		query = query.Where("work_id = ?", workID)
	}
	return query
}

func toDomainSales(saleModels []models.SaleModel) []sale.Sale {
	sales := make([]sale.Sale, len(saleModels))
	for i := range saleModels {
		sales[i] = *saleModels[i].ToDomain()
	}
	return sales
}

// Ensure GormSaleRepository implements SaleRepository
var _ sale.SaleRepository = (*GormSaleRepository)(nil)
