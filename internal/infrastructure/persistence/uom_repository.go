package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/erp/saleproject/internal/domain/catalog"
	"github.com/erp/saleproject/internal/domain/shared"
	"github.com/erp/saleproject/internal/domain/shared/valueobject"
	"github.com/erp/saleproject/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUoMRepository implements UoMRepository using GORM
type GormUoMRepository struct {
	db *gorm.DB
}

// NewGormUoMRepository creates a new GormUoMRepository
func NewGormUoMRepository(db *gorm.DB) *GormUoMRepository {
	return &GormUoMRepository{db: db}
}

// FindByCode finds a unit by its code
func (r *GormUoMRepository) FindByCode(ctx context.Context, code string) (valueobject.UoM, error) {
	var model models.UoMModel
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(code)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return valueobject.UoM{}, shared.ErrNotFound
		}
		return valueobject.UoM{}, err
	}
	return model.ToDomain()
}

// FindAll lists every unit ordered by category then rate
func (r *GormUoMRepository) FindAll(ctx context.Context) ([]valueobject.UoM, error) {
	var uomModels []models.UoMModel
	if err := r.db.WithContext(ctx).
		Order("category ASC, rate ASC").
		Find(&uomModels).Error; err != nil {
		return nil, err
	}
	uoms := make([]valueobject.UoM, 0, len(uomModels))
	for i := range uomModels {
		u, err := uomModels[i].ToDomain()
		if err != nil {
			return nil, fmt.Errorf("uom %q: %w", uomModels[i].Code, err)
		}
		uoms = append(uoms, u)
	}
	return uoms, nil
}

// SaveAll inserts or updates units by code
func (r *GormUoMRepository) SaveAll(ctx context.Context, uoms []valueobject.UoM) error {
	if len(uoms) == 0 {
		return nil
	}
	now := time.Now()
	uomModels := make([]models.UoMModel, len(uoms))
	for i, u := range uoms {
		uomModels[i] = *models.UoMModelFromDomain(u)
		uomModels[i].CreatedAt = now
		uomModels[i].UpdatedAt = now
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "category", "rate", "digits", "updated_at"}),
		}).
		Create(&uomModels).Error
}

// Ensure GormUoMRepository implements UoMRepository
var _ catalog.UoMRepository = (*GormUoMRepository)(nil)
