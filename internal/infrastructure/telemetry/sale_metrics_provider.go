package telemetry

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSaleMetricsProvider implements SaleMetricsProvider over the sales table.
type GormSaleMetricsProvider struct {
	db *gorm.DB
}

// NewGormSaleMetricsProvider creates a GormSaleMetricsProvider.
func NewGormSaleMetricsProvider(db *gorm.DB) *GormSaleMetricsProvider {
	return &GormSaleMetricsProvider{db: db}
}

// CountSalesByState returns the number of sales per state for a company.
func (p *GormSaleMetricsProvider) CountSalesByState(ctx context.Context, companyID uuid.UUID) (map[string]int64, error) {
	type row struct {
		State string `gorm:"column:state"`
		Total int64  `gorm:"column:total"`
	}

	var rows []row
	err := p.db.WithContext(ctx).
		Table("sales").
		Select("state, COUNT(*) AS total").
		Where("company_id = ?", companyID).
		Group("state").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.State] = r.Total
	}
	return counts, nil
}

// GetActiveCompanyIDs returns the companies owning at least one sale.
func (p *GormSaleMetricsProvider) GetActiveCompanyIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := p.db.WithContext(ctx).
		Table("sales").
		Distinct("company_id").
		Pluck("company_id", &ids).Error
	return ids, err
}
