package catalog

import (
	"context"

	"github.com/erp/saleproject/internal/domain/catalog"
	"github.com/erp/saleproject/internal/domain/shared"
	"github.com/erp/saleproject/internal/domain/shared/valueobject"
	"github.com/erp/saleproject/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// UoMService exposes the units of measure catalog
type UoMService struct {
	uomRepo catalog.UoMRepository
}

// NewUoMService creates a new UoMService
func NewUoMService(uomRepo catalog.UoMRepository) *UoMService {
	return &UoMService{uomRepo: uomRepo}
}

// List returns every unit ordered by category then rate
func (s *UoMService) List(ctx context.Context) ([]UoMResponse, error) {
	uoms, err := s.uomRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToUoMResponses(uoms), nil
}

// Seed installs or refreshes the given units. Existing units are updated in place
// so sale lines and tasks keep their codes.
func (s *UoMService) Seed(ctx context.Context, uoms []valueobject.UoM) (int, error) {
	if len(uoms) == 0 {
		return 0, shared.NewDomainError("INVALID_INPUT", "No units of measure to seed")
	}

	hasSecond, hasHour := false, false
	for _, u := range uoms {
		switch u.Code() {
		case valueobject.UoMSecond:
			hasSecond = u.IsTime()
		case valueobject.UoMHour:
			hasHour = u.IsTime()
		}
	}
	// the sync converts service quantities through these two units
	if !hasSecond || !hasHour {
		logger.L(ctx).Warn("uom catalog lacks the default second or hour time units",
			zap.Bool("second", hasSecond),
			zap.Bool("hour", hasHour),
		)
	}

	if err := s.uomRepo.SaveAll(ctx, uoms); err != nil {
		return 0, err
	}

	logger.L(ctx).Info("uom catalog seeded", zap.Int("count", len(uoms)))
	return len(uoms), nil
}
