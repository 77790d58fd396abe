package subworks

import (
	"context"

	"github.com/dmitrijs2005/civigo/internal/server/models"
	"github.com/shopspring/decimal"
)

// Repository stores subworks without their items.
type Repository interface {
	Create(ctx context.Context, s *models.Subwork) (*models.Subwork, error)
	Update(ctx context.Context, s *models.Subwork) error
	SetDefaultRate(ctx context.Context, userID, id, unit string, rate decimal.Decimal) error
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string) ([]*models.Subwork, error)
}
