package items

import (
	"context"

	"github.com/dmitrijs2005/civigo/internal/server/models"
)

// Repository stores subwork items. Items are addressed by subwork, kind and
// id together.
type Repository interface {
	Create(ctx context.Context, it *models.Item) (*models.Item, error)
	Update(ctx context.Context, it *models.Item) error
	Delete(ctx context.Context, userID, subworkID, kind, id string) error
	List(ctx context.Context, userID string) ([]*models.Item, error)
}
