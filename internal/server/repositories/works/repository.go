package works

import (
	"context"

	"github.com/dmitrijs2005/civigo/internal/server/models"
)

// Repository stores works. Creates fail with common.ErrorNotFound when the
// parent project does not belong to the caller.
type Repository interface {
	Create(ctx context.Context, w *models.Work) (*models.Work, error)
	Update(ctx context.Context, w *models.Work) error
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string) ([]*models.Work, error)
}
