package projects

import (
	"context"

	"github.com/dmitrijs2005/civigo/internal/server/models"
)

// Repository stores projects. Every call is scoped to one owner.
type Repository interface {
	Create(ctx context.Context, p *models.Project) (*models.Project, error)
	Update(ctx context.Context, p *models.Project) error
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string) ([]*models.Project, error)
}
