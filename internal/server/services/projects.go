package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/civigo/internal/common"
	"github.com/dmitrijs2005/civigo/internal/server/models"
	"github.com/dmitrijs2005/civigo/internal/server/repositories/repomanager"
)

// DefaultProjectStatus is stored when a project is created without one.
const DefaultProjectStatus = "Active"

type ProjectService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewProjectService(db *sql.DB, m repomanager.RepositoryManager) *ProjectService {
	return &ProjectService{db: db, repomanager: m}
}

func (s *ProjectService) Create(ctx context.Context, p *models.Project) (*models.Project, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, common.ErrorValidation
	}
	if p.Status == "" {
		p.Status = DefaultProjectStatus
	}
	return s.repomanager.Projects(s.db).Create(ctx, p)
}

func (s *ProjectService) Update(ctx context.Context, p *models.Project) error {
	if strings.TrimSpace(p.Name) == "" {
		return common.ErrorValidation
	}
	if p.Status == "" {
		p.Status = DefaultProjectStatus
	}
	return s.repomanager.Projects(s.db).Update(ctx, p)
}

func (s *ProjectService) Delete(ctx context.Context, userID, id string) error {
	return s.repomanager.Projects(s.db).Delete(ctx, userID, id)
}

func (s *ProjectService) List(ctx context.Context, userID string) ([]*models.Project, error) {
	return s.repomanager.Projects(s.db).List(ctx, userID)
}
