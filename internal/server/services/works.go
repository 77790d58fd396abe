package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/civigo/internal/common"
	"github.com/dmitrijs2005/civigo/internal/server/models"
	"github.com/dmitrijs2005/civigo/internal/server/repositories/repomanager"
)

type WorkService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewWorkService(db *sql.DB, m repomanager.RepositoryManager) *WorkService {
	return &WorkService{db: db, repomanager: m}
}

// Create adds a work under one of the user's projects. An unknown or
// foreign project yields common.ErrorNotFound.
func (s *WorkService) Create(ctx context.Context, w *models.Work) (*models.Work, error) {
	if strings.TrimSpace(w.Name) == "" || w.ProjectID == "" {
		return nil, common.ErrorValidation
	}
	return s.repomanager.Works(s.db).Create(ctx, w)
}

func (s *WorkService) Update(ctx context.Context, w *models.Work) error {
	if strings.TrimSpace(w.Name) == "" {
		return common.ErrorValidation
	}
	return s.repomanager.Works(s.db).Update(ctx, w)
}

func (s *WorkService) Delete(ctx context.Context, userID, id string) error {
	return s.repomanager.Works(s.db).Delete(ctx, userID, id)
}

func (s *WorkService) List(ctx context.Context, userID string) ([]*models.Work, error) {
	return s.repomanager.Works(s.db).List(ctx, userID)
}
