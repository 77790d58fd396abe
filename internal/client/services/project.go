package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/civigo/internal/client/models"
)

type ProjectService interface {
	RecordService[*models.Project]
}

type projectService struct {
	*recordService[*models.Project]
	works *workService
}

func (s *projectService) AddLocal(ctx context.Context, p *models.Project) (string, error) {
	if p.Status == "" {
		p.Status = models.ProjectStatusActive
	}
	return s.recordService.AddLocal(ctx, p)
}

// SoftDeleteLocal deletes the project and everything under it.
func (s *projectService) SoftDeleteLocal(ctx context.Context, localID string) error {
	works, err := children(ctx, s.table, s.works.table, localID)
	if err != nil {
		return err
	}
	for _, w := range works {
		if err := s.works.deleteTree(ctx, w.LocalID); err != nil {
			return fmt.Errorf("delete work %s: %w", w.LocalID, err)
		}
	}
	return s.recordService.SoftDeleteLocal(ctx, localID)
}
