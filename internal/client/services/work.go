package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/civigo/internal/client/models"
)

type WorkService interface {
	RecordService[*models.Work]
	ListByProject(ctx context.Context, projectID string) ([]*models.Work, error)
}

type workService struct {
	*recordService[*models.Work]
	projects Table[*models.Project]
	subworks *subworkService
}

// AddLocal stores w under the project named by w.Project.LocalID.
func (s *workService) AddLocal(ctx context.Context, w *models.Work) (string, error) {
	ref, err := parentRef(ctx, s.projects, w.Project.LocalID)
	if err != nil {
		return "", err
	}
	w.Project = ref
	return s.recordService.AddLocal(ctx, w)
}

func (s *workService) ListByProject(ctx context.Context, projectID string) ([]*models.Work, error) {
	return children(ctx, s.projects, s.table, projectID)
}

func (s *workService) SoftDeleteLocal(ctx context.Context, localID string) error {
	if err := s.deleteTree(ctx, localID); err != nil {
		return err
	}
	s.changed(ctx)
	return nil
}

// deleteTree deletes the work and its subworks without triggering a sync.
func (s *workService) deleteTree(ctx context.Context, localID string) error {
	subs, err := children(ctx, s.table, s.subworks.table, localID)
	if err != nil {
		return err
	}
	for _, sw := range subs {
		if err := s.subworks.deleteTree(ctx, sw.LocalID); err != nil {
			return fmt.Errorf("delete subwork %s: %w", sw.LocalID, err)
		}
	}
	return s.table.SoftDelete(ctx, localID, nil)
}
