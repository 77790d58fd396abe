package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/civigo/internal/client/models"
	"github.com/shopspring/decimal"
)

type SubworkService interface {
	RecordService[*models.Subwork]
	ListByWork(ctx context.Context, workID string) ([]*models.Subwork, error)
}

type subworkService struct {
	*recordService[*models.Subwork]
	works   Table[*models.Work]
	entries Table[*models.Entry]
}

func (s *subworkService) AddLocal(ctx context.Context, sw *models.Subwork) (string, error) {
	ref, err := parentRef(ctx, s.works, sw.Work.LocalID)
	if err != nil {
		return "", err
	}
	sw.Work = ref
	if sw.Unit == "" {
		sw.Unit = models.UnitSFT
	}
	return s.recordService.AddLocal(ctx, sw)
}

func (s *subworkService) ListByWork(ctx context.Context, workID string) ([]*models.Subwork, error) {
	return children(ctx, s.works, s.table, workID)
}

// UpdateLocal stores the change and, when the unit or default rate moved,
// recomputes every entry of the subwork.
func (s *subworkService) UpdateLocal(ctx context.Context, localID string, mutate func(*models.Subwork) error) error {
	var (
		before models.Subwork
		after  models.Subwork
	)
	err := s.table.Update(ctx, localID, func(sw *models.Subwork) error {
		before = *sw
		if err := mutate(sw); err != nil {
			return err
		}
		if err := models.Validate(sw); err != nil {
			return err
		}
		after = *sw
		return nil
	})
	if err != nil {
		return err
	}

	if before.Unit != after.Unit || !before.DefaultRate.Equal(after.DefaultRate) {
		if err := s.recomputeEntries(ctx, localID, after.Unit, after.DefaultRate); err != nil {
			return err
		}
	}
	s.changed(ctx)
	return nil
}

func (s *subworkService) recomputeEntries(ctx context.Context, localID string, unit models.Unit, rate decimal.Decimal) error {
	entries, err := children(ctx, s.table, s.entries, localID)
	if err != nil {
		return err
	}
	for _, e := range entries {
		err := s.entries.Update(ctx, e.LocalID, func(e *models.Entry) error {
			e.Recompute(unit, rate)
			touchEntry(e)
			return nil
		})
		if err != nil {
			return fmt.Errorf("recompute entry %s: %w", e.LocalID, err)
		}
	}
	return nil
}

func (s *subworkService) SoftDeleteLocal(ctx context.Context, localID string) error {
	if err := s.deleteTree(ctx, localID); err != nil {
		return err
	}
	s.changed(ctx)
	return nil
}

// deleteTree deletes the subwork and its entries.
func (s *subworkService) deleteTree(ctx context.Context, localID string) error {
	entries, err := children(ctx, s.table, s.entries, localID)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := s.entries.SoftDelete(ctx, e.LocalID, markEntryDeleted); err != nil {
			return fmt.Errorf("delete entry %s: %w", e.LocalID, err)
		}
	}
	return s.table.SoftDelete(ctx, localID, nil)
}
