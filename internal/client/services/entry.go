package services

import (
	"context"

	"github.com/dmitrijs2005/civigo/internal/client/models"
)

type EntryService interface {
	RecordService[*models.Entry]
	// ListBySubwork returns the live entries of a subwork and their totals.
	ListBySubwork(ctx context.Context, subworkID string) ([]*models.Entry, models.Totals, error)
}

type entryService struct {
	*recordService[*models.Entry]
	subworks Table[*models.Subwork]
}

// touchEntry records that a local change is pending: an update for an
// entry the server already has, otherwise the create still pending.
func touchEntry(e *models.Entry) {
	if e.CreateSynced {
		e.Operation = models.OperationUpdate
	} else {
		e.Operation = models.OperationCreate
	}
}

func markEntryDeleted(e *models.Entry) {
	e.Operation = models.OperationDelete
}

func (s *entryService) subwork(ctx context.Context, localID string) (*models.Subwork, error) {
	ref, err := parentRef(ctx, s.subworks, localID)
	if err != nil {
		return nil, err
	}
	return s.subworks.Get(ctx, ref.LocalID)
}

// AddLocal stores e under the subwork named by e.Subwork.LocalID, deriving
// quantity and total from the subwork's unit and default rate.
func (s *entryService) AddLocal(ctx context.Context, e *models.Entry) (string, error) {
	sw, err := s.subwork(ctx, e.Subwork.LocalID)
	if err != nil {
		return "", err
	}
	e.Subwork = models.ParentRef{LocalID: sw.LocalID, RemoteID: sw.RemoteID}
	if e.Kind == "" {
		e.Kind = models.KindDetails
	}
	e.Recompute(sw.Unit, sw.DefaultRate)
	e.Operation = models.OperationCreate
	e.CreateSynced = false
	return s.recordService.AddLocal(ctx, e)
}

// UpdateLocal applies mutate and recomputes the derived fields.
func (s *entryService) UpdateLocal(ctx context.Context, localID string, mutate func(*models.Entry) error) error {
	current, err := s.Get(ctx, localID)
	if err != nil {
		return err
	}
	sw, err := s.subwork(ctx, current.Subwork.LocalID)
	if err != nil {
		return err
	}

	err = s.table.Update(ctx, localID, func(e *models.Entry) error {
		kept := e.CreateSynced
		if err := mutate(e); err != nil {
			return err
		}
		e.CreateSynced = kept
		e.Recompute(sw.Unit, sw.DefaultRate)
		touchEntry(e)
		return models.Validate(e)
	})
	if err != nil {
		return err
	}
	s.changed(ctx)
	return nil
}

// SoftDeleteLocal marks the entry for remote deletion, or removes it
// outright when the server never saw it.
func (s *entryService) SoftDeleteLocal(ctx context.Context, localID string) error {
	if err := s.table.SoftDelete(ctx, localID, markEntryDeleted); err != nil {
		return err
	}
	s.changed(ctx)
	return nil
}

func (s *entryService) ListBySubwork(ctx context.Context, subworkID string) ([]*models.Entry, models.Totals, error) {
	entries, err := children(ctx, s.subworks, s.table, subworkID)
	if err != nil {
		return nil, models.Totals{}, err
	}
	return entries, models.SumTotals(entries), nil
}
