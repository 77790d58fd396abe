package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/civigo/internal/client/models"
	"github.com/dmitrijs2005/civigo/internal/client/store"
)

// Table is the part of store.Table the services use.
type Table[T models.Record] interface {
	Insert(ctx context.Context, rec T) (string, error)
	Get(ctx context.Context, localID string) (T, error)
	Update(ctx context.Context, localID string, mutate func(T) error) error
	SoftDelete(ctx context.Context, localID string, mark func(T)) error
	ListLive(ctx context.Context) ([]T, error)
	QueryByParent(ctx context.Context, ref models.ParentRef, pred func(T) bool) ([]T, error)
}

// Syncer is the sync manager.
type Syncer interface {
	FullSync(ctx context.Context) error
	Trigger(ctx context.Context)
}

// RecordService holds the operations every entity supports.
type RecordService[T models.Record] interface {
	// GetAllLocal returns live rows, most recently updated first.
	GetAllLocal(ctx context.Context) ([]T, error)
	Get(ctx context.Context, localID string) (T, error)
	AddLocal(ctx context.Context, rec T) (string, error)
	UpdateLocal(ctx context.Context, localID string, mutate func(T) error) error
	SoftDeleteLocal(ctx context.Context, localID string) error
	FullSync(ctx context.Context) error
}

type recordService[T models.Record] struct {
	table  Table[T]
	syncer Syncer
}

func (s *recordService[T]) GetAllLocal(ctx context.Context) ([]T, error) {
	return s.table.ListLive(ctx)
}

// Get returns a live row.
func (s *recordService[T]) Get(ctx context.Context, localID string) (T, error) {
	rec, err := s.table.Get(ctx, localID)
	if err != nil {
		return rec, err
	}
	if rec.Meta().Deleted {
		var zero T
		return zero, store.ErrNotFound
	}
	return rec, nil
}

func (s *recordService[T]) AddLocal(ctx context.Context, rec T) (string, error) {
	if err := models.Validate(rec); err != nil {
		return "", err
	}
	id, err := s.table.Insert(ctx, rec)
	if err != nil {
		return "", err
	}
	s.changed(ctx)
	return id, nil
}

// UpdateLocal applies mutate and validates the result before it is stored.
func (s *recordService[T]) UpdateLocal(ctx context.Context, localID string, mutate func(T) error) error {
	err := s.table.Update(ctx, localID, func(rec T) error {
		if err := mutate(rec); err != nil {
			return err
		}
		return models.Validate(rec)
	})
	if err != nil {
		return err
	}
	s.changed(ctx)
	return nil
}

func (s *recordService[T]) SoftDeleteLocal(ctx context.Context, localID string) error {
	if err := s.table.SoftDelete(ctx, localID, nil); err != nil {
		return err
	}
	s.changed(ctx)
	return nil
}

func (s *recordService[T]) FullSync(ctx context.Context) error {
	if s.syncer == nil {
		return nil
	}
	return s.syncer.FullSync(ctx)
}

func (s *recordService[T]) changed(ctx context.Context) {
	if s.syncer != nil {
		s.syncer.Trigger(ctx)
	}
}

// ErrNoParent is returned when a child names a parent that does not exist
// locally. It matches store.ErrNotFound.
var ErrNoParent = fmt.Errorf("parent %w", store.ErrNotFound)

// parentRef loads a live parent and returns a reference carrying both ids.
func parentRef[P models.Record](ctx context.Context, parents Table[P], localID string) (models.ParentRef, error) {
	if localID == "" {
		return models.ParentRef{}, ErrNoParent
	}
	p, err := parents.Get(ctx, localID)
	if errors.Is(err, store.ErrNotFound) {
		return models.ParentRef{}, ErrNoParent
	}
	if err != nil {
		return models.ParentRef{}, err
	}
	if p.Meta().Deleted {
		return models.ParentRef{}, ErrNoParent
	}
	return models.ParentRef{LocalID: p.Meta().LocalID, RemoteID: p.Meta().RemoteID}, nil
}

// children lists the live rows under a parent.
func children[P, T models.Record](ctx context.Context, parents Table[P], table Table[T], parentID string) ([]T, error) {
	ref, err := parentRef(ctx, parents, parentID)
	if err != nil {
		return nil, err
	}
	return table.QueryByParent(ctx, ref, nil)
}
