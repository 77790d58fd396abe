package syncer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/civigo/internal/client/models"
	"github.com/dmitrijs2005/civigo/internal/client/remote"
	"github.com/dmitrijs2005/civigo/internal/client/session"
	"github.com/dmitrijs2005/civigo/internal/client/store"
	"github.com/dmitrijs2005/civigo/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// PushReport counts the outcome of one push.
type PushReport struct {
	Created  int
	Updated  int
	Deleted  int
	Failed   int
	Deferred int
	// Stale counts rows that changed while their push was in flight. They
	// stay dirty and go out again next cycle.
	Stale int
}

func (r PushReport) add(o PushReport) PushReport {
	return PushReport{
		Created:  r.Created + o.Created,
		Updated:  r.Updated + o.Updated,
		Deleted:  r.Deleted + o.Deleted,
		Failed:   r.Failed + o.Failed,
		Deferred: r.Deferred + o.Deferred,
		Stale:    r.Stale + o.Stale,
	}
}

// Engine syncs one entity type.
type Engine[T models.Record] struct {
	b      Binding[T]
	logger logging.Logger
	group  singleflight.Group

	newID func() string
	now   func() time.Time
}

func NewEngine[T models.Record](b Binding[T], logger logging.Logger) *Engine[T] {
	return &Engine[T]{
		b:      b,
		logger: logger.With("module", "syncer", "entity", b.Name),
		newID:  uuid.NewString,
		now:    time.Now,
	}
}

// Name returns the entity type name.
func (e *Engine[T]) Name() string { return e.b.Name }

// Sync pushes, then pulls. Concurrent calls for the same engine share one
// run.
func (e *Engine[T]) Sync(ctx context.Context, sess session.Session) (PushReport, error) {
	v, err, shared := e.group.Do(e.b.Name, func() (any, error) {
		rep, pushErr := e.Push(ctx, sess)
		pullErr := e.Pull(ctx, sess)
		return rep, errors.Join(pushErr, pullErr)
	})
	if shared {
		e.logger.Debug(ctx, "joined in-flight sync")
	}
	rep, _ := v.(PushReport)
	return rep, err
}

type pending[T models.Record] struct {
	rec T
	op  Op
}

// Push sends every dirty row: all creates, then all updates, then all
// deletes. A failing row is logged and left dirty; it never stops the
// batch. The returned error is set only when the dirty set cannot be read.
func (e *Engine[T]) Push(ctx context.Context, sess session.Session) (PushReport, error) {
	var rep PushReport

	dirty, err := e.b.Local.ListDirty(ctx)
	if err != nil {
		return rep, fmt.Errorf("push %s: %w", e.b.Name, err)
	}

	var creates, updates, deletes []pending[T]
	for _, rec := range dirty {
		m := rec.Meta()
		switch {
		case m.Deleted && m.RemoteID == "":
			// never reached the server, nothing to tell it
			if err := e.b.Local.HardDelete(ctx, m.LocalID); err != nil {
				e.logger.Warn(ctx, "drop unpushed deleted row", "local_id", m.LocalID, "error", err)
			}
		case m.Deleted:
			deletes = append(deletes, pending[T]{rec, OpDelete})
		case m.RemoteID == "":
			creates = append(creates, pending[T]{rec, OpCreate})
		default:
			updates = append(updates, pending[T]{rec, OpUpdate})
		}
	}

	for _, group := range [][]pending[T]{creates, updates, deletes} {
		for _, p := range group {
			rep = rep.add(e.pushOne(ctx, sess, p.rec, p.op))
		}
	}

	if rep != (PushReport{}) {
		e.logger.Info(ctx, "push finished",
			"created", rep.Created, "updated", rep.Updated, "deleted", rep.Deleted,
			"failed", rep.Failed, "deferred", rep.Deferred, "stale", rep.Stale)
	}
	return rep, nil
}

// gate resolves the row's parent and reports whether op may proceed.
func (e *Engine[T]) gate(ctx context.Context, rec T, op Op) (bool, error) {
	ref := rec.Parent()
	if ref == nil || e.b.Parents == nil {
		return true, nil
	}

	resolved, err := e.b.Parents.ResolveParent(ctx, *ref)
	if err != nil {
		return false, err
	}
	if resolved != *ref {
		if err := e.b.Local.SetParent(ctx, rec.Meta().LocalID, resolved); err != nil {
			return false, err
		}
		*ref = resolved
	}

	if resolved.RemoteID == "" && (op == OpCreate || e.b.GateAllOps) {
		return false, nil
	}
	return true, nil
}

func (e *Engine[T]) apply(op Op) func(T) {
	if e.b.AfterPush == nil {
		return nil
	}
	return func(rec T) { e.b.AfterPush(rec, op) }
}

func (e *Engine[T]) pushOne(ctx context.Context, sess session.Session, rec T, op Op) PushReport {
	m := rec.Meta()
	log := e.logger.With("op", string(op), "local_id", m.LocalID)

	ok, err := e.gate(ctx, rec, op)
	if err != nil {
		log.Warn(ctx, "resolve parent failed", "error", err)
		return PushReport{Failed: 1}
	}
	if !ok {
		log.Debug(ctx, "parent not on server yet, deferring")
		return PushReport{Deferred: 1}
	}

	switch op {
	case OpCreate:
		return e.pushCreate(ctx, log, sess, rec)
	case OpUpdate:
		if err := e.b.Remote.Update(ctx, sess, rec); err != nil {
			log.Warn(ctx, "remote update failed", "remote_id", m.RemoteID, "error", err)
			return PushReport{Failed: 1}
		}
		current, err := e.b.Local.MarkSynced(ctx, m.LocalID, "", m.Revision, e.apply(OpUpdate))
		switch {
		case errors.Is(err, store.ErrNotFound):
			return PushReport{Updated: 1}
		case err != nil:
			log.Error(ctx, "mark synced failed", "error", err)
			return PushReport{Failed: 1}
		case !current:
			return PushReport{Updated: 1, Stale: 1}
		}
		return PushReport{Updated: 1}
	default:
		err := e.b.Remote.Delete(ctx, sess, rec)
		if err != nil && !errors.Is(err, remote.ErrNotFound) {
			log.Warn(ctx, "remote delete failed", "remote_id", m.RemoteID, "error", err)
			return PushReport{Failed: 1}
		}
		if err := e.b.Local.HardDelete(ctx, m.LocalID); err != nil {
			log.Error(ctx, "drop deleted row failed", "error", err)
			return PushReport{Failed: 1}
		}
		return PushReport{Deleted: 1}
	}
}

func (e *Engine[T]) pushCreate(ctx context.Context, log logging.Logger, sess session.Session, rec T) PushReport {
	m := rec.Meta()

	remoteID, err := e.b.Remote.Create(ctx, sess, rec)
	if err != nil {
		log.Warn(ctx, "remote create failed", "error", err)
		return PushReport{Failed: 1}
	}

	current, err := e.b.Local.MarkSynced(ctx, m.LocalID, remoteID, m.Revision, e.apply(OpCreate))
	switch {
	case errors.Is(err, store.ErrNotFound):
		// Deleted locally while the create was in flight. Remove the orphan
		// so it does not come back with the next pull.
		m.RemoteID = remoteID
		if err := e.b.Remote.Delete(ctx, sess, rec); err != nil {
			log.Warn(ctx, "delete orphaned remote row failed", "remote_id", remoteID, "error", err)
		}
		return PushReport{Created: 1}
	case err != nil:
		// The server has the row but we could not record its id; the next
		// pull imports it as a separate row.
		log.Error(ctx, "mark synced failed", "remote_id", remoteID, "error", err)
		return PushReport{Failed: 1}
	case !current:
		return PushReport{Created: 1, Stale: 1}
	}
	return PushReport{Created: 1}
}

// Pull fetches the remote snapshot and merges it into the local table. A
// failed fetch leaves the table untouched.
func (e *Engine[T]) Pull(ctx context.Context, sess session.Session) error {
	snapshot, err := e.b.Remote.List(ctx, sess, "")
	if err != nil {
		return fmt.Errorf("pull %s: %w", e.b.Name, err)
	}

	// Parents are resolved before any transaction starts; the store runs on
	// a single connection.
	cache := make(map[string]models.ParentRef)
	for _, rec := range snapshot {
		if err := e.resolveRemoteParent(ctx, rec, cache); err != nil {
			return fmt.Errorf("pull %s: %w", e.b.Name, err)
		}
	}

	if !e.b.ScopeByParent {
		return e.replace(ctx, nil, snapshot)
	}
	return e.pullScoped(ctx, snapshot, cache)
}

func (e *Engine[T]) resolveRemoteParent(ctx context.Context, rec T, cache map[string]models.ParentRef) error {
	ref := rec.Parent()
	if ref == nil || e.b.Parents == nil || ref.RemoteID == "" {
		return nil
	}
	if r, ok := cache[ref.RemoteID]; ok {
		*ref = r
		return nil
	}
	r, err := e.b.Parents.ResolveParent(ctx, *ref)
	if err != nil {
		return err
	}
	cache[ref.RemoteID] = r
	*ref = r
	return nil
}

// pullScoped reconciles each parent separately: every parent present in
// the snapshot and every parent referenced locally, so rows of a parent
// whose snapshot group is empty are still checked for server deletion.
func (e *Engine[T]) pullScoped(ctx context.Context, snapshot []T, cache map[string]models.ParentRef) error {
	groups := make(map[string][]T)
	for _, rec := range snapshot {
		if ref := rec.Parent(); ref != nil && ref.RemoteID != "" {
			groups[ref.RemoteID] = append(groups[ref.RemoteID], rec)
		}
	}

	scopes := make(map[string]models.ParentRef, len(groups))
	var order []string
	addScope := func(ref models.ParentRef) {
		if ref.RemoteID == "" {
			// the server has nothing under a parent it does not know
			return
		}
		if _, ok := scopes[ref.RemoteID]; ok {
			return
		}
		scopes[ref.RemoteID] = ref
		order = append(order, ref.RemoteID)
	}

	for id := range groups {
		addScope(cache[id])
	}

	locals, err := e.b.Local.Parents(ctx)
	if err != nil {
		return fmt.Errorf("pull %s: %w", e.b.Name, err)
	}
	for _, ref := range locals {
		if e.b.Parents != nil {
			if ref, err = e.b.Parents.ResolveParent(ctx, ref); err != nil {
				return fmt.Errorf("pull %s: %w", e.b.Name, err)
			}
		}
		addScope(ref)
	}

	var errs []error
	for _, id := range order {
		scope := scopes[id]
		if err := e.replace(ctx, &scope, groups[id]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (e *Engine[T]) replace(ctx context.Context, scope *models.ParentRef, snapshot []T) error {
	var plan Plan[T]
	err := e.b.Local.ReplaceAll(ctx, scope, func(existing []T) ([]T, error) {
		plan = Reconcile(existing, snapshot, ReconcileOptions[T]{
			NewID: e.newID,
			Now:   e.now,
			Merge: e.b.Merge,
		})
		return plan.Rows, nil
	})
	if err != nil {
		return fmt.Errorf("pull %s: %w", e.b.Name, err)
	}

	if plan.Inserted+plan.Overwritten+plan.Dropped > 0 {
		args := []any{"inserted", plan.Inserted, "overwritten", plan.Overwritten,
			"dropped", plan.Dropped, "pending", plan.Pending, "kept", plan.Kept}
		if scope != nil {
			args = append(args, "parent", scope.RemoteID)
		}
		e.logger.Info(ctx, "pull merged", args...)
	}
	return nil
}
