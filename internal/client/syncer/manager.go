package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/civigo/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/civigo/internal/client/session"
	"github.com/dmitrijs2005/civigo/internal/logging"
)

// ErrOffline is returned by FullSync while the server is unreachable.
var ErrOffline = errors.New("server is offline")

// LastSyncKey is the metadata key holding the time of the last clean sync.
const LastSyncKey = "sync.last_success"

// Syncer is one engine as seen by the Manager.
type Syncer interface {
	Name() string
	Sync(ctx context.Context, sess session.Session) (PushReport, error)
}

// Gate reports network availability.
type Gate interface {
	Online() bool
}

// Manager runs all engines in hierarchy order.
type Manager struct {
	engines  []Syncer
	gate     Gate
	sessions session.Source
	meta     metadata.Repository
	logger   logging.Logger

	wg  sync.WaitGroup
	now func() time.Time
}

// NewManager returns a manager running engines in the given order. Parents
// must come before their children. meta may be nil.
func NewManager(gate Gate, sessions session.Source, meta metadata.Repository, logger logging.Logger, engines ...Syncer) *Manager {
	return &Manager{
		engines:  engines,
		gate:     gate,
		sessions: sessions,
		meta:     meta,
		logger:   logger.With("module", "syncer"),
		now:      time.Now,
	}
}

// FullSync pushes and pulls every entity type. A failing type is logged and
// reported but does not stop the types after it.
func (m *Manager) FullSync(ctx context.Context) error {
	if m.gate != nil && !m.gate.Online() {
		return ErrOffline
	}
	sess, err := m.sessions.Current(ctx)
	if err != nil {
		return err
	}

	var errs []error
	for _, e := range m.engines {
		rep, err := e.Sync(ctx, sess)
		if err != nil {
			m.logger.Warn(ctx, "sync failed", "entity", e.Name(), "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", e.Name(), err))
			continue
		}
		if rep.Failed > 0 {
			m.logger.Warn(ctx, "sync left rows pending", "entity", e.Name(), "failed", rep.Failed)
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	if m.meta != nil {
		if err := m.meta.SetTime(ctx, LastSyncKey, m.now()); err != nil {
			m.logger.Warn(ctx, "record last sync time", "error", err)
		}
	}
	return nil
}

// LastSync returns the time of the last FullSync that finished without
// errors.
func (m *Manager) LastSync(ctx context.Context) (time.Time, bool, error) {
	if m.meta == nil {
		return time.Time{}, false, nil
	}
	return m.meta.GetTime(ctx, LastSyncKey)
}

// Trigger starts a FullSync in the background. It keeps running after ctx
// is cancelled; Wait blocks until every triggered sync has returned.
func (m *Manager) Trigger(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		err := m.FullSync(ctx)
		switch {
		case err == nil:
		case errors.Is(err, ErrOffline), errors.Is(err, session.ErrNoSession):
			m.logger.Debug(ctx, "sync skipped", "reason", err)
		default:
			m.logger.Warn(ctx, "background sync finished with errors", "error", err)
		}
	}()
}

// Wait blocks until background syncs started by Trigger are done.
func (m *Manager) Wait() { m.wg.Wait() }

// Run triggers a sync every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Trigger(ctx)
		}
	}
}

// OnOnline is a netstatus callback: a transition to online starts a sync.
func (m *Manager) OnOnline(ctx context.Context) func(online bool) {
	return func(online bool) {
		if online {
			m.Trigger(ctx)
		}
	}
}
