// Package netstatus tracks whether the remote service is reachable.
//
// A Gate pings the server on an interval and flips between offline and
// online. Listeners registered with OnChange hear every transition; the
// sync manager uses that to start a sync as soon as the server is back.
package netstatus

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/civigo/internal/logging"
)

type Mode string

const (
	ModeUnknown Mode = ""
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// Pinger checks reachability. remote.Client implements it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Gate is the current network mode. The zero mode is unknown and counts as
// offline.
type Gate struct {
	pinger  Pinger
	timeout time.Duration
	logger  logging.Logger

	mu        sync.RWMutex
	mode      Mode
	listeners []func(online bool)
}

// NewGate returns a gate in unknown mode. timeout bounds a single ping.
func NewGate(p Pinger, timeout time.Duration, logger logging.Logger) *Gate {
	return &Gate{pinger: p, timeout: timeout, logger: logger.With("module", "netstatus")}
}

func (g *Gate) Mode() Mode {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.mode
}

func (g *Gate) Online() bool { return g.Mode() == ModeOnline }

// OnChange registers fn for every mode transition.
func (g *Gate) OnChange(fn func(online bool)) {
	g.mu.Lock()
	g.listeners = append(g.listeners, fn)
	g.mu.Unlock()
}

// Set forces the mode, notifying listeners when it changes.
func (g *Gate) Set(ctx context.Context, mode Mode) {
	g.mu.Lock()
	if g.mode == mode {
		g.mu.Unlock()
		return
	}
	g.mode = mode
	listeners := append([]func(bool){}, g.listeners...)
	g.mu.Unlock()

	g.logger.Info(ctx, "switched mode", "mode", string(mode))
	for _, fn := range listeners {
		fn(mode == ModeOnline)
	}
}

// Check pings once and updates the mode.
func (g *Gate) Check(ctx context.Context) Mode {
	pctx := ctx
	if g.timeout > 0 {
		var cancel context.CancelFunc
		pctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	if err := g.pinger.Ping(pctx); err != nil {
		g.logger.Debug(ctx, "ping failed", "error", err)
		g.Set(ctx, ModeOffline)
	} else {
		g.Set(ctx, ModeOnline)
	}
	return g.Mode()
}

// Watch checks right away and then every interval until ctx is done.
func (g *Gate) Watch(ctx context.Context, interval time.Duration) {
	g.Check(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			g.Check(ctx)
		case <-ctx.Done():
			return
		}
	}
}
