package client

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/civigo/internal/client/config"
	"github.com/dmitrijs2005/civigo/internal/client/netstatus"
	"github.com/dmitrijs2005/civigo/internal/client/remote"
	"github.com/dmitrijs2005/civigo/internal/client/reports"
	"github.com/dmitrijs2005/civigo/internal/client/services"
	"github.com/dmitrijs2005/civigo/internal/client/session"
	"github.com/dmitrijs2005/civigo/internal/client/syncer"
	"github.com/dmitrijs2005/civigo/internal/logging"
	"golang.org/x/sync/errgroup"
)

// Runtime is the assembled client.
type Runtime struct {
	Local    *Local
	Remote   *remote.Client
	Gate     *netstatus.Gate
	Sync     *syncer.Manager
	Services *services.Set
	Auth     services.AuthService
	Sessions *session.Store

	// Publisher is nil unless report storage is configured.
	Publisher *reports.Publisher

	cfg    *config.Config
	logger logging.Logger
	group  errgroup.Group
}

// New opens the local database and wires the remote client, the
// availability gate, the sync engines and the services on top of it.
func New(ctx context.Context, cfg *config.Config, logger logging.Logger) (*Runtime, error) {
	local, err := InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	rc := remote.New(cfg.ServerBaseURL, cfg.RequestTimeout, logger)
	gate := netstatus.NewGate(rc, cfg.RequestTimeout, logger)
	sessions := session.NewStore(local.Metadata)

	mgr := syncer.NewManager(gate, sessions, local.Metadata, logger,
		syncer.NewEngine(syncer.ProjectBinding(local.Projects, rc.Projects()), logger),
		syncer.NewEngine(syncer.WorkBinding(local.Works, rc.Works(), local.Projects), logger),
		syncer.NewEngine(syncer.SubworkBinding(local.Subworks, rc.Subworks(), local.Works), logger),
		syncer.NewEngine(syncer.EntryBinding(local.Entries, rc.Entries(), local.Subworks), logger),
	)

	set := services.New(services.Tables{
		Projects: local.Projects,
		Works:    local.Works,
		Subworks: local.Subworks,
		Entries:  local.Entries,
	}, mgr)

	rt := &Runtime{
		Local:    local,
		Remote:   rc,
		Gate:     gate,
		Sync:     mgr,
		Services: set,
		Auth:     services.NewAuthService(rc, sessions),
		Sessions: sessions,
		cfg:      cfg,
		logger:   logger.With("module", "client"),
	}

	s3 := reports.S3Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
	}
	if s3.Enabled() {
		pub, err := reports.NewPublisher(ctx, s3)
		if err != nil {
			_ = local.Close()
			return nil, fmt.Errorf("report storage: %w", err)
		}
		rt.Publisher = pub
	}

	return rt, nil
}

// Start launches the availability watcher and the periodic sync. A
// transition to online starts a sync right away. Both loops stop with ctx.
func (r *Runtime) Start(ctx context.Context) {
	r.Gate.OnChange(r.Sync.OnOnline(ctx))

	r.group.Go(func() error {
		if r.cfg.OnlineCheckInterval <= 0 {
			r.Gate.Check(ctx)
			return nil
		}
		r.Gate.Watch(ctx, r.cfg.OnlineCheckInterval)
		return nil
	})
	r.group.Go(func() error {
		r.Sync.Run(ctx, r.cfg.SyncInterval)
		return nil
	})
	r.logger.Info(ctx, "client started", "server", r.cfg.ServerBaseURL, "database", r.cfg.DatabasePath)
}

// Close waits for the loops started by Start (cancel their context first)
// and for any background sync, then closes the database.
func (r *Runtime) Close() error {
	_ = r.group.Wait()
	r.Sync.Wait()
	return r.Local.Close()
}
