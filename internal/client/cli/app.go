package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/civigo/internal/client/client"
	"github.com/dmitrijs2005/civigo/internal/client/config"
	"github.com/dmitrijs2005/civigo/internal/client/netstatus"
	"github.com/dmitrijs2005/civigo/internal/client/services"
	"github.com/dmitrijs2005/civigo/internal/logging"
)

// SyncManager runs and reports full syncs.
type SyncManager interface {
	FullSync(ctx context.Context) error
	LastSync(ctx context.Context) (time.Time, bool, error)
}

// ReportPublisher uploads an exported sheet and returns its storage key
// and a download link.
type ReportPublisher interface {
	Publish(ctx context.Context, name string, data []byte) (string, string, error)
}

type App struct {
	config    *config.Config
	runtime   *client.Runtime
	set       *services.Set
	auth      services.AuthService
	syncer    SyncManager
	mode      func() netstatus.Mode
	publisher ReportPublisher
	logger    logging.Logger
	reader    *bufio.Reader
	out       io.Writer
}

// NewApp builds the client runtime and an App reading from stdin.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	rt, err := client.New(ctx, c, logger)
	if err != nil {
		logger.Error(ctx, "error initializing client", "error", err)
		return nil, err
	}

	a := &App{
		config:  c,
		runtime: rt,
		set:     rt.Services,
		auth:    rt.Auth,
		syncer:  rt.Sync,
		mode:    rt.Gate.Mode,
		logger:  logger.With("module", "cli"),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
	if rt.Publisher != nil {
		a.publisher = rt.Publisher
	}
	return a, nil
}

// Run starts the background watcher and sync loop, then blocks in the REPL
// until the user quits or stdin closes.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	a.runtime.Start(ctx)
	defer func() {
		cancel()
		if err := a.runtime.Close(); err != nil {
			a.logger.Error(ctx, "close client", "error", err)
		}
	}()

	a.Root(ctx)
	return nil
}

// currentMode is netstatus.ModeUnknown when nothing watches the server.
func (a *App) currentMode() netstatus.Mode {
	if a.mode == nil {
		return netstatus.ModeUnknown
	}
	return a.mode()
}
