package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/civigo/internal/client/session"
	"github.com/dmitrijs2005/civigo/internal/client/syncer"
)

// Sync runs a full sync now. Being offline or logged out is not an error
// for the user: local changes simply wait.
func (a *App) Sync(ctx context.Context) error {
	err := a.syncer.FullSync(ctx)
	switch {
	case err == nil:
		success(a.out, "Synced")
		return nil
	case errors.Is(err, syncer.ErrOffline):
		warning(a.out, "server unreachable, changes stay local")
		return nil
	case errors.Is(err, session.ErrNoSession):
		warning(a.out, "not logged in, run 'login' first")
		return nil
	}
	a.logger.Warn(ctx, "sync finished with errors", "error", err)
	return fmt.Errorf("sync: %w", err)
}

// Status prints connectivity, the session and the last clean sync.
func (a *App) Status(ctx context.Context) error {
	mode := string(a.currentMode())
	if mode == "" {
		mode = "unknown"
	}
	fmt.Fprintf(a.out, "Server:    %s (%s)\n", a.config.ServerBaseURL, mode)

	sess, err := a.auth.Current(ctx)
	switch {
	case err == nil:
		fmt.Fprintf(a.out, "User:      %s (expires %s)\n", sess.UserID, formatTime(sess.ExpiresAt))
	case errors.Is(err, session.ErrNoSession):
		fmt.Fprintln(a.out, "User:      not logged in")
	default:
		return err
	}

	last, ok, err := a.syncer.LastSync(ctx)
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintf(a.out, "Last sync: %s\n", formatTime(last))
	} else {
		fmt.Fprintln(a.out, "Last sync: never")
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Local().Format("2006-01-02 15:04")
}
