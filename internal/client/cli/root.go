package cli

import (
	"context"
	"fmt"
)

// getStatus renders the prompt suffix: the logged-in user and the
// connectivity mode, e.g. "(u1 online)".
func (a *App) getStatus(ctx context.Context) string {
	s := ""
	if a.auth != nil {
		if sess, err := a.auth.Current(ctx); err == nil && sess.UserID != "" {
			s = sess.UserID + " "
		}
	}
	if m := a.currentMode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root prints the banner and runs the REPL on the app's reader.
func (a *App) Root(ctx context.Context) {
	a.logger.Info(ctx, "repl started")
	fmt.Fprintln(a.out, titleStyle.Render("civigo measurement book")+" (type 'help' for commands)")

	runREPL(ctx, a, func() string { return a.getStatus(ctx) }, a.reader)
}
