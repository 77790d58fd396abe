package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/civigo/internal/client/remote"
	"github.com/dmitrijs2005/civigo/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and stores the session. It needs the
// server; the stored session then keeps working offline until it expires.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(password)

	sess, err := a.auth.Login(ctx, email, string(password))
	switch {
	case errors.Is(err, common.ErrorInvalidLoginPassword):
		return err
	case errors.Is(err, remote.ErrUnavailable):
		return fmt.Errorf("server unreachable, try again when online")
	case err != nil:
		a.logger.Error(ctx, "login failed", "error", err)
		return err
	}

	a.logger.Info(ctx, "logged in", "user", sess.UserID)
	success(a.out, "Logged in as %s", sess.UserID)
	return nil
}

// Logout forgets the session. Local data stays on the device.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	success(a.out, "Logged out")
	return nil
}
