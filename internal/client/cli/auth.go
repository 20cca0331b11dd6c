package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/ingestctl/internal/client/client"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getMultiline = GetMultiline

// Health probes the backend's unauthenticated /health endpoint.
func (a *App) Health(ctx context.Context) error {
	h, err := a.authService.Ping(ctx)
	if err != nil {
		a.setMode(ctx, ModeOffline)
		return err
	}
	a.setMode(ctx, ModeOnline)
	fmt.Fprintf(a.out, "API %s: %s\n", a.cfg.APIBaseURL, h.Status)
	return nil
}

// Login asks for the password (and the username when none is given) and
// opens a session. The password is wiped before returning.
func (a *App) Login(ctx context.Context, username string) error {
	var err error
	if username == "" {
		username, err = getSimpleText(a.reader, "Enter username", a.out)
		if err != nil {
			return err
		}
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	if err := a.authService.Login(ctx, username, password); err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			return fmt.Errorf("invalid username or password: %w", err)
		}
		return err
	}

	fmt.Fprintln(a.out, "Logged in as", username)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u, err := a.authService.WhoAmI(ctx)
	if err != nil {
		return err
	}
	tw := newTable(a.out)
	row(tw, "User:", orDash(u.Username))
	row(tw, "ID:", orDash(u.UserID))
	row(tw, "Email:", orDash(u.Email))
	row(tw, "Authenticated:", u.Authenticated)
	return tw.Flush()
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
