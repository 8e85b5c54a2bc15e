package cli

import (
	"context"
	"os"
	"strings"

	"github.com/dvelez2005/civicwatch/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for an email, a password and the admin flag and creates
// a new account. A successful registration signs the user in; the password
// byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	adminAnswer, err := getSimpleText(a.reader, "Register as admin? (y/N)", os.Stdout)
	if err != nil {
		return err
	}
	admin := strings.EqualFold(adminAnswer, "y") || strings.EqualFold(adminAnswer, "yes")

	if err := a.auth.Register(ctx, email, string(password), admin); err != nil {
		return err
	}

	printlnFn("Success!")
	return a.afterLogin(ctx)
}

// Login prompts for credentials, authenticates, and loads the pinned set
// for the fresh session. The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Login(ctx, email, string(password)); err != nil {
		return err
	}

	printlnFn("Logged in.")
	return a.afterLogin(ctx)
}

// afterLogin warms up per-user state. A failed pin load is reported but does
// not undo the login.
func (a *App) afterLogin(ctx context.Context) error {
	if err := a.pins.Load(ctx); err != nil {
		a.log.Warn(ctx, "pin load failed", "error", err)
	}
	return nil
}

// Logout clears the session, the stored credentials and per-user state.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.pins.Reset()
	a.form.Clear()
	printlnFn("Logged out.")
	return nil
}

// DeleteAccount removes the account on the backend after an explicit
// confirmation, then clears all local state.
func (a *App) DeleteAccount(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "Delete your account permanently? Type 'yes' to confirm", os.Stdout)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "yes") {
		printlnFn("Aborted.")
		return nil
	}

	if err := a.auth.DeleteAccount(ctx); err != nil {
		return a.handleErr(ctx, err)
	}
	a.pins.Reset()
	a.form.Clear()
	printlnFn("Account deleted.")
	return nil
}
