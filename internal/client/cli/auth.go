package cli

import (
	"context"
	"os"

	"github.com/dmitrijs2005/englishhq/internal/client/forms"
	"github.com/dmitrijs2005/englishhq/internal/client/nav"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getMultiline = GetMultiline

// Login prompts the user for credentials and submits the login action. The
// form controller renders the outcome; on success the session is persisted
// and the home page becomes current.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	a.forms.Submit(ctx, forms.ActionLogin, forms.Input{
		Username: userName,
		Password: string(password),
	})
	return nil
}

// Register prompts for account details and submits the register action,
// which creates the account and logs in with the same credentials.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	confirm, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	a.forms.Submit(ctx, forms.ActionRegister, forms.Input{
		Username:        userName,
		Email:           email,
		Password:        string(password),
		ConfirmPassword: string(confirm),
	})
	return nil
}

// Logout destroys the session locally and returns to the guest home page.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Clear(ctx); err != nil {
		return err
	}
	a.view.ShowGuestNav()
	a.nav.GoTo(ctx, nav.PageHome)
	return nil
}
