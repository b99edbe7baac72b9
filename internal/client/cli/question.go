package cli

import (
	"context"
	"os"

	"github.com/dmitrijs2005/englishhq/internal/client/forms"
	"github.com/dmitrijs2005/englishhq/internal/client/nav"
)

// Ask navigates to the question page and, when the guard lets the user
// through, prompts for a question and submits it.
func (a *App) Ask(ctx context.Context) error {
	a.nav.GoTo(ctx, nav.PageQuestion)
	if a.nav.Current() != nav.PageQuestion {
		return nil
	}

	question, err := getMultiline(a.reader, "Enter your question", os.Stdout)
	if err != nil {
		return err
	}

	a.forms.Submit(ctx, forms.ActionAsk, forms.Input{Question: question})
	return nil
}

// History navigates to the history page; entering it reloads the list.
func (a *App) History(ctx context.Context) error {
	a.nav.GoTo(ctx, nav.PageHistory)
	return nil
}

// Profile navigates to the profile page.
func (a *App) Profile(ctx context.Context) error {
	a.nav.GoTo(ctx, nav.PageProfile)
	return nil
}

// Home navigates back to the home page.
func (a *App) Home(ctx context.Context) error {
	a.nav.GoTo(ctx, nav.PageHome)
	return nil
}
