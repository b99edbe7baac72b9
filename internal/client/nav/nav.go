// Package nav maps page identifiers to visible-page transitions and guards
// pages that require an authenticated session.
package nav

import (
	"context"

	"github.com/dmitrijs2005/englishhq/internal/client/ui"
)

// Page ids. The navigable set is fixed at build time.
const (
	PageHome     = "home"
	PageLogin    = "login"
	PageRegister = "register"
	PageProfile  = "profile"
	PageQuestion = "question"
	PageHistory  = "history"
)

// Page is one navigable view.
type Page struct {
	ID           string
	RequiresAuth bool
}

// AuthState is the slice of the session store the guard needs.
type AuthState interface {
	IsAuthenticated() bool
}

// Navigator owns the currently-visible page id. Exactly one page is visible
// at any time.
type Navigator struct {
	pages   map[string]Page
	auth    AuthState
	view    ui.View
	onEnter map[string]func(ctx context.Context)
	current string
}

func New(auth AuthState, view ui.View) *Navigator {
	n := &Navigator{
		pages:   make(map[string]Page),
		auth:    auth,
		view:    view,
		onEnter: make(map[string]func(ctx context.Context)),
		current: PageHome,
	}
	for _, p := range []Page{
		{ID: PageHome},
		{ID: PageLogin},
		{ID: PageRegister},
		{ID: PageProfile, RequiresAuth: true},
		{ID: PageQuestion, RequiresAuth: true},
		{ID: PageHistory, RequiresAuth: true},
	} {
		n.pages[p.ID] = p
	}
	return n
}

// OnEnter registers a hook fired after the page becomes visible. Used to
// reload history whenever that page is entered.
func (n *Navigator) OnEnter(pageID string, fn func(ctx context.Context)) {
	n.onEnter[pageID] = fn
}

// Current returns the visible page id.
func (n *Navigator) Current() string {
	return n.current
}

// GoTo switches the visible page. Unknown ids are ignored. A protected page
// requested without an authenticated session redirects to the login page
// with an inline error; the original destination is discarded.
func (n *Navigator) GoTo(ctx context.Context, pageID string) {
	page, ok := n.pages[pageID]
	if !ok {
		return
	}

	if page.RequiresAuth && !n.auth.IsAuthenticated() {
		n.view.ShowError(PageLogin, "please log in first")
		n.show(ctx, PageLogin)
		return
	}

	n.show(ctx, pageID)
}

func (n *Navigator) show(ctx context.Context, pageID string) {
	n.current = pageID
	n.view.ShowPage(pageID)
	if hook := n.onEnter[pageID]; hook != nil {
		hook(ctx)
	}
}
