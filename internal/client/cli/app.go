package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/englishhq/internal/client/api"
	"github.com/dmitrijs2005/englishhq/internal/client/balance"
	"github.com/dmitrijs2005/englishhq/internal/client/config"
	"github.com/dmitrijs2005/englishhq/internal/client/forms"
	"github.com/dmitrijs2005/englishhq/internal/client/localstore"
	"github.com/dmitrijs2005/englishhq/internal/client/nav"
	"github.com/dmitrijs2005/englishhq/internal/client/session"
	"github.com/dmitrijs2005/englishhq/internal/client/ui"
	"github.com/dmitrijs2005/englishhq/internal/logging"
)

// submitter is the slice of the form controller the commands drive. Tests
// substitute a recording fake.
type submitter interface {
	Submit(ctx context.Context, action forms.Action, in forms.Input)
}

// App wires the CLI front end: transport client, session store, navigator,
// balance syncer and form controller, all rendering through one terminal view.
type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	view    *ui.Terminal
	session *session.Store
	balance *balance.Syncer
	nav     *nav.Navigator
	forms   submitter
	reader  *bufio.Reader
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	db, err := localstore.Open(ctx, c.LocalStorePath)
	if err != nil {
		return nil, err
	}

	view := ui.NewTerminal(os.Stdout)

	apiClient := api.NewHTTPClient(c.APIBaseURL, c.RequestTimeout)
	sess := session.New(apiClient, localstore.NewSQLiteStore(db), log)
	apiClient.UseTokens(sess)

	syncer := balance.NewSyncer(sess, log)
	syncer.Register(view)

	navigator := nav.New(sess, view)
	controller := forms.NewController(apiClient, sess, navigator, syncer, view, log)

	// Entering the history page always reloads the list; entering the
	// profile page re-renders the last known profile.
	navigator.OnEnter(nav.PageHistory, func(ctx context.Context) {
		controller.Submit(ctx, forms.ActionHistory, forms.Input{})
	})
	navigator.OnEnter(nav.PageProfile, func(ctx context.Context) {
		if profile := sess.Profile(); profile != nil {
			view.ShowProfile(profile)
		}
	})

	return &App{
		config:  c,
		log:     log,
		db:      db,
		view:    view,
		session: sess,
		balance: syncer,
		nav:     navigator,
		forms:   controller,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores the persisted session, renders the initial state and enters
// the command loop. It returns when the user exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	if a.session.Restore(ctx) == session.Authenticated {
		profile := a.session.Profile()
		a.view.ShowUserNav(profile.Username)
		a.balance.Publish(profile)
	} else {
		a.view.ShowGuestNav()
	}
	a.nav.GoTo(ctx, nav.PageHome)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) getStatus() string {
	if profile := a.session.Profile(); profile != nil {
		return "(" + profile.Username + ")"
	}
	return "(guest)"
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}
