// Package forms binds each form submission to a named action: it validates
// local input constraints, invokes the API, and updates session, navigation,
// balance displays and inline messages accordingly. Every error is handled
// here, at the point of the triggering action; nothing propagates to a
// global handler.
package forms

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/englishhq/internal/client/api"
	"github.com/dmitrijs2005/englishhq/internal/client/models"
	"github.com/dmitrijs2005/englishhq/internal/client/nav"
	"github.com/dmitrijs2005/englishhq/internal/client/ui"
	"github.com/dmitrijs2005/englishhq/internal/logging"
)

// Action names one form-backed operation.
type Action string

const (
	ActionLogin    Action = "login"
	ActionRegister Action = "register"
	ActionRecharge Action = "recharge"
	ActionAsk      Action = "ask-question"
	ActionHistory  Action = "load-history"
)

// formOf maps an action to the form area its messages render next to.
var formOf = map[Action]string{
	ActionLogin:    nav.PageLogin,
	ActionRegister: nav.PageRegister,
	ActionRecharge: "recharge",
	ActionAsk:      nav.PageQuestion,
	ActionHistory:  nav.PageHistory,
}

// Input carries the field set of one submission. Each action reads only its
// declared fields.
type Input struct {
	Username        string
	Password        string
	ConfirmPassword string
	Email           string
	Amount          float64
	Description     string
	Question        string
}

// Session is the slice of the session store the controller drives.
type Session interface {
	IsAuthenticated() bool
	SetToken(ctx context.Context, token string) error
	RefreshProfile(ctx context.Context) (*models.UserProfile, error)
}

// Navigator switches the visible page.
type Navigator interface {
	GoTo(ctx context.Context, pageID string)
}

// BalanceSync republishes the authoritative balance.
type BalanceSync interface {
	AfterMutatingOperation(ctx context.Context) error
	Publish(profile *models.UserProfile)
}

// Controller dispatches actions. One instance serves all forms; each action
// is mutually exclusive with itself but not with the others.
type Controller struct {
	api     api.Client
	session Session
	nav     Navigator
	balance BalanceSync
	view    ui.View
	log     logging.Logger

	mu       sync.Mutex
	inFlight map[Action]struct{}
	handlers map[Action]func(ctx context.Context, in Input)
}

func NewController(apiClient api.Client, session Session, navigator Navigator, balance BalanceSync, view ui.View, log logging.Logger) *Controller {
	c := &Controller{
		api:      apiClient,
		session:  session,
		nav:      navigator,
		balance:  balance,
		view:     view,
		log:      log,
		inFlight: make(map[Action]struct{}),
	}
	c.handlers = map[Action]func(ctx context.Context, in Input){
		ActionLogin:    c.login,
		ActionRegister: c.register,
		ActionRecharge: c.recharge,
		ActionAsk:      c.ask,
		ActionHistory:  c.loadHistory,
	}
	return c
}

// Submit runs the named action. While a submission is in flight, further
// submissions of the same action are ignored (the submit control stays
// disabled); other actions are free to run concurrently.
func (c *Controller) Submit(ctx context.Context, action Action, in Input) {
	handler, ok := c.handlers[action]
	if !ok {
		c.log.Warn(ctx, "unknown form action", "action", string(action))
		return
	}

	c.mu.Lock()
	if _, busy := c.inFlight[action]; busy {
		c.mu.Unlock()
		return
	}
	c.inFlight[action] = struct{}{}
	c.mu.Unlock()

	form := formOf[action]
	c.view.SetBusy(form, true)
	defer func() {
		c.view.SetBusy(form, false)
		c.mu.Lock()
		delete(c.inFlight, action)
		c.mu.Unlock()
	}()

	handler(ctx, in)
}

// showFailure renders an API or transport failure next to the form. The
// generic message is used when the server sent no detail; transport failures
// always get the "try again later" wording and a log entry.
func (c *Controller) showFailure(ctx context.Context, form string, err error, generic string) {
	if errors.Is(err, api.ErrNetwork) {
		c.log.Error(ctx, "request failed", "form", form, "error", err)
		c.view.ShowError(form, "request failed, please try again later")
		return
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		c.view.ShowError(form, apiErr.Message(generic))
		return
	}
	c.log.Error(ctx, "action failed", "form", form, "error", err)
	c.view.ShowError(form, generic)
}

func (c *Controller) login(ctx context.Context, in Input) {
	form := formOf[ActionLogin]
	c.view.ClearMessages(form)

	if in.Username == "" || in.Password == "" {
		c.view.ShowError(form, "username and password are required")
		return
	}

	token, err := c.api.Login(ctx, in.Username, in.Password)
	if err != nil {
		c.showFailure(ctx, form, err, "login failed, please check username and password")
		return
	}

	c.completeLogin(ctx, token)
}

// completeLogin stores the token, refreshes the profile and lands on the
// home page. A failed refresh is logged but does not block navigation; the
// session will retry on the next protected operation.
func (c *Controller) completeLogin(ctx context.Context, token string) {
	if err := c.session.SetToken(ctx, token); err != nil {
		c.log.Error(ctx, "persisting session token", "error", err)
	}

	profile, err := c.session.RefreshProfile(ctx)
	if err != nil {
		c.log.Warn(ctx, "profile fetch after login failed", "error", err)
	} else {
		c.view.ShowUserNav(profile.Username)
		c.view.ShowProfile(profile)
		c.balance.Publish(profile)
	}

	c.nav.GoTo(ctx, nav.PageHome)
}

// register is a single composite action: create the account, then
// immediately log in with the same credentials. Its two-phase outcome is
// either registered-and-logged-in or registered-but-login-failed.
func (c *Controller) register(ctx context.Context, in Input) {
	form := formOf[ActionRegister]
	c.view.ClearMessages(form)

	if in.Password != in.ConfirmPassword {
		c.view.ShowError(form, "passwords do not match")
		return
	}

	if err := c.api.Register(ctx, in.Username, in.Email, in.Password); err != nil {
		c.showFailure(ctx, form, err, "registration failed")
		return
	}

	token, err := c.api.Login(ctx, in.Username, in.Password)
	if err != nil {
		// Registered, but the auto-login did not stick: hand the user over
		// to the login page with an informational message.
		c.log.Warn(ctx, "auto-login after registration failed", "error", err)
		c.nav.GoTo(ctx, nav.PageLogin)
		c.view.ShowSuccess(nav.PageLogin, "registration successful, please log in")
		return
	}

	c.completeLogin(ctx, token)
}

func (c *Controller) recharge(ctx context.Context, in Input) {
	form := formOf[ActionRecharge]
	c.view.ClearMessages(form)

	if in.Amount < 1 {
		c.view.ShowError(form, "recharge amount must be at least 1")
		return
	}

	newBalance, err := c.api.Recharge(ctx, in.Amount, in.Description)
	if err != nil {
		// Fields are left as entered so the user can correct and resubmit.
		c.showFailure(ctx, form, err, "recharge failed")
		return
	}

	c.view.ShowSuccess(form, fmt.Sprintf("recharge successful, current balance: %.2f", newBalance))
	if err := c.balance.AfterMutatingOperation(ctx); err != nil {
		c.log.Warn(ctx, "balance sync after recharge failed", "error", err)
	}
	c.view.ClearForm(form)
}

func (c *Controller) ask(ctx context.Context, in Input) {
	form := formOf[ActionAsk]
	c.view.ClearMessages(form)
	c.view.HideAnswer()

	question := strings.TrimSpace(in.Question)
	if question == "" {
		c.view.ShowError(form, "please enter a question")
		return
	}

	answer, err := c.api.Ask(ctx, question)
	if err != nil {
		// The answer card stays hidden.
		c.showFailure(ctx, form, err, "failed to submit question")
		return
	}

	c.view.ShowAnswer(answer.Question, answer.Answer, fmt.Sprintf("cost: %.2f", answer.Cost))
	if err := c.balance.AfterMutatingOperation(ctx); err != nil {
		c.log.Warn(ctx, "balance sync after ask failed", "error", err)
	}
	c.view.ClearForm(form)
}

func (c *Controller) loadHistory(ctx context.Context, _ Input) {
	if !c.session.IsAuthenticated() {
		return
	}

	entries, err := c.api.History(ctx)
	if err != nil {
		// Leave the list as it is; the failure is diagnostic only.
		c.log.Error(ctx, "loading history failed", "error", err)
		return
	}

	if len(entries) == 0 {
		c.view.ShowNoHistory()
		return
	}
	c.view.ShowHistory(entries)
}
