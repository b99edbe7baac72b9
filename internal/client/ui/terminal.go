package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/englishhq/internal/client/models"
)

// Terminal renders the View onto a plain text stream. There is no cursor
// addressing: each update prints a fresh line, which keeps the renderer
// usable inside the REPL and trivially testable against a buffer.
type Terminal struct {
	mu sync.Mutex
	w  io.Writer
}

func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

func (t *Terminal) printf(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, format+"\n", args...)
}

func (t *Terminal) ShowPage(id string) {
	t.printf("--- %s ---", id)
}

func (t *Terminal) ShowError(form, msg string) {
	t.printf("[%s] error: %s", form, msg)
}

func (t *Terminal) ShowSuccess(form, msg string) {
	t.printf("[%s] %s", form, msg)
}

// ClearMessages is a no-op on a scrolling terminal; each submission simply
// prints its own outcome.
func (t *Terminal) ClearMessages(string) {}

// ClearForm is a no-op: REPL input is not retained between submissions.
func (t *Terminal) ClearForm(string) {}

func (t *Terminal) SetBusy(form string, busy bool) {
	if busy {
		t.printf("[%s] working...", form)
	}
}

func (t *Terminal) SetBalance(formatted string) {
	t.printf("balance: %s", formatted)
}

func (t *Terminal) ShowGuestNav() {
	t.printf("not logged in")
}

func (t *Terminal) ShowUserNav(username string) {
	t.printf("logged in as %s", username)
}

func (t *Terminal) ShowProfile(p *models.UserProfile) {
	if p == nil {
		return
	}
	t.printf("username: %s\nemail: %s\nbalance: %.2f", p.Username, p.Email, p.Balance)
}

func (t *Terminal) ShowAnswer(question, answer, costText string) {
	t.printf("Q: %s\nA: %s\n%s", question, answer, costText)
}

func (t *Terminal) HideAnswer() {}

func (t *Terminal) ShowHistory(entries []models.HistoryEntry) {
	for _, e := range entries {
		t.printf("%s  %.2f\nQ: %s\nA: %s", e.Timestamp.Format("2006-01-02 15:04"), e.Cost, e.Question, e.Answer)
	}
}

func (t *Terminal) ShowNoHistory() {
	t.printf("no history yet")
}
