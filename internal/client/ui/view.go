// Package ui projects client state onto the screen. The View interface
// enumerates every surface the rest of the client writes to; the terminal
// renderer implements it for interactive use and tests substitute a
// recording fake.
package ui

import "github.com/dmitrijs2005/englishhq/internal/client/models"

// View is the set of UI surfaces. Form areas are addressed by page id
// ("login", "register", "recharge", "question", "history").
type View interface {
	// ShowPage makes the given page the single visible one.
	ShowPage(id string)

	// ShowError renders an inline error next to the given form.
	ShowError(form, msg string)
	// ShowSuccess renders an inline informational message next to the form.
	ShowSuccess(form, msg string)
	// ClearMessages removes inline messages of the form.
	ClearMessages(form string)
	// ClearForm resets the form's input fields.
	ClearForm(form string)
	// SetBusy disables or re-enables the form's submit control.
	SetBusy(form string, busy bool)

	// SetBalance updates every surface that displays the balance
	// (header badge, profile page) with an already-formatted value.
	SetBalance(formatted string)

	// ShowGuestNav and ShowUserNav switch the navigation chrome.
	ShowGuestNav()
	ShowUserNav(username string)

	// ShowProfile renders the profile page content.
	ShowProfile(p *models.UserProfile)

	// ShowAnswer reveals the answer card; HideAnswer hides it.
	ShowAnswer(question, answer, costText string)
	HideAnswer()

	// ShowHistory replaces the history list; ShowNoHistory renders the
	// empty-state placeholder instead of an empty list.
	ShowHistory(entries []models.HistoryEntry)
	ShowNoHistory()
}
