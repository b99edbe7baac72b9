// Package api implements the REST transport of the terminal client. It is
// the only place that builds requests, attaches bearer credentials, and
// interprets response statuses and error bodies.
package api

import (
	"context"

	"github.com/dmitrijs2005/englishhq/internal/client/models"
)

// Client is the typed surface of the English High Q API used by the rest of
// the client. All methods honor context cancellation.
type Client interface {
	// Login exchanges credentials for an access token.
	Login(ctx context.Context, username, password string) (string, error)

	// Register creates a new account. The response body is unused beyond the
	// status.
	Register(ctx context.Context, username, email, password string) error

	// Me fetches the authoritative user profile.
	Me(ctx context.Context) (*models.UserProfile, error)

	// Recharge tops up the balance and returns the new server-side balance.
	Recharge(ctx context.Context, amount float64, description string) (float64, error)

	// Ask submits a question and returns the answered record.
	Ask(ctx context.Context, question string) (*models.QuestionAnswer, error)

	// History returns the user's question records, newest first.
	History(ctx context.Context) ([]models.HistoryEntry, error)
}

// TokenSource supplies the bearer credential attached to protected requests.
// The session store implements it; an empty string means no credential.
type TokenSource interface {
	Token() string
}
