// Package session owns the client's belief about authentication: the access
// token, the cached user profile, and the Guest/Authenticating/Authenticated
// state machine. It is the single source of truth consulted by the
// navigation guard and by every balance display.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/englishhq/internal/client/api"
	"github.com/dmitrijs2005/englishhq/internal/client/localstore"
	"github.com/dmitrijs2005/englishhq/internal/client/models"
	"github.com/dmitrijs2005/englishhq/internal/common"
	"github.com/dmitrijs2005/englishhq/internal/logging"
)

// State is the session lifecycle state. No states other than these three are
// reachable.
type State int

const (
	// Guest: no valid token.
	Guest State = iota
	// Authenticating: token set, profile fetch not yet confirmed.
	Authenticating
	// Authenticated: token valid, profile cached.
	Authenticated
)

func (s State) String() string {
	switch s {
	case Guest:
		return "guest"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// tokenKey is the single durable-storage key holding the session token.
// Absence of the key means Guest on startup.
const tokenKey = "token"

// Store holds the current session. The profile is present only in the
// Authenticated state; whenever the token goes away the profile goes with it.
type Store struct {
	api   api.Client
	local localstore.Store
	log   logging.Logger

	mu      sync.Mutex
	state   State
	token   string
	profile *models.UserProfile
}

func New(apiClient api.Client, local localstore.Store, log logging.Logger) *Store {
	return &Store{api: apiClient, local: local, log: log, state: Guest}
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) IsAuthenticated() bool {
	return s.State() == Authenticated
}

// Token implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Profile returns a copy of the cached profile, or nil outside Authenticated.
func (s *Store) Profile() *models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

// Restore brings the session up from durable storage on application start.
// A missing token means Guest. A present token is verified with a profile
// fetch: 401 clears the persisted token; any other failure leaves the
// persisted token alone but keeps the session Guest for this run
// (best-effort recovery, never fatal).
func (s *Store) Restore(ctx context.Context) State {
	token, err := s.local.Get(ctx, tokenKey)
	if err != nil {
		s.log.Error(ctx, "reading persisted token", "error", err)
		return Guest
	}
	if token == "" {
		return Guest
	}

	s.mu.Lock()
	s.token = token
	s.state = Authenticating
	s.profile = nil
	s.mu.Unlock()

	if _, err := s.RefreshProfile(ctx); err != nil {
		if !errors.Is(err, api.ErrUnauthorized) {
			// 401 already cleared everything; here we only drop the
			// in-memory session and keep the persisted token for next start.
			s.log.Warn(ctx, "session restore failed", "error", err)
			s.mu.Lock()
			s.state = Guest
			s.token = ""
			s.profile = nil
			s.mu.Unlock()
		}
		return Guest
	}
	return Authenticated
}

// SetToken persists the token and moves the session toward Authenticated,
// pending a profile fetch.
func (s *Store) SetToken(ctx context.Context, token string) error {
	if err := s.local.Set(ctx, tokenKey, token); err != nil {
		return fmt.Errorf("persisting token: %w", err)
	}
	s.mu.Lock()
	s.token = token
	s.state = Authenticating
	s.profile = nil
	s.mu.Unlock()
	return nil
}

// RefreshProfile re-fetches /users/me with the current token. Success caches
// the profile and lands in Authenticated; a 401 destroys the session (Guest).
// Other failures leave the state as it was.
func (s *Store) RefreshProfile(ctx context.Context) (*models.UserProfile, error) {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()
	if token == "" {
		return nil, common.ErrUnauthorized
	}

	profile, err := s.api.Me(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			if clearErr := s.Clear(ctx); clearErr != nil {
				s.log.Error(ctx, "clearing expired session", "error", clearErr)
			}
		}
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != token {
		// The session changed while the fetch was in flight; do not resurrect
		// state that belongs to the old token.
		return profile, nil
	}
	s.profile = profile
	s.state = Authenticated
	p := *profile
	return &p, nil
}

// Clear removes the persisted token and drops the in-memory session (Guest).
func (s *Store) Clear(ctx context.Context) error {
	err := s.local.Delete(ctx, tokenKey)

	s.mu.Lock()
	s.token = ""
	s.profile = nil
	s.state = Guest
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("removing persisted token: %w", err)
	}
	return nil
}
