// Package balance keeps every balance display in sync with the server.
// After any operation that may have changed the balance (recharge, ask) it
// re-fetches the authoritative profile and republishes it; the client never
// applies a locally computed delta.
package balance

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/englishhq/internal/client/models"
	"github.com/dmitrijs2005/englishhq/internal/logging"
)

// Display is a UI surface that renders the balance (header badge, profile
// page).
type Display interface {
	SetBalance(formatted string)
}

// ProfileRefresher is the slice of the session store the syncer needs.
type ProfileRefresher interface {
	RefreshProfile(ctx context.Context) (*models.UserProfile, error)
}

// Syncer republishes the balance after mutating operations. Concurrent
// operations may overlap; a monotonic sequence number makes sure a slow,
// stale response can not overwrite the result of a refresh issued later.
type Syncer struct {
	session  ProfileRefresher
	log      logging.Logger
	mu       sync.Mutex
	displays []Display
	seq      uint64
}

func NewSyncer(session ProfileRefresher, log logging.Logger) *Syncer {
	return &Syncer{session: session, log: log}
}

// Register adds a display. Safe before or after the first sync.
func (s *Syncer) Register(d Display) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.displays = append(s.displays, d)
}

// AfterMutatingOperation re-fetches the profile and republishes the balance.
// Failures are logged and returned but never leave the displays with a
// locally computed value.
func (s *Syncer) AfterMutatingOperation(ctx context.Context) error {
	s.mu.Lock()
	s.seq++
	issued := s.seq
	s.mu.Unlock()

	profile, err := s.session.RefreshProfile(ctx)
	if err != nil {
		s.log.Warn(ctx, "balance refresh failed", "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if issued < s.seq {
		// A newer refresh was issued while this one was in flight; its
		// response, not ours, owns the displays.
		return nil
	}
	s.publishLocked(profile)
	return nil
}

// Publish pushes an already-fetched profile to the displays, e.g. right
// after login or session restore.
func (s *Syncer) Publish(profile *models.UserProfile) {
	if profile == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publishLocked(profile)
}

func (s *Syncer) publishLocked(profile *models.UserProfile) {
	formatted := fmt.Sprintf("%.2f", profile.Balance)
	for _, d := range s.displays {
		d.SetBalance(formatted)
	}
}
