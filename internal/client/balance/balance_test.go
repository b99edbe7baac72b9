package balance

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/englishhq/internal/client/models"
	"github.com/dmitrijs2005/englishhq/internal/logging"
)

type recordingDisplay struct {
	mu     sync.Mutex
	values []string
}

func (d *recordingDisplay) SetBalance(formatted string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.values = append(d.values, formatted)
}

func (d *recordingDisplay) last() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.values) == 0 {
		return ""
	}
	return d.values[len(d.values)-1]
}

type stubRefresher struct {
	fn func(ctx context.Context) (*models.UserProfile, error)
}

func (s *stubRefresher) RefreshProfile(ctx context.Context) (*models.UserProfile, error) {
	return s.fn(ctx)
}

func nopLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestAfterMutatingOperation_PublishesServerBalance(t *testing.T) {
	refresher := &stubRefresher{fn: func(context.Context) (*models.UserProfile, error) {
		return &models.UserProfile{Balance: 101.0}, nil
	}}
	s := NewSyncer(refresher, nopLogger())

	badge := &recordingDisplay{}
	profilePage := &recordingDisplay{}
	s.Register(badge)
	s.Register(profilePage)

	require.NoError(t, s.AfterMutatingOperation(context.Background()))
	require.Equal(t, "101.00", badge.last())
	require.Equal(t, "101.00", profilePage.last())
}

func TestAfterMutatingOperation_FailurePublishesNothing(t *testing.T) {
	refresher := &stubRefresher{fn: func(context.Context) (*models.UserProfile, error) {
		return nil, errors.New("timeout")
	}}
	s := NewSyncer(refresher, nopLogger())

	d := &recordingDisplay{}
	s.Register(d)

	require.Error(t, s.AfterMutatingOperation(context.Background()))
	require.Empty(t, d.values)
}

func TestAfterMutatingOperation_StaleResponseIsDropped(t *testing.T) {
	// First refresh blocks until the second one completes, then reports an
	// outdated balance. Only the later refresh may reach the displays.
	release := make(chan struct{})
	calls := 0
	var mu sync.Mutex

	refresher := &stubRefresher{fn: func(context.Context) (*models.UserProfile, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			<-release
			return &models.UserProfile{Balance: 50.0}, nil
		}
		return &models.UserProfile{Balance: 75.0}, nil
	}}
	s := NewSyncer(refresher, nopLogger())
	d := &recordingDisplay{}
	s.Register(d)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = s.AfterMutatingOperation(context.Background()) // slow, stale
	}()

	require.NoError(t, s.AfterMutatingOperation(context.Background())) // fast, fresh
	require.Equal(t, "75.00", d.last())

	close(release)
	wg.Wait()

	require.Equal(t, "75.00", d.last(), "stale response must not overwrite the fresher balance")
}

func TestPublish_FormatsTwoDecimals(t *testing.T) {
	s := NewSyncer(&stubRefresher{fn: func(context.Context) (*models.UserProfile, error) {
		return nil, nil
	}}, nopLogger())
	d := &recordingDisplay{}
	s.Register(d)

	s.Publish(&models.UserProfile{Balance: 2.5})
	require.Equal(t, "2.50", d.last())

	s.Publish(nil)
	require.Len(t, d.values, 1)
}
