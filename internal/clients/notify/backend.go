// Package notify provides the local-notification backend.
//
// The backend mirrors the platform notification scheduler contract: register
// a repeating daily notification, get an opaque id back, cancel by id. This
// implementation delivers through the logger; each schedule runs its own
// timer goroutine until cancelled or the backend is closed.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ohayoapp/ohayo/internal/common"
	"github.com/ohayoapp/ohayo/internal/interfaces"
)

// Backend implements the Notifier interface
type Backend struct {
	logger *common.Logger
	now    func() time.Time // injectable clock for testing

	mu        sync.Mutex
	schedules map[string]context.CancelFunc
	closed    bool
}

// NewBackend creates a log-delivery notification backend.
func NewBackend(logger *common.Logger) *Backend {
	return &Backend{
		logger:    logger,
		now:       time.Now,
		schedules: make(map[string]context.CancelFunc),
	}
}

// ScheduleDaily registers a repeating daily notification and returns its id.
func (b *Backend) ScheduleDaily(_ context.Context, hour, minute int, title, body string) (string, error) {
	id := uuid.NewString()

	runCtx, cancel := context.WithCancel(context.Background())

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		cancel()
		return id, nil
	}
	b.schedules[id] = cancel
	b.mu.Unlock()

	go b.run(runCtx, id, hour, minute, title, body)

	b.logger.Info().
		Str("notification_id", id).
		Int("hour", hour).
		Int("minute", minute).
		Msg("Daily notification scheduled")

	return id, nil
}

// Cancel removes a previously scheduled notification. Cancelling an unknown
// id is not an error — the schedule may belong to a previous process.
func (b *Backend) Cancel(_ context.Context, notificationID string) error {
	b.mu.Lock()
	cancel, ok := b.schedules[notificationID]
	if ok {
		delete(b.schedules, notificationID)
	}
	b.mu.Unlock()

	if ok {
		cancel()
		b.logger.Info().Str("notification_id", notificationID).Msg("Notification cancelled")
	}
	return nil
}

// Close stops all timer goroutines.
func (b *Backend) Close() {
	b.mu.Lock()
	b.closed = true
	for id, cancel := range b.schedules {
		cancel()
		delete(b.schedules, id)
	}
	b.mu.Unlock()
}

func (b *Backend) run(ctx context.Context, id string, hour, minute int, title, body string) {
	for {
		wait := untilNext(b.now(), hour, minute)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			b.logger.Info().
				Str("notification_id", id).
				Str("title", title).
				Str("body", body).
				Msg("Notification delivered")
		}
	}
}

// untilNext returns the duration to the next local occurrence of hour:minute.
func untilNext(now time.Time, hour, minute int) time.Duration {
	now = now.Local()
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}

// Ensure Backend implements Notifier
var _ interfaces.Notifier = (*Backend)(nil)
