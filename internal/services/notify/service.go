// Package notify schedules the recurring daily-brief notification.
package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ohayoapp/ohayo/internal/common"
	"github.com/ohayoapp/ohayo/internal/interfaces"
)

// Compile-time interface check
var _ interfaces.NotifyService = (*Service)(nil)

// Service implements NotifyService
type Service struct {
	storage  interfaces.StorageManager
	notifier interfaces.Notifier
	hour     int
	minute   int
	logger   *common.Logger
	now      func() time.Time // injectable clock for testing
}

// NewService creates a new notification scheduling service.
func NewService(storage interfaces.StorageManager, notifier interfaces.Notifier, cfg common.NotifyConfig, logger *common.Logger) *Service {
	return &Service{
		storage:  storage,
		notifier: notifier,
		hour:     cfg.Hour,
		minute:   cfg.Minute,
		logger:   logger,
		now:      time.Now,
	}
}

// ScheduleDailyBrief makes sure exactly one repeating notification exists for
// today. Scheduling is idempotent per local day: a second call the same day
// is a no-op, and a new day cancels the previous notification before
// scheduling a fresh one.
func (s *Service) ScheduleDailyBrief(ctx context.Context, userName, quote, temp string) error {
	kv := s.storage.KeyValueStorage()
	today := common.LocalDay(s.now())

	lastScheduled, err := kv.Get(ctx, interfaces.KeyNotificationDate)
	if err != nil && !errors.Is(err, interfaces.ErrKeyNotFound) {
		return fmt.Errorf("failed to read notification schedule: %w", err)
	}
	if lastScheduled == today {
		s.logger.Debug().Str("date", today).Msg("Notification already scheduled for today")
		return nil
	}

	prevID, err := kv.Get(ctx, interfaces.KeyNotificationID)
	if err != nil && !errors.Is(err, interfaces.ErrKeyNotFound) {
		return fmt.Errorf("failed to read previous notification id: %w", err)
	}
	if prevID != "" {
		if err := s.notifier.Cancel(ctx, prevID); err != nil {
			return fmt.Errorf("failed to cancel previous notification: %w", err)
		}
	}

	title := common.Greeting(userName, s.now()) + " ☀️"
	body := fmt.Sprintf("%q", quote)
	if temp != "" {
		body = fmt.Sprintf("%s It's currently %s°C.", body, temp)
	}

	notificationID, err := s.notifier.ScheduleDaily(ctx, s.hour, s.minute, title, body)
	if err != nil {
		return fmt.Errorf("failed to schedule notification: %w", err)
	}

	if err := kv.Set(ctx, interfaces.KeyNotificationID, notificationID); err != nil {
		return fmt.Errorf("failed to persist notification id: %w", err)
	}
	if err := kv.Set(ctx, interfaces.KeyNotificationDate, today); err != nil {
		return fmt.Errorf("failed to persist notification date: %w", err)
	}

	s.logger.Info().
		Str("notification_id", notificationID).
		Int("hour", s.hour).
		Int("minute", s.minute).
		Msg("Daily notification scheduled")

	return nil
}
