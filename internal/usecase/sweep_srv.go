package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cosplay-booking/internal/data/entity"
	"cosplay-booking/internal/data/repository"
	"cosplay-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	sweepLockKey = "sweep:lock"
	sweepLockTTL = 10 * time.Minute
)

var ErrSweepRunning = errors.New("another sweep is running")

// releaseLockScript deletes the lock only if this run still owns it.
var releaseLockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type SweepResult struct {
	RemindersSent int `json:"reminders_sent"`
	Completed     int `json:"completed"`
	Failed        int `json:"failed"`
	Skipped       int `json:"skipped"`
}

// SweepService sends start reminders and completes bookings whose session
// ended long enough ago. It is run from cron, not from a request.
type SweepService interface {
	Sweep(ctx context.Context) (*SweepResult, error)
}

type sweepService struct {
	repo     *repository.Repository
	rdb      redis.Cmdable
	bookings BookingService
	notifier NotificationService
	config   utils.BookingConfig
	log      *zap.Logger
}

func NewSweepService(
	repo *repository.Repository,
	rdb redis.Cmdable,
	bookings BookingService,
	notifier NotificationService,
	config utils.BookingConfig,
	log *zap.Logger,
) SweepService {
	return &sweepService{
		repo:     repo,
		rdb:      rdb,
		bookings: bookings,
		notifier: notifier,
		config:   config,
		log:      log.With(zap.String("service", "sweep")),
	}
}

func reminderKey(bookingID int64) string {
	return fmt.Sprintf("reminder:booking:%d", bookingID)
}

func (s *sweepService) Sweep(ctx context.Context) (*SweepResult, error) {
	token := uuid.NewString()

	ok, err := s.rdb.SetNX(ctx, sweepLockKey, token, sweepLockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire sweep lock: %w", err)
	}
	if !ok {
		s.log.Info("Sweep skipped, lock held elsewhere")
		return nil, ErrSweepRunning
	}
	defer func() {
		if err := releaseLockScript.Run(context.WithoutCancel(ctx), s.rdb, []string{sweepLockKey}, token).Err(); err != nil {
			s.log.Warn("Failed to release sweep lock", zap.Error(err))
		}
	}()

	result := &SweepResult{}
	now := time.Now()

	if err := s.sendReminders(ctx, now, result); err != nil {
		return result, err
	}
	if err := s.autoComplete(ctx, now, result); err != nil {
		return result, err
	}

	s.log.Info("Sweep finished",
		zap.Int("reminders_sent", result.RemindersSent),
		zap.Int("completed", result.Completed),
		zap.Int("failed", result.Failed),
		zap.Int("skipped", result.Skipped),
	)

	return result, nil
}

func (s *sweepService) sendReminders(ctx context.Context, now time.Time, result *SweepResult) error {
	lead := time.Duration(s.config.ReminderLeadHours) * time.Hour

	bookings, err := s.repo.Booking.FindConfirmedStartingBetween(ctx, now, now.Add(lead))
	if err != nil {
		return fmt.Errorf("find bookings to remind: %w", err)
	}

	for _, b := range bookings {
		// satu reminder per booking
		first, err := s.rdb.SetNX(ctx, reminderKey(b.ID), b.Code, lead+24*time.Hour).Result()
		if err != nil {
			s.log.Warn("Failed to claim reminder", zap.Error(err), zap.Int64("booking_id", b.ID))
			result.Failed++
			continue
		}
		if !first {
			result.Skipped++
			continue
		}

		msg := fmt.Sprintf("Booking %s starts at %s", b.Code, b.StartAt.Format(slotLayout))
		s.notifier.Notify(ctx, b.CustomerID, entity.NotifBookingReminder, "Upcoming booking", msg, bookingEventData(b))

		cosplayer, err := s.repo.Cosplayer.FindByID(ctx, b.CosplayerID)
		if err == nil && cosplayer != nil {
			s.notifier.Notify(ctx, cosplayer.UserID, entity.NotifBookingReminder, "Upcoming booking", msg, bookingEventData(b))
		}

		result.RemindersSent++
	}

	return nil
}

func (s *sweepService) autoComplete(ctx context.Context, now time.Time, result *SweepResult) error {
	cutoff := now.Add(-time.Duration(s.config.AutoCompleteAfterHours) * time.Hour)

	bookings, err := s.repo.Booking.FindConfirmedPaidEndedBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("find bookings to complete: %w", err)
	}

	for _, b := range bookings {
		if _, err := s.bookings.CompleteBooking(ctx, SystemActor, b.ID); err != nil {
			// satu booking gagal tidak menghentikan yang lain
			s.log.Error("Auto-complete failed",
				zap.Error(err),
				zap.Int64("booking_id", b.ID),
			)
			result.Failed++
			continue
		}
		result.Completed++
	}

	return nil
}
