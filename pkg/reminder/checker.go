package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/borgmon/timestack/pkg/models"
	"github.com/rs/zerolog"
)

// ItemSource supplies the appointments whose reminder has not fired yet
// and records a fired reminder.
type ItemSource interface {
	ListPendingReminders(ctx context.Context) ([]*models.Appointment, error)
	MarkReminderSent(ctx context.Context, id string) error
}

// Notifier delivers a reminder to the user (notification, chime, ...)
type Notifier func(title, body string)

// Checker scans pending appointment reminders once a minute. A reminder
// fires when its time falls within the next minute; firing marks it
// sent so it never fires twice.
type Checker struct {
	source ItemSource
	notify Notifier
	log    zerolog.Logger

	now    func() time.Time
	ticker *time.Ticker
}

// New creates a reminder checker
func New(source ItemSource, notify Notifier, log zerolog.Logger) *Checker {
	return &Checker{
		source: source,
		notify: notify,
		log:    log,
		now:    time.Now,
	}
}

// Start begins the once-a-minute scan until ctx is cancelled
func (c *Checker) Start(ctx context.Context) {
	c.ticker = time.NewTicker(time.Minute)
	go func() {
		defer c.ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-c.ticker.C:
				c.Check(ctx)
			}
		}
	}()
}

// Check runs a single reminder scan
func (c *Checker) Check(ctx context.Context) {
	appointments, err := c.source.ListPendingReminders(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("failed to list pending reminders")
		return
	}

	now := c.now()
	for _, appt := range appointments {
		diff := appt.ReminderTime().Sub(now)
		if diff <= 0 || diff >= time.Minute {
			continue
		}

		c.notify(
			fmt.Sprintf("Starting soon: %s", appt.Title),
			fmt.Sprintf("At %s (in about %d minutes)",
				appt.StartTime.Format("15:04"), appt.ReminderMinutesBefore),
		)

		if err := c.source.MarkReminderSent(ctx, appt.ID); err != nil {
			c.log.Error().Err(err).Str("appointment_id", appt.ID).Msg("failed to mark reminder sent")
			continue
		}
		c.log.Info().Str("appointment_id", appt.ID).Str("title", appt.Title).Msg("reminder fired")
	}
}
