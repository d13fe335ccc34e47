package maintenance

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/calebgil/tandem/internal/services"
	"github.com/calebgil/tandem/pkg/logger"
)

const (
	defaultReminderSpec   = "*/15 * * * *"
	defaultReminderWindow = time.Hour
)

// ReminderSweep periodically notifies both pair members about items that are
// due soon or overdue. Each item is flagged after its notification so the
// next run never repeats it.
type ReminderSweep struct {
	todos    *services.TodoService
	notifier *services.Notifier

	cron *cron.Cron
	now  func() time.Time
	log  *zap.Logger

	schedule string
	window   time.Duration
}

// ReminderOption customises a ReminderSweep.
type ReminderOption func(*ReminderSweep)

// WithReminderCron injects a preconfigured cron instance, primarily for testing.
func WithReminderCron(c *cron.Cron) ReminderOption {
	return func(sweep *ReminderSweep) {
		if c != nil {
			sweep.cron = c
		}
	}
}

// WithReminderNow overrides the clock.
func WithReminderNow(now func() time.Time) ReminderOption {
	return func(sweep *ReminderSweep) {
		if now != nil {
			sweep.now = now
		}
	}
}

// WithReminderSchedule overrides the cron specification.
func WithReminderSchedule(spec string) ReminderOption {
	return func(sweep *ReminderSweep) {
		if spec != "" {
			sweep.schedule = spec
		}
	}
}

// WithReminderWindow adjusts how far ahead of the due date reminders fire.
func WithReminderWindow(window time.Duration) ReminderOption {
	return func(sweep *ReminderSweep) {
		if window > 0 {
			sweep.window = window
		}
	}
}

// NewReminderSweep constructs a ReminderSweep.
func NewReminderSweep(todos *services.TodoService, notifier *services.Notifier, opts ...ReminderOption) *ReminderSweep {
	sweep := &ReminderSweep{
		todos:    todos,
		notifier: notifier,
		now:      time.Now,
		schedule: defaultReminderSpec,
		window:   defaultReminderWindow,
		log:      logger.WithModule("maintenance"),
	}

	for _, opt := range opts {
		opt(sweep)
	}

	if sweep.cron == nil {
		sweep.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}

	return sweep
}

// Start registers the sweep with the cron scheduler and launches it.
func (s *ReminderSweep) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, func() {
		if err := s.RunOnce(context.Background()); err != nil {
			s.log.Warn("reminder sweep incomplete", zap.Error(err))
		}
	}); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop halts the underlying scheduler.
func (s *ReminderSweep) Stop() context.Context {
	if s.cron == nil {
		return context.Background()
	}
	return s.cron.Stop()
}

// RunOnce scans for due-soon and overdue items and delivers their reminders.
// A delivery failure leaves the item unflagged so the next run retries it.
func (s *ReminderSweep) RunOnce(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	now := s.now().UTC()

	var errs error

	dueSoon, err := s.todos.DueForReminder(ctx, now, s.window)
	if err != nil {
		errs = multierr.Append(errs, err)
	} else {
		for i := range dueSoon {
			todo := dueSoon[i]
			s.notifier.TodoDueSoon(ctx, &todo)
			if err := s.todos.MarkReminderSent(ctx, todo.ID, now); err != nil {
				errs = multierr.Append(errs, err)
			}
		}
		if len(dueSoon) > 0 {
			s.log.Info("due reminders sent", zap.Int("count", len(dueSoon)))
		}
	}

	overdue, err := s.todos.Overdue(ctx, now)
	if err != nil {
		errs = multierr.Append(errs, err)
	} else {
		for i := range overdue {
			todo := overdue[i]
			s.notifier.TodoOverdue(ctx, &todo)
			if err := s.todos.MarkOverdueNotified(ctx, todo.ID, now); err != nil {
				errs = multierr.Append(errs, err)
			}
		}
		if len(overdue) > 0 {
			s.log.Info("overdue notices sent", zap.Int("count", len(overdue)))
		}
	}

	return errs
}
