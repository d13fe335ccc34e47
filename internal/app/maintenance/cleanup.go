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
	defaultCleanupSpec       = "@hourly"
	defaultNotificationTTL   = 30 * 24 * time.Hour
	defaultDeviceTokenMaxAge = 90 * 24 * time.Hour
)

// Cleaner coordinates background maintenance: purging expired pairing codes,
// pruning old notification records, and dropping idle device tokens. Any nil
// dependency skips the matching job.
type Cleaner struct {
	pairs         *services.PairService
	notifications *services.NotificationService
	devices       *services.DeviceService

	cron *cron.Cron
	now  func() time.Time
	log  *zap.Logger

	schedule          string
	notificationTTL   time.Duration
	deviceTokenMaxAge time.Duration
}

// Option customises the Cleaner.
type Option func(*Cleaner)

// WithCron injects a preconfigured cron instance, primarily for testing.
func WithCron(c *cron.Cron) Option {
	return func(cleaner *Cleaner) {
		if c != nil {
			cleaner.cron = c
		}
	}
}

// WithNow overrides the clock used for cutoff comparisons.
func WithNow(now func() time.Time) Option {
	return func(cleaner *Cleaner) {
		if now != nil {
			cleaner.now = now
		}
	}
}

// WithSchedule overrides the cron specification for the cleanup sweep.
func WithSchedule(spec string) Option {
	return func(cleaner *Cleaner) {
		if spec != "" {
			cleaner.schedule = spec
		}
	}
}

// WithNotificationTTL adjusts how long notification records are retained.
func WithNotificationTTL(ttl time.Duration) Option {
	return func(cleaner *Cleaner) {
		if ttl > 0 {
			cleaner.notificationTTL = ttl
		}
	}
}

// WithDeviceTokenMaxAge adjusts how long idle device tokens are retained.
func WithDeviceTokenMaxAge(age time.Duration) Option {
	return func(cleaner *Cleaner) {
		if age > 0 {
			cleaner.deviceTokenMaxAge = age
		}
	}
}

// NewCleaner constructs a Cleaner with sensible defaults.
func NewCleaner(pairs *services.PairService, notifications *services.NotificationService, devices *services.DeviceService, opts ...Option) *Cleaner {
	cleaner := &Cleaner{
		pairs:             pairs,
		notifications:     notifications,
		devices:           devices,
		now:               time.Now,
		schedule:          defaultCleanupSpec,
		notificationTTL:   defaultNotificationTTL,
		deviceTokenMaxAge: defaultDeviceTokenMaxAge,
		log:               logger.WithModule("maintenance"),
	}

	for _, opt := range opts {
		opt(cleaner)
	}

	if cleaner.cron == nil {
		cleaner.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}

	return cleaner
}

// Start registers the cleanup sweep with the cron scheduler and launches it.
func (c *Cleaner) Start() error {
	if _, err := c.cron.AddFunc(c.schedule, func() {
		if err := c.RunOnce(context.Background()); err != nil {
			c.log.Warn("cleanup sweep incomplete", zap.Error(err))
		}
	}); err != nil {
		return err
	}

	c.cron.Start()
	return nil
}

// Stop halts the underlying scheduler, waiting for any running jobs to complete.
func (c *Cleaner) Stop() context.Context {
	if c.cron == nil {
		return context.Background()
	}
	return c.cron.Stop()
}

// RunOnce executes all cleanup routines sequentially. Used by tests and
// during graceful shutdown.
func (c *Cleaner) RunOnce(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	now := c.now().UTC()

	var errs error

	if c.pairs != nil {
		if removed, err := c.pairs.CleanupExpiredCodes(ctx, now); err != nil {
			errs = multierr.Append(errs, err)
		} else if removed > 0 {
			c.log.Info("expired pairing codes removed", zap.Int64("count", removed))
		}
	}

	if c.notifications != nil {
		if removed, err := c.notifications.CleanupOlderThan(ctx, now.Add(-c.notificationTTL)); err != nil {
			errs = multierr.Append(errs, err)
		} else if removed > 0 {
			c.log.Info("old notifications removed", zap.Int64("count", removed))
		}
	}

	if c.devices != nil {
		if removed, err := c.devices.PruneStale(ctx, now.Add(-c.deviceTokenMaxAge)); err != nil {
			errs = multierr.Append(errs, err)
		} else if removed > 0 {
			c.log.Info("stale device tokens removed", zap.Int64("count", removed))
		}
	}

	return errs
}
