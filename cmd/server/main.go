package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/calebgil/tandem/internal/api"
	"github.com/calebgil/tandem/internal/app"
	"github.com/calebgil/tandem/internal/app/maintenance"
	"github.com/calebgil/tandem/internal/auth"
	"github.com/calebgil/tandem/internal/database"
	"github.com/calebgil/tandem/internal/push"
	"github.com/calebgil/tandem/internal/realtime"
	"github.com/calebgil/tandem/internal/services"
	"github.com/calebgil/tandem/pkg/fcm"
	"github.com/calebgil/tandem/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}

	if err := app.ConfigureLogging(cfg.Server.LogLevel); err != nil {
		return err
	}
	defer logger.Sync()
	log := logger.WithModule("server")

	db, err := database.Open(database.Config{
		Driver:   cfg.Database.Driver,
		Path:     cfg.Database.Path,
		DSN:      cfg.Database.DSN,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		Name:     cfg.Database.Name,
		User:     cfg.Database.Username,
		Password: cfg.Database.Password,
	})
	if err != nil {
		return err
	}
	if err := database.AutoMigrateAndSeed(db); err != nil {
		return err
	}

	jwtService, err := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.TTL)
	if err != nil {
		return err
	}

	hub := realtime.NewHub()

	users, err := services.NewUserService(db)
	if err != nil {
		return err
	}
	pairs, err := services.NewPairService(db)
	if err != nil {
		return err
	}
	devices, err := services.NewDeviceService(db)
	if err != nil {
		return err
	}
	notifications, err := services.NewNotificationService(db, hub)
	if err != nil {
		return err
	}
	preferences, err := services.NewPreferenceService(db)
	if err != nil {
		return err
	}
	customization, err := services.NewCustomizationService(db)
	if err != nil {
		return err
	}
	todos, err := services.NewTodoService(db)
	if err != nil {
		return err
	}
	moods, err := services.NewMoodService(db)
	if err != nil {
		return err
	}
	favorites, err := services.NewFavoriteService(db)
	if err != nil {
		return err
	}

	var sender push.Sender
	if cfg.Push.Enabled && cfg.Push.CredentialsFile != "" {
		client, err := fcm.NewClient(ctx, cfg.Push.CredentialsFile)
		if err != nil {
			return err
		}
		sender = client
	} else {
		log.Info("push delivery disabled")
	}
	dispatcher := push.NewDispatcher(preferences, devices, sender)

	notifier, err := services.NewNotifier(users, pairs, notifications, dispatcher)
	if err != nil {
		return err
	}

	cleaner := maintenance.NewCleaner(pairs, notifications, devices,
		maintenance.WithSchedule(cfg.Maintenance.CleanupSchedule),
		maintenance.WithNotificationTTL(cfg.Maintenance.NotificationTTL),
		maintenance.WithDeviceTokenMaxAge(cfg.Maintenance.DeviceTokenMaxAge),
	)
	if err := cleaner.Start(); err != nil {
		return err
	}
	defer cleaner.Stop()

	reminders := maintenance.NewReminderSweep(todos, notifier,
		maintenance.WithReminderSchedule(cfg.Maintenance.ReminderSchedule),
		maintenance.WithReminderWindow(cfg.Maintenance.ReminderWindow),
	)
	if err := reminders.Start(); err != nil {
		return err
	}
	defer reminders.Stop()

	router, err := api.NewRouter(api.Dependencies{
		DB:             db,
		JWT:            jwtService,
		Hub:            hub,
		Users:          users,
		Pairs:          pairs,
		Devices:        devices,
		Notifications:  notifications,
		Preferences:    preferences,
		Customization:  customization,
		Todos:          todos,
		Moods:          moods,
		Favorites:      favorites,
		Notifier:       notifier,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
