package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/KasumiMercury/primind-reminder/internal/config"
	"github.com/KasumiMercury/primind-reminder/internal/handler"
	"github.com/KasumiMercury/primind-reminder/internal/health"
	"github.com/KasumiMercury/primind-reminder/internal/infra/eventrecorder"
	"github.com/KasumiMercury/primind-reminder/internal/infra/notifier"
	"github.com/KasumiMercury/primind-reminder/internal/observability/logging"
	"github.com/KasumiMercury/primind-reminder/internal/observability/metrics"
	"github.com/KasumiMercury/primind-reminder/internal/observability/middleware"
	"github.com/KasumiMercury/primind-reminder/internal/scheduler"
	"github.com/KasumiMercury/primind-reminder/internal/service/auth"
	"github.com/KasumiMercury/primind-reminder/internal/service/duesweep"
	"github.com/KasumiMercury/primind-reminder/internal/service/proximity"
	"github.com/KasumiMercury/primind-reminder/internal/service/reminder"
)

// Version is set via ldflags at build time
var Version = "dev"

const serviceModule = logging.Module("reminder")

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	obs, err := initObservability(ctx)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}
	obs.SetLogLevel(cfg.LogLevel)

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	if err := cfg.TaskQueue.Validate(); err != nil {
		slog.Error("task queue configuration error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	reminderMetrics, err := metrics.NewReminderMetrics()
	if err != nil {
		slog.Error("failed to initialize reminder metrics", slog.String("error", err.Error()))
		return 1
	}

	// Notification event history (InfluxDB for local, BigQuery for gcloud)
	eventRecorder, err := eventrecorder.NewRecorder(ctx, eventrecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize notification event recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := eventRecorder.Close(); err != nil {
			slog.Warn("failed to close notification event recorder", slog.String("error", err.Error()))
		}
	}()

	taskQueue, cleanup, err := initTaskQueue(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize task queue", slog.String("error", err.Error()))
		return 1
	}
	if cleanup != nil {
		defer func() {
			if err := cleanup(); err != nil {
				slog.Error("task queue cleanup error", slog.String("error", err.Error()))
			}
		}()
	}

	st, err := openStores(ctx, cfg)
	if err != nil {
		slog.Error("failed to open store",
			slog.String("backend", string(cfg.Store.Backend)),
			slog.String("error", err.Error()),
		)
		return 1
	}
	defer func() {
		if err := st.close(); err != nil {
			slog.Warn("failed to close store", slog.String("error", err.Error()))
		}
	}()

	// Push decides whether an emit succeeded; the log line and event history
	// follow only a delivered notification and never trigger a retry.
	var sink *notifier.Fanout
	if taskQueue != nil {
		sink = notifier.NewFanout(notifier.NewPushSink(taskQueue)).
			WithBestEffort(notifier.NewLogSink(), notifier.NewRecordingSink(eventRecorder))
	} else {
		sink = notifier.NewFanout(notifier.NewLogSink()).
			WithBestEffort(notifier.NewRecordingSink(eventRecorder))
	}

	sweepService := duesweep.NewService(st.reminders, sink, cfg.Sweep.Lookahead, reminderMetrics)
	proximityService := proximity.NewService(st.reminders, sink, reminderMetrics)
	reminderService := reminder.NewService(st.reminders)
	authService := auth.NewService(st.users, st.sessions, cfg.Auth.TokenTTL)

	if !cfg.Sweep.Disabled {
		sweepScheduler, err := scheduler.New(cfg.Sweep.Schedule, sweepService.Run, scheduler.WithName("due-sweep"))
		if err != nil {
			slog.Error("failed to create sweep scheduler", slog.String("error", err.Error()))
			return 1
		}
		if err := sweepScheduler.Start(ctx); err != nil {
			slog.Error("failed to start sweep scheduler", slog.String("error", err.Error()))
			return 1
		}
		defer sweepScheduler.Stop()
	} else {
		slog.Warn("SWEEP_DISABLED set, in-process due sweep schedule disabled")
	}
	if cfg.Sweep.Token == "" {
		slog.Info("SWEEP_TOKEN not set, POST /api/v1/sweep is not mounted")
	}

	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready", "/metrics"},
		Module:      serviceModule,
		TracerName:  "github.com/KasumiMercury/primind-reminder/internal/observability/middleware",
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	healthChecker := health.NewChecker(Version).With(st.name, st.pinger)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())
	healthChecker.MountGRPC(r)

	handler.RegisterRoutes(r, handler.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Reminder: handler.NewReminderHandler(reminderService),
		Location: handler.NewLocationHandler(proximityService),
		Sweep:    handler.NewSweepHandler(sweepService, cfg.Sweep.Token),
	}, authService)

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		// h2c lets gRPC health probes reach the server without TLS.
		Handler:           h2c.NewHandler(r, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.String("store", st.name),
			slog.String("sweep_schedule", cfg.Sweep.Schedule),
			slog.Duration("sweep_lookahead", sweepService.Lookahead()),
			slog.Bool("push_enabled", taskQueue != nil),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}
