package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mythworld/internal/audio"
	"mythworld/internal/config"
	"mythworld/internal/content"
	"mythworld/internal/database"
	"mythworld/internal/handlers"
	"mythworld/internal/logging"
	"mythworld/internal/repository"
	"mythworld/internal/security"
	"mythworld/internal/service"

	"github.com/google/uuid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := service.AppOptions{
		Pin:      cfg.ParentPin,
		Profiles: content.StarterProfiles(),
		Controls: content.DefaultControls(),
	}

	var store handlers.Pinger
	if cfg.PersistenceEnabled() {
		db, err := database.InitializeWithConfig(cfg)
		if err != nil {
			fatal("failed to initialize database", err)
		}
		defer db.Close()
		slog.Info("database connection established", "type", cfg.DatabaseType)

		if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
			fatal("failed to run migrations", err)
		}

		progressRepo := repository.NewProgressRepository(db)
		controlsRepo := repository.NewControlsRepository(db)

		stored, err := progressRepo.LoadProfiles()
		if err != nil {
			fatal("failed to load stored profiles", err)
		}
		opts.Profiles = service.MergeStoredProfiles(opts.Profiles, stored)

		controls, err := controlsRepo.LoadControls()
		if err != nil {
			fatal("failed to load stored controls", err)
		}
		if controls != nil {
			opts.Controls = *controls
		}

		opts.ProgressStore = progressRepo
		opts.ControlsStore = controlsRepo
		store = db
		slog.Info("progress restored", "profiles", len(opts.Profiles), "stored", len(stored))
	} else {
		slog.Info("persistence disabled, progress lives in memory only")
	}

	app := service.NewApp(opts)

	secret := cfg.TokenSecret
	if secret == "" {
		// Dashboard tokens never outlive the process, so a per-run secret is enough
		secret = uuid.NewString()
		slog.Warn("TOKEN_SECRET not set, using a per-process secret")
	}

	emailService, err := service.NewEmailService(ctx, cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.ParentEmail)
	if err != nil {
		slog.Warn("email service unavailable", "error", err)
		emailService = nil
	}

	var limiter *security.RateLimiter
	if cfg.RateLimitPerMinute > 0 {
		limiter = security.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
		go limiter.Run(ctx, 10*time.Minute)
	}

	router := handlers.NewRouter(handlers.RouterConfig{
		App:         app,
		Tokens:      security.NewTokenIssuer(secret),
		Email:       emailService,
		TTS:         audio.NewTTSService(cfg.AudioPath),
		Limiter:     limiter,
		Store:       store,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
		Debug:       cfg.Debug,
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		fatal("server failed", err)
	case <-ctx.Done():
	}

	slog.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
