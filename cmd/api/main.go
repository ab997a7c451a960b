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

	"github.com/baharkarakas/staybook/internal/api"
	"github.com/baharkarakas/staybook/internal/chapa"
	"github.com/baharkarakas/staybook/internal/config"
	"github.com/baharkarakas/staybook/internal/db"
	"github.com/baharkarakas/staybook/internal/logger"
	"github.com/baharkarakas/staybook/internal/metrics"
	"github.com/baharkarakas/staybook/internal/notify"
	"github.com/baharkarakas/staybook/internal/repository"
	"github.com/baharkarakas/staybook/internal/repository/memory"
	"github.com/baharkarakas/staybook/internal/repository/postgres"
	"github.com/baharkarakas/staybook/internal/services"
	"github.com/baharkarakas/staybook/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.IsProduction())
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.ChapaSecretKey == "" {
		log.Warn("CHAPA_SECRET_KEY is empty; gateway calls will be rejected")
	}

	repos, closeRepos, err := openRepositories(ctx, cfg, log)
	if err != nil {
		log.Error("storage", "err", err)
		os.Exit(1)
	}
	defer closeRepos()

	wp := worker.NewPool(cfg.WorkerCount)
	defer wp.Stop()

	notifier, closeNotifier, err := notify.FromConfig(ctx, cfg, wp, log)
	if err != nil {
		log.Error("notifier", "err", err)
		os.Exit(1)
	}
	defer closeNotifier()

	gw := chapa.NewClient(cfg.ChapaBaseURL, cfg.ChapaSecretKey, cfg.ChapaTimeout)
	paymentSvc := services.NewPaymentService(repos, gw, cfg, log)
	bookingSvc := services.NewBookingService(repos, notifier, log)

	metrics.Init()
	r := api.NewRouter(cfg, log, paymentSvc, bookingSvc)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env, "storage", cfg.Storage, "notify", cfg.NotifyBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func openRepositories(ctx context.Context, cfg config.Config, log *slog.Logger) (repository.Repositories, func(), error) {
	if cfg.Storage == "memory" {
		log.Warn("using in-memory storage; data is lost on exit")
		return memory.NewStore().Repositories(), func() {}, nil
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return repository.Repositories{}, nil, err
	}
	if cfg.Migrate {
		if err := db.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return repository.Repositories{}, nil, err
		}
	}
	return postgres.NewRepositories(pool), pool.Close, nil
}
