// Command worker drains the redis notification queue filled by the API when
// NOTIFY_BACKEND=redis.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baharkarakas/staybook/internal/config"
	"github.com/baharkarakas/staybook/internal/logger"
	"github.com/baharkarakas/staybook/internal/metrics"
	"github.com/baharkarakas/staybook/internal/notify"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.IsProduction()).With("component", "notify-worker")
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb, err := notify.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Error("redis", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	mailer, err := notify.MailerFromConfig(cfg, log)
	if err != nil {
		log.Error("mailer", "err", err)
		os.Exit(1)
	}

	metrics.Init()
	msrv := &http.Server{Addr: ":" + cfg.MetricsPort, Handler: metrics.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() { _ = msrv.ListenAndServe() }()
	defer msrv.Close()

	if err := notify.NewConsumer(rdb, cfg.NotifyQueue, mailer, cfg.MailFrom, log).Run(ctx); err != nil {
		log.Error("consumer", "err", err)
		os.Exit(1)
	}
	log.Info("worker stopped")
}
