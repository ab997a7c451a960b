package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/baharkarakas/staybook/internal/config"
	"github.com/baharkarakas/staybook/internal/worker"
)

func MailerFromConfig(cfg config.Config, log *slog.Logger) (Mailer, error) {
	switch cfg.Mailer {
	case "smtp":
		return NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	case "log", "":
		return LogMailer{Log: log}, nil
	}
	return nil, fmt.Errorf("unknown MAILER %q", cfg.Mailer)
}

// FromConfig builds the Notifier selected by NOTIFY_BACKEND. The returned
// func releases whatever the notifier holds.
func FromConfig(ctx context.Context, cfg config.Config, wp *worker.Pool, log *slog.Logger) (Notifier, func(), error) {
	switch cfg.NotifyBackend {
	case "none":
		return Nop{}, func() {}, nil
	case "redis":
		rdb, err := NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisQueue(rdb, cfg.NotifyQueue), func() { _ = rdb.Close() }, nil
	case "pool", "":
		m, err := MailerFromConfig(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return NewPoolQueue(wp, m, cfg.MailFrom, log), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown NOTIFY_BACKEND %q", cfg.NotifyBackend)
}
