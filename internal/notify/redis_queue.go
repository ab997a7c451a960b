package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/baharkarakas/staybook/internal/metrics"
)

// NewRedisClient parses url and pings the server.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// RedisQueue pushes jobs onto a redis list consumed by Consumer.
type RedisQueue struct {
	rdb *redis.Client
	key string
}

func NewRedisQueue(rdb *redis.Client, key string) *RedisQueue {
	return &RedisQueue{rdb: rdb, key: key}
}

func (q *RedisQueue) Notify(ctx context.Context, job Job) error {
	if job.EnqueuedAt.IsZero() {
		job.EnqueuedAt = time.Now().UTC()
	}
	b, err := json.Marshal(job)
	if err != nil {
		return err
	}
	if err := q.rdb.LPush(ctx, q.key, b).Err(); err != nil {
		metrics.NotificationsTotal.WithLabelValues("enqueue", "error").Inc()
		return fmt.Errorf("enqueue notification: %w", err)
	}
	metrics.NotificationsTotal.WithLabelValues("enqueue", "ok").Inc()
	return nil
}

type Consumer struct {
	rdb     *redis.Client
	key     string
	mailer  Mailer
	from    string
	log     *slog.Logger
	timeout time.Duration
}

func NewConsumer(rdb *redis.Client, key string, m Mailer, from string, log *slog.Logger) *Consumer {
	return &Consumer{rdb: rdb, key: key, mailer: m, from: from, log: log, timeout: 5 * time.Second}
}

// Run pops and delivers jobs until ctx is cancelled. Failed deliveries are
// logged and dropped.
func (c *Consumer) Run(ctx context.Context) error {
	c.log.Info("notification consumer started", "queue", c.key)
	for {
		if ctx.Err() != nil {
			return nil
		}
		res, err := c.rdb.BRPop(ctx, c.timeout, c.key).Result()
		switch {
		case errors.Is(err, redis.Nil):
			continue
		case ctx.Err() != nil:
			return nil
		case err != nil:
			c.log.Error("notification pop", "err", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
			}
			continue
		}
		// res = [key, value]
		if len(res) == 2 {
			c.handle(ctx, res[1])
		}
	}
}

func (c *Consumer) handle(ctx context.Context, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		c.log.Error("notification decode", "err", err)
		return
	}
	dctx, cancel := context.WithTimeout(ctx, deliverTimeout)
	defer cancel()
	if err := Deliver(dctx, c.mailer, c.from, job); err != nil {
		c.log.Error("notification delivery", "kind", job.Kind, "booking_id", job.BookingID, "err", err)
		return
	}
	c.log.Info("notification sent", "kind", job.Kind, "booking_id", job.BookingID, "to", job.Email)
}
