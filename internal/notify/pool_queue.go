package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/baharkarakas/staybook/internal/metrics"
	"github.com/baharkarakas/staybook/internal/worker"
)

const deliverTimeout = 30 * time.Second

// PoolQueue delivers jobs on an in-process worker pool. Notify never waits
// for a free slot; a saturated pool drops the job with worker.ErrQueueFull.
type PoolQueue struct {
	pool   *worker.Pool
	mailer Mailer
	from   string
	log    *slog.Logger
}

func NewPoolQueue(p *worker.Pool, m Mailer, from string, log *slog.Logger) *PoolQueue {
	return &PoolQueue{pool: p, mailer: m, from: from, log: log}
}

func (q *PoolQueue) Notify(_ context.Context, job Job) error {
	if job.EnqueuedAt.IsZero() {
		job.EnqueuedAt = time.Now().UTC()
	}
	err := q.pool.TrySubmit(func() {
		// detached from the request; it is gone by the time this runs
		ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
		defer cancel()
		if err := Deliver(ctx, q.mailer, q.from, job); err != nil {
			q.log.Error("notification delivery", "kind", job.Kind, "booking_id", job.BookingID, "err", err)
			return
		}
		q.log.Info("notification sent", "kind", job.Kind, "booking_id", job.BookingID, "to", job.Email)
	})
	if err != nil {
		metrics.NotificationsTotal.WithLabelValues("enqueue", "error").Inc()
		return err
	}
	metrics.NotificationsTotal.WithLabelValues("enqueue", "ok").Inc()
	return nil
}
