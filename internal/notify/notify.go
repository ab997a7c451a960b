// Package notify delivers best-effort notifications (booking confirmation
// emails) outside the request path.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/baharkarakas/staybook/internal/metrics"
)

type Kind string

const KindBookingConfirmation Kind = "booking_confirmation"

type Job struct {
	Kind       Kind      `json:"kind"`
	Email      string    `json:"email"`
	BookingID  string    `json:"booking_id"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// Notifier accepts jobs for asynchronous delivery. A nil error only means
// the job was accepted, not that it was delivered.
type Notifier interface {
	Notify(ctx context.Context, job Job) error
}

// Nop drops every job.
type Nop struct{}

func (Nop) Notify(context.Context, Job) error { return nil }

type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, m Message) error
}

func BuildMessage(job Job, from string) (Message, error) {
	switch job.Kind {
	case KindBookingConfirmation:
		return Message{
			From:    from,
			To:      job.Email,
			Subject: "Booking Confirmation",
			Body: fmt.Sprintf("Dear Customer,\n\nYour booking (ID: %s) has been confirmed.\nThank you for choosing ALX Travel!",
				job.BookingID),
		}, nil
	}
	return Message{}, fmt.Errorf("unknown notification kind %q", job.Kind)
}

// Deliver renders job and hands it to m.
func Deliver(ctx context.Context, m Mailer, from string, job Job) error {
	msg, err := BuildMessage(job, from)
	if err == nil {
		err = m.Send(ctx, msg)
	}
	if err != nil {
		metrics.NotificationsTotal.WithLabelValues("deliver", "error").Inc()
		return err
	}
	metrics.NotificationsTotal.WithLabelValues("deliver", "ok").Inc()
	return nil
}
