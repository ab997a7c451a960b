package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/staybook/internal/logger"
	"github.com/baharkarakas/staybook/internal/worker"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func TestBuildMessage(t *testing.T) {
	msg, err := BuildMessage(Job{Kind: KindBookingConfirmation, Email: "guest@example.com", BookingID: "B123"}, "noreply@travelapp.com")
	require.NoError(t, err)
	assert.Equal(t, "guest@example.com", msg.To)
	assert.Equal(t, "noreply@travelapp.com", msg.From)
	assert.Equal(t, "Booking Confirmation", msg.Subject)
	assert.Contains(t, msg.Body, "(ID: B123)")

	_, err = BuildMessage(Job{Kind: "sms"}, "x")
	assert.Error(t, err)
}

func TestPoolQueueDelivers(t *testing.T) {
	p := worker.NewPool(2)
	m := &recordingMailer{}
	q := NewPoolQueue(p, m, "noreply@travelapp.com", logger.Discard())

	require.NoError(t, q.Notify(context.Background(), Job{Kind: KindBookingConfirmation, Email: "a@example.com", BookingID: "1"}))
	require.NoError(t, q.Notify(context.Background(), Job{Kind: KindBookingConfirmation, Email: "b@example.com", BookingID: "2"}))
	p.Stop()

	assert.Len(t, m.sent, 2)
}

func TestPoolQueueSwallowsDeliveryErrors(t *testing.T) {
	p := worker.NewPool(1)
	q := NewPoolQueue(p, &recordingMailer{err: errors.New("smtp down")}, "x", logger.Discard())

	assert.NoError(t, q.Notify(context.Background(), Job{Kind: KindBookingConfirmation, Email: "a@example.com"}))
	p.Stop()

	assert.ErrorIs(t, q.Notify(context.Background(), Job{}), worker.ErrStopped)
}

type blockingMailer struct {
	entered chan struct{}
	release chan struct{}
}

func (m *blockingMailer) Send(_ context.Context, _ Message) error {
	m.entered <- struct{}{}
	<-m.release
	return nil
}

func TestPoolQueueDropsWhenSaturated(t *testing.T) {
	p := worker.NewPoolWithQueue(1, 1)
	m := &blockingMailer{entered: make(chan struct{}, 2), release: make(chan struct{})}
	q := NewPoolQueue(p, m, "x", logger.Discard())
	job := Job{Kind: KindBookingConfirmation, Email: "a@example.com", BookingID: "B1"}

	require.NoError(t, q.Notify(context.Background(), job))
	<-m.entered
	require.NoError(t, q.Notify(context.Background(), job))

	done := make(chan error, 1)
	go func() { done <- q.Notify(context.Background(), job) }()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, worker.ErrQueueFull)
	case <-time.After(2 * time.Second):
		t.Fatal("Notify waited for a free worker slot")
	}

	close(m.release)
	p.Stop()
}

func TestConsumerHandle(t *testing.T) {
	m := &recordingMailer{}
	c := &Consumer{mailer: m, from: "noreply@travelapp.com", log: logger.Discard()}

	c.handle(context.Background(), `{"kind":"booking_confirmation","email":"a@example.com","booking_id":"B1"}`)
	c.handle(context.Background(), `not json`)

	require.Len(t, m.sent, 1)
	assert.Contains(t, m.sent[0].Body, "B1")
}

func TestNewSMTPMailerRequiresHost(t *testing.T) {
	_, err := NewSMTPMailer("", "587", "", "")
	assert.Error(t, err)
	m, err := NewSMTPMailer("smtp.example.com", "587", "u", "p")
	require.NoError(t, err)
	assert.Contains(t, string(renderMIME(Message{From: "f", To: "t", Subject: "s", Body: "b"})), "Subject: s\r\n")
	assert.NotNil(t, m)
}
