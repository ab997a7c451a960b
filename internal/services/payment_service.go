package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/baharkarakas/staybook/internal/chapa"
	"github.com/baharkarakas/staybook/internal/config"
	"github.com/baharkarakas/staybook/internal/metrics"
	"github.com/baharkarakas/staybook/internal/models"
	repo "github.com/baharkarakas/staybook/internal/repository"
)

// Gateway is the subset of the Chapa API the payment workflow needs.
type Gateway interface {
	Initialize(ctx context.Context, in chapa.InitializeRequest) (chapa.Payload, error)
	Verify(ctx context.Context, txRef string) (chapa.Payload, error)
}

type PaymentService struct {
	bookings repo.Bookings
	users    repo.Users
	payments repo.Payments
	audits   repo.AuditLogs
	gw       Gateway
	prefix   string
	token    func() string
	log      *slog.Logger
}

const (
	txRefAttempts  = 3
	persistTimeout = 5 * time.Second
)

func NewPaymentService(r repo.Repositories, gw Gateway, c config.Config, log *slog.Logger) *PaymentService {
	prefix := c.TxRefPrefix
	if prefix == "" {
		prefix = "booking"
	}
	return &PaymentService{
		bookings: r.Bookings,
		users:    r.Users,
		payments: r.Payments,
		audits:   r.AuditLogs,
		gw:       gw,
		prefix:   prefix,
		token:    randomToken,
		log:      log,
	}
}

type InitiateResult struct {
	CheckoutURL *string `json:"checkout_url"`
	TxRef       string  `json:"tx_ref"`
}

type VerifyResult struct {
	PaymentStatus models.PaymentStatus `json:"payment_status"`
	ChapaData     map[string]any       `json:"chapa_data"`
}

func randomToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// newTxRef returns "<prefix>-<8 hex chars>".
func (s *PaymentService) newTxRef() string {
	return s.prefix + "-" + s.token()
}

// settle returns a context for writes that follow a gateway call. The
// outcome must be stored even when the caller has already gone away.
func settle(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
}

// createPayment inserts p under a fresh tx_ref, drawing a new one when the
// previous is already taken.
func (s *PaymentService) createPayment(ctx context.Context, p models.Payment) (models.Payment, error) {
	var err error
	for i := 0; i < txRefAttempts; i++ {
		p.TxRef = s.newTxRef()
		var out models.Payment
		out, err = s.payments.Create(ctx, p)
		if err == nil {
			return out, nil
		}
		if !errors.Is(err, repo.ErrDuplicate) {
			return models.Payment{}, err
		}
		s.log.Warn("tx_ref collision", "tx_ref", p.TxRef)
	}
	return models.Payment{}, err
}

func (s *PaymentService) loadBooking(ctx context.Context, id string) (models.Booking, error) {
	if _, err := uuid.Parse(id); err != nil {
		return models.Booking{}, notFound("Booking not found")
	}
	b, err := s.bookings.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return models.Booking{}, notFound("Booking not found")
	}
	if err != nil {
		return models.Booking{}, internal(err)
	}
	return b, nil
}

// Initiate records a pending payment for the booking and asks the gateway
// for a checkout URL. The payment stays pending on success; only Verify
// moves it to completed.
func (s *PaymentService) Initiate(ctx context.Context, bookingID, callbackURL string) (InitiateResult, error) {
	bookingID = strings.TrimSpace(bookingID)
	if bookingID == "" {
		return InitiateResult{}, validation("booking_id is required")
	}
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return InitiateResult{}, err
	}
	payer, err := s.users.GetByID(ctx, booking.UserID)
	if err != nil {
		return InitiateResult{}, internal(err)
	}

	p, err := s.createPayment(ctx, models.Payment{
		BookingID: &booking.ID,
		Amount:    booking.TotalPrice,
		Currency:  models.DefaultCurrency,
		Status:    models.PaymentPending,
	})
	if err != nil {
		return InitiateResult{}, internal(err)
	}
	log := s.log.With("tx_ref", p.TxRef, "booking_id", booking.ID)
	audit(ctx, s.audits, s.log, "payment", p.ID, "created", map[string]any{"tx_ref": p.TxRef, "amount": p.Amount.StringFixed(2)})

	payload, gwErr := s.gw.Initialize(ctx, chapa.InitializeRequest{
		Amount:      p.Amount.StringFixed(2),
		Currency:    p.Currency,
		Email:       payer.Email,
		FirstName:   payer.FirstName,
		LastName:    payer.LastName,
		TxRef:       p.TxRef,
		CallbackURL: callbackURL,
	})
	wctx, cancel := settle(ctx)
	defer cancel()
	if gwErr != nil {
		p.Status = models.PaymentFailed
		p.Metadata = map[string]any{"error": gwErr.Error()}
		if _, err := s.payments.Update(wctx, p); err != nil {
			log.Error("persist failed payment", "err", err)
		}
		audit(wctx, s.audits, s.log, "payment", p.ID, "status_change", map[string]any{"status": p.Status, "reason": gwErr.Error()})
		metrics.PaymentsInitiated.WithLabelValues(string(models.PaymentFailed)).Inc()
		log.Error("payment initialize", "err", gwErr)
		return InitiateResult{}, gateway("payment initialization failed", gwErr)
	}

	p.Metadata = map[string]any(payload)
	if _, err := s.payments.Update(wctx, p); err != nil {
		return InitiateResult{}, internal(err)
	}
	metrics.PaymentsInitiated.WithLabelValues(string(models.PaymentPending)).Inc()
	log.Info("payment initiated")

	return InitiateResult{CheckoutURL: payload.CheckoutURL(), TxRef: p.TxRef}, nil
}

// Verify asks the gateway for the outcome of txRef. Exactly "success" marks
// the payment completed; anything else, including a failed call, marks it
// failed. The response always replaces the stored metadata.
func (s *PaymentService) Verify(ctx context.Context, txRef string) (VerifyResult, error) {
	txRef = strings.TrimSpace(txRef)
	if txRef == "" {
		return VerifyResult{}, validation("tx_ref required")
	}
	p, err := s.payments.GetByTxRef(ctx, txRef)
	if errors.Is(err, repo.ErrNotFound) {
		return VerifyResult{}, notFound("Payment not found")
	}
	if err != nil {
		return VerifyResult{}, internal(err)
	}
	log := s.log.With("tx_ref", txRef)

	payload, gwErr := s.gw.Verify(ctx, txRef)
	if gwErr != nil {
		log.Warn("payment verify", "err", gwErr)
		payload = chapa.Payload{"error": gwErr.Error()}
	}
	wctx, cancel := settle(ctx)
	defer cancel()

	prev := p.Status
	p.Status = models.PaymentFailed
	if payload.Status() == "success" {
		p.Status = models.PaymentCompleted
	}
	if ref := payload.Reference(); ref != nil {
		p.ChapaReference = ref
	}
	p.Metadata = map[string]any(payload)

	if _, err := s.payments.Update(wctx, p); err != nil {
		return VerifyResult{}, internal(err)
	}
	if prev != p.Status {
		audit(wctx, s.audits, s.log, "payment", p.ID, "status_change", map[string]any{"from": prev, "status": p.Status})
	}
	metrics.PaymentsVerified.WithLabelValues(string(p.Status)).Inc()
	log.Info("payment verified", "status", p.Status)

	return VerifyResult{PaymentStatus: p.Status, ChapaData: p.Metadata}, nil
}

func (s *PaymentService) GetByTxRef(ctx context.Context, txRef string) (models.Payment, error) {
	p, err := s.payments.GetByTxRef(ctx, txRef)
	if errors.Is(err, repo.ErrNotFound) {
		return models.Payment{}, notFound("Payment not found")
	}
	if err != nil {
		return models.Payment{}, internal(err)
	}
	return p, nil
}

func (s *PaymentService) ListForBooking(ctx context.Context, bookingID string) ([]models.Payment, error) {
	if _, err := s.loadBooking(ctx, bookingID); err != nil {
		return nil, err
	}
	out, err := s.payments.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, internal(err)
	}
	return out, nil
}
