package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/baharkarakas/staybook/internal/models"
	"github.com/baharkarakas/staybook/internal/notify"
	repo "github.com/baharkarakas/staybook/internal/repository"
)

type BookingService struct {
	bookings repo.Bookings
	listings repo.Listings
	users    repo.Users
	audits   repo.AuditLogs
	notifier notify.Notifier
	log      *slog.Logger
}

func NewBookingService(r repo.Repositories, n notify.Notifier, log *slog.Logger) *BookingService {
	if n == nil {
		n = notify.Nop{}
	}
	return &BookingService{
		bookings: r.Bookings,
		listings: r.Listings,
		users:    r.Users,
		audits:   r.AuditLogs,
		notifier: n,
		log:      log,
	}
}

type CreateBookingInput struct {
	ListingID  string
	UserID     string
	StartDate  time.Time
	EndDate    time.Time
	TotalPrice decimal.Decimal
	Status     models.BookingStatus
}

// Create stores the booking and queues a confirmation email for its user.
// Queueing failures are logged only.
func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) (models.Booking, error) {
	b := models.Booking{
		ListingID:  in.ListingID,
		UserID:     in.UserID,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		TotalPrice: in.TotalPrice,
		Status:     in.Status,
	}
	if err := b.Validate(); err != nil {
		return models.Booking{}, validation(err.Error())
	}

	if _, err := s.listings.GetByID(ctx, b.ListingID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return models.Booking{}, notFound("Listing not found")
		}
		return models.Booking{}, internal(err)
	}
	guest, err := s.users.GetByID(ctx, b.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return models.Booking{}, notFound("User not found")
		}
		return models.Booking{}, internal(err)
	}

	b, err = s.bookings.Create(ctx, b)
	if err != nil {
		return models.Booking{}, internal(err)
	}
	audit(ctx, s.audits, s.log, "booking", b.ID, "created", map[string]any{"listing_id": b.ListingID, "user_id": b.UserID})

	job := notify.Job{Kind: notify.KindBookingConfirmation, Email: guest.Email, BookingID: b.ID}
	if err := s.notifier.Notify(ctx, job); err != nil {
		s.log.Warn("booking confirmation not queued", "booking_id", b.ID, "err", err)
	}
	return b, nil
}

func (s *BookingService) Get(ctx context.Context, id string) (models.Booking, error) {
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

func (s *BookingService) List(ctx context.Context, limit, offset int) ([]models.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	out, err := s.bookings.List(ctx, limit, offset)
	if err != nil {
		return nil, internal(err)
	}
	return out, nil
}

func (s *BookingService) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) (models.Booking, error) {
	if !status.Valid() {
		return models.Booking{}, validation("invalid status")
	}
	cur, err := s.Get(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}
	b, err := s.bookings.UpdateStatus(ctx, id, status)
	if errors.Is(err, repo.ErrNotFound) {
		return models.Booking{}, notFound("Booking not found")
	}
	if err != nil {
		return models.Booking{}, internal(err)
	}
	if cur.Status != status {
		audit(ctx, s.audits, s.log, "booking", id, "status_change", map[string]any{"from": cur.Status, "status": status})
	}
	return b, nil
}

func (s *BookingService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return notFound("Booking not found")
	}
	err := s.bookings.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return notFound("Booking not found")
	}
	if err != nil {
		return internal(err)
	}
	audit(ctx, s.audits, s.log, "booking", id, "deleted", nil)
	return nil
}
