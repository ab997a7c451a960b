package repository

import (
	"context"
	"errors"

	"github.com/baharkarakas/staybook/internal/models"
)

// ErrNotFound is returned by every implementation when a row does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a unique key (payments.tx_ref) is already taken.
var ErrDuplicate = errors.New("duplicate key")

type Users interface {
	GetByID(ctx context.Context, id string) (models.User, error)
}

type Listings interface {
	GetByID(ctx context.Context, id string) (models.Listing, error)
}

type Bookings interface {
	Create(ctx context.Context, b models.Booking) (models.Booking, error)
	GetByID(ctx context.Context, id string) (models.Booking, error)
	List(ctx context.Context, limit, offset int) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus) (models.Booking, error)
	Delete(ctx context.Context, id string) error
}

type Payments interface {
	Create(ctx context.Context, p models.Payment) (models.Payment, error)
	GetByTxRef(ctx context.Context, txRef string) (models.Payment, error)
	ListByBooking(ctx context.Context, bookingID string) ([]models.Payment, error)
	// Update persists status, chapa_reference and metadata.
	Update(ctx context.Context, p models.Payment) (models.Payment, error)
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}

// Repositories bundles one implementation of every store.
type Repositories struct {
	Users     Users
	Listings  Listings
	Bookings  Bookings
	Payments  Payments
	AuditLogs AuditLogs
}
