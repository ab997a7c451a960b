package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCanceled  BookingStatus = "canceled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCanceled:
		return true
	}
	return false
}

// DateLayout is the wire format of booking dates.
const DateLayout = "2006-01-02"

type Booking struct {
	ID         string          `json:"id"`
	ListingID  string          `json:"listing_id"`
	UserID     string          `json:"user_id"`
	StartDate  time.Time       `json:"start_date"`
	EndDate    time.Time       `json:"end_date"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Status     BookingStatus   `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}

func (b *Booking) Validate() error {
	if !b.EndDate.After(b.StartDate) {
		return errors.New("end_date must be after start_date")
	}
	if !b.TotalPrice.IsPositive() {
		return errors.New("total_price must be > 0")
	}
	if b.Status == "" {
		b.Status = BookingPending
	}
	if !b.Status.Valid() {
		return errors.New("invalid status")
	}
	return nil
}
