package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/staybook/internal/models"
	repo "github.com/baharkarakas/staybook/internal/repository"
)

func TestPaymentsSurviveBookingDelete(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	repos := s.Repositories()

	b, err := repos.Bookings.Create(ctx, models.Booking{TotalPrice: decimal.NewFromInt(10)})
	require.NoError(t, err)

	p, err := repos.Payments.Create(ctx, models.Payment{BookingID: &b.ID, TxRef: "booking-1", Amount: b.TotalPrice})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPending, p.Status)
	assert.Equal(t, "ETB", p.Currency)

	require.NoError(t, repos.Bookings.Delete(ctx, b.ID))
	assert.ErrorIs(t, repos.Bookings.Delete(ctx, b.ID), repo.ErrNotFound)

	got, err := repos.Payments.GetByTxRef(ctx, "booking-1")
	require.NoError(t, err)
	assert.Nil(t, got.BookingID)
}

func TestPaymentTxRefUnique(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repositories()

	_, err := repos.Payments.Create(ctx, models.Payment{TxRef: "booking-dup"})
	require.NoError(t, err)
	_, err = repos.Payments.Create(ctx, models.Payment{TxRef: "booking-dup"})
	assert.ErrorIs(t, err, ErrDuplicateTxRef)
	assert.ErrorIs(t, err, repo.ErrDuplicate)
}

func TestBookingsListPaging(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repositories()
	for i := 0; i < 5; i++ {
		_, err := repos.Bookings.Create(ctx, models.Booking{})
		require.NoError(t, err)
	}

	page, err := repos.Bookings.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	page, err = repos.Bookings.List(ctx, 10, 4)
	require.NoError(t, err)
	assert.Len(t, page, 1)

	page, err = repos.Bookings.List(ctx, 10, 9)
	require.NoError(t, err)
	assert.Empty(t, page)
}
