package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	BookingID   string `json:"booking_id" validate:"required,uuid"`
	CallbackURL string `json:"callback_url" validate:"omitempty,url"`
	Status      string `json:"status" validate:"omitempty,oneof=pending confirmed canceled"`
	StartDate   string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
}

func TestStruct(t *testing.T) {
	assert.NoError(t, Struct(sample{BookingID: "7c9e6679-7425-40de-944b-e07fc1f90ae7"}))

	err := Struct(sample{CallbackURL: "not a url", Status: "paid", StartDate: "01/02/2025"})
	var errs Errs
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, Errs{
		{Field: "booking_id", Msg: "required"},
		{Field: "callback_url", Msg: "must be a URL"},
		{Field: "status", Msg: "must be one of pending confirmed canceled"},
		{Field: "start_date", Msg: "must be a date (2006-01-02)"},
	}, errs)
	assert.Contains(t, errs.Error(), "booking_id: required; callback_url: must be a URL")
}

func TestRequired(t *testing.T) {
	assert.Nil(t, Required("tx_ref", "booking-1"))
	assert.Equal(t, &ErrField{Field: "tx_ref", Msg: "required"}, Required("tx_ref", "  "))
}
