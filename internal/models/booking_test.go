package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBookingValidate(t *testing.T) {
	day := func(s string) time.Time {
		d, _ := time.Parse(DateLayout, s)
		return d
	}

	tests := []struct {
		name    string
		b       Booking
		wantErr string
	}{
		{"ok", Booking{StartDate: day("2025-01-01"), EndDate: day("2025-01-03"), TotalPrice: decimal.RequireFromString("450.00")}, ""},
		{"same day", Booking{StartDate: day("2025-01-01"), EndDate: day("2025-01-01"), TotalPrice: decimal.NewFromInt(1)}, "end_date must be after start_date"},
		{"reversed", Booking{StartDate: day("2025-01-05"), EndDate: day("2025-01-01"), TotalPrice: decimal.NewFromInt(1)}, "end_date must be after start_date"},
		{"zero price", Booking{StartDate: day("2025-01-01"), EndDate: day("2025-01-02")}, "total_price must be > 0"},
		{"bad status", Booking{StartDate: day("2025-01-01"), EndDate: day("2025-01-02"), TotalPrice: decimal.NewFromInt(1), Status: "paid"}, "invalid status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.b.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				assert.Equal(t, BookingPending, tt.b.Status)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
