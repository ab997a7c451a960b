package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Listing struct {
	ID           string          `json:"id"`
	HostID       string          `json:"host_id"`
	Name         *string         `json:"name,omitempty"`
	Description  string          `json:"description"`
	Location     string          `json:"location"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
