package postgres

import (
	"context"

	"github.com/baharkarakas/staybook/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type listingsRepo struct{ pool *pgxpool.Pool }

func (r *listingsRepo) GetByID(ctx context.Context, id string) (models.Listing, error) {
	var (
		l     models.Listing
		price string
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id, host_id, name, description, location, price_per_unit::text, created_at, updated_at
		   FROM listings
		  WHERE id=$1`, id,
	).Scan(&l.ID, &l.HostID, &l.Name, &l.Description, &l.Location, &price, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return models.Listing{}, notFound(err)
	}
	l.PricePerUnit, err = decimal.NewFromString(price)
	return l, err
}
