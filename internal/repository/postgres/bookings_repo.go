package postgres

import (
	"context"

	"github.com/baharkarakas/staybook/internal/models"
	repo "github.com/baharkarakas/staybook/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type bookingsRepo struct{ pool *pgxpool.Pool }

const bookingCols = `id, listing_id, user_id, start_date, end_date, total_price::text, status, created_at`

func scanBooking(row pgx.Row) (models.Booking, error) {
	var (
		b     models.Booking
		total string
	)
	if err := row.Scan(&b.ID, &b.ListingID, &b.UserID, &b.StartDate, &b.EndDate, &total, &b.Status, &b.CreatedAt); err != nil {
		return models.Booking{}, err
	}
	var err error
	b.TotalPrice, err = decimal.NewFromString(total)
	return b, err
}

func (r *bookingsRepo) Create(ctx context.Context, b models.Booking) (models.Booking, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = models.BookingPending
	}
	return scanBooking(r.pool.QueryRow(ctx,
		`INSERT INTO bookings (id, listing_id, user_id, start_date, end_date, total_price, status)
		 VALUES ($1,$2,$3,$4,$5,$6::numeric,$7)
		 RETURNING `+bookingCols,
		b.ID, b.ListingID, b.UserID, b.StartDate, b.EndDate, b.TotalPrice.StringFixed(2), b.Status,
	))
}

func (r *bookingsRepo) GetByID(ctx context.Context, id string) (models.Booking, error) {
	b, err := scanBooking(r.pool.QueryRow(ctx, `SELECT `+bookingCols+` FROM bookings WHERE id=$1`, id))
	return b, notFound(err)
}

func (r *bookingsRepo) List(ctx context.Context, limit, offset int) ([]models.Booking, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+bookingCols+`
		   FROM bookings
		  ORDER BY created_at DESC
		  LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *bookingsRepo) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) (models.Booking, error) {
	b, err := scanBooking(r.pool.QueryRow(ctx,
		`UPDATE bookings SET status=$2 WHERE id=$1 RETURNING `+bookingCols,
		id, status,
	))
	return b, notFound(err)
}

func (r *bookingsRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM bookings WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}
