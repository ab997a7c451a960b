package postgres

import (
	"context"

	"github.com/baharkarakas/staybook/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type paymentsRepo struct{ pool *pgxpool.Pool }

const paymentCols = `id, booking_id, tx_ref, chapa_reference, amount::text, currency, status, metadata, created_at, updated_at`

func scanPayment(row pgx.Row) (models.Payment, error) {
	var (
		p      models.Payment
		amount string
	)
	err := row.Scan(&p.ID, &p.BookingID, &p.TxRef, &p.ChapaReference, &amount, &p.Currency, &p.Status, &p.Metadata, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return models.Payment{}, err
	}
	p.Amount, err = decimal.NewFromString(amount)
	return p, err
}

func (r *paymentsRepo) Create(ctx context.Context, p models.Payment) (models.Payment, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Currency == "" {
		p.Currency = models.DefaultCurrency
	}
	if p.Status == "" {
		p.Status = models.PaymentPending
	}
	out, err := scanPayment(r.pool.QueryRow(ctx,
		`INSERT INTO payments (id, booking_id, tx_ref, chapa_reference, amount, currency, status, metadata)
		 VALUES ($1,$2,$3,$4,$5::numeric,$6,$7,$8)
		 RETURNING `+paymentCols,
		p.ID, p.BookingID, p.TxRef, p.ChapaReference, p.Amount.StringFixed(2), p.Currency, p.Status, p.Metadata,
	))
	return out, duplicate(err)
}

func (r *paymentsRepo) GetByTxRef(ctx context.Context, txRef string) (models.Payment, error) {
	p, err := scanPayment(r.pool.QueryRow(ctx, `SELECT `+paymentCols+` FROM payments WHERE tx_ref=$1`, txRef))
	return p, notFound(err)
}

func (r *paymentsRepo) ListByBooking(ctx context.Context, bookingID string) ([]models.Payment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+paymentCols+`
		   FROM payments
		  WHERE booking_id=$1
		  ORDER BY created_at DESC`,
		bookingID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *paymentsRepo) Update(ctx context.Context, p models.Payment) (models.Payment, error) {
	out, err := scanPayment(r.pool.QueryRow(ctx,
		`UPDATE payments
		    SET status=$2, chapa_reference=$3, metadata=$4, updated_at=now()
		  WHERE id=$1
		  RETURNING `+paymentCols,
		p.ID, p.Status, p.ChapaReference, p.Metadata,
	))
	return out, notFound(err)
}
