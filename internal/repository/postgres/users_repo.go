package postgres

import (
	"context"

	"github.com/baharkarakas/staybook/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type usersRepo struct{ pool *pgxpool.Pool }

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	var u models.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, first_name, last_name, phone_number, role, created_at FROM users WHERE id=$1`, id,
	).Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.PhoneNumber, &u.Role, &u.CreatedAt)
	return u, notFound(err)
}
