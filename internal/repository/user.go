package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/arjunmehta12/mockmate/pkg/apperror"
	"github.com/arjunmehta12/mockmate/pkg/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const userColumns = `user_id, email, name, password_hash, role, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.UserID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func (r *Repository) CreateUser(ctx context.Context, u *model.User) error {
	const q = `
INSERT INTO users (user_id, email, name, password_hash, role)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Exec(ctx, q, u.UserID, u.Email, u.Name, u.PasswordHash, u.Role)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.Conflict("email already registered")
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(ctx, q, email))
}

func (r *Repository) GetUserByID(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`
	return scanUser(r.db.QueryRow(ctx, q, userID))
}

// AdminCounts backs the simple admin reporting card.
func (r *Repository) AdminCounts(ctx context.Context) (*model.AdminCounts, error) {
	const q = `
SELECT
	(SELECT COUNT(1) FROM interview_sessions),
	(SELECT COUNT(1) FROM interview_sessions WHERE status = 'completed'),
	(SELECT COUNT(1) FROM payment_records WHERE status = 'paid'),
	(SELECT COUNT(1) FROM availability_slots WHERE status = 'available' AND start_time > now())`
	var c model.AdminCounts
	if err := r.db.QueryRow(ctx, q).Scan(&c.TotalSessions, &c.CompletedSessions, &c.PaidPayments, &c.OpenSlots); err != nil {
		return nil, fmt.Errorf("scan admin counts: %w", err)
	}
	return &c, nil
}
