package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/arjunmehta12/mockmate/pkg/apperror"
	"github.com/arjunmehta12/mockmate/pkg/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (r *Repository) GetInterviewerProfile(ctx context.Context, userID uuid.UUID) (*model.InterviewerProfile, error) {
	const q = `
SELECT user_id, verified, rating_average, rating_count, total_interviews,
	total_earnings, created_at, updated_at
FROM interviewer_profiles WHERE user_id = $1`
	var p model.InterviewerProfile
	err := r.db.QueryRow(ctx, q, userID).Scan(
		&p.UserID, &p.Verified, &p.RatingAverage, &p.RatingCount, &p.TotalInterviews,
		&p.TotalEarnings, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("interviewer profile not found")
		}
		return nil, fmt.Errorf("scan interviewer profile: %w", err)
	}
	return &p, nil
}

// EnsureInterviewerProfile creates the empty, unverified profile row when an
// interviewer signs up.
func (r *Repository) EnsureInterviewerProfile(ctx context.Context, userID uuid.UUID) error {
	const q = `
INSERT INTO interviewer_profiles (user_id) VALUES ($1)
ON CONFLICT (user_id) DO NOTHING`
	if _, err := r.db.Exec(ctx, q, userID); err != nil {
		return fmt.Errorf("ensure interviewer profile: %w", err)
	}
	return nil
}

func (r *Repository) VerifyInterviewer(ctx context.Context, userID uuid.UUID) error {
	const q = `
UPDATE interviewer_profiles SET verified = true, updated_at = now()
WHERE user_id = $1`
	tag, err := r.db.Exec(ctx, q, userID)
	if err != nil {
		return fmt.Errorf("verify interviewer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("interviewer profile not found")
	}
	return nil
}

// CreditInterviewer settles a completed slot-backed session: one more
// interview on the tally plus the interviewer share of the payment. Always
// runs on the completing transaction.
func (r *Repository) CreditInterviewer(ctx context.Context, userID uuid.UUID, earnings int64) error {
	const q = `
UPDATE interviewer_profiles
SET total_interviews = total_interviews + 1, total_earnings = total_earnings + $2,
    updated_at = now()
WHERE user_id = $1`
	tag, err := r.db.Exec(ctx, q, userID, earnings)
	if err != nil {
		return fmt.Errorf("credit interviewer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("interviewer profile not found")
	}
	return nil
}

// ApplyRating folds one 1-5 rating into the running average.
func (r *Repository) ApplyRating(ctx context.Context, userID uuid.UUID, rating int) error {
	const q = `
UPDATE interviewer_profiles
SET rating_average = (rating_average * rating_count + $2) / (rating_count + 1),
    rating_count = rating_count + 1, updated_at = now()
WHERE user_id = $1`
	tag, err := r.db.Exec(ctx, q, userID, rating)
	if err != nil {
		return fmt.Errorf("apply rating: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("interviewer profile not found")
	}
	return nil
}
