package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/arjunmehta12/mockmate/internal/scoring"
	"github.com/arjunmehta12/mockmate/pkg/apperror"
	"github.com/arjunmehta12/mockmate/pkg/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UpdateProgress upserts the rolling performance record for one
// (candidate, role profile) pair. The average is maintained incrementally so
// completing a session never rescans history. Runs on the completing
// transaction.
func (r *Repository) UpdateProgress(ctx context.Context, candidateID, roleProfileID uuid.UUID, newScore float64) (*model.CandidateProgress, error) {
	const getQ = `
SELECT total_sessions, latest_score, average_score
FROM candidate_progress
WHERE candidate_id = $1 AND role_profile_id = $2
FOR UPDATE`

	var (
		total   int
		latest  float64
		average float64
	)
	err := r.db.QueryRow(ctx, getQ, candidateID, roleProfileID).Scan(&total, &latest, &average)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get progress: %w", err)
	}

	p := &model.CandidateProgress{CandidateID: candidateID, RoleProfileID: roleProfileID}
	if errors.Is(err, pgx.ErrNoRows) {
		p.TotalSessions = 1
		p.LatestScore = newScore
		p.PreviousScore = 0
		p.AverageScore = newScore
		p.ImprovementDelta = newScore

		const insQ = `
INSERT INTO candidate_progress (
	candidate_id, role_profile_id, total_sessions, latest_score,
	previous_score, average_score, improvement_delta
) VALUES ($1, $2, $3, $4, $5, $6, $7)`
		if _, err := r.db.Exec(ctx, insQ,
			p.CandidateID, p.RoleProfileID, p.TotalSessions, p.LatestScore,
			p.PreviousScore, p.AverageScore, p.ImprovementDelta,
		); err != nil {
			return nil, fmt.Errorf("insert progress: %w", err)
		}
		return p, nil
	}

	n := total + 1
	p.TotalSessions = n
	p.PreviousScore = latest
	p.LatestScore = newScore
	p.ImprovementDelta = scoring.Round2(newScore - latest)
	p.AverageScore = scoring.Round2((average*float64(n-1) + newScore) / float64(n))

	const updQ = `
UPDATE candidate_progress
SET total_sessions = $3, latest_score = $4, previous_score = $5,
    average_score = $6, improvement_delta = $7, updated_at = now()
WHERE candidate_id = $1 AND role_profile_id = $2`
	if _, err := r.db.Exec(ctx, updQ,
		p.CandidateID, p.RoleProfileID, p.TotalSessions, p.LatestScore,
		p.PreviousScore, p.AverageScore, p.ImprovementDelta,
	); err != nil {
		return nil, fmt.Errorf("update progress: %w", err)
	}
	return p, nil
}

func (r *Repository) GetProgress(ctx context.Context, candidateID, roleProfileID uuid.UUID) (*model.CandidateProgress, error) {
	const q = `
SELECT candidate_id, role_profile_id, total_sessions, latest_score,
	previous_score, average_score, improvement_delta, created_at, updated_at
FROM candidate_progress
WHERE candidate_id = $1 AND role_profile_id = $2`
	var p model.CandidateProgress
	err := r.db.QueryRow(ctx, q, candidateID, roleProfileID).Scan(
		&p.CandidateID, &p.RoleProfileID, &p.TotalSessions, &p.LatestScore,
		&p.PreviousScore, &p.AverageScore, &p.ImprovementDelta, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("no progress recorded for this role profile")
		}
		return nil, fmt.Errorf("scan progress: %w", err)
	}
	return &p, nil
}
