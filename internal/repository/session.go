package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arjunmehta12/mockmate/pkg/apperror"
	"github.com/arjunmehta12/mockmate/pkg/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const sessionColumns = `
	session_id, candidate_id, role_profile_id, interviewer_id, slot_id,
	meeting_id, scheduled_at, level, scoring_model_version, status,
	overall_score, readiness_status, readiness_gap, reschedule_count,
	meeting_created, meeting_attempts, rating, created_at, updated_at, completed_at`

func scanSession(row pgx.Row) (*model.InterviewSession, error) {
	var s model.InterviewSession
	err := row.Scan(
		&s.SessionID, &s.CandidateID, &s.RoleProfileID, &s.InterviewerID, &s.SlotID,
		&s.MeetingID, &s.ScheduledAt, &s.Level, &s.ScoringModelVersion, &s.Status,
		&s.OverallScore, &s.ReadinessStatus, &s.ReadinessGap, &s.RescheduleCount,
		&s.MeetingCreated, &s.MeetingAttempts, &s.Rating, &s.CreatedAt, &s.UpdatedAt, &s.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("session not found")
		}
		return nil, fmt.Errorf("scan session: %w", err)
	}
	return &s, nil
}

func (r *Repository) CreateSession(ctx context.Context, s *model.InterviewSession) error {
	const q = `
INSERT INTO interview_sessions (
	session_id, candidate_id, role_profile_id, interviewer_id, slot_id,
	meeting_id, scheduled_at, level, scoring_model_version, status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.Exec(ctx, q,
		s.SessionID, s.CandidateID, s.RoleProfileID, s.InterviewerID, s.SlotID,
		s.MeetingID, s.ScheduledAt, s.Level, s.ScoringModelVersion, s.Status,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *Repository) GetSession(ctx context.Context, sessionID uuid.UUID) (*model.InterviewSession, error) {
	q := `SELECT` + sessionColumns + ` FROM interview_sessions WHERE session_id = $1`
	return scanSession(r.db.QueryRow(ctx, q, sessionID))
}

// StartSessionIf transitions scheduled -> in_progress. False means the
// session was not in scheduled state when the update ran.
func (r *Repository) StartSessionIf(ctx context.Context, sessionID uuid.UUID) (bool, error) {
	const q = `
UPDATE interview_sessions SET status = 'in_progress', updated_at = now()
WHERE session_id = $1 AND status = 'scheduled'`
	tag, err := r.db.Exec(ctx, q, sessionID)
	if err != nil {
		return false, fmt.Errorf("start session: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// CompleteSessionIf persists the final scores and flips in_progress ->
// completed in one conditional update, so only one of two concurrent
// completions can apply.
func (r *Repository) CompleteSessionIf(ctx context.Context, sessionID uuid.UUID, overall float64, status model.ReadinessStatus, gap float64) (bool, error) {
	const q = `
UPDATE interview_sessions
SET status = 'completed', overall_score = $2, readiness_status = $3,
    readiness_gap = $4, completed_at = now(), updated_at = now()
WHERE session_id = $1 AND status = 'in_progress'`
	tag, err := r.db.Exec(ctx, q, sessionID, overall, status, gap)
	if err != nil {
		return false, fmt.Errorf("complete session: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// RescheduleSessionIf moves a scheduled session to a new slot, guarded by
// the reschedule limit inside the predicate itself.
func (r *Repository) RescheduleSessionIf(ctx context.Context, sessionID, newSlotID uuid.UUID, newScheduledAt time.Time) (bool, error) {
	const q = `
UPDATE interview_sessions
SET slot_id = $2, scheduled_at = $3, reschedule_count = reschedule_count + 1,
    meeting_created = false, meeting_attempts = 0, updated_at = now()
WHERE session_id = $1 AND status = 'scheduled' AND reschedule_count < $4`
	tag, err := r.db.Exec(ctx, q, sessionID, newSlotID, newScheduledAt, model.MaxReschedules)
	if err != nil {
		return false, fmt.Errorf("reschedule session: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// RateSessionIf records a candidate rating exactly once per session.
func (r *Repository) RateSessionIf(ctx context.Context, sessionID uuid.UUID, rating int) (bool, error) {
	const q = `
UPDATE interview_sessions SET rating = $2, updated_at = now()
WHERE session_id = $1 AND status = 'completed' AND rating IS NULL`
	tag, err := r.db.Exec(ctx, q, sessionID, rating)
	if err != nil {
		return false, fmt.Errorf("rate session: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// InsertSectionScores writes the append-only per-section rows for a
// completed session.
func (r *Repository) InsertSectionScores(ctx context.Context, sessionID uuid.UUID, scores []model.SectionResult) error {
	const q = `
INSERT INTO section_scores (session_id, section_name, raw_score, weighted_score)
VALUES ($1, $2, $3, $4)`
	for _, s := range scores {
		if _, err := r.db.Exec(ctx, q, sessionID, s.Name, s.RawScore, s.WeightedScore); err != nil {
			return fmt.Errorf("insert section score %q: %w", s.Name, err)
		}
	}
	return nil
}

// CountCompletedToday backs the per-candidate daily interview cap.
func (r *Repository) CountCompletedToday(ctx context.Context, candidateID uuid.UUID) (int, error) {
	const q = `
SELECT COUNT(1) FROM interview_sessions
WHERE candidate_id = $1 AND status = 'completed'
  AND completed_at >= date_trunc('day', now())`
	var n int
	if err := r.db.QueryRow(ctx, q, candidateID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count completed sessions: %w", err)
	}
	return n, nil
}

// MarkMeetingCreated flags a session's meeting as provisioned. Also counts
// the successful attempt.
func (r *Repository) MarkMeetingCreated(ctx context.Context, sessionID uuid.UUID) error {
	const q = `
UPDATE interview_sessions
SET meeting_created = true, meeting_attempts = meeting_attempts + 1, updated_at = now()
WHERE session_id = $1`
	if _, err := r.db.Exec(ctx, q, sessionID); err != nil {
		return fmt.Errorf("mark meeting created: %w", err)
	}
	return nil
}

func (r *Repository) IncrementMeetingAttempts(ctx context.Context, sessionID uuid.UUID) error {
	const q = `
UPDATE interview_sessions
SET meeting_attempts = meeting_attempts + 1, updated_at = now()
WHERE session_id = $1`
	if _, err := r.db.Exec(ctx, q, sessionID); err != nil {
		return fmt.Errorf("increment meeting attempts: %w", err)
	}
	return nil
}

// ListUnprovisionedSessions returns scheduled sessions still waiting for a
// meeting, oldest first, for the startup retry sweep.
func (r *Repository) ListUnprovisionedSessions(ctx context.Context, maxAttempts, limit int) ([]model.InterviewSession, error) {
	q := `SELECT` + sessionColumns + `
FROM interview_sessions
WHERE status = 'scheduled' AND meeting_created = false AND meeting_attempts < $1
ORDER BY created_at ASC
LIMIT $2`
	rows, err := r.db.Query(ctx, q, maxAttempts, limit)
	if err != nil {
		return nil, fmt.Errorf("query unprovisioned sessions: %w", err)
	}
	defer rows.Close()

	var out []model.InterviewSession
	for rows.Next() {
		var s model.InterviewSession
		if err := rows.Scan(
			&s.SessionID, &s.CandidateID, &s.RoleProfileID, &s.InterviewerID, &s.SlotID,
			&s.MeetingID, &s.ScheduledAt, &s.Level, &s.ScoringModelVersion, &s.Status,
			&s.OverallScore, &s.ReadinessStatus, &s.ReadinessGap, &s.RescheduleCount,
			&s.MeetingCreated, &s.MeetingAttempts, &s.Rating, &s.CreatedAt, &s.UpdatedAt, &s.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		out = append(out, s)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}
