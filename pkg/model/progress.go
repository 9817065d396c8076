package model

import (
	"time"

	"github.com/google/uuid"
)

// CandidateProgress is one permanent row per (candidate, role profile),
// created on the first completed session and updated incrementally after.
type CandidateProgress struct {
	CandidateID      uuid.UUID `json:"candidate_id" db:"candidate_id"`
	RoleProfileID    uuid.UUID `json:"role_profile_id" db:"role_profile_id"`
	TotalSessions    int       `json:"total_sessions" db:"total_sessions"`
	LatestScore      float64   `json:"latest_score" db:"latest_score"`
	PreviousScore    float64   `json:"previous_score" db:"previous_score"`
	AverageScore     float64   `json:"average_score" db:"average_score"`
	ImprovementDelta float64   `json:"improvement_delta" db:"improvement_delta"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}
