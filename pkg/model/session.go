package model

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionStatusScheduled  SessionStatus = "scheduled"
	SessionStatusInProgress SessionStatus = "in_progress"
	SessionStatusCompleted  SessionStatus = "completed"
	SessionStatusCancelled  SessionStatus = "cancelled"
)

type ReadinessStatus string

const (
	ReadinessReady    ReadinessStatus = "ready"
	ReadinessNotReady ReadinessStatus = "not_ready"
)

// MaxReschedules caps how often a scheduled session may be moved.
const MaxReschedules = 1

type InterviewSession struct {
	SessionID           uuid.UUID        `json:"session_id" db:"session_id"`
	CandidateID         uuid.UUID        `json:"candidate_id" db:"candidate_id"`
	RoleProfileID       uuid.UUID        `json:"role_profile_id" db:"role_profile_id"`
	InterviewerID       *uuid.UUID       `json:"interviewer_id" db:"interviewer_id"`
	SlotID              *uuid.UUID       `json:"slot_id" db:"slot_id"`
	MeetingID           *uuid.UUID       `json:"meeting_id" db:"meeting_id"`
	ScheduledAt         *time.Time       `json:"scheduled_at" db:"scheduled_at"`
	Level               DifficultyLevel  `json:"level" db:"level"`
	ScoringModelVersion int              `json:"scoring_model_version" db:"scoring_model_version"`
	Status              SessionStatus    `json:"status" db:"status"`
	OverallScore        *float64         `json:"overall_score" db:"overall_score"`
	ReadinessStatus     *ReadinessStatus `json:"readiness_status" db:"readiness_status"`
	ReadinessGap        *float64         `json:"readiness_gap" db:"readiness_gap"`
	RescheduleCount     int              `json:"reschedule_count" db:"reschedule_count"`
	MeetingCreated      bool             `json:"meeting_created" db:"meeting_created"`
	MeetingAttempts     int              `json:"meeting_attempts" db:"meeting_attempts"`
	Rating              *int             `json:"rating" db:"rating"`
	CreatedAt           time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at" db:"updated_at"`
	CompletedAt         *time.Time       `json:"completed_at" db:"completed_at"`
}

// SectionScore rows are append-only: one per role-profile section per
// completed session, written exactly once.
type SectionScore struct {
	SectionScoreID int64     `json:"section_score_id" db:"section_score_id"`
	SessionID      uuid.UUID `json:"session_id" db:"session_id"`
	SectionName    string    `json:"section_name" db:"section_name"`
	RawScore       float64   `json:"raw_score" db:"raw_score"`
	WeightedScore  float64   `json:"weighted_score" db:"weighted_score"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

type StartPracticeRequest struct {
	RoleProfileID uuid.UUID       `json:"role_profile_id" binding:"required"`
	Level         DifficultyLevel `json:"level" binding:"required"`
}

type SubmitScoresRequest struct {
	SectionScores map[string]float64 `json:"section_scores" binding:"required,min=1"`
}

type BookSlotRequest struct {
	SlotID uuid.UUID `json:"slot_id" binding:"required"`
}

type RescheduleRequest struct {
	NewSlotID uuid.UUID `json:"new_slot_id" binding:"required"`
}

type RateSessionRequest struct {
	Rating int `json:"rating" binding:"required,min=1,max=5"`
}

type SectionResult struct {
	Name          string  `json:"name"`
	Weight        int     `json:"weight"`
	RawScore      float64 `json:"raw_score"`
	WeightedScore float64 `json:"weighted_score"`
}

// ActionPlan recommends the minimum raw-score improvement on the weakest
// section needed to reach the profile's aspirational target.
type ActionPlan struct {
	FocusSection      string  `json:"focus_section"`
	TargetScore       float64 `json:"target_score"`
	RawScoreIncrease  float64 `json:"raw_score_increase"`
	CurrentRawScore   float64 `json:"current_raw_score"`
	RecommendedAction string  `json:"recommended_action"`
}

type CompletionResult struct {
	SessionID       uuid.UUID       `json:"session_id"`
	WeightedScore   float64         `json:"weighted_score"`
	OverallScore    float64         `json:"overall_score"`
	ReadinessStatus ReadinessStatus `json:"readiness_status"`
	ReadinessGap    float64         `json:"readiness_gap"`
	PerformanceTier string          `json:"performance_tier,omitempty"`
	Breakdown       []SectionResult `json:"breakdown,omitempty"`
	ActionPlan      *ActionPlan     `json:"action_plan,omitempty"`
}

type JoinTokenResponse struct {
	Token     string    `json:"token"`
	MeetingID uuid.UUID `json:"meeting_id"`
	ExpiresAt int64     `json:"expires_at"` // unix seconds
}
