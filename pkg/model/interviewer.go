package model

import (
	"time"

	"github.com/google/uuid"
)

type InterviewerProfile struct {
	UserID          uuid.UUID `json:"user_id" db:"user_id"`
	Verified        bool      `json:"verified" db:"verified"`
	RatingAverage   float64   `json:"rating_average" db:"rating_average"`
	RatingCount     int       `json:"rating_count" db:"rating_count"`
	TotalInterviews int       `json:"total_interviews" db:"total_interviews"`
	TotalEarnings   int64     `json:"total_earnings" db:"total_earnings"` // minor units
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

type AdminCounts struct {
	TotalSessions     int `json:"total_sessions"`
	CompletedSessions int `json:"completed_sessions"`
	PaidPayments      int `json:"paid_payments"`
	OpenSlots         int `json:"open_slots"`
}
