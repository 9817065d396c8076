package model

import (
	"time"

	"github.com/google/uuid"
)

// RoleSection is one weighted section of a role profile. Weights across a
// profile always sum to exactly 100.
type RoleSection struct {
	Name   string `json:"name"`
	Weight int    `json:"weight"`
}

type RoleProfile struct {
	RoleProfileID      uuid.UUID     `json:"role_profile_id" db:"role_profile_id"`
	Name               string        `json:"name" db:"name"`
	Sections           []RoleSection `json:"sections" db:"sections"`
	ReadinessThreshold float64       `json:"readiness_threshold" db:"readiness_threshold"`
	ConfidenceBuffer   float64       `json:"confidence_buffer" db:"confidence_buffer"`
	CreatedAt          time.Time     `json:"created_at" db:"created_at"`
}

type CreateRoleProfileRequest struct {
	Name               string        `json:"name" binding:"required"`
	Sections           []RoleSection `json:"sections" binding:"required,min=1"`
	ReadinessThreshold float64       `json:"readiness_threshold" binding:"required,gte=0,lte=100"`
	ConfidenceBuffer   float64       `json:"confidence_buffer" binding:"gte=0,lte=50"`
}
