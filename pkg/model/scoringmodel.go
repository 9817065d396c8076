package model

import (
	"time"

	"github.com/google/uuid"
)

type DifficultyLevel string

const (
	LevelConfidence DifficultyLevel = "confidence"
	LevelGuided     DifficultyLevel = "guided"
	LevelSimulation DifficultyLevel = "simulation"
	LevelStress     DifficultyLevel = "stress"
)

// Valid reports whether l is one of the four known difficulty levels.
func (l DifficultyLevel) Valid() bool {
	switch l {
	case LevelConfidence, LevelGuided, LevelSimulation, LevelStress:
		return true
	}
	return false
}

// ScoringModel is immutable once any session references its version. Sessions
// snapshot the version at creation and always score against that snapshot.
type ScoringModel struct {
	ScoringModelID uuid.UUID                   `json:"scoring_model_id" db:"scoring_model_id"`
	Version        int                         `json:"version" db:"version"`
	Multipliers    map[DifficultyLevel]float64 `json:"multipliers" db:"multipliers"`
	Active         bool                        `json:"active" db:"active"`
	CreatedAt      time.Time                   `json:"created_at" db:"created_at"`
}

type CreateScoringModelRequest struct {
	Multipliers map[DifficultyLevel]float64 `json:"multipliers" binding:"required"`
}
