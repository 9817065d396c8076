package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/arjunmehta12/mockmate/pkg/apperror"
	"github.com/arjunmehta12/mockmate/pkg/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateRoleProfile validates the 100-weight invariant before inserting.
func (r *Repository) CreateRoleProfile(ctx context.Context, rp *model.RoleProfile) error {
	var sum int
	for _, s := range rp.Sections {
		if s.Weight < 0 {
			return apperror.Validation("section weights cannot be negative")
		}
		sum += s.Weight
	}
	if sum != 100 {
		return apperror.Validation(fmt.Sprintf("section weights must sum to 100, got %d", sum))
	}

	b, err := json.Marshal(rp.Sections)
	if err != nil {
		return fmt.Errorf("marshal sections: %w", err)
	}
	const q = `
INSERT INTO role_profiles (role_profile_id, name, sections, readiness_threshold, confidence_buffer)
VALUES ($1, $2, $3::jsonb, $4, $5)`
	if _, err := r.db.Exec(ctx, q, rp.RoleProfileID, rp.Name, b, rp.ReadinessThreshold, rp.ConfidenceBuffer); err != nil {
		return fmt.Errorf("insert role profile: %w", err)
	}
	return nil
}

func (r *Repository) GetRoleProfile(ctx context.Context, id uuid.UUID) (*model.RoleProfile, error) {
	const q = `
SELECT role_profile_id, name, sections, readiness_threshold, confidence_buffer, created_at
FROM role_profiles WHERE role_profile_id = $1`
	var rp model.RoleProfile
	var sections []byte
	err := r.db.QueryRow(ctx, q, id).Scan(
		&rp.RoleProfileID, &rp.Name, &sections, &rp.ReadinessThreshold, &rp.ConfidenceBuffer, &rp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("role profile not found")
		}
		return nil, fmt.Errorf("scan role profile: %w", err)
	}
	if err := json.Unmarshal(sections, &rp.Sections); err != nil {
		return nil, fmt.Errorf("unmarshal sections: %w", err)
	}
	return &rp, nil
}

func scanScoringModel(row pgx.Row) (*model.ScoringModel, error) {
	var sm model.ScoringModel
	var multipliers []byte
	err := row.Scan(&sm.ScoringModelID, &sm.Version, &multipliers, &sm.Active, &sm.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("scoring model not found")
		}
		return nil, fmt.Errorf("scan scoring model: %w", err)
	}
	if err := json.Unmarshal(multipliers, &sm.Multipliers); err != nil {
		return nil, fmt.Errorf("unmarshal multipliers: %w", err)
	}
	return &sm, nil
}

func (r *Repository) GetActiveScoringModel(ctx context.Context) (*model.ScoringModel, error) {
	const q = `
SELECT scoring_model_id, version, multipliers, active, created_at
FROM scoring_models WHERE active = true`
	return scanScoringModel(r.db.QueryRow(ctx, q))
}

// GetScoringModelByVersion resolves the frozen snapshot a session was
// created under. Scoring always goes through here, never through the active
// model, so replacing the active model cannot change historical scores.
func (r *Repository) GetScoringModelByVersion(ctx context.Context, version int) (*model.ScoringModel, error) {
	const q = `
SELECT scoring_model_id, version, multipliers, active, created_at
FROM scoring_models WHERE version = $1`
	return scanScoringModel(r.db.QueryRow(ctx, q, version))
}

// CreateScoringModel inserts the next version and makes it the single active
// model. Existing versions stay immutable; only their active flag changes.
func (r *Repository) CreateScoringModel(ctx context.Context, multipliers map[model.DifficultyLevel]float64) (*model.ScoringModel, error) {
	for _, lvl := range []model.DifficultyLevel{model.LevelConfidence, model.LevelGuided, model.LevelSimulation, model.LevelStress} {
		m, ok := multipliers[lvl]
		if !ok || m <= 0 {
			return nil, apperror.Validation("multiplier for " + string(lvl) + " must be positive")
		}
	}

	b, err := json.Marshal(multipliers)
	if err != nil {
		return nil, fmt.Errorf("marshal multipliers: %w", err)
	}

	sm := &model.ScoringModel{ScoringModelID: uuid.New(), Multipliers: multipliers, Active: true}
	err = r.ExecTx(ctx, func(txr *Repository) error {
		if _, err := txr.db.Exec(ctx, `UPDATE scoring_models SET active = false WHERE active = true`); err != nil {
			return fmt.Errorf("deactivate models: %w", err)
		}
		const q = `
INSERT INTO scoring_models (scoring_model_id, version, multipliers, active)
VALUES ($1, (SELECT COALESCE(MAX(version), 0) + 1 FROM scoring_models), $2::jsonb, true)
RETURNING version, created_at`
		if err := txr.db.QueryRow(ctx, q, sm.ScoringModelID, b).Scan(&sm.Version, &sm.CreatedAt); err != nil {
			return fmt.Errorf("insert scoring model: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sm, nil
}
