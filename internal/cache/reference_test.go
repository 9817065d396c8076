package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/arjunmehta12/mockmate/pkg/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReference(t *testing.T) *Reference {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewReference(NewRedisClient(mr.Addr(), "", 0), time.Minute)
}

func TestReference_ActiveModelRoundTrip(t *testing.T) {
	ctx := context.Background()
	ref := newTestReference(t)

	_, ok := ref.GetActiveModel(ctx)
	assert.False(t, ok)

	sm := &model.ScoringModel{
		ScoringModelID: uuid.New(),
		Version:        3,
		Active:         true,
		Multipliers: map[model.DifficultyLevel]float64{
			model.LevelConfidence: 1.0,
			model.LevelStress:     1.2,
		},
	}
	ref.SetActiveModel(ctx, sm)

	got, ok := ref.GetActiveModel(ctx)
	require.True(t, ok)
	assert.Equal(t, 3, got.Version)
	assert.Equal(t, 1.2, got.Multipliers[model.LevelStress])

	ref.InvalidateActiveModel(ctx)
	_, ok = ref.GetActiveModel(ctx)
	assert.False(t, ok)
}

func TestReference_RoleProfile(t *testing.T) {
	ctx := context.Background()
	ref := newTestReference(t)

	rp := &model.RoleProfile{
		RoleProfileID:      uuid.New(),
		Name:               "backend-engineer",
		Sections:           []model.RoleSection{{Name: "technical", Weight: 60}, {Name: "communication", Weight: 40}},
		ReadinessThreshold: 70,
		ConfidenceBuffer:   5,
	}
	ref.SetRoleProfile(ctx, rp)

	got, ok := ref.GetRoleProfile(ctx, rp.RoleProfileID)
	require.True(t, ok)
	assert.Equal(t, rp.Sections, got.Sections)

	_, ok = ref.GetRoleProfile(ctx, uuid.New())
	assert.False(t, ok)
}

func TestReference_NilSafe(t *testing.T) {
	var ref *Reference
	_, ok := ref.GetActiveModel(context.Background())
	assert.False(t, ok)
	ref.SetActiveModel(context.Background(), &model.ScoringModel{})
}
