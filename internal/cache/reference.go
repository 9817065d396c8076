package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/arjunmehta12/mockmate/pkg/model"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	activeModelKey  = "scoring_model:active"
	roleProfilePref = "role_profile:"
)

// Reference caches hot read-mostly reference data (the active scoring model,
// role profiles). Cache misses and redis failures both fall through to the
// database; the cache is never authoritative.
type Reference struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewReference(rdb *redis.Client, ttl time.Duration) *Reference {
	return &Reference{rdb: rdb, ttl: ttl}
}

func (c *Reference) GetActiveModel(ctx context.Context) (*model.ScoringModel, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	b, err := c.rdb.Get(ctx, activeModelKey).Bytes()
	if err != nil {
		return nil, false
	}
	var sm model.ScoringModel
	if err := json.Unmarshal(b, &sm); err != nil {
		return nil, false
	}
	return &sm, true
}

func (c *Reference) SetActiveModel(ctx context.Context, sm *model.ScoringModel) {
	if c == nil || c.rdb == nil {
		return
	}
	b, err := json.Marshal(sm)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, activeModelKey, b, c.ttl).Err()
}

// InvalidateActiveModel drops the cached active model, used when an admin
// activates a new version.
func (c *Reference) InvalidateActiveModel(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, activeModelKey).Err()
}

func (c *Reference) GetRoleProfile(ctx context.Context, id uuid.UUID) (*model.RoleProfile, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	b, err := c.rdb.Get(ctx, roleProfilePref+id.String()).Bytes()
	if err != nil {
		return nil, false
	}
	var rp model.RoleProfile
	if err := json.Unmarshal(b, &rp); err != nil {
		return nil, false
	}
	return &rp, true
}

func (c *Reference) SetRoleProfile(ctx context.Context, rp *model.RoleProfile) {
	if c == nil || c.rdb == nil {
		return
	}
	b, err := json.Marshal(rp)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, roleProfilePref+rp.RoleProfileID.String(), b, c.ttl).Err()
}
