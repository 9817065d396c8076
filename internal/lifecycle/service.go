// Package lifecycle drives the interview session state machine. Every
// multi-aggregate mutation (slot + session + payment + progress) runs inside
// one repository transaction; conditional updates inside that transaction
// are what reject concurrent conflicting attempts. Meeting provisioning is
// the single deliberate exception: it runs after commit, detached, and its
// failures never reach the caller.
package lifecycle

import (
	"context"
	"time"

	"github.com/arjunmehta12/mockmate/internal/auth"
	"github.com/arjunmehta12/mockmate/internal/cache"
	"github.com/arjunmehta12/mockmate/internal/meeting"
	"github.com/arjunmehta12/mockmate/internal/payments"
	"github.com/arjunmehta12/mockmate/internal/repository"
	"github.com/arjunmehta12/mockmate/pkg/apperror"
	"github.com/arjunmehta12/mockmate/pkg/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	startWindowBefore = 5 * time.Minute
	startWindowAfter  = 30 * time.Minute
	joinWindowLive    = 60 * time.Minute
	rescheduleCutoff  = 2 * time.Hour
)

type Service struct {
	repo        *repository.Repository
	ref         *cache.Reference
	gateway     *payments.Gateway
	provisioner *meeting.Provisioner
	joinTokens  *auth.JoinTokenMaker
	log         *zap.Logger
	dailyCap    int

	// now is swappable for window tests.
	now func() time.Time
}

func NewService(
	repo *repository.Repository,
	ref *cache.Reference,
	gateway *payments.Gateway,
	provisioner *meeting.Provisioner,
	joinTokens *auth.JoinTokenMaker,
	log *zap.Logger,
	dailyCap int,
) *Service {
	return &Service{
		repo:        repo,
		ref:         ref,
		gateway:     gateway,
		provisioner: provisioner,
		joinTokens:  joinTokens,
		log:         log,
		dailyCap:    dailyCap,
		now:         time.Now,
	}
}

// activeScoringModel resolves the currently active model, cache first.
func (s *Service) activeScoringModel(ctx context.Context, r *repository.Repository) (*model.ScoringModel, error) {
	if sm, ok := s.ref.GetActiveModel(ctx); ok {
		return sm, nil
	}
	sm, err := r.GetActiveScoringModel(ctx)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindNotFound {
			return nil, apperror.NotFound("no active scoring model")
		}
		return nil, err
	}
	s.ref.SetActiveModel(ctx, sm)
	return sm, nil
}

func (s *Service) roleProfile(ctx context.Context, r *repository.Repository, id uuid.UUID) (*model.RoleProfile, error) {
	if rp, ok := s.ref.GetRoleProfile(ctx, id); ok {
		return rp, nil
	}
	rp, err := r.GetRoleProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	s.ref.SetRoleProfile(ctx, rp)
	return rp, nil
}

func validateRawScores(raw map[string]float64) error {
	for name, v := range raw {
		if v < 0 || v > 10 {
			return apperror.Validation("score for section " + name + " must be between 0 and 10")
		}
	}
	return nil
}

// provisionAfterCommit fires detached meeting creation for a session that
// just got (re)scheduled.
func (s *Service) provisionAfterCommit(sess *model.InterviewSession) {
	if s.provisioner == nil || sess.MeetingID == nil || sess.ScheduledAt == nil {
		return
	}
	s.provisioner.ProvisionAsync(sess.SessionID, *sess.MeetingID, *sess.ScheduledAt)
}
