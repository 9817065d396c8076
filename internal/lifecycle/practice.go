package lifecycle

import (
	"context"

	"github.com/arjunmehta12/mockmate/internal/repository"
	"github.com/arjunmehta12/mockmate/pkg/apperror"
	"github.com/arjunmehta12/mockmate/pkg/model"
	"github.com/google/uuid"
)

// StartPractice creates a self-serve session directly in progress: no slot,
// no payment, no meeting. The daily cap counts sessions the candidate
// already completed today, so a candidate cannot farm readiness scores.
func (s *Service) StartPractice(ctx context.Context, candidateID uuid.UUID, req model.StartPracticeRequest) (*model.InterviewSession, error) {
	if !req.Level.Valid() {
		return nil, apperror.Validation("unknown difficulty level " + string(req.Level))
	}

	var sess *model.InterviewSession
	err := s.repo.ExecTx(ctx, func(txr *repository.Repository) error {
		if _, err := s.roleProfile(ctx, txr, req.RoleProfileID); err != nil {
			return err
		}
		sm, err := s.activeScoringModel(ctx, txr)
		if err != nil {
			return err
		}

		completedToday, err := txr.CountCompletedToday(ctx, candidateID)
		if err != nil {
			return err
		}
		if completedToday >= s.dailyCap {
			return apperror.RateLimited("daily interview limit reached")
		}

		sess = &model.InterviewSession{
			SessionID:           uuid.New(),
			CandidateID:         candidateID,
			RoleProfileID:       req.RoleProfileID,
			Level:               req.Level,
			ScoringModelVersion: sm.Version,
			Status:              model.SessionStatusInProgress,
		}
		return txr.CreateSession(ctx, sess)
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}
