package lifecycle

import (
	"context"

	"github.com/arjunmehta12/mockmate/internal/metrics"
	"github.com/arjunmehta12/mockmate/internal/repository"
	"github.com/arjunmehta12/mockmate/internal/scoring"
	"github.com/arjunmehta12/mockmate/pkg/apperror"
	"github.com/arjunmehta12/mockmate/pkg/model"
	"github.com/google/uuid"
)

// finalizeScores is the shared core of both completion paths: resolve the
// frozen scoring inputs, flip the session to completed under the
// in_progress precondition, write the per-section rows and fold the result
// into candidate progress. Callers layer their own post-effects on top.
func (s *Service) finalizeScores(ctx context.Context, txr *repository.Repository, sess *model.InterviewSession, raw map[string]float64) (scoring.FinalResult, []model.SectionResult, error) {
	var zero scoring.FinalResult

	profile, err := s.roleProfile(ctx, txr, sess.RoleProfileID)
	if err != nil {
		return zero, nil, err
	}
	// Always the version snapshotted at creation, never the active model:
	// replacing the active model must not change how this session scores.
	sm, err := txr.GetScoringModelByVersion(ctx, sess.ScoringModelVersion)
	if err != nil {
		return zero, nil, err
	}

	result, err := scoring.ComputeFinalResult(raw, profile, sess.Level, sm)
	if err != nil {
		return zero, nil, err
	}

	// The conditional update goes first so a losing concurrent submission
	// writes no section rows at all.
	ok, err := txr.CompleteSessionIf(ctx, sess.SessionID, result.OverallScore, result.ReadinessStatus, result.ReadinessGap)
	if err != nil {
		return zero, nil, err
	}
	if !ok {
		return zero, nil, apperror.Conflict("session is not in progress")
	}

	breakdown := scoring.Breakdown(raw, profile)
	if err := txr.InsertSectionScores(ctx, sess.SessionID, breakdown); err != nil {
		return zero, nil, err
	}
	if _, err := txr.UpdateProgress(ctx, sess.CandidateID, sess.RoleProfileID, result.OverallScore); err != nil {
		return zero, nil, err
	}
	return result, breakdown, nil
}

// CompleteInterview scores a self-serve practice session. On top of the
// shared finalize path it derives the performance tier, the section
// breakdown and, when the candidate is not ready, an action plan.
func (s *Service) CompleteInterview(ctx context.Context, candidateID, sessionID uuid.UUID, raw map[string]float64) (*model.CompletionResult, error) {
	if err := validateRawScores(raw); err != nil {
		return nil, err
	}

	var out *model.CompletionResult
	err := s.repo.ExecTx(ctx, func(txr *repository.Repository) error {
		sess, err := txr.GetSession(ctx, sessionID)
		if err != nil {
			return err
		}
		if sess.CandidateID != candidateID {
			return apperror.Forbidden("session belongs to another candidate")
		}
		if sess.SlotID != nil {
			return apperror.Validation("slot-backed sessions are scored by the interviewer")
		}

		result, breakdown, err := s.finalizeScores(ctx, txr, sess, raw)
		if err != nil {
			return err
		}

		profile, err := s.roleProfile(ctx, txr, sess.RoleProfileID)
		if err != nil {
			return err
		}
		out = &model.CompletionResult{
			SessionID:       sess.SessionID,
			WeightedScore:   result.WeightedScore,
			OverallScore:    result.OverallScore,
			ReadinessStatus: result.ReadinessStatus,
			ReadinessGap:    result.ReadinessGap,
			PerformanceTier: scoring.Tier(result.OverallScore),
			Breakdown:       breakdown,
		}
		if result.ReadinessStatus == model.ReadinessNotReady {
			out.ActionPlan = scoring.BuildActionPlan(breakdown, profile, result.OverallScore)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.SessionsCompleted.WithLabelValues("self_serve").Inc()
	return out, nil
}

// SubmitScores scores a slot-backed session on behalf of its interviewer.
// On top of the shared finalize path it completes the slot, checks that the
// booking was actually paid and credits the interviewer's earnings, all in
// the same transaction as the completion flip.
func (s *Service) SubmitScores(ctx context.Context, interviewerID, sessionID uuid.UUID, raw map[string]float64) (*model.CompletionResult, error) {
	if err := validateRawScores(raw); err != nil {
		return nil, err
	}

	var out *model.CompletionResult
	err := s.repo.ExecTx(ctx, func(txr *repository.Repository) error {
		sess, err := txr.GetSession(ctx, sessionID)
		if err != nil {
			return err
		}
		if sess.InterviewerID == nil || *sess.InterviewerID != interviewerID {
			return apperror.Forbidden("session belongs to another interviewer")
		}
		if sess.SlotID == nil {
			return apperror.Validation("session has no slot to settle")
		}

		result, breakdown, err := s.finalizeScores(ctx, txr, sess, raw)
		if err != nil {
			return err
		}

		ok, err := txr.UpdateSlotStatusIf(ctx, *sess.SlotID, model.SlotStatusReserved, model.SlotStatusCompleted)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.Conflict("slot is not in a completable state")
		}

		payment, err := txr.GetPaymentBySessionID(ctx, sess.SessionID)
		if err != nil {
			return err
		}
		if payment.Status != model.PaymentStatusPaid {
			return apperror.Conflict("no settled payment for this session")
		}
		if err := txr.CreditInterviewer(ctx, interviewerID, payment.InterviewerShare); err != nil {
			return err
		}

		out = &model.CompletionResult{
			SessionID:       sess.SessionID,
			WeightedScore:   result.WeightedScore,
			OverallScore:    result.OverallScore,
			ReadinessStatus: result.ReadinessStatus,
			ReadinessGap:    result.ReadinessGap,
			Breakdown:       breakdown,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.SessionsCompleted.WithLabelValues("slot_backed").Inc()
	return out, nil
}
