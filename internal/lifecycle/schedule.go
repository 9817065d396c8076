package lifecycle

import (
	"context"
	"time"

	"github.com/arjunmehta12/mockmate/internal/repository"
	"github.com/arjunmehta12/mockmate/pkg/apperror"
	"github.com/arjunmehta12/mockmate/pkg/model"
	"github.com/google/uuid"
)

// CreateSlot publishes an availability slot for a verified interviewer.
func (s *Service) CreateSlot(ctx context.Context, interviewerID uuid.UUID, req model.CreateSlotRequest) (*model.AvailabilitySlot, error) {
	if req.Price <= 0 {
		return nil, apperror.Validation("price must be positive")
	}
	if !req.StartTime.After(s.now()) {
		return nil, apperror.Validation("slot start time must be in the future")
	}

	var slot *model.AvailabilitySlot
	err := s.repo.ExecTx(ctx, func(txr *repository.Repository) error {
		profile, err := txr.GetInterviewerProfile(ctx, interviewerID)
		if err != nil {
			return err
		}
		if !profile.Verified {
			return apperror.Forbidden("interviewer is not verified")
		}
		if _, err := s.roleProfile(ctx, txr, req.RoleProfileID); err != nil {
			return err
		}

		slot = &model.AvailabilitySlot{
			SlotID:        uuid.New(),
			InterviewerID: interviewerID,
			RoleProfileID: req.RoleProfileID,
			StartTime:     req.StartTime,
			EndTime:       req.StartTime.Add(model.SlotDuration),
			Status:        model.SlotStatusAvailable,
			Price:         req.Price,
		}
		return txr.CreateSlot(ctx, slot)
	})
	if err != nil {
		return nil, err
	}
	return slot, nil
}

// StartSession is the interviewer-initiated transition to in_progress,
// allowed only inside the start window around the scheduled time.
func (s *Service) StartSession(ctx context.Context, interviewerID, sessionID uuid.UUID) (*model.InterviewSession, error) {
	var sess *model.InterviewSession
	err := s.repo.ExecTx(ctx, func(txr *repository.Repository) error {
		var err error
		sess, err = txr.GetSession(ctx, sessionID)
		if err != nil {
			return err
		}
		if sess.InterviewerID == nil || *sess.InterviewerID != interviewerID {
			return apperror.Forbidden("session belongs to another interviewer")
		}
		if sess.Status != model.SessionStatusScheduled {
			return apperror.Conflict("session is not scheduled")
		}
		if sess.ScheduledAt == nil {
			return apperror.Conflict("session has no scheduled time")
		}

		now := s.now()
		if now.Before(sess.ScheduledAt.Add(-startWindowBefore)) || now.After(sess.ScheduledAt.Add(startWindowAfter)) {
			return apperror.Conflict("outside the session start window")
		}

		ok, err := txr.StartSessionIf(ctx, sessionID)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.Conflict("session is not scheduled")
		}
		sess.Status = model.SessionStatusInProgress
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// RescheduleSession moves a scheduled session to a new slot of the same
// interviewer and role profile. Allowed once per session and only more than
// two hours ahead of the current scheduled time. Old-slot release, new-slot
// reservation and the session update commit or roll back together.
func (s *Service) RescheduleSession(ctx context.Context, candidateID, sessionID, newSlotID uuid.UUID) (*model.InterviewSession, error) {
	var sess *model.InterviewSession
	var newStart time.Time

	err := s.repo.ExecTx(ctx, func(txr *repository.Repository) error {
		var err error
		sess, err = txr.GetSession(ctx, sessionID)
		if err != nil {
			return err
		}
		if sess.CandidateID != candidateID {
			return apperror.Forbidden("session belongs to another candidate")
		}
		if sess.Status != model.SessionStatusScheduled {
			return apperror.Conflict("only scheduled sessions can be rescheduled")
		}
		if sess.RescheduleCount >= model.MaxReschedules {
			return apperror.Conflict("reschedule limit reached")
		}
		if sess.ScheduledAt == nil || sess.SlotID == nil {
			return apperror.Conflict("session has no slot to move")
		}
		if s.now().After(sess.ScheduledAt.Add(-rescheduleCutoff)) {
			return apperror.Conflict("too close to the scheduled time to reschedule")
		}

		newSlot, err := txr.GetSlot(ctx, newSlotID)
		if err != nil {
			return err
		}
		if sess.InterviewerID == nil || newSlot.InterviewerID != *sess.InterviewerID {
			return apperror.Validation("new slot must belong to the same interviewer")
		}
		if newSlot.RoleProfileID != sess.RoleProfileID {
			return apperror.Validation("new slot must target the same role profile")
		}

		ok, err := txr.ReleaseSlot(ctx, *sess.SlotID)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.Conflict("current slot is not reserved")
		}
		ok, err = txr.ReserveSlot(ctx, newSlotID)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.Conflict("slot is not available")
		}

		newStart = newSlot.StartTime
		ok, err = txr.RescheduleSessionIf(ctx, sessionID, newSlotID, newStart)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.Conflict("reschedule limit reached")
		}

		sess.SlotID = &newSlot.SlotID
		sess.ScheduledAt = &newStart
		sess.RescheduleCount++
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The meeting flags were reset with the schedule change; provision a
	// meeting for the new time.
	s.provisionAfterCommit(sess)
	return sess, nil
}

// RateSession records the candidate's 1-5 rating for a completed
// slot-backed session, once, and folds it into the interviewer's running
// average.
func (s *Service) RateSession(ctx context.Context, candidateID, sessionID uuid.UUID, rating int) error {
	if rating < 1 || rating > 5 {
		return apperror.Validation("rating must be between 1 and 5")
	}

	return s.repo.ExecTx(ctx, func(txr *repository.Repository) error {
		sess, err := txr.GetSession(ctx, sessionID)
		if err != nil {
			return err
		}
		if sess.CandidateID != candidateID {
			return apperror.Forbidden("session belongs to another candidate")
		}
		if sess.InterviewerID == nil {
			return apperror.Validation("practice sessions cannot be rated")
		}

		ok, err := txr.RateSessionIf(ctx, sessionID, rating)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.Conflict("session is not completed or already rated")
		}
		return txr.ApplyRating(ctx, *sess.InterviewerID, rating)
	})
}

// CreateJoinToken issues the short-lived signed token the external media
// system consumes. Valid only for the session's participants, only while
// the meeting exists, and only inside the status-dependent join window.
func (s *Service) CreateJoinToken(ctx context.Context, userID uuid.UUID, role model.UserRole, sessionID uuid.UUID) (*model.JoinTokenResponse, error) {
	sess, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	switch role {
	case model.UserRoleCandidate:
		if sess.CandidateID != userID {
			return nil, apperror.Forbidden("not a participant of this session")
		}
	case model.UserRoleInterviewer:
		if sess.InterviewerID == nil || *sess.InterviewerID != userID {
			return nil, apperror.Forbidden("not a participant of this session")
		}
	default:
		return nil, apperror.Forbidden("role cannot join sessions")
	}

	if sess.Status != model.SessionStatusScheduled && sess.Status != model.SessionStatusInProgress {
		return nil, apperror.Conflict("session is not joinable")
	}
	if !sess.MeetingCreated || sess.MeetingID == nil || sess.ScheduledAt == nil {
		return nil, apperror.Conflict("meeting is not ready")
	}

	after := startWindowAfter
	if sess.Status == model.SessionStatusInProgress {
		after = joinWindowLive
	}
	now := s.now()
	if now.Before(sess.ScheduledAt.Add(-startWindowBefore)) || now.After(sess.ScheduledAt.Add(after)) {
		return nil, apperror.Conflict("outside the join window")
	}

	token, expiresAt, err := s.joinTokens.CreateToken(*sess.MeetingID, userID, role)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &model.JoinTokenResponse{
		Token:     token,
		MeetingID: *sess.MeetingID,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}
