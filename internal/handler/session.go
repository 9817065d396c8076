package handler

import (
	"github.com/arjunmehta12/mockmate/pkg/apperror"
	"github.com/arjunmehta12/mockmate/pkg/model"
	"github.com/arjunmehta12/mockmate/pkg/response"
	"github.com/gin-gonic/gin"
)

// StartPractice creates a self-serve session that is immediately in progress.
func (h *Handler) StartPractice(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	var req model.StartPracticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	sess, err := h.Lifecycle.StartPractice(c.Request.Context(), claims.UserID, req)
	if err != nil {
		h.Logger.Sugar().Warnw("start practice failed", "candidate_id", claims.UserID, "err", err)
		response.Error(c, err)
		return
	}
	response.Created(c, sess)
}

// CompleteInterview scores a self-serve session from the candidate's own
// raw section scores.
func (h *Handler) CompleteInterview(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	sessionID, ok := uuidParam(c, "session_id")
	if !ok {
		return
	}
	var req model.SubmitScoresRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.Lifecycle.CompleteInterview(c.Request.Context(), claims.UserID, sessionID, req.SectionScores)
	if err != nil {
		h.Logger.Sugar().Warnw("complete interview failed", "session_id", sessionID, "err", err)
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// SubmitScores scores a slot-backed session on behalf of its interviewer.
func (h *Handler) SubmitScores(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	sessionID, ok := uuidParam(c, "session_id")
	if !ok {
		return
	}
	var req model.SubmitScoresRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.Lifecycle.SubmitScores(c.Request.Context(), claims.UserID, sessionID, req.SectionScores)
	if err != nil {
		h.Logger.Sugar().Warnw("submit scores failed", "session_id", sessionID, "err", err)
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// GetSession returns a session visible to its candidate or interviewer.
func (h *Handler) GetSession(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	sessionID, ok := uuidParam(c, "session_id")
	if !ok {
		return
	}

	sess, err := h.Repo.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	participant := sess.CandidateID == claims.UserID ||
		(sess.InterviewerID != nil && *sess.InterviewerID == claims.UserID)
	if !participant && claims.Role != model.UserRoleAdmin {
		response.Error(c, apperror.Forbidden("not a participant of this session"))
		return
	}
	response.OK(c, sess)
}

// StartSession flips a scheduled slot-backed session to in progress.
func (h *Handler) StartSession(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	sessionID, ok := uuidParam(c, "session_id")
	if !ok {
		return
	}

	sess, err := h.Lifecycle.StartSession(c.Request.Context(), claims.UserID, sessionID)
	if err != nil {
		h.Logger.Sugar().Warnw("start session failed", "session_id", sessionID, "err", err)
		response.Error(c, err)
		return
	}
	response.OK(c, sess)
}

// RescheduleSession moves a scheduled session to a new slot.
func (h *Handler) RescheduleSession(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	sessionID, ok := uuidParam(c, "session_id")
	if !ok {
		return
	}
	var req model.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	sess, err := h.Lifecycle.RescheduleSession(c.Request.Context(), claims.UserID, sessionID, req.NewSlotID)
	if err != nil {
		h.Logger.Sugar().Warnw("reschedule failed", "session_id", sessionID, "err", err)
		response.Error(c, err)
		return
	}
	response.OK(c, sess)
}

// RateSession records the candidate's rating for a completed session.
func (h *Handler) RateSession(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	sessionID, ok := uuidParam(c, "session_id")
	if !ok {
		return
	}
	var req model.RateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.Lifecycle.RateSession(c.Request.Context(), claims.UserID, sessionID, req.Rating); err != nil {
		h.Logger.Sugar().Warnw("rate session failed", "session_id", sessionID, "err", err)
		response.Error(c, err)
		return
	}
	response.Message(c, "rating recorded")
}

// CreateJoinToken issues the meeting join token for a session participant.
func (h *Handler) CreateJoinToken(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	sessionID, ok := uuidParam(c, "session_id")
	if !ok {
		return
	}

	token, err := h.Lifecycle.CreateJoinToken(c.Request.Context(), claims.UserID, claims.Role, sessionID)
	if err != nil {
		h.Logger.Sugar().Warnw("join token denied", "session_id", sessionID, "err", err)
		response.Error(c, err)
		return
	}
	response.OK(c, token)
}

// GetProgress returns the candidate's readiness trajectory for one role
// profile.
func (h *Handler) GetProgress(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	roleProfileID, ok := uuidParam(c, "role_profile_id")
	if !ok {
		return
	}

	progress, err := h.Repo.GetProgress(c.Request.Context(), claims.UserID, roleProfileID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, progress)
}
