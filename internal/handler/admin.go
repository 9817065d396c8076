package handler

import (
	"github.com/arjunmehta12/mockmate/pkg/model"
	"github.com/arjunmehta12/mockmate/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateRoleProfile defines a new weighted role profile.
func (h *Handler) CreateRoleProfile(c *gin.Context) {
	var req model.CreateRoleProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	rp := &model.RoleProfile{
		RoleProfileID:      uuid.New(),
		Name:               req.Name,
		Sections:           req.Sections,
		ReadinessThreshold: req.ReadinessThreshold,
		ConfidenceBuffer:   req.ConfidenceBuffer,
	}
	if err := h.Repo.CreateRoleProfile(c.Request.Context(), rp); err != nil {
		h.Logger.Sugar().Warnw("create role profile failed", "name", req.Name, "err", err)
		response.Error(c, err)
		return
	}
	response.Created(c, rp)
}

// GetRoleProfile returns one role profile by id. Open to all authenticated
// users so candidates can inspect section weights before booking.
func (h *Handler) GetRoleProfile(c *gin.Context) {
	id, ok := uuidParam(c, "role_profile_id")
	if !ok {
		return
	}

	rp, err := h.Repo.GetRoleProfile(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rp)
}

// CreateScoringModel activates a new scoring model version. Existing
// sessions keep scoring against the version they snapshotted.
func (h *Handler) CreateScoringModel(c *gin.Context) {
	var req model.CreateScoringModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	sm, err := h.Repo.CreateScoringModel(ctx, req.Multipliers)
	if err != nil {
		h.Logger.Sugar().Warnw("create scoring model failed", "err", err)
		response.Error(c, err)
		return
	}
	h.Cache.InvalidateActiveModel(ctx)

	response.Created(c, sm)
}

// VerifyInterviewer marks an interviewer as allowed to publish slots.
func (h *Handler) VerifyInterviewer(c *gin.Context) {
	userID, ok := uuidParam(c, "user_id")
	if !ok {
		return
	}

	if err := h.Repo.VerifyInterviewer(c.Request.Context(), userID); err != nil {
		h.Logger.Sugar().Warnw("verify interviewer failed", "user_id", userID, "err", err)
		response.Error(c, err)
		return
	}
	response.Message(c, "interviewer verified")
}

// AdminCounts returns a small operational summary.
func (h *Handler) AdminCounts(c *gin.Context) {
	counts, err := h.Repo.AdminCounts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, counts)
}
