package handler

import (
	"github.com/arjunmehta12/mockmate/pkg/model"
	"github.com/arjunmehta12/mockmate/pkg/response"
	"github.com/gin-gonic/gin"
)

// CreateSlot publishes an availability slot for the authenticated
// interviewer.
func (h *Handler) CreateSlot(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	var req model.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	slot, err := h.Lifecycle.CreateSlot(c.Request.Context(), claims.UserID, req)
	if err != nil {
		h.Logger.Sugar().Warnw("create slot failed", "interviewer_id", claims.UserID, "err", err)
		response.Error(c, err)
		return
	}
	response.Created(c, slot)
}

// ListOpenSlots returns upcoming bookable slots, optionally filtered by role
// profile, paginated.
func (h *Handler) ListOpenSlots(c *gin.Context) {
	var q model.ListSlotsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 20
	}

	offset := (q.Page - 1) * q.PageSize
	slots, total, err := h.Repo.ListOpenSlots(c.Request.Context(), q.RoleProfileID, q.PageSize, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OKWithMeta(c, slots, &response.Meta{
		Page:     q.Page,
		PageSize: q.PageSize,
		Total:    total,
		HasNext:  offset+len(slots) < total,
	})
}

// BookSlot is the direct booking flow for a candidate.
func (h *Handler) BookSlot(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	var req model.BookSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	sess, err := h.Lifecycle.BookSlot(c.Request.Context(), claims.UserID, req.SlotID)
	if err != nil {
		h.Logger.Sugar().Warnw("book slot failed", "slot_id", req.SlotID, "err", err)
		response.Error(c, err)
		return
	}
	response.Created(c, sess)
}
