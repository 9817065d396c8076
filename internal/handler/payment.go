package handler

import (
	"io"

	"github.com/arjunmehta12/mockmate/pkg/model"
	"github.com/arjunmehta12/mockmate/pkg/response"
	"github.com/gin-gonic/gin"
)

const webhookSignatureHeader = "X-Pay-Signature"

// CreateOrder registers a gateway order for a slot ahead of checkout.
func (h *Handler) CreateOrder(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	var req model.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	order, err := h.Lifecycle.CreateOrder(c.Request.Context(), claims.UserID, req.SlotID)
	if err != nil {
		h.Logger.Sugar().Warnw("create order failed", "slot_id", req.SlotID, "err", err)
		response.Error(c, err)
		return
	}
	response.Created(c, order)
}

// VerifyPayment completes a gateway checkout from the client callback.
func (h *Handler) VerifyPayment(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	var req model.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	sess, err := h.Lifecycle.VerifyPayment(c.Request.Context(), claims.UserID, req)
	if err != nil {
		h.Logger.Sugar().Warnw("verify payment failed", "order_id", req.OrderID, "err", err)
		response.Error(c, err)
		return
	}
	response.OK(c, sess)
}

// HandleWebhook receives the gateway's server-to-server notification. The
// body must stay raw until the signature is checked, so this reads it
// directly instead of binding.
func (h *Handler) HandleWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.BadRequest(c, "could not read body")
		return
	}

	signature := c.GetHeader(webhookSignatureHeader)
	if err := h.Lifecycle.HandleWebhook(c.Request.Context(), body, signature); err != nil {
		h.Logger.Sugar().Warnw("webhook rejected", "err", err)
		response.Error(c, err)
		return
	}
	response.Message(c, "ok")
}
