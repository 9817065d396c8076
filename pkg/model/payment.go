package model

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// PlatformFeePercent of every payment is retained by the platform; the rest
// is the interviewer's share.
const PlatformFeePercent = 10

type PaymentRecord struct {
	PaymentID         uuid.UUID     `json:"payment_id" db:"payment_id"`
	CandidateID       uuid.UUID     `json:"candidate_id" db:"candidate_id"`
	InterviewerID     uuid.UUID     `json:"interviewer_id" db:"interviewer_id"`
	SlotID            uuid.UUID     `json:"slot_id" db:"slot_id"`
	SessionID         *uuid.UUID    `json:"session_id" db:"session_id"`
	Amount            int64         `json:"amount" db:"amount"` // minor units
	PlatformFee       int64         `json:"platform_fee" db:"platform_fee"`
	InterviewerShare  int64         `json:"interviewer_share" db:"interviewer_share"`
	Status            PaymentStatus `json:"status" db:"status"`
	ProviderOrderID   *string       `json:"provider_order_id" db:"provider_order_id"`
	ProviderPaymentID *string       `json:"provider_payment_id" db:"provider_payment_id"`
	CreatedAt         time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at" db:"updated_at"`
}

// SplitAmount divides a payment into the platform fee and the interviewer
// share. The fee is truncated so the interviewer share absorbs the remainder.
func SplitAmount(amount int64) (platformFee, interviewerShare int64) {
	platformFee = amount * PlatformFeePercent / 100
	return platformFee, amount - platformFee
}

type CreateOrderRequest struct {
	SlotID uuid.UUID `json:"slot_id" binding:"required"`
}

type CreateOrderResponse struct {
	OrderID string `json:"order_id"`
	Amount  int64  `json:"amount"`
	KeyID   string `json:"key_id"`
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"order_id" binding:"required"`
	PaymentID string `json:"payment_id" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

// WebhookEvent is the gateway's at-least-once delivery payload. The raw body
// must be signature-checked before this is decoded.
type WebhookEvent struct {
	Event     string `json:"event"`
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
}
