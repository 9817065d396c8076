package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/arjunmehta12/mockmate/pkg/apperror"
	"github.com/arjunmehta12/mockmate/pkg/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const paymentColumns = `
	payment_id, candidate_id, interviewer_id, slot_id, session_id,
	amount, platform_fee, interviewer_share, status,
	provider_order_id, provider_payment_id, created_at, updated_at`

func scanPayment(row pgx.Row) (*model.PaymentRecord, error) {
	var p model.PaymentRecord
	err := row.Scan(
		&p.PaymentID, &p.CandidateID, &p.InterviewerID, &p.SlotID, &p.SessionID,
		&p.Amount, &p.PlatformFee, &p.InterviewerShare, &p.Status,
		&p.ProviderOrderID, &p.ProviderPaymentID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("payment not found")
		}
		return nil, fmt.Errorf("scan payment: %w", err)
	}
	return &p, nil
}

// CreatePayment inserts a pending payment. The 10/90 split is computed here
// so every record carries its settlement amounts from the start.
func (r *Repository) CreatePayment(ctx context.Context, p *model.PaymentRecord) error {
	p.PlatformFee, p.InterviewerShare = model.SplitAmount(p.Amount)
	if p.Status == "" {
		p.Status = model.PaymentStatusPending
	}
	const q = `
INSERT INTO payment_records (
	payment_id, candidate_id, interviewer_id, slot_id, session_id,
	amount, platform_fee, interviewer_share, status,
	provider_order_id, provider_payment_id
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.Exec(ctx, q,
		p.PaymentID, p.CandidateID, p.InterviewerID, p.SlotID, p.SessionID,
		p.Amount, p.PlatformFee, p.InterviewerShare, p.Status,
		p.ProviderOrderID, p.ProviderPaymentID,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// ConfirmPayment moves a payment to paid unconditionally. Only the direct
// booking flow uses this, inside the same transaction that creates the
// session and reserves the slot.
func (r *Repository) ConfirmPayment(ctx context.Context, paymentID uuid.UUID, sessionID uuid.UUID) error {
	const q = `
UPDATE payment_records SET status = 'paid', session_id = $2, updated_at = now()
WHERE payment_id = $1`
	tag, err := r.db.Exec(ctx, q, paymentID, sessionID)
	if err != nil {
		return fmt.Errorf("confirm payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("payment not found")
	}
	return nil
}

// ConfirmPaymentIf is the conditional confirmation used by the gateway
// verify/webhook path: pending -> paid, recording the session and provider
// payment id. False without error means the payment was not pending, which
// callers treat as an idempotent replay.
func (r *Repository) ConfirmPaymentIf(ctx context.Context, paymentID, sessionID uuid.UUID, providerPaymentID string) (bool, error) {
	const q = `
UPDATE payment_records
SET status = 'paid', session_id = $2, provider_payment_id = $3, updated_at = now()
WHERE payment_id = $1 AND status = 'pending'`
	tag, err := r.db.Exec(ctx, q, paymentID, sessionID, providerPaymentID)
	if err != nil {
		return false, fmt.Errorf("confirm payment: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *Repository) GetPaymentByOrderID(ctx context.Context, orderID string) (*model.PaymentRecord, error) {
	q := `SELECT` + paymentColumns + ` FROM payment_records WHERE provider_order_id = $1`
	return scanPayment(r.db.QueryRow(ctx, q, orderID))
}

func (r *Repository) GetPaymentBySessionID(ctx context.Context, sessionID uuid.UUID) (*model.PaymentRecord, error) {
	q := `SELECT` + paymentColumns + ` FROM payment_records WHERE session_id = $1`
	return scanPayment(r.db.QueryRow(ctx, q, sessionID))
}
