package lifecycle

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/arjunmehta12/mockmate/internal/metrics"
	"github.com/arjunmehta12/mockmate/internal/repository"
	"github.com/arjunmehta12/mockmate/pkg/apperror"
	"github.com/arjunmehta12/mockmate/pkg/model"
	"github.com/google/uuid"
)

// Slot-backed sessions run against a live interviewer, which maps to the
// simulation difficulty level.
const bookedLevel = model.LevelSimulation

// checkBookableSlot applies the shared slot validations of every booking
// flow. The final authority on availability is still the conditional
// reservation at the end of the transaction.
func (s *Service) checkBookableSlot(slot *model.AvailabilitySlot, candidateID uuid.UUID) error {
	if slot.Status != model.SlotStatusAvailable {
		return apperror.Conflict("slot is not available")
	}
	if !slot.StartTime.After(s.now()) {
		return apperror.Conflict("slot is not available")
	}
	if slot.InterviewerID == candidateID {
		return apperror.Validation("cannot book your own slot")
	}
	return nil
}

// createBookedSession builds and inserts the scheduled session for a slot.
func (s *Service) createBookedSession(ctx context.Context, txr *repository.Repository, candidateID uuid.UUID, slot *model.AvailabilitySlot, modelVersion int) (*model.InterviewSession, error) {
	meetingID := uuid.New()
	scheduledAt := slot.StartTime
	sess := &model.InterviewSession{
		SessionID:           uuid.New(),
		CandidateID:         candidateID,
		RoleProfileID:       slot.RoleProfileID,
		InterviewerID:       &slot.InterviewerID,
		SlotID:              &slot.SlotID,
		MeetingID:           &meetingID,
		ScheduledAt:         &scheduledAt,
		Level:               bookedLevel,
		ScoringModelVersion: modelVersion,
		Status:              model.SessionStatusScheduled,
	}
	if err := txr.CreateSession(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// BookSlot is the direct booking flow: session, payment and reservation in
// one transaction, meeting provisioning after commit.
func (s *Service) BookSlot(ctx context.Context, candidateID, slotID uuid.UUID) (*model.InterviewSession, error) {
	var sess *model.InterviewSession

	err := s.repo.ExecTx(ctx, func(txr *repository.Repository) error {
		sm, err := s.activeScoringModel(ctx, txr)
		if err != nil {
			return err
		}
		slot, err := txr.GetSlot(ctx, slotID)
		if err != nil {
			return err
		}
		if err := s.checkBookableSlot(slot, candidateID); err != nil {
			return err
		}

		sess, err = s.createBookedSession(ctx, txr, candidateID, slot, sm.Version)
		if err != nil {
			return err
		}

		payment := &model.PaymentRecord{
			PaymentID:     uuid.New(),
			CandidateID:   candidateID,
			InterviewerID: slot.InterviewerID,
			SlotID:        slot.SlotID,
			SessionID:     &sess.SessionID,
			Amount:        slot.Price,
		}
		if err := txr.CreatePayment(ctx, payment); err != nil {
			return err
		}
		if err := txr.ConfirmPayment(ctx, payment.PaymentID, sess.SessionID); err != nil {
			return err
		}

		// Reservation last: if someone else won the slot meanwhile, the
		// whole transaction, session and payment included, rolls back.
		ok, err := txr.ReserveSlot(ctx, slot.SlotID)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.Conflict("slot is not available")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.SessionsBooked.Inc()
	metrics.PaymentsConfirmed.Inc()
	s.provisionAfterCommit(sess)
	return sess, nil
}

// CreateOrder registers a gateway order for a slot ahead of checkout. No
// session exists yet; the pending payment carries the order id that the
// verify/webhook flow later books against.
func (s *Service) CreateOrder(ctx context.Context, candidateID, slotID uuid.UUID) (*model.CreateOrderResponse, error) {
	slot, err := s.repo.GetSlot(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if err := s.checkBookableSlot(slot, candidateID); err != nil {
		return nil, err
	}

	orderID, err := s.gateway.CreateOrder(ctx, slot.Price, slot.SlotID.String())
	if err != nil {
		return nil, err
	}

	payment := &model.PaymentRecord{
		PaymentID:       uuid.New(),
		CandidateID:     candidateID,
		InterviewerID:   slot.InterviewerID,
		SlotID:          slot.SlotID,
		Amount:          slot.Price,
		ProviderOrderID: &orderID,
	}
	if err := s.repo.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}

	return &model.CreateOrderResponse{
		OrderID: orderID,
		Amount:  slot.Price,
		KeyID:   s.gateway.KeyID(),
	}, nil
}

// settleOrder performs the gateway-mediated booking for a pending payment:
// session creation, conditional payment confirmation and slot reservation in
// one transaction. A false return without error means the payment was not
// pending anymore, i.e. a replay.
func (s *Service) settleOrder(ctx context.Context, txr *repository.Repository, payment *model.PaymentRecord, providerPaymentID string) (*model.InterviewSession, error) {
	sm, err := s.activeScoringModel(ctx, txr)
	if err != nil {
		return nil, err
	}
	slot, err := txr.GetSlot(ctx, payment.SlotID)
	if err != nil {
		return nil, err
	}
	if err := s.checkBookableSlot(slot, payment.CandidateID); err != nil {
		return nil, err
	}

	sess, err := s.createBookedSession(ctx, txr, payment.CandidateID, slot, sm.Version)
	if err != nil {
		return nil, err
	}

	ok, err := txr.ConfirmPaymentIf(ctx, payment.PaymentID, sess.SessionID, providerPaymentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.Conflict("payment already processed")
	}

	ok, err = txr.ReserveSlot(ctx, slot.SlotID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.Conflict("slot is not available")
	}
	return sess, nil
}

// VerifyPayment completes a gateway checkout from the client callback. A
// retried call for an already settled order returns the existing session.
func (s *Service) VerifyPayment(ctx context.Context, candidateID uuid.UUID, req model.VerifyPaymentRequest) (*model.InterviewSession, error) {
	if !s.gateway.VerifyPaymentSignature(req.OrderID, req.PaymentID, req.Signature) {
		return nil, apperror.Validation("invalid payment signature")
	}

	var sess *model.InterviewSession
	settled := false
	err := s.repo.ExecTx(ctx, func(txr *repository.Repository) error {
		payment, err := txr.GetPaymentByOrderID(ctx, req.OrderID)
		if err != nil {
			return err
		}
		if payment.CandidateID != candidateID {
			return apperror.Forbidden("payment belongs to another candidate")
		}
		// Retried verify for a settled order: return the booked session
		// without touching anything.
		if payment.Status == model.PaymentStatusPaid && payment.SessionID != nil {
			sess, err = txr.GetSession(ctx, *payment.SessionID)
			return err
		}
		if payment.Status != model.PaymentStatusPending {
			return apperror.Conflict("payment already processed")
		}

		sess, err = s.settleOrder(ctx, txr, payment, req.PaymentID)
		if err != nil {
			return err
		}
		settled = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if settled {
		metrics.SessionsBooked.Inc()
		metrics.PaymentsConfirmed.Inc()
		s.provisionAfterCommit(sess)
	}
	return sess, nil
}

// HandleWebhook processes the gateway's at-least-once webhook. The raw body
// is signature-checked before decoding; replays and unknown orders are
// successful no-ops.
func (s *Service) HandleWebhook(ctx context.Context, rawBody []byte, signature string) error {
	if !s.gateway.VerifyWebhookSignature(rawBody, signature) {
		return apperror.Validation("invalid webhook signature")
	}

	var event model.WebhookEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		return apperror.Validation("malformed webhook payload")
	}
	if event.Event != "payment.captured" {
		return nil
	}

	var sess *model.InterviewSession
	err := s.repo.ExecTx(ctx, func(txr *repository.Repository) error {
		payment, err := txr.GetPaymentByOrderID(ctx, event.OrderID)
		if err != nil {
			if apperror.KindOf(err) == apperror.KindNotFound {
				// Unknown order: acknowledged so the gateway stops retrying.
				s.log.Sugar().Infow("webhook for unknown order ignored", "order_id", event.OrderID)
				return nil
			}
			return err
		}
		if payment.Status != model.PaymentStatusPending {
			s.log.Sugar().Infow("webhook replay ignored", "order_id", event.OrderID)
			return nil
		}

		sess, err = s.settleOrder(ctx, txr, payment, event.PaymentID)
		return err
	})
	if err != nil {
		return fmt.Errorf("handle webhook: %w", err)
	}

	if sess != nil {
		metrics.SessionsBooked.Inc()
		metrics.PaymentsConfirmed.Inc()
		s.provisionAfterCommit(sess)
	}
	return nil
}
