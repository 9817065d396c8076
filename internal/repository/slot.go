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

const slotColumns = `
	slot_id, interviewer_id, role_profile_id, start_time, end_time,
	status, price, created_at, updated_at`

func scanSlot(row pgx.Row) (*model.AvailabilitySlot, error) {
	var s model.AvailabilitySlot
	err := row.Scan(
		&s.SlotID, &s.InterviewerID, &s.RoleProfileID, &s.StartTime, &s.EndTime,
		&s.Status, &s.Price, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("slot not found")
		}
		return nil, fmt.Errorf("scan slot: %w", err)
	}
	return &s, nil
}

// CreateSlot inserts an availability slot after checking the overlap
// invariant: no two non-cancelled slots of one interviewer may intersect.
// The check and insert run on the caller's transaction when reached through
// ExecTx.
func (r *Repository) CreateSlot(ctx context.Context, slot *model.AvailabilitySlot) error {
	const overlapQ = `
SELECT EXISTS (
	SELECT 1 FROM availability_slots
	WHERE interviewer_id = $1 AND status <> 'cancelled'
	  AND start_time < $3 AND end_time > $2
)`
	var overlaps bool
	if err := r.db.QueryRow(ctx, overlapQ, slot.InterviewerID, slot.StartTime, slot.EndTime).Scan(&overlaps); err != nil {
		return fmt.Errorf("check slot overlap: %w", err)
	}
	if overlaps {
		return apperror.Conflict("an overlapping slot already exists")
	}

	const q = `
INSERT INTO availability_slots (
	slot_id, interviewer_id, role_profile_id, start_time, end_time, status, price
) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(ctx, q,
		slot.SlotID, slot.InterviewerID, slot.RoleProfileID,
		slot.StartTime, slot.EndTime, slot.Status, slot.Price,
	)
	if err != nil {
		return fmt.Errorf("insert slot: %w", err)
	}
	return nil
}

func (r *Repository) GetSlot(ctx context.Context, slotID uuid.UUID) (*model.AvailabilitySlot, error) {
	q := `SELECT` + slotColumns + ` FROM availability_slots WHERE slot_id = $1`
	return scanSlot(r.db.QueryRow(ctx, q, slotID))
}

// UpdateSlotStatusIf is the compare-and-swap primitive for slot transitions.
// It reports false, without error, when the precondition does not hold; the
// caller decides whether that is a conflict.
func (r *Repository) UpdateSlotStatusIf(ctx context.Context, slotID uuid.UUID, expected, next model.SlotStatus) (bool, error) {
	const q = `
UPDATE availability_slots SET status = $3, updated_at = now()
WHERE slot_id = $1 AND status = $2`
	tag, err := r.db.Exec(ctx, q, slotID, expected, next)
	if err != nil {
		return false, fmt.Errorf("update slot status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ReserveSlot transitions available -> reserved. False means somebody else
// got the slot first.
func (r *Repository) ReserveSlot(ctx context.Context, slotID uuid.UUID) (bool, error) {
	return r.UpdateSlotStatusIf(ctx, slotID, model.SlotStatusAvailable, model.SlotStatusReserved)
}

// ReleaseSlot reverts reserved -> available, used when a session moves to
// another slot.
func (r *Repository) ReleaseSlot(ctx context.Context, slotID uuid.UUID) (bool, error) {
	return r.UpdateSlotStatusIf(ctx, slotID, model.SlotStatusReserved, model.SlotStatusAvailable)
}

func (r *Repository) ListOpenSlots(ctx context.Context, roleProfileID *uuid.UUID, limit, offset int) ([]model.AvailabilitySlot, int, error) {
	countQ := `SELECT COUNT(1) FROM availability_slots WHERE status = 'available' AND start_time > now()`
	q := `SELECT` + slotColumns + ` FROM availability_slots WHERE status = 'available' AND start_time > now()`
	args := []interface{}{}
	if roleProfileID != nil {
		countQ += ` AND role_profile_id = $1`
		q += ` AND role_profile_id = $1`
		args = append(args, *roleProfileID)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count slots: %w", err)
	}

	q += fmt.Sprintf(" ORDER BY start_time ASC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query slots: %w", err)
	}
	defer rows.Close()

	out := make([]model.AvailabilitySlot, 0, limit)
	for rows.Next() {
		var s model.AvailabilitySlot
		if err := rows.Scan(
			&s.SlotID, &s.InterviewerID, &s.RoleProfileID, &s.StartTime, &s.EndTime,
			&s.Status, &s.Price, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan slot row: %w", err)
		}
		out = append(out, s)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, total, nil
}
