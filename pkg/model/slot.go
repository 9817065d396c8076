package model

import (
	"time"

	"github.com/google/uuid"
)

type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusReserved  SlotStatus = "reserved"
	SlotStatusCompleted SlotStatus = "completed"
	SlotStatusCancelled SlotStatus = "cancelled"
)

// SlotDuration is fixed: every slot ends exactly 30 minutes after it starts.
const SlotDuration = 30 * time.Minute

type AvailabilitySlot struct {
	SlotID        uuid.UUID  `json:"slot_id" db:"slot_id"`
	InterviewerID uuid.UUID  `json:"interviewer_id" db:"interviewer_id"`
	RoleProfileID uuid.UUID  `json:"role_profile_id" db:"role_profile_id"`
	StartTime     time.Time  `json:"start_time" db:"start_time"`
	EndTime       time.Time  `json:"end_time" db:"end_time"`
	Status        SlotStatus `json:"status" db:"status"`
	Price         int64      `json:"price" db:"price"` // minor units
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

type CreateSlotRequest struct {
	RoleProfileID uuid.UUID `json:"role_profile_id" binding:"required"`
	StartTime     time.Time `json:"start_time" binding:"required"`
	Price         int64     `json:"price" binding:"required,gt=0"`
}

type ListSlotsQuery struct {
	RoleProfileID *uuid.UUID `json:"role_profile_id" form:"role_profile_id"`
	Page          int        `json:"page" form:"page,default=1"`
	PageSize      int        `json:"page_size" form:"page_size,default=20"`
}
