package repository

import (
	"context"
	"testing"
	"time"

	"github.com/arjunmehta12/mockmate/pkg/apperror"
	"github.com/arjunmehta12/mockmate/pkg/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewRepository(mock), mock
}

func TestReserveSlot(t *testing.T) {
	ctx := context.Background()
	slotID := uuid.New()

	t.Run("available slot is reserved", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(`UPDATE availability_slots SET status`).
			WithArgs(slotID, model.SlotStatusAvailable, model.SlotStatusReserved).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		ok, err := repo.ReserveSlot(ctx, slotID)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already reserved slot reports false", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(`UPDATE availability_slots SET status`).
			WithArgs(slotID, model.SlotStatusAvailable, model.SlotStatusReserved).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		ok, err := repo.ReserveSlot(ctx, slotID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestReleaseSlot(t *testing.T) {
	repo, mock := newMockRepo(t)
	slotID := uuid.New()
	mock.ExpectExec(`UPDATE availability_slots SET status`).
		WithArgs(slotID, model.SlotStatusReserved, model.SlotStatusAvailable).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	ok, err := repo.ReleaseSlot(context.Background(), slotID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreateSlot_OverlapRejected(t *testing.T) {
	repo, mock := newMockRepo(t)
	start := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
	slot := &model.AvailabilitySlot{
		SlotID:        uuid.New(),
		InterviewerID: uuid.New(),
		RoleProfileID: uuid.New(),
		StartTime:     start,
		EndTime:       start.Add(model.SlotDuration),
		Status:        model.SlotStatusAvailable,
		Price:         49900,
	}

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(slot.InterviewerID, slot.StartTime, slot.EndTime).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	err := repo.CreateSlot(context.Background(), slot)
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSlot_Inserts(t *testing.T) {
	repo, mock := newMockRepo(t)
	start := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
	slot := &model.AvailabilitySlot{
		SlotID:        uuid.New(),
		InterviewerID: uuid.New(),
		RoleProfileID: uuid.New(),
		StartTime:     start,
		EndTime:       start.Add(model.SlotDuration),
		Status:        model.SlotStatusAvailable,
		Price:         49900,
	}

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(slot.InterviewerID, slot.StartTime, slot.EndTime).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO availability_slots`).
		WithArgs(slot.SlotID, slot.InterviewerID, slot.RoleProfileID,
			slot.StartTime, slot.EndTime, slot.Status, slot.Price).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.CreateSlot(context.Background(), slot))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSlot_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	slotID := uuid.New()
	mock.ExpectQuery(`SELECT`).
		WithArgs(slotID).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetSlot(context.Background(), slotID)
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
