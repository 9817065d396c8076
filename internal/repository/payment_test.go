package repository

import (
	"context"
	"testing"

	"github.com/arjunmehta12/mockmate/pkg/model"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitAmount(t *testing.T) {
	tests := []struct {
		amount int64
		fee    int64
		share  int64
	}{
		{100000, 10000, 90000},
		{49900, 4990, 44910},
		{99, 9, 90}, // truncated fee, share absorbs the remainder
		{0, 0, 0},
	}
	for _, tt := range tests {
		fee, share := model.SplitAmount(tt.amount)
		assert.Equal(t, tt.fee, fee)
		assert.Equal(t, tt.share, share)
		assert.Equal(t, tt.amount, fee+share)
	}
}

func TestCreatePayment_ComputesSplit(t *testing.T) {
	repo, mock := newMockRepo(t)
	p := &model.PaymentRecord{
		PaymentID:     uuid.New(),
		CandidateID:   uuid.New(),
		InterviewerID: uuid.New(),
		SlotID:        uuid.New(),
		Amount:        50000,
	}

	mock.ExpectExec(`INSERT INTO payment_records`).
		WithArgs(p.PaymentID, p.CandidateID, p.InterviewerID, p.SlotID, pgxmock.AnyArg(),
			int64(50000), int64(5000), int64(45000), model.PaymentStatusPending,
			pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.CreatePayment(context.Background(), p))
	assert.Equal(t, int64(5000), p.PlatformFee)
	assert.Equal(t, int64(45000), p.InterviewerShare)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmPaymentIf_Idempotent(t *testing.T) {
	ctx := context.Background()
	paymentID, sessionID := uuid.New(), uuid.New()

	t.Run("pending payment is confirmed", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(`UPDATE payment_records`).
			WithArgs(paymentID, sessionID, "pay_123").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		ok, err := repo.ConfirmPaymentIf(ctx, paymentID, sessionID, "pay_123")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("already paid is a no-op", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(`UPDATE payment_records`).
			WithArgs(paymentID, sessionID, "pay_123").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		ok, err := repo.ConfirmPaymentIf(ctx, paymentID, sessionID, "pay_123")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
