package meeting

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arjunmehta12/mockmate/internal/repository"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestProvisioner(t *testing.T, handler http.HandlerFunc) (*Provisioner, pgxmock.PgxPoolIface) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	repo := repository.NewRepository(mock)
	return NewProvisioner(srv.URL, "shared-secret", 5*time.Second, repo, zap.NewNop()), mock
}

func TestProvision_Success(t *testing.T) {
	var gotSecret string
	p, mock := newTestProvisioner(t, func(w http.ResponseWriter, r *http.Request) {
		gotSecret = r.Header.Get("X-Meeting-Secret")
		assert.Equal(t, "/internal/meetings", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
	})

	sessionID := uuid.New()
	mock.ExpectExec(`UPDATE interview_sessions`).
		WithArgs(sessionID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := p.Provision(context.Background(), sessionID, uuid.New(), time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "shared-secret", gotSecret)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A 409 from the provider means the meeting already exists, so a retry after
// a lost response still converges on created=true.
func TestProvision_ConflictIsSuccess(t *testing.T) {
	p, mock := newTestProvisioner(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})

	sessionID := uuid.New()
	mock.ExpectExec(`UPDATE interview_sessions`).
		WithArgs(sessionID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := p.Provision(context.Background(), sessionID, uuid.New(), time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProvision_FailureCountsAttempt(t *testing.T) {
	p, mock := newTestProvisioner(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	sessionID := uuid.New()
	mock.ExpectExec(`UPDATE interview_sessions`).
		WithArgs(sessionID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := p.Provision(context.Background(), sessionID, uuid.New(), time.Now().Add(time.Hour))
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProvision_TimeoutCountsAttempt(t *testing.T) {
	p, mock := newTestProvisioner(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	})
	p.httpClient.Timeout = 50 * time.Millisecond

	sessionID := uuid.New()
	mock.ExpectExec(`UPDATE interview_sessions`).
		WithArgs(sessionID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := p.Provision(context.Background(), sessionID, uuid.New(), time.Now().Add(time.Hour))
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBackoff_Capped(t *testing.T) {
	assert.Equal(t, 200*time.Millisecond, backoff(0))
	assert.Equal(t, 400*time.Millisecond, backoff(1))
	assert.Equal(t, 1600*time.Millisecond, backoff(3))
	assert.Equal(t, 2*time.Second, backoff(4))
	assert.Equal(t, 2*time.Second, backoff(10))
}

func TestRetryPending_SweepsBatch(t *testing.T) {
	calls := 0
	p, mock := newTestProvisioner(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	})

	sessionID, meetingID := uuid.New(), uuid.New()
	scheduledAt := time.Now().Add(time.Hour)
	now := time.Now()

	rows := pgxmock.NewRows([]string{
		"session_id", "candidate_id", "role_profile_id", "interviewer_id", "slot_id",
		"meeting_id", "scheduled_at", "level", "scoring_model_version", "status",
		"overall_score", "readiness_status", "readiness_gap", "reschedule_count",
		"meeting_created", "meeting_attempts", "rating", "created_at", "updated_at", "completed_at",
	}).AddRow(
		sessionID, uuid.New(), uuid.New(), nil, nil,
		&meetingID, &scheduledAt, "confidence", 1, "scheduled",
		nil, nil, nil, 0,
		false, 0, nil, now, now, nil,
	)
	mock.ExpectQuery(`SELECT`).WithArgs(MaxAttempts, 25).WillReturnRows(rows)
	mock.ExpectExec(`UPDATE interview_sessions`).
		WithArgs(sessionID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	p.RetryPending(context.Background())
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}
