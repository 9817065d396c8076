package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateProgress_FirstSession(t *testing.T) {
	repo, mock := newMockRepo(t)
	candidateID, roleProfileID := uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT total_sessions, latest_score, average_score`).
		WithArgs(candidateID, roleProfileID).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectExec(`INSERT INTO candidate_progress`).
		WithArgs(candidateID, roleProfileID, 1, 60.0, 0.0, 60.0, 60.0).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	p, err := repo.UpdateProgress(context.Background(), candidateID, roleProfileID, 60)
	require.NoError(t, err)
	assert.Equal(t, 1, p.TotalSessions)
	assert.Equal(t, 60.0, p.LatestScore)
	assert.Equal(t, 0.0, p.PreviousScore)
	assert.Equal(t, 60.0, p.AverageScore)
	assert.Equal(t, 60.0, p.ImprovementDelta)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Third session of the spec sequence [60, 80, 70]: the stored state is
// n=2, latest=80, average=70; submitting 70 keeps average at 70.00 and
// yields delta -10.00.
func TestUpdateProgress_IncrementalAverage(t *testing.T) {
	repo, mock := newMockRepo(t)
	candidateID, roleProfileID := uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT total_sessions, latest_score, average_score`).
		WithArgs(candidateID, roleProfileID).
		WillReturnRows(pgxmock.NewRows([]string{"total_sessions", "latest_score", "average_score"}).
			AddRow(2, 80.0, 70.0))
	mock.ExpectExec(`UPDATE candidate_progress`).
		WithArgs(candidateID, roleProfileID, 3, 70.0, 80.0, 70.0, -10.0).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	p, err := repo.UpdateProgress(context.Background(), candidateID, roleProfileID, 70)
	require.NoError(t, err)
	assert.Equal(t, 3, p.TotalSessions)
	assert.Equal(t, 70.0, p.LatestScore)
	assert.Equal(t, 80.0, p.PreviousScore)
	assert.Equal(t, -10.0, p.ImprovementDelta)
	assert.Equal(t, 70.0, p.AverageScore)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProgress_AverageRounding(t *testing.T) {
	repo, mock := newMockRepo(t)
	candidateID, roleProfileID := uuid.New(), uuid.New()

	// avg 66.67 over 2 sessions, new score 71: (66.67*2+71)/3 = 68.113...
	mock.ExpectQuery(`SELECT total_sessions, latest_score, average_score`).
		WithArgs(candidateID, roleProfileID).
		WillReturnRows(pgxmock.NewRows([]string{"total_sessions", "latest_score", "average_score"}).
			AddRow(2, 71.0, 66.67))
	mock.ExpectExec(`UPDATE candidate_progress`).
		WithArgs(candidateID, roleProfileID, 3, 71.0, 71.0, 68.11, 0.0).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	p, err := repo.UpdateProgress(context.Background(), candidateID, roleProfileID, 71)
	require.NoError(t, err)
	assert.Equal(t, 68.11, p.AverageScore)
}
