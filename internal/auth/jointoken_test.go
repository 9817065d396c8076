package auth

import (
	"testing"
	"time"

	"github.com/arjunmehta12/mockmate/pkg/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestJoinToken_RoundTrip(t *testing.T) {
	maker := NewJoinTokenMaker(testSecret, 5*time.Minute)
	meetingID, userID := uuid.New(), uuid.New()

	token, expiresAt, err := maker.CreateToken(meetingID, userID, model.UserRoleCandidate)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), expiresAt, 2*time.Second)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, meetingID, claims.MeetingID)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, model.UserRoleCandidate, claims.Role)
}

func TestJoinToken_Expired(t *testing.T) {
	maker := NewJoinTokenMaker(testSecret, -time.Minute)
	token, _, err := maker.CreateToken(uuid.New(), uuid.New(), model.UserRoleInterviewer)
	require.NoError(t, err)

	_, err = maker.ParseToken(token)
	assert.Error(t, err)
}

func TestJoinToken_WrongSecret(t *testing.T) {
	maker := NewJoinTokenMaker(testSecret, 5*time.Minute)
	token, _, err := maker.CreateToken(uuid.New(), uuid.New(), model.UserRoleCandidate)
	require.NoError(t, err)

	other := NewJoinTokenMaker("ffffffffffffffffffffffffffffffff", 5*time.Minute)
	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestUserToken_RoundTrip(t *testing.T) {
	maker := NewJWTMaker(testSecret, 15*time.Minute)
	user := &model.User{UserID: uuid.New(), Email: "a@b.test", Role: model.UserRoleInterviewer}

	token, claims, err := maker.CreateToken(user)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, claims.UserID)

	parsed, err := maker.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, parsed.UserID)
	assert.Equal(t, model.UserRoleInterviewer, parsed.Role)
}
