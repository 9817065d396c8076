package auth

import (
	"fmt"
	"time"

	"github.com/arjunmehta12/mockmate/pkg/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JoinClaims is the short-lived token handed to the external signaling and
// media system. The core never validates it after issuance.
type JoinClaims struct {
	MeetingID uuid.UUID      `json:"meeting_id"`
	UserID    uuid.UUID      `json:"user_id"`
	Role      model.UserRole `json:"role"`
	jwt.RegisteredClaims
}

type JoinTokenMaker struct {
	secret []byte
	ttl    time.Duration
}

func NewJoinTokenMaker(secret string, ttl time.Duration) *JoinTokenMaker {
	return &JoinTokenMaker{secret: []byte(secret), ttl: ttl}
}

// CreateToken signs a join token scoped to one meeting, user and role.
// Returns the token and its expiry.
func (m *JoinTokenMaker) CreateToken(meetingID, userID uuid.UUID, role model.UserRole) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(m.ttl)
	claims := &JoinClaims{
		MeetingID: meetingID,
		UserID:    userID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign join token: %w", err)
	}
	return signed, expiresAt, nil
}

// ParseToken exists for tests and tooling; production consumers of join
// tokens sit outside this service.
func (m *JoinTokenMaker) ParseToken(tokenStr string) (*JoinClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &JoinClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*JoinClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrTokenUnverifiable
}
