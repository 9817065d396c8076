package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"conflict", Conflict("slot is not available"), KindConflict},
		{"wrapped conflict", fmt.Errorf("book slot: %w", Conflict("slot is not available")), KindConflict},
		{"not found", NotFound("session not found"), KindNotFound},
		{"plain error", errors.New("boom"), KindInternal},
		{"upstream with cause", Upstream("gateway order failed", errors.New("timeout")), KindUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestMessageOf_NeverLeaksInternals(t *testing.T) {
	assert.Equal(t, "internal server error", MessageOf(errors.New("pq: connection refused")))
	assert.Equal(t, "internal server error", MessageOf(Internal(errors.New("pq: connection refused"))))
	assert.Equal(t, "daily interview limit reached", MessageOf(RateLimited("daily interview limit reached")))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusConflict, HTTPStatus(KindConflict))
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(KindValidation))
	assert.Equal(t, http.StatusTooManyRequests, HTTPStatus(KindRateLimited))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(KindUpstream))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(Kind("???")))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("no rows")
	err := Wrap(KindNotFound, "payment not found", cause)
	assert.ErrorIs(t, err, cause)
}
