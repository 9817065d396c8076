package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arjunmehta12/mockmate/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKeyID     = "key_test"
	testKeySecret = "secret_test"
)

func signWith(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyPaymentSignature(t *testing.T) {
	g := NewGateway(testKeyID, testKeySecret, "http://unused")

	sig := signWith(testKeySecret, []byte("order_1|pay_1"))
	assert.True(t, g.VerifyPaymentSignature("order_1", "pay_1", sig))

	assert.False(t, g.VerifyPaymentSignature("order_1", "pay_2", sig))
	assert.False(t, g.VerifyPaymentSignature("order_1", "pay_1", "deadbeef"))
	assert.False(t, g.VerifyPaymentSignature("order_1", "pay_1", signWith("wrong", []byte("order_1|pay_1"))))
}

func TestVerifyWebhookSignature(t *testing.T) {
	g := NewGateway(testKeyID, testKeySecret, "http://unused")
	body := []byte(`{"event":"payment.captured","order_id":"order_1","payment_id":"pay_1"}`)

	assert.True(t, g.VerifyWebhookSignature(body, signWith(testKeySecret, body)))

	// Re-encoding the body invalidates the signature; raw bytes matter.
	tampered := []byte(`{"event":"payment.captured","order_id":"order_1","payment_id":"pay_1"} `)
	assert.False(t, g.VerifyWebhookSignature(tampered, signWith(testKeySecret, body)))
}

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, testKeyID, user)
		assert.Equal(t, testKeySecret, pass)
		assert.Equal(t, "/v1/orders", r.URL.Path)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"order_42"}`))
	}))
	defer srv.Close()

	g := NewGateway(testKeyID, testKeySecret, srv.URL)
	orderID, err := g.CreateOrder(context.Background(), 49900, "slot-receipt")
	require.NoError(t, err)
	assert.Equal(t, "order_42", orderID)
}

func TestCreateOrder_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	g := NewGateway(testKeyID, testKeySecret, srv.URL)
	_, err := g.CreateOrder(context.Background(), 49900, "slot-receipt")
	require.Error(t, err)
	assert.Equal(t, apperror.KindUpstream, apperror.KindOf(err))
}
