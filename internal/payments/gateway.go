// Package payments talks to the external payment gateway: order creation
// for the checkout flow and HMAC-SHA256 signature verification for the
// verify and webhook callbacks.
package payments

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/arjunmehta12/mockmate/pkg/apperror"
)

type Gateway struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
}

func NewGateway(keyID, keySecret, baseURL string) *Gateway {
	return &Gateway{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (g *Gateway) KeyID() string { return g.keyID }

type orderRequest struct {
	Amount   int64  `json:"amount"` // minor units
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type orderResponse struct {
	ID string `json:"id"`
}

// CreateOrder registers an order with the gateway and returns its id. Any
// gateway failure is fatal to the triggering request.
func (g *Gateway) CreateOrder(ctx context.Context, amount int64, receipt string) (string, error) {
	body, err := json.Marshal(orderRequest{Amount: amount, Currency: "INR", Receipt: receipt})
	if err != nil {
		return "", fmt.Errorf("marshal order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.keyID, g.keySecret)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", apperror.Upstream("payment gateway unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apperror.Upstream(fmt.Sprintf("payment gateway returned %d", resp.StatusCode), nil)
	}

	var out orderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", apperror.Upstream("decode gateway order response", err)
	}
	if out.ID == "" {
		return "", apperror.Upstream("gateway order response missing id", nil)
	}
	return out.ID, nil
}

func (g *Gateway) sign(payload []byte) string {
	mac := hmac.New(sha256.New, []byte(g.keySecret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyPaymentSignature checks the checkout callback signature computed
// over "orderId|paymentId". Comparison is constant-time.
func (g *Gateway) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	expected := g.sign([]byte(orderID + "|" + paymentID))
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}

// VerifyWebhookSignature checks the signature over the raw, unparsed webhook
// body. The body must not have been decoded and re-encoded before this.
func (g *Gateway) VerifyWebhookSignature(rawBody []byte, signature string) bool {
	expected := g.sign(rawBody)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
