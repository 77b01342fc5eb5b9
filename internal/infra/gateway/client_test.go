//go:build unit

package gateway_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"checkout-ledger/internal/infra"
	"checkout-ledger/internal/infra/gateway"
	"checkout-ledger/internal/pkg/config"
	"checkout-ledger/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, handler http.HandlerFunc) *gateway.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.GatewayConfig{BaseURL: srv.URL, APIKey: "sk_test_123", Timeout: 5 * time.Second}
	return gateway.NewClient(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

var testCard = commands.CardInput{
	Number:   "4242424242424242",
	ExpMonth: 12,
	ExpYear:  2030,
	CVC:      "123",
	Name:     "Taro Yamada",
}

func TestCreatePaymentMethod(t *testing.T) {
	t.Run("returns the gateway token", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/payment_methods", r.URL.Path)
			assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "4242424242424242", body["number"])

			_, _ = w.Write([]byte(`{"payment_method_id": "pm_123"}`))
		})

		id, err := client.CreatePaymentMethod(context.Background(), testCard)
		require.NoError(t, err)
		assert.Equal(t, "pm_123", id)
	})

	t.Run("missing token is a gateway failure", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"error": "invalid card number"}`))
		})

		_, err := client.CreatePaymentMethod(context.Background(), testCard)
		assert.True(t, infra.IsKind(err, infra.KindGatewayFailure))
		assert.Contains(t, err.Error(), "invalid card number")
	})

	t.Run("5xx is a gateway failure", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := client.CreatePaymentMethod(context.Background(), testCard)
		assert.True(t, infra.IsKind(err, infra.KindGatewayFailure))
	})
}

func TestValidateAndIntent(t *testing.T) {
	payload := commands.IntentPayload{
		PaymentMethodID: "pm_123",
		OrderID:         uuid.New(),
		Amount:          892,
		Currency:        "USD",
		Loyalty: commands.LoyaltyContext{
			PointsApplied: 300,
			Discount:      300,
			BalanceBefore: 500,
			BalanceAfter:  200,
		},
	}

	t.Run("valid intent", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/validate_intent", r.URL.Path)

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, float64(892), body["amount"])
			loyalty, ok := body["loyalty_context"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, float64(300), loyalty["points_applied"])

			_, _ = w.Write([]byte(`{"valid": true, "client_secret": "cs_456"}`))
		})

		result, err := client.ValidateAndIntent(context.Background(), payload)
		require.NoError(t, err)
		assert.True(t, result.Valid)
		assert.Equal(t, "cs_456", result.ClientSecret)
	})

	t.Run("declined intent carries the reason", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"valid": false, "reason": "insufficient funds"}`))
		})

		result, err := client.ValidateAndIntent(context.Background(), payload)
		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Equal(t, "insufficient funds", result.Reason)
	})

	t.Run("malformed response is a bad payload", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		})

		_, err := client.ValidateAndIntent(context.Background(), payload)
		assert.True(t, infra.IsKind(err, infra.KindBadPayload))
	})
}
