//go:build unit

package ordersource_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"checkout-ledger/internal/infra"
	"checkout-ledger/internal/infra/ordersource"
	"checkout-ledger/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, handler http.HandlerFunc) *ordersource.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.OrderSourceConfig{BaseURL: srv.URL, Timeout: 5 * time.Second}
	return ordersource.NewClient(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestFetchOrderDetails(t *testing.T) {
	orderID := uuid.New()

	validBody := fmt.Sprintf(`{
		"order": {
			"id": %q,
			"currency": "usd",
			"items": [
				{"sku": "SKU-001", "name": "Espresso Machine", "unit_amount": 250, "quantity": 2},
				{"sku": "SKU-002", "name": "Grinder", "unit_amount": 500, "quantity": 1}
			]
		},
		"loyalty_account": {"points_balance": 500, "points_redeemed": 0, "lifetime_points": 1200}
	}`, orderID)

	t.Run("fetches and maps the snapshot", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, fmt.Sprintf("/api/orders/%s/checkout-details", orderID), r.URL.Path)
			_, _ = w.Write([]byte(validBody))
		})

		details, err := client.FetchOrderDetails(context.Background(), orderID)
		require.NoError(t, err)

		assert.Equal(t, orderID, details.Order.ID())
		assert.Equal(t, "USD", details.Order.Currency())
		assert.Equal(t, int64(1000), details.Order.Subtotal())
		assert.Equal(t, int64(500), details.Account.PointsBalance())
		assert.Equal(t, int64(1200), details.Account.LifetimePoints())
	})

	t.Run("non-200 is a source failure", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := client.FetchOrderDetails(context.Background(), orderID)
		assert.True(t, infra.IsKind(err, infra.KindSourceFailure))
	})

	t.Run("unreachable upstream is a source failure", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()

		cfg := config.OrderSourceConfig{BaseURL: srv.URL, Timeout: time.Second}
		client := ordersource.NewClient(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

		_, err := client.FetchOrderDetails(context.Background(), orderID)
		assert.True(t, infra.IsKind(err, infra.KindSourceFailure))
	})

	t.Run("malformed body is a bad payload", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"order": `))
		})

		_, err := client.FetchOrderDetails(context.Background(), orderID)
		assert.True(t, infra.IsKind(err, infra.KindBadPayload))
	})

	t.Run("domain-invalid body is a bad payload", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprintf(w, `{
				"order": {"id": %q, "currency": "usd", "items": []},
				"loyalty_account": {"points_balance": 500, "points_redeemed": 0, "lifetime_points": 1200}
			}`, orderID)
		})

		_, err := client.FetchOrderDetails(context.Background(), orderID)
		assert.True(t, infra.IsKind(err, infra.KindBadPayload))
	})
}
