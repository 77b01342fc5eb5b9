//go:build unit

package ledger_test

import (
	"errors"
	"testing"

	"checkout-ledger/internal/domain/ledger"
	"checkout-ledger/internal/domain/loyalty"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRedemption(t *testing.T) {
	account := func(t *testing.T, balance int64) loyalty.Account {
		t.Helper()
		a, err := loyalty.NewAccount(balance, 0, 1200)
		require.NoError(t, err)
		return a
	}

	t.Run("disabled always yields zero", func(t *testing.T) {
		req := ledger.RedemptionRequest{Enabled: false, RequestedRaw: "garbage"}

		applied, err := ledger.ValidateRedemption(req, account(t, 500), 1192)
		require.NoError(t, err)
		assert.Equal(t, int64(0), applied)
	})

	t.Run("valid request within balance and total", func(t *testing.T) {
		req := ledger.RedemptionRequest{Enabled: true, RequestedRaw: "300"}

		applied, err := ledger.ValidateRedemption(req, account(t, 500), 1192)
		require.NoError(t, err)
		assert.Equal(t, int64(300), applied)
	})

	t.Run("surrounding whitespace tolerated", func(t *testing.T) {
		req := ledger.RedemptionRequest{Enabled: true, RequestedRaw: "  300 "}

		applied, err := ledger.ValidateRedemption(req, account(t, 500), 1192)
		require.NoError(t, err)
		assert.Equal(t, int64(300), applied)
	})

	t.Run("malformed input", func(t *testing.T) {
		for _, raw := range []string{"", "   ", "abc", "3.5", "-1", "1e3", "+ 10"} {
			req := ledger.RedemptionRequest{Enabled: true, RequestedRaw: raw}

			_, err := ledger.ValidateRedemption(req, account(t, 500), 1192)
			assert.ErrorIs(t, err, ledger.ErrInvalidInput, "raw=%q", raw)
		}
	})

	t.Run("zero points", func(t *testing.T) {
		req := ledger.RedemptionRequest{Enabled: true, RequestedRaw: "0"}

		_, err := ledger.ValidateRedemption(req, account(t, 500), 1192)
		assert.ErrorIs(t, err, ledger.ErrZeroPoints)
	})

	t.Run("balance is the cap when smaller than the total", func(t *testing.T) {
		req := ledger.RedemptionRequest{Enabled: true, RequestedRaw: "501"}

		_, err := ledger.ValidateRedemption(req, account(t, 500), 1192)

		var exceeds *ledger.ExceedsMaxError
		require.True(t, errors.As(err, &exceeds))
		assert.Equal(t, int64(500), exceeds.AllowedMax)
	})

	t.Run("total is the cap when smaller than the balance", func(t *testing.T) {
		req := ledger.RedemptionRequest{Enabled: true, RequestedRaw: "1500"}

		_, err := ledger.ValidateRedemption(req, account(t, 2000), 1192)

		var exceeds *ledger.ExceedsMaxError
		require.True(t, errors.As(err, &exceeds))
		assert.Equal(t, int64(1192), exceeds.AllowedMax)
	})

	t.Run("full payable total can be redeemed", func(t *testing.T) {
		req := ledger.RedemptionRequest{Enabled: true, RequestedRaw: "1192"}

		applied, err := ledger.ValidateRedemption(req, account(t, 1300), 1192)
		require.NoError(t, err)
		assert.Equal(t, int64(1192), applied)
	})

	t.Run("request exactly at the cap succeeds", func(t *testing.T) {
		req := ledger.RedemptionRequest{Enabled: true, RequestedRaw: "500"}

		applied, err := ledger.ValidateRedemption(req, account(t, 500), 1192)
		require.NoError(t, err)
		assert.Equal(t, int64(500), applied)
	})

	t.Run("zero balance caps everything", func(t *testing.T) {
		req := ledger.RedemptionRequest{Enabled: true, RequestedRaw: "1"}

		_, err := ledger.ValidateRedemption(req, account(t, 0), 1192)

		var exceeds *ledger.ExceedsMaxError
		require.True(t, errors.As(err, &exceeds))
		assert.Equal(t, int64(0), exceeds.AllowedMax)
	})
}
