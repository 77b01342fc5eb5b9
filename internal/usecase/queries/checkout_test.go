//go:build unit

package queries_test

import (
	"testing"
	"time"

	"checkout-ledger/internal/infra/sessionstore"
	"checkout-ledger/internal/pkg/clock"
	"checkout-ledger/internal/pkg/errs"
	"checkout-ledger/internal/usecase/queries"
	"checkout-ledger/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSession(t *testing.T) {
	store := sessionstore.New()
	q := queries.NewCheckoutQueries(store)

	session, err := builder.NewCheckoutBuilder().BuildReadySession(clock.NewMockClock(time.Now()))
	require.NoError(t, err)
	require.NoError(t, store.Create(session))

	t.Run("snapshots the live session", func(t *testing.T) {
		view, err := q.GetSession(session.ID())
		require.NoError(t, err)

		assert.Equal(t, session.ID(), view.ID)
		assert.Equal(t, "ready", view.Status)
		assert.Equal(t, "USD", view.Order.Currency)
		assert.Len(t, view.Order.Items, 2)
		assert.Equal(t, int64(1000), view.Totals.SubTotal)
		assert.Equal(t, int64(1192), view.Totals.TotalToPay)
		assert.Equal(t, int64(500), view.Account.PointsBalance)
		assert.False(t, view.Redemption.Enabled)
		assert.Nil(t, view.Result)
	})

	t.Run("line items carry their extended amount", func(t *testing.T) {
		view, err := q.GetSession(session.ID())
		require.NoError(t, err)

		assert.Equal(t, int64(500), view.Order.Items[0].Amount)
		assert.Equal(t, int64(500), view.Order.Items[1].Amount)
	})

	t.Run("unknown session", func(t *testing.T) {
		_, err := q.GetSession(uuid.New())
		assert.ErrorIs(t, err, errs.ErrSessionNotFound)
	})
}
