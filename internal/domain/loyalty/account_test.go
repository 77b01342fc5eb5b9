//go:build unit

package loyalty_test

import (
	"testing"

	"checkout-ledger/internal/domain/loyalty"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccount(t *testing.T) {
	t.Run("valid snapshot", func(t *testing.T) {
		a, err := loyalty.NewAccount(500, 0, 1200)
		require.NoError(t, err)

		assert.Equal(t, int64(500), a.PointsBalance())
		assert.Equal(t, int64(0), a.PointsRedeemed())
		assert.Equal(t, int64(1200), a.LifetimePoints())
	})

	t.Run("negative fields rejected", func(t *testing.T) {
		_, err := loyalty.NewAccount(-1, 0, 1200)
		assert.ErrorIs(t, err, loyalty.ErrNegativePoints)

		_, err = loyalty.NewAccount(500, -1, 1200)
		assert.ErrorIs(t, err, loyalty.ErrNegativePoints)

		_, err = loyalty.NewAccount(500, 0, -1)
		assert.ErrorIs(t, err, loyalty.ErrNegativePoints)
	})
}

func TestReconcile(t *testing.T) {
	base := func(t *testing.T) loyalty.Account {
		t.Helper()
		a, err := loyalty.NewAccount(500, 0, 1200)
		require.NoError(t, err)
		return a
	}

	t.Run("first redemption deducts from balance", func(t *testing.T) {
		a := loyalty.Reconcile(base(t), 0, 300)

		assert.Equal(t, int64(200), a.PointsBalance())
		assert.Equal(t, int64(300), a.PointsRedeemed())
		assert.Equal(t, int64(1200), a.LifetimePoints())
	})

	t.Run("replacing a redemption never double counts", func(t *testing.T) {
		a := loyalty.Reconcile(base(t), 0, 300)
		a = loyalty.Reconcile(a, 300, 100)

		assert.Equal(t, int64(400), a.PointsBalance())
		assert.Equal(t, int64(100), a.PointsRedeemed())
	})

	t.Run("clearing restores the baseline", func(t *testing.T) {
		a := loyalty.Reconcile(base(t), 0, 300)
		a = loyalty.Reconcile(a, 300, 0)

		if diff := cmp.Diff(base(t), a, cmp.AllowUnexported(loyalty.Account{})); diff != "" {
			t.Errorf("account mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("round trip over several amounts", func(t *testing.T) {
		for _, applied := range []int64{1, 250, 500} {
			a := loyalty.Reconcile(base(t), 0, applied)
			a = loyalty.Reconcile(a, applied, 0)

			assert.Equal(t, int64(500), a.PointsBalance())
			assert.Equal(t, int64(0), a.PointsRedeemed())
		}
	})

	t.Run("balance clamps at zero", func(t *testing.T) {
		a := loyalty.Reconcile(base(t), 0, 600)

		assert.Equal(t, int64(0), a.PointsBalance())
		assert.Equal(t, int64(600), a.PointsRedeemed())
	})

	t.Run("lifetime points never move", func(t *testing.T) {
		a := base(t)
		for _, step := range [][2]int64{{0, 300}, {300, 100}, {100, 0}, {0, 500}} {
			a = loyalty.Reconcile(a, step[0], step[1])
			assert.Equal(t, int64(1200), a.LifetimePoints())
		}
	})
}
