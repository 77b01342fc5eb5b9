//go:build unit

package sessionstore_test

import (
	"sync"
	"testing"
	"time"

	"checkout-ledger/internal/domain/checkout"
	"checkout-ledger/internal/infra/sessionstore"
	"checkout-ledger/internal/pkg/clock"
	"checkout-ledger/internal/pkg/errs"
	"checkout-ledger/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T) *checkout.Session {
	t.Helper()
	s, err := builder.NewCheckoutBuilder().BuildReadySession(clock.NewMockClock(time.Now()))
	require.NoError(t, err)
	return s
}

func TestStore(t *testing.T) {
	t.Run("create and access", func(t *testing.T) {
		st := sessionstore.New()
		s := newSession(t)

		require.NoError(t, st.Create(s))
		assert.Equal(t, 1, st.Len())

		err := st.Within(s.ID(), func(got *checkout.Session) error {
			assert.Same(t, s, got)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("duplicate create rejected", func(t *testing.T) {
		st := sessionstore.New()
		s := newSession(t)

		require.NoError(t, st.Create(s))
		assert.Error(t, st.Create(s))
		assert.Equal(t, 1, st.Len())
	})

	t.Run("unknown session", func(t *testing.T) {
		st := sessionstore.New()

		err := st.Within(uuid.New(), func(*checkout.Session) error {
			t.Fatal("fn must not run for an unknown session")
			return nil
		})
		assert.ErrorIs(t, err, errs.ErrSessionNotFound)
	})

	t.Run("within propagates the callback error", func(t *testing.T) {
		st := sessionstore.New()
		s := newSession(t)
		require.NoError(t, st.Create(s))

		sentinel := errs.New("boom")
		err := st.Within(s.ID(), func(*checkout.Session) error {
			return sentinel
		})
		assert.ErrorIs(t, err, sentinel)
	})

	t.Run("delete removes the session", func(t *testing.T) {
		st := sessionstore.New()
		s := newSession(t)
		require.NoError(t, st.Create(s))

		st.Delete(s.ID())
		assert.Equal(t, 0, st.Len())
		assert.ErrorIs(t, st.Within(s.ID(), func(*checkout.Session) error { return nil }), errs.ErrSessionNotFound)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		st := sessionstore.New()
		st.Delete(uuid.New())
	})

	t.Run("actions on one session are serialized", func(t *testing.T) {
		st := sessionstore.New()
		s := newSession(t)
		require.NoError(t, st.Create(s))

		const workers = 16
		var wg sync.WaitGroup
		counter := 0

		wg.Add(workers)
		for i := 0; i < workers; i++ {
			go func() {
				defer wg.Done()
				_ = st.Within(s.ID(), func(*checkout.Session) error {
					counter++
					return nil
				})
			}()
		}
		wg.Wait()

		assert.Equal(t, workers, counter)
	})
}
