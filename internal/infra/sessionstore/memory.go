package sessionstore

import (
	"sync"

	"checkout-ledger/internal/domain/checkout"
	"checkout-ledger/internal/pkg/errs"

	"github.com/google/uuid"
)

// Store holds live checkout sessions in process memory. Sessions carry no
// persisted state: they exist for the duration of one checkout visit and are
// dropped on completion or abandonment.
//
// Each session has its own lock, so user actions on one session are strictly
// serialized while unrelated sessions proceed concurrently.
type Store struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*entry
}

type entry struct {
	mu      sync.Mutex
	session *checkout.Session
}

func New() *Store {
	return &Store{
		entries: make(map[uuid.UUID]*entry),
	}
}

func (st *Store) Create(session *checkout.Session) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, exists := st.entries[session.ID()]; exists {
		return errs.New("session already registered")
	}
	st.entries[session.ID()] = &entry{session: session}
	return nil
}

// Within runs fn with exclusive access to the session. Actions queue on the
// per-session lock in arrival order, which gives the last-write-wins ordering
// the checkout flow requires.
func (st *Store) Within(sessionID uuid.UUID, fn func(session *checkout.Session) error) error {
	st.mu.RLock()
	e, ok := st.entries[sessionID]
	st.mu.RUnlock()
	if !ok {
		return errs.ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.session)
}

func (st *Store) Delete(sessionID uuid.UUID) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.entries, sessionID)
}

// Len reports the number of live sessions, for observability only.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.entries)
}
