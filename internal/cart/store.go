package cart

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"
)

var ErrSessionNotFound = errors.New("cart session not found")

// Session is a server-held cart. All ledger access goes through Do, which
// serializes mutators so the (product, size) merge key stays unique.
type Session struct {
	ID string

	mu      sync.Mutex
	ledger  *Ledger
	pending []Event
}

func newSession(id string) *Session {
	s := &Session{ID: id}
	s.ledger = NewLedger(NotifierFunc(func(e Event) {
		s.pending = append(s.pending, e)
	}))
	return s
}

// Do runs fn with exclusive access to the ledger and returns the events
// emitted while it ran.
func (s *Session) Do(fn func(l *Ledger)) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = nil
	fn(s.ledger)
	events := s.pending
	s.pending = nil
	return events
}

// Store keeps a bounded number of sessions; the least recently used one is
// dropped when the bound is reached.
type Store struct {
	cache *lru.Cache
}

func NewStore(maxSessions int) (*Store, error) {
	const op = "cart.NewStore"

	cache, err := lru.New(maxSessions)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Store{cache: cache}, nil
}

func (st *Store) Create() *Session {
	s := newSession(uuid.NewString())
	st.cache.Add(s.ID, s)
	return s
}

func (st *Store) Get(id string) (*Session, error) {
	const op = "Store.Get"

	v, ok := st.cache.Get(id)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, ErrSessionNotFound)
	}
	return v.(*Session), nil
}

func (st *Store) Delete(id string) {
	st.cache.Remove(id)
}

func (st *Store) Len() int {
	return st.cache.Len()
}
