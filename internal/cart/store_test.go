package cart

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	t.Run("CreateAndGet", func(t *testing.T) {
		st, err := NewStore(4)
		require.NoError(t, err)

		s := st.Create()
		got, err := st.Get(s.ID)
		require.NoError(t, err)
		assert.Same(t, s, got)
	})

	t.Run("Unknown", func(t *testing.T) {
		st, err := NewStore(4)
		require.NoError(t, err)

		_, err = st.Get("nope")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("EvictsLeastRecentlyUsed", func(t *testing.T) {
		st, err := NewStore(2)
		require.NoError(t, err)

		a := st.Create()
		b := st.Create()
		_, _ = st.Get(a.ID)
		st.Create()

		_, err = st.Get(b.ID)
		assert.ErrorIs(t, err, ErrSessionNotFound)
		_, err = st.Get(a.ID)
		assert.NoError(t, err)
		assert.Equal(t, 2, st.Len())
	})

	t.Run("Delete", func(t *testing.T) {
		st, err := NewStore(2)
		require.NoError(t, err)

		s := st.Create()
		st.Delete(s.ID)
		_, err = st.Get(s.ID)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("InvalidSize", func(t *testing.T) {
		_, err := NewStore(0)
		assert.Error(t, err)
	})
}

func TestSessionDo(t *testing.T) {
	st, err := NewStore(1)
	require.NoError(t, err)
	s := st.Create()

	events := s.Do(func(l *Ledger) {
		l.AddItem("p1", "A", "M", 1, 100, "")
		l.AddItem("p1", "A", "M", 1, 100, "")
	})
	require.Len(t, events, 2)
	assert.Equal(t, EventAdded, events[0].Kind)
	assert.Equal(t, EventQuantityUpdated, events[1].Kind)

	events = s.Do(func(l *Ledger) { l.UpdateQuantity("missing", 2) })
	assert.Empty(t, events)
}

func TestSessionConcurrentAddsMerge(t *testing.T) {
	st, err := NewStore(1)
	require.NoError(t, err)
	s := st.Create()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Do(func(l *Ledger) { l.AddItem("p1", "A", "M", 1, 10, "") })
		}()
	}
	wg.Wait()

	var items []LineItem
	s.Do(func(l *Ledger) { items = l.Items() })
	require.Len(t, items, 1)
	assert.Equal(t, 50, items[0].Quantity)
}
