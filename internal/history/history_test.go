package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tractorplan/internal/plan"
)

func TestStoreMostRecentFirst(t *testing.T) {
	s := NewStore(20)
	s.Add("John Deere", "6120M", 250, &plan.Plan{})
	s.Add("New Holland", "T7.230", 500, &plan.Plan{})

	entries := s.List()
	require.Len(t, entries, 2)
	assert.Equal(t, "New Holland", entries[0].Marca)
	assert.Equal(t, "John Deere", entries[1].Marca)
	assert.Greater(t, entries[0].ID, entries[1].ID)
}

func TestStoreCap(t *testing.T) {
	s := NewStore(20)
	for i := 0; i < 25; i++ {
		s.Add("Marca", fmt.Sprintf("M-%d", i), i, &plan.Plan{})
	}
	entries := s.List()
	require.Len(t, entries, 20)
	assert.Equal(t, "M-24", entries[0].Modelo, "newest kept")
	assert.Equal(t, "M-5", entries[19].Modelo, "oldest beyond cap dropped")
}

func TestStoreGetAndClear(t *testing.T) {
	s := NewStore(0) // zero falls back to the default limit
	e := s.Add("Case IH", "Puma 150", 750, &plan.Plan{})

	got, ok := s.Get(e.ID)
	require.True(t, ok)
	assert.Equal(t, "Puma 150", got.Modelo)

	_, ok = s.Get(e.ID + 99)
	assert.False(t, ok)

	s.Clear()
	assert.Empty(t, s.List())

	// IDs keep growing after a clear.
	e2 := s.Add("Fendt", "724", 100, &plan.Plan{})
	assert.Greater(t, e2.ID, e.ID)
}
