// Package history keeps the session's generated plans in memory,
// most recent first. Nothing is persisted; the list dies with the process.
package history

import (
	"sync"
	"time"

	"tractorplan/internal/plan"
)

const defaultLimit = 20

type Entry struct {
	ID        int64      `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	Marca     string     `json:"marca"`
	Modelo    string     `json:"modelo"`
	Horas     int        `json:"horas"`
	Plan      *plan.Plan `json:"plan"`
}

// Store is safe for concurrent use. Append and a full clear are the only
// mutations.
type Store struct {
	mu      sync.Mutex
	next    int64
	limit   int
	entries []Entry
}

func NewStore(limit int) *Store {
	if limit <= 0 {
		limit = defaultLimit
	}
	return &Store{limit: limit}
}

// Add prepends the entry and drops anything past the display limit.
func (s *Store) Add(marca, modelo string, horas int, p *plan.Plan) Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	e := Entry{
		ID:        s.next,
		CreatedAt: time.Now().UTC(),
		Marca:     marca,
		Modelo:    modelo,
		Horas:     horas,
		Plan:      p,
	}
	s.entries = append([]Entry{e}, s.entries...)
	if len(s.entries) > s.limit {
		s.entries = s.entries[:s.limit]
	}
	return e
}

// List returns a snapshot, most recent first.
func (s *Store) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Store) Get(id int64) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}
