// internal/table/store.go
package table

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Store holds every live table, keyed by table ID. The store lock only
// guards the map; each table serializes its own game behind its own lock, so
// games on different tables never contend.
type Store struct {
	mu     sync.RWMutex
	log    *logrus.Logger
	tables map[uuid.UUID]*Table
}

// NewStore constructs an empty table store.
func NewStore(logger *logrus.Logger) *Store {
	return &Store{
		log:    logger,
		tables: make(map[uuid.UUID]*Table),
	}
}

// Create opens a new table with the given seed and registers it.
func (s *Store) Create(seed uint64) *Table {
	t := New(s.log, seed)

	s.mu.Lock()
	s.tables[t.ID] = t
	s.mu.Unlock()

	s.log.WithField("table", t.ID).Info("table created")
	return t
}

// Find returns the table with the given ID.
func (s *Store) Find(id uuid.UUID) (*Table, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tables[id]
	return t, ok
}

// Remove closes a table. Removing an unknown ID is an error so callers
// cannot silently double-close.
func (s *Store) Remove(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tables[id]; !ok {
		return fmt.Errorf("table %s does not exist", id)
	}
	delete(s.tables, id)
	return nil
}

// Tables returns all live tables in unspecified order.
func (s *Store) Tables() []*Table {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Table, 0, len(s.tables))
	for _, t := range s.tables {
		out = append(out, t)
	}
	return out
}
