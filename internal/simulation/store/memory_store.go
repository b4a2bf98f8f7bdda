package store

import (
	"context"
	"sync"

	"github.com/c14220110/poliklinik-analytics/internal/simulation/models"
)

// MemoryStore keeps the slot in process memory. Records are copied in and
// out so callers never share state with the store.
type MemoryStore struct {
	mu     sync.RWMutex
	record *models.SimulationRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(_ context.Context, record *models.SimulationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = record.Clone()
	return nil
}

func (s *MemoryStore) Load(_ context.Context) (*models.SimulationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.record.Clone(), nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = nil
	return nil
}
