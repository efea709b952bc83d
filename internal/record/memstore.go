package record

import (
	"sort"
	"sync"
)

// MemStore is an in-memory Store for tests and dry runs.
type MemStore struct {
	mu      sync.RWMutex
	records map[string][]byte
	// ListErr, when set, is returned by List.
	ListErr error
}

// NewMemStore returns an empty MemStore, optionally seeded with records.
func NewMemStore(seed map[string]string) *MemStore {
	s := &MemStore{records: make(map[string][]byte, len(seed))}
	for id, content := range seed {
		s.records[id] = []byte(content)
	}
	return s
}

func (s *MemStore) Put(id string, content []byte) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[id] = append([]byte(nil), content...)
	return nil
}

func (s *MemStore) Delete(id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}

func (s *MemStore) List() ([]string, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *MemStore) Path(id string) string {
	return "mem://" + FileName(id)
}

// Get returns the stored record for id.
func (s *MemStore) Get(id string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.records[id]
	return content, ok
}
