package person

import (
	"strings"
	"sync"
)

// Store exposes person records to services and HTTP handlers.
type Store interface {
	Create(fields Fields) Person
	FindByID(id int) (Person, bool)
	List(limit, offset int) []Person
	Count() int
	Search(query string, limit, offset int) []Person
	SearchCount(query string) int
	Update(id int, patch Patch) (Person, bool)
	Delete(id int) bool
}

// MemoryStore implements Store in process memory. All state is lost on restart.
type MemoryStore struct {
	mu     sync.RWMutex
	items  map[int]Person
	order  []int
	nextID int
}

// NewMemoryStore returns an empty store whose first record gets id 1.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items:  make(map[int]Person),
		nextID: 1,
	}
}

// Create assigns the next id and stores a copy of the record.
func (s *MemoryStore) Create(fields Fields) Person {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := Person{
		ID:                s.nextID,
		FirstName:         fields.FirstName,
		LastName:          fields.LastName,
		PersonalStatement: fields.PersonalStatement,
	}
	s.nextID++
	s.items[p.ID] = p
	s.order = append(s.order, p.ID)
	return p
}

// FindByID looks up a record by identifier.
func (s *MemoryStore) FindByID(id int) (Person, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.items[id]
	return p, ok
}

// List returns records in creation order. It is Search with an empty query.
func (s *MemoryStore) List(limit, offset int) []Person {
	return s.Search("", limit, offset)
}

// Count returns the number of stored records.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Search returns records whose first name, last name or personal statement
// contains query, ignoring case. Results keep creation order.
func (s *MemoryStore) Search(query string, limit, offset int) []Person {
	limit, offset = max(limit, 0), max(offset, 0)
	needle := strings.ToLower(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Person, 0, min(limit, len(s.order)))
	skipped := 0
	for _, id := range s.order {
		if len(out) == limit {
			break
		}
		p := s.items[id]
		if !p.matches(needle) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		out = append(out, p)
	}
	return out
}

// SearchCount returns how many records Search would match without pagination.
func (s *MemoryStore) SearchCount(query string) int {
	needle := strings.ToLower(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, id := range s.order {
		if s.items[id].matches(needle) {
			n++
		}
	}
	return n
}

// Update merges the provided fields into an existing record.
func (s *MemoryStore) Update(id int, patch Patch) (Person, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.items[id]
	if !ok {
		return Person{}, false
	}
	updated := existing.apply(patch)
	s.items[id] = updated
	return updated, true
}

// Delete removes a record. The id is never handed out again.
func (s *MemoryStore) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// matches expects needle to be lower-cased already.
func (p Person) matches(needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.FirstName), needle) ||
		strings.Contains(strings.ToLower(p.LastName), needle) ||
		strings.Contains(strings.ToLower(p.PersonalStatement), needle)
}
