package person

import (
	"context"
	"errors"
	"log"
	"math"
	"strings"
	"time"

	"github.com/zhouzirui/person-records/backend/internal/metrics"
	"github.com/zhouzirui/person-records/backend/internal/model/person"
)

var (
	ErrFirstNameRequired = errors.New("firstName is required")
	ErrLastNameRequired  = errors.New("lastName is required")
	ErrPersonNotFound    = errors.New("person not found")
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Config controls page size normalization.
type Config struct {
	DefaultLimit int
	MaxLimit     int
}

// Pagination is the metadata returned alongside a page of records.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Page is the list/search response envelope.
type Page struct {
	Data       []person.Person `json:"data"`
	Pagination Pagination      `json:"pagination"`
}

// Service validates input, paginates store results and announces changes.
type Service struct {
	store   person.Store
	hub     *Hub
	metrics *metrics.Metrics
	cfg     Config
}

// NewService wires a store to an optional hub and metrics set.
func NewService(store person.Store, hub *Hub, m *metrics.Metrics, cfg Config) *Service {
	if cfg.DefaultLimit < 1 {
		cfg.DefaultLimit = DefaultLimit
	}
	if cfg.MaxLimit < 1 {
		cfg.MaxLimit = MaxLimit
	}
	if cfg.DefaultLimit > cfg.MaxLimit {
		cfg.DefaultLimit = cfg.MaxLimit
	}
	return &Service{store: store, hub: hub, metrics: m, cfg: cfg}
}

// Create validates fields and stores a new record.
func (s *Service) Create(_ context.Context, fields person.Fields) (person.Person, error) {
	fields.FirstName = strings.TrimSpace(fields.FirstName)
	fields.LastName = strings.TrimSpace(fields.LastName)
	if fields.FirstName == "" {
		return person.Person{}, ErrFirstNameRequired
	}
	if fields.LastName == "" {
		return person.Person{}, ErrLastNameRequired
	}

	p := s.store.Create(fields)
	s.metrics.IncrementCreated(s.store.Count())
	s.publish(EventCreated, p.ID, &p)
	log.Printf("[person] created id=%d", p.ID)
	return p, nil
}

// Get returns a single record.
func (s *Service) Get(_ context.Context, id int) (person.Person, error) {
	p, ok := s.store.FindByID(id)
	if !ok {
		return person.Person{}, ErrPersonNotFound
	}
	return p, nil
}

// Count returns the number of stored records.
func (s *Service) Count(_ context.Context) int {
	return s.store.Count()
}

// List returns one page of records in creation order.
func (s *Service) List(_ context.Context, page, limit int) Page {
	page, limit, offset := s.normalize(page, limit)
	data := s.store.List(limit, offset)
	return newPage(data, page, limit, s.store.Count())
}

// Search returns one page of records matching query.
func (s *Service) Search(_ context.Context, query string, page, limit int) Page {
	page, limit, offset := s.normalize(page, limit)
	if query != "" {
		s.metrics.IncrementSearches()
	}
	data := s.store.Search(query, limit, offset)
	return newPage(data, page, limit, s.store.SearchCount(query))
}

// Update applies patch to an existing record.
func (s *Service) Update(_ context.Context, id int, patch person.Patch) (person.Person, error) {
	if patch.FirstName != nil {
		v := strings.TrimSpace(*patch.FirstName)
		if v == "" {
			return person.Person{}, ErrFirstNameRequired
		}
		patch.FirstName = &v
	}
	if patch.LastName != nil {
		v := strings.TrimSpace(*patch.LastName)
		if v == "" {
			return person.Person{}, ErrLastNameRequired
		}
		patch.LastName = &v
	}

	p, ok := s.store.Update(id, patch)
	if !ok {
		return person.Person{}, ErrPersonNotFound
	}
	s.metrics.IncrementUpdated()
	s.publish(EventUpdated, p.ID, &p)
	log.Printf("[person] updated id=%d", p.ID)
	return p, nil
}

// Delete removes a record.
func (s *Service) Delete(_ context.Context, id int) error {
	if !s.store.Delete(id) {
		return ErrPersonNotFound
	}
	s.metrics.IncrementDeleted(s.store.Count())
	s.publish(EventDeleted, id, nil)
	log.Printf("[person] deleted id=%d", id)
	return nil
}

func (s *Service) publish(typ EventType, id int, p *person.Person) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(Event{Type: typ, ID: id, Person: p, Timestamp: time.Now().Unix()})
}

// normalize maps 1-based page numbers onto store offsets.
func (s *Service) normalize(page, limit int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = s.cfg.DefaultLimit
	}
	if limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}
	offset := math.MaxInt
	if page-1 <= math.MaxInt/limit {
		offset = (page - 1) * limit
	}
	return page, limit, offset
}

func newPage(data []person.Person, page, limit, total int) Page {
	if data == nil {
		data = []person.Person{}
	}
	return Page{
		Data: data,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: (total + limit - 1) / limit,
		},
	}
}
