package person

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *MemoryStore
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewMemoryStore()
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) create(first, last, statement string) Person {
	return s.store.Create(Fields{FirstName: first, LastName: last, PersonalStatement: statement})
}

func (s *MemoryStoreSuite) createN(n int) {
	for i := 1; i <= n; i++ {
		s.create(fmt.Sprintf("First%02d", i), fmt.Sprintf("Last%02d", i), "")
	}
}

func ids(people []Person) []int {
	out := make([]int, 0, len(people))
	for _, p := range people {
		out = append(out, p.ID)
	}
	return out
}

func strPtr(v string) *string { return &v }

func (s *MemoryStoreSuite) TestCreateAssignsIncreasingIDs() {
	s.Run("starts at one", func() {
		p := s.create("Jane", "Doe", "hello")
		s.Equal(1, p.ID)
		s.Equal("Jane", p.FirstName)
		s.Equal("Doe", p.LastName)
		s.Equal("hello", p.PersonalStatement)
	})

	s.Run("ids never repeat after deletes", func() {
		seen := map[int]bool{}
		last := 0
		for i := 0; i < 20; i++ {
			p := s.create("A", "B", "")
			s.Greater(p.ID, last)
			s.False(seen[p.ID])
			seen[p.ID] = true
			last = p.ID
			if i%3 == 0 {
				s.True(s.store.Delete(p.ID))
			}
		}
	})

	s.Run("duplicate names are allowed", func() {
		a := s.create("Sam", "Same", "")
		b := s.create("Sam", "Same", "")
		s.NotEqual(a.ID, b.ID)
	})
}

func (s *MemoryStoreSuite) TestFindByID() {
	created := s.create("Jane", "Doe", "x")

	got, ok := s.store.FindByID(created.ID)
	s.Require().True(ok)
	s.Equal(created, got)

	_, ok = s.store.FindByID(999)
	s.False(ok)
}

func (s *MemoryStoreSuite) TestReturnedRecordsAreCopies() {
	created := s.create("Jane", "Doe", "x")
	created.FirstName = "Mutated"

	got, ok := s.store.FindByID(created.ID)
	s.Require().True(ok)
	s.Equal("Jane", got.FirstName)

	listed := s.store.List(10, 0)
	listed[0].LastName = "Mutated"
	again, _ := s.store.FindByID(created.ID)
	s.Equal("Doe", again.LastName)
}

func (s *MemoryStoreSuite) TestCountTracksCreatesAndDeletes() {
	s.Equal(0, s.store.Count())
	s.createN(5)
	s.Equal(5, s.store.Count())
	s.True(s.store.Delete(2))
	s.True(s.store.Delete(4))
	s.False(s.store.Delete(4))
	s.Equal(3, s.store.Count())
}

func (s *MemoryStoreSuite) TestListPagination() {
	s.createN(25)

	s.Run("full page", func() {
		s.Equal([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, ids(s.store.List(10, 0)))
	})
	s.Run("partial last page", func() {
		s.Equal([]int{21, 22, 23, 24, 25}, ids(s.store.List(10, 20)))
	})
	s.Run("offset past end", func() {
		s.Empty(s.store.List(10, 30))
	})
	s.Run("zero limit", func() {
		s.Empty(s.store.List(0, 0))
	})
	s.Run("negative values are clamped", func() {
		s.Empty(s.store.List(-1, 0))
		s.Len(s.store.List(3, -5), 3)
	})
}

func (s *MemoryStoreSuite) TestListSkipsDeletedKeepingOrder() {
	s.createN(5)
	s.Require().True(s.store.Delete(3))
	s.Equal([]int{1, 2, 4, 5}, ids(s.store.List(10, 0)))
	s.Equal([]int{4, 5}, ids(s.store.List(10, 2)))
}

func (s *MemoryStoreSuite) TestSearch() {
	s.create("Ann", "Lee", "Likes astronomy")
	s.create("John", "Smith", "Writes Go")
	s.create("Joanna", "Annson", "Plays chess")

	s.Run("case insensitive on first name", func() {
		s.Equal([]int{1, 3}, ids(s.store.Search("ann", 10, 0)))
	})
	s.Run("matches last name", func() {
		s.Equal([]int{2}, ids(s.store.Search("SMITH", 10, 0)))
	})
	s.Run("matches personal statement", func() {
		s.Equal([]int{1}, ids(s.store.Search("astro", 10, 0)))
	})
	s.Run("no match is empty, not an error", func() {
		s.Empty(s.store.Search("zzz", 10, 0))
		s.Equal(0, s.store.SearchCount("zzz"))
	})
	s.Run("pagination applies to matches", func() {
		s.Equal([]int{3}, ids(s.store.Search("jo", 1, 1)))
		s.Empty(s.store.Search("jo", 10, 2))
	})
}

func (s *MemoryStoreSuite) TestEmptySearchEqualsList() {
	s.createN(12)
	s.Require().True(s.store.Delete(5))

	s.Equal(s.store.List(1000, 0), s.store.Search("", 1000, 0))
	s.Equal(s.store.Count(), s.store.SearchCount(""))
	s.Equal(s.store.List(4, 3), s.store.Search("", 4, 3))
}

func (s *MemoryStoreSuite) TestSearchCountMatchesUnpaginatedSearch() {
	s.createN(30)
	for _, q := range []string{"", "first1", "LAST2", "0", "nothing"} {
		s.Equal(len(s.store.Search(q, 1000, 0)), s.store.SearchCount(q), "query %q", q)
	}
}

func (s *MemoryStoreSuite) TestUpdate() {
	created := s.create("Jane", "Doe", "statement")

	s.Run("changes only provided fields", func() {
		updated, ok := s.store.Update(created.ID, Patch{LastName: strPtr("X")})
		s.Require().True(ok)
		s.Equal(created.ID, updated.ID)
		s.Equal("Jane", updated.FirstName)
		s.Equal("X", updated.LastName)
		s.Equal("statement", updated.PersonalStatement)

		stored, _ := s.store.FindByID(created.ID)
		s.Equal(updated, stored)
	})

	s.Run("empty string is a value", func() {
		updated, ok := s.store.Update(created.ID, Patch{PersonalStatement: strPtr("")})
		s.Require().True(ok)
		s.Equal("", updated.PersonalStatement)
	})

	s.Run("missing id has no side effects", func() {
		_, ok := s.store.Update(42, Patch{FirstName: strPtr("Ghost")})
		s.False(ok)
		s.Equal(1, s.store.Count())
		_, found := s.store.FindByID(42)
		s.False(found)
	})
}

func (s *MemoryStoreSuite) TestDeletedIDIsGone() {
	p := s.create("Jane", "Doe", "")
	s.Require().True(s.store.Delete(p.ID))

	_, ok := s.store.FindByID(p.ID)
	s.False(ok)
	_, ok = s.store.Update(p.ID, Patch{FirstName: strPtr("Back")})
	s.False(ok)
	s.False(s.store.Delete(p.ID))

	next := s.create("Next", "One", "")
	s.NotEqual(p.ID, next.ID)
}

func (s *MemoryStoreSuite) TestEndToEndScenario() {
	a := s.create("Jane", "Doe", "...")
	b := s.create("John", "Smith", "...")
	s.Equal(1, a.ID)
	s.Equal(2, b.ID)

	found := s.store.Search("jo", 10, 0)
	s.Require().Len(found, 1)
	s.Equal(b.ID, found[0].ID)

	s.True(s.store.Delete(1))
	s.Equal(1, s.store.Count())

	c := s.create("Carl", "Jones", "...")
	s.Equal(3, c.ID)
}

func (s *MemoryStoreSuite) TestConcurrentCreatesAssignUniqueIDs() {
	const workers, perWorker = 8, 50

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		got = make(map[int]bool)
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				p := s.store.Create(Fields{FirstName: "C", LastName: "C"})
				mu.Lock()
				got[p.ID] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	s.Len(got, workers*perWorker)
	s.Equal(workers*perWorker, s.store.Count())
	s.Equal(workers*perWorker, s.store.SearchCount(""))
}

func TestLoadSeedKeepsOrder(t *testing.T) {
	store := NewMemoryStore()
	loaded := Load(store, Seed())

	if len(loaded) != len(Seed()) {
		t.Fatalf("expected %d seeded records, got %d", len(Seed()), len(loaded))
	}
	for i, p := range loaded {
		if p.ID != i+1 {
			t.Fatalf("expected id %d, got %d", i+1, p.ID)
		}
	}
	if store.Count() != len(loaded) {
		t.Fatalf("unexpected count %d", store.Count())
	}
}
