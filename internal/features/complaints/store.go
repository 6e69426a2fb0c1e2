package complaints

import (
	"sort"
	"strings"
	"sync"

	"github.com/lucas24aguirre-lang/comuna-manantial/internal/pkg/pagination"
)

// Sort keys for the derived list view.
const (
	SortNewest = "fecha_desc"
	SortOldest = "fecha_asc"
	SortVotes  = "votos"
)

// FilterAll disables a filter dimension.
const FilterAll = "all"

// PageSize is the fixed complaint list page size.
const PageSize = pagination.DefaultPageSize

// ViewQuery are the filter/sort/page parameters for a derived view. Pure
// view state; never persisted.
type ViewQuery struct {
	Search   string
	Category string
	Status   string
	Sort     string
	Page     int
}

// View is a filtered, sorted, paginated slice of the store.
type View struct {
	Complaints []Complaint
	Pagination *pagination.Pagination
}

// Stats are aggregate counters over the full unfiltered list.
type Stats struct {
	Total      int   `json:"total"`
	Open       int   `json:"open"`
	Resolved   int   `json:"resolved"`
	TotalVotes int64 `json:"totalVotes"`
}

// Store owns the authoritative in-memory complaint list. Each realtime
// snapshot wholesale-replaces the list (last snapshot wins, no merging);
// derived views are pure functions over the current list.
type Store struct {
	mu         sync.RWMutex
	complaints []Complaint
	loaded     bool
}

func NewStore() *Store {
	return &Store{}
}

// Replace swaps in a full snapshot. This is the only mutation path; it is
// called from the subscription stream.
func (s *Store) Replace(list []Complaint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.complaints = list
	s.loaded = true
}

// Loaded reports whether at least one snapshot has arrived.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// All returns a copy of the full unfiltered list in snapshot order.
func (s *Store) All() []Complaint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Complaint, len(s.complaints))
	copy(out, s.complaints)
	return out
}

// Get looks up a complaint by ID in the current snapshot.
func (s *Store) Get(id string) (Complaint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.complaints {
		if c.ID == id {
			return c, true
		}
	}
	return Complaint{}, false
}

// View computes the derived filtered+sorted+paginated list. Filtering keeps
// a complaint when its title or description contains the search term
// (case-insensitive) AND category and status match their filters ("all" or
// empty disables a dimension). All sort orders are stable: equal keys keep
// snapshot order. Pages past the end clamp to the last valid page.
func (s *Store) View(q ViewQuery) View {
	filtered := s.filter(q)
	sortComplaints(filtered, q.Sort)

	p := pagination.New(q.Page, PageSize, int64(len(filtered)))

	start := p.Offset
	end := start + p.Limit
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return View{
		Complaints: filtered[start:end],
		Pagination: p,
	}
}

// Stats recomputes aggregates from the full unfiltered list.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{Total: len(s.complaints)}
	for _, c := range s.complaints {
		switch c.Status {
		case StatusOpen:
			stats.Open++
		case StatusResolved:
			stats.Resolved++
		}
		stats.TotalVotes += c.Votes
	}
	return stats
}

func (s *Store) filter(q ViewQuery) []Complaint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(q.Search))

	var out []Complaint
	for _, c := range s.complaints {
		if search != "" &&
			!strings.Contains(strings.ToLower(c.Title), search) &&
			!strings.Contains(strings.ToLower(c.Description), search) {
			continue
		}
		if !matchesFilter(q.Category, c.Category) {
			continue
		}
		if !matchesFilter(q.Status, c.Status) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func matchesFilter(filter, value string) bool {
	return filter == "" || filter == FilterAll || filter == value
}

func sortComplaints(list []Complaint, key string) {
	switch key {
	case SortOldest:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		})
	case SortVotes:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Votes > list[j].Votes
		})
	default: // SortNewest
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		})
	}
}
