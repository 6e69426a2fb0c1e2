package complaints

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func snapshotAt(base time.Time, n int) []Complaint {
	list := make([]Complaint, n)
	for i := 0; i < n; i++ {
		// newest first, matching the subscription's createdAt desc order
		list[i] = Complaint{
			ID:        fmt.Sprintf("c%d", i+1),
			Title:     fmt.Sprintf("Reclamo %d", i+1),
			Category:  "Baches",
			Status:    StatusOpen,
			CreatedAt: base.Add(-time.Duration(i) * time.Minute),
		}
	}
	return list
}

func TestStore_ReplaceLastSnapshotWins(t *testing.T) {
	s := NewStore()
	require.False(t, s.Loaded())

	s.Replace(snapshotAt(time.Unix(10000, 0), 3))
	s.Replace(snapshotAt(time.Unix(10000, 0), 1))

	require.True(t, s.Loaded())
	require.Len(t, s.All(), 1)
}

func TestView_AllFiltersAreIdentity(t *testing.T) {
	s := NewStore()
	base := time.Unix(10000, 0)
	s.Replace([]Complaint{
		{ID: "a", Title: "t", Category: "Baches", Status: StatusOpen, CreatedAt: base},
		{ID: "b", Title: "t", Category: "Agua", Status: StatusResolved, CreatedAt: base.Add(-time.Minute)},
		{ID: "c", Title: "t", Category: "Otros", Status: StatusInProgress, CreatedAt: base.Add(-2 * time.Minute)},
	})

	view := s.View(ViewQuery{Category: FilterAll, Status: FilterAll, Page: 1})
	require.Len(t, view.Complaints, 3)

	// empty filters behave the same
	view = s.View(ViewQuery{Page: 1})
	require.Len(t, view.Complaints, 3)
}

func TestView_SearchMatchesTitleOrDescription(t *testing.T) {
	s := NewStore()
	base := time.Unix(10000, 0)
	s.Replace([]Complaint{
		{ID: "a", Title: "Semáforo roto", Description: "en la esquina", CreatedAt: base},
		{ID: "b", Title: "Bache", Description: "SEMÁFORO intermitente", CreatedAt: base.Add(-time.Minute)},
		{ID: "c", Title: "Poda de árboles", Description: "rama caída", CreatedAt: base.Add(-2 * time.Minute)},
	})

	view := s.View(ViewQuery{Search: "semáforo", Page: 1})
	require.Len(t, view.Complaints, 2)
	require.Equal(t, "a", view.Complaints[0].ID)
	require.Equal(t, "b", view.Complaints[1].ID)
}

func TestView_CombinedFilters(t *testing.T) {
	s := NewStore()
	base := time.Unix(10000, 0)
	s.Replace([]Complaint{
		{ID: "a", Title: "Bache grande", Category: "Baches", Status: StatusOpen, CreatedAt: base},
		{ID: "b", Title: "Bache chico", Category: "Baches", Status: StatusResolved, CreatedAt: base.Add(-time.Minute)},
		{ID: "c", Title: "Bache enorme", Category: "Transporte", Status: StatusOpen, CreatedAt: base.Add(-2 * time.Minute)},
	})

	view := s.View(ViewQuery{Search: "bache", Category: "Baches", Status: StatusOpen, Page: 1})
	require.Len(t, view.Complaints, 1)
	require.Equal(t, "a", view.Complaints[0].ID)
}

func TestView_SortOrdersAreStable(t *testing.T) {
	s := NewStore()
	base := time.Unix(10000, 0)
	// b and c share a timestamp and vote count; their snapshot order must hold
	s.Replace([]Complaint{
		{ID: "a", CreatedAt: base, Votes: 5},
		{ID: "b", CreatedAt: base.Add(-time.Minute), Votes: 2},
		{ID: "c", CreatedAt: base.Add(-time.Minute), Votes: 2},
		{ID: "d", CreatedAt: base.Add(-2 * time.Minute), Votes: 9},
	})

	ids := func(v View) []string {
		out := make([]string, len(v.Complaints))
		for i, c := range v.Complaints {
			out[i] = c.ID
		}
		return out
	}

	require.Equal(t, []string{"a", "b", "c", "d"}, ids(s.View(ViewQuery{Sort: SortNewest, Page: 1})))
	require.Equal(t, []string{"d", "b", "c", "a"}, ids(s.View(ViewQuery{Sort: SortOldest, Page: 1})))
	require.Equal(t, []string{"d", "a", "b", "c"}, ids(s.View(ViewQuery{Sort: SortVotes, Page: 1})))
}

func TestView_PaginationSevenItems(t *testing.T) {
	s := NewStore()
	s.Replace(snapshotAt(time.Unix(10000, 0), 7))

	page1 := s.View(ViewQuery{Page: 1})
	require.Len(t, page1.Complaints, 6)
	require.Equal(t, 2, page1.Pagination.Pages)

	page2 := s.View(ViewQuery{Page: 2})
	require.Len(t, page2.Complaints, 1)
	require.Equal(t, "c7", page2.Complaints[0].ID)
}

func TestView_PageClampsWhenFilterShrinksResults(t *testing.T) {
	s := NewStore()
	s.Replace(snapshotAt(time.Unix(10000, 0), 15))

	// user sits on page 3, then searches down to a single match
	view := s.View(ViewQuery{Search: "Reclamo 15", Page: 3})
	require.Equal(t, 1, view.Pagination.Page)
	require.Len(t, view.Complaints, 1)
}

func TestStats_ComputedOverUnfilteredList(t *testing.T) {
	s := NewStore()
	base := time.Unix(10000, 0)
	s.Replace([]Complaint{
		{ID: "a", Status: StatusOpen, Votes: 3, CreatedAt: base},
		{ID: "b", Status: StatusResolved, Votes: 1, CreatedAt: base},
		{ID: "c", Status: StatusInProgress, Votes: 2, CreatedAt: base},
		{ID: "d", Status: StatusOpen, Votes: 0, CreatedAt: base},
	})

	stats := s.Stats()
	require.Equal(t, 4, stats.Total)
	require.Equal(t, 2, stats.Open)
	require.Equal(t, 1, stats.Resolved)
	require.Equal(t, int64(6), stats.TotalVotes)
}

func TestNextStatus_CycleReturnsToOpen(t *testing.T) {
	status := StatusOpen
	for i := 0; i < 3; i++ {
		status = NextStatus(status)
	}
	require.Equal(t, StatusOpen, status)

	// anything outside the cycle resets
	require.Equal(t, StatusOpen, NextStatus(StatusRejected))
	require.Equal(t, StatusOpen, NextStatus("???"))
}
