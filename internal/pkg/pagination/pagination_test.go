package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_SevenItemsPageSizeSix(t *testing.T) {
	p := New(1, 6, 7)
	require.Equal(t, 2, p.Pages)
	require.Equal(t, 0, p.Offset)
	require.True(t, p.HasNext)
	require.False(t, p.HasPrev)

	p = New(2, 6, 7)
	require.Equal(t, 6, p.Offset)
	require.False(t, p.HasNext)
	require.True(t, p.HasPrev)
}

func TestNew_ClampsPastLastPage(t *testing.T) {
	// user was on page 3, filter shrank the set to one page
	p := New(3, 6, 4)
	require.Equal(t, 1, p.Page)
	require.Equal(t, 1, p.Pages)
	require.Equal(t, 0, p.Offset)
}

func TestNew_EmptySet(t *testing.T) {
	p := New(1, 6, 0)
	require.Equal(t, 1, p.Pages)
	require.Equal(t, 1, p.Page)
	require.False(t, p.HasNext)
}

func TestFromQuery(t *testing.T) {
	require.Equal(t, 1, FromQuery(""))
	require.Equal(t, 1, FromQuery("junk"))
	require.Equal(t, 1, FromQuery("-2"))
	require.Equal(t, 4, FromQuery("4"))
}
