package collect

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scbox/soundcloud-weekly/internal/domain/stream"
)

// offsetSource serves pre-built pages keyed by call order.
type offsetSource struct {
	pages [][]int
	calls int
}

func (s *offsetSource) fetch(_ context.Context, _, _ int) (stream.Page[int], error) {
	var items []int
	if s.calls < len(s.pages) {
		items = s.pages[s.calls]
	}
	s.calls++
	return stream.Page[int]{Collection: items}, nil
}

func TestAllByOffset_StopsAfterFirstEmptyPage(t *testing.T) {
	src := &offsetSource{pages: [][]int{{1, 2}, {3, 4}, {5}, {}}}

	items, err := AllByOffset(context.Background(), src.fetch, nil, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, items)
	// The empty page ends the traversal; no extra call is made.
	assert.Equal(t, 4, src.calls)
}

func TestAllByOffset_ToleratesLeadingEmptyPages(t *testing.T) {
	// Client-side filtering can produce empty pages before the first
	// match even though the stream holds more data.
	src := &offsetSource{pages: [][]int{{}, {}, {}, {}, {}, {7, 8}}}

	items, err := AllByOffset(context.Background(), src.fetch, nil, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, []int{7, 8}, items)
	// 5 empty pages, the matching page, then the closing empty page.
	assert.Equal(t, 7, src.calls)
}

func TestAllByOffset_GivesUpBeyondTolerance(t *testing.T) {
	src := &offsetSource{}

	items, err := AllByOffset(context.Background(), src.fetch, nil, 2, 2)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, 3, src.calls)
}

func TestAllByOffset_AppliesKeepPerPage(t *testing.T) {
	src := &offsetSource{pages: [][]int{{1, 2, 3, 4}, {5, 6}, {}}}
	keepEven := func(n int) bool { return n%2 == 0 }

	items, err := AllByOffset(context.Background(), src.fetch, keepEven, 4, 10)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 6}, items)
}

func TestAllByOffset_PropagatesErrors(t *testing.T) {
	fetch := func(_ context.Context, _, _ int) (stream.Page[int], error) {
		return stream.Page[int]{}, fmt.Errorf("boom")
	}

	_, err := AllByOffset(context.Background(), fetch, nil, 2, 10)
	assert.Error(t, err)
}

func TestAllByCursor_FollowsNextHref(t *testing.T) {
	pages := map[string]stream.Page[int]{
		"":    {Collection: []int{1, 2}, NextHref: "https://api.example.com/likes?offset=aaa"},
		"aaa": {Collection: []int{3}, NextHref: "https://api.example.com/likes?offset=bbb"},
		"bbb": {Collection: nil},
	}
	var offsets []string
	fetch := func(_ context.Context, _ int, offset string) (stream.Page[int], error) {
		offsets = append(offsets, offset)
		return pages[offset], nil
	}

	items, err := AllByCursor(context.Background(), fetch, nil, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, items)
	assert.Equal(t, []string{"", "aaa", "bbb"}, offsets)
}

func TestAllByCursor_StopsWithoutCursor(t *testing.T) {
	calls := 0
	fetch := func(_ context.Context, _ int, _ string) (stream.Page[int], error) {
		calls++
		return stream.Page[int]{Collection: []int{1}}, nil
	}

	items, err := AllByCursor(context.Background(), fetch, nil, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, items)
	assert.Equal(t, 1, calls)
}

func TestAllByCursor_StopsOnEmptyFilteredPage(t *testing.T) {
	fetch := func(_ context.Context, _ int, _ string) (stream.Page[int], error) {
		return stream.Page[int]{
			Collection: []int{1, 3},
			NextHref:   "https://api.example.com/likes?offset=next",
		}, nil
	}
	keepEven := func(n int) bool { return n%2 == 0 }

	items, err := AllByCursor(context.Background(), fetch, keepEven, 2)
	require.NoError(t, err)
	assert.Empty(t, items)
}
