package playlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scbox/soundcloud-weekly/internal/domain/track"
)

func TestPlaylist_TrackIDs(t *testing.T) {
	p := Playlist{Tracks: []track.Track{{ID: 1}, {ID: 2}, {ID: 3}}}
	assert.Equal(t, []int64{1, 2, 3}, p.TrackIDs())

	empty := Playlist{}
	assert.Empty(t, empty.TrackIDs())
}

func TestCreate_Validate(t *testing.T) {
	makeIDs := func(n int) []int64 {
		ids := make([]int64, n)
		for i := range ids {
			ids[i] = int64(i + 1)
		}
		return ids
	}

	t.Run("empty track list is rejected", func(t *testing.T) {
		c := Create{Title: "Weekly Favorites SEP/1"}
		assert.Error(t, c.Validate())
	})

	t.Run("missing title is rejected", func(t *testing.T) {
		c := Create{Tracks: []int64{1}}
		assert.Error(t, c.Validate())
	})

	t.Run("list beyond the cap is truncated", func(t *testing.T) {
		c := Create{Title: "Weekly Favorites SEP/1", Tracks: makeIDs(501)}
		require.NoError(t, c.Validate())
		assert.Len(t, c.Tracks, MaxTracks)
		assert.Equal(t, makeIDs(500), c.Tracks)
	})

	t.Run("list exactly at the cap is untouched", func(t *testing.T) {
		c := Create{Title: "Weekly Favorites SEP/1", Tracks: makeIDs(500)}
		require.NoError(t, c.Validate())
		assert.Len(t, c.Tracks, 500)
	})

	t.Run("sharing defaults to private", func(t *testing.T) {
		c := Create{Title: "Weekly Favorites SEP/1", Tracks: []int64{1}}
		require.NoError(t, c.Validate())
		assert.Equal(t, SharingPrivate, c.Sharing)
	})

	t.Run("explicit sharing is preserved", func(t *testing.T) {
		c := Create{Title: "Weekly Favorites SEP/1", Tracks: []int64{1}, Sharing: SharingPublic}
		require.NoError(t, c.Validate())
		assert.Equal(t, SharingPublic, c.Sharing)
	})
}
