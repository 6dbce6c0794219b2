package filter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scbox/soundcloud-weekly/internal/domain/playlist"
	"github.com/scbox/soundcloud-weekly/internal/domain/stream"
	"github.com/scbox/soundcloud-weekly/internal/domain/track"
)

type fakePlaylistClient struct {
	playlists []playlist.Playlist
	gotLimit  int
}

func (c *fakePlaylistClient) GetUserPlaylists(_ context.Context, _ int64, limit int) (stream.Page[playlist.Playlist], error) {
	c.gotLimit = limit
	return stream.Page[playlist.Playlist]{Collection: c.playlists}, nil
}

func TestSeenFilter_Apply(t *testing.T) {
	client := &fakePlaylistClient{
		playlists: []playlist.Playlist{
			{
				Title:  "Weekly Favorites AUG/3",
				Tracks: []track.Track{{ID: 1}, {ID: 2}},
			},
			{
				// Matching is a case-insensitive substring check.
				Title:  "second half of WEEKLY FAVORITES AUG/4/2",
				Tracks: []track.Track{{ID: 3}},
			},
			{
				// Unrelated playlists do not contribute seen tracks.
				Title:  "DJ Set August",
				Tracks: []track.Track{{ID: 4}},
			},
		},
	}
	f := NewSeenFilter(client, 42, 50)

	tracks := []track.Track{{ID: 1}, {ID: 3}, {ID: 4}, {ID: 5}}
	kept, err := f.Apply(context.Background(), tracks)
	require.NoError(t, err)

	require.Len(t, kept, 2)
	assert.Equal(t, int64(4), kept[0].ID)
	assert.Equal(t, int64(5), kept[1].ID)
	assert.Equal(t, 50, client.gotLimit)
}

func TestSeenFilter_EmptyInput(t *testing.T) {
	f := NewSeenFilter(&fakePlaylistClient{}, 42, 50)

	kept, err := f.Apply(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, kept)
}
