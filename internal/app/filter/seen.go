package filter

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/scbox/soundcloud-weekly/internal/domain/playlist"
	"github.com/scbox/soundcloud-weekly/internal/domain/stream"
	"github.com/scbox/soundcloud-weekly/internal/domain/track"
)

// weeklyTitleMarker identifies previously generated playlists by
// case-insensitive substring match on their title.
const weeklyTitleMarker = "weekly favorites"

// PlaylistClient fetches the user's own playlists.
type PlaylistClient interface {
	GetUserPlaylists(ctx context.Context, userID int64, limit int) (stream.Page[playlist.Playlist], error)
}

// SeenFilter drops tracks that already appear in one of the user's
// recent weekly-favorites playlists, so consecutive runs do not
// resurface the same tracks.
type SeenFilter struct {
	client PlaylistClient
	userID int64
	limit  int
}

// NewSeenFilter creates a seen filter scanning the user's limit most
// recent playlists.
func NewSeenFilter(client PlaylistClient, userID int64, limit int) *SeenFilter {
	return &SeenFilter{client: client, userID: userID, limit: limit}
}

func (f *SeenFilter) Name() string {
	return "seen"
}

func (f *SeenFilter) Apply(ctx context.Context, tracks []track.Track) ([]track.Track, error) {
	seen, err := f.seenTrackIDs(ctx)
	if err != nil {
		return nil, err
	}
	zlog.Info().Msgf("found %d tracks in recent weekly playlists", len(seen))

	kept := make([]track.Track, 0, len(tracks))
	for _, t := range tracks {
		if _, ok := seen[t.ID]; !ok {
			kept = append(kept, t)
		}
	}
	return kept, nil
}

// seenTrackIDs collects every track id appearing in a recent playlist
// whose title marks it as a weekly-favorites run.
func (f *SeenFilter) seenTrackIDs(ctx context.Context) (map[int64]struct{}, error) {
	page, err := f.client.GetUserPlaylists(ctx, f.userID, f.limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch recent playlists")
	}

	seen := make(map[int64]struct{})
	for _, pl := range page.Collection {
		if !strings.Contains(strings.ToLower(pl.Title), weeklyTitleMarker) {
			continue
		}
		for _, id := range pl.TrackIDs() {
			seen[id] = struct{}{}
		}
	}
	return seen, nil
}
