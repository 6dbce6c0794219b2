package collect

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/scbox/soundcloud-weekly/internal/domain/stream"
	"github.com/scbox/soundcloud-weekly/internal/domain/track"
)

// Client is the subset of the SoundCloud API surface the collectors need.
type Client interface {
	GetStream(ctx context.Context, userURN string, limit, offset int) (stream.Page[stream.Item], error)
	GetUserComments(ctx context.Context, userID int64, limit int, offset string) (stream.Page[stream.Comment], error)
	GetUserFollowingsIDs(ctx context.Context, userID int64) ([]int64, error)
	GetUserLikes(ctx context.Context, userID int64, limit int, offset string) (stream.Page[stream.Like], error)
}

// Config represents collector tunables.
type Config struct {
	PageSize           int `default:"200"`
	EmptyPageTolerance int `default:"10"`
	CommentConcurrency int `default:"4"`
}

// Collector gathers activity items from the remote API.
type Collector struct {
	client Client
	cfg    Config
}

// NewCollector creates a Collector, filling zero config fields with defaults.
func NewCollector(client Client, cfg Config) (*Collector, error) {
	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set collector defaults")
	}
	return &Collector{client: client, cfg: cfg}, nil
}

// UserURN builds the soundcloud user URN for the stream endpoint.
func UserURN(userID int64) string {
	return fmt.Sprintf("soundcloud:users:%d", userID)
}

// Reposts drains the user's activity stream, keeping items created
// strictly inside the window. Items authored by the user are dropped
// when excludeOwn is set.
func (c *Collector) Reposts(ctx context.Context, userID int64, w Window, excludeOwn bool) ([]stream.Item, error) {
	keep := func(it stream.Item) bool {
		if !w.Contains(it.CreatedAt) {
			return false
		}
		return !excludeOwn || it.User.ID != userID
	}
	fetch := func(ctx context.Context, limit, offset int) (stream.Page[stream.Item], error) {
		return c.client.GetStream(ctx, UserURN(userID), limit, offset)
	}
	items, err := AllByOffset(ctx, fetch, keep, c.cfg.PageSize, c.cfg.EmptyPageTolerance)
	if err != nil {
		return nil, errors.Wrap(err, "failed to collect stream reposts")
	}
	return items, nil
}

// Comments collects comments left by every account the user follows,
// lifted into stream items. The per-following traversals run with
// bounded parallelism; each task accumulates into its own slot and the
// results are merged after the join.
func (c *Collector) Comments(ctx context.Context, userID int64, w Window, excludeOwn bool) ([]stream.Item, error) {
	followings, err := c.client.GetUserFollowingsIDs(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch followings")
	}
	zlog.Info().Msgf("fetching comments for %d followed users", len(followings))

	keep := func(cm stream.Comment) bool {
		if !w.Contains(cm.CreatedAt) {
			return false
		}
		return !excludeOwn || cm.User.ID != userID
	}

	results := make([][]stream.Comment, len(followings))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.CommentConcurrency)
	for i, followingID := range followings {
		i, followingID := i, followingID
		g.Go(func() error {
			fetch := func(ctx context.Context, limit int, offset string) (stream.Page[stream.Comment], error) {
				return c.client.GetUserComments(ctx, followingID, limit, offset)
			}
			comments, err := AllByCursor(gctx, fetch, keep, c.cfg.PageSize)
			if err != nil {
				return errors.Wrapf(err, "failed to collect comments of user %d", followingID)
			}
			results[i] = comments
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var items []stream.Item
	for _, comments := range results {
		for _, cm := range comments {
			items = append(items, cm.StreamItem())
		}
	}
	return items, nil
}

// AllLikes drains the user's complete all-time likes and returns the
// liked tracks. Playlist likes are skipped.
func (c *Collector) AllLikes(ctx context.Context, userID int64) ([]track.Track, error) {
	keep := func(l stream.Like) bool {
		return l.Kind == stream.LikeKindTrack
	}
	fetch := func(ctx context.Context, limit int, offset string) (stream.Page[stream.Like], error) {
		return c.client.GetUserLikes(ctx, userID, limit, offset)
	}
	likes, err := AllByCursor(ctx, fetch, keep, c.cfg.PageSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to collect likes")
	}

	tracks := make([]track.Track, 0, len(likes))
	for _, l := range likes {
		tracks = append(tracks, *l.Track)
	}
	return tracks, nil
}

// TracksInWindow gathers tracks of the requested item types from all
// sources inside the window. Duplicates are preserved; deduplication
// happens at ranking time.
func (c *Collector) TracksInWindow(ctx context.Context, userID int64, w Window, types []stream.ItemType) ([]track.Track, error) {
	var tracks []track.Track

	if wantsStream(types) {
		items, err := c.Reposts(ctx, userID, w, true)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, ExtractTracks(items, types)...)
	}

	if wantsType(types, stream.ItemTypeComment) {
		items, err := c.Comments(ctx, userID, w, true)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, ExtractTracks(items, types)...)
	}

	zlog.Info().Msgf("found %d tracks in %s", len(tracks), w)
	return tracks, nil
}

// ExtractTracks pulls tracks out of stream items of the requested
// types. Playlist items contribute every track inside the playlist.
func ExtractTracks(items []stream.Item, types []stream.ItemType) []track.Track {
	wanted := make(map[stream.ItemType]bool, len(types))
	for _, t := range types {
		wanted[t] = true
	}

	var tracks []track.Track
	for _, item := range items {
		if !wanted[item.Type] {
			continue
		}
		switch item.Type {
		case stream.ItemTypeTrack, stream.ItemTypeTrackRepost, stream.ItemTypeComment:
			if item.Track != nil {
				tracks = append(tracks, *item.Track)
			}
		case stream.ItemTypePlaylist, stream.ItemTypePlaylistRepost:
			if item.Playlist != nil {
				tracks = append(tracks, item.Playlist.Tracks...)
			}
		}
	}
	return tracks
}

func wantsStream(types []stream.ItemType) bool {
	for _, t := range types {
		switch t {
		case stream.ItemTypeTrack, stream.ItemTypeTrackRepost, stream.ItemTypePlaylist, stream.ItemTypePlaylistRepost:
			return true
		}
	}
	return false
}

func wantsType(types []stream.ItemType, want stream.ItemType) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}
