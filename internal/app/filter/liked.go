package filter

import (
	"context"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/scbox/soundcloud-weekly/internal/domain/track"
)

// LikesSource yields the user's complete all-time liked tracks.
type LikesSource interface {
	AllLikes(ctx context.Context, userID int64) ([]track.Track, error)
}

// LikedFilter drops tracks the user has already liked. If the likes
// traversal fails partway, the whole run aborts; no partial filtering
// is applied.
type LikedFilter struct {
	source LikesSource
	userID int64
}

// NewLikedFilter creates a liked filter.
func NewLikedFilter(source LikesSource, userID int64) *LikedFilter {
	return &LikedFilter{source: source, userID: userID}
}

func (f *LikedFilter) Name() string {
	return "liked"
}

func (f *LikedFilter) Apply(ctx context.Context, tracks []track.Track) ([]track.Track, error) {
	liked, err := f.source.AllLikes(ctx, f.userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch liked tracks")
	}
	zlog.Info().Msgf("found %d liked tracks", len(liked))

	likedIDs := make(map[int64]struct{}, len(liked))
	for _, t := range liked {
		likedIDs[t.ID] = struct{}{}
	}

	kept := make([]track.Track, 0, len(tracks))
	for _, t := range tracks {
		if _, ok := likedIDs[t.ID]; !ok {
			kept = append(kept, t)
		}
	}
	return kept, nil
}
