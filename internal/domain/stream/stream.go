// Package stream provides the entities of a user's activity feed:
// stream items (posts and reposts of tracks and playlists), comments
// and likes, together with the paginated collection wrapper the API
// returns them in.
package stream

import (
	"encoding/json"
	"net/url"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/scbox/soundcloud-weekly/internal/domain/playlist"
	"github.com/scbox/soundcloud-weekly/internal/domain/track"
)

// ItemType discriminates the stream-item union. The comment type is
// synthesized locally so that comments flow through the same
// extraction path as feed items; the API never emits it.
type ItemType string

const (
	ItemTypeTrack          ItemType = "track"
	ItemTypeTrackRepost    ItemType = "track-repost"
	ItemTypePlaylist       ItemType = "playlist"
	ItemTypePlaylistRepost ItemType = "playlist-repost"
	ItemTypeComment        ItemType = "comment"
)

// Valid reports whether t is a known item type.
func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeTrack, ItemTypeTrackRepost, ItemTypePlaylist, ItemTypePlaylistRepost, ItemTypeComment:
		return true
	}
	return false
}

// Item is one entry of a user's activity feed, a tagged union over
// track and playlist posts and reposts. Exactly one of Track and
// Playlist is populated, matching Type.
type Item struct {
	Type      ItemType           `json:"type"`
	UUID      uuid.UUID          `json:"uuid"`
	CreatedAt time.Time          `json:"created_at"`
	Caption   *string            `json:"caption"`
	User      track.User         `json:"user"`
	Track     *track.Track       `json:"track,omitempty"`
	Playlist  *playlist.Playlist `json:"playlist,omitempty"`
}

// Validate checks the union invariant: the discriminator must match
// the populated payload field.
func (i *Item) Validate() error {
	switch i.Type {
	case ItemTypeTrack, ItemTypeTrackRepost, ItemTypeComment:
		if i.Track == nil {
			return errors.Newf("stream item %s has type %q but no track payload", i.UUID, i.Type)
		}
	case ItemTypePlaylist, ItemTypePlaylistRepost:
		if i.Playlist == nil {
			return errors.Newf("stream item %s has type %q but no playlist payload", i.UUID, i.Type)
		}
	default:
		return errors.Newf("stream item %s has unknown type %q", i.UUID, i.Type)
	}
	return nil
}

// Comment is a comment left on a track. TrackID is a back-reference;
// Track is the slim referenced track.
type Comment struct {
	ID        int64       `json:"id"`
	Body      string      `json:"body"`
	CreatedAt time.Time   `json:"created_at"`
	TrackID   int64       `json:"track_id"`
	UserID    int64       `json:"user_id"`
	User      track.User  `json:"user"`
	Track     track.Track `json:"track"`
}

// StreamItem lifts the comment into the stream-item union with the
// synthesized comment type, so both can be processed uniformly.
func (c *Comment) StreamItem() Item {
	t := c.Track
	return Item{
		Type:      ItemTypeComment,
		CreatedAt: c.CreatedAt,
		User:      c.User,
		Track:     &t,
	}
}

// LikeKind discriminates track likes from playlist likes.
type LikeKind string

const (
	LikeKindTrack    LikeKind = "track"
	LikeKindPlaylist LikeKind = "playlist"
)

// Like is one entry of a user's likes collection. The API does not
// carry a discriminator, so Kind is derived once at decode time.
type Like struct {
	Kind      LikeKind           `json:"-"`
	CreatedAt time.Time          `json:"created_at"`
	Track     *track.Track       `json:"track"`
	Playlist  *playlist.Playlist `json:"playlist"`
}

// UnmarshalJSON decodes a like and sets the Kind discriminator from
// whichever payload the API populated.
func (l *Like) UnmarshalJSON(data []byte) error {
	type alias Like
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*l = Like(a)
	switch {
	case l.Track != nil:
		l.Kind = LikeKindTrack
	case l.Playlist != nil:
		l.Kind = LikeKindPlaylist
	default:
		return errors.New("like has neither track nor playlist payload")
	}
	return nil
}

// Page is one page of a paginated collection. An absent next_href
// signals end-of-stream.
type Page[T any] struct {
	Collection []T    `json:"collection"`
	NextHref   string `json:"next_href"`
}

// NextOffset parses the offset query parameter out of the page's
// continuation URL. Returns the empty string when there is none.
func (p Page[T]) NextOffset() string {
	if p.NextHref == "" {
		return ""
	}
	u, err := url.Parse(p.NextHref)
	if err != nil {
		return ""
	}
	return u.Query().Get("offset")
}
