// Package playlist provides the Playlist domain entity and the
// playlist-creation request artifact.
package playlist

import (
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/scbox/soundcloud-weekly/internal/domain/track"
)

// MaxTracks is the maximum number of tracks the API accepts in a
// single playlist-creation request.
const MaxTracks = 500

// Sharing values accepted by the API.
const (
	SharingPublic  = "public"
	SharingPrivate = "private"
)

// Playlist represents a SoundCloud playlist.
type Playlist struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Sharing     string        `json:"sharing"`
	TagList     string        `json:"tag_list"`
	CreatedAt   time.Time     `json:"created_at"`
	Permalink   string        `json:"permalink"`
	User        track.User    `json:"user"`
	Tracks      []track.Track `json:"tracks"`
	TrackCount  int           `json:"track_count"`
}

// TrackIDs returns all track ids in the playlist.
func (p *Playlist) TrackIDs() []int64 {
	ids := make([]int64, len(p.Tracks))
	for i, t := range p.Tracks {
		ids[i] = t.ID
	}
	return ids
}

// Create is the payload for creating a playlist.
type Create struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Sharing     string  `json:"sharing"`
	Tracks      []int64 `json:"tracks"`
	TagList     string  `json:"tag_list"`
}

// Validate checks the request before submission. A request without any
// tracks is rejected; a track list beyond MaxTracks is truncated with a
// warning rather than rejected.
func (c *Create) Validate() error {
	if c.Title == "" {
		return errors.New("playlist title is required")
	}
	if len(c.Tracks) == 0 {
		return errors.New("playlist must contain at least one track")
	}
	if len(c.Tracks) > MaxTracks {
		zlog.Warn().Msgf("truncating playlist %q from %d to %d tracks", c.Title, len(c.Tracks), MaxTracks)
		c.Tracks = c.Tracks[:MaxTracks]
	}
	if c.Sharing == "" {
		c.Sharing = SharingPrivate
	}
	return nil
}
