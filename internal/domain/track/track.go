// Package track provides the Track domain entity.
package track

import "time"

// User represents a SoundCloud user in the slim form returned
// alongside tracks, stream items and comments.
type User struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	Permalink      string `json:"permalink"`
	PermalinkURL   string `json:"permalink_url"`
	FollowersCount int64  `json:"followers_count"`
	Verified       bool   `json:"verified"`
}

// PublisherMetadata carries label-provided metadata. The artist field,
// when present, takes precedence over the uploader's username.
type PublisherMetadata struct {
	Artist         string `json:"artist"`
	ISRC           string `json:"isrc"`
	ContainsMusic  bool   `json:"contains_music"`
	Explicit       bool   `json:"explicit"`
	WriterComposer string `json:"writer_composer"`
}

// Track represents a SoundCloud track.
// Contains only information retrieved from the SoundCloud v2 API.
type Track struct {
	ID                int64              `json:"id"`
	Title             string             `json:"title"`
	Genre             string             `json:"genre"`
	DurationMS        int64              `json:"duration"`
	FullDurationMS    int64              `json:"full_duration"`
	PlaybackCount     *int64             `json:"playback_count"`
	LikesCount        *int64             `json:"likes_count"`
	RepostsCount      int64              `json:"reposts_count"`
	CreatedAt         time.Time          `json:"created_at"`
	Permalink         string             `json:"permalink"`
	PermalinkURL      string             `json:"permalink_url"`
	TagList           string             `json:"tag_list"`
	User              User               `json:"user"`
	PublisherMetadata *PublisherMetadata `json:"publisher_metadata"`
}

// Duration returns the track duration. Tracks with no duration
// reported by the API yield zero.
func (t *Track) Duration() time.Duration {
	return time.Duration(t.DurationMS) * time.Millisecond
}

// Plays returns the playback count, treating an absent count as zero.
func (t *Track) Plays() int64 {
	if t.PlaybackCount == nil {
		return 0
	}
	return *t.PlaybackCount
}

// Artist returns the publisher-declared artist if present,
// otherwise the uploader's username.
func (t *Track) Artist() string {
	if t.PublisherMetadata != nil && t.PublisherMetadata.Artist != "" {
		return t.PublisherMetadata.Artist
	}
	return t.User.Username
}

// UniqueIDs returns the distinct track ids in first-seen order.
func UniqueIDs(tracks []Track) []int64 {
	seen := make(map[int64]struct{}, len(tracks))
	ids := make([]int64, 0, len(tracks))
	for _, t := range tracks {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		ids = append(ids, t.ID)
	}
	return ids
}
