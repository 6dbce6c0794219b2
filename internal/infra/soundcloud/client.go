// Package soundcloud provides a client for the SoundCloud v2 API.
package soundcloud

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-resty/resty/v2"
	zlog "github.com/rs/zerolog/log"

	"github.com/scbox/soundcloud-weekly/internal/domain/playlist"
	"github.com/scbox/soundcloud-weekly/internal/domain/stream"
	"github.com/scbox/soundcloud-weekly/internal/domain/track"
)

// followingsLimit is the single-call limit for the followings-ids
// endpoint; the API accepts the whole list in one page.
const followingsLimit = 5000

// trackBatchSize is the maximum number of ids the tracks endpoint
// resolves per request.
const trackBatchSize = 50

// Client is a SoundCloud v2 API client.
type Client struct {
	http *resty.Client
}

// Config represents SoundCloud client configuration.
type Config struct {
	BaseURL    string
	OAuthToken string
	ClientID   string
	AppVersion string
	Timeout    time.Duration
}

// New creates a new SoundCloud client.
func New(cfg Config) (*Client, error) {
	if cfg.OAuthToken == "" || cfg.ClientID == "" {
		return nil, errors.New("soundcloud oauth token and client id are required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api-v2.soundcloud.com"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	http := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Authorization", "OAuth "+cfg.OAuthToken).
		SetQueryParams(map[string]string{
			"client_id":  cfg.ClientID,
			"app_locale": "en",
		})
	if cfg.AppVersion != "" {
		http.SetQueryParam("app_version", cfg.AppVersion)
	}

	return &Client{http: http}, nil
}

// get issues a GET request and decodes the JSON response into out.
// Transport and deserialization errors are propagated; no retry.
func (c *Client) get(ctx context.Context, path string, params map[string]string, out any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(out).
		Get(path)
	if err != nil {
		return errors.Wrapf(err, "GET %s failed", path)
	}
	if resp.IsError() {
		return errors.Newf("GET %s returned %s", path, resp.Status())
	}
	zlog.Debug().Msgf("GET %s -> %s", resp.Request.URL, resp.Status())
	return nil
}

// pageParams builds the standard pagination query parameters. The
// offset is omitted entirely when empty.
func pageParams(limit int, offset string) map[string]string {
	params := map[string]string{
		"limit":               strconv.Itoa(limit),
		"linked_partitioning": "true",
	}
	if offset != "" {
		params["offset"] = offset
	}
	return params
}

// GetStream retrieves one page of the user's activity stream.
// The stream endpoint uses plain numeric offsets.
func (c *Client) GetStream(ctx context.Context, userURN string, limit, offset int) (stream.Page[stream.Item], error) {
	var page stream.Page[stream.Item]
	params := pageParams(limit, strconv.Itoa(offset))
	params["user_urn"] = userURN
	params["promoted_playlist"] = "true"
	err := c.get(ctx, "/stream", params, &page)
	return page, err
}

// GetUserComments retrieves one page of comments authored by a user.
func (c *Client) GetUserComments(ctx context.Context, userID int64, limit int, offset string) (stream.Page[stream.Comment], error) {
	var page stream.Page[stream.Comment]
	err := c.get(ctx, fmt.Sprintf("/users/%d/comments", userID), pageParams(limit, offset), &page)
	return page, err
}

// GetUserFollowingsIDs retrieves the ids of every account the user follows.
func (c *Client) GetUserFollowingsIDs(ctx context.Context, userID int64) ([]int64, error) {
	var page stream.Page[int64]
	err := c.get(ctx, fmt.Sprintf("/users/%d/followings/ids", userID), pageParams(followingsLimit, ""), &page)
	return page.Collection, err
}

// GetUserLikes retrieves one page of the user's likes.
func (c *Client) GetUserLikes(ctx context.Context, userID int64, limit int, offset string) (stream.Page[stream.Like], error) {
	var page stream.Page[stream.Like]
	err := c.get(ctx, fmt.Sprintf("/users/%d/likes", userID), pageParams(limit, offset), &page)
	return page, err
}

// GetUserPlaylists retrieves the user's most recent playlists.
func (c *Client) GetUserPlaylists(ctx context.Context, userID int64, limit int) (stream.Page[playlist.Playlist], error) {
	var page stream.Page[playlist.Playlist]
	params := pageParams(limit, "")
	params["show_tracks"] = "true"
	err := c.get(ctx, fmt.Sprintf("/users/%d/playlists", userID), params, &page)
	return page, err
}

// GetAllTracks resolves full track records for the given ids, batching
// requests to the limit the tracks endpoint accepts.
func (c *Client) GetAllTracks(ctx context.Context, trackIDs []int64) ([]track.Track, error) {
	tracks := make([]track.Track, 0, len(trackIDs))
	for start := 0; start < len(trackIDs); start += trackBatchSize {
		end := min(start+trackBatchSize, len(trackIDs))
		batch := make([]string, 0, end-start)
		for _, id := range trackIDs[start:end] {
			batch = append(batch, strconv.FormatInt(id, 10))
		}

		var resolved []track.Track
		params := map[string]string{"ids": strings.Join(batch, ",")}
		if err := c.get(ctx, "/tracks", params, &resolved); err != nil {
			return nil, err
		}
		tracks = append(tracks, resolved...)
	}
	return tracks, nil
}

// playlistCreateRequest wraps the creation payload the way the API
// expects it.
type playlistCreateRequest struct {
	Playlist playlist.Create `json:"playlist"`
}

// PostPlaylist creates a playlist. The request must have passed
// Create.Validate before submission.
func (c *Client) PostPlaylist(ctx context.Context, create playlist.Create) (*playlist.Playlist, error) {
	var created playlist.Playlist
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(playlistCreateRequest{Playlist: create}).
		SetResult(&created).
		Post("/playlists")
	if err != nil {
		return nil, errors.Wrap(err, "POST /playlists failed")
	}
	if resp.IsError() {
		return nil, errors.Newf("POST /playlists returned %s", resp.Status())
	}
	return &created, nil
}
