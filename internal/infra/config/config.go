// Package config provides configuration loading from YAML files.
package config

import (
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	SoundCloud SoundCloudConfig        `yaml:"soundcloud"`
	Weekly     WeeklyConfig            `yaml:"weekly"`
	Filters    map[string]FilterConfig `yaml:"filters"`
}

// SoundCloudConfig represents SoundCloud API configuration.
type SoundCloudConfig struct {
	BaseURL    string `yaml:"base_url" default:"https://api-v2.soundcloud.com"`
	OAuthToken string `yaml:"oauth_token" validate:"required"`
	ClientID   string `yaml:"client_id" validate:"required"`
	AppVersion string `yaml:"app_version" default:"1725276048"`
	UserID     int64  `yaml:"user_id" validate:"required,gt=0"`
}

// WeeklyConfig represents the weekly-favorites pipeline tunables.
type WeeklyConfig struct {
	// PageSize is the limit sent with every paginated listing call.
	PageSize int `yaml:"page_size" default:"200" validate:"gte=1,lte=500"`
	// EmptyPageTolerance is the number of consecutive empty filtered
	// pages the stream traversal tolerates before concluding
	// end-of-stream. Date filtering happens client-side, so an empty
	// filtered page does not necessarily mean there is no more data.
	EmptyPageTolerance int `yaml:"empty_page_tolerance" default:"10" validate:"gte=0"`
	// CommentConcurrency bounds the parallel per-following comment traversals.
	CommentConcurrency int `yaml:"comment_concurrency" default:"4" validate:"gte=1"`
	// RecentPlaylistLimit is how many of the user's own playlists are
	// scanned for already-surfaced tracks.
	RecentPlaylistLimit int `yaml:"recent_playlist_limit" default:"50" validate:"gte=1"`
	// Types selects which stream-item kinds feed the playlist.
	Types []string `yaml:"types" default:"[\"track\",\"track-repost\"]" validate:"min=1,dive,oneof=track track-repost playlist playlist-repost comment"`
}

// FilterConfig represents a track filter's configuration.
type FilterConfig struct {
	Enabled  bool           `yaml:"enabled"`
	Settings map[string]any `yaml:"settings,omitempty"`
}

// Load loads configuration from a YAML file.
// Environment variables take precedence over file values for credentials.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	cfg.overrideFromEnv()

	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("SOUNDCLOUD_OAUTH_TOKEN"); v != "" {
		c.SoundCloud.OAuthToken = v
	}
	if v := os.Getenv("SOUNDCLOUD_CLIENT_ID"); v != "" {
		c.SoundCloud.ClientID = v
	}
	if v := os.Getenv("SOUNDCLOUD_BASE_URL"); v != "" {
		c.SoundCloud.BaseURL = v
	}
	if v := os.Getenv("SOUNDCLOUD_USER_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.SoundCloud.UserID = id
		}
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	return nil
}

// IsFilterEnabled checks if a filter is enabled. Filters not present
// in the config default to enabled; they must be switched off explicitly.
func (c *Config) IsFilterEnabled(name string) bool {
	if f, ok := c.Filters[name]; ok {
		return f.Enabled
	}
	return true
}

// FilterSettings returns the settings map for a filter, or nil.
func (c *Config) FilterSettings(name string) map[string]any {
	if f, ok := c.Filters[name]; ok {
		return f.Settings
	}
	return nil
}
