package filter

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"

	"github.com/scbox/soundcloud-weekly/internal/domain/track"
)

// DurationConfig represents the configuration for DurationFilter.
type DurationConfig struct {
	MaxDurationSec float64 `yaml:"max_duration_sec" mapstructure:"max_duration_sec" default:"600" validate:"gt=0"`
}

// DurationFilter drops tracks at or above the duration ceiling.
// Tracks with no reported duration count as zero and are kept.
type DurationFilter struct {
	config DurationConfig
}

// NewDurationFilter creates a duration filter from a settings map.
func NewDurationFilter(settings map[string]any) (*DurationFilter, error) {
	var config DurationConfig

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &config,
		TagName: "mapstructure",
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create decoder")
	}
	if err := decoder.Decode(settings); err != nil {
		return nil, errors.Wrap(err, "failed to decode settings")
	}

	if err := defaults.Set(&config); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, errors.Wrap(err, "validation failed")
	}

	return &DurationFilter{config: config}, nil
}

func (f *DurationFilter) Name() string {
	return "duration"
}

func (f *DurationFilter) Apply(_ context.Context, tracks []track.Track) ([]track.Track, error) {
	kept := make([]track.Track, 0, len(tracks))
	for _, t := range tracks {
		if t.Duration().Seconds() < f.config.MaxDurationSec {
			kept = append(kept, t)
		}
	}
	return kept, nil
}
