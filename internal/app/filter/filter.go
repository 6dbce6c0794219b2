// Package filter provides the composable track-filtering stages of the
// weekly pipeline.
package filter

import (
	"context"

	zlog "github.com/rs/zerolog/log"

	"github.com/scbox/soundcloud-weekly/internal/domain/track"
)

// Filter is a single list-transforming stage. Filters never error on
// empty input and never reorder the tracks they keep.
type Filter interface {
	// Name returns the filter name (used in config).
	Name() string
	// Apply returns the tracks that survive the filter.
	Apply(ctx context.Context, tracks []track.Track) ([]track.Track, error)
}

// Chain executes filters in sequence.
type Chain struct {
	filters []Filter
}

// NewChain creates a new filter chain.
func NewChain(filters ...Filter) *Chain {
	return &Chain{filters: filters}
}

// Add adds a filter to the chain.
func (c *Chain) Add(f Filter) {
	c.filters = append(c.filters, f)
}

// Execute runs all filters in sequence, logging before/after counts
// per stage. The first failing filter aborts the chain.
func (c *Chain) Execute(ctx context.Context, tracks []track.Track) ([]track.Track, error) {
	for _, f := range c.filters {
		before := len(tracks)
		filtered, err := f.Apply(ctx, tracks)
		if err != nil {
			return nil, err
		}
		zlog.Info().Msgf("filter %s: %d -> %d tracks", f.Name(), before, len(filtered))
		tracks = filtered
	}
	return tracks, nil
}

// Filters returns all filters in the chain.
func (c *Chain) Filters() []Filter {
	return c.filters
}
