// Package weekly assembles the weekly-favorites playlist: it computes
// the week's time window, collects activity from all sources, filters,
// ranks and submits the result.
package weekly

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	zlog "github.com/rs/zerolog/log"

	"github.com/scbox/soundcloud-weekly/internal/app/collect"
	"github.com/scbox/soundcloud-weekly/internal/app/filter"
	"github.com/scbox/soundcloud-weekly/internal/domain/playlist"
	"github.com/scbox/soundcloud-weekly/internal/domain/stream"
	"github.com/scbox/soundcloud-weekly/internal/domain/track"
)

// Client is the full API surface the pipeline consumes.
type Client interface {
	collect.Client
	filter.PlaylistClient
	GetAllTracks(ctx context.Context, trackIDs []int64) ([]track.Track, error)
	PostPlaylist(ctx context.Context, create playlist.Create) (*playlist.Playlist, error)
}

// ReleaseType selects the optional release-date variant of the playlist.
type ReleaseType string

const (
	ReleaseTypeNone ReleaseType = ""
	// ReleaseTypeNew keeps only tracks released inside the window,
	// ordered by uploader follower count.
	ReleaseTypeNew ReleaseType = "new"
	// ReleaseTypeOld keeps only tracks released before the window,
	// ordered by play count.
	ReleaseTypeOld ReleaseType = "old"
)

func (r ReleaseType) titlePrefix() string {
	switch r {
	case ReleaseTypeNew:
		return "New "
	case ReleaseTypeOld:
		return "Old "
	}
	return ""
}

// Config represents pipeline configuration.
type Config struct {
	UserID              int64
	PageSize            int `default:"200"`
	EmptyPageTolerance  int `default:"10"`
	CommentConcurrency  int `default:"4"`
	RecentPlaylistLimit int `default:"50"`
	// DurationSettings configures the duration filter (max_duration_sec).
	DurationSettings map[string]any
	// DisableDuration and DisableSeen switch off the always-on filters.
	DisableDuration bool
	DisableSeen     bool
	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

// Options represents the per-run parameters.
type Options struct {
	// Week shifts the window: 0 means the week ending at the most
	// recent Sunday, -1 the week before, and so on.
	Week int
	// Types selects which stream-item kinds contribute tracks.
	Types []stream.ItemType
	// ExcludeLiked additionally drops all-time-liked tracks.
	ExcludeLiked bool
	// Half narrows the window to its first or second half.
	Half collect.Half
	// ReleaseType selects the new/old release variant.
	ReleaseType ReleaseType
	// DryRun runs the full pipeline without posting the playlist.
	DryRun bool
}

// Pipeline is the weekly-favorites assembler.
type Pipeline struct {
	client    Client
	collector *collect.Collector
	cfg       Config
	now       func() time.Time
}

// NewPipeline creates a Pipeline, filling zero config fields with defaults.
func NewPipeline(client Client, cfg Config) (*Pipeline, error) {
	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set pipeline defaults")
	}
	if cfg.UserID == 0 {
		return nil, errors.New("user id is required")
	}

	collector, err := collect.NewCollector(client, collect.Config{
		PageSize:           cfg.PageSize,
		EmptyPageTolerance: cfg.EmptyPageTolerance,
		CommentConcurrency: cfg.CommentConcurrency,
	})
	if err != nil {
		return nil, err
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Pipeline{client: client, collector: collector, cfg: cfg, now: now}, nil
}

// Run executes the pipeline and returns the final ordered track ids.
func (p *Pipeline) Run(ctx context.Context, opts Options) ([]int64, error) {
	if len(opts.Types) == 0 {
		opts.Types = []stream.ItemType{stream.ItemTypeTrack, stream.ItemTypeTrackRepost}
	}
	for _, t := range opts.Types {
		if !t.Valid() {
			return nil, errors.Newf("unknown item type %q", t)
		}
	}

	now := p.now()
	window := collect.Window{
		Start: ScheduledTime(now, time.Sunday, opts.Week-1),
		End:   ScheduledTime(now, time.Sunday, opts.Week),
	}.Bisect(opts.Half)
	zlog.Info().Msgf("collecting favorites for %s", window)

	collected, err := p.collector.TracksInWindow(ctx, p.cfg.UserID, window, opts.Types)
	if err != nil {
		return nil, err
	}

	chain, err := p.buildChain(opts)
	if err != nil {
		return nil, err
	}
	filtered, err := chain.Execute(ctx, collected)
	if err != nil {
		return nil, err
	}

	// Frequencies count cross-source repetition before deduplication.
	freq := Frequencies(filtered)
	ids := track.UniqueIDs(filtered)
	zlog.Info().Msgf("found %d unique tracks after filtering", len(ids))

	hydrated, err := p.client.GetAllTracks(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve full tracks")
	}

	var ordered []int64
	switch opts.ReleaseType {
	case ReleaseTypeNew:
		fresh := FilterByDate(hydrated, &window.Start, &window.End)
		SortByFollowerCount(fresh)
		ordered = track.UniqueIDs(fresh)
	case ReleaseTypeOld:
		catalog := FilterByDate(hydrated, nil, &window.Start)
		SortByPlayCount(catalog)
		ordered = track.UniqueIDs(catalog)
	default:
		ordered = RankTracks(hydrated, freq)
	}

	create := p.buildCreate(window, opts, ordered)
	if err := create.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid playlist request")
	}

	zlog.Info().Msgf("creating playlist %q with %d tracks", create.Title, len(create.Tracks))
	if opts.DryRun {
		zlog.Info().Msg("dry run, not creating playlist")
		return create.Tracks, nil
	}
	if _, err := p.client.PostPlaylist(ctx, create); err != nil {
		return nil, errors.Wrap(err, "failed to create playlist")
	}
	return create.Tracks, nil
}

// buildChain assembles the filter stages for one run.
func (p *Pipeline) buildChain(opts Options) (*filter.Chain, error) {
	chain := filter.NewChain()
	if !p.cfg.DisableDuration {
		durationFilter, err := filter.NewDurationFilter(p.cfg.DurationSettings)
		if err != nil {
			return nil, err
		}
		chain.Add(durationFilter)
	}
	if !p.cfg.DisableSeen {
		chain.Add(filter.NewSeenFilter(p.client, p.cfg.UserID, p.cfg.RecentPlaylistLimit))
	}
	if opts.ExcludeLiked {
		chain.Add(filter.NewLikedFilter(p.collector, p.cfg.UserID))
	}
	return chain, nil
}

// buildCreate assembles the playlist title, description and tags from
// the window's calendar metadata.
func (p *Pipeline) buildCreate(window collect.Window, opts Options, trackIDs []int64) playlist.Create {
	month := window.Start.Format("Jan")
	weekOfMonth := WeekOfMonth(window.Start)
	_, calendarWeek := window.Start.ISOWeek()

	var halfPrefix, halfSuffix string
	switch opts.Half {
	case collect.HalfFirst:
		halfPrefix, halfSuffix = "First half of ", "/1"
	case collect.HalfSecond:
		halfPrefix, halfSuffix = "Second half of ", "/2"
	}

	monthTag := fmt.Sprintf("%s/%d", strings.ToUpper(month), weekOfMonth)
	return playlist.Create{
		Title: fmt.Sprintf("%sWeekly Favorites %s%s", opts.ReleaseType.titlePrefix(), monthTag, halfSuffix),
		Description: fmt.Sprintf(
			"Autogenerated set of liked and reposted tracks from my favorite artists.\n"+
				"%sWeek %d of %s (%s, CW %d)",
			halfPrefix, weekOfMonth, month, window, calendarWeek,
		),
		Sharing: playlist.SharingPrivate,
		Tracks:  trackIDs,
		TagList: fmt.Sprintf("soundcloud-archive,weekly-favorites,%s,CW%d", monthTag, calendarWeek),
	}
}
