// Package main provides the weekly-favorites CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/scbox/soundcloud-weekly/internal/app/collect"
	"github.com/scbox/soundcloud-weekly/internal/app/weekly"
	"github.com/scbox/soundcloud-weekly/internal/domain/stream"
	"github.com/scbox/soundcloud-weekly/internal/infra/config"
	"github.com/scbox/soundcloud-weekly/internal/infra/logger"
	"github.com/scbox/soundcloud-weekly/internal/infra/soundcloud"
)

var (
	app        = kingpin.New("soundcloud-weekly", "Assemble a weekly-favorites playlist from SoundCloud activity")
	configPath = app.Flag("config", "Path to config file").Default("config/weekly.yaml").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: stdout)").String()

	week         = app.Flag("week", "Week offset (0 = week ending at the most recent Sunday)").Default("0").Int()
	firstHalf    = app.Flag("first", "Restrict to the first half of the week").Bool()
	secondHalf   = app.Flag("second", "Restrict to the second half of the week").Bool()
	excludeLiked = app.Flag("exclude-liked", "Drop tracks already liked").Bool()
	releaseType  = app.Flag("release-type", "Restrict by release date").Enum("new", "old")
	dryRun       = app.Flag("dry-run", "Run the pipeline without creating the playlist").Bool()
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	kingpin.MustParse(app.Parse(os.Args[1:]))

	if *firstHalf && *secondHalf {
		app.Fatalf("cannot specify both --first and --second")
	}

	loggerConfig := logger.Config{Output: "stdout", Level: "info"}
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.Output = *logfile
	}
	if err := logger.Init(loggerConfig); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	zlog.Info().Msgf("Loading config from %s", *configPath)
	cfg, err := config.Load(*configPath)
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to load config")
	}

	client, err := soundcloud.New(soundcloud.Config{
		BaseURL:    cfg.SoundCloud.BaseURL,
		OAuthToken: cfg.SoundCloud.OAuthToken,
		ClientID:   cfg.SoundCloud.ClientID,
		AppVersion: cfg.SoundCloud.AppVersion,
	})
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to create SoundCloud client")
	}

	pipeline, err := weekly.NewPipeline(client, weekly.Config{
		UserID:              cfg.SoundCloud.UserID,
		PageSize:            cfg.Weekly.PageSize,
		EmptyPageTolerance:  cfg.Weekly.EmptyPageTolerance,
		CommentConcurrency:  cfg.Weekly.CommentConcurrency,
		RecentPlaylistLimit: cfg.Weekly.RecentPlaylistLimit,
		DurationSettings:    cfg.FilterSettings("duration"),
		DisableDuration:     !cfg.IsFilterEnabled("duration"),
		DisableSeen:         !cfg.IsFilterEnabled("seen"),
	})
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to create pipeline")
	}

	var half collect.Half
	switch {
	case *firstHalf:
		half = collect.HalfFirst
	case *secondHalf:
		half = collect.HalfSecond
	}

	types := make([]stream.ItemType, 0, len(cfg.Weekly.Types))
	for _, t := range cfg.Weekly.Types {
		types = append(types, stream.ItemType(t))
	}

	trackIDs, err := pipeline.Run(context.Background(), weekly.Options{
		Week:         *week,
		Types:        types,
		ExcludeLiked: *excludeLiked,
		Half:         half,
		ReleaseType:  weekly.ReleaseType(*releaseType),
		DryRun:       *dryRun,
	})
	if err != nil {
		zlog.Fatal().Err(err).Msg("Pipeline failed")
	}
	zlog.Info().Msgf("Playlist assembled with %d tracks", len(trackIDs))
}
