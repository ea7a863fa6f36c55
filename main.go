package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/podopus/podopus/config"
	"github.com/podopus/podopus/internal/download"
	"github.com/podopus/podopus/internal/feed"
	"github.com/podopus/podopus/internal/podcast"
	"github.com/podopus/podopus/internal/selection"
	"github.com/podopus/podopus/internal/storage"
	"github.com/podopus/podopus/internal/transcode"
)

func main() {
	feedURL := flag.String("feed", "", "podcast RSS feed URL")
	pageURL := flag.String("page", "", "podcast web page URL; the feed is discovered from it")
	configPath := flag.String("config", "", "path to config file")
	outputDir := flag.String("output", "", "output directory for episode files (overrides config)")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := loadConfig(*configPath)

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(cfg.LogLevel),
	})))

	if *outputDir != "" {
		cfg.Storage.OutputDir = *outputDir
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	url := cfg.FeedURL
	if *feedURL != "" {
		url = *feedURL
	}
	if *pageURL != "" {
		discovered, err := feed.Discover(*pageURL)
		if err != nil {
			fatal("feed discovery failed", err)
		}
		url = discovered
	}

	podcastFeed, err := feed.Fetch(ctx, url)
	if err != nil {
		fatal("failed to fetch feed", err)
	}

	store, err := storage.NewLocalFileStorage(cfg.Storage.OutputDir)
	if err != nil {
		fatal("failed to set up storage", err)
	}

	engine := download.NewEngine(store, transcode.NewFFmpeg(cfg.Transcode.Bitrate), download.Options{
		Timeout:   time.Duration(cfg.Download.TimeoutMinutes) * time.Minute,
		UserAgent: cfg.Download.UserAgent,
	})

	var archiver podcast.Archiver
	if cfg.Storage.Bucket != "" {
		gcs, err := storage.NewGCSArchiver(ctx, cfg.Storage.Bucket, cfg.Storage.ObjectPrefix, cfg.Storage.CredentialsFile)
		if err != nil {
			fatal("failed to set up archive bucket", err)
		}
		defer gcs.Close()
		archiver = gcs
	}

	processor := podcast.NewProcessor(podcastFeed, engine, archiver)

	fmt.Print(podcast.FormatEpisodeList(podcastFeed))
	runPrompt(ctx, processor, len(podcastFeed.Episodes))
}

// runPrompt reads selection expressions until the user quits or the context
// is cancelled. Invalid expressions re-prompt; they never end the session.
func runPrompt(ctx context.Context, processor *podcast.Processor, total int) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		if ctx.Err() != nil {
			fmt.Println()
			return
		}

		fmt.Printf("Enter selection (1-%d, fN, lN, all, or q to quit): ", total)
		if !scanner.Scan() {
			return
		}

		input := scanner.Text()
		if input == "q" {
			return
		}

		outcomes, err := processor.ProcessSelection(ctx, input)
		if err != nil {
			if errors.Is(err, selection.ErrInvalidSelection) {
				fmt.Println("Error: invalid selection format.")
				continue
			}
			fmt.Printf("Error: %v\n", err)
			continue
		}

		reportOutcomes(outcomes)
		fmt.Println("\n--- Process finished ---")
	}
}

func reportOutcomes(outcomes []download.Outcome) {
	for _, outcome := range outcomes {
		switch outcome.Status {
		case download.StatusSuccess:
			fmt.Printf("  done:    %s\n", outcome.Path)
		case download.StatusSkipped:
			fmt.Printf("  skipped: %s (%s)\n", outcome.Episode, outcome.Reason)
		case download.StatusFailed:
			fmt.Printf("  failed:  %s (%s)\n", outcome.Episode, outcome.Reason)
			slog.Error("Episode acquisition failed", "episode", outcome.Episode, "error", outcome.Err)
		}
	}
}

// loadConfig loads the given config file, or falls back to defaults when no
// path is set and no file exists at the conventional location.
func loadConfig(path string) *config.Config {
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			fatal("failed to load config", err)
		}
		return cfg
	}

	const conventionalPath = "./config/config.yaml"
	if _, err := os.Stat(conventionalPath); err == nil {
		cfg, err := config.Load(conventionalPath)
		if err != nil {
			fatal("failed to load config", err)
		}
		return cfg
	}

	return config.Default()
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
