// Package download acquires selected episodes: it streams the resolved audio
// source to disk and normalizes non-opus sources through the transcoder.
package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"

	"github.com/podopus/podopus/internal/domain"
	"github.com/podopus/podopus/internal/resolver"
	"github.com/podopus/podopus/internal/sanitize"
	"github.com/podopus/podopus/internal/storage"
	"github.com/podopus/podopus/internal/transcode"
)

const (
	// targetExtension is the extension of every finished episode file.
	targetExtension = "opus"

	// tempExtension marks the intermediate download of a source that still
	// needs transcoding. Distinct from the final name so a crash can never
	// corrupt a previously completed file.
	tempExtension = "tmp.mp3"

	defaultTimeout = 30 * time.Minute
)

// Status classifies the result of one acquisition attempt.
type Status int

const (
	StatusSuccess Status = iota
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Outcome is the per-episode result of one acquisition attempt.
type Outcome struct {
	Episode string
	Status  Status
	Path    string
	Reason  string
	Err     error
}

// Options tunes the engine. Zero values fall back to sane defaults.
type Options struct {
	Timeout        time.Duration
	UserAgent      string
	ProgressOutput io.Writer
}

// Engine downloads one episode at a time. It is not safe for concurrent use;
// the pipeline is deliberately sequential.
type Engine struct {
	client      *http.Client
	store       storage.Storage
	transcoder  transcode.Transcoder
	userAgent   string
	progressOut io.Writer
}

// NewEngine creates an acquisition engine writing through store and
// normalizing non-opus sources with transcoder.
func NewEngine(store storage.Storage, transcoder transcode.Transcoder, opts Options) *Engine {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	progressOut := opts.ProgressOutput
	if progressOut == nil {
		progressOut = ansi.NewAnsiStdout()
	}

	return &Engine{
		client:      &http.Client{Timeout: timeout},
		store:       store,
		transcoder:  transcoder,
		userAgent:   opts.UserAgent,
		progressOut: progressOut,
	}
}

// Acquire resolves, downloads and (when needed) transcodes a single episode.
// On every path except success any partially written file is removed before
// returning, so no corrupt artifact survives a failure.
func (e *Engine) Acquire(ctx context.Context, episode domain.Episode) Outcome {
	src, ok := resolver.Resolve(episode)
	if !ok {
		slog.Warn("No supported audio URL found", "episode", episode.Title)
		return Outcome{Episode: episode.Title, Status: StatusSkipped, Reason: "no supported audio URL found"}
	}

	baseName := sanitize.BaseName(episode.Title)
	finalPath := e.store.EpisodePath(baseName, targetExtension)

	// Presence of the final file is the only durable record of completion;
	// repeated runs over the same selection are idempotent.
	if e.store.FileExists(finalPath) {
		slog.Info("File already exists, skipping", "path", finalPath)
		return Outcome{Episode: episode.Title, Status: StatusSkipped, Path: finalPath, Reason: "already downloaded"}
	}

	workingPath := finalPath
	if !src.Native {
		workingPath = e.store.EpisodePath(baseName, tempExtension)
	}

	if err := e.stream(ctx, src.URL, workingPath, episode.Title); err != nil {
		e.discard(workingPath)
		return Outcome{
			Episode: episode.Title,
			Status:  StatusFailed,
			Reason:  "download failed",
			Err:     fmt.Errorf("download of %s failed: %w", episode.Title, err),
		}
	}

	if src.Native {
		slog.Info("Successfully downloaded", "path", finalPath)
		return Outcome{Episode: episode.Title, Status: StatusSuccess, Path: finalPath}
	}

	err := e.transcoder.Transcode(ctx, workingPath, finalPath)
	e.discard(workingPath)
	if err != nil {
		reason := "transcode failed"
		if errors.Is(err, transcode.ErrFFmpegNotFound) {
			reason = "transcoder unavailable"
		}
		return Outcome{
			Episode: episode.Title,
			Status:  StatusFailed,
			Reason:  reason,
			Err:     fmt.Errorf("transcode of %s failed: %w", episode.Title, err),
		}
	}

	slog.Info("Successfully transcoded", "path", finalPath)
	return Outcome{Episode: episode.Title, Status: StatusSuccess, Path: finalPath}
}

// stream downloads url into path, reporting byte progress. The caller owns
// cleanup of path on error.
func (e *Engine) stream(ctx context.Context, url, path, title string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if e.userAgent != "" {
		req.Header.Set("User-Agent", e.userAgent)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("download failed with status: %d", resp.StatusCode)
	}

	out, err := e.store.GetWriter(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	bar := progressbar.NewOptions64(
		resp.ContentLength,
		progressbar.OptionSetWriter(e.progressOut),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetTheme(progressbar.ThemeASCII),
		progressbar.OptionShowBytes(true),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetDescription(fmt.Sprintf("Downloading %s", title)),
	)

	if _, err := io.Copy(io.MultiWriter(out, bar), resp.Body); err != nil {
		out.Close()
		return fmt.Errorf("failed to save file: %w", err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to finalize file: %w", err)
	}

	return nil
}

// discard removes a working file left behind by a failed or finished attempt.
func (e *Engine) discard(path string) {
	if err := e.store.Remove(path); err != nil {
		slog.Warn("Failed to remove working file", "path", path, "error", err)
	}
}
