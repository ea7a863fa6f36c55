// Package transcode wraps the external encoder that normalizes downloaded
// audio to opus.
package transcode

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
)

// ErrFFmpegNotFound indicates the encoder binary is not installed. It is kept
// distinct from ordinary encode failures because it will recur for every
// episode until the environment is fixed.
var ErrFFmpegNotFound = errors.New("ffmpeg not found")

// ffmpegError wraps FFmpeg command errors with additional context
type ffmpegError struct {
	cmd     string
	output  string
	wrapped error
}

func (e *ffmpegError) Error() string {
	return fmt.Sprintf("ffmpeg error: %s\nCommand: %s\nOutput: %s", e.wrapped, e.cmd, e.output)
}

func (e *ffmpegError) Unwrap() error {
	return e.wrapped
}

// newFFmpegError creates a new ffmpegError with truncated command output
func newFFmpegError(cmd *exec.Cmd, output []byte, err error) error {
	cmdStr := cmd.String()
	if len(cmdStr) > 200 {
		cmdStr = cmdStr[:200] + "..."
	}
	return &ffmpegError{
		cmd:     cmdStr,
		output:  string(output),
		wrapped: err,
	}
}

type ffmpeg struct {
	binary  string
	bitrate string
}

// NewFFmpeg returns a Transcoder backed by the ffmpeg binary on PATH,
// encoding to libopus at the given bitrate (e.g. "64k").
func NewFFmpeg(bitrate string) Transcoder {
	return &ffmpeg{binary: "ffmpeg", bitrate: bitrate}
}

// Transcode re-encodes inputPath into an opus file at outputPath. Encoder
// diagnostics are suppressed unless the command fails.
func (f *ffmpeg) Transcode(ctx context.Context, inputPath, outputPath string) error {
	slog.Debug("Transcoding to opus", "input", inputPath, "output", outputPath, "bitrate", f.bitrate)

	cmd := exec.CommandContext(ctx, f.binary,
		"-y",
		"-i", inputPath,
		"-c:a", "libopus",
		"-b:a", f.bitrate,
		outputPath,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		// ffmpeg may have created a partial output before dying.
		if removeErr := os.Remove(outputPath); removeErr != nil && !os.IsNotExist(removeErr) {
			slog.Warn("Failed to remove partial transcode output", "path", outputPath, "error", removeErr)
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		var execErr *exec.Error
		if errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound) {
			return fmt.Errorf("%w: install ffmpeg to enable transcoding", ErrFFmpegNotFound)
		}

		return newFFmpegError(cmd, output, err)
	}

	return nil
}
