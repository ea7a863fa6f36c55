package transcode

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFFmpeg(t *testing.T) {
	tc := NewFFmpeg("64k")
	assert.NotNil(t, tc)
	assert.Equal(t, "ffmpeg", tc.(*ffmpeg).binary)
	assert.Equal(t, "64k", tc.(*ffmpeg).bitrate)
}

func TestTranscodeMissingBinary(t *testing.T) {
	tempDir := t.TempDir()
	input := filepath.Join(tempDir, "in.mp3")
	output := filepath.Join(tempDir, "out.opus")
	assert.NoError(t, os.WriteFile(input, []byte("not really audio"), 0644))

	tc := &ffmpeg{binary: "definitely-not-a-real-encoder-binary", bitrate: "64k"}
	err := tc.Transcode(context.Background(), input, output)

	assert.ErrorIs(t, err, ErrFFmpegNotFound)
	assert.NoFileExists(t, output)
}

func TestTranscodeCancelledContext(t *testing.T) {
	tempDir := t.TempDir()
	input := filepath.Join(tempDir, "in.mp3")
	output := filepath.Join(tempDir, "out.opus")
	assert.NoError(t, os.WriteFile(input, []byte("not really audio"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tc := &ffmpeg{binary: "definitely-not-a-real-encoder-binary", bitrate: "64k"}
	err := tc.Transcode(ctx, input, output)

	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, output)
}

func TestFFmpegErrorFormatting(t *testing.T) {
	cmd := exec.Command("ffmpeg", "-y", "-i", "in.mp3", "out.opus")
	wrapped := fmt.Errorf("exit status 1")
	err := newFFmpegError(cmd, []byte("some diagnostic output"), wrapped)

	assert.Contains(t, err.Error(), "ffmpeg error")
	assert.Contains(t, err.Error(), "some diagnostic output")
	assert.Equal(t, wrapped, errors.Unwrap(err))
}
