package transcode

import "context"

// Transcoder converts a downloaded audio file into the target opus file.
// Implementations guarantee that on error the output path holds no partial
// file.
type Transcoder interface {
	Transcode(ctx context.Context, inputPath, outputPath string) error
}
