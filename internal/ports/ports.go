// Package ports defines the seams between the pipeline and its external
// collaborators. Adapters live under ports/adapters; tests swap in fakes.
package ports

import (
	"context"

	"clipcutter/internal/types"
)

// Downloader fetches source material for a video URL.
type Downloader interface {
	// DownloadVideo fetches the video into destDir and returns the file path.
	DownloadVideo(ctx context.Context, url, destDir string) (string, error)
	// DownloadCaptions fetches the auto-generated caption track into destDir
	// and returns the VTT path, or "" when the video has no captions.
	DownloadCaptions(ctx context.Context, url, destDir string) (string, error)
}

// ClipFinder asks a language model to locate viral sub-segments in a
// timestamped transcript. Implementations must return boundary-validated
// clips only.
type ClipFinder interface {
	FindClips(ctx context.Context, transcript string) ([]types.Clip, error)
}

// SEOWriter researches a platform-tuned caption and hashtags for one clip.
type SEOWriter interface {
	WriteSEO(ctx context.Context, clip types.Clip) (types.SEOCaption, error)
}

// Transcriber produces word-level timestamps for an audio file. Timings are
// relative to the start of the audio, i.e. clip-local.
type Transcriber interface {
	TranscribeWords(ctx context.Context, wavPath string) ([]types.Word, error)
}

// VideoTool wraps the external encoder.
type VideoTool interface {
	// Check verifies the encoder binary is runnable.
	Check(ctx context.Context) error
	// ProbeDuration returns the source duration in seconds.
	ProbeDuration(ctx context.Context, inMP4 string) (float64, error)
	// ExtractAudioSegment writes a 16 kHz mono PCM WAV of [start, end).
	ExtractAudioSegment(ctx context.Context, inMP4 string, start, end float64, outWav string) error
	// RenderVertical composites the clip into a 1080x1920 frame (blurred
	// background, centered foreground), optionally burning in the ASS file
	// at burnASS. progress, when non-nil, receives encoded seconds.
	RenderVertical(ctx context.Context, inMP4 string, start, end float64, burnASS, outMP4 string, progress func(doneSec float64)) error
}
