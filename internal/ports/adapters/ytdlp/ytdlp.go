// Package ytdlp shells out to yt-dlp for video and caption downloads.
package ytdlp

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"

	"go.uber.org/zap"
)

// Quality cap keeps downloads fast; vertical output is 1080 wide anyway.
const videoFormat = "bestvideo[height<=1080][ext=mp4]+bestaudio[ext=m4a]/best[height<=1080]/best"

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/shorts/([a-zA-Z0-9_-]{11})`),
}

// ExtractVideoID pulls the 11-character video ID out of the common YouTube
// URL shapes. Empty result means the URL is not recognizably YouTube.
func ExtractVideoID(url string) string {
	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}
	return ""
}

type Adapter struct {
	bin    string
	logger *zap.Logger
}

func New(binPath string, logger *zap.Logger) *Adapter {
	if binPath == "" {
		binPath = "yt-dlp"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{bin: binPath, logger: logger}
}

func (a *Adapter) DownloadVideo(ctx context.Context, url, destDir string) (string, error) {
	id := ExtractVideoID(url)
	if id == "" {
		return "", fmt.Errorf("could not extract video ID from URL: %s", url)
	}
	out := filepath.Join(destDir, id+".mp4")

	a.logger.Info("downloading video", zap.String("video_id", id))
	cmd := exec.CommandContext(ctx, a.bin,
		"-f", videoFormat,
		"--merge-output-format", "mp4",
		"-o", out,
		url,
	)
	if b, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("yt-dlp download video: %w\n%s", err, tail(string(b), 500))
	}
	return out, nil
}

func (a *Adapter) DownloadCaptions(ctx context.Context, url, destDir string) (string, error) {
	id := ExtractVideoID(url)
	if id == "" {
		return "", fmt.Errorf("could not extract video ID from URL: %s", url)
	}

	a.logger.Info("fetching auto captions", zap.String("video_id", id))
	cmd := exec.CommandContext(ctx, a.bin,
		"--write-auto-sub",
		"--sub-lang", "en",
		"--convert-subs", "vtt",
		"--skip-download",
		"-o", filepath.Join(destDir, id),
		url,
	)
	// Caption download failing is not fatal; the caller treats "" as no
	// captions and asks the user whether to continue.
	if b, err := cmd.CombinedOutput(); err != nil {
		a.logger.Warn("yt-dlp caption download failed", zap.Error(err), zap.String("output", tail(string(b), 300)))
		return "", nil
	}

	matches, err := filepath.Glob(filepath.Join(destDir, id+"*.vtt"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", nil
	}
	return matches[0], nil
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
