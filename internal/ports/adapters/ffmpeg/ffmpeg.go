// Package ffmpeg wraps the external encoder for audio extraction and the
// vertical clip render.
package ffmpeg

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"
)

type Adapter struct {
	ffmpeg  string
	ffprobe string
}

func New(ffmpegPath, ffprobePath string) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Adapter{ffmpeg: ffmpegPath, ffprobe: ffprobePath}
}

func (a *Adapter) Check(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg, "-version")
	if b, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg not available: %w\n%s", err, string(b))
	}
	return nil
}

func (a *Adapter) ProbeDuration(ctx context.Context, inMP4 string) (float64, error) {
	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		inMP4,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration: %w\n%s", err, string(b))
	}
	s := strings.TrimSpace(string(b))
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	return sec, nil
}

// ExtractAudioSegment writes [start, end) as 16 kHz mono PCM WAV, the rate
// speech APIs want.
func (a *Adapter) ExtractAudioSegment(ctx context.Context, inMP4 string, start, end float64, outWav string) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-y",
		"-ss", fmtSeconds(start),
		"-t", fmtSeconds(end-start),
		"-i", inMP4,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", "16000",
		"-ac", "1",
		outWav,
	)
	if b, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg extract audio: %w\n%s", err, tail(string(b), 500))
	}
	return nil
}

// endPaddingSec extends every clip slightly so audio does not cut off
// mid-word at the boundary.
const endPaddingSec = 0.5

func (a *Adapter) RenderVertical(ctx context.Context, inMP4 string, start, end float64, burnASS, outMP4 string, progress func(doneSec float64)) error {
	args := []string{
		"-y",
		"-accurate_seek",
		"-ss", fmtSeconds(start),
		"-i", inMP4,
		"-t", fmtSeconds(end - start + endPaddingSec),
		"-filter_complex", buildFilterGraph(burnASS),
	}
	if burnASS != "" {
		args = append(args, "-map", "[out]", "-map", "0:a?")
	}
	args = append(args,
		"-c:v", "libx264",
		"-preset", "fast",
		"-crf", "23",
		"-c:a", "aac",
		"-b:a", "128k",
		"-movflags", "+faststart",
		"-progress", "pipe:1",
		outMP4,
	)

	cmd := exec.CommandContext(ctx, a.ffmpeg, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start ffmpeg: %w", err)
	}

	// Drain stderr in the background so a chatty encode cannot deadlock
	// the progress loop.
	var errBuf strings.Builder
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		sc := bufio.NewScanner(stderr)
		sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for sc.Scan() {
			errBuf.WriteString(sc.Text())
			errBuf.WriteString("\n")
		}
	}()

	sc := bufio.NewScanner(stdout)
	for sc.Scan() {
		if done, ok := parseProgressLine(sc.Text()); ok && progress != nil {
			progress(done)
		}
	}

	wg.Wait()
	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg render clip: %w\n%s", err, tail(errBuf.String(), 500))
	}
	return nil
}

// buildFilterGraph composites a blurred cover-cropped background with the
// sharp source centered on top, optionally burning in subtitles.
func buildFilterGraph(burnASS string) string {
	parts := []string{
		"[0:v]scale=1080:1920:force_original_aspect_ratio=increase,crop=1080:1920,boxblur=20:5[bg]",
		"[0:v]scale=1080:-1[fg]",
	}
	if burnASS == "" {
		parts = append(parts, "[bg][fg]overlay=(W-w)/2:(H-h)/2")
	} else {
		parts = append(parts,
			"[bg][fg]overlay=(W-w)/2:(H-h)/2[main]",
			"[main]subtitles=filename="+escapeFilterPath(burnASS)+"[out]",
		)
	}
	return strings.Join(parts, ";")
}

// parseProgressLine reads "out_time=HH:MM:SS.micro" lines from the
// -progress stream. Lines that are not out_time, or carry "N/A", report
// nothing.
func parseProgressLine(line string) (float64, bool) {
	val, ok := strings.CutPrefix(strings.TrimSpace(line), "out_time=")
	if !ok {
		return 0, false
	}
	val = strings.TrimSpace(val)
	if val == "" || val == "N/A" {
		return 0, false
	}
	parts := strings.Split(val, ":")
	if len(parts) != 3 {
		return 0, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	s, err3 := strconv.ParseFloat(parts[2], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, false
	}
	return float64(h)*3600 + float64(m)*60 + s, true
}

func fmtSeconds(sec float64) string {
	return strconv.FormatFloat(sec, 'f', 3, 64)
}

func escapeFilterPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "\\\\")
	p = strings.ReplaceAll(p, ":", "\\:")
	return p
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
