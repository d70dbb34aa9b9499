// Package usecase orchestrates the clip pipeline phases. It owns no I/O
// beyond writing artifacts; everything external comes in through ports.
package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"clipcutter/internal/domain/captions"
	"clipcutter/internal/domain/clips"
	"clipcutter/internal/domain/seo"
	"clipcutter/internal/domain/subtitles"
	"clipcutter/internal/domain/transcript"
	"clipcutter/internal/platform"
	"clipcutter/internal/ports"
	"clipcutter/internal/types"
)

// ErrNoCaptions means the source video has no usable caption track, so
// there is no transcript to analyze.
var ErrNoCaptions = errors.New("no captions available for video")

type Deps struct {
	Downloader  ports.Downloader
	Finder      ports.ClipFinder
	SEO         ports.SEOWriter
	Transcriber ports.Transcriber // optional; nil disables word-level subtitles
	Video       ports.VideoTool
	Policy      platform.Policy
	Logger      *zap.Logger
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Policy == nil {
		d.Policy = platform.Default()
	}
	return Usecase{d: d}
}

// AnnotatedClip pairs a model-proposed clip with its duration-policy
// verdict. Verdicts are advisory; the user decides what to render.
type AnnotatedClip struct {
	types.Clip
	Verdict platform.Verdict
}

type AnalyzeInput struct {
	URL     string
	VideoID string
	WorkDir string
}

type AnalyzeResult struct {
	VideoPath  string
	Cues       []captions.Cue
	Transcript string
	Clips      []AnnotatedClip
}

// Analyze downloads the source and its caption track, builds the
// timestamped transcript, and asks the model for clip candidates.
func (u Usecase) Analyze(ctx context.Context, in AnalyzeInput) (AnalyzeResult, error) {
	videoPath, err := u.d.Downloader.DownloadVideo(ctx, in.URL, in.WorkDir)
	if err != nil {
		return AnalyzeResult{}, fmt.Errorf("download video: %w", err)
	}

	vttPath, err := u.d.Downloader.DownloadCaptions(ctx, in.URL, in.WorkDir)
	if err != nil {
		return AnalyzeResult{}, fmt.Errorf("download captions: %w", err)
	}
	if vttPath == "" {
		return AnalyzeResult{VideoPath: videoPath}, ErrNoCaptions
	}

	raw, err := os.ReadFile(vttPath)
	if err != nil {
		return AnalyzeResult{}, fmt.Errorf("read caption track: %w", err)
	}
	track, err := captions.ParseVTT(string(raw))
	if err != nil {
		if errors.Is(err, captions.ErrEmptyTrack) {
			return AnalyzeResult{VideoPath: videoPath}, fmt.Errorf("%w: %v", ErrNoCaptions, err)
		}
		return AnalyzeResult{}, fmt.Errorf("parse caption track: %w", err)
	}
	for _, w := range track.Warnings {
		u.d.Logger.Warn("caption track irregularity", zap.String("detail", w))
	}

	tr := transcript.FromCues(track.Cues)
	u.d.Logger.Info("transcript built",
		zap.Int("cues", len(track.Cues)),
		zap.Int("chars", len(tr)))

	found, err := u.d.Finder.FindClips(ctx, tr)
	if err != nil {
		return AnalyzeResult{}, fmt.Errorf("find clips: %w", err)
	}

	annotated := make([]AnnotatedClip, 0, len(found))
	for _, c := range found {
		annotated = append(annotated, AnnotatedClip{
			Clip:    c,
			Verdict: u.d.Policy.Check(c.Platform, c.Duration()),
		})
	}

	return AnalyzeResult{
		VideoPath:  videoPath,
		Cues:       track.Cues,
		Transcript: tr,
		Clips:      annotated,
	}, nil
}

// GenerateSEO researches captions for the given clips. A failed research
// call degrades to a deterministic fallback rather than failing the run.
func (u Usecase) GenerateSEO(ctx context.Context, selected []AnnotatedClip) map[int]types.SEOCaption {
	out := make(map[int]types.SEOCaption, len(selected))
	for _, c := range selected {
		sc, err := u.d.SEO.WriteSEO(ctx, c.Clip)
		if err != nil {
			u.d.Logger.Warn("seo research failed, using fallback",
				zap.Int("clip", c.Index), zap.Error(err))
			sc = seo.Fallback(c.Clip)
		}
		out[c.Index] = sc
	}
	return out
}

type RenderInput struct {
	VideoPath string
	OutDir    string
	TmpDir    string
	VideoID   string
	URL       string

	Clips []AnnotatedClip
	Cues  []captions.Cue

	// SEOCaptions, keyed by clip index, is optional. Present entries get a
	// JSON sidecar next to the rendered clip.
	SEOCaptions map[int]types.SEOCaption

	// BurnSubtitles enables word-level karaoke captions; requires a
	// Transcriber.
	BurnSubtitles bool
	SubtitleStyle subtitles.Style

	// Progress, when non-nil, receives encode progress per clip.
	Progress func(clip AnnotatedClip, doneSec float64)
}

// Render produces the final vertical clips plus their sidecar files and
// returns the run manifest. Already-rendered clips are not revisited on
// error; the manifest holds whatever completed.
func (u Usecase) Render(ctx context.Context, in RenderInput) (types.Manifest, error) {
	m := types.Manifest{Input: in.URL, VideoID: in.VideoID}

	if err := os.MkdirAll(in.OutDir, 0o755); err != nil {
		return m, err
	}

	for _, c := range in.Clips {
		base := fmt.Sprintf("clip_%d_%s", c.Index, c.Platform)
		clipPath := filepath.Join(in.OutDir, base+".mp4")

		assPath, err := u.prepareSubtitles(ctx, in, c, base)
		if err != nil {
			return m, err
		}

		u.d.Logger.Info("rendering clip",
			zap.Int("clip", c.Index),
			zap.String("platform", string(c.Platform)),
			zap.Float64("duration_sec", c.Duration()))

		var progress func(float64)
		if in.Progress != nil {
			clip := c
			progress = func(done float64) { in.Progress(clip, done) }
		}
		if err := u.d.Video.RenderVertical(ctx, in.VideoPath, c.Start, c.End, assPath, clipPath, progress); err != nil {
			return m, fmt.Errorf("render clip %d: %w", c.Index, err)
		}

		entry := types.ManifestClip{
			Index:    c.Index,
			Platform: string(c.Platform),
			StartSec: c.Start,
			EndSec:   c.End,
			Hook:     c.Hook,
			File:     base + ".mp4",
			Verdict:  c.Verdict.String(),
		}
		if assPath != "" {
			entry.Subtitles = filepath.Base(assPath)
		}

		// Editable clip-local VTT next to the burned-in version, so captions
		// can be fixed up and re-burned without a rerun.
		if vtt := clips.NewRenderable(c.Clip, in.Cues).SubtitleVTT(); vtt != "" {
			vttPath := filepath.Join(in.OutDir, base+".vtt")
			if err := os.WriteFile(vttPath, []byte(vtt), 0o644); err != nil {
				return m, err
			}
			if entry.Subtitles == "" {
				entry.Subtitles = filepath.Base(vttPath)
			}
		}

		if sc, ok := in.SEOCaptions[c.Index]; ok {
			seoPath, err := writeSEOSidecar(in.OutDir, base, sc)
			if err != nil {
				return m, err
			}
			entry.SEOFile = filepath.Base(seoPath)
		}

		if c.Platform == types.PlatformLinkedIn && c.Caption != "" {
			captionPath := filepath.Join(in.OutDir, base+"_caption.txt")
			if err := os.WriteFile(captionPath, []byte(c.Caption+"\n"), 0o644); err != nil {
				return m, err
			}
		}

		m.Clips = append(m.Clips, entry)
	}

	if err := writeManifest(in.OutDir, m); err != nil {
		return m, err
	}
	return m, nil
}

// prepareSubtitles builds the ASS file for one clip, preferring word-level
// transcription and falling back to the clip-local caption cues.
func (u Usecase) prepareSubtitles(ctx context.Context, in RenderInput, c AnnotatedClip, base string) (string, error) {
	if !in.BurnSubtitles {
		return "", nil
	}

	style := in.SubtitleStyle
	if style == "" {
		style = subtitles.StyleTikTok
	}

	words, err := u.clipWords(ctx, in, c)
	if err != nil {
		return "", err
	}
	if len(words) == 0 {
		// No transcription and no overlapping cues; render clean.
		u.d.Logger.Warn("no subtitle source for clip", zap.Int("clip", c.Index))
		return "", nil
	}

	assPath := filepath.Join(in.OutDir, base+".ass")
	if err := os.WriteFile(assPath, []byte(subtitles.Render(words, style, 0)), 0o644); err != nil {
		return "", err
	}
	return assPath, nil
}

func (u Usecase) clipWords(ctx context.Context, in RenderInput, c AnnotatedClip) ([]types.Word, error) {
	if u.d.Transcriber != nil {
		wav := filepath.Join(in.TmpDir, fmt.Sprintf("clip_%d.wav", c.Index))
		if err := u.d.Video.ExtractAudioSegment(ctx, in.VideoPath, c.Start, c.End, wav); err != nil {
			return nil, fmt.Errorf("extract clip %d audio: %w", c.Index, err)
		}
		words, err := u.d.Transcriber.TranscribeWords(ctx, wav)
		if err != nil {
			u.d.Logger.Warn("word transcription failed, falling back to captions",
				zap.Int("clip", c.Index), zap.Error(err))
		} else {
			return words, nil
		}
	}

	// Caption cues carry phrase timing only, so each cue becomes one
	// "word"; the pop style still works, it just pops whole phrases.
	r := clips.NewRenderable(c.Clip, in.Cues)
	words := make([]types.Word, 0, len(r.Cues))
	for _, cue := range r.Cues {
		words = append(words, types.Word{Text: cue.Text, Start: cue.Start, End: cue.End})
	}
	return words, nil
}

func writeSEOSidecar(outDir, base string, sc types.SEOCaption) (string, error) {
	b, err := seo.Sidecar(sc)
	if err != nil {
		return "", err
	}
	p := filepath.Join(outDir, base+"_seo.json")
	if err := os.WriteFile(p, b, 0o644); err != nil {
		return "", err
	}
	return p, nil
}

func writeManifest(outDir string, m types.Manifest) error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outDir, "manifest.json"), append(b, '\n'), 0o644)
}
