// Package pipeline wires the adapters into the usecase and runs a full
// clip-cutting session for one URL.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"clipcutter/internal/domain/subtitles"
	"clipcutter/internal/platform"
	"clipcutter/internal/ports"
	"clipcutter/internal/ports/adapters/assemblyai"
	"clipcutter/internal/ports/adapters/ffmpeg"
	"clipcutter/internal/ports/adapters/gemini"
	"clipcutter/internal/ports/adapters/ytdlp"
	"clipcutter/internal/usecase"
)

// Hooks are the interactive seams. The CLI fills these with prompts; nil
// hooks get non-interactive defaults so the pipeline also runs headless.
type Hooks struct {
	// SelectClips picks which proposed clips to render. Default: all.
	SelectClips func(clips []usecase.AnnotatedClip) ([]usecase.AnnotatedClip, error)
	// ConfirmSEO decides whether to run caption research. Default: the
	// GenerateSEO config flag.
	ConfirmSEO func() (bool, error)
	// ChooseStyle picks the subtitle style when subtitles are on. Default:
	// the SubtitleStyle config field.
	ChooseStyle func() (subtitles.Style, error)
	// RenderProgress receives encode progress per clip.
	RenderProgress func(clip usecase.AnnotatedClip, doneSec float64)
}

type Config struct {
	URL     string
	OutDir  string
	TmpRoot string
	KeepTmp bool

	YtDlpPath   string
	FFmpegPath  string
	FFprobePath string

	GeminiAPIKey    string
	GeminiClipModel string
	GeminiSEOModel  string

	// AssemblyAIKey is optional; without it subtitles fall back to the
	// caption track's phrase timing.
	AssemblyAIKey string

	Policy        platform.Policy
	BurnSubtitles bool
	SubtitleStyle subtitles.Style
	GenerateSEO   bool

	Logger *zap.Logger
	Hooks  Hooks
}

func (c Config) Validate() error {
	if c.URL == "" {
		return errors.New("url is empty")
	}
	if ytdlp.ExtractVideoID(c.URL) == "" {
		return fmt.Errorf("not a recognizable YouTube URL: %s", c.URL)
	}
	if c.GeminiAPIKey == "" {
		return errors.New("GEMINI_API_KEY is required")
	}
	return nil
}

type Result struct {
	OutDir   string
	Rendered int
	Proposed int
}

func Run(ctx context.Context, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// adapters
	video := ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath)
	if err := video.Check(ctx); err != nil {
		return Result{}, err
	}
	dl := ytdlp.New(cfg.YtDlpPath, logger)
	llm, err := gemini.New(ctx, gemini.Config{
		APIKey:    cfg.GeminiAPIKey,
		ClipModel: cfg.GeminiClipModel,
		SEOModel:  cfg.GeminiSEOModel,
		Logger:    logger,
	})
	if err != nil {
		return Result{}, err
	}
	var transcriber ports.Transcriber
	if cfg.AssemblyAIKey != "" {
		transcriber = assemblyai.New(cfg.AssemblyAIKey, "", logger)
	}

	uc := usecase.New(usecase.Deps{
		Downloader:  dl,
		Finder:      llm,
		SEO:         llm,
		Transcriber: transcriber,
		Video:       video,
		Policy:      cfg.Policy,
		Logger:      logger,
	})

	videoID := ytdlp.ExtractVideoID(cfg.URL)

	tmpRoot := cfg.TmpRoot
	if tmpRoot == "" {
		tmpRoot = os.TempDir()
	}
	tmpDir := filepath.Join(tmpRoot, "clipcutter-"+uuid.NewString())
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return Result{}, err
	}
	if !cfg.KeepTmp {
		defer os.RemoveAll(tmpDir)
	}
	logger.Debug("workspace ready", zap.String("tmp", tmpDir))

	outRoot := cfg.OutDir
	if outRoot == "" {
		outRoot = "outputs"
	}
	outDir := filepath.Join(outRoot, videoID)

	analysis, err := uc.Analyze(ctx, usecase.AnalyzeInput{
		URL:     cfg.URL,
		VideoID: videoID,
		WorkDir: tmpDir,
	})
	if err != nil {
		return Result{}, err
	}
	if len(analysis.Clips) == 0 {
		logger.Info("model proposed no clips")
		return Result{Proposed: 0}, nil
	}

	selected := analysis.Clips
	if cfg.Hooks.SelectClips != nil {
		selected, err = cfg.Hooks.SelectClips(analysis.Clips)
		if err != nil {
			return Result{}, err
		}
	}
	if len(selected) == 0 {
		logger.Info("no clips selected")
		return Result{Proposed: len(analysis.Clips)}, nil
	}

	wantSEO := cfg.GenerateSEO
	if cfg.Hooks.ConfirmSEO != nil {
		if wantSEO, err = cfg.Hooks.ConfirmSEO(); err != nil {
			return Result{}, err
		}
	}

	style := cfg.SubtitleStyle
	if cfg.BurnSubtitles && cfg.Hooks.ChooseStyle != nil {
		if style, err = cfg.Hooks.ChooseStyle(); err != nil {
			return Result{}, err
		}
	}
	in := usecase.RenderInput{
		VideoPath:     analysis.VideoPath,
		OutDir:        outDir,
		TmpDir:        tmpDir,
		VideoID:       videoID,
		URL:           cfg.URL,
		Clips:         selected,
		Cues:          analysis.Cues,
		BurnSubtitles: cfg.BurnSubtitles,
		SubtitleStyle: style,
		Progress:      cfg.Hooks.RenderProgress,
	}
	if wantSEO {
		in.SEOCaptions = uc.GenerateSEO(ctx, selected)
	}

	m, err := uc.Render(ctx, in)
	if err != nil {
		return Result{}, err
	}

	logger.Info("run complete",
		zap.String("out_dir", outDir),
		zap.Int("clips", len(m.Clips)))
	return Result{OutDir: outDir, Rendered: len(m.Clips), Proposed: len(analysis.Clips)}, nil
}

// ensure adapters implement ports
var _ ports.VideoTool = (*ffmpeg.Adapter)(nil)
var _ ports.Downloader = (*ytdlp.Adapter)(nil)
var _ ports.ClipFinder = (*gemini.Client)(nil)
var _ ports.SEOWriter = (*gemini.Client)(nil)
var _ ports.Transcriber = (*assemblyai.Client)(nil)
