package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"clipcutter/internal/domain/subtitles"
	"clipcutter/internal/pipeline"
	"clipcutter/internal/platform"
	"clipcutter/internal/usecase"
)

func run(cmd *cobra.Command, url string) error {
	outDir, _ := cmd.Flags().GetString("out")
	noSubs, _ := cmd.Flags().GetBool("no-subtitles")
	assumeYes, _ := cmd.Flags().GetBool("yes")
	configPath, _ := cmd.Flags().GetString("config")
	styleName, _ := cmd.Flags().GetString("style")
	keepTmp, _ := cmd.Flags().GetBool("keep-tmp")
	verbose, _ := cmd.Flags().GetBool("verbose")

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return errors.New("GEMINI_API_KEY is required (set it in .env)")
	}

	logger, err := newLogger(verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	policy := platform.Default()
	if configPath == "" {
		if _, statErr := os.Stat("clipcutter.toml"); statErr == nil {
			configPath = "clipcutter.toml"
		}
	}
	if configPath != "" {
		if policy, err = platform.LoadTOML(configPath); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}

	style := subtitles.StyleTikTok
	if styleName == string(subtitles.StyleStandard) {
		style = subtitles.StyleStandard
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Hour)
	defer cancel()

	cfg := pipeline.Config{
		URL:     url,
		OutDir:  outDir,
		KeepTmp: keepTmp,

		YtDlpPath:   getenvDefault("YT_DLP_PATH", "yt-dlp"),
		FFmpegPath:  getenvDefault("FFMPEG_PATH", "ffmpeg"),
		FFprobePath: getenvDefault("FFPROBE_PATH", "ffprobe"),

		GeminiAPIKey:    apiKey,
		GeminiClipModel: os.Getenv("GEMINI_CLIP_MODEL"),
		GeminiSEOModel:  os.Getenv("GEMINI_SEO_MODEL"),
		AssemblyAIKey:   os.Getenv("ASSEMBLYAI_API_KEY"),

		Policy:        policy,
		BurnSubtitles: !noSubs,
		SubtitleStyle: style,
		GenerateSEO:   assumeYes,

		Logger: logger,
	}
	if !assumeYes {
		cfg.Hooks = pipeline.Hooks{
			SelectClips: selectClips,
			ConfirmSEO:  confirmSEO,
		}
		if !cmd.Flags().Changed("style") {
			cfg.Hooks.ChooseStyle = chooseStyle
		}
	}
	cfg.Hooks.RenderProgress = renderProgress()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	res, err := pipeline.Run(ctx, cfg)
	if err != nil {
		if errors.Is(err, usecase.ErrNoCaptions) {
			return errors.New("this video has no English auto-captions, cannot build a transcript")
		}
		return err
	}

	if res.Rendered == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing rendered.")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Done. %d clip(s) in %s\n", res.Rendered, res.OutDir)
	return nil
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
