package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "clipcutter <youtube-url>",
		Short:        "Cut viral vertical clips from a YouTube video",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	// Visible flags
	root.Flags().String("out", "outputs", "Output directory")
	root.Flags().Bool("no-subtitles", false, "Skip burned-in subtitles")
	root.Flags().Bool("yes", false, "Skip prompts, render every proposed clip")
	root.Flags().String("config", "", "Path to clipcutter.toml (platform duration rules)")

	// Hidden tuning flags (internal)
	root.Flags().String("style", "tiktok", "Subtitle style: tiktok or standard")
	_ = root.Flags().MarkHidden("style")
	root.Flags().Bool("keep-tmp", false, "Keep the temporary working directory")
	_ = root.Flags().MarkHidden("keep-tmp")

	root.Flags().Bool("verbose", false, "Verbose logging")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return cfg.Build()
}
