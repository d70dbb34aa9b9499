package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"

	"clipcutter/internal/domain/subtitles"
	"clipcutter/internal/domain/timecode"
	"clipcutter/internal/platform"
	"clipcutter/internal/usecase"
)

// selectClips shows the proposed clips and asks which to render. Clips that
// fit their platform's duration window are preselected.
func selectClips(clips []usecase.AnnotatedClip) ([]usecase.AnnotatedClip, error) {
	fmt.Println(clipTable(clips))

	opts := make([]huh.Option[int], 0, len(clips))
	for _, c := range clips {
		label := fmt.Sprintf("Clip %d  %-14s %s  %s",
			c.Index, c.Platform, timecode.FormatShort(c.Duration()), truncateHook(c.Hook, 48))
		opts = append(opts, huh.NewOption(label, c.Index).Selected(c.Verdict == platform.OK))
	}

	var picked []int
	err := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[int]().
			Title("Select clips to render").
			Options(opts...).
			Value(&picked),
	)).Run()
	if err != nil {
		return nil, err
	}

	return lo.Filter(clips, func(c usecase.AnnotatedClip, _ int) bool {
		return lo.Contains(picked, c.Index)
	}), nil
}

func chooseStyle() (subtitles.Style, error) {
	style := subtitles.StyleTikTok
	err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[subtitles.Style]().
			Title("Caption style").
			Options(
				huh.NewOption("TikTok pop (active word highlighted)", subtitles.StyleTikTok),
				huh.NewOption("Standard (plain phrases)", subtitles.StyleStandard),
			).
			Value(&style),
	)).Run()
	return style, err
}

func confirmSEO() (bool, error) {
	var yes bool
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Generate SEO captions and hashtags? (uses web search)").
			Value(&yes),
	)).Run()
	return yes, err
}

func clipTable(clips []usecase.AnnotatedClip) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Platform", "Start", "End", "Dur", "Fit", "Hook"})
	for _, c := range clips {
		tw.AppendRow(table.Row{
			c.Index,
			c.Platform,
			timecode.Format(c.Start),
			timecode.Format(c.End),
			timecode.FormatShort(c.Duration()),
			c.Verdict.String(),
			truncateHook(c.Hook, 40),
		})
	}
	return tw.Render()
}

// renderProgress returns a per-clip progress callback. A new bar starts
// whenever the encoder moves on to the next clip.
func renderProgress() func(usecase.AnnotatedClip, float64) {
	var bar *progressbar.ProgressBar
	current := -1
	return func(c usecase.AnnotatedClip, done float64) {
		totalDs := int(c.Duration() * 10)
		if totalDs <= 0 {
			return
		}
		if bar == nil || current != c.Index {
			if bar != nil {
				_ = bar.Finish()
			}
			current = c.Index
			bar = progressbar.NewOptions(totalDs,
				progressbar.OptionSetDescription(fmt.Sprintf("clip %d (%s)", c.Index, c.Platform)),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetRenderBlankState(true),
				progressbar.OptionClearOnFinish(),
			)
		}
		ds := int(done * 10)
		if ds > totalDs {
			ds = totalDs
		}
		_ = bar.Set(ds)
	}
}

func truncateHook(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
