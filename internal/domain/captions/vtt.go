// Package captions parses WebVTT caption tracks into timed cues, regenerates
// tracks from cues, and cuts clip-local cue subsets out of a full-video
// track. Everything here is pure: no I/O, no shared state, safe to call
// concurrently per clip.
package captions

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"clipcutter/internal/domain/timecode"
)

// Cue is one subtitle entry in source-track or clip-local seconds.
type Cue struct {
	Start float64
	End   float64
	Text  string
}

// Track is a parsed caption track. Warnings carry the timestamp lines that
// were skipped as unparseable; auto-generated tracks are noisy enough that
// aborting the whole parse on one bad line would throw away good cues.
type Track struct {
	Cues     []Cue
	Warnings []string
}

// ErrEmptyTrack is returned when parsing yields zero cues. Callers decide
// whether to continue without a transcript.
var ErrEmptyTrack = errors.New("caption track contains no cues")

var (
	inlineTagRe = regexp.MustCompile(`<[^>]+>`)
	metadataRe  = regexp.MustCompile(`^(WEBVTT|Kind:|Language:|NOTE)`)
	cueIDRe     = regexp.MustCompile(`^\d+$`)
)

// ParseVTT parses raw WebVTT text. Header and metadata lines are skipped,
// inline markup tags are stripped, and multi-line cue text is joined with a
// single space. Cues whose text is empty after cleaning are dropped: the
// auto-caption tracks this tool consumes use empty cues only as timing
// filler, and downstream rendering has no use for them.
func ParseVTT(raw string) (Track, error) {
	var tr Track

	var cur *Cue
	flush := func() {
		if cur == nil {
			return
		}
		cur.Text = strings.TrimSpace(cur.Text)
		if cur.Text != "" {
			tr.Cues = append(tr.Cues, *cur)
		}
		cur = nil
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(strings.TrimRight(line, "\r"))

		if line == "" {
			flush()
			continue
		}
		if metadataRe.MatchString(line) {
			continue
		}

		if strings.Contains(line, "-->") {
			flush()
			start, end, err := parseCueTiming(line)
			if err != nil {
				tr.Warnings = append(tr.Warnings, fmt.Sprintf("skipping cue with bad timing %q: %v", line, err))
				continue
			}
			cur = &Cue{Start: start, End: end}
			continue
		}

		// Bare numeric cue identifiers precede timing lines in some tracks.
		if cur == nil && cueIDRe.MatchString(line) {
			continue
		}
		if cur == nil {
			// Text before the first timing line is leftover metadata.
			continue
		}

		text := strings.TrimSpace(inlineTagRe.ReplaceAllString(line, ""))
		if text == "" {
			continue
		}
		if cur.Text != "" {
			cur.Text += " "
		}
		cur.Text += text
	}
	flush()

	// Auto-generated tracks occasionally interleave cue order; keep output
	// sorted so window extraction can rely on it.
	sort.SliceStable(tr.Cues, func(i, j int) bool { return tr.Cues[i].Start < tr.Cues[j].Start })

	if len(tr.Cues) == 0 {
		return tr, ErrEmptyTrack
	}
	return tr, nil
}

// parseCueTiming splits a "start --> end" line, ignoring cue settings such
// as "align:start position:0%" after the end timestamp.
func parseCueTiming(line string) (float64, float64, error) {
	lhs, rhs, ok := strings.Cut(line, "-->")
	if !ok {
		return 0, 0, fmt.Errorf("no arrow in timing line")
	}
	start, err := timecode.Parse(strings.TrimSpace(lhs))
	if err != nil {
		return 0, 0, err
	}
	endField := strings.Fields(strings.TrimSpace(rhs))
	if len(endField) == 0 {
		return 0, 0, fmt.Errorf("missing end timestamp")
	}
	end, err := timecode.Parse(endField[0])
	if err != nil {
		return 0, 0, err
	}
	if end <= start {
		return 0, 0, fmt.Errorf("end %v is not after start %v", end, start)
	}
	return start, end, nil
}

// RenderVTT regenerates a syntactically valid track from cues, used to hand
// a clip-local subtitle subset to the external renderer.
func RenderVTT(cues []Cue) string {
	var b strings.Builder
	b.WriteString("WEBVTT\n\n")
	for _, c := range cues {
		b.WriteString(vttTime(c.Start))
		b.WriteString(" --> ")
		b.WriteString(vttTime(c.End))
		b.WriteString("\n")
		b.WriteString(c.Text)
		b.WriteString("\n\n")
	}
	return b.String()
}

func vttTime(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	ms := int64(sec*1000 + 0.5)
	h := ms / 3_600_000
	ms -= h * 3_600_000
	m := ms / 60_000
	ms -= m * 60_000
	s := ms / 1000
	ms -= s * 1000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}
