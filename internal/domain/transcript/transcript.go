// Package transcript flattens a caption track into the timestamped text
// block handed to the clip-finding model.
package transcript

import (
	"strings"

	"clipcutter/internal/domain/captions"
	"clipcutter/internal/domain/timecode"
)

// FromCues renders one "[M:SS] text" line per cue. Auto-generated tracks
// repeat rolling text across overlapping cues, so exact repeats are dropped;
// sending the same sentence three times only burns prompt tokens.
func FromCues(cues []captions.Cue) string {
	var b strings.Builder
	seen := make(map[string]struct{}, len(cues))
	for _, c := range cues {
		text := strings.TrimSpace(c.Text)
		if text == "" {
			continue
		}
		if _, dup := seen[text]; dup {
			continue
		}
		seen[text] = struct{}{}
		b.WriteString("[")
		b.WriteString(timecode.FormatShort(c.Start))
		b.WriteString("] ")
		b.WriteString(text)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
