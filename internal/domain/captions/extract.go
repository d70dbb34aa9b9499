package captions

// ExtractWindow selects every cue overlapping [clipStart, clipEnd) and
// re-bases it into clip-local time. A cue straddling the window start is
// kept whole rather than truncated at the text level: the clip boundaries
// chosen upstream already respect word boundaries, so only the timing is
// clamped.
//
// Invariants on the result: ordered by start, no negative starts, every
// duration strictly positive, no end past clipEnd-clipStart. An empty result
// is a valid outcome; clips without captions still render.
func ExtractWindow(cues []Cue, clipStart, clipEnd float64) []Cue {
	win := clipEnd - clipStart
	if win <= 0 {
		return nil
	}

	var out []Cue
	for _, c := range cues {
		if c.End <= clipStart || c.Start >= clipEnd {
			continue
		}
		start := c.Start - clipStart
		if start < 0 {
			start = 0
		}
		end := c.End - clipStart
		if end > win {
			end = win
		}
		if end <= start {
			// Clamping collapsed the cue; nothing left to show.
			continue
		}
		out = append(out, Cue{Start: start, End: end, Text: c.Text})
	}
	return out
}
