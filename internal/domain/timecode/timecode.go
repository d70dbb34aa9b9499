// Package timecode normalizes the mixed timestamp notations that appear in
// caption tracks and in model output ("M:SS", "H:MM:SS", "HH:MM:SS.mmm")
// into plain seconds.
package timecode

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MalformedTimestampError reports a timestamp string that could not be
// normalized. A bad timestamp is never coerced to zero: that would silently
// shift clip boundaries.
type MalformedTimestampError struct {
	Input  string
	Reason string
}

func (e *MalformedTimestampError) Error() string {
	return fmt.Sprintf("malformed timestamp %q: %s", e.Input, e.Reason)
}

// Parse converts a colon-separated timestamp into non-negative seconds.
// The last component may carry a fractional part (a comma is accepted as the
// decimal separator, as emitted by SRT-ish tooling); every preceding
// component must be an unsigned integer. Components are weighted x60 from
// right to left, so any number of leading groups works.
func Parse(s string) (float64, error) {
	in := s
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, &MalformedTimestampError{Input: in, Reason: "no colon separator"}
	}

	whole := 0
	for _, p := range parts[:len(parts)-1] {
		if !allDigits(p) {
			return 0, &MalformedTimestampError{Input: in, Reason: fmt.Sprintf("component %q is not an integer", p)}
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, &MalformedTimestampError{Input: in, Reason: fmt.Sprintf("component %q: %v", p, err)}
		}
		whole = whole*60 + n
	}

	last := parts[len(parts)-1]
	sec, err := strconv.ParseFloat(last, 64)
	if err != nil {
		return 0, &MalformedTimestampError{Input: in, Reason: fmt.Sprintf("seconds component %q is not a number", last)}
	}
	if sec < 0 || math.IsNaN(sec) || math.IsInf(sec, 0) {
		return 0, &MalformedTimestampError{Input: in, Reason: "seconds component must be a non-negative finite number"}
	}

	return float64(whole)*60 + sec, nil
}

// Format renders seconds in the canonical "H:MM:SS.mmm" form. Parsing the
// result yields the input again (at millisecond precision), which keeps
// normalize/stringify round-trips stable.
func Format(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	ms := int64(math.Round(sec * 1000))
	h := ms / 3_600_000
	ms -= h * 3_600_000
	m := ms / 60_000
	ms -= m * 60_000
	s := ms / 1000
	ms -= s * 1000
	return fmt.Sprintf("%d:%02d:%02d.%03d", h, m, s, ms)
}

// FormatShort renders seconds as "M:SS", the compact form used when lining
// up transcript text for the clip-finding prompt.
func FormatShort(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	total := int(sec)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
