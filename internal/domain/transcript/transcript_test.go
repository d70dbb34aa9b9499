package transcript

import (
	"strings"
	"testing"

	"clipcutter/internal/domain/captions"
)

func TestFromCues(t *testing.T) {
	cues := []captions.Cue{
		{Start: 0.16, End: 3.5, Text: "Hey everyone"},
		{Start: 3.5, End: 7.2, Text: "Hey everyone"}, // rolling repeat
		{Start: 65, End: 70, Text: "the second minute"},
	}
	got := FromCues(cues)
	want := "[0:00] Hey everyone\n[1:05] the second minute"
	if got != want {
		t.Fatalf("FromCues:\n%q\nwant:\n%q", got, want)
	}
}

func TestFromCues_Empty(t *testing.T) {
	if got := FromCues(nil); got != "" {
		t.Fatalf("expected empty transcript, got %q", got)
	}
	if got := FromCues([]captions.Cue{{Start: 0, End: 1, Text: "  "}}); strings.TrimSpace(got) != "" {
		t.Fatalf("whitespace cues should not produce lines, got %q", got)
	}
}
