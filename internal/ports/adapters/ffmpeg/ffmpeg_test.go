package ffmpeg

import (
	"strings"
	"testing"
)

func TestParseProgressLine(t *testing.T) {
	tests := []struct {
		line string
		want float64
		ok   bool
	}{
		{"out_time=00:00:12.500000", 12.5, true},
		{"out_time=01:02:03.000000", 3723, true},
		{"out_time=N/A", 0, false},
		{"frame=42", 0, false},
		{"out_time=", 0, false},
		{"out_time=garbage", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseProgressLine(tt.line)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("parseProgressLine(%q) = %v, %v; want %v, %v", tt.line, got, ok, tt.want, tt.ok)
		}
	}
}

func TestBuildFilterGraph(t *testing.T) {
	plain := buildFilterGraph("")
	if strings.Contains(plain, "subtitles=") {
		t.Fatalf("no subtitle filter expected without an ASS file:\n%s", plain)
	}
	if !strings.Contains(plain, "boxblur") || !strings.Contains(plain, "overlay") {
		t.Fatalf("expected blur background composite:\n%s", plain)
	}

	burned := buildFilterGraph("/tmp/clip_1.ass")
	if !strings.Contains(burned, "subtitles=filename=/tmp/clip_1.ass[out]") {
		t.Fatalf("expected subtitle burn stage:\n%s", burned)
	}
}

func TestEscapeFilterPath(t *testing.T) {
	if got := escapeFilterPath(`C:\clips\a.ass`); got != `C\:\\clips\\a.ass` {
		t.Fatalf("escapeFilterPath = %q", got)
	}
}

func TestFmtSeconds(t *testing.T) {
	if got := fmtSeconds(12.5); got != "12.500" {
		t.Fatalf("fmtSeconds(12.5) = %q", got)
	}
	if got := fmtSeconds(0); got != "0.000" {
		t.Fatalf("fmtSeconds(0) = %q", got)
	}
}
