package clips

import (
	"errors"
	"testing"

	"clipcutter/internal/domain/captions"
	"clipcutter/internal/domain/timecode"
	"clipcutter/internal/types"
)

func TestDecodeRecords_Valid(t *testing.T) {
	data := []byte(`[
		{"platform": "TikTok", "start": "1:05", "end": "1:32", "transcript": "the words", "hook": "wait for it", "caption": null},
		{"platform": "linkedin", "start": "00:02:00.500", "end": "3:10", "transcript": "business words", "hook": "lesson", "caption": "A post body."}
	]`)

	got, err := DecodeRecords(data)
	if err != nil {
		t.Fatalf("DecodeRecords: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 clips, got %d", len(got))
	}
	if got[0].Platform != types.PlatformTikTok {
		t.Fatalf("platform not lowercased: %q", got[0].Platform)
	}
	if got[0].Start != 65 || got[0].End != 92 {
		t.Fatalf("timestamps not normalized: %+v", got[0])
	}
	if got[0].Index != 1 || got[1].Index != 2 {
		t.Fatalf("indices not assigned: %+v", got)
	}
	if got[1].Start != 120.5 {
		t.Fatalf("fractional timestamp lost: %v", got[1].Start)
	}
	if got[1].Caption != "A post body." {
		t.Fatalf("caption dropped: %+v", got[1])
	}
}

func TestDecodeRecords_Malformed(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantField string
	}{
		{
			"missing platform",
			`[{"start": "0:10", "end": "0:40", "transcript": "t", "hook": "h"}]`,
			"platform",
		},
		{
			"empty hook",
			`[{"platform": "tiktok", "start": "0:10", "end": "0:40", "transcript": "t", "hook": "  "}]`,
			"hook",
		},
		{
			"bad start timestamp",
			`[{"platform": "tiktok", "start": "abc", "end": "0:40", "transcript": "t", "hook": "h"}]`,
			"start",
		},
		{
			"end before start",
			`[{"platform": "tiktok", "start": "1:00", "end": "0:40", "transcript": "t", "hook": "h"}]`,
			"end",
		},
		{
			"linkedin without caption",
			`[{"platform": "linkedin", "start": "0:10", "end": "1:00", "transcript": "t", "hook": "h"}]`,
			"caption",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRecords([]byte(tt.data))
			var me *MalformedRecordError
			if !errors.As(err, &me) {
				t.Fatalf("expected MalformedRecordError, got %v", err)
			}
			if me.Field != tt.wantField {
				t.Fatalf("error field = %q, want %q (%v)", me.Field, tt.wantField, err)
			}
		})
	}
}

func TestDecodeRecords_BadTimestampWrapsTimecodeError(t *testing.T) {
	data := []byte(`[{"platform": "tiktok", "start": "abc", "end": "0:40", "transcript": "t", "hook": "h"}]`)
	_, err := DecodeRecords(data)
	var te *timecode.MalformedTimestampError
	if !errors.As(err, &te) {
		t.Fatalf("expected wrapped MalformedTimestampError, got %v", err)
	}
}

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"plain", `[{"a":1}]`, `[{"a":1}]`, true},
		{"fenced", "```json\n[{\"a\":1}]\n```", `[{"a":1}]`, true},
		{"fenced no lang", "```\n[1,2]\n```", "[1,2]", true},
		{"prose around", "Here you go:\n[1]\nEnjoy", "[1]", true},
		{"no array", "nothing here", "", false},
		{"empty", "  ", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONArray(tt.in)
			if tt.ok != (err == nil) {
				t.Fatalf("err = %v, want ok=%v", err, tt.ok)
			}
			if tt.ok && got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	got, err := ExtractJSONObject("```json\n{\"caption\": \"x\"}\n```")
	if err != nil {
		t.Fatalf("ExtractJSONObject: %v", err)
	}
	if got != `{"caption": "x"}` {
		t.Fatalf("got %q", got)
	}
	if _, err := ExtractJSONObject("no braces"); err == nil {
		t.Fatalf("expected error for missing object")
	}
}

func TestRenderable(t *testing.T) {
	track := []captions.Cue{
		{Start: 0, End: 3.5, Text: "Hey everyone"},
		{Start: 3.5, End: 7.2, Text: "welcome back"},
		{Start: 100, End: 101, Text: "later"},
	}
	c := types.Clip{Index: 1, Platform: types.PlatformTikTok, Start: 2.0, End: 7.2}

	r := NewRenderable(c, track)
	if len(r.Cues) != 2 {
		t.Fatalf("expected 2 clip-local cues, got %+v", r.Cues)
	}
	if r.Cues[0].Start != 0 {
		t.Fatalf("first cue should be re-based to 0, got %+v", r.Cues[0])
	}
	vtt := r.SubtitleVTT()
	if vtt == "" {
		t.Fatalf("expected subtitle output")
	}

	empty := NewRenderable(types.Clip{Start: 200, End: 210}, track)
	if empty.SubtitleVTT() != "" {
		t.Fatalf("captionless clip should produce empty subtitles")
	}
}
