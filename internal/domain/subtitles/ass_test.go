package subtitles

import (
	"strings"
	"testing"

	"clipcutter/internal/types"
)

func testWords() []types.Word {
	return []types.Word{
		{Text: "Hello", Start: 0.0, End: 0.3},
		{Text: "world", Start: 0.3, End: 0.8},
		{Text: "again", Start: 1.2, End: 1.6},
	}
}

func TestRender_TikTokPopTags(t *testing.T) {
	ass := Render(testWords(), StyleTikTok, 32)
	if !strings.Contains(ass, `\fscx130\fscy130`) {
		t.Fatalf("expected pop scaling tags in tiktok style:\n%s", ass)
	}
	if !strings.Contains(ass, "Dialogue: 0,0:00:00.00,") {
		t.Fatalf("expected first event at t=0:\n%s", ass)
	}
	// One event per word when everything fits in one chunk.
	if got := strings.Count(ass, "Dialogue:"); got != 3 {
		t.Fatalf("expected 3 events, got %d:\n%s", got, ass)
	}
	// Event for "world" must extend to the next word's start (1.2s), not
	// its own end (0.8s), so captions hold through the pause.
	if !strings.Contains(ass, ",0:00:01.20,") && !strings.Contains(ass, "0:00:00.30,0:00:01.20") {
		t.Fatalf("expected middle event to extend to next word start:\n%s", ass)
	}
}

func TestRender_StandardStyle(t *testing.T) {
	ass := Render(testWords(), StyleStandard, 32)
	if strings.Contains(ass, `\fscx130`) {
		t.Fatalf("standard style must not animate:\n%s", ass)
	}
	if got := strings.Count(ass, "Dialogue:"); got != 1 {
		t.Fatalf("expected a single phrase event, got %d:\n%s", got, ass)
	}
	if !strings.Contains(ass, "Hello world again") {
		t.Fatalf("expected joined phrase text:\n%s", ass)
	}
}

func TestRender_EmptyWordsStillValid(t *testing.T) {
	ass := Render(nil, StyleTikTok, 32)
	if !strings.Contains(ass, "[Script Info]") || !strings.Contains(ass, "[Events]") {
		t.Fatalf("empty input should still yield a valid document:\n%s", ass)
	}
	if strings.Contains(ass, "Dialogue:") {
		t.Fatalf("no events expected for empty input:\n%s", ass)
	}
}

func TestChunkWords_CharBudget(t *testing.T) {
	words := []types.Word{
		{Text: "aaaaaaaaaa"}, {Text: "bbbbbbbbbb"}, {Text: "cccccccccc"},
	}
	chunks := chunkWords(words, 24)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %+v", len(chunks), chunks)
	}
	if len(chunks[0]) != 2 || len(chunks[1]) != 1 {
		t.Fatalf("unexpected chunk split: %+v", chunks)
	}
}

func TestAssTime(t *testing.T) {
	if got := assTime(61.234); got != "0:01:01.23" {
		t.Fatalf("assTime(61.234) = %q", got)
	}
	if got := assTime(-1); got != "0:00:00.00" {
		t.Fatalf("assTime(-1) = %q", got)
	}
	if got := assTime(3661.5); got != "1:01:01.50" {
		t.Fatalf("assTime(3661.5) = %q", got)
	}
}

func TestSanitize(t *testing.T) {
	if got := sanitize(`{\b1}hi`); strings.ContainsAny(got, "{}") {
		t.Fatalf("braces must not survive sanitize: %q", got)
	}
}
