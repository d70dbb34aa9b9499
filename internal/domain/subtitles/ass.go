// Package subtitles turns word-level transcription into ASS subtitle
// documents for burned-in captions on vertical video.
package subtitles

import (
	"fmt"
	"strings"

	"clipcutter/internal/types"
)

// Style selects the caption look.
type Style string

const (
	// StyleTikTok shows whole phrases with the active word tinted and
	// popped larger while it is being spoken.
	StyleTikTok Style = "tiktok"
	// StyleStandard is plain white phrase-at-a-time text.
	StyleStandard Style = "standard"
)

const (
	// 1080x1920 portrait canvas; a 16:9 source centered in it ends at
	// y=1264, so MarginV=560 parks captions just below the video.
	playResX       = 1080
	playResY       = 1920
	captionMarginV = 560

	// Accent #2563EB in ASS BGR notation.
	accentColour = "&HEB6325&"

	defaultCharsPerLine = 32
)

// Render produces a complete ASS document from clip-local words. An empty
// word list yields a valid document with no events, which keeps captionless
// clips renderable.
func Render(words []types.Word, style Style, charsPerLine int) string {
	if charsPerLine <= 0 {
		charsPerLine = defaultCharsPerLine
	}

	var b strings.Builder
	b.WriteString(header(style))
	b.WriteString("\n[Events]\n")
	b.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")

	chunks := chunkWords(words, charsPerLine)
	switch style {
	case StyleTikTok:
		writePopEvents(&b, chunks)
	default:
		writeStandardEvents(&b, chunks)
	}
	return b.String()
}

func header(style Style) string {
	if style == StyleTikTok {
		return fmt.Sprintf(strings.TrimSpace(`
[Script Info]
Title: TikTok Style Captions
ScriptType: v4.00+
PlayResX: %d
PlayResY: %d
WrapStyle: 0

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: Default,Arial Black,64,&H00FFFFFF,%s,&H00000000,&HC0000000,1,0,0,0,100,100,0,0,1,4,2,2,20,20,%d,1
`), playResX, playResY, accentColour, captionMarginV) + "\n"
	}
	return fmt.Sprintf(strings.TrimSpace(`
[Script Info]
Title: Captions
ScriptType: v4.00+
PlayResX: %d
PlayResY: %d
WrapStyle: 0

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: Default,Arial,56,&H00FFFFFF,&H00FFFFFF,&H00000000,&H80000000,0,0,0,0,100,100,0,0,1,3,1,2,20,20,%d,1
`), playResX, playResY, captionMarginV) + "\n"
}

// writePopEvents emits one event per word, showing the whole chunk with the
// active word highlighted and scaled. Events run until the NEXT word starts,
// not until the current word ends, so captions do not flash off during
// pauses in speech.
func writePopEvents(b *strings.Builder, chunks [][]types.Word) {
	for _, chunk := range chunks {
		if len(chunk) == 0 {
			continue
		}
		chunkEnd := chunk[len(chunk)-1].End

		for i, active := range chunk {
			eventEnd := chunkEnd
			if i < len(chunk)-1 {
				eventEnd = chunk[i+1].Start
			}

			// Pop animation is paced by the spoken word, not the event.
			wordMS := int((active.End - active.Start) * 1000)
			popIn := clampInt(wordMS/4, 40, 80)
			popOut := clampInt(wordMS/4, 40, 80)
			hold := wordMS - popIn - popOut
			if hold < 0 {
				hold = 0
			}

			var text strings.Builder
			for j, w := range chunk {
				if j > 0 {
					text.WriteString(" ")
				}
				if j == i {
					fmt.Fprintf(&text,
						`{\c%s\fscx100\fscy100\t(0,%d,\fscx130\fscy130)\t(%d,%d,\fscx100\fscy100)}%s`,
						accentColour, popIn, popIn+hold, wordMS, sanitize(w.Text))
				} else {
					fmt.Fprintf(&text, `{\c&HFFFFFF&\fscx85\fscy85\alpha&H40&}%s`, sanitize(w.Text))
				}
			}

			fmt.Fprintf(b, "Dialogue: 0,%s,%s,Default,,0,0,0,,%s\n",
				assTime(active.Start), assTime(eventEnd), text.String())
		}
	}
}

func writeStandardEvents(b *strings.Builder, chunks [][]types.Word) {
	for _, chunk := range chunks {
		if len(chunk) == 0 {
			continue
		}
		parts := make([]string, 0, len(chunk))
		for _, w := range chunk {
			parts = append(parts, sanitize(w.Text))
		}
		fmt.Fprintf(b, "Dialogue: 0,%s,%s,Default,,0,0,0,,%s\n",
			assTime(chunk[0].Start), assTime(chunk[len(chunk)-1].End), strings.Join(parts, " "))
	}
}

// chunkWords groups words into display lines capped by character budget.
func chunkWords(words []types.Word, charsPerLine int) [][]types.Word {
	var chunks [][]types.Word
	var cur []types.Word
	curLen := 0

	for _, w := range words {
		wl := len([]rune(w.Text)) + 1
		if curLen+wl > charsPerLine && len(cur) > 0 {
			chunks = append(chunks, cur)
			cur = nil
			curLen = 0
		}
		cur = append(cur, w)
		curLen += wl
	}
	if len(cur) > 0 {
		chunks = append(chunks, cur)
	}
	return chunks
}

// assTime formats seconds as the ASS "H:MM:SS.cc" timestamp.
func assTime(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	cs := int64(sec*100 + 0.5)
	h := cs / 360_000
	cs -= h * 360_000
	m := cs / 6000
	cs -= m * 6000
	s := cs / 100
	cs -= s * 100
	return fmt.Sprintf("%d:%02d:%02d.%02d", h, m, s, cs)
}

func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "{", "(")
	s = strings.ReplaceAll(s, "}", ")")
	return strings.TrimSpace(s)
}

func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
