// Package types holds the data structures shared across the pipeline.
package types

// Platform identifies a short-form video destination. Values match the
// strings the clip model is prompted to emit.
type Platform string

const (
	PlatformTikTok        Platform = "tiktok"
	PlatformYouTubeShorts Platform = "youtube_shorts"
	PlatformReels         Platform = "reels"
	PlatformLinkedIn      Platform = "linkedin"
)

// Clip is one model-proposed segment of the source video. Start and End are
// seconds from the start of the source.
type Clip struct {
	Index      int
	Platform   Platform
	Start      float64
	End        float64
	Transcript string
	Hook       string
	Caption    string
}

func (c Clip) Duration() float64 {
	return c.End - c.Start
}

// Word is a single transcribed word with clip-local timing in seconds.
type Word struct {
	Text       string
	Start      float64
	End        float64
	Confidence float64
}

// SEOCaption is the research-backed caption package for one clip.
type SEOCaption struct {
	Platform      Platform `json:"platform"`
	TopicKeywords []string `json:"topic_keywords"`
	Caption       string   `json:"caption"`
	Hashtags      []string `json:"hashtags"`
	SEONotes      string   `json:"seo_notes"`
}

// Manifest summarizes a finished run, written next to the rendered clips.
type Manifest struct {
	Input   string         `json:"input"`
	VideoID string         `json:"video_id"`
	Clips   []ManifestClip `json:"clips"`
}

type ManifestClip struct {
	Index     int     `json:"index"`
	Platform  string  `json:"platform"`
	StartSec  float64 `json:"start_sec"`
	EndSec    float64 `json:"end_sec"`
	Hook      string  `json:"hook,omitempty"`
	File      string  `json:"file"`
	Subtitles string  `json:"subtitles,omitempty"`
	SEOFile   string  `json:"seo_file,omitempty"`
	Verdict   string  `json:"verdict"`
}
