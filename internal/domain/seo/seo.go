// Package seo holds the caption/hashtag bundle shapes and the deterministic
// fallbacks used when the research call fails. Failure to research hashtags
// should never sink an otherwise good render.
package seo

import (
	"encoding/json"
	"fmt"

	"clipcutter/internal/types"
)

var defaultHashtags = map[types.Platform][]string{
	types.PlatformTikTok:        {"fyp", "viral", "trending", "foryou", "foryoupage"},
	types.PlatformYouTubeShorts: {"Shorts", "viral", "trending", "subscribe"},
	types.PlatformReels:         {"reels", "viral", "explore", "trending", "instagram"},
	types.PlatformLinkedIn:      {"leadership", "business", "growth"},
}

// Fallback builds a basic caption from the clip's own hook plus stock
// hashtags for the platform.
func Fallback(c types.Clip) types.SEOCaption {
	return types.SEOCaption{
		Platform: c.Platform,
		Caption:  c.Hook,
		Hashtags: defaultHashtags[c.Platform],
		SEONotes: "fallback caption, SEO research unavailable",
	}
}

// Sidecar serializes the posting-relevant subset (caption + hashtags) for
// the JSON file saved next to the rendered clip.
func Sidecar(sc types.SEOCaption) ([]byte, error) {
	payload := struct {
		Caption  string   `json:"caption"`
		Hashtags []string `json:"hashtags"`
	}{Caption: sc.Caption, Hashtags: sc.Hashtags}

	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal seo sidecar: %w", err)
	}
	return b, nil
}
