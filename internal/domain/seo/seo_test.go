package seo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipcutter/internal/types"
)

func TestFallback(t *testing.T) {
	c := types.Clip{Platform: types.PlatformTikTok, Hook: "You won't believe this"}
	got := Fallback(c)

	assert.Equal(t, c.Hook, got.Caption)
	assert.Contains(t, got.Hashtags, "fyp")
	assert.NotEmpty(t, got.SEONotes)

	// Unknown platforms still get a usable caption, just without hashtags.
	odd := Fallback(types.Clip{Platform: types.Platform("myspace"), Hook: "h"})
	assert.Empty(t, odd.Hashtags)
	assert.Equal(t, "h", odd.Caption)
}

func TestSidecar(t *testing.T) {
	b, err := Sidecar(types.SEOCaption{
		Platform: types.PlatformReels,
		Caption:  "watch this",
		Hashtags: []string{"reels", "viral"},
		SEONotes: "notes stay out of the sidecar",
	})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "watch this", got["caption"])
	assert.Len(t, got, 2, "sidecar keeps only caption and hashtags")
}
