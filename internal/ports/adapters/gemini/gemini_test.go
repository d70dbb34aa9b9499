package gemini

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipcutter/internal/types"
)

func TestDecodeSEOResponse(t *testing.T) {
	clip := types.Clip{
		Index:    1,
		Platform: types.PlatformTikTok,
		Hook:     "You won't believe this",
	}

	t.Run("full response", func(t *testing.T) {
		sc, err := decodeSEOResponse("```json\n{\"platform\":\"tiktok\",\"topic_keywords\":[\"ai\"],\"caption\":\"AI changed everything\",\"hashtags\":[\"ai\",\"tech\"],\"seo_notes\":\"trending\"}\n```", clip)
		require.NoError(t, err)
		assert.Equal(t, types.PlatformTikTok, sc.Platform)
		assert.Equal(t, "AI changed everything", sc.Caption)
		assert.Equal(t, []string{"ai", "tech"}, sc.Hashtags)
	})

	t.Run("missing fields fall back to clip", func(t *testing.T) {
		sc, err := decodeSEOResponse(`{"hashtags":["fyp"]}`, clip)
		require.NoError(t, err)
		assert.Equal(t, clip.Platform, sc.Platform)
		assert.Equal(t, clip.Hook, sc.Caption)
	})

	t.Run("prose around the object", func(t *testing.T) {
		sc, err := decodeSEOResponse(`Here is your caption: {"caption":"hi"} hope it helps`, clip)
		require.NoError(t, err)
		assert.Equal(t, "hi", sc.Caption)
	})

	t.Run("no JSON at all", func(t *testing.T) {
		_, err := decodeSEOResponse("sorry, I cannot help with that", clip)
		assert.Error(t, err)
	})
}

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.Error(t, err)
}
