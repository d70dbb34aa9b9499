// Package gemini implements clip discovery and SEO caption generation on
// top of the Gemini API.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"clipcutter/internal/domain/clips"
	"clipcutter/internal/types"
)

const (
	// Per-call ceiling to bound runaway API spend.
	callTimeout = 2 * time.Minute

	defaultClipModel = "gemini-3-pro-preview"
	defaultSEOModel  = "gemini-3-flash-preview"
)

const clipPrompt = `You are a short-form video editor. Given a timestamped
transcript of a long-form video, find the segments with the highest viral
potential as standalone vertical clips.

For each clip pick the single best target platform: "tiktok",
"youtube_shorts", "reels" or "linkedin". Clips must start at a natural
sentence boundary and end on a complete thought. Prefer segments with a
strong hook in the first three seconds.

Respond with ONLY a JSON array, one object per clip:
[
  {
    "platform": "tiktok",
    "start": "0:01:23.500",
    "end": "0:01:51.000",
    "transcript": "verbatim transcript of the segment",
    "hook": "one-line attention hook",
    "caption": "post caption (required for linkedin, optional otherwise)"
  }
]

Timestamps use H:MM:SS.mmm and must come from the transcript. Return at
most 8 clips. Do not wrap the JSON in markdown fences.`

const seoPrompt = `You are a social media SEO specialist. Research current
trends for the topic below using web search, then write a platform-tuned
caption and hashtag set for the clip.

Respond with ONLY a JSON object:
{
  "platform": "...",
  "topic_keywords": ["..."],
  "caption": "...",
  "hashtags": ["...", "..."],
  "seo_notes": "what the research found"
}

Do not wrap the JSON in markdown fences.`

type Client struct {
	client    *genai.Client
	clipModel string
	seoModel  string
	logger    *zap.Logger
}

type Config struct {
	APIKey    string
	ClipModel string
	SEOModel  string
	Logger    *zap.Logger
}

func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	if cfg.ClipModel == "" {
		cfg.ClipModel = defaultClipModel
	}
	if cfg.SEOModel == "" {
		cfg.SEOModel = defaultSEOModel
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &Client{
		client:    c,
		clipModel: cfg.ClipModel,
		seoModel:  cfg.SEOModel,
		logger:    cfg.Logger,
	}, nil
}

func (c *Client) FindClips(ctx context.Context, transcript string) ([]types.Clip, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	started := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.clipModel,
		genai.Text(clipPrompt+"\n\nTRANSCRIPT:\n"+transcript), nil)
	if err != nil {
		return nil, fmt.Errorf("gemini clip analysis (after %s): %w", time.Since(started).Round(time.Second), err)
	}

	raw, err := clips.ExtractJSONArray(resp.Text())
	if err != nil {
		return nil, fmt.Errorf("gemini clip analysis: %w", err)
	}
	found, err := clips.DecodeRecords([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("gemini clip analysis: %w", err)
	}
	c.logger.Info("clip analysis complete",
		zap.Int("clips", len(found)),
		zap.Duration("elapsed", time.Since(started)))
	return found, nil
}

func (c *Client) WriteSEO(ctx context.Context, clip types.Clip) (types.SEOCaption, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	prompt := fmt.Sprintf("%s\n\nCLIP DETAILS:\n- Platform: %s\n- Duration: %.1f seconds\n- Hook: %s\n- Transcript: %s\n",
		seoPrompt, clip.Platform, clip.Duration(), clip.Hook, clip.Transcript)

	// Search grounding gives the model live trend data to draw hashtags from.
	cfg := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.seoModel, genai.Text(prompt), cfg)
	if err != nil {
		return types.SEOCaption{}, fmt.Errorf("gemini seo research: %w", err)
	}

	sc, err := decodeSEOResponse(resp.Text(), clip)
	if err != nil {
		return types.SEOCaption{}, fmt.Errorf("gemini seo research: %w", err)
	}
	return sc, nil
}

// decodeSEOResponse parses the model's JSON object, filling gaps from the
// clip itself so one sloppy field does not sink the whole caption.
func decodeSEOResponse(text string, clip types.Clip) (types.SEOCaption, error) {
	raw, err := clips.ExtractJSONObject(text)
	if err != nil {
		return types.SEOCaption{}, err
	}

	var sc types.SEOCaption
	if err := json.Unmarshal([]byte(raw), &sc); err != nil {
		return types.SEOCaption{}, fmt.Errorf("decode seo JSON: %w", err)
	}
	if sc.Platform == "" {
		sc.Platform = clip.Platform
	}
	if sc.Caption == "" {
		sc.Caption = clip.Hook
	}
	return sc, nil
}
