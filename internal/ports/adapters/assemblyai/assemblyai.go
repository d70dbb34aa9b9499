// Package assemblyai fetches word-level timestamps for clip audio via the
// AssemblyAI transcription API.
package assemblyai

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"clipcutter/internal/types"
)

const defaultBaseURL = "https://api.assemblyai.com"

type Client struct {
	http         *resty.Client
	logger       *zap.Logger
	pollInterval time.Duration
}

// New builds a client against the public API. baseURL is overridable for
// tests.
func New(apiKey, baseURL string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	hc := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Authorization", apiKey).
		SetTimeout(2 * time.Minute)
	return &Client{http: hc, logger: logger, pollInterval: 2 * time.Second}
}

type uploadResponse struct {
	UploadURL string `json:"upload_url"`
}

type transcriptRequest struct {
	AudioURL string `json:"audio_url"`
}

type transcriptResponse struct {
	ID     string  `json:"id"`
	Status string  `json:"status"`
	Error  string  `json:"error"`
	Words  []aWord `json:"words"`
}

type aWord struct {
	Text       string  `json:"text"`
	StartMS    int     `json:"start"`
	EndMS      int     `json:"end"`
	Confidence float64 `json:"confidence"`
}

// TranscribeWords uploads the WAV, submits a transcription job, and polls
// until it settles. Word timings come back in milliseconds and are converted
// to seconds.
func (c *Client) TranscribeWords(ctx context.Context, wavPath string) ([]types.Word, error) {
	audio, err := os.ReadFile(wavPath)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}

	var up uploadResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/octet-stream").
		SetBody(audio).
		SetResult(&up).
		Post("/v2/upload")
	if err != nil {
		return nil, fmt.Errorf("assemblyai upload: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("assemblyai upload: HTTP %d: %s", resp.StatusCode(), resp.String())
	}
	if up.UploadURL == "" {
		return nil, fmt.Errorf("assemblyai upload: empty upload_url")
	}

	var job transcriptResponse
	resp, err = c.http.R().
		SetContext(ctx).
		SetBody(transcriptRequest{AudioURL: up.UploadURL}).
		SetResult(&job).
		Post("/v2/transcript")
	if err != nil {
		return nil, fmt.Errorf("assemblyai submit: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("assemblyai submit: HTTP %d: %s", resp.StatusCode(), resp.String())
	}
	if job.ID == "" {
		return nil, fmt.Errorf("assemblyai submit: empty transcript id")
	}

	c.logger.Debug("transcription submitted", zap.String("id", job.ID))
	return c.poll(ctx, job.ID)
}

func (c *Client) poll(ctx context.Context, id string) ([]types.Word, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		var tr transcriptResponse
		resp, err := c.http.R().
			SetContext(ctx).
			SetResult(&tr).
			Get("/v2/transcript/" + id)
		if err != nil {
			return nil, fmt.Errorf("assemblyai poll: %w", err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("assemblyai poll: HTTP %d: %s", resp.StatusCode(), resp.String())
		}

		switch tr.Status {
		case "completed":
			words := make([]types.Word, 0, len(tr.Words))
			for _, w := range tr.Words {
				words = append(words, types.Word{
					Text:       w.Text,
					Start:      float64(w.StartMS) / 1000.0,
					End:        float64(w.EndMS) / 1000.0,
					Confidence: w.Confidence,
				})
			}
			return words, nil
		case "error":
			return nil, fmt.Errorf("assemblyai transcription failed: %s", tr.Error)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
