package assemblyai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestWav(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "clip.wav")
	require.NoError(t, os.WriteFile(p, []byte("RIFF....WAVE"), 0o644))
	return p
}

func TestTranscribeWords(t *testing.T) {
	var polls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v2/upload":
			assert.Equal(t, "test-key", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(map[string]string{"upload_url": "https://cdn.example/audio"})
		case r.Method == http.MethodPost && r.URL.Path == "/v2/transcript":
			var req map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "https://cdn.example/audio", req["audio_url"])
			json.NewEncoder(w).Encode(map[string]string{"id": "tr_123", "status": "queued"})
		case r.Method == http.MethodGet && r.URL.Path == "/v2/transcript/tr_123":
			if polls.Add(1) < 2 {
				json.NewEncoder(w).Encode(map[string]string{"id": "tr_123", "status": "processing"})
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"id":     "tr_123",
				"status": "completed",
				"words": []map[string]any{
					{"text": "Hello", "start": 0, "end": 300, "confidence": 0.98},
					{"text": "world", "start": 300, "end": 820, "confidence": 0.95},
				},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New("test-key", srv.URL, nil)
	c.pollInterval = 10 * time.Millisecond

	words, err := c.TranscribeWords(context.Background(), writeTestWav(t))
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, "Hello", words[0].Text)
	assert.InDelta(t, 0.3, words[0].End, 1e-9)
	assert.InDelta(t, 0.3, words[1].Start, 1e-9)
	assert.InDelta(t, 0.82, words[1].End, 1e-9)
	assert.GreaterOrEqual(t, polls.Load(), int32(2))
}

func TestTranscribeWords_JobError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/v2/upload":
			json.NewEncoder(w).Encode(map[string]string{"upload_url": "https://cdn.example/audio"})
		case r.Method == http.MethodPost && r.URL.Path == "/v2/transcript":
			json.NewEncoder(w).Encode(map[string]string{"id": "tr_err", "status": "queued"})
		default:
			json.NewEncoder(w).Encode(map[string]string{"id": "tr_err", "status": "error", "error": "audio too quiet"})
		}
	}))
	defer srv.Close()

	c := New("test-key", srv.URL, nil)
	c.pollInterval = 10 * time.Millisecond

	_, err := c.TranscribeWords(context.Background(), writeTestWav(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "audio too quiet")
}

func TestTranscribeWords_ContextCancelledDuringPoll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/v2/upload":
			json.NewEncoder(w).Encode(map[string]string{"upload_url": "https://cdn.example/audio"})
		case r.Method == http.MethodPost && r.URL.Path == "/v2/transcript":
			json.NewEncoder(w).Encode(map[string]string{"id": "tr_slow", "status": "queued"})
		default:
			json.NewEncoder(w).Encode(map[string]string{"id": "tr_slow", "status": "processing"})
		}
	}))
	defer srv.Close()

	c := New("test-key", srv.URL, nil)
	c.pollInterval = 50 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
	defer cancel()

	_, err := c.TranscribeWords(ctx, writeTestWav(t))
	require.Error(t, err)
}

func TestTranscribeWords_UploadHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"bad key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New("bad-key", srv.URL, nil)
	_, err := c.TranscribeWords(context.Background(), writeTestWav(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
