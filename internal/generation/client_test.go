package generation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func upstreamBody(parts ...map[string]any) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": parts}},
		},
	}
}

func TestGenerate_Success(t *testing.T) {
	var received Params
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		json.NewEncoder(w).Encode(upstreamBody(
			map[string]any{"thought": true, "text": "sketching the scene"},
			map[string]any{"thought": true, "text": "choosing a palette"},
			map[string]any{"inlineData": map[string]any{"data": "aW1hZ2U=", "mimeType": "image/png"}},
		))
	}))
	defer server.Close()

	g := NewHTTPGenerator(server.URL, 5*time.Second, zap.NewNop())
	result, err := g.Generate(context.Background(), Params{Prompt: "a lighthouse at dusk"})
	require.NoError(t, err)

	assert.Equal(t, "a lighthouse at dusk", received.Prompt)
	assert.Equal(t, "aW1hZ2U=", result.ImageData)
	assert.Equal(t, "image/png", result.ImageMimeType)
	assert.Equal(t, []string{"sketching the scene", "choosing a palette"}, result.Thinking)
}

func TestGenerate_FirstImageWins(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(upstreamBody(
			map[string]any{"inlineData": map[string]any{"data": "Zmlyc3Q=", "mimeType": "image/png"}},
			map[string]any{"inlineData": map[string]any{"data": "c2Vjb25k", "mimeType": "image/jpeg"}},
		))
	}))
	defer server.Close()

	g := NewHTTPGenerator(server.URL, 5*time.Second, zap.NewNop())
	result, err := g.Generate(context.Background(), Params{Prompt: "p"})
	require.NoError(t, err)
	assert.Equal(t, "Zmlyc3Q=", result.ImageData)
	assert.Equal(t, "image/png", result.ImageMimeType)
}

func TestGenerate_NoImage(t *testing.T) {
	t.Run("no candidates", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
		}))
		defer server.Close()

		g := NewHTTPGenerator(server.URL, 5*time.Second, zap.NewNop())
		_, err := g.Generate(context.Background(), Params{Prompt: "p"})
		assert.ErrorIs(t, err, ErrNoImage)
	})

	t.Run("text only", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			json.NewEncoder(w).Encode(upstreamBody(
				map[string]any{"thought": true, "text": "thinking without output"},
			))
		}))
		defer server.Close()

		g := NewHTTPGenerator(server.URL, 5*time.Second, zap.NewNop())
		_, err := g.Generate(context.Background(), Params{Prompt: "p"})
		assert.ErrorIs(t, err, ErrNoImage)
	})
}

func TestGenerate_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	g := NewHTTPGenerator(server.URL, 5*time.Second, zap.NewNop())
	_, err := g.Generate(context.Background(), Params{Prompt: "p"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestGenerate_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := NewHTTPGenerator(server.URL, 5*time.Second, zap.NewNop())
	_, err := g.Generate(ctx, Params{Prompt: "p"})
	assert.Error(t, err)
}
