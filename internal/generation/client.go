package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Params is the payload of one generation request. Images are optional
// base64 payloads used for image-to-image prompts.
type Params struct {
	Prompt         string `json:"prompt"`
	Image1         string `json:"image1,omitempty"`
	Image2         string `json:"image2,omitempty"`
	Image1MimeType string `json:"image1MimeType,omitempty"`
	Image2MimeType string `json:"image2MimeType,omitempty"`
}

// Result is the generated output.
type Result struct {
	ImageData     string
	ImageMimeType string
	Thinking      []string
}

// Generator invokes the paid downstream action. It is called exactly once
// per consumed payment, only after authorization succeeds.
type Generator interface {
	Generate(ctx context.Context, params Params) (*Result, error)
}

// ErrNoImage is returned when the upstream answered but produced no image.
var ErrNoImage = errors.New("generation response contained no image")

// Upstream response shape (Gemini-style candidates/parts).
type upstreamResponse struct {
	Candidates []struct {
		Content struct {
			Parts []upstreamPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type upstreamPart struct {
	Thought    bool   `json:"thought,omitempty"`
	Text       string `json:"text,omitempty"`
	InlineData *struct {
		Data     string `json:"data"`
		MimeType string `json:"mimeType"`
	} `json:"inlineData,omitempty"`
}

// HTTPGenerator calls the external image-generation endpoint over HTTP.
type HTTPGenerator struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

// Compile-time interface compliance check
var _ Generator = (*HTTPGenerator)(nil)

// NewHTTPGenerator creates a generator client with a bounded timeout.
func NewHTTPGenerator(url string, timeout time.Duration, logger *zap.Logger) *HTTPGenerator {
	return &HTTPGenerator{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Generate posts the prompt to the generation endpoint and extracts the
// image part plus any thinking text from the response.
func (g *HTTPGenerator) Generate(ctx context.Context, params Params) (*Result, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("marshal generation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call generation endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.logger.Warn("generation endpoint returned non-OK status",
			zap.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("generation endpoint returned status %d", resp.StatusCode)
	}

	var upstream upstreamResponse
	if err := json.NewDecoder(resp.Body).Decode(&upstream); err != nil {
		return nil, fmt.Errorf("decode generation response: %w", err)
	}

	if len(upstream.Candidates) == 0 {
		return nil, ErrNoImage
	}

	result := &Result{}
	for _, part := range upstream.Candidates[0].Content.Parts {
		if part.Thought && part.Text != "" {
			result.Thinking = append(result.Thinking, part.Text)
		}
		if part.InlineData != nil && result.ImageData == "" {
			result.ImageData = part.InlineData.Data
			result.ImageMimeType = part.InlineData.MimeType
		}
	}

	if result.ImageData == "" {
		return nil, ErrNoImage
	}

	return result, nil
}
