// Package claude is a raw HTTP client for the Anthropic Messages API. It is
// the primary upstream: the HTTP proxy relays its SSE body verbatim, the bot
// uses the non-streaming call.
package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"essay-proxy/api/internal/task"
)

const (
	apiVersion  = "2023-06-01"
	betaHeader  = "prompt-caching-2024-07-31"
	messagePath = "/v1/messages"
)

type Engine struct {
	APIKey  string
	Model   string
	BaseURL string
	httpc   *http.Client
}

func New(key, model, baseURL string) *Engine {
	if baseURL == "" {
		baseURL = "https://api.anthropic.com"
	}
	return &Engine{
		APIKey:  key,
		Model:   model,
		BaseURL: strings.TrimRight(baseURL, "/"),
		// No client timeout: streamed corrections can legitimately run for
		// minutes; callers bound the call with their context instead.
		httpc: &http.Client{},
	}
}

func (e *Engine) Name() string { return "claude" }

func (e *Engine) GetModel() string { return e.Model }

// UpstreamError carries the provider's status and raw body. The body is for
// server-side logs only and must never be relayed to callers.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("anthropic %d: %s", e.Status, truncate(e.Body, 2000))
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}

// Wire types per the Messages API.

type messagesRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	Stream    bool          `json:"stream,omitempty"`
	System    []systemBlock `json:"system"`
	Messages  []message     `json:"messages"`
}

type systemBlock struct {
	Type         string        `json:"type"`
	Text         string        `json:"text"`
	CacheControl *cacheControl `json:"cache_control,omitempty"`
}

type cacheControl struct {
	Type string `json:"type"`
}

type message struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *imageSource `json:"source,omitempty"`
}

type imageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (e *Engine) buildRequest(model string, maxTokens int, stream bool, system string, blocks []task.ContentBlock) ([]byte, error) {
	content := make([]contentBlock, 0, len(blocks))
	for _, b := range blocks {
		switch b.Type {
		case "image":
			content = append(content, contentBlock{
				Type: "image",
				Source: &imageSource{
					Type:      "base64",
					MediaType: b.MediaType,
					Data:      b.Data,
				},
			})
		default:
			content = append(content, contentBlock{Type: "text", Text: b.Text})
		}
	}
	req := messagesRequest{
		Model:     model,
		MaxTokens: maxTokens,
		Stream:    stream,
		// The composed instruction is deterministic per (kind, levels,
		// custom, dialect), so the ephemeral cache hint lets the provider
		// reuse it across requests.
		System: []systemBlock{{
			Type:         "text",
			Text:         system,
			CacheControl: &cacheControl{Type: "ephemeral"},
		}},
		Messages: []message{{Role: "user", Content: content}},
	}
	return json.Marshal(req)
}

func (e *Engine) do(ctx context.Context, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.BaseURL+messagePath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-api-key", e.APIKey)
	req.Header.Set("anthropic-version", apiVersion)
	req.Header.Set("anthropic-beta", betaHeader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		resp.Body.Close()
		return nil, &UpstreamError{Status: resp.StatusCode, Body: string(raw)}
	}
	return resp, nil
}

// Stream issues one streaming call and returns the response with its SSE
// body unread. The caller owns resp.Body and must close it; cancelling ctx
// aborts the stream.
func (e *Engine) Stream(ctx context.Context, model string, maxTokens int, system string, blocks []task.ContentBlock) (*http.Response, error) {
	body, err := e.buildRequest(model, maxTokens, true, system, blocks)
	if err != nil {
		return nil, err
	}
	return e.do(ctx, body)
}

// Correct satisfies engine.Engine using the engine's configured model.
func (e *Engine) Correct(ctx context.Context, system string, blocks []task.ContentBlock, maxTokens int) (string, error) {
	return e.Complete(ctx, e.Model, maxTokens, system, blocks)
}

// Complete issues one non-streaming call and returns the concatenated text
// content of the response.
func (e *Engine) Complete(ctx context.Context, model string, maxTokens int, system string, blocks []task.ContentBlock) (string, error) {
	body, err := e.buildRequest(model, maxTokens, false, system, blocks)
	if err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()

	resp, err := e.do(ctx, body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	var b strings.Builder
	for _, c := range out.Content {
		if c.Type == "text" && c.Text != "" {
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(c.Text)
		}
	}
	return b.String(), nil
}
