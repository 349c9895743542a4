// Package gemini is the alternate bot engine, built on the official genai
// client. It only supports the non-streaming correction call.
package gemini

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"essay-proxy/api/internal/task"
)

type Engine struct {
	APIKey string
	Model  string
}

func New(apiKey, model string) *Engine {
	return &Engine{
		APIKey: strings.TrimSpace(apiKey),
		Model:  strings.TrimSpace(model),
	}
}

func (e *Engine) Name() string     { return "gemini" }
func (e *Engine) GetModel() string { return e.Model }

func (e *Engine) Correct(ctx context.Context, system string, blocks []task.ContentBlock, maxTokens int) (string, error) {
	if e.APIKey == "" {
		return "", errors.New("GEMINI_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return "", err
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	if m == nil {
		return "", fmt.Errorf("gemini: model is nil")
	}
	m.GenerationConfig = genai.GenerationConfig{
		MaxOutputTokens: ptrInt32(int32(maxTokens)),
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(system)},
	}

	parts := make([]genai.Part, 0, len(blocks))
	for _, b := range blocks {
		switch b.Type {
		case "image":
			raw, err := base64.StdEncoding.DecodeString(b.Data)
			if err != nil {
				return "", fmt.Errorf("gemini: bad image payload: %w", err)
			}
			parts = append(parts, genai.Blob{
				MIMEType: b.MediaType,
				Data:     raw,
			})
		default:
			parts = append(parts, genai.Text(b.Text))
		}
	}

	resp, err := m.GenerateContent(ctx, parts...)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini: empty response")
	}
	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return sb.String(), nil
}

func ptrInt32(v int32) *int32 { return &v }
