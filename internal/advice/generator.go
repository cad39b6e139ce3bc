// Package advice integrates the external feeding-advice generator. The
// generator is a collaborator, not part of the core: callers must treat
// any failure as a degraded response, never as a fatal error.
package advice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/inkyard/petstock-api/internal/models"
	"github.com/inkyard/petstock-api/pkg/config"
)

// Generator produces natural-language feeding advice for a pet.
type Generator interface {
	FeedingAdvice(ctx context.Context, pet models.Pet) (string, error)
}

// HTTPGenerator calls a generateContent-style REST endpoint.
type HTTPGenerator struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// NewHTTPGenerator builds a generator from config.
func NewHTTPGenerator(cfg config.AdviceConfig) *HTTPGenerator {
	return &HTTPGenerator{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
	Config   genConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type genConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens"`
	Temperature     float64 `json:"temperature"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// FeedingAdvice formats the pet's attributes into a prompt and returns
// the generated text.
func (g *HTTPGenerator) FeedingAdvice(ctx context.Context, pet models.Pet) (string, error) {
	prompt := fmt.Sprintf(
		"As a pet-care expert, give short feeding advice for the following animal.\nSpecies: %s\nGene/breed: %s\nWeight: %.2fkg\nCabinet: %s",
		pet.Species, pet.Gene, pet.Weight, pet.CabinetID,
	)

	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		Config:   genConfig{MaxOutputTokens: 200, Temperature: 0.7},
	})
	if err != nil {
		return "", fmt.Errorf("advice: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("advice: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("x-goog-api-key", g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("advice: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("advice: status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("advice: unmarshal response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("advice: empty response")
	}

	text := strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", fmt.Errorf("advice: empty response")
	}
	return text, nil
}
