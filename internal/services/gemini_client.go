package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"mgaBack/internal/models"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel   = "gemini-2.5-flash"
)

// GenerateRequest is one call to the generative-text service. When Schema is
// set the service is constrained to emit JSON matching it.
type GenerateRequest struct {
	Prompt string
	JSON   bool
	Schema map[string]interface{}
}

type GenerateResponse struct {
	Text string
}

// TextGenerationClient is the boundary to the generative AI service. The core
// depends on it only as a black box returning text or parseable JSON.
type TextGenerationClient interface {
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)
}

type GeminiClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	model      string
}

func NewGeminiClient(httpClient *http.Client, apiKey, model string) *GeminiClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiClient{
		httpClient: httpClient,
		apiKey:     apiKey,
		baseURL:    defaultGeminiBaseURL,
		model:      model,
	}
}

// WithBaseURL points the client at a different endpoint. Used by tests.
func (c *GeminiClient) WithBaseURL(baseURL string) *GeminiClient {
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

func (c *GeminiClient) Configured() bool {
	return c != nil && strings.TrimSpace(c.apiKey) != ""
}

func (c *GeminiClient) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
	if c == nil {
		return GenerateResponse{}, errors.New("gemini client is not configured")
	}
	if strings.TrimSpace(c.apiKey) == "" {
		return GenerateResponse{}, models.ErrAINotConfigured
	}

	generationConfig := map[string]interface{}{}
	if req.JSON {
		generationConfig["responseMimeType"] = "application/json"
	}
	if req.Schema != nil {
		generationConfig["responseSchema"] = req.Schema
	}

	payload := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]string{{"text": req.Prompt}}},
		},
	}
	if len(generationConfig) > 0 {
		payload["generationConfig"] = generationConfig
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return GenerateResponse{}, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", strings.TrimRight(c.baseURL, "/"), c.model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return GenerateResponse{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return GenerateResponse{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return GenerateResponse{}, fmt.Errorf("gemini error: status %d: %s", resp.StatusCode, string(data))
	}

	var parsed struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return GenerateResponse{}, fmt.Errorf("decode response: %w", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return GenerateResponse{}, errors.New("gemini returned no candidates")
	}

	return GenerateResponse{Text: parsed.Candidates[0].Content.Parts[0].Text}, nil
}

// stripCodeFence removes a markdown code fence the model sometimes wraps JSON
// answers in.
func stripCodeFence(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
