package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ArticleBrowser/internal/ports"
)

// Client talks to a LibreTranslate-style translation service.
type Client struct {
	endpoint   string
	apiKey     string
	sourceLang string
	targetLang string
	http       *http.Client
}

var _ ports.Translator = (*Client)(nil)

// NewClient creates a reusable HTTP client.
func NewClient(endpoint, apiKey, sourceLang, targetLang string) *Client {
	return &Client{
		endpoint:   strings.TrimSuffix(endpoint, "/"),
		apiKey:     apiKey,
		sourceLang: sourceLang,
		targetLang: targetLang,
		http:       &http.Client{Timeout: 15 * time.Second},
	}
}

// Name identifies the translator in logs.
func (c *Client) Name() string {
	return "translation-service"
}

// Translate posts text to the /translate endpoint.
func (c *Client) Translate(ctx context.Context, text string) (string, error) {
	if c.endpoint == "" {
		return "", fmt.Errorf("translation service endpoint is not configured")
	}

	payload := map[string]any{
		"q":      text,
		"source": c.sourceLang,
		"target": c.targetLang,
		"format": "text",
	}
	if c.apiKey != "" {
		payload["api_key"] = c.apiKey
	}

	var resp struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := c.post(ctx, "/translate", payload, &resp); err != nil {
		return "", err
	}

	out := strings.TrimSpace(resp.TranslatedText)
	if out == "" {
		return "", fmt.Errorf("translation service returned an empty translation")
	}
	return out, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, v any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			return fmt.Errorf("unexpected status %s, close body: %v", resp.Status, closeErr)
		}
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		_ = resp.Body.Close()
		return fmt.Errorf("decode response: %w", err)
	}

	if err := resp.Body.Close(); err != nil {
		return fmt.Errorf("close response body: %w", err)
	}

	return nil
}
