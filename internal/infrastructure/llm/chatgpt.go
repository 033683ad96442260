package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ArticleBrowser/internal/config"
	"ArticleBrowser/internal/ports"
)

// ChatGPTTranslator implements ports.Translator backed by OpenAI-compatible chat APIs.
type ChatGPTTranslator struct {
	endpoint     string
	model        string
	apiKey       string
	systemPrompt string
	httpClient   *http.Client
}

var _ ports.Translator = (*ChatGPTTranslator)(nil)

// NewChatGPTTranslator builds a translator from configuration.
func NewChatGPTTranslator(cfg config.ChatGPTConfig, sourceLang, targetLang string) *ChatGPTTranslator {
	return &ChatGPTTranslator{
		endpoint:     cfg.Endpoint,
		model:        cfg.Model,
		apiKey:       cfg.APIKey,
		systemPrompt: safePrompt(cfg.SystemPrompt, sourceLang, targetLang),
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// Name identifies the translator in logs.
func (c *ChatGPTTranslator) Name() string {
	return "chatgpt"
}

// Translate sends text as the user message and returns the first choice.
func (c *ChatGPTTranslator) Translate(ctx context.Context, text string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("chatgpt translator is nil")
	}
	if c.apiKey == "" || c.endpoint == "" || c.model == "" {
		return "", fmt.Errorf("chatgpt translator misconfigured")
	}

	body, err := json.Marshal(map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": c.systemPrompt},
			{"role": "user", "content": text},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal chatgpt payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send translation: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("chatgpt error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var decoded struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode chatgpt response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("chatgpt returned no choices")
	}

	out := strings.TrimSpace(decoded.Choices[0].Message.Content)
	if out == "" {
		return "", fmt.Errorf("chatgpt returned an empty translation")
	}
	return out, nil
}

func safePrompt(prompt, sourceLang, targetLang string) string {
	prompt = strings.TrimSpace(prompt)
	if prompt != "" {
		return prompt
	}
	if sourceLang == "" {
		sourceLang = "the source language"
	}
	if targetLang == "" {
		targetLang = "English"
	}
	return fmt.Sprintf("Translate the user's news summary from %s to %s. Reply with the translation only.", sourceLang, targetLang)
}
