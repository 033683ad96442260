package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ArticleBrowser/internal/config"
)

func TestChatGPTTranslatorTranslate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var payload struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if payload.Model != "gpt-test" || len(payload.Messages) != 2 || payload.Messages[1].Content != "hola" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if !strings.Contains(payload.Messages[0].Content, "es to en") {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"  hello \n"}}]}`))
	}))
	defer server.Close()

	tr := NewChatGPTTranslator(config.ChatGPTConfig{Endpoint: server.URL, Model: "gpt-test", APIKey: "secret"}, "es", "en")
	got, err := tr.Translate(context.Background(), "hola")
	if err != nil {
		t.Fatalf("Translate error: %v", err)
	}
	if got != "hello" {
		t.Fatalf("unexpected translation: %q", got)
	}
}

func TestChatGPTTranslatorErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("slow down"))
	}))
	defer server.Close()

	tr := NewChatGPTTranslator(config.ChatGPTConfig{Endpoint: server.URL, Model: "m", APIKey: "k"}, "es", "en")
	_, err := tr.Translate(context.Background(), "hola")
	if err == nil || !strings.Contains(err.Error(), "slow down") {
		t.Fatalf("expected rate-limit error, got %v", err)
	}

	unconfigured := NewChatGPTTranslator(config.ChatGPTConfig{}, "es", "en")
	if _, err := unconfigured.Translate(context.Background(), "hola"); err == nil {
		t.Fatalf("expected misconfiguration error")
	}
}
