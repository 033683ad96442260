package ml

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClientTranslate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/translate" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var payload map[string]string
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if payload["source"] != "es" || payload["target"] != "en" || payload["api_key"] != "key" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"translatedText": strings.ToUpper(payload["q"])})
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", "key", "es", "en")
	got, err := client.Translate(context.Background(), "hola")
	if err != nil {
		t.Fatalf("Translate error: %v", err)
	}
	if got != "HOLA" {
		t.Fatalf("unexpected translation: %q", got)
	}
}

func TestClientTranslateFailures(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	if _, err := NewClient(server.URL, "", "es", "en").Translate(context.Background(), "hola"); err == nil {
		t.Fatalf("expected error for 503")
	}
	if _, err := NewClient("", "", "es", "en").Translate(context.Background(), "hola"); err == nil {
		t.Fatalf("expected error without endpoint")
	}
}

func TestClientTranslateRejectsMalformedBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, "", "es", "en").Translate(context.Background(), "hola")
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("expected decode error, got %v", err)
	}
}
