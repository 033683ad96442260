package parser

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Opener reads a batch location that is either a local path or an http(s) URL.
type Opener struct {
	client *http.Client
}

// NewOpener wires an HTTP client; a nil client gets a 20s timeout.
func NewOpener(client *http.Client) *Opener {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &Opener{client: client}
}

// Open returns a reader for location. Callers close it.
func (o *Opener) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	if location == "" {
		return nil, fmt.Errorf("empty location")
	}
	if !isRemote(location) {
		f, err := os.Open(location)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", location, err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "ArticleBrowser/1.0")

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", location, err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%s returned %s", location, resp.Status)
	}
	return resp.Body, nil
}

func isRemote(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
