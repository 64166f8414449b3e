// Package fetch downloads a URL into a scratch directory, preserving the
// host+path layout so repeated fetches of the same tree don't collide.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
)

// Fetcher downloads files under a single scratch root.
type Fetcher struct {
	ScratchRoot string
	Client      *http.Client
}

// New returns a Fetcher rooted at scratchRoot, using http.DefaultClient.
func New(scratchRoot string) *Fetcher {
	return &Fetcher{ScratchRoot: scratchRoot, Client: http.DefaultClient}
}

// Fetch downloads rawURL and returns the local path it was written to,
// under ScratchRoot/<host>/<path>. Any non-2xx response, or a transport
// failure, is returned verbatim (no retries). Redirects are followed by
// the underlying http.Client.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing url %q: %w", rawURL, err)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("building request for %q: %w", rawURL, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %q: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetching %q: unexpected status %d", rawURL, resp.StatusCode)
	}

	localPath := filepath.Join(f.ScratchRoot, u.Host, filepath.FromSlash(u.Path))
	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return "", fmt.Errorf("creating scratch dir for %q: %w", rawURL, err)
	}

	out, err := os.Create(localPath)
	if err != nil {
		return "", fmt.Errorf("creating %q: %w", localPath, err)
	}
	defer out.Close()

	if _, err := out.ReadFrom(resp.Body); err != nil {
		return "", fmt.Errorf("writing %q: %w", localPath, err)
	}

	return localPath, nil
}
