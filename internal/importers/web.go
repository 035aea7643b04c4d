package importers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
)

var (
	ErrUnsupportedURL = errors.New("only http and https URLs can be imported")
	ErrTooLarge       = errors.New("page exceeds import size limit")
	ErrNoContent      = errors.New("page has no readable text")
)

const (
	defaultTimeout  = 15 * time.Second
	defaultMaxBytes = 5 << 20
)

// WebImporter fetches articles and reduces them to their readable text.
type WebImporter struct {
	client    *http.Client
	maxBytes  int64
	userAgent string
}

// NewWebImporter creates an importer. Zero values pick defaults.
func NewWebImporter(timeout time.Duration, maxBytes int64, userAgent string) *WebImporter {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	return &WebImporter{
		client:    &http.Client{Timeout: timeout},
		maxBytes:  maxBytes,
		userAgent: userAgent,
	}
}

// Fetch downloads rawURL and extracts the article title and text.
func (w *WebImporter) Fetch(ctx context.Context, rawURL string) (Draft, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return Draft{}, fmt.Errorf("%w: %q", ErrUnsupportedURL, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return Draft{}, fmt.Errorf("failed to create request: %w", err)
	}
	if w.userAgent != "" {
		req.Header.Set("User-Agent", w.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := w.client.Do(req)
	if err != nil {
		return Draft{}, fmt.Errorf("failed to fetch %s: %w", parsed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Draft{}, fmt.Errorf("failed to fetch %s: status %d", parsed, resp.StatusCode)
	}
	if resp.ContentLength > w.maxBytes {
		return Draft{}, ErrTooLarge
	}

	// Read one byte past the limit to tell a full page from a truncated one.
	body, err := io.ReadAll(io.LimitReader(resp.Body, w.maxBytes+1))
	if err != nil {
		return Draft{}, fmt.Errorf("failed to read %s: %w", parsed, err)
	}
	if int64(len(body)) > w.maxBytes {
		return Draft{}, ErrTooLarge
	}

	article, err := readability.FromReader(bytes.NewReader(body), parsed)
	if err != nil {
		return Draft{}, fmt.Errorf("failed to extract article: %w", err)
	}

	content := strings.TrimSpace(article.TextContent)
	if content == "" {
		return Draft{}, ErrNoContent
	}
	title := strings.TrimSpace(article.Title)
	if title == "" {
		title = parsed.Host
	}
	return Draft{Title: title, Content: content, SourceURL: parsed.String()}, nil
}

// URLSource adapts a WebImporter and a list of URLs to a Source.
type URLSource struct {
	Importer *WebImporter
	URLs     []string
}

// Drafts fetches every URL in order and stops at the first failure.
func (s URLSource) Drafts(ctx context.Context) ([]Draft, error) {
	drafts := make([]Draft, 0, len(s.URLs))
	for _, u := range s.URLs {
		d, err := s.Importer.Fetch(ctx, u)
		if err != nil {
			return drafts, err
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}
