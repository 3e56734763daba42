// Package article fetches a web page and extracts its readable text so the
// scan tools can work on prose instead of raw HTML.
package article

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	readability "github.com/go-shiori/go-readability"

	"github.com/chopain/yomikae-sub001/internal/errors"
)

// Article is the readable content extracted from a fetched page.
type Article struct {
	URL      string `json:"url"`
	Title    string `json:"title,omitempty"`
	SiteName string `json:"site_name,omitempty"`
	Byline   string `json:"byline,omitempty"`

	// Text is the extracted prose with markup stripped
	Text string `json:"text"`
}

// Fetcher downloads pages with a size cap and runs readability extraction.
type Fetcher struct {
	// Client is the HTTP client used for requests. Tests swap in their own.
	Client *http.Client

	// MaxBytes caps how much of the response body is read
	MaxBytes int64
}

// NewFetcher builds a fetcher capped at maxBytes per response.
func NewFetcher(maxBytes int64) *Fetcher {
	return &Fetcher{
		Client:   &http.Client{Timeout: 30 * time.Second},
		MaxBytes: maxBytes,
	}
}

// Fetch downloads rawURL and extracts its readable content. Ruby annotations
// are stripped before extraction so furigana does not duplicate the kanji it
// annotates.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Article, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("invalid url: %v", err))
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.NewInvalidRequest("url scheme must be http or https")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	// Some news sites refuse requests without browser-looking headers.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ja,en-US;q=0.9,en;q=0.8")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", rawURL, resp.StatusCode)
	}
	if resp.ContentLength > f.MaxBytes {
		return nil, errors.NewFileTooLarge(f.MaxBytes, resp.ContentLength)
	}

	// Read one byte past the cap so a body of exactly MaxBytes still passes.
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > f.MaxBytes {
		return nil, errors.NewFileTooLarge(f.MaxBytes, int64(len(body)))
	}

	body = SanitizeRuby(body)

	extracted, err := readability.FromReader(bytes.NewReader(body), parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to extract article from %s: %w", rawURL, err)
	}

	return &Article{
		URL:      rawURL,
		Title:    extracted.Title,
		SiteName: extracted.SiteName,
		Byline:   extracted.Byline,
		Text:     extracted.TextContent,
	}, nil
}

var (
	reRT = regexp.MustCompile(`(?si)<rt\b[^>]*>.*?</rt>`)
	reRP = regexp.MustCompile(`(?si)<rp\b[^>]*>.*?</rp>`)
)

// SanitizeRuby removes <rt> and <rp> elements from HTML. Readability keeps
// all text nodes, so without this a ruby-annotated 漢字 comes out as 漢字かんじ.
func SanitizeRuby(content []byte) []byte {
	cleaned := reRT.ReplaceAll(content, nil)
	return reRP.ReplaceAll(cleaned, nil)
}
