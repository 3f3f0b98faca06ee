package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/textfeed/tfeed/internal/debuglog"
)

// Extractor calls the article extraction service for items that arrive
// without a usable image or body. Both lookups are best effort: every
// failure is logged and swallowed, the article simply renders without
// the extra material.
type Extractor struct {
	imageEndpoint   string
	contentEndpoint string
	client          *http.Client
}

func NewExtractor(imageEndpoint, contentEndpoint string, httpClient *http.Client) *Extractor {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Extractor{
		imageEndpoint:   imageEndpoint,
		contentEndpoint: contentEndpoint,
		client:          httpClient,
	}
}

// ArticleImages returns candidate image URLs for an article page, or nil.
func (e *Extractor) ArticleImages(ctx context.Context, articleURL string) []string {
	var body struct {
		URLs []string `json:"urls"`
	}
	if err := e.get(ctx, e.imageEndpoint, articleURL, &body); err != nil {
		debuglog.Debugf("image lookup for %s: %v", articleURL, err)
		return nil
	}
	return body.URLs
}

// ArticleContent returns an extracted article body, or "".
func (e *Extractor) ArticleContent(ctx context.Context, articleURL string) string {
	var body struct {
		Content string `json:"content"`
	}
	if err := e.get(ctx, e.contentEndpoint, articleURL, &body); err != nil {
		debuglog.Debugf("content lookup for %s: %v", articleURL, err)
		return ""
	}
	return body.Content
}

func (e *Extractor) get(ctx context.Context, endpoint, articleURL string, out any) error {
	if endpoint == "" {
		return fmt.Errorf("no endpoint configured")
	}
	target := endpoint + "?url=" + url.QueryEscape(articleURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
