package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/textfeed/tfeed/internal/debuglog"
)

const userAgent = "tfeed/1.0 (text feed reader; github.com/textfeed/tfeed)"

// maxErrorBody caps how much of an error response body is carried into
// the error message.
const maxErrorBody = 4096

// FetchResult is the per-feed outcome of a batch fetch. Exactly one of
// Response and Err is set.
type FetchResult struct {
	Feed     FeedConfig
	Response *Response
	Err      error
}

// Gateway fetches feeds through the feed-to-JSON conversion endpoint.
// A fallback parser, when present, handles feeds the endpoint cannot
// reach by fetching and parsing the feed URL directly.
type Gateway struct {
	endpoint string
	client   *http.Client
	fallback *Parser
}

// NewGateway returns a gateway talking to the given conversion endpoint.
// A nil httpClient gets a default with a 30s timeout; a hung upstream
// must not wedge a whole fetch cycle.
func NewGateway(endpoint string, httpClient *http.Client) *Gateway {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Gateway{
		endpoint: strings.TrimRight(endpoint, "?&"),
		client:   httpClient,
	}
}

// SetFallback installs a direct-parse fallback tried whenever the
// conversion endpoint fails for a feed.
func (g *Gateway) SetFallback(p *Parser) { g.fallback = p }

// FetchAll issues one request per feed, concurrently, and waits for all
// of them to settle. Results arrive in input order. A failing feed never
// drops or delays the others past its own completion; its slot carries
// the error instead of a response.
func (g *Gateway) FetchAll(ctx context.Context, feeds []FeedConfig) []FetchResult {
	results := make([]FetchResult, len(feeds))

	var wg sync.WaitGroup
	for i, fc := range feeds {
		wg.Add(1)
		go func(i int, fc FeedConfig) {
			defer wg.Done()
			resp, err := g.fetchOne(ctx, fc)
			results[i] = FetchResult{Feed: fc, Response: resp, Err: err}
		}(i, fc)
	}
	wg.Wait()

	return results
}

func (g *Gateway) fetchOne(ctx context.Context, fc FeedConfig) (*Response, error) {
	resp, err := g.convert(ctx, fc)
	if err != nil && g.fallback != nil {
		debuglog.Warnf("conversion failed for %s, trying direct parse: %v", fc.URL, err)
		if direct, directErr := g.fallback.FetchAndParse(ctx, g.client, fc); directErr == nil {
			return direct, nil
		}
	}
	return resp, err
}

func (g *Gateway) convert(ctx context.Context, fc FeedConfig) (*Response, error) {
	target := g.endpoint + "?rss_url=" + url.QueryEscape(fc.URL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", fc.URL, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	httpResp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", fc.URL, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(httpResp.Body, maxErrorBody))
		return nil, fmt.Errorf("fetching %s: HTTP %d: %s",
			fc.URL, httpResp.StatusCode, strings.TrimSpace(string(body)))
	}

	var response Response
	if err := json.NewDecoder(httpResp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decoding response for %s: %w", fc.URL, err)
	}

	if response.Status != "ok" {
		return nil, fmt.Errorf("fetching %s: upstream status %q", fc.URL, response.Status)
	}

	response.FeedConfig = fc
	return &response, nil
}
