package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/mmcdole/gofeed"
)

// Parser turns a raw RSS/Atom/JSON feed into the same Response shape the
// conversion endpoint produces, so the merge path downstream never has to
// care which route a feed arrived by.
type Parser struct {
	parser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{parser: gofeed.NewParser()}
}

// FetchAndParse fetches the feed URL itself and parses the body locally.
func (p *Parser) FetchAndParse(ctx context.Context, client *http.Client, fc FeedConfig) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fc.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", fc.URL, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", fc.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fetching %s: HTTP %d", fc.URL, resp.StatusCode)
	}

	return p.Parse(resp.Body, fc)
}

// Parse converts a raw feed document into a Response with Status "ok".
func (p *Parser) Parse(r io.Reader, fc FeedConfig) (*Response, error) {
	parsed, err := p.parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", fc.URL, err)
	}

	response := &Response{
		Status: "ok",
		Feed: FeedMeta{
			URL:         fc.URL,
			Title:       parsed.Title,
			Link:        parsed.Link,
			Description: parsed.Description,
		},
		FeedConfig: fc,
	}
	if parsed.Image != nil {
		response.Feed.Image = parsed.Image.URL
	}
	if len(parsed.Authors) > 0 {
		response.Feed.Author = parsed.Authors[0].Name
	}

	response.Items = make([]Item, 0, len(parsed.Items))
	for _, src := range parsed.Items {
		item := Item{
			Title:       src.Title,
			Link:        src.Link,
			GUID:        src.GUID,
			Description: src.Description,
			Content:     src.Content,
			Categories:  src.Categories,
		}
		if len(src.Authors) > 0 {
			item.Author = src.Authors[0].Name
		}
		if src.PublishedParsed != nil {
			item.PubDate = src.PublishedParsed.UTC().Format("2006-01-02 15:04:05")
		} else {
			item.PubDate = src.Published
		}
		if src.Image != nil {
			item.Thumbnail = src.Image.URL
		}
		if len(src.Enclosures) > 0 {
			item.Enclosure = Enclosure{
				Link:   src.Enclosures[0].URL,
				Type:   src.Enclosures[0].Type,
				Length: src.Enclosures[0].Length,
			}
		}
		response.Items = append(response.Items, item)
	}

	return response, nil
}
