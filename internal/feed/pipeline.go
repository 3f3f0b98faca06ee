package feed

import (
	"regexp"
	"strings"
)

// FeedTransform rewrites a whole per-feed response.
type FeedTransform func(*Response) *Response

// ItemTransform rewrites a single item, with the originating response
// available for context. Transforms receive and return values; the only
// state threaded between them is the item itself.
type ItemTransform func(Item, *Response) Item

// Pipeline is an ordered, registrable chain of transforms. Feed
// transforms run once per response, then item transforms run left to
// right over every item. Pipelines are built at construction and owned
// by their aggregator, so tests can assemble their own.
type Pipeline struct {
	feedTransforms []FeedTransform
	itemTransforms []ItemTransform
}

// NewPipeline returns the default pipeline: feed metadata and feed
// config attachment, then leading-image extraction.
func NewPipeline() *Pipeline {
	p := &Pipeline{}
	p.RegisterItem(attachFeedMeta)
	p.RegisterItem(attachFeedConfig)
	p.RegisterItem(extractLeadingImage)
	return p
}

// RegisterFeed appends a feed-scoped transform.
func (p *Pipeline) RegisterFeed(t FeedTransform) { p.feedTransforms = append(p.feedTransforms, t) }

// RegisterItem appends an item-scoped transform.
func (p *Pipeline) RegisterItem(t ItemTransform) { p.itemTransforms = append(p.itemTransforms, t) }

// Apply runs the pipeline over a response and returns the result. The
// input is not mutated.
func (p *Pipeline) Apply(response *Response) *Response {
	for _, t := range p.feedTransforms {
		response = t(response)
	}

	items := make([]Item, len(response.Items))
	copy(items, response.Items)
	for i := range items {
		for _, t := range p.itemTransforms {
			items[i] = t(items[i], response)
		}
	}

	out := *response
	out.Items = items
	return &out
}

func attachFeedMeta(item Item, response *Response) Item {
	item.Feed = response.Feed
	return item
}

func attachFeedConfig(item Item, response *Response) Item {
	item.FeedConfig = response.FeedConfig
	return item
}

// leadingURLPattern matches a bare URL at the very start of a
// description, terminated by whitespace or the opening angle bracket of
// a tag. Some feeds drop their lead image into the text this way instead
// of using a structured enclosure.
var leadingURLPattern = regexp.MustCompile(`^(https?://[^\s<]+?)[\s<]`)

func extractLeadingImage(item Item, _ *Response) Item {
	if item.Enclosure.Link != "" {
		return item
	}
	m := leadingURLPattern.FindStringSubmatch(item.Description)
	if m == nil {
		return item
	}
	item.Enclosure = Enclosure{Link: m[1], Type: "image/*"}
	item.Description = strings.Replace(item.Description, m[1], "", 1)
	return item
}
