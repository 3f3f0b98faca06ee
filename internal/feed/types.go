package feed

import "time"

// FeedConfig is a user-configured feed source. URL is its identity.
type FeedConfig struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

// FeedMeta is the feed-level metadata block the conversion API returns.
type FeedMeta struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Link        string `json:"link"`
	Author      string `json:"author"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Enclosure is an optional media attachment. The pipeline may synthesize
// one from a bare image URL embedded in the description.
type Enclosure struct {
	Link   string `json:"link,omitempty"`
	Type   string `json:"type,omitempty"`
	Length string `json:"length,omitempty"`
}

// Item is a single article. Link is the stable identity used as the key
// into the read and bookmark stores; it is opaque and never regenerated.
type Item struct {
	Title       string     `json:"title"`
	PubDate     string     `json:"pubDate"`
	Link        string     `json:"link"`
	GUID        string     `json:"guid"`
	Author      string     `json:"author"`
	Thumbnail   string     `json:"thumbnail"`
	Description string     `json:"description"`
	Content     string     `json:"content"`
	Enclosure   Enclosure  `json:"enclosure"`
	Categories  []string   `json:"categories"`
	Feed        FeedMeta   `json:"-"`
	FeedConfig  FeedConfig `json:"-"`
}

// Response mirrors the conversion API's JSON body for one feed.
type Response struct {
	Status     string     `json:"status"`
	Feed       FeedMeta   `json:"feed"`
	Items      []Item     `json:"items"`
	FeedConfig FeedConfig `json:"-"`
}

// Entry is one slot in the merged stream: either an article or the
// terminal end-of-stream marker. Exactly one end entry closes every
// merged stream so the viewport can render "no more content".
type Entry struct {
	Item *Item
}

// IsEnd reports whether the entry is the terminal marker.
func (e Entry) IsEnd() bool { return e.Item == nil }

// Link returns the item identity, or "" for the end marker.
func (e Entry) Link() string {
	if e.Item == nil {
		return ""
	}
	return e.Item.Link
}

// EndEntry returns the terminal marker appended to every merged stream.
func EndEntry() Entry { return Entry{} }

// pubDateLayouts are tried in order when parsing item dates. The
// conversion API normalizes to the first one; the rest cover feeds that
// reach us through the direct-parse fallback.
var pubDateLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
}

// ParsePubDate parses an item's publish date. The zero time and false
// are returned when no layout matches, which sorts the item as oldest.
func ParsePubDate(s string) (time.Time, bool) {
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
