package feed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <link>https://example.test</link>
    <description>A test feed</description>
    <item>
      <title>Article One</title>
      <link>https://example.test/article1</link>
      <guid>article-1</guid>
      <description>First article description</description>
      <pubDate>Mon, 02 Jan 2006 15:04:05 GMT</pubDate>
      <category>tech</category>
      <enclosure url="https://example.test/img1.png" type="image/png" length="1234"/>
    </item>
    <item>
      <title>Article Two</title>
      <link>https://example.test/article2</link>
      <guid>article-2</guid>
      <description>Second article description</description>
    </item>
  </channel>
</rss>`

func TestParser_Parse(t *testing.T) {
	fc := FeedConfig{URL: "https://example.test/feed.xml", Type: "RSS"}
	response, err := NewParser().Parse(strings.NewReader(sampleRSS), fc)
	require.NoError(t, err)

	assert.Equal(t, "ok", response.Status)
	assert.Equal(t, "Test Feed", response.Feed.Title)
	assert.Equal(t, fc.URL, response.Feed.URL)
	assert.Equal(t, fc, response.FeedConfig)
	require.Len(t, response.Items, 2)

	first := response.Items[0]
	assert.Equal(t, "Article One", first.Title)
	assert.Equal(t, "https://example.test/article1", first.Link)
	assert.Equal(t, "article-1", first.GUID)
	assert.Equal(t, []string{"tech"}, first.Categories)
	assert.Equal(t, "https://example.test/img1.png", first.Enclosure.Link)
	assert.Equal(t, "image/png", first.Enclosure.Type)

	t.Run("pubDate is normalized to the conversion API format", func(t *testing.T) {
		parsed, ok := ParsePubDate(first.PubDate)
		require.True(t, ok)
		assert.Equal(t, 2006, parsed.Year())
	})

	t.Run("missing fields stay empty", func(t *testing.T) {
		second := response.Items[1]
		assert.Empty(t, second.PubDate)
		assert.Empty(t, second.Enclosure.Link)
	})
}

func TestParser_Parse_Atom(t *testing.T) {
	atom := `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Atom Feed</title>
  <link href="https://atom.test/"/>
  <entry>
    <title>Entry</title>
    <link href="https://atom.test/entry1"/>
    <id>entry-1</id>
    <updated>2024-03-01T12:00:00Z</updated>
  </entry>
</feed>`

	fc := FeedConfig{URL: "https://atom.test/atom.xml", Type: "Atom"}
	response, err := NewParser().Parse(strings.NewReader(atom), fc)
	require.NoError(t, err)
	assert.Equal(t, "Atom Feed", response.Feed.Title)
	require.Len(t, response.Items, 1)
	assert.Equal(t, "https://atom.test/entry1", response.Items[0].Link)
}

func TestParser_Parse_Invalid(t *testing.T) {
	fc := FeedConfig{URL: "https://bad.test/feed"}
	_, err := NewParser().Parse(strings.NewReader("not a feed"), fc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "https://bad.test/feed")
}
