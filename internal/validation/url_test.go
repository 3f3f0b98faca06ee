package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAndNormalize_ValidURLs(t *testing.T) {
	v := NewFeedURLValidator()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"https URL", "https://example.com/feed.xml", "https://example.com/feed.xml"},
		{"http URL", "http://example.com/rss", "http://example.com/rss"},
		{"missing scheme defaults to https", "example.com/feed.xml", "https://example.com/feed.xml"},
		{"query string preserved", "https://example.com/api?rss_url=x", "https://example.com/api?rss_url=x"},
		{"surrounding whitespace trimmed", "  https://example.com/feed  ", "https://example.com/feed"},
		{"explicit port", "https://example.com:8443/feed", "https://example.com:8443/feed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.ValidateAndNormalize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateAndNormalize_InvalidURLs(t *testing.T) {
	v := NewFeedURLValidator()

	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"empty", "", "cannot be empty"},
		{"whitespace only", "   ", "cannot be empty"},
		{"too long", "https://example.com/" + strings.Repeat("a", 3000), "too long"},
		{"angle brackets", "https://example.com/<script>", "invalid characters"},
		{"quotes", `https://example.com/"feed"`, "invalid characters"},
		{"space in host", "https://bad host/feed", "invalid URL format"},
		{"directory traversal", "https://example.com/../etc/passwd", "traversal"},
		{"localhost", "http://localhost:8080/feed", "localhost"},
		{"loopback IP", "http://127.0.0.1/feed", "localhost"},
		{"localhost subdomain", "http://feeds.localhost/rss", "localhost"},
		{"private 10/8", "http://10.0.0.5/feed", "private IP"},
		{"private 192.168/16", "http://192.168.1.1/feed", "private IP"},
		{"link-local", "http://169.254.1.1/feed", "private IP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.ValidateAndNormalize(tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPermissiveValidator(t *testing.T) {
	v := NewPermissiveFeedURLValidator()

	for _, input := range []string{
		"http://localhost:8080/feed",
		"http://127.0.0.1:3000/rss",
		"http://192.168.1.10/feed.xml",
	} {
		_, err := v.ValidateAndNormalize(input)
		assert.NoError(t, err, "input %q", input)
	}
}
