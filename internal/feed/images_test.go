package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractor_ArticleImages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "https://a.test/article", r.URL.Query().Get("url"))
		fmt.Fprint(w, `{"urls":["https://a.test/hero.png","https://a.test/inline.png"]}`)
	}))
	defer srv.Close()

	e := NewExtractor(srv.URL, "", srv.Client())
	urls := e.ArticleImages(context.Background(), "https://a.test/article")
	assert.Equal(t, []string{"https://a.test/hero.png", "https://a.test/inline.png"}, urls)
}

func TestExtractor_ArticleContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"content":"<p>full text</p>"}`)
	}))
	defer srv.Close()

	e := NewExtractor("", srv.URL, srv.Client())
	content := e.ArticleContent(context.Background(), "https://a.test/article")
	assert.Equal(t, "<p>full text</p>", content)
}

func TestExtractor_FailuresAreSilent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	e := NewExtractor(srv.URL, srv.URL, srv.Client())
	assert.Nil(t, e.ArticleImages(context.Background(), "https://a.test/article"))
	assert.Empty(t, e.ArticleContent(context.Background(), "https://a.test/article"))

	t.Run("unconfigured endpoints are also silent", func(t *testing.T) {
		unset := NewExtractor("", "", nil)
		assert.Nil(t, unset.ArticleImages(context.Background(), "https://a.test/article"))
		assert.Empty(t, unset.ArticleContent(context.Background(), "https://a.test/article"))
	})
}
