// Package search maintains an in-memory full-text index over the merged
// stream so the reader can jump to an article by words remembered from
// its title or body.
package search

import (
	"strings"
	"sync"
	"unicode"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	bleveQuery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/textfeed/tfeed/internal/feed"
)

// Result is one search hit, identified by the item link.
type Result struct {
	Link      string
	Title     string
	FeedTitle string
	Score     float64
}

// Engine wraps a memory-only bleve index rebuilt from every committed
// merge. Rebuilds swap the index atomically; a query never sees a
// half-built one.
type Engine struct {
	mu  sync.RWMutex
	idx bleve.Index
}

func NewEngine() (*Engine, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, err
	}
	return &Engine{idx: idx}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = standard.Name

	dm := bleve.NewDocumentMapping()

	title := bleve.NewTextFieldMapping()
	title.Analyzer = standard.Name
	title.Store = true

	desc := bleve.NewTextFieldMapping()
	desc.Analyzer = standard.Name
	desc.Store = false

	feedTitle := bleve.NewTextFieldMapping()
	feedTitle.Analyzer = standard.Name
	feedTitle.Store = true

	dm.AddFieldMappingsAt("title", title)
	dm.AddFieldMappingsAt("description", desc)
	dm.AddFieldMappingsAt("author", desc)
	dm.AddFieldMappingsAt("feed_title", feedTitle)

	im.DefaultMapping = dm
	return im
}

// Rebuild replaces the index contents with the given stream. The end
// marker is not indexed.
func (e *Engine) Rebuild(entries []feed.Entry) error {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return err
	}

	batch := idx.NewBatch()
	for _, entry := range entries {
		if entry.IsEnd() {
			continue
		}
		item := entry.Item
		_ = batch.Index(item.Link, map[string]any{
			"title":       item.Title,
			"description": item.Description,
			"author":      item.Author,
			"feed_title":  item.Feed.Title,
		})
	}
	if err := idx.Batch(batch); err != nil {
		return err
	}

	e.mu.Lock()
	old := e.idx
	e.idx = idx
	e.mu.Unlock()

	if old != nil {
		_ = old.Close()
	}
	return nil
}

// Search queries the index. Queries shorter than two characters return
// no hits rather than matching everything.
func (e *Engine) Search(query string, limit int) ([]Result, error) {
	if len(strings.TrimSpace(query)) < 2 {
		return []Result{}, nil
	}

	var qs []bleveQuery.Query
	for _, tok := range tokenize(query) {
		qt := bleve.NewMatchQuery(tok)
		qt.SetField("title")
		qt.SetBoost(4.0)
		qs = append(qs, qt)

		qtp := bleve.NewPrefixQuery(strings.ToLower(tok))
		qtp.SetField("title")
		qtp.SetBoost(3.5)
		qs = append(qs, qtp)

		qd := bleve.NewMatchQuery(tok)
		qd.SetField("description")
		qd.SetBoost(2.0)
		qs = append(qs, qd)

		qa := bleve.NewMatchQuery(tok)
		qa.SetField("author")
		qa.SetBoost(1.5)
		qs = append(qs, qa)

		qf := bleve.NewMatchQuery(tok)
		qf.SetField("feed_title")
		qf.SetBoost(1.0)
		qs = append(qs, qf)
	}
	if len(qs) == 0 {
		return []Result{}, nil
	}

	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(qs...), limit, 0, false)
	req.Fields = []string{"title", "feed_title"}

	e.mu.RLock()
	res, err := e.idx.Search(req)
	e.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	out := make([]Result, 0, len(res.Hits))
	for _, h := range res.Hits {
		r := Result{Link: h.ID, Score: h.Score}
		if t, ok := h.Fields["title"].(string); ok {
			r.Title = t
		}
		if t, ok := h.Fields["feed_title"].(string); ok {
			r.FeedTitle = t
		}
		out = append(out, r)
	}
	return out, nil
}

// DocCount reports how many items are indexed.
func (e *Engine) DocCount() (int, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	n, err := e.idx.DocCount()
	return int(n), err
}

// Close releases the index.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.idx == nil {
		return nil
	}
	err := e.idx.Close()
	e.idx = nil
	return err
}

func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
