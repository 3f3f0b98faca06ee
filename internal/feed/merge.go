package feed

import (
	"fmt"
	"sort"
	"time"
)

// ErrorReporter receives per-feed failures during a merge. The merge
// itself never fails because one feed did.
type ErrorReporter func(feedURL string, err error)

// Merge flattens a batch of fetch results into one date-ordered stream.
// Failed feeds contribute nothing and are reported; surviving items are
// run through the pipeline, concatenated, stably sorted newest first,
// and closed with the end marker. Items whose dates do not parse sort as
// oldest, keeping their relative input order.
func Merge(results []FetchResult, pipeline *Pipeline, report ErrorReporter) []Entry {
	var items []Item
	for _, res := range results {
		if res.Err != nil {
			if report != nil {
				report(res.Feed.URL, res.Err)
			}
			continue
		}
		transformed := pipeline.Apply(res.Response)
		items = append(items, transformed.Items...)
	}

	type dated struct {
		item Item
		at   time.Time
	}
	ordered := make([]dated, len(items))
	for i, item := range items {
		at, _ := ParsePubDate(item.PubDate)
		ordered[i] = dated{item: item, at: at}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].at.After(ordered[j].at)
	})

	entries := make([]Entry, 0, len(ordered)+1)
	for i := range ordered {
		entries = append(entries, Entry{Item: &ordered[i].item})
	}
	return append(entries, EndEntry())
}

// Summary describes a completed merge for user-facing reporting.
type Summary struct {
	Items  int
	Feeds  int
	Failed int
}

func (s Summary) String() string {
	return fmt.Sprintf("fetched %d items from %d feeds (%d failed)", s.Items, s.Feeds, s.Failed)
}
