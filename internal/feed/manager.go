package feed

import (
	"context"
	"sync"

	"github.com/textfeed/tfeed/internal/debuglog"
)

// Manager owns the merged stream. Fetch cycles run concurrently with a
// generation token; a cycle that finishes after a newer one started is
// discarded instead of overwriting fresher results.
type Manager struct {
	gateway  *Gateway
	pipeline *Pipeline

	mu      sync.Mutex
	gen     uint64
	entries []Entry
}

func NewManager(gateway *Gateway, pipeline *Pipeline) *Manager {
	return &Manager{
		gateway:  gateway,
		pipeline: pipeline,
		entries:  []Entry{EndEntry()},
	}
}

// Entries returns the current merged stream. The slice is replaced
// wholesale on every committed refresh, never patched, so callers may
// hold it without seeing partial updates.
func (m *Manager) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries
}

// Begin starts a new fetch generation and invalidates any cycle still in
// flight.
func (m *Manager) Begin() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	return m.gen
}

// Refresh runs a full fetch-merge cycle for the given generation and
// commits the result if the generation is still current. It reports
// per-feed failures through report and returns a summary of what was
// committed; ok is false when a newer cycle superseded this one.
func (m *Manager) Refresh(ctx context.Context, gen uint64, feeds []FeedConfig, report ErrorReporter) (Summary, bool) {
	results := m.gateway.FetchAll(ctx, feeds)

	failed := 0
	entries := Merge(results, m.pipeline, func(feedURL string, err error) {
		failed++
		debuglog.Errorf("feed %s: %v", feedURL, err)
		if report != nil {
			report(feedURL, err)
		}
	})

	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen {
		debuglog.Infof("discarding stale fetch generation %d (current %d)", gen, m.gen)
		return Summary{}, false
	}
	m.entries = entries

	return Summary{
		Items:  len(entries) - 1,
		Feeds:  len(feeds),
		Failed: failed,
	}, true
}
