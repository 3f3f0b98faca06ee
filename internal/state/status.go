// Package state tracks per-item read and bookmark flags and derives the
// filtered stream the carousel pages through.
package state

import (
	"encoding/json"

	"github.com/textfeed/tfeed/internal/debuglog"
)

// KV is the persistence surface the stores need. Satisfied by
// storage.Store.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// statusMap is a persisted link→bool mapping. An absent key means "no
// opinion"; an explicit false is a durable fact recorded by the user and
// is preserved distinctly from absence.
type statusMap struct {
	kv    KV
	key   string
	flags map[string]bool
}

func newStatusMap(kv KV, key string) *statusMap {
	m := &statusMap{kv: kv, key: key, flags: map[string]bool{}}
	m.load()
	return m
}

// load restores the mapping from the store. Missing or malformed content
// falls back to an empty mapping; a corrupt blob must never prevent
// startup.
func (m *statusMap) load() {
	raw, err := m.kv.Get(m.key)
	if err != nil || raw == "" {
		return
	}
	var flags map[string]bool
	if err := json.Unmarshal([]byte(raw), &flags); err != nil {
		debuglog.Warnf("discarding malformed %s state: %v", m.key, err)
		return
	}
	m.flags = flags
}

// save persists the whole mapping. Empty mappings are not written, so a
// fresh session never clobbers state another session may have stored.
func (m *statusMap) save() {
	if len(m.flags) == 0 {
		return
	}
	raw, err := json.Marshal(m.flags)
	if err != nil {
		debuglog.Errorf("encoding %s state: %v", m.key, err)
		return
	}
	if err := m.kv.Set(m.key, string(raw)); err != nil {
		debuglog.Errorf("persisting %s state: %v", m.key, err)
	}
}

func (m *statusMap) get(link string) bool { return m.flags[link] }

func (m *statusMap) toggle(link string) {
	m.flags[link] = !m.flags[link]
	m.save()
}

func (m *statusMap) set(link string, v bool) {
	m.flags[link] = v
	m.save()
}

// has reports whether link has an explicit recorded value.
func (m *statusMap) has(link string) bool {
	_, ok := m.flags[link]
	return ok
}
