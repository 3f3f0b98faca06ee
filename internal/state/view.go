package state

import (
	"github.com/textfeed/tfeed/internal/feed"
)

// View derives the filtered stream from the merged one and tracks the
// position of the item currently on screen. The filtered slice is
// recomputed wholesale on every rebuild, never patched in place.
type View struct {
	read      *ReadStore
	bookmarks *BookmarkStore

	entries []feed.Entry
	index   int
}

func NewView(read *ReadStore, bookmarks *BookmarkStore) *View {
	return &View{read: read, bookmarks: bookmarks, entries: []feed.Entry{}}
}

// Rebuild recomputes the filtered stream from the merged entries and the
// two display modes. The end marker always passes: it is the terminal
// signal, not content. The current index is clamped afterwards so a
// shrinking stream (an item read away under unread-only filtering) can
// never leave it dangling past the end.
func (v *View) Rebuild(merged []feed.Entry) {
	filtered := make([]feed.Entry, 0, len(merged))
	for _, entry := range merged {
		if entry.IsEnd() || v.visible(entry.Link()) {
			filtered = append(filtered, entry)
		}
	}
	v.entries = filtered
	v.index = clampIndex(v.index, len(filtered))
}

func (v *View) visible(link string) bool {
	if v.read.Mode() != ModeAll && v.read.IsRead(link) {
		return false
	}
	if v.bookmarks.Mode() != ModeAll && v.bookmarks.IsBookmarked(link) {
		return false
	}
	return true
}

// Entries returns the current filtered stream.
func (v *View) Entries() []feed.Entry { return v.entries }

// Len returns the filtered stream length.
func (v *View) Len() int { return len(v.entries) }

// Index returns the current position within the filtered stream.
func (v *View) Index() int { return v.index }

// Current returns the entry at the current position. The end marker is
// returned when the stream is empty.
func (v *View) Current() feed.Entry {
	if len(v.entries) == 0 {
		return feed.EndEntry()
	}
	return v.entries[v.index]
}

// Settle records that the viewport has come to rest at position target.
// Moves beyond either bound are no-ops. The item being left behind, not
// the one being entered, is passively marked read: reading is attributed
// to the article the user just finished viewing.
func (v *View) Settle(target int) {
	if target == v.index || target < 0 || target >= len(v.entries) {
		return
	}
	if departed := v.entries[v.index]; !departed.IsEnd() {
		v.read.MarkReadIfNotSetUnread(departed.Link())
	}
	v.index = target
}

// Advance settles one position forward or backward.
func (v *View) Advance(direction int) { v.Settle(v.index + direction) }

// clampIndex resolves idx into [0, length-1], floor 0.
func clampIndex(idx, length int) int {
	if length <= 0 {
		return 0
	}
	if idx >= length {
		return length - 1
	}
	if idx < 0 {
		return 0
	}
	return idx
}
