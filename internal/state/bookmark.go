package state

const bookmarkStatusKey = "bookmarkStatus"

// BookmarkStore tracks saved items, keyed by item link. Same persistence
// discipline as ReadStore under its own key; there is no passive-mark
// operation because nothing bookmarks items implicitly.
type BookmarkStore struct {
	statuses *statusMap
	mode     DisplayMode
}

func NewBookmarkStore(kv KV) *BookmarkStore {
	return &BookmarkStore{
		statuses: newStatusMap(kv, bookmarkStatusKey),
		mode:     ModeUnbookmarked,
	}
}

// IsBookmarked reports whether link is saved.
func (s *BookmarkStore) IsBookmarked(link string) bool { return s.statuses.get(link) }

// Toggle flips the bookmark flag.
func (s *BookmarkStore) Toggle(link string) { s.statuses.toggle(link) }

// Mode returns the active display mode.
func (s *BookmarkStore) Mode() DisplayMode { return s.mode }

// ToggleMode flips between unbookmarked-only and all.
func (s *BookmarkStore) ToggleMode() {
	if s.mode == ModeUnbookmarked {
		s.mode = ModeAll
	} else {
		s.mode = ModeUnbookmarked
	}
}
