package state

// DisplayMode selects whether already-acted-upon items are hidden from
// the filtered stream.
type DisplayMode string

const (
	ModeUnread       DisplayMode = "unread"
	ModeUnbookmarked DisplayMode = "unbookmarked"
	ModeAll          DisplayMode = "all"
)

const readStatusKey = "readStatus"

// ReadStore tracks which items have been read, keyed by item link.
type ReadStore struct {
	statuses *statusMap
	mode     DisplayMode
}

func NewReadStore(kv KV) *ReadStore {
	return &ReadStore{
		statuses: newStatusMap(kv, readStatusKey),
		mode:     ModeUnread,
	}
}

// IsRead reports whether link is marked read. Absent keys are unread.
func (s *ReadStore) IsRead(link string) bool { return s.statuses.get(link) }

// Toggle flips the read flag; the first toggle of an untouched item
// marks it read.
func (s *ReadStore) Toggle(link string) { s.statuses.toggle(link) }

// MarkRead force-sets the flag. Idempotent.
func (s *ReadStore) MarkRead(link string) { s.statuses.set(link, true) }

// MarkUnread records an explicit unread. This is not a deletion: the
// stored false survives and shields the item from passive read-marking.
func (s *ReadStore) MarkUnread(link string) { s.statuses.set(link, false) }

// MarkReadIfNotSetUnread is the passive "scrolled past" policy: it marks
// the item read unless the user explicitly marked it unread, in which
// case it does nothing.
func (s *ReadStore) MarkReadIfNotSetUnread(link string) {
	if s.statuses.has(link) && !s.statuses.get(link) {
		return
	}
	s.MarkRead(link)
}

// Mode returns the active display mode.
func (s *ReadStore) Mode() DisplayMode { return s.mode }

// ToggleMode flips between unread-only and all.
func (s *ReadStore) ToggleMode() {
	if s.mode == ModeUnread {
		s.mode = ModeAll
	} else {
		s.mode = ModeUnread
	}
}
