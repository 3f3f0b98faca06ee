package tui

import (
	"github.com/textfeed/tfeed/internal/feed"
	"github.com/textfeed/tfeed/internal/search"
)

type View int

const (
	ViewCarousel View = iota
	ViewSearch
	ViewSettings
	ViewHelp
)

// refreshDoneMsg carries the outcome of one fetch generation. Stale
// generations arrive with ok=false and are ignored.
type refreshDoneMsg struct {
	summary  feed.Summary
	feedErrs []string
	ok       bool
}

type searchResultsMsg struct {
	results []search.Result
}

type contentLoadedMsg struct {
	link    string
	content string
}

type imagesLoadedMsg struct {
	link string
	urls []string
}

type settingsSavedMsg struct {
	status string
	err    error
}

type errorMsg struct {
	err error
}
