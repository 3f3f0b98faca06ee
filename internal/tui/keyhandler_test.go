package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/textfeed/tfeed/internal/search"
)

func TestKeyHandler_QuitKeys(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		app := newTestApp(t)
		_, cmd := app.Update(key(k))
		require.NotNil(t, cmd, "key %q", k)
		assert.IsType(t, tea.QuitMsg{}, cmd(), "key %q", k)
	}
}

func TestKeyHandler_NextMarksDepartedRead(t *testing.T) {
	app := newTestApp(t, testItems("https://a.test/1", "https://a.test/2")...)
	load(t, app)

	app.Update(key("right"))
	assert.Equal(t, "https://a.test/2", app.view.Current().Link())
	assert.True(t, app.read.IsRead("https://a.test/1"))

	t.Run("vim alias", func(t *testing.T) {
		app.Update(key("h"))
		assert.Equal(t, "https://a.test/1", app.view.Current().Link())
	})
}

func TestKeyHandler_NextStopsAtEndMarker(t *testing.T) {
	app := newTestApp(t, testItems("https://a.test/1")...)
	load(t, app)

	app.Update(key("right"))
	require.True(t, app.view.Current().IsEnd())

	app.Update(key("right"))
	assert.True(t, app.view.Current().IsEnd())
}

func TestKeyHandler_DirectionToggleFlipsAdvance(t *testing.T) {
	app := newTestApp(t, testItems("https://a.test/1", "https://a.test/2")...)
	load(t, app)

	app.Update(key("d"))
	require.True(t, app.reversed)

	// With reversed reading direction, "prev" moves forward.
	app.Update(key("left"))
	assert.Equal(t, "https://a.test/2", app.view.Current().Link())
}

func TestKeyHandler_ToggleReadHidesItemUnderUnreadMode(t *testing.T) {
	app := newTestApp(t, testItems("https://a.test/1", "https://a.test/2")...)
	load(t, app)
	require.Equal(t, 3, app.view.Len())

	app.Update(key("m"))

	assert.True(t, app.read.IsRead("https://a.test/1"))
	assert.Equal(t, 2, app.view.Len())
	assert.Equal(t, "https://a.test/2", app.view.Current().Link())
}

func TestKeyHandler_ToggleReadOnEndMarkerIsNoOp(t *testing.T) {
	app := newTestApp(t)
	load(t, app)
	require.True(t, app.view.Current().IsEnd())

	app.Update(key("m"))
	assert.Equal(t, 1, app.view.Len())
}

func TestKeyHandler_ToggleBookmarkHidesItemUnderUnbookmarkedMode(t *testing.T) {
	app := newTestApp(t, testItems("https://a.test/1", "https://a.test/2")...)
	load(t, app)

	app.Update(key("b"))

	assert.True(t, app.bookmarks.IsBookmarked("https://a.test/1"))
	assert.Equal(t, 2, app.view.Len())
}

func TestKeyHandler_ReadModeToggleShowsReadItems(t *testing.T) {
	app := newTestApp(t, testItems("https://a.test/1", "https://a.test/2")...)
	load(t, app)

	app.Update(key("m")) // read away the first article
	require.Equal(t, 2, app.view.Len())

	app.Update(key("u")) // show everything
	assert.Equal(t, 3, app.view.Len())

	app.Update(key("u")) // back to unread-only
	assert.Equal(t, 2, app.view.Len())
}

func TestKeyHandler_ScreenSwitching(t *testing.T) {
	app := newTestApp(t)
	load(t, app)

	app.Update(key("/"))
	assert.Equal(t, ViewSearch, app.screen)
	assert.True(t, app.searchInput.Focused())

	app.Update(key("esc")) // blur the input
	app.Update(key("esc")) // leave the screen
	assert.Equal(t, ViewCarousel, app.screen)

	app.Update(key("s"))
	assert.Equal(t, ViewSettings, app.screen)
	app.Update(key("esc"))

	app.Update(key("?"))
	assert.Equal(t, ViewHelp, app.screen)
	app.Update(key("x")) // any key leaves help
	assert.Equal(t, ViewCarousel, app.screen)
}

func TestKeyHandler_SearchJumpToResult(t *testing.T) {
	app := newTestApp(t, testItems("https://a.test/1", "https://a.test/2", "https://a.test/3")...)
	load(t, app)

	app.Update(key("/"))
	app.searchInput.Blur()
	app.searchResults = []search.Result{
		{Link: "https://a.test/3"},
		{Link: "https://a.test/2"},
	}

	app.Update(key("j"))
	require.Equal(t, 1, app.searchCursor)

	app.Update(key("enter"))
	assert.Equal(t, ViewCarousel, app.screen)
	assert.Equal(t, "https://a.test/2", app.view.Current().Link())
}

func TestKeyHandler_SearchJumpToHiddenArticleWarns(t *testing.T) {
	app := newTestApp(t, testItems("https://a.test/1", "https://a.test/2")...)
	load(t, app)
	app.read.MarkRead("https://a.test/2")
	app.rebuild()

	app.Update(key("/"))
	app.searchInput.Blur()
	app.searchResults = []search.Result{{Link: "https://a.test/2"}}

	app.Update(key("enter"))
	assert.Equal(t, StatusWarn, app.statusKind)
	assert.Equal(t, "https://a.test/1", app.view.Current().Link())
}

func TestKeyHandler_SettingsRowNavigation(t *testing.T) {
	app := newTestApp(t)
	load(t, app)

	app.Update(key("s"))
	require.Equal(t, ViewSettings, app.screen)

	// One configured feed: the cursor cannot move below the last row.
	app.Update(key("j"))
	assert.Equal(t, 0, app.settingsRow)
	app.Update(key("k"))
	assert.Equal(t, 0, app.settingsRow)

	t.Run("add prompt focuses the input", func(t *testing.T) {
		app.Update(key("a"))
		assert.Equal(t, fieldAddFeed, app.settingsField)
		assert.True(t, app.textInput.Focused())

		app.Update(key("esc"))
		assert.False(t, app.textInput.Focused())
		assert.Equal(t, fieldNone, app.settingsField)
	})
}
