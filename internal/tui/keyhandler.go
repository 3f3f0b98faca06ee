package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/textfeed/tfeed/internal/config"
)

type KeyHandler struct {
	app  *App
	keys config.KeyBindings
}

func NewKeyHandler(app *App, cfg *config.Config) *KeyHandler {
	return &KeyHandler{app: app, keys: cfg.Keys}
}

func (kh *KeyHandler) HandleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if kh.isInTextInputMode() {
		return kh.handleTextInputMode(msg)
	}

	switch kh.app.screen {
	case ViewSearch:
		return kh.handleSearchKeys(msg)
	case ViewSettings:
		return kh.handleSettingsKeys(msg)
	case ViewHelp:
		return kh.handleHelpKeys(msg)
	default:
		return kh.handleCarouselKeys(msg)
	}
}

func (kh *KeyHandler) isInTextInputMode() bool {
	switch kh.app.screen {
	case ViewSearch:
		return kh.app.searchInput.Focused()
	case ViewSettings:
		return kh.app.textInput.Focused()
	default:
		return false
	}
}

func (kh *KeyHandler) handleTextInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "esc":
		a.searchInput.Blur()
		a.textInput.Blur()
		a.settingsField = fieldNone
		return a, nil
	case "enter":
		return kh.handleTextInputEnter()
	}

	var cmd tea.Cmd
	if a.screen == ViewSearch {
		a.searchInput, cmd = a.searchInput.Update(msg)
	} else {
		a.textInput, cmd = a.textInput.Update(msg)
	}
	return a, cmd
}

func (kh *KeyHandler) handleTextInputEnter() (tea.Model, tea.Cmd) {
	a := kh.app

	if a.screen == ViewSearch {
		query := a.searchInput.Value()
		a.searchInput.Blur()
		return a, a.runSearch(query)
	}

	value := a.textInput.Value()
	field := a.settingsField
	a.textInput.Blur()
	a.textInput.SetValue("")
	a.settingsField = fieldNone

	switch field {
	case fieldAddFeed:
		return a, a.addFeed(value)
	case fieldImportPath:
		return a, a.importSettings(value)
	case fieldExportPath:
		return a, a.exportSettings(value)
	}
	return a, nil
}

func (kh *KeyHandler) handleCarouselKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app
	key := msg.String()

	switch key {
	case "ctrl+c", kh.keys.Quit:
		return a, tea.Quit
	case kh.keys.Next, "l":
		return a, a.advance(1)
	case kh.keys.Prev, "h":
		return a, a.advance(-1)
	case kh.keys.ToggleRead:
		if current := a.view.Current(); !current.IsEnd() {
			a.read.Toggle(current.Link())
			a.rebuild()
		}
		return a, nil
	case kh.keys.ToggleBookmark:
		if current := a.view.Current(); !current.IsEnd() {
			a.bookmarks.Toggle(current.Link())
			a.rebuild()
		}
		return a, nil
	case kh.keys.ReadMode:
		a.read.ToggleMode()
		a.rebuild()
		a.setStatus("Showing: "+string(a.read.Mode()), StatusInfo)
		return a, nil
	case kh.keys.BookmarkMode:
		a.bookmarks.ToggleMode()
		a.rebuild()
		a.setStatus("Bookmarks: "+string(a.bookmarks.Mode()), StatusInfo)
		return a, nil
	case kh.keys.Reload:
		return a, a.refresh()
	case kh.keys.Direction:
		a.reversed = !a.reversed
		return a, nil
	case kh.keys.Search:
		a.screen = ViewSearch
		a.searchResults = nil
		a.searchInput.SetValue("")
		a.searchInput.Focus()
		return a, nil
	case kh.keys.Settings:
		a.screen = ViewSettings
		a.settingsRow = 0
		return a, nil
	case kh.keys.Help:
		a.screen = ViewHelp
		return a, nil
	}

	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

func (kh *KeyHandler) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app

	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "esc":
		a.screen = ViewCarousel
		return a, nil
	case "/":
		a.searchInput.Focus()
		return a, nil
	case "up", "k":
		if a.searchCursor > 0 {
			a.searchCursor--
		}
		return a, nil
	case "down", "j":
		if a.searchCursor < len(a.searchResults)-1 {
			a.searchCursor++
		}
		return a, nil
	case "enter":
		if a.searchCursor < len(a.searchResults) {
			kh.jumpTo(a.searchResults[a.searchCursor].Link)
		}
		a.screen = ViewCarousel
		return a, a.lookupCurrent()
	}
	return a, nil
}

// jumpTo settles the carousel on the entry with the given link, if it is
// present in the filtered stream. Hidden items (read away under
// unread-only mode) are not reachable from search.
func (kh *KeyHandler) jumpTo(link string) {
	a := kh.app
	for i, entry := range a.view.Entries() {
		if entry.Link() == link {
			a.view.Settle(i)
			a.refreshBody()
			return
		}
	}
	a.setStatus("Article hidden by current display mode", StatusWarn)
}

func (kh *KeyHandler) handleSettingsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app
	feeds := a.feedStore.Feeds()

	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "esc", kh.keys.Settings:
		a.screen = ViewCarousel
		return a, nil
	case "up", "k":
		if a.settingsRow > 0 {
			a.settingsRow--
		}
		return a, nil
	case "down", "j":
		if a.settingsRow < len(feeds)-1 {
			a.settingsRow++
		}
		return a, nil
	case "a":
		a.settingsField = fieldAddFeed
		a.textInput.Placeholder = "Enter feed URL..."
		a.textInput.Focus()
		return a, nil
	case "x":
		if a.settingsRow < len(feeds) {
			return a, a.removeFeed(feeds[a.settingsRow].URL)
		}
		return a, nil
	case "i":
		a.settingsField = fieldImportPath
		a.textInput.Placeholder = "Path to settings file..."
		a.textInput.Focus()
		return a, nil
	case "e":
		a.settingsField = fieldExportPath
		a.textInput.Placeholder = "Export path..."
		a.textInput.Focus()
		return a, nil
	case kh.keys.ReadMode:
		a.read.ToggleMode()
		a.rebuild()
		return a, nil
	}
	return a, nil
}

func (kh *KeyHandler) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	default:
		a.screen = ViewCarousel
		return a, nil
	}
}
