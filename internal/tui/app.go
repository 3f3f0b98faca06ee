package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/textfeed/tfeed/internal/config"
	"github.com/textfeed/tfeed/internal/feed"
	"github.com/textfeed/tfeed/internal/search"
	"github.com/textfeed/tfeed/internal/settings"
	"github.com/textfeed/tfeed/internal/state"
	"github.com/textfeed/tfeed/internal/validation"
)

// settingsField tracks which prompt the settings screen is showing.
type settingsField int

const (
	fieldNone settingsField = iota
	fieldAddFeed
	fieldImportPath
	fieldExportPath
)

// App is the carousel: one article per screen, swiped through with the
// arrow keys. It owns no domain state of its own; every mutation goes
// through the stores.
type App struct {
	config    *config.Config
	manager   *feed.Manager
	extractor *feed.Extractor
	feedStore *settings.Store
	read      *state.ReadStore
	bookmarks *state.BookmarkStore
	view      *state.View
	engine    *search.Engine

	keyHandler    *KeyHandler
	pathValidator *validation.FilePathValidator

	screen        View
	width         int
	height        int
	viewport      viewport.Model
	textInput     textinput.Model
	searchInput   textinput.Model
	searchResults []search.Result
	searchCursor  int
	settingsField settingsField
	settingsRow   int

	reversed   bool
	loading    bool
	status     string
	statusKind StatusKind
	err        error

	// Best-effort extraction results, keyed by item link.
	extraContent map[string]string
	extraImages  map[string][]string

	glamourRenderer *glamour.TermRenderer
	rendererWidth   int
}

type Deps struct {
	Config    *config.Config
	Manager   *feed.Manager
	Extractor *feed.Extractor
	FeedStore *settings.Store
	Read      *state.ReadStore
	Bookmarks *state.BookmarkStore
	Engine    *search.Engine
}

func NewApp(deps Deps) *App {
	ti := textinput.New()
	ti.Placeholder = "Enter feed URL..."

	si := textinput.New()
	si.Placeholder = "Search fetched articles..."

	app := &App{
		config:        deps.Config,
		manager:       deps.Manager,
		extractor:     deps.Extractor,
		feedStore:     deps.FeedStore,
		read:          deps.Read,
		bookmarks:     deps.Bookmarks,
		view:          state.NewView(deps.Read, deps.Bookmarks),
		engine:        deps.Engine,
		pathValidator: validation.NewFilePathValidator(),
		screen:        ViewCarousel,
		viewport:      viewport.New(0, 0),
		textInput:     ti,
		searchInput:   si,
		reversed:      deps.Config.UI.Reversed,
		extraContent:  map[string]string{},
		extraImages:   map[string][]string{},
	}
	app.keyHandler = NewKeyHandler(app, deps.Config)
	app.view.Rebuild(deps.Manager.Entries())

	return app
}

func (a *App) Init() tea.Cmd {
	return a.refresh()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.viewport.Width = msg.Width
		a.viewport.Height = bodyHeight(msg.Height)
		a.refreshBody()
		return a, nil

	case tea.KeyMsg:
		return a.keyHandler.HandleKey(msg)

	case refreshDoneMsg:
		a.loading = false
		if !msg.ok {
			// A newer fetch superseded this one; nothing to show.
			return a, nil
		}
		a.rebuild()
		if err := a.engine.Rebuild(a.manager.Entries()); err != nil {
			a.setStatus("Search index unavailable: "+err.Error(), StatusWarn)
		}
		if len(msg.feedErrs) > 0 {
			a.setStatus(msg.summary.String()+" — "+msg.feedErrs[0], StatusWarn)
		} else {
			a.setStatus(msg.summary.String(), StatusSuccess)
		}
		return a, a.lookupCurrent()

	case searchResultsMsg:
		a.searchResults = msg.results
		a.searchCursor = 0
		if len(msg.results) == 0 {
			a.setStatus(MsgNoResults, StatusInfo)
		} else {
			a.setStatus(MsgResultsCount(len(msg.results)), StatusInfo)
		}
		return a, nil

	case contentLoadedMsg:
		if msg.content != "" {
			a.extraContent[msg.link] = msg.content
			if a.view.Current().Link() == msg.link {
				a.refreshBody()
			}
		}
		return a, nil

	case imagesLoadedMsg:
		if len(msg.urls) > 0 {
			a.extraImages[msg.link] = msg.urls
			if a.view.Current().Link() == msg.link {
				a.refreshBody()
			}
		}
		return a, nil

	case settingsSavedMsg:
		if msg.err != nil {
			a.setStatus(msg.err.Error(), StatusError)
			return a, nil
		}
		a.setStatus(msg.status, StatusSuccess)
		return a, a.refresh()

	case errorMsg:
		a.loading = false
		a.err = msg.err
		a.setStatus(msg.err.Error(), StatusError)
		return a, nil
	}

	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

// rebuild recomputes the filtered stream and the article body. Called
// after anything that can change membership: a committed refresh, a
// display-mode flip, or a read/bookmark toggle.
func (a *App) rebuild() {
	a.view.Rebuild(a.manager.Entries())
	a.refreshBody()
}

// advance moves the carousel one step, honoring reversed reading
// direction, and fires the best-effort extraction lookups for the item
// that landed on screen.
func (a *App) advance(direction int) tea.Cmd {
	if a.reversed {
		direction = -direction
	}
	before := a.view.Index()
	a.view.Advance(direction)
	if a.view.Index() == before {
		return nil
	}
	a.refreshBody()
	return a.lookupCurrent()
}

func (a *App) setStatus(status string, kind StatusKind) {
	a.status = status
	a.statusKind = kind
}
