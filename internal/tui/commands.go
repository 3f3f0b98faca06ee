package tui

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// refresh starts a new fetch generation. The generation token is taken
// before the command runs so that a reload pressed twice leaves only the
// newest cycle able to commit.
func (a *App) refresh() tea.Cmd {
	a.loading = true
	a.setStatus(MsgRefreshing, StatusInfo)
	gen := a.manager.Begin()
	feeds := a.feedStore.Feeds()

	return func() tea.Msg {
		var feedErrs []string
		summary, ok := a.manager.Refresh(context.Background(), gen, feeds, func(feedURL string, err error) {
			feedErrs = append(feedErrs, fmt.Sprintf("failed to fetch feed: %s", feedURL))
		})
		return refreshDoneMsg{summary: summary, feedErrs: feedErrs, ok: ok}
	}
}

func (a *App) runSearch(query string) tea.Cmd {
	return func() tea.Msg {
		results, err := a.engine.Search(query, 20)
		if err != nil {
			return errorMsg{err: wrapErr("search", err)}
		}
		return searchResultsMsg{results: results}
	}
}

// lookupCurrent fires the extraction lookups for the item on screen.
// Both are fire-and-forget: a failure only means the article renders
// without the extra material.
func (a *App) lookupCurrent() tea.Cmd {
	current := a.view.Current()
	if current.IsEnd() {
		return nil
	}
	item := current.Item
	link := item.Link

	var cmds []tea.Cmd
	if _, done := a.extraContent[link]; !done && item.Content == "" {
		cmds = append(cmds, func() tea.Msg {
			content := a.extractor.ArticleContent(context.Background(), link)
			return contentLoadedMsg{link: link, content: content}
		})
	}
	if _, done := a.extraImages[link]; !done && item.Enclosure.Link == "" && item.Thumbnail == "" {
		cmds = append(cmds, func() tea.Msg {
			urls := a.extractor.ArticleImages(context.Background(), link)
			return imagesLoadedMsg{link: link, urls: urls}
		})
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (a *App) addFeed(url string) tea.Cmd {
	return func() tea.Msg {
		if err := a.feedStore.Add(url, "RSS"); err != nil {
			return settingsSavedMsg{err: err}
		}
		return settingsSavedMsg{status: "Feed added"}
	}
}

func (a *App) removeFeed(url string) tea.Cmd {
	return func() tea.Msg {
		if err := a.feedStore.Remove(url); err != nil {
			return settingsSavedMsg{err: err}
		}
		return settingsSavedMsg{status: "Feed removed"}
	}
}

// exportSettings writes the feed list to path. The file is the same
// {feedUrls: [...]} document importSettings accepts.
func (a *App) exportSettings(path string) tea.Cmd {
	return func() tea.Msg {
		path, err := a.pathValidator.ValidateAndNormalize(path)
		if err != nil {
			return settingsSavedMsg{err: wrapErr("export", err)}
		}
		f, err := os.Create(path)
		if err != nil {
			return settingsSavedMsg{err: wrapErr("export", err)}
		}
		defer f.Close()
		if err := a.feedStore.Export(f); err != nil {
			return settingsSavedMsg{err: wrapErr("export", err)}
		}
		return settingsSavedMsg{status: "Settings exported to " + path}
	}
}

// importSettings replaces the feed list from a settings file. A bad file
// is rejected whole; the existing configuration stays untouched.
func (a *App) importSettings(path string) tea.Cmd {
	return func() tea.Msg {
		path, err := a.pathValidator.ValidateAndNormalize(path)
		if err != nil {
			return settingsSavedMsg{err: wrapErr("import", err)}
		}
		f, err := os.Open(path)
		if err != nil {
			return settingsSavedMsg{err: wrapErr("import", err)}
		}
		defer f.Close()
		if err := a.feedStore.Import(f); err != nil {
			return settingsSavedMsg{err: wrapErr("import", err)}
		}
		return settingsSavedMsg{status: "Settings imported from " + path}
	}
}
