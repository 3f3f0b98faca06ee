package tui

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/textfeed/tfeed/internal/feed"
)

// chrome rows around the viewport: header, title, separator, footer,
// status.
const chromeLines = 7

func bodyHeight(total int) int {
	h := total - chromeLines
	if h < 3 {
		h = 3
	}
	return h
}

func (a *App) styles() (header, title, muted, badge, errStyle lipgloss.Style) {
	colors := a.config.UI.Colors
	header = lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Accent))
	title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colors.Primary))
	muted = lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Muted))
	badge = lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Success))
	errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Error))
	return
}

func (a *App) getRenderer() (*glamour.TermRenderer, error) {
	wordWrap := (a.width * 9) / 10
	if wordWrap > 100 {
		wordWrap = 100
	}
	if wordWrap < 20 {
		wordWrap = 20
	}

	if a.glamourRenderer == nil || a.rendererWidth != wordWrap {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wordWrap),
		)
		if err != nil {
			return nil, err
		}
		a.glamourRenderer = r
		a.rendererWidth = wordWrap
	}
	return a.glamourRenderer, nil
}

// refreshBody re-renders the current article into the viewport.
func (a *App) refreshBody() {
	current := a.view.Current()
	if current.IsEnd() {
		a.viewport.SetContent(a.renderEndCard())
		a.viewport.GotoTop()
		return
	}
	a.viewport.SetContent(a.renderArticle(current.Item))
	a.viewport.GotoTop()
}

// renderArticle converts the best available body to markdown and runs it
// through glamour. Raw HTML is shown as a last resort rather than
// nothing at all.
func (a *App) renderArticle(item *feed.Item) string {
	body := item.Content
	if extracted, ok := a.extraContent[item.Link]; ok && extracted != "" {
		body = extracted
	}
	if body == "" {
		body = item.Description
	}

	markdown, err := htmltomarkdown.ConvertString(body)
	if err != nil {
		markdown = body
	}

	var doc strings.Builder
	if item.Link != "" {
		doc.WriteString(fmt.Sprintf("[Read online](%s)\n\n", item.Link))
	}
	if img := a.articleImage(item); img != "" {
		doc.WriteString(fmt.Sprintf("![image](%s)\n\n", img))
	}
	doc.WriteString(markdown)

	r, err := a.getRenderer()
	if err != nil {
		return doc.String()
	}
	rendered, err := r.Render(doc.String())
	if err != nil {
		return doc.String()
	}
	return rendered
}

// articleImage picks the best known image for an item: structured
// enclosure, feed thumbnail, then the extraction service's first hit.
func (a *App) articleImage(item *feed.Item) string {
	if item.Enclosure.Link != "" {
		return item.Enclosure.Link
	}
	if item.Thumbnail != "" {
		return item.Thumbnail
	}
	if urls := a.extraImages[item.Link]; len(urls) > 0 {
		return urls[0]
	}
	return ""
}

func (a *App) renderEndCard() string {
	_, _, muted, _, _ := a.styles()
	return "\n\n" + muted.Render("  — no more articles —") + "\n\n" +
		muted.Render("  r to reload, u to show read items")
}

func (a *App) View() string {
	switch a.screen {
	case ViewSearch:
		return a.viewSearch()
	case ViewSettings:
		return a.viewSettings()
	case ViewHelp:
		return a.viewHelp()
	default:
		return a.viewCarousel()
	}
}

func (a *App) viewCarousel() string {
	headerStyle, titleStyle, muted, badge, errStyle := a.styles()
	current := a.view.Current()

	var b strings.Builder

	// Header: feed origin and date, or the end marker.
	if current.IsEnd() {
		b.WriteString(headerStyle.Render("tfeed") + "\n")
		b.WriteString(titleStyle.Render("End of feed") + "\n")
	} else {
		item := current.Item
		origin := item.Feed.Title
		if origin == "" {
			origin = item.FeedConfig.URL
		}
		meta := origin
		if item.PubDate != "" {
			meta += " · " + item.PubDate
		}
		if item.Author != "" {
			meta += " · " + item.Author
		}
		b.WriteString(headerStyle.Render(truncateEnd(meta, a.width)) + "\n")

		var badges []string
		if a.read.IsRead(item.Link) {
			badges = append(badges, badge.Render("read"))
		}
		if a.bookmarks.IsBookmarked(item.Link) {
			badges = append(badges, badge.Render("saved"))
		}
		titleLine := titleStyle.Render(truncateEnd(item.Title, a.width-12))
		if len(badges) > 0 {
			titleLine += "  " + strings.Join(badges, " ")
		}
		b.WriteString(titleLine + "\n")
	}
	b.WriteString(muted.Render(strings.Repeat("─", max(a.width, 1))) + "\n")

	b.WriteString(a.viewport.View() + "\n")
	b.WriteString(muted.Render(strings.Repeat("─", max(a.width, 1))) + "\n")

	b.WriteString(a.pagePosition() + "\n")

	if a.status != "" {
		if a.statusKind == StatusError {
			b.WriteString(errStyle.Render(truncateEnd(a.status, a.width)))
		} else {
			b.WriteString(muted.Render(truncateEnd(a.status, a.width)))
		}
	}
	return b.String()
}

// pagePosition renders "‹ 3/17 (42 total) ›" with the arrows flipped
// when the reading direction is reversed.
func (a *App) pagePosition() string {
	_, _, muted, _, _ := a.styles()

	prev, next := "‹", "›"
	if a.reversed {
		prev, next = "›", "‹"
	}
	position := fmt.Sprintf("%s %d/%d (%d total) %s",
		prev, a.view.Index()+1, a.view.Len(), len(a.manager.Entries()), next)
	if a.loading {
		position += "  " + MsgRefreshing
	}
	return muted.Render(position)
}

func (a *App) viewSearch() string {
	headerStyle, titleStyle, muted, _, _ := a.styles()

	var b strings.Builder
	b.WriteString(headerStyle.Render("› search") + "\n\n")
	b.WriteString(a.searchInput.View() + "\n\n")

	for i, res := range a.searchResults {
		line := truncateEnd(res.Title, a.width-4)
		if res.FeedTitle != "" {
			line += muted.Render(" — " + res.FeedTitle)
		}
		if i == a.searchCursor && !a.searchInput.Focused() {
			b.WriteString(titleStyle.Render("> ") + line + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}

	b.WriteString("\n" + muted.Render("enter: open · /: edit query · esc: back"))
	return b.String()
}

func (a *App) viewSettings() string {
	headerStyle, titleStyle, muted, _, _ := a.styles()

	var b strings.Builder
	b.WriteString(headerStyle.Render("› feeds") + "\n\n")

	feeds := a.feedStore.Feeds()
	if len(feeds) == 0 {
		b.WriteString(muted.Render("  no feeds configured") + "\n")
	}
	for i, fc := range feeds {
		line := truncateMiddle(fc.URL, a.width-10) + muted.Render("  "+fc.Type)
		if i == a.settingsRow {
			b.WriteString(titleStyle.Render("> ") + line + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}

	if a.settingsField != fieldNone {
		b.WriteString("\n" + a.textInput.View() + "\n")
	}

	b.WriteString("\n" + muted.Render("a: add · x: remove · i: import · e: export · esc: back"))
	return b.String()
}

func (a *App) viewHelp() string {
	headerStyle, _, muted, _, _ := a.styles()
	keys := a.config.Keys

	rows := [][2]string{
		{keys.Next + " / " + keys.Prev, "next / previous article"},
		{keys.ToggleRead, "toggle read"},
		{keys.ToggleBookmark, "toggle bookmark"},
		{keys.ReadMode, "show unread only / all"},
		{keys.BookmarkMode, "hide bookmarked / all"},
		{keys.Reload, "reload all feeds"},
		{keys.Search, "search articles"},
		{keys.Settings, "feed settings"},
		{keys.Direction, "flip reading direction"},
		{keys.Quit, "quit"},
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("› keys") + "\n\n")
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("  %-14s %s\n", row[0], muted.Render(row[1])))
	}
	b.WriteString("\n" + muted.Render("any key: back"))
	return b.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
