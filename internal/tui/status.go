package tui

import "fmt"

// Canonical short status messages used across the app.
const (
	MsgRefreshing = "Refreshing…"
	MsgNoResults  = "No results"
)

func MsgResultsCount(n int) string {
	if n == 1 {
		return "1 result"
	}
	return fmt.Sprintf("%d results", n)
}
