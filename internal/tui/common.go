package tui

import (
	"fmt"
	"time"

	"github.com/sadopc/odak/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTimer viewState = iota
	viewReports
)

var viewNames = []string{"Timer", "Reports"}

// --- Messages ---

type tickMsg time.Time

type statusMsg struct {
	text    string
	isError bool
}

// sessionSavedMsg is emitted after a completed session was written to the
// store.
type sessionSavedMsg struct {
	rec store.SessionRecord
}

type reportsDataMsg struct {
	sessions []store.SessionRecord
}

type sessionsClearedMsg struct{}

// --- Helpers ---

// formatClock renders a countdown: m:ss under an hour, h:mm:ss above.
func formatClock(secs int) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

func formatSeconds(secs int) string {
	d := time.Duration(secs) * time.Second
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
