package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/odak/internal/stats"
	"github.com/sadopc/odak/internal/store"
)

const recentLimit = 8

type reportsModel struct {
	store  *store.Store
	width  int
	height int

	sessions []store.SessionRecord
	summary  stats.Summary
	cursor   int

	confirmingClear bool

	chart barchart.Model
}

func newReportsModel(s *store.Store) reportsModel {
	return reportsModel{
		store: s,
		chart: barchart.New(60, 10),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

func (r reportsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		sessions, _ := r.store.ListSessions()
		return reportsDataMsg{sessions: sessions}
	}
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsDataMsg:
		r.sessions = msg.sessions
		r.summary = stats.Aggregate(r.sessions, time.Now())
		r.buildChart()
		if n := len(r.recent()); r.cursor >= n {
			r.cursor = max(0, n-1)
		}
		return r, nil

	case tea.KeyMsg:
		if r.confirmingClear {
			return r.updateConfirm(msg)
		}

		switch {
		case key.Matches(msg, keys.Up):
			if r.cursor > 0 {
				r.cursor--
			}
		case key.Matches(msg, keys.Down):
			if r.cursor < len(r.recent())-1 {
				r.cursor++
			}
		case key.Matches(msg, keys.Delete):
			return r, r.deleteSelected()
		case key.Matches(msg, keys.Clear):
			if len(r.sessions) > 0 {
				r.confirmingClear = true
			}
		}
	}
	return r, nil
}

func (r reportsModel) updateConfirm(msg tea.KeyMsg) (reportsModel, tea.Cmd) {
	switch {
	case msg.String() == "y", key.Matches(msg, keys.Enter):
		r.confirmingClear = false
		return r, r.clearAll()
	case key.Matches(msg, keys.Back):
		r.confirmingClear = false
	}
	return r, nil
}

func (r reportsModel) deleteSelected() tea.Cmd {
	recent := r.recent()
	if len(recent) == 0 {
		return nil
	}
	id := recent[r.cursor].ID
	return func() tea.Msg {
		if err := r.store.DeleteSession(id); err != nil {
			return statusMsg{text: fmt.Sprintf("Delete failed: %v", err), isError: true}
		}
		sessions, _ := r.store.ListSessions()
		return reportsDataMsg{sessions: sessions}
	}
}

// clearAll wipes the history, then signals for a reload. The reload waits
// on the clear, so a stale list can never come back.
func (r reportsModel) clearAll() tea.Cmd {
	return func() tea.Msg {
		if err := r.store.ClearSessions(); err != nil {
			return statusMsg{text: fmt.Sprintf("Clear failed: %v", err), isError: true}
		}
		return sessionsClearedMsg{}
	}
}

// recent returns the newest sessions first, capped at recentLimit.
func (r reportsModel) recent() []store.SessionRecord {
	n := len(r.sessions)
	out := make([]store.SessionRecord, 0, min(n, recentLimit))
	for i := n - 1; i >= 0 && len(out) < recentLimit; i-- {
		out = append(out, r.sessions[i])
	}
	return out
}

func (r *reportsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if r.height > 30 {
		chartHeight = 14
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	barStyle := lipgloss.NewStyle().Foreground(colorPrimary)
	var bars []barchart.BarData
	for _, day := range r.summary.Last7Days {
		bars = append(bars, barchart.BarData{
			Label: day.Label,
			Values: []barchart.BarValue{
				{Name: day.Label, Value: day.Minutes, Style: barStyle},
			},
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r reportsModel) view() string {
	w := r.width - 4

	if r.confirmingClear {
		return r.renderConfirm(w)
	}

	header := titleStyle.Render("Reports")
	cards := r.renderCards(w)
	breakdown := r.renderBreakdown(w)
	chartTitle := mutedStyle.Render("Last 7 days (minutes)")
	chartView := r.chart.View()
	recent := r.renderRecent()
	nav := mutedStyle.Render("  ↑/↓: select  d: delete  c: clear all")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", cards, "", breakdown, "", chartTitle, chartView, "", recent, "", nav,
		),
	)
}

func (r reportsModel) renderCards(w int) string {
	cardW := (w - 8) / 3
	if cardW < 12 {
		cardW = 12
	}
	card := func(label, value string) string {
		return panelStyle.Width(cardW).Padding(0, 1).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				mutedStyle.Render(label),
				titleStyle.Render(value),
			),
		)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Today", formatSeconds(r.summary.TodayFocusSeconds)),
		card("Total", formatSeconds(r.summary.TotalFocusSeconds)),
		card("Distractions", fmt.Sprintf("%d", r.summary.TotalDistractions)),
	)
}

func (r reportsModel) renderBreakdown(w int) string {
	if len(r.summary.Categories) == 0 {
		return mutedStyle.Render("  No sessions yet")
	}

	barWidth := min(w-46, 20)
	if barWidth < 5 {
		barWidth = 5
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Categories"))
	for _, c := range r.summary.Categories {
		dot := lipgloss.NewStyle().Foreground(chartColors[c.ColorIndex]).Render("●")
		filled := c.Percentage * barWidth / 100
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
		rows = append(rows, fmt.Sprintf("  %s %-14s %s %s %3d%%",
			dot, c.Category, formatSeconds(c.TotalSeconds),
			mutedStyle.Render(bar), c.Percentage,
		))
	}
	return strings.Join(rows, "\n")
}

func (r reportsModel) renderRecent() string {
	recent := r.recent()
	if len(recent) == 0 {
		return mutedStyle.Render("  No recent sessions")
	}

	colorOf := make(map[string]int, len(r.summary.Categories))
	for _, c := range r.summary.Categories {
		colorOf[c.Category] = c.ColorIndex
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Recent Sessions"))
	for i, rec := range recent {
		dot := lipgloss.NewStyle().Foreground(chartColors[colorOf[rec.Category]]).Render("●")
		cursor := "  "
		style := normalItemStyle
		if i == r.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		row := fmt.Sprintf("%s%s %s  %-14s %s  %d distractions",
			cursor, dot,
			rec.Date.Local().Format("Jan 02 15:04"),
			rec.Category,
			formatSeconds(rec.Duration),
			rec.DistractionCount,
		)
		rows = append(rows, style.Render(row))
	}
	return strings.Join(rows, "\n")
}

func (r reportsModel) renderConfirm(w int) string {
	title := titleStyle.Render("Clear all data?")
	body := mutedStyle.Render(fmt.Sprintf("This deletes all %d stored sessions. This cannot be undone.", len(r.sessions)))
	controls := mutedStyle.Render("y/enter: clear  esc: cancel")

	return activePanelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", controls),
	)
}
