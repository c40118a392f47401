package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/odak/internal/config"
	"github.com/sadopc/odak/internal/store"
	"github.com/sadopc/odak/internal/timer"
)

type timerModel struct {
	store  *store.Store
	cfg    config.Config
	engine *timer.Engine
	width  int
	height int

	catCursor  int
	selHours   int
	selMinutes int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	fHours    *int
	fMinutes  *int
	fCategory *string
}

func newTimerModel(s *store.Store, cfg config.Config) timerModel {
	h, m, c := cfg.DefaultHours, cfg.DefaultMinutes, ""
	if len(cfg.Categories) > 0 {
		c = cfg.Categories[0]
	}
	return timerModel{
		store:      s,
		cfg:        cfg,
		engine:     timer.NewEngine(),
		selHours:   h,
		selMinutes: m,
		fHours:     &h,
		fMinutes:   &m,
		fCategory:  &c,
	}
}

func (m *timerModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m timerModel) category() string {
	if len(m.cfg.Categories) == 0 {
		return ""
	}
	return m.cfg.Categories[m.catCursor]
}

// sessionStarted reports whether a session is underway, paused included.
func (m timerModel) sessionStarted() bool {
	p := m.engine.Phase()
	return p == timer.PhaseRunning || p == timer.PhasePaused
}

func (m timerModel) paused() bool {
	return m.engine.Phase() == timer.PhasePaused
}

// notifyFocus forwards the terminal focus signal to the engine and reports
// whether the signal paused a running session.
func (m *timerModel) notifyFocus(focused bool) bool {
	wasRunning := m.engine.Phase() == timer.PhaseRunning
	m.engine.NotifyFocusChange(focused)
	return wasRunning && m.engine.Phase() == timer.PhasePaused
}

func (m timerModel) update(msg tea.Msg) (timerModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tickMsg:
		if rec := m.engine.Tick(time.Time(msg)); rec != nil {
			return m, m.saveSession(*rec)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Start):
			return m.handleStart()

		case key.Matches(msg, keys.Reset):
			m.engine.Reset()
			return m, nil

		case key.Matches(msg, keys.Configure):
			if m.engine.Phase() == timer.PhaseIdle {
				return m.showForm()
			}

		case key.Matches(msg, keys.Enter):
			switch m.engine.Phase() {
			case timer.PhaseIdle:
				return m.showForm()
			case timer.PhaseCompleted:
				m.engine.Reset()
			}
			return m, nil

		case key.Matches(msg, keys.Left):
			if m.engine.Phase() == timer.PhaseIdle && m.catCursor > 0 {
				m.catCursor--
			}
			return m, nil

		case key.Matches(msg, keys.Right):
			if m.engine.Phase() == timer.PhaseIdle && m.catCursor < len(m.cfg.Categories)-1 {
				m.catCursor++
			}
			return m, nil
		}
	}
	return m, nil
}

func (m timerModel) handleStart() (timerModel, tea.Cmd) {
	switch m.engine.Phase() {
	case timer.PhaseIdle:
		if err := m.engine.Configure(m.selHours, m.selMinutes, m.category()); err != nil {
			return m, func() tea.Msg {
				return statusMsg{text: err.Error(), isError: true}
			}
		}
		m.engine.Start()
	case timer.PhaseRunning, timer.PhasePaused:
		m.engine.Toggle()
	}
	return m, nil
}

// saveSession persists a completed session. A storage failure is surfaced
// in the status bar; the record itself is not retried.
func (m timerModel) saveSession(rec store.SessionRecord) tea.Cmd {
	return func() tea.Msg {
		if err := m.store.AppendSession(rec); err != nil {
			return statusMsg{text: fmt.Sprintf("Session finished but not saved: %v", err), isError: true}
		}
		return sessionSavedMsg{rec: rec}
	}
}

// --- Duration form ---

func (m timerModel) showForm() (timerModel, tea.Cmd) {
	*m.fHours = m.selHours
	*m.fMinutes = m.selMinutes
	*m.fCategory = m.category()

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Category").
				Options(huh.NewOptions(m.cfg.Categories...)...).
				Value(m.fCategory),
			huh.NewSelect[int]().Title("Hours").
				Options(intOptions(23)...).
				Value(m.fHours),
			huh.NewSelect[int]().Title("Minutes").
				Options(intOptions(59)...).
				Value(m.fMinutes),
		).Title("Focus Session"),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m timerModel) updateForm(msg tea.Msg) (timerModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		m.selHours = *m.fHours
		m.selMinutes = *m.fMinutes
		for i, cat := range m.cfg.Categories {
			if cat == *m.fCategory {
				m.catCursor = i
				break
			}
		}
		return m, nil
	}

	return m, cmd
}

func intOptions(maxVal int) []huh.Option[int] {
	opts := make([]huh.Option[int], 0, maxVal+1)
	for i := 0; i <= maxVal; i++ {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%02d", i), i))
	}
	return opts
}

// --- View ---

func (m timerModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("Focus Session")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	switch m.engine.Phase() {
	case timer.PhaseRunning, timer.PhasePaused:
		return m.viewCountdown(w)
	case timer.PhaseCompleted:
		return m.viewCompleted(w)
	default:
		return m.viewIdle(w)
	}
}

func (m timerModel) viewIdle(w int) string {
	title := titleStyle.Render("Focus Session")
	subtitle := mutedStyle.Render("Pick a category and a duration, then start")

	total := m.selHours*3600 + m.selMinutes*60
	timeDisplay := timerStyle.Width(w - 6).Render(formatClock(total))

	controls := mutedStyle.Render("s: start  enter: configure  ←/→: category")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center,
			title,
			subtitle,
			"",
			m.renderCategories(),
			"",
			timeDisplay,
			"",
			controls,
		),
	)
}

func (m timerModel) viewCountdown(w int) string {
	var timeDisplay, indicator string
	if m.paused() {
		timeDisplay = timerPausedStyle.Width(w - 6).Render(formatClock(m.engine.Remaining()))
		indicator = warningStyle.Render("⏸  PAUSED")
	} else {
		timeDisplay = timerRunningStyle.Width(w - 6).Render(formatClock(m.engine.Remaining()))
		indicator = successStyle.Render("🔥 FOCUSING")
	}

	categoryLine := highlightStyle.Render(m.engine.Category())
	distractions := accentStyle.Render(fmt.Sprintf("Distractions: %d", m.engine.Distractions()))
	controls := mutedStyle.Render("s/space: pause/resume  r: reset")

	return activePanelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center,
			timeDisplay,
			indicator,
			categoryLine,
			"",
			distractions,
			"",
			controls,
		),
	)
}

func (m timerModel) viewCompleted(w int) string {
	title := successStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render("Session complete!")
	detail := lipgloss.JoinVertical(lipgloss.Center,
		highlightStyle.Render(m.engine.Category()),
		mutedStyle.Render(formatSeconds(m.engine.InitialDuration())+" focused"),
	)
	controls := mutedStyle.Render("enter: dismiss")

	return activePanelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, title, "", detail, "", controls),
	)
}

func (m timerModel) renderCategories() string {
	var chips []string
	for i, cat := range m.cfg.Categories {
		if i == m.catCursor {
			chips = append(chips, selectedItemStyle.Render("["+cat+"]"))
		} else {
			chips = append(chips, normalItemStyle.Render(" "+cat+" "))
		}
	}
	return strings.Join(chips, " ")
}
