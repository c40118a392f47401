// Package timer implements the countdown state machine for one focus
// session. The engine is synchronous: the one-second tick and the host
// focus signal are delivered by the caller, so the whole machine can be
// driven from tests without a clock or a terminal.
package timer

import (
	"errors"
	"strconv"
	"time"

	"github.com/sadopc/odak/internal/store"
)

// Phase is the engine's current state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhasePaused
	PhaseCompleted
)

var phaseNames = map[Phase]string{
	PhaseIdle:      "IDLE",
	PhaseRunning:   "RUNNING",
	PhasePaused:    "PAUSED",
	PhaseCompleted: "COMPLETED",
}

func (p Phase) String() string { return phaseNames[p] }

// ErrZeroDuration is the one recoverable user-input error: a session of
// zero length cannot be configured.
var ErrZeroDuration = errors.New("select a duration of at least one minute")

// ErrSessionActive is returned by Configure outside the Idle phase.
var ErrSessionActive = errors.New("a session is already in progress")

// Engine owns one session's countdown. Completion emits exactly one
// SessionRecord; an aborted session emits nothing.
type Engine struct {
	phase           Phase
	category        string
	initialDuration int // seconds
	remaining       int
	distractions    int
	focused         bool // last known host focus state
}

func NewEngine() *Engine {
	return &Engine{focused: true}
}

// Configure sets the session length and category. Valid only while Idle;
// the phase stays Idle until Start.
func (e *Engine) Configure(hours, minutes int, category string) error {
	if e.phase != PhaseIdle {
		return ErrSessionActive
	}
	total := hours*3600 + minutes*60
	if total == 0 {
		return ErrZeroDuration
	}
	e.initialDuration = total
	e.remaining = total
	e.category = category
	return nil
}

// Start begins the countdown and resets the distraction count. When a
// session is already underway it behaves as Toggle, matching a single
// start/pause/resume button.
func (e *Engine) Start() {
	switch e.phase {
	case PhaseIdle:
		if e.initialDuration == 0 {
			return
		}
		e.remaining = e.initialDuration
		e.distractions = 0
		e.phase = PhaseRunning
	case PhaseRunning, PhasePaused:
		e.Toggle()
	}
}

// Toggle flips Running and Paused. No-op in any other phase.
func (e *Engine) Toggle() {
	switch e.phase {
	case PhaseRunning:
		e.phase = PhasePaused
	case PhasePaused:
		e.phase = PhaseRunning
	}
}

// Tick advances the countdown by one second. It only decrements while
// Running, so a stale tick delivered after a pause or reset is harmless.
// When the countdown reaches zero the engine moves to Completed and Tick
// returns the session's record; every other call returns nil.
func (e *Engine) Tick(now time.Time) *store.SessionRecord {
	if e.phase != PhaseRunning {
		return nil
	}
	e.remaining--
	if e.remaining > 0 {
		return nil
	}

	e.remaining = 0
	e.phase = PhaseCompleted
	return &store.SessionRecord{
		ID:               strconv.FormatInt(now.UnixMilli(), 10),
		Date:             now,
		Category:         e.category,
		Duration:         e.initialDuration,
		DistractionCount: e.distractions,
		Status:           store.StatusCompleted,
	}
}

// Reset discards the session in any phase: back to Idle with the full
// configured duration and a zero distraction count. Nothing is persisted.
func (e *Engine) Reset() {
	e.phase = PhaseIdle
	e.remaining = e.initialDuration
	e.distractions = 0
}

// NotifyFocusChange records the host's focus signal. Losing focus while
// Running pauses the session and counts one distraction; this is the only
// way the distraction count increments.
func (e *Engine) NotifyFocusChange(focused bool) {
	wasFocused := e.focused
	e.focused = focused

	if wasFocused && !focused && e.phase == PhaseRunning {
		e.phase = PhasePaused
		e.distractions++
	}
}

func (e *Engine) Phase() Phase         { return e.phase }
func (e *Engine) Category() string     { return e.category }
func (e *Engine) Remaining() int       { return e.remaining }
func (e *Engine) InitialDuration() int { return e.initialDuration }
func (e *Engine) Distractions() int    { return e.distractions }
