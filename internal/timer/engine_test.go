package timer

import (
	"strconv"
	"testing"
	"time"

	"github.com/sadopc/odak/internal/store"
)

var testNow = time.Date(2026, time.March, 14, 15, 9, 26, 0, time.UTC)

// configured returns an engine with a session configured but not started.
func configured(t *testing.T, hours, minutes int, category string) *Engine {
	t.Helper()
	e := NewEngine()
	if err := e.Configure(hours, minutes, category); err != nil {
		t.Fatalf("configure: %v", err)
	}
	return e
}

// runTicks drives the engine n seconds and returns the records emitted.
func runTicks(e *Engine, n int) []int {
	var completedAt []int
	for i := 0; i < n; i++ {
		if rec := e.Tick(testNow); rec != nil {
			completedAt = append(completedAt, i)
		}
	}
	return completedAt
}

// ============================================================
// Configure
// ============================================================

func TestConfigure(t *testing.T) {
	e := configured(t, 1, 30, "Coding")

	if e.Phase() != PhaseIdle {
		t.Fatal("configure should not start the session")
	}
	if e.InitialDuration() != 5400 {
		t.Fatalf("initial duration = %d, want 5400", e.InitialDuration())
	}
	if e.Remaining() != 5400 {
		t.Fatalf("remaining = %d, want 5400", e.Remaining())
	}
	if e.Category() != "Coding" {
		t.Fatalf("category = %q, want Coding", e.Category())
	}
}

func TestConfigureZeroDuration(t *testing.T) {
	e := NewEngine()
	err := e.Configure(0, 0, "Coding")
	if err != ErrZeroDuration {
		t.Fatalf("expected ErrZeroDuration, got %v", err)
	}
	if e.Phase() != PhaseIdle {
		t.Fatal("phase should stay Idle")
	}
	if e.InitialDuration() != 0 {
		t.Fatal("failed configure should not change state")
	}
}

func TestConfigureWhileRunning(t *testing.T) {
	e := configured(t, 0, 25, "Coding")
	e.Start()

	err := e.Configure(0, 10, "Reading")
	if err != ErrSessionActive {
		t.Fatalf("expected ErrSessionActive, got %v", err)
	}
	if e.InitialDuration() != 1500 || e.Category() != "Coding" {
		t.Fatal("configure mid-session should not change state")
	}
}

func TestReconfigureAfterReset(t *testing.T) {
	e := configured(t, 0, 25, "Coding")
	e.Start()
	e.Reset()

	if err := e.Configure(0, 10, "Reading"); err != nil {
		t.Fatalf("reconfigure after reset: %v", err)
	}
	if e.InitialDuration() != 600 {
		t.Fatalf("initial duration = %d, want 600", e.InitialDuration())
	}
}

// ============================================================
// Start / Toggle
// ============================================================

func TestStart(t *testing.T) {
	e := configured(t, 0, 25, "Coding")
	e.Start()

	if e.Phase() != PhaseRunning {
		t.Fatal("start should transition to Running")
	}
	if e.Distractions() != 0 {
		t.Fatal("start should reset the distraction count")
	}
}

func TestStartWithoutConfigure(t *testing.T) {
	e := NewEngine()
	e.Start()
	if e.Phase() != PhaseIdle {
		t.Fatal("start without a configured duration should be a no-op")
	}
}

func TestStartActsAsToggle(t *testing.T) {
	e := configured(t, 0, 25, "Coding")
	e.Start()

	e.Start() // running -> paused
	if e.Phase() != PhasePaused {
		t.Fatal("start while running should pause")
	}

	e.Start() // paused -> running
	if e.Phase() != PhaseRunning {
		t.Fatal("start while paused should resume")
	}
}

func TestToggle(t *testing.T) {
	e := configured(t, 0, 25, "Coding")
	e.Start()

	e.Toggle()
	if e.Phase() != PhasePaused {
		t.Fatal("toggle should pause")
	}
	e.Toggle()
	if e.Phase() != PhaseRunning {
		t.Fatal("toggle should resume")
	}
}

func TestToggleWhenIdle(t *testing.T) {
	e := configured(t, 0, 25, "Coding")
	e.Toggle()
	if e.Phase() != PhaseIdle {
		t.Fatal("toggle before start should be a no-op")
	}
}

// ============================================================
// Tick / completion
// ============================================================

func TestTickCountsDownToCompletion(t *testing.T) {
	e := configured(t, 0, 1, "Coding")
	e.Start()

	for i := 0; i < 59; i++ {
		if rec := e.Tick(testNow); rec != nil {
			t.Fatalf("tick %d emitted a record early", i)
		}
	}
	if e.Remaining() != 1 {
		t.Fatalf("remaining = %d, want 1", e.Remaining())
	}

	rec := e.Tick(testNow)
	if rec == nil {
		t.Fatal("final tick should emit the session record")
	}
	if e.Phase() != PhaseCompleted {
		t.Fatalf("phase = %v, want Completed", e.Phase())
	}

	if rec.Duration != 60 {
		t.Fatalf("duration = %d, want 60", rec.Duration)
	}
	if rec.Category != "Coding" {
		t.Fatalf("category = %q, want Coding", rec.Category)
	}
	if rec.Status != "Completed" {
		t.Fatalf("status = %q, want Completed", rec.Status)
	}
	if rec.DistractionCount != 0 {
		t.Fatalf("distractions = %d, want 0", rec.DistractionCount)
	}
	if rec.ID != strconv.FormatInt(testNow.UnixMilli(), 10) {
		t.Fatalf("id = %q, want creation timestamp", rec.ID)
	}
	if !rec.Date.Equal(testNow) {
		t.Fatalf("date = %v, want %v", rec.Date, testNow)
	}
}

func TestTickEmitsExactlyOneRecord(t *testing.T) {
	e := configured(t, 0, 1, "Coding")
	e.Start()

	emitted := runTicks(e, 120)
	if len(emitted) != 1 {
		t.Fatalf("expected exactly 1 record over 120 ticks, got %d", len(emitted))
	}
	if emitted[0] != 59 {
		t.Fatalf("record emitted at tick %d, want 59", emitted[0])
	}
}

func TestTickIgnoredWhilePaused(t *testing.T) {
	e := configured(t, 0, 1, "Coding")
	e.Start()
	e.Tick(testNow)
	e.Toggle()

	before := e.Remaining()
	if rec := e.Tick(testNow); rec != nil {
		t.Fatal("tick while paused should not emit")
	}
	if e.Remaining() != before {
		t.Fatal("tick while paused should not decrement")
	}
}

func TestTickIgnoredWhileIdle(t *testing.T) {
	e := configured(t, 0, 1, "Coding")
	if rec := e.Tick(testNow); rec != nil {
		t.Fatal("tick while idle should not emit")
	}
	if e.Remaining() != 60 {
		t.Fatal("tick while idle should not decrement")
	}
}

// ============================================================
// Focus signal
// ============================================================

func TestFocusLossWhileRunning(t *testing.T) {
	e := configured(t, 0, 25, "Coding")
	e.Start()

	e.NotifyFocusChange(false)
	if e.Phase() != PhasePaused {
		t.Fatal("losing focus while running should pause")
	}
	if e.Distractions() != 1 {
		t.Fatalf("distractions = %d, want 1", e.Distractions())
	}
}

func TestFocusLossOnlyCountsTransitions(t *testing.T) {
	e := configured(t, 0, 25, "Coding")
	e.Start()

	e.NotifyFocusChange(false)
	e.NotifyFocusChange(false) // still in background, no new transition
	if e.Distractions() != 1 {
		t.Fatalf("distractions = %d, want 1", e.Distractions())
	}

	e.NotifyFocusChange(true)
	e.Toggle() // resume
	e.NotifyFocusChange(false)
	if e.Distractions() != 2 {
		t.Fatalf("distractions = %d, want 2", e.Distractions())
	}
}

func TestFocusLossWhilePaused(t *testing.T) {
	e := configured(t, 0, 25, "Coding")
	e.Start()
	e.Toggle()

	e.NotifyFocusChange(false)
	if e.Distractions() != 0 {
		t.Fatal("losing focus while paused should not count")
	}
	if e.Phase() != PhasePaused {
		t.Fatal("phase should stay Paused")
	}
}

func TestFocusLossWhileIdle(t *testing.T) {
	e := configured(t, 0, 25, "Coding")
	e.NotifyFocusChange(false)
	e.NotifyFocusChange(true)
	if e.Phase() != PhaseIdle || e.Distractions() != 0 {
		t.Fatal("focus changes while idle should have no effect")
	}
}

func TestRecordCarriesDistractions(t *testing.T) {
	e := configured(t, 0, 1, "Coding")
	e.Start()

	e.NotifyFocusChange(false)
	e.NotifyFocusChange(true)
	e.Toggle() // resume

	rec := runFull(e, 60)
	if rec == nil {
		t.Fatal("session should complete")
	}
	if rec.DistractionCount != 1 {
		t.Fatalf("distractions = %d, want 1", rec.DistractionCount)
	}
	if rec.Duration != 60 {
		t.Fatalf("duration = %d, want the configured 60, not elapsed", rec.Duration)
	}
}

// ============================================================
// Reset
// ============================================================

func TestResetFromRunning(t *testing.T) {
	e := configured(t, 0, 25, "Coding")
	e.Start()
	e.Tick(testNow)
	e.NotifyFocusChange(false)

	e.Reset()
	if e.Phase() != PhaseIdle {
		t.Fatal("reset should return to Idle")
	}
	if e.Remaining() != e.InitialDuration() {
		t.Fatal("reset should restore the full duration")
	}
	if e.Distractions() != 0 {
		t.Fatal("reset should clear distractions")
	}
}

func TestResetFromCompleted(t *testing.T) {
	e := configured(t, 0, 1, "Coding")
	e.Start()
	runFull(e, 60)

	e.Reset()
	if e.Phase() != PhaseIdle || e.Remaining() != 60 {
		t.Fatal("reset from Completed should restore Idle with full duration")
	}
}

func TestAbortedSessionEmitsNothing(t *testing.T) {
	e := configured(t, 0, 1, "Coding")
	e.Start()
	runTicks(e, 30)
	e.Reset()

	// A fresh session still runs the full duration and only then emits.
	e.Start()
	if emitted := runTicks(e, 59); len(emitted) != 0 {
		t.Fatal("no record before the new session's final tick")
	}
	if rec := e.Tick(testNow); rec == nil {
		t.Fatal("new session should complete on its own final tick")
	}
}

// runFull ticks until a record appears or n ticks pass.
func runFull(e *Engine, n int) *store.SessionRecord {
	for i := 0; i < n; i++ {
		if rec := e.Tick(testNow); rec != nil {
			return rec
		}
	}
	return nil
}
