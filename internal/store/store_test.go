package store

import (
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRecord(id string) SessionRecord {
	return SessionRecord{
		ID:               id,
		Date:             time.Date(2026, time.March, 14, 15, 0, 0, 0, time.UTC),
		Category:         "Coding",
		Duration:         1500,
		DistractionCount: 2,
		Status:           StatusCompleted,
	}
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/odak.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen — should succeed and not re-migrate
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	// Running migrate again should be a no-op
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// KV primitives
// ============================================================

func TestKVRoundTrip(t *testing.T) {
	s := newTestStore(t)

	if _, ok, _ := s.getValue("missing"); ok {
		t.Fatal("missing key should not be found")
	}

	if err := s.setValue("k", "v1"); err != nil {
		t.Fatal(err)
	}
	v, ok, err := s.getValue("k")
	if err != nil || !ok || v != "v1" {
		t.Fatalf("get = (%q, %v, %v), want (v1, true, nil)", v, ok, err)
	}

	// Overwrite
	if err := s.setValue("k", "v2"); err != nil {
		t.Fatal(err)
	}
	v, _, _ = s.getValue("k")
	if v != "v2" {
		t.Fatalf("get after overwrite = %q, want v2", v)
	}

	if err := s.removeValue("k"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.getValue("k"); ok {
		t.Fatal("removed key should be gone")
	}

	// Removing again is fine
	if err := s.removeValue("k"); err != nil {
		t.Fatalf("second remove: %v", err)
	}
}

// ============================================================
// Sessions
// ============================================================

func TestAppendAndList(t *testing.T) {
	s := newTestStore(t)
	rec := sampleRecord("100")

	if err := s.AppendSession(rec); err != nil {
		t.Fatal(err)
	}

	sessions, err := s.ListSessions()
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}

	got := sessions[0]
	if got.ID != rec.ID {
		t.Fatalf("id = %q, want %q", got.ID, rec.ID)
	}
	if !got.Date.Equal(rec.Date) {
		t.Fatalf("date = %v, want %v", got.Date, rec.Date)
	}
	if got.Category != rec.Category || got.Duration != rec.Duration {
		t.Fatalf("round trip mangled record: %+v", got)
	}
	if got.DistractionCount != rec.DistractionCount || got.Status != rec.Status {
		t.Fatalf("round trip mangled record: %+v", got)
	}
}

func TestListEmpty(t *testing.T) {
	s := newTestStore(t)
	sessions, err := s.ListSessions()
	if err != nil {
		t.Fatal(err)
	}
	if sessions != nil {
		t.Fatalf("expected nil slice, got %d items", len(sessions))
	}
}

func TestAppendPreservesOrder(t *testing.T) {
	s := newTestStore(t)
	for _, id := range []string{"1", "2", "3"} {
		if err := s.AppendSession(sampleRecord(id)); err != nil {
			t.Fatal(err)
		}
	}

	sessions, _ := s.ListSessions()
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}
	for i, want := range []string{"1", "2", "3"} {
		if sessions[i].ID != want {
			t.Fatalf("sessions[%d].ID = %q, want %q (insertion order)", i, sessions[i].ID, want)
		}
	}
}

func TestDeleteSession(t *testing.T) {
	s := newTestStore(t)
	for _, id := range []string{"1", "2", "3"} {
		s.AppendSession(sampleRecord(id))
	}

	if err := s.DeleteSession("2"); err != nil {
		t.Fatal(err)
	}

	sessions, _ := s.ListSessions()
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].ID != "1" || sessions[1].ID != "3" {
		t.Fatalf("delete removed the wrong record: %+v", sessions)
	}
}

func TestDeleteSessionMissing(t *testing.T) {
	s := newTestStore(t)
	s.AppendSession(sampleRecord("1"))

	if err := s.DeleteSession("nope"); err != nil {
		t.Fatalf("deleting a missing id should be a no-op: %v", err)
	}
	sessions, _ := s.ListSessions()
	if len(sessions) != 1 {
		t.Fatal("no-op delete should not remove anything")
	}
}

func TestClearSessions(t *testing.T) {
	s := newTestStore(t)
	s.AppendSession(sampleRecord("1"))
	s.AppendSession(sampleRecord("2"))

	if err := s.ClearSessions(); err != nil {
		t.Fatal(err)
	}
	sessions, _ := s.ListSessions()
	if sessions != nil {
		t.Fatal("clear should leave an empty history")
	}

	// Idempotent
	if err := s.ClearSessions(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestCorruptBlobReadsAsEmpty(t *testing.T) {
	s := newTestStore(t)
	if err := s.setValue(sessionsKey, "{definitely not json"); err != nil {
		t.Fatal(err)
	}

	sessions, err := s.ListSessions()
	if err != nil {
		t.Fatalf("corrupt data should not error: %v", err)
	}
	if sessions != nil {
		t.Fatal("corrupt data should read as empty")
	}

	// Appending over a corrupt blob starts a fresh history.
	if err := s.AppendSession(sampleRecord("1")); err != nil {
		t.Fatal(err)
	}
	sessions, _ = s.ListSessions()
	if len(sessions) != 1 || sessions[0].ID != "1" {
		t.Fatalf("append after corruption failed: %+v", sessions)
	}
}

func TestMissingDistractionCountDefaultsToZero(t *testing.T) {
	s := newTestStore(t)
	// A record written before distraction tracking existed.
	blob := `[{"id":"1","date":"2026-03-14T15:00:00Z","category":"Coding","duration":600,"status":"Completed"}]`
	if err := s.setValue(sessionsKey, blob); err != nil {
		t.Fatal(err)
	}

	sessions, err := s.ListSessions()
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	if sessions[0].DistractionCount != 0 {
		t.Fatalf("missing distractionCount should default to 0, got %d", sessions[0].DistractionCount)
	}
}
