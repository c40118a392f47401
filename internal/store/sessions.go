package store

import (
	"encoding/json"
	"fmt"
)

// sessionsKey is the single logical key the whole session history lives
// under, serialized as one JSON array.
const sessionsKey = "focusSessions"

// ListSessions returns every stored session in insertion order. A missing
// key or a corrupt blob reads as an empty history, never as an error.
func (s *Store) ListSessions() ([]SessionRecord, error) {
	raw, ok, err := s.getValue(sessionsKey)
	if err != nil {
		return nil, fmt.Errorf("read sessions: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var sessions []SessionRecord
	if err := json.Unmarshal([]byte(raw), &sessions); err != nil {
		// Corrupt data is treated as no data.
		return nil, nil
	}
	return sessions, nil
}

// AppendSession adds one record to the end of the history. There is no
// automatic retry: a failed append loses the record.
func (s *Store) AppendSession(rec SessionRecord) error {
	sessions, err := s.ListSessions()
	if err != nil {
		return err
	}
	sessions = append(sessions, rec)
	return s.writeSessions(sessions)
}

// DeleteSession removes the record with the given id. Unknown ids are a
// no-op.
func (s *Store) DeleteSession(id string) error {
	sessions, err := s.ListSessions()
	if err != nil {
		return err
	}

	kept := sessions[:0]
	for _, rec := range sessions {
		if rec.ID != id {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(sessions) {
		return nil
	}
	return s.writeSessions(kept)
}

// ClearSessions removes the entire history. Idempotent.
func (s *Store) ClearSessions() error {
	return s.removeValue(sessionsKey)
}

func (s *Store) writeSessions(sessions []SessionRecord) error {
	data, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("encode sessions: %w", err)
	}
	return s.setValue(sessionsKey, string(data))
}
