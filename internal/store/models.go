package store

import "time"

// StatusCompleted is the only status written today. The field exists so
// future non-terminal statuses (abandoned, partial) can share the record.
const StatusCompleted = "Completed"

// SessionRecord is one completed focus session. Records are immutable once
// appended and only leave the store via DeleteSession or ClearSessions.
//
// Duration is the configured session length in seconds, not wall-clock
// elapsed time: pauses do not shrink it.
type SessionRecord struct {
	ID               string    `json:"id"`
	Date             time.Time `json:"date"`
	Category         string    `json:"category"`
	Duration         int       `json:"duration"`
	DistractionCount int       `json:"distractionCount"`
	Status           string    `json:"status"`
}
