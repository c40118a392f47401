package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/odak/internal/store"
)

type jsonExport struct {
	ExportedAt string        `json:"exported_at"`
	Count      int           `json:"count"`
	Sessions   []jsonSession `json:"sessions"`
}

type jsonSession struct {
	ID           string `json:"id"`
	Date         string `json:"date"`
	Category     string `json:"category"`
	DurationSec  int    `json:"duration_seconds"`
	Duration     string `json:"duration"`
	Distractions int    `json:"distractions"`
	Status       string `json:"status"`
}

func ToJSON(sessions []store.SessionRecord, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(sessions),
	}

	for _, rec := range sessions {
		export.Sessions = append(export.Sessions, jsonSession{
			ID:           rec.ID,
			Date:         rec.Date.Local().Format(time.RFC3339),
			Category:     rec.Category,
			DurationSec:  rec.Duration,
			Duration:     formatDuration(rec.Duration),
			Distractions: rec.DistractionCount,
			Status:       rec.Status,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
