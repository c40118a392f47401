package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/odak/internal/store"
)

func ToCSV(sessions []store.SessionRecord, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Date", "Category", "Duration (s)", "Duration", "Distractions", "Status"}); err != nil {
		return err
	}

	for _, rec := range sessions {
		row := []string{
			rec.ID,
			rec.Date.Local().Format(time.RFC3339),
			rec.Category,
			fmt.Sprintf("%d", rec.Duration),
			formatDuration(rec.Duration),
			fmt.Sprintf("%d", rec.DistractionCount),
			rec.Status,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func formatDuration(secs int) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
