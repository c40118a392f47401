// Package stats folds the stored session history into summary data for the
// reports screen. Everything here is a pure function of the input list and
// the supplied reference time.
package stats

import (
	"math"
	"time"

	"github.com/sadopc/odak/internal/store"
)

// PaletteSize is the number of colors in the fixed category palette. The
// aggregator assigns indices cyclically in first-seen order; the renderer
// owns the actual colors.
const PaletteSize = 6

// CategoryShare is one category's slice of the all-time total. Percentages
// are rounded independently, so they need not sum to exactly 100.
type CategoryShare struct {
	Category     string
	TotalSeconds int
	Percentage   int
	ColorIndex   int
}

// DayBucket is one bar of the last-7-days chart.
type DayBucket struct {
	Label   string  // short weekday name
	Minutes float64 // rounded to one decimal place
}

type Summary struct {
	TodayFocusSeconds int
	TotalFocusSeconds int
	TotalDistractions int
	Categories        []CategoryShare
	Last7Days         []DayBucket // oldest to newest, always 7 entries
}

// Aggregate computes the full summary. Calendar comparisons use now's
// location. Sessions older than the 7-day window still count toward the
// totals and the category breakdown, just not the chart.
func Aggregate(sessions []store.SessionRecord, now time.Time) Summary {
	loc := now.Location()
	todayKey := dayKey(now, loc)

	days := make([]DayBucket, 7)
	daySeconds := make([]int, 7)
	dayIndex := make(map[string]int, 7)
	for i := range days {
		d := now.AddDate(0, 0, i-6)
		days[i].Label = d.In(loc).Format("Mon")
		dayIndex[dayKey(d, loc)] = i
	}

	var summary Summary
	catSeconds := make(map[string]int)
	var catOrder []string

	for _, rec := range sessions {
		summary.TotalFocusSeconds += rec.Duration
		summary.TotalDistractions += rec.DistractionCount

		key := dayKey(rec.Date, loc)
		if key == todayKey {
			summary.TodayFocusSeconds += rec.Duration
		}
		if i, ok := dayIndex[key]; ok {
			daySeconds[i] += rec.Duration
		}

		// Whatever value the record carries is its group, empty included.
		if _, seen := catSeconds[rec.Category]; !seen {
			catOrder = append(catOrder, rec.Category)
		}
		catSeconds[rec.Category] += rec.Duration
	}

	for i := range days {
		days[i].Minutes = math.Round(float64(daySeconds[i])/60*10) / 10
	}
	summary.Last7Days = days

	for i, cat := range catOrder {
		total := catSeconds[cat]
		pct := 0
		if summary.TotalFocusSeconds > 0 {
			pct = int(math.Round(float64(total) / float64(summary.TotalFocusSeconds) * 100))
		}
		summary.Categories = append(summary.Categories, CategoryShare{
			Category:     cat,
			TotalSeconds: total,
			Percentage:   pct,
			ColorIndex:   i % PaletteSize,
		})
	}

	return summary
}

func dayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}
