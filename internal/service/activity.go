package service

import (
	"time"

	"github.com/buildcanada/trade-tracker/internal/model"
)

// ActivityWindow selects the charted range: the trailing 12 calendar months
// or everything since the earliest recorded status change.
type ActivityWindow string

const (
	WindowTwelveMonths ActivityWindow = "12months"
	WindowAllTime      ActivityWindow = "alltime"
)

// activityEpoch is the fallback chart start when no history exists.
var activityEpoch = time.Date(2018, time.January, 1, 0, 0, 0, 0, time.UTC)

// ActivityBucket is one calendar month of status-change counts.
type ActivityBucket struct {
	Month     string `json:"month"` // YYYY-MM
	MonthName string `json:"monthName"`
	Year      int    `json:"year"`
	Changes   int    `json:"changes"`
}

// statusChange is one flattened history event across all agreements.
type statusChange struct {
	date   time.Time
	status string
}

// ActivityBuckets flattens every agreement's history into a single stream and
// groups it by calendar month over the selected window. The window is always
// fully populated: months with no activity appear with a zero count, and the
// trailing window is exactly 12 buckets regardless of data sparsity.
func ActivityBuckets(agreements []model.Agreement, window ActivityWindow, now time.Time) []ActivityBucket {
	var changes []statusChange
	for _, a := range agreements {
		for _, h := range a.History {
			d := h.Date()
			if d.IsZero() {
				continue
			}
			changes = append(changes, statusChange{date: d, status: h.Status})
		}
	}

	anchor := monthStart(now)
	start := anchor.AddDate(0, -11, 0)
	if window == WindowAllTime {
		start = earliestMonth(changes)
	}

	counts := make(map[string]int)
	for _, c := range changes {
		if c.date.Before(start) {
			continue
		}
		counts[c.date.Format("2006-01")]++
	}

	var buckets []ActivityBucket
	for m := start; !m.After(anchor); m = m.AddDate(0, 1, 0) {
		key := m.Format("2006-01")
		buckets = append(buckets, ActivityBucket{
			Month:     key,
			MonthName: m.Format("Jan"),
			Year:      m.Year(),
			Changes:   counts[key],
		})
	}
	return buckets
}

// earliestMonth finds the first day of the earliest change's month, falling
// back to the chart epoch when there is no history at all.
func earliestMonth(changes []statusChange) time.Time {
	if len(changes) == 0 {
		return activityEpoch
	}
	earliest := changes[0].date
	for _, c := range changes[1:] {
		if c.date.Before(earliest) {
			earliest = c.date
		}
	}
	return monthStart(earliest)
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
