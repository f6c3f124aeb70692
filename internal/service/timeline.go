package service

import (
	"math"
	"sort"
	"time"

	"github.com/buildcanada/trade-tracker/internal/model"
)

// Label placement constants for the timeline axis (percent of its width).
const (
	timelineMinSpacing  = 7.0
	timelineMinPosition = 2.0
	timelineMaxPosition = 95.0
	timelineCenter      = 50.0
)

// TimelineLabel is one status-change marker on the axis.
type TimelineLabel struct {
	Status   string    `json:"status"`
	Date     time.Time `json:"date"`
	Position float64   `json:"position"`
}

// TimelineSegment is a colored span of the progress bar between two
// consecutive status changes.
type TimelineSegment struct {
	Status    string    `json:"status"`
	Color     string    `json:"color"`
	Start     float64   `json:"start"`
	Width     float64   `json:"width"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// Timeline is the rendered layout for one agreement's history.
type Timeline struct {
	Segments []TimelineSegment `json:"segments"`
	Labels   []TimelineLabel   `json:"labels"`
}

// statusBarColor maps an agreement status to its progress-bar color.
func statusBarColor(status string) string {
	switch model.AgreementStatus(status) {
	case model.StatusUnderNegotiation:
		return "#facc15"
	case model.StatusAgreementReached:
		return "#fb923c"
	case model.StatusPartiallyImplemented:
		return "#4ade80"
	case model.StatusImplemented:
		return "#16a34a"
	case model.StatusDeferred:
		return "#f87171"
	default:
		return "#9ca3af"
	}
}

// BuildTimeline lays out an agreement's history on a 0-100% axis running from
// the earliest entry to now. The first label is pinned to the left edge; later
// labels are nudged apart so they stay readable, and a Deferred entry freezes
// the bar: the previous segment stretches to 100% and layout stops there.
func BuildTimeline(history []model.HistoryEntry, now time.Time) Timeline {
	if len(history) == 0 {
		return Timeline{}
	}

	entries := make([]model.HistoryEntry, len(history))
	copy(entries, history)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date().Before(entries[j].Date())
	})

	start := entries[0].Date()
	totalDays := math.Ceil(now.Sub(start).Hours() / 24)
	if totalDays < 1 {
		// All entries landed today; keep positions finite.
		totalDays = 1
	}

	positions := adjustedPositions(entries, start, totalDays)

	var segments []TimelineSegment
	for i, entry := range entries {
		if model.AgreementStatus(entry.Status) == model.StatusDeferred {
			if len(segments) > 0 {
				prevStart := positions[i-1]
				if i == 1 {
					prevStart = 0
				}
				last := &segments[len(segments)-1]
				last.Width = 100 - prevStart
				last.EndDate = now
			}
			break
		}

		segStart := positions[i]
		if i == 0 {
			segStart = 0
		}
		segEnd := 100.0
		endDate := now
		if i+1 < len(entries) {
			segEnd = positions[i+1]
			endDate = entries[i+1].Date()
		}

		segments = append(segments, TimelineSegment{
			Status:    entry.Status,
			Color:     statusBarColor(entry.Status),
			Start:     segStart,
			Width:     segEnd - segStart,
			StartDate: entry.Date(),
			EndDate:   endDate,
		})
	}

	labels := make([]TimelineLabel, len(entries))
	for i, entry := range entries {
		labels[i] = TimelineLabel{
			Status:   entry.Status,
			Date:     entry.Date(),
			Position: positions[i],
		}
	}

	return Timeline{Segments: segments, Labels: labels}
}

// adjustedPositions spaces labels at least timelineMinSpacing apart. A label
// that would crowd its predecessor is pushed toward the far side of the axis
// center first, then the near side, and finally clamped on-canvas.
func adjustedPositions(entries []model.HistoryEntry, start time.Time, totalDays float64) []float64 {
	positions := make([]float64, 0, len(entries))

	for i, entry := range entries {
		daysFromStart := math.Ceil(entry.Date().Sub(start).Hours() / 24)
		original := (daysFromStart / totalDays) * 100

		if i == 0 {
			positions = append(positions, 0)
			continue
		}

		adjusted := original
		minRequired := positions[i-1] + timelineMinSpacing
		if adjusted < minRequired {
			if original < timelineCenter {
				adjusted = math.Min(minRequired, timelineCenter-timelineMinSpacing)
				if adjusted < minRequired {
					adjusted = math.Max(minRequired, timelineCenter+timelineMinSpacing)
				}
			} else {
				adjusted = math.Max(minRequired, timelineCenter+timelineMinSpacing)
				if adjusted > timelineMaxPosition {
					adjusted = math.Min(minRequired, timelineCenter-timelineMinSpacing)
				}
			}
		}

		adjusted = math.Max(timelineMinPosition, math.Min(timelineMaxPosition, adjusted))
		positions = append(positions, adjusted)
	}

	return positions
}
