package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildcanada/trade-tracker/internal/model"
)

var timelineNow = time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

func entry(status, date string) model.HistoryEntry {
	return model.HistoryEntry{Status: status, DateEntered: date}
}

func TestBuildTimeline(t *testing.T) {
	t.Run("empty history renders nothing", func(t *testing.T) {
		tl := BuildTimeline(nil, timelineNow)
		assert.Empty(t, tl.Segments)
		assert.Empty(t, tl.Labels)
	})

	t.Run("single entry spans the whole axis", func(t *testing.T) {
		tl := BuildTimeline([]model.HistoryEntry{
			entry("Under Negotiation", "2024-06-15"),
		}, timelineNow)

		require.Len(t, tl.Segments, 1)
		assert.Equal(t, 0.0, tl.Segments[0].Start)
		assert.Equal(t, 100.0, tl.Segments[0].Width)
		assert.Equal(t, timelineNow, tl.Segments[0].EndDate)
		assert.Equal(t, "#facc15", tl.Segments[0].Color)

		require.Len(t, tl.Labels, 1)
		assert.Equal(t, 0.0, tl.Labels[0].Position)
	})

	t.Run("entries sort by date and first label pins to zero", func(t *testing.T) {
		tl := BuildTimeline([]model.HistoryEntry{
			entry("Agreement Reached", "2025-01-15"),
			entry("Awaiting Sponsorship", "2024-06-15"),
			entry("Under Negotiation", "2024-09-15"),
		}, timelineNow)

		require.Len(t, tl.Labels, 3)
		assert.Equal(t, "Awaiting Sponsorship", tl.Labels[0].Status)
		assert.Equal(t, 0.0, tl.Labels[0].Position)

		require.Len(t, tl.Segments, 3)
		assert.Equal(t, 0.0, tl.Segments[0].Start)
		// Segments tile the axis: each starts where the previous ended.
		for i := 1; i < len(tl.Segments); i++ {
			prevEnd := tl.Segments[i-1].Start + tl.Segments[i-1].Width
			assert.InDelta(t, prevEnd, tl.Segments[i].Start, 0.001)
		}
		last := tl.Segments[len(tl.Segments)-1]
		assert.InDelta(t, 100.0, last.Start+last.Width, 0.001)
	})

	t.Run("label positions stay in bounds with minimum spacing", func(t *testing.T) {
		tl := BuildTimeline([]model.HistoryEntry{
			entry("Awaiting Sponsorship", "2025-06-01"),
			entry("Under Negotiation", "2025-06-05"),
			entry("Agreement Reached", "2025-06-08"),
			entry("Partially Implemented", "2025-06-12"),
		}, timelineNow)

		require.Len(t, tl.Labels, 4)
		assert.Equal(t, 0.0, tl.Labels[0].Position)
		for i := 1; i < len(tl.Labels); i++ {
			pos := tl.Labels[i].Position
			assert.GreaterOrEqual(t, pos, timelineMinPosition)
			assert.LessOrEqual(t, pos, timelineMaxPosition)
			gap := pos - tl.Labels[i-1].Position
			if pos < timelineMaxPosition {
				assert.GreaterOrEqual(t, gap, timelineMinSpacing-0.001)
			}
		}
	})

	t.Run("same-date entries still resolve without collision", func(t *testing.T) {
		tl := BuildTimeline([]model.HistoryEntry{
			entry("Awaiting Sponsorship", "2025-03-01"),
			entry("Under Negotiation", "2025-03-01"),
			entry("Agreement Reached", "2025-03-01"),
		}, timelineNow)

		require.Len(t, tl.Labels, 3)
		assert.Equal(t, []float64{0, 7, 14}, []float64{
			tl.Labels[0].Position, tl.Labels[1].Position, tl.Labels[2].Position,
		})
	})

	t.Run("deferred freezes the bar", func(t *testing.T) {
		tl := BuildTimeline([]model.HistoryEntry{
			entry("Awaiting Sponsorship", "2024-06-15"),
			entry("Under Negotiation", "2024-12-15"),
			entry("Deferred", "2025-03-15"),
		}, timelineNow)

		// No segment is drawn for the Deferred entry itself.
		require.Len(t, tl.Segments, 2)
		for _, seg := range tl.Segments {
			assert.NotEqual(t, "Deferred", seg.Status)
		}

		// The previous segment extends all the way to 100% and ends "now".
		last := tl.Segments[1]
		assert.InDelta(t, 100.0, last.Start+last.Width, 0.001)
		assert.Equal(t, timelineNow, last.EndDate)

		// The Deferred entry still gets a label.
		require.Len(t, tl.Labels, 3)
		assert.Equal(t, "Deferred", tl.Labels[2].Status)
	})

	t.Run("deferred as only follow-up extends the first segment from zero", func(t *testing.T) {
		tl := BuildTimeline([]model.HistoryEntry{
			entry("Under Negotiation", "2024-06-15"),
			entry("Deferred", "2025-01-15"),
		}, timelineNow)

		require.Len(t, tl.Segments, 1)
		assert.Equal(t, 0.0, tl.Segments[0].Start)
		assert.InDelta(t, 100.0, tl.Segments[0].Width, 0.001)
	})
}
