package stats_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mbogdanovic/fittrack/internal/food"
	"github.com/mbogdanovic/fittrack/internal/stats"
)

var statsNow = time.Date(2024, 5, 10, 18, 30, 0, 0, time.UTC)

func daysAgo(days int) time.Time {
	return statsNow.AddDate(0, 0, -days)
}

func TestComputeStreak(t *testing.T) {
	t.Run("no completions", func(t *testing.T) {
		assert.Equal(t, 0, stats.ComputeStreak(nil, statsNow))
		assert.Equal(t, 0, stats.ComputeStreak([]time.Time{}, statsNow))
	})

	t.Run("single completion today", func(t *testing.T) {
		assert.Equal(t, 1, stats.ComputeStreak([]time.Time{daysAgo(0)}, statsNow))
	})

	t.Run("three consecutive days ending today", func(t *testing.T) {
		completions := []time.Time{daysAgo(0), daysAgo(1), daysAgo(2)}
		assert.Equal(t, 3, stats.ComputeStreak(completions, statsNow))
	})

	t.Run("no completion today breaks the streak", func(t *testing.T) {
		completions := []time.Time{daysAgo(1), daysAgo(2), daysAgo(3)}
		assert.Equal(t, 0, stats.ComputeStreak(completions, statsNow))
	})

	t.Run("gap in the middle cuts the chain", func(t *testing.T) {
		// today, then nothing yesterday, then two days before
		completions := []time.Time{daysAgo(0), daysAgo(2), daysAgo(3)}
		assert.Equal(t, 1, stats.ComputeStreak(completions, statsNow))
	})

	t.Run("multiple completions on the same day count once", func(t *testing.T) {
		morning := time.Date(2024, 5, 10, 7, 0, 0, 0, time.UTC)
		evening := time.Date(2024, 5, 10, 20, 0, 0, 0, time.UTC)
		completions := []time.Time{morning, evening, daysAgo(1)}
		assert.Equal(t, 2, stats.ComputeStreak(completions, statsNow))
	})

	t.Run("order of completions does not matter", func(t *testing.T) {
		completions := []time.Time{daysAgo(2), daysAgo(0), daysAgo(1)}
		assert.Equal(t, 3, stats.ComputeStreak(completions, statsNow))
	})
}

func TestCountRecent(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, 0, stats.CountRecent(nil, statsNow, 7))
	})

	t.Run("inside the window", func(t *testing.T) {
		completions := []time.Time{
			statsNow,
			statsNow.Add(-time.Hour),
			statsNow.Add(-6 * 24 * time.Hour),
		}
		assert.Equal(t, 3, stats.CountRecent(completions, statsNow, 7))
	})

	t.Run("boundary is strict", func(t *testing.T) {
		exactlySevenDays := statsNow.Add(-7 * 24 * time.Hour)
		justInside := exactlySevenDays.Add(time.Second)
		justOutside := exactlySevenDays.Add(-time.Second)

		assert.Equal(t, 0, stats.CountRecent([]time.Time{exactlySevenDays}, statsNow, 7))
		assert.Equal(t, 1, stats.CountRecent([]time.Time{justInside}, statsNow, 7))
		assert.Equal(t, 0, stats.CountRecent([]time.Time{justOutside}, statsNow, 7))
	})

	t.Run("window size is a parameter", func(t *testing.T) {
		completions := []time.Time{
			statsNow.Add(-2 * 24 * time.Hour),
			statsNow.Add(-10 * 24 * time.Hour),
			statsNow.Add(-29 * 24 * time.Hour),
		}
		assert.Equal(t, 1, stats.CountRecent(completions, statsNow, 3))
		assert.Equal(t, 2, stats.CountRecent(completions, statsNow, 14))
		assert.Equal(t, 3, stats.CountRecent(completions, statsNow, 30))

		exactlyThreeDays := statsNow.Add(-3 * 24 * time.Hour)
		assert.Equal(t, 0, stats.CountRecent([]time.Time{exactlyThreeDays}, statsNow, 3))
	})

	t.Run("future completions ignored", func(t *testing.T) {
		completions := []time.Time{statsNow.Add(time.Hour)}
		assert.Equal(t, 0, stats.CountRecent(completions, statsNow, 7))
	})
}

func TestAggregateNutrition(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		totals := stats.AggregateNutrition(nil)
		assert.Equal(t, 0, totals.Calories)
		assert.Equal(t, 0, totals.EntriesCount)
	})

	t.Run("sums calories and macros", func(t *testing.T) {
		protein1, protein2 := 31.0, 2.6
		carbs := 23.5
		fat := 3.6
		entries := []food.Entry{
			{Name: "chicken breast", Calories: 330, Protein: &protein1, Fat: &fat},
			{Name: "brown rice", Calories: 112, Protein: &protein2, Carbs: &carbs},
		}

		totals := stats.AggregateNutrition(entries)
		assert.Equal(t, 442, totals.Calories)
		assert.InDelta(t, 33.6, totals.Protein, 0.001)
		assert.InDelta(t, 23.5, totals.Carbs, 0.001)
		assert.InDelta(t, 3.6, totals.Fat, 0.001)
		assert.Equal(t, 2, totals.EntriesCount)
	})

	t.Run("nil macros add nothing but calories still count", func(t *testing.T) {
		entries := []food.Entry{
			{Name: "mystery meal", Calories: 800},
		}
		totals := stats.AggregateNutrition(entries)
		assert.Equal(t, 800, totals.Calories)
		assert.Equal(t, 0.0, totals.Protein)
		assert.Equal(t, 0.0, totals.Carbs)
		assert.Equal(t, 0.0, totals.Fat)
		assert.Equal(t, 1, totals.EntriesCount)
	})
}
