package stats

import (
	"time"

	"github.com/mbogdanovic/fittrack/internal/food"
)

// ComputeStreak counts the consecutive distinct calendar days with at least
// one workout completion, ending today. A day without a completion breaks
// the chain, and without a completion today the streak is 0. Multiple
// completions on the same day count as one. Days are taken in the location
// of now.
func ComputeStreak(completions []time.Time, now time.Time) int {
	if len(completions) == 0 {
		return 0
	}

	days := make(map[time.Time]bool, len(completions))
	for _, c := range completions {
		days[dayOf(c.In(now.Location()))] = true
	}

	streak := 0
	for day := dayOf(now); days[day]; day = day.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

// CountRecent counts the completions within the last windowDays days.
// The window is half-open: a completion exactly windowDays before now is
// excluded, now itself is included. Completions in the future are ignored.
func CountRecent(completions []time.Time, now time.Time, windowDays int) int {
	windowStart := now.Add(-time.Duration(windowDays) * 24 * time.Hour)

	count := 0
	for _, c := range completions {
		if c.After(windowStart) && !c.After(now) {
			count++
		}
	}
	return count
}

type NutritionTotals struct {
	Calories     int     `json:"calories"`
	Protein      float64 `json:"protein"`
	Carbs        float64 `json:"carbs"`
	Fat          float64 `json:"fat"`
	EntriesCount int     `json:"entriesCount"`
}

// AggregateNutrition sums the calories and macros of the given entries.
// Entries with unlogged macros still count their calories, the missing
// macro simply adds nothing.
func AggregateNutrition(entries []food.Entry) NutritionTotals {
	totals := NutritionTotals{
		EntriesCount: len(entries),
	}
	for i := range entries {
		totals.Calories += entries[i].Calories
		if entries[i].Protein != nil {
			totals.Protein += *entries[i].Protein
		}
		if entries[i].Carbs != nil {
			totals.Carbs += *entries[i].Carbs
		}
		if entries[i].Fat != nil {
			totals.Fat += *entries[i].Fat
		}
	}
	return totals
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
