package mood

import "time"

// WeeklySummary counts known moods logged after Since.
type WeeklySummary struct {
	Since  time.Time    `json:"since"`
	Counts map[Mood]int `json:"counts"`
	Total  int          `json:"total"`
}

// Count returns the count for m, zero for unknown moods.
func (w WeeklySummary) Count(m Mood) int {
	return w.Counts[m]
}

// WeeklyStats counts entries per known mood whose timestamp is strictly
// after now minus seven days. Moods outside KnownMoods are not counted.
func WeeklyStats(entries []Entry, now time.Time) WeeklySummary {
	since := now.AddDate(0, 0, -7)

	counts := make(map[Mood]int, len(KnownMoods))
	for _, m := range KnownMoods {
		counts[m] = 0
	}

	total := 0
	for _, e := range entries {
		if !e.Timestamp.After(since) {
			continue
		}
		if _, ok := counts[e.Mood]; !ok {
			continue
		}
		counts[e.Mood]++
		total++
	}

	return WeeklySummary{
		Since:  since,
		Counts: counts,
		Total:  total,
	}
}
