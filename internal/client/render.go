package client

import (
	"fmt"
	"time"

	"github.com/i474232898/mood-tracker/internal/mood"
)

// HistoryLimit is the number of entries shown in the history list.
const HistoryLimit = 10

const (
	EmptyHistoryMessage  = "No moods logged yet. Start by logging your first mood!"
	HistoryErrorMessage  = "Unable to load mood history"
	defaultEmoji         = "😐"
	calendarDateLayout   = "1/2/2006"
	weatherLineFormatter = "%d°C, %s in %s"
)

var moodEmojis = map[mood.Mood]string{
	mood.Happy:    "😊",
	mood.Excited:  "🤩",
	mood.Neutral:  "😐",
	mood.Sad:      "😢",
	mood.Stressed: "😰",
}

// EmojiFor returns the emoji for m, or a neutral face for unknown moods.
func EmojiFor(m mood.Mood) string {
	if e, ok := moodEmojis[m]; ok {
		return e
	}
	return defaultEmoji
}

// FormatRelative renders the age of ts as seen at now.
func FormatRelative(ts, now time.Time) string {
	diff := now.Sub(ts)

	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff/time.Minute))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff/time.Hour))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff/(24*time.Hour)))
	default:
		return ts.In(now.Location()).Format(calendarDateLayout)
	}
}

// HistoryItem is one rendered history row.
type HistoryItem struct {
	ID      string    `json:"id"`
	Emoji   string    `json:"emoji"`
	Mood    mood.Mood `json:"mood"`
	When    string    `json:"when"`
	Note    string    `json:"note,omitempty"`
	Weather string    `json:"weather,omitempty"`
}

// BuildHistory renders at most HistoryLimit entries, in the order given.
func BuildHistory(entries []mood.Entry, now time.Time) []HistoryItem {
	n := len(entries)
	if n > HistoryLimit {
		n = HistoryLimit
	}

	items := make([]HistoryItem, 0, n)
	for _, e := range entries[:n] {
		item := HistoryItem{
			ID:    e.ID,
			Emoji: EmojiFor(e.Mood),
			Mood:  e.Mood,
			When:  FormatRelative(e.Timestamp, now),
			Note:  e.Note,
		}
		if e.Weather != nil {
			item.Weather = fmt.Sprintf(weatherLineFormatter, e.Weather.Temp, e.Weather.Description, e.Weather.City)
		}
		items = append(items, item)
	}
	return items
}
