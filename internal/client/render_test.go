package client

import (
	"fmt"
	"testing"
	"time"

	"github.com/i474232898/mood-tracker/internal/mood"
	"github.com/i474232898/mood-tracker/internal/weather"
)

func TestFormatRelative(t *testing.T) {
	now := time.Date(2024, 7, 20, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		age  time.Duration
		want string
	}{
		{"seconds", 30 * time.Second, "Just now"},
		{"future", -time.Minute, "Just now"},
		{"minutes", 5 * time.Minute, "5m ago"},
		{"almost an hour", 59*time.Minute + 59*time.Second, "59m ago"},
		{"hours", 3 * time.Hour, "3h ago"},
		{"days", 2 * 24 * time.Hour, "2d ago"},
		{"six days", 6*24*time.Hour + 23*time.Hour, "6d ago"},
		{"calendar date", 10 * 24 * time.Hour, "7/10/2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRelative(now.Add(-tt.age), now); got != tt.want {
				t.Errorf("FormatRelative(-%v) = %q, want %q", tt.age, got, tt.want)
			}
		})
	}
}

func TestEmojiFor(t *testing.T) {
	if EmojiFor(mood.Happy) != "😊" || EmojiFor(mood.Stressed) != "😰" {
		t.Fatal("unexpected emoji for known moods")
	}
	if EmojiFor("grumpy") != "😐" {
		t.Fatalf("expected neutral face for unknown mood, got %s", EmojiFor("grumpy"))
	}
}

func TestBuildHistoryLimitsAndAnnotates(t *testing.T) {
	now := time.Date(2024, 7, 20, 15, 0, 0, 0, time.UTC)

	var entries []mood.Entry
	for i := 0; i < 12; i++ {
		entries = append(entries, mood.Entry{
			ID:        fmt.Sprintf("e%d", i),
			Mood:      mood.Sad,
			Timestamp: now.Add(-time.Duration(i) * time.Hour),
		})
	}
	entries[0].Mood = "grumpy"
	entries[0].Note = "stuck in traffic"
	entries[0].Weather = &weather.Snapshot{Temp: 22, Description: "partly cloudy", City: "Austin", Icon: "02d"}

	items := BuildHistory(entries, now)
	if len(items) != HistoryLimit {
		t.Fatalf("expected %d items, got %d", HistoryLimit, len(items))
	}

	first := items[0]
	if first.Emoji != "😐" || first.Mood != "grumpy" || first.When != "Just now" {
		t.Errorf("unexpected first item %+v", first)
	}
	if first.Note != "stuck in traffic" {
		t.Errorf("expected note, got %q", first.Note)
	}
	if first.Weather != "22°C, partly cloudy in Austin" {
		t.Errorf("unexpected weather line %q", first.Weather)
	}

	second := items[1]
	if second.Emoji != "😢" || second.When != "1h ago" || second.Note != "" || second.Weather != "" {
		t.Errorf("unexpected second item %+v", second)
	}
	if items[9].ID != "e9" {
		t.Errorf("expected the 10 newest entries, last is %s", items[9].ID)
	}
}
