package mood

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/i474232898/mood-tracker/internal/weather"
)

// Mood is a free-form mood label. Clients offer the KnownMoods set; the
// server accepts any non-empty value.
type Mood string

const (
	Happy    Mood = "happy"
	Excited  Mood = "excited"
	Neutral  Mood = "neutral"
	Sad      Mood = "sad"
	Stressed Mood = "stressed"
)

// KnownMoods lists the moods clients offer, in display order.
var KnownMoods = []Mood{Happy, Excited, Neutral, Sad, Stressed}

// IsKnown reports whether m belongs to KnownMoods.
func (m Mood) IsKnown() bool {
	for _, k := range KnownMoods {
		if m == k {
			return true
		}
	}
	return false
}

// Entry is one mood log record. Timestamp is set server-side at creation
// and never changes.
type Entry struct {
	ID        string            `json:"id" validate:"required"`
	Mood      Mood              `json:"mood" validate:"required"`
	Note      string            `json:"note"`
	Weather   *weather.Snapshot `json:"weather"`
	Timestamp time.Time         `json:"timestamp" validate:"required"`
}

var validate = validator.New()

// Validate checks the fields every stored entry must carry.
func (e Entry) Validate() error {
	return validate.Struct(e)
}
