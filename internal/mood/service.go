package mood

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/i474232898/mood-tracker/internal/weather"
)

// ErrMoodRequired is returned by Create when no mood was given.
var ErrMoodRequired = errors.New("mood is required")

// CreateInput carries the client-supplied fields of a new entry.
type CreateInput struct {
	Mood    Mood
	Note    string
	Weather *weather.Snapshot
}

// Service orchestrates entry creation and listing over a Store.
type Service struct {
	store Store
	newID func() string
	now   func() time.Time
}

// NewService creates a new Service.
func NewService(store Store) *Service {
	return &Service{
		store: store,
		newID: NewID,
		now:   time.Now,
	}
}

// List returns the stored entries, newest first.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// Create builds an entry with a fresh id and timestamp and appends it.
func (s *Service) Create(ctx context.Context, in CreateInput) (Entry, error) {
	if in.Mood == "" {
		return Entry{}, ErrMoodRequired
	}

	entry := Entry{
		ID:        s.newID(),
		Mood:      in.Mood,
		Note:      in.Note,
		Weather:   in.Weather,
		Timestamp: s.now().UTC().Truncate(time.Millisecond),
	}

	if err := s.store.Append(ctx, entry); err != nil {
		return Entry{}, fmt.Errorf("append entry: %w", err)
	}

	if !entry.Mood.IsKnown() {
		log.Printf("INFO: stored entry %s with unlisted mood %q", entry.ID, entry.Mood)
	}
	return entry, nil
}

// Stats returns the 7-day mood counts as of now.
func (s *Service) Stats(ctx context.Context) (WeeklySummary, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return WeeklySummary{}, err
	}
	return WeeklyStats(entries, s.now()), nil
}
