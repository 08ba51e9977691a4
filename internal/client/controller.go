package client

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/i474232898/mood-tracker/internal/mood"
	"github.com/i474232898/mood-tracker/internal/weather"
)

// Places used for the weather lookup on load.
const (
	CurrentLocationPlace = "Current Location"
	DefaultPlace         = "San Francisco"
	MockWeatherCity      = "Your Location"
)

// ErrLocationUnavailable is what a Locator returns when no position is known.
var ErrLocationUnavailable = errors.New("location unavailable")

// Coordinates is a geographic position.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Locator provides the user's position; a denial or absence is an error.
type Locator interface {
	Locate(ctx context.Context) (Coordinates, error)
}

// MockWeather is shown when the weather endpoint cannot be reached at all.
func MockWeather() weather.Snapshot {
	return weather.Snapshot{
		Temp:        weather.FallbackTemp,
		Description: weather.FallbackDescription,
		City:        MockWeatherCity,
	}
}

// View is everything a front end needs to draw the screen.
type View struct {
	State        State              `json:"state"`
	History      []HistoryItem      `json:"history"`
	HistoryError string             `json:"history_error,omitempty"`
	EmptyMessage string             `json:"empty_message,omitempty"`
	Stats        mood.WeeklySummary `json:"stats"`
}

// Controller drives State against the Mood API.
type Controller struct {
	api          API
	locator      Locator
	defaultPlace string
	now          func() time.Time

	mu         sync.Mutex
	state      State
	entries    []mood.Entry
	historyErr error
	stats      mood.WeeklySummary
}

// NewController creates a Controller. A nil locator behaves as if
// geolocation is unavailable; an empty defaultPlace uses DefaultPlace.
func NewController(api API, locator Locator, defaultPlace string) *Controller {
	if defaultPlace == "" {
		defaultPlace = DefaultPlace
	}
	c := &Controller{
		api:          api,
		locator:      locator,
		defaultPlace: defaultPlace,
		now:          time.Now,
		state:        NewState(),
	}
	c.stats = mood.WeeklyStats(nil, c.now())
	return c
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Load fetches the weather and the history, like the initial page load.
func (c *Controller) Load(ctx context.Context) {
	c.LoadWeather(ctx)
	c.Refresh(ctx)
}

// LoadWeather resolves the place to look up and stores the snapshot. It
// never fails: a network error yields MockWeather.
func (c *Controller) LoadWeather(ctx context.Context) weather.Snapshot {
	place := c.placeToLookUp(ctx)

	snap, err := c.api.Weather(ctx, place)
	if err != nil {
		log.Printf("WARN: weather API error: %v", err)
		snap = MockWeather()
	}

	c.mu.Lock()
	c.state = WeatherLoaded(c.state, snap)
	c.mu.Unlock()
	return snap
}

func (c *Controller) placeToLookUp(ctx context.Context) string {
	if c.locator == nil {
		return c.defaultPlace
	}
	if _, err := c.locator.Locate(ctx); err != nil {
		log.Printf("INFO: geolocation unavailable, using %q: %v", c.defaultPlace, err)
		return c.defaultPlace
	}
	return CurrentLocationPlace
}

// Refresh reloads the history and the 7-day stats. A failure is kept for
// the view; stats keep their previous values.
func (c *Controller) Refresh(ctx context.Context) {
	entries, err := c.api.ListEntries(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		log.Printf("ERROR: history loading error: %v", err)
		c.historyErr = err
		return
	}
	c.historyErr = nil
	c.entries = entries
	c.stats = mood.WeeklyStats(entries, c.now())
}

// Select picks a mood.
func (c *Controller) Select(m mood.Mood) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := SelectMood(c.state, m)
	if err != nil {
		return err
	}
	c.state = s
	return nil
}

// SetNote updates the draft note.
func (c *Controller) SetNote(note string) {
	c.mu.Lock()
	c.state = SetNote(c.state, note)
	c.mu.Unlock()
}

// Submit sends the current selection. On success the form resets and the
// history is refreshed; on failure the input is kept for a retry and the
// API error is returned.
func (c *Controller) Submit(ctx context.Context) (mood.Entry, error) {
	c.mu.Lock()
	s, sub, err := BeginSubmit(c.state)
	if err != nil {
		c.mu.Unlock()
		return mood.Entry{}, err
	}
	c.state = s
	c.mu.Unlock()

	entry, err := c.api.CreateEntry(ctx, sub)

	c.mu.Lock()
	if err != nil {
		log.Printf("ERROR: submit error: %v", err)
		c.state, _ = SubmitFailed(c.state)
		c.mu.Unlock()
		return mood.Entry{}, err
	}
	c.state, _ = SubmitSucceeded(c.state, c.now())
	c.mu.Unlock()

	c.Refresh(ctx)
	return entry, nil
}

// View renders the current state, expiring notices as of now.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.state = ExpireNotices(c.state, now)

	v := View{
		State: c.state,
		Stats: c.stats,
	}
	switch {
	case c.historyErr != nil:
		v.HistoryError = HistoryErrorMessage
	case len(c.entries) == 0:
		v.EmptyMessage = EmptyHistoryMessage
	default:
		v.History = BuildHistory(c.entries, now)
	}
	return v
}
