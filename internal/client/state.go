package client

import (
	"errors"
	"strings"
	"time"

	"github.com/i474232898/mood-tracker/internal/mood"
	"github.com/i474232898/mood-tracker/internal/weather"
)

// Phase is the submission lifecycle of the mood form.
type Phase string

const (
	PhaseIdle         Phase = "idle"
	PhaseMoodSelected Phase = "mood_selected"
	PhaseSubmitting   Phase = "submitting"
)

// NoticeKind distinguishes success from error notices.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice texts and timings.
const (
	NoticeTTL      = 3 * time.Second
	SuccessMessage = "Mood logged successfully! 🎉"
	FailureMessage = "Failed to save mood. Please try again."

	LabelSubmit = "Log Mood"
	LabelBusy   = "Saving..."
)

var (
	ErrNoMoodSelected   = errors.New("no mood selected")
	ErrSubmitInProgress = errors.New("submission already in progress")
	ErrNotSubmitting    = errors.New("no submission in progress")
	ErrEmptyMood        = errors.New("mood must not be empty")
)

// Notice is a user-facing message. A zero ExpiresAt never expires.
type Notice struct {
	Kind      NoticeKind `json:"kind"`
	Message   string     `json:"message"`
	ExpiresAt time.Time  `json:"expires_at,omitempty"`
}

// State is the whole client-side form state. It is a plain value: every
// transition takes a State and returns a new one.
type State struct {
	Phase        Phase             `json:"phase"`
	SelectedMood mood.Mood         `json:"selected_mood,omitempty"`
	Note         string            `json:"note"`
	Weather      *weather.Snapshot `json:"weather,omitempty"`
	Notice       *Notice           `json:"notice,omitempty"`
}

// Submission is what gets sent to the Mood API.
type Submission struct {
	Mood    mood.Mood         `json:"mood"`
	Note    string            `json:"note"`
	Weather *weather.Snapshot `json:"weather"`
}

// NewState returns the initial Idle state.
func NewState() State {
	return State{Phase: PhaseIdle}
}

// CanSubmit reports whether the submit control is enabled.
func (s State) CanSubmit() bool {
	return s.Phase == PhaseMoodSelected
}

// SubmitLabel returns the submit button text for the current phase.
func (s State) SubmitLabel() string {
	if s.Phase == PhaseSubmitting {
		return LabelBusy
	}
	return LabelSubmit
}

// IsSelected reports whether m is the selected mood.
func (s State) IsSelected(m mood.Mood) bool {
	return s.SelectedMood != "" && s.SelectedMood == m
}

// SelectMood records m as the only selected mood.
func SelectMood(s State, m mood.Mood) (State, error) {
	if s.Phase == PhaseSubmitting {
		return s, ErrSubmitInProgress
	}
	if m == "" {
		return s, ErrEmptyMood
	}
	s.SelectedMood = m
	s.Phase = PhaseMoodSelected
	return s, nil
}

// SetNote replaces the draft note.
func SetNote(s State, note string) State {
	s.Note = note
	return s
}

// WeatherLoaded records the last known weather snapshot.
func WeatherLoaded(s State, snap weather.Snapshot) State {
	s.Weather = &snap
	return s
}

// BeginSubmit moves MoodSelected to Submitting and returns the payload to send.
func BeginSubmit(s State) (State, Submission, error) {
	switch s.Phase {
	case PhaseSubmitting:
		return s, Submission{}, ErrSubmitInProgress
	case PhaseMoodSelected:
	default:
		return s, Submission{}, ErrNoMoodSelected
	}

	sub := Submission{
		Mood:    s.SelectedMood,
		Note:    strings.TrimSpace(s.Note),
		Weather: s.Weather,
	}
	s.Phase = PhaseSubmitting
	return s, sub, nil
}

// SubmitSucceeded resets the form to Idle and shows a success notice that
// expires after NoticeTTL.
func SubmitSucceeded(s State, now time.Time) (State, error) {
	if s.Phase != PhaseSubmitting {
		return s, ErrNotSubmitting
	}
	s.Phase = PhaseIdle
	s.SelectedMood = ""
	s.Note = ""
	s.Notice = &Notice{
		Kind:      NoticeSuccess,
		Message:   SuccessMessage,
		ExpiresAt: now.Add(NoticeTTL),
	}
	return s, nil
}

// SubmitFailed returns to MoodSelected with the selection and note intact
// and shows an error notice.
func SubmitFailed(s State) (State, error) {
	if s.Phase != PhaseSubmitting {
		return s, ErrNotSubmitting
	}
	s.Phase = PhaseMoodSelected
	s.Notice = &Notice{
		Kind:    NoticeError,
		Message: FailureMessage,
	}
	return s, nil
}

// ExpireNotices drops a notice whose expiry has passed.
func ExpireNotices(s State, now time.Time) State {
	if s.Notice != nil && !s.Notice.ExpiresAt.IsZero() && !now.Before(s.Notice.ExpiresAt) {
		s.Notice = nil
	}
	return s
}

// DismissNotice clears any notice.
func DismissNotice(s State) State {
	s.Notice = nil
	return s
}
