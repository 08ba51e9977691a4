package client

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/i474232898/mood-tracker/internal/mood"
	"github.com/i474232898/mood-tracker/internal/weather"
)

func TestSelectMoodEnablesSubmit(t *testing.T) {
	s := NewState()
	if s.CanSubmit() {
		t.Fatal("expected submit to be disabled in idle")
	}

	s, err := SelectMood(s, mood.Happy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Phase != PhaseMoodSelected || !s.CanSubmit() {
		t.Fatalf("expected mood selected with submit enabled, got %+v", s)
	}

	s, _ = SelectMood(s, mood.Sad)
	if s.IsSelected(mood.Happy) || !s.IsSelected(mood.Sad) {
		t.Fatal("expected exactly the latest mood to be selected")
	}
}

func TestSelectMoodRejectsEmpty(t *testing.T) {
	if _, err := SelectMood(NewState(), ""); !errors.Is(err, ErrEmptyMood) {
		t.Fatalf("expected ErrEmptyMood, got %v", err)
	}
}

func TestBeginSubmitRequiresSelection(t *testing.T) {
	s := NewState()
	got, _, err := BeginSubmit(s)
	if !errors.Is(err, ErrNoMoodSelected) {
		t.Fatalf("expected ErrNoMoodSelected, got %v", err)
	}
	if got.Phase != PhaseIdle {
		t.Fatalf("expected state unchanged, got %s", got.Phase)
	}
}

func TestBeginSubmitBuildsSubmission(t *testing.T) {
	s := WeatherLoaded(NewState(), weather.Snapshot{Temp: 20, Description: "clear sky", City: "Nice"})
	s, _ = SelectMood(s, mood.Excited)
	s = SetNote(s, "   big news  \n")

	s, sub, err := BeginSubmit(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Phase != PhaseSubmitting || s.CanSubmit() || s.SubmitLabel() != LabelBusy {
		t.Fatalf("expected busy submitting state, got %+v", s)
	}
	if sub.Mood != mood.Excited || sub.Note != "big news" {
		t.Fatalf("unexpected submission %+v", sub)
	}
	if sub.Weather == nil || sub.Weather.City != "Nice" {
		t.Fatalf("expected last known weather, got %+v", sub.Weather)
	}

	if _, _, err := BeginSubmit(s); !errors.Is(err, ErrSubmitInProgress) {
		t.Fatalf("expected duplicate submission to be refused, got %v", err)
	}
	if _, err := SelectMood(s, mood.Sad); !errors.Is(err, ErrSubmitInProgress) {
		t.Fatalf("expected selection to be locked while submitting, got %v", err)
	}
}

func TestSubmitSucceededResetsForm(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	s, _ := SelectMood(NewState(), mood.Happy)
	s = SetNote(s, "sunny walk")
	s, _, _ = BeginSubmit(s)

	s, err := SubmitSucceeded(s, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Phase != PhaseIdle || s.SelectedMood != "" || s.Note != "" || s.CanSubmit() {
		t.Fatalf("expected reset idle state, got %+v", s)
	}
	if s.SubmitLabel() != LabelSubmit {
		t.Fatalf("expected label to be restored, got %q", s.SubmitLabel())
	}
	if s.Notice == nil || s.Notice.Kind != NoticeSuccess || !s.Notice.ExpiresAt.Equal(now.Add(NoticeTTL)) {
		t.Fatalf("unexpected notice %+v", s.Notice)
	}

	if still := ExpireNotices(s, now.Add(NoticeTTL-time.Millisecond)); still.Notice == nil {
		t.Fatal("expected notice to be visible before it expires")
	}
	if gone := ExpireNotices(s, now.Add(NoticeTTL)); gone.Notice != nil {
		t.Fatal("expected notice to be dismissed after the interval")
	}
}

func TestSubmitFailedKeepsInput(t *testing.T) {
	s, _ := SelectMood(NewState(), mood.Stressed)
	s = SetNote(s, "deadline")
	s, _, _ = BeginSubmit(s)

	s, err := SubmitFailed(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Phase != PhaseMoodSelected || s.SelectedMood != mood.Stressed || s.Note != "deadline" {
		t.Fatalf("expected selection and note to survive, got %+v", s)
	}
	if s.Notice == nil || s.Notice.Kind != NoticeError || s.Notice.Message != FailureMessage {
		t.Fatalf("unexpected notice %+v", s.Notice)
	}
	if !s.CanSubmit() {
		t.Fatal("expected retry to be possible")
	}

	if kept := ExpireNotices(s, time.Now().Add(time.Hour)); kept.Notice == nil {
		t.Fatal("expected error notice to stay until dismissed")
	}
	if cleared := DismissNotice(s); cleared.Notice != nil {
		t.Fatal("expected notice to be dismissed")
	}
}

func TestCompletionRequiresSubmitting(t *testing.T) {
	s, _ := SelectMood(NewState(), mood.Happy)
	if _, err := SubmitSucceeded(s, time.Now()); !errors.Is(err, ErrNotSubmitting) {
		t.Fatalf("expected ErrNotSubmitting, got %v", err)
	}
	if _, err := SubmitFailed(s); !errors.Is(err, ErrNotSubmitting) {
		t.Fatalf("expected ErrNotSubmitting, got %v", err)
	}
}

func TestStateIsSerializable(t *testing.T) {
	s := WeatherLoaded(NewState(), weather.Fallback("Quito"))
	s, _ = SelectMood(s, mood.Neutral)
	s = SetNote(s, "ok")

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var back State
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if back.Phase != s.Phase || back.SelectedMood != s.SelectedMood || back.Note != s.Note || *back.Weather != *s.Weather {
		t.Fatalf("state changed across serialization: %+v vs %+v", back, s)
	}
}
