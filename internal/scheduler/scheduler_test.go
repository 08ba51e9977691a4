package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/i474232898/mood-tracker/internal/weather"
)

type fakeLooker struct {
	down map[string]bool
}

func (f fakeLooker) Lookup(ctx context.Context, city string) (weather.Snapshot, error) {
	if f.down[city] {
		return weather.Snapshot{}, errors.New("provider unavailable")
	}
	return weather.Snapshot{Temp: 10, Description: "clear sky", City: city}, nil
}

func TestProbeOnceReportsPerCity(t *testing.T) {
	s := New([]string{"Oslo", "Lima"}, time.Minute, fakeLooker{down: map[string]bool{"Lima": true}})

	results := s.ProbeOnce(context.Background())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if !results[0].Live || results[0].City != "Oslo" {
		t.Errorf("expected Oslo to be live, got %+v", results[0])
	}
	if results[1].Live || results[1].Err == nil {
		t.Errorf("expected Lima to be degraded, got %+v", results[1])
	}
	if !s.degraded["Lima"] || s.degraded["Oslo"] {
		t.Errorf("unexpected degraded state %v", s.degraded)
	}
}

func TestProbeOnceTracksRecovery(t *testing.T) {
	looker := fakeLooker{down: map[string]bool{"Oslo": true}}
	s := New([]string{"Oslo"}, time.Minute, looker)

	s.ProbeOnce(context.Background())
	if !s.degraded["Oslo"] {
		t.Fatal("expected Oslo to be marked degraded")
	}

	looker.down["Oslo"] = false
	s.ProbeOnce(context.Background())
	if s.degraded["Oslo"] {
		t.Fatal("expected Oslo to be marked recovered")
	}
}

func TestStartDisabledWithoutInterval(t *testing.T) {
	s := New([]string{"Oslo"}, 0, fakeLooker{})
	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Stop()
}
