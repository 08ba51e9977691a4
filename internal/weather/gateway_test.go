package weather

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
	"time"
)

type stubProvider struct {
	name  string
	snap  Snapshot
	err   error
	delay time.Duration
	calls int
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Fetch(ctx context.Context, loc Location) (Snapshot, error) {
	p.calls++
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return Snapshot{}, ctx.Err()
		}
	}
	if p.err != nil {
		return Snapshot{}, p.err
	}
	return p.snap, nil
}

func TestFetchByCityReturnsFallbackWhenProvidersFail(t *testing.T) {
	failing := &stubProvider{name: "down", err: errors.New("connection refused")}
	gw := NewGateway([]Provider{failing}, time.Second)

	got := gw.FetchByCity(context.Background(), "anycity")
	want := Snapshot{Temp: 22, Description: "partly cloudy", City: "anycity", Icon: "02d"}
	if got != want {
		t.Fatalf("expected fallback %+v, got %+v", want, got)
	}
}

func TestFetchByCityWithoutProviders(t *testing.T) {
	gw := NewGateway(nil, time.Second)

	got := gw.FetchByCity(context.Background(), "Oslo")
	if got != Fallback("Oslo") {
		t.Fatalf("expected fallback, got %+v", got)
	}
}

func TestFetchByCityUsesFirstSuccessfulProvider(t *testing.T) {
	first := &stubProvider{name: "first", err: errors.New("boom")}
	second := &stubProvider{name: "second", snap: Snapshot{Temp: 9, Description: "light rain", City: "Bergen", Icon: "10d"}}
	third := &stubProvider{name: "third", snap: Snapshot{Temp: 30, City: "nowhere"}}
	gw := NewGateway([]Provider{first, second, third}, time.Second)

	got := gw.FetchByCity(context.Background(), "bergen")
	if got.City != "Bergen" || got.Temp != 9 || got.Icon != "10d" {
		t.Fatalf("unexpected snapshot %+v", got)
	}
	if third.calls != 0 {
		t.Fatalf("expected third provider not to be called, got %d calls", third.calls)
	}
}

func TestFetchByCityTimesOutToFallback(t *testing.T) {
	slow := &stubProvider{name: "slow", delay: time.Second, snap: Snapshot{Temp: 1, City: "x"}}
	gw := NewGateway([]Provider{slow}, 20*time.Millisecond)

	start := time.Now()
	got := gw.FetchByCity(context.Background(), "Lima")
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Fatalf("lookup was not bounded by the timeout: %v", elapsed)
	}
	if got != Fallback("Lima") {
		t.Fatalf("expected fallback, got %+v", got)
	}
}

func TestLookupJoinsProviderErrors(t *testing.T) {
	a := &stubProvider{name: "a", err: errors.New("first failure")}
	b := &stubProvider{name: "b", err: errors.New("second failure")}
	gw := NewGateway([]Provider{a, b}, time.Second)

	_, err := gw.Lookup(context.Background(), "Rome")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, a.err) || !errors.Is(err, b.err) {
		t.Fatalf("expected both provider errors, got %v", err)
	}
}

func TestRoundTemp(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{21.4, 21},
		{21.5, 22},
		{-2.5, -2},
		{-2.6, -3},
		{0, 0},
	}
	for _, tt := range tests {
		if got := RoundTemp(tt.in); got != tt.want {
			t.Errorf("RoundTemp(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestLookupLogsProviderFailuresAsWarnings(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })

	failing := &stubProvider{name: "down", err: errors.New("connection refused")}
	gw := NewGateway([]Provider{failing}, time.Second)
	gw.FetchByCity(context.Background(), "Lima")

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if !strings.Contains(line, "WARN: ") {
			t.Errorf("log line without level prefix: %q", line)
		}
	}
	if !strings.Contains(buf.String(), "WARN: provider down fetch failed") {
		t.Fatalf("expected provider failure to be logged, got %q", buf.String())
	}
}
