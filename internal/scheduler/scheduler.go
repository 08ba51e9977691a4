package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/mood-tracker/internal/weather"
)

// Looker is the part of weather.Gateway the probe needs.
type Looker interface {
	Lookup(ctx context.Context, city string) (weather.Snapshot, error)
}

// ProbeResult is the outcome of one probe for one city.
type ProbeResult struct {
	City     string
	Live     bool
	Snapshot weather.Snapshot
	Err      error
}

// Scheduler periodically probes the weather providers for the configured
// cities and logs when they degrade. Results are only logged.
type Scheduler struct {
	scheduler *gocron.Scheduler
	gateway   Looker
	cities    []string
	interval  time.Duration
	timeout   time.Duration

	mu       sync.Mutex
	degraded map[string]bool
}

// New creates a new Scheduler.
func New(cities []string, interval time.Duration, gateway Looker) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		gateway:   gateway,
		cities:    cities,
		interval:  interval,
		timeout:   30 * time.Second,
		degraded:  make(map[string]bool),
	}
}

// Start schedules the probe job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.cities) == 0 || s.interval <= 0 {
		log.Println("INFO: scheduler: weather probe disabled; nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		s.ProbeOnce(ctx)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// ProbeOnce looks up every city concurrently and logs state changes.
func (s *Scheduler) ProbeOnce(ctx context.Context) []ProbeResult {
	results := make([]ProbeResult, len(s.cities))

	var wg sync.WaitGroup
	for i, city := range s.cities {
		wg.Add(1)
		go func(i int, city string) {
			defer wg.Done()
			snap, err := s.gateway.Lookup(ctx, city)
			results[i] = ProbeResult{City: city, Live: err == nil, Snapshot: snap, Err: err}
		}(i, city)
	}
	wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range results {
		wasDegraded := s.degraded[r.City]
		switch {
		case !r.Live:
			log.Printf("WARN: scheduler: weather providers degraded for %q, clients get fallback data: %v", r.City, r.Err)
		case wasDegraded:
			log.Printf("INFO: scheduler: weather providers recovered for %q (%d°C, %s)", r.City, r.Snapshot.Temp, r.Snapshot.Description)
		}
		s.degraded[r.City] = !r.Live
	}
	return results
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
