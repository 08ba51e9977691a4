package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

// DefaultLookupTimeout bounds a single FetchByCity call when none is configured.
const DefaultLookupTimeout = 5 * time.Second

var errNoProviders = errors.New("no weather providers configured")

// Gateway resolves current weather for a place name, trying providers in
// priority order. FetchByCity never fails: any provider problem turns into
// the fallback snapshot.
type Gateway struct {
	providers []Provider
	timeout   time.Duration
}

// NewGateway creates a Gateway. A timeout <= 0 uses DefaultLookupTimeout.
func NewGateway(providers []Provider, timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = DefaultLookupTimeout
	}
	return &Gateway{
		providers: providers,
		timeout:   timeout,
	}
}

// Providers returns the names of the configured providers in priority order.
func (g *Gateway) Providers() []string {
	names := make([]string, 0, len(g.providers))
	for _, p := range g.providers {
		names = append(names, p.Name())
	}
	return names
}

// FetchByCity returns live conditions for city, or Fallback(city) when
// every provider failed or the lookup timed out.
func (g *Gateway) FetchByCity(ctx context.Context, city string) Snapshot {
	snap, err := g.Lookup(ctx, city)
	if err != nil {
		log.Printf("WARN: weather lookup for %q failed, serving fallback: %v", city, err)
		return Fallback(city)
	}
	return snap
}

// Lookup is FetchByCity without the fallback. It returns the joined
// provider errors when nobody could answer.
func (g *Gateway) Lookup(ctx context.Context, city string) (Snapshot, error) {
	if len(g.providers) == 0 {
		return Snapshot{}, errNoProviders
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	loc := Location{City: strings.TrimSpace(city)}

	var errs []error
	for _, p := range g.providers {
		snap, err := p.Fetch(ctx, loc)
		if err == nil {
			if snap.City == "" {
				snap.City = city
			}
			return snap, nil
		}

		log.Printf("WARN: provider %s fetch failed for %q: %v", p.Name(), city, err)
		errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))

		if ctx.Err() != nil {
			break
		}
	}

	return Snapshot{}, errors.Join(errs...)
}
