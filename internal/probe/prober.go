// Package probe implements the cached wildcard/content probe: one HTTP
// fetch plus wildcard and self DNS lookups per subdomain, persisted so that
// repeat classification runs replay the cached result with zero network
// activity.
package probe

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/hakim/subsift/internal/domainutil"
	"github.com/hakim/subsift/internal/models"
)

// Fetcher retrieves page content for an endpoint URL.
// A failed fetch reports ok=false rather than an error.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (content string, ok bool)
}

// Resolver answers DNS lookups for a name, wildcard forms included.
// An empty answer set is a valid result.
type Resolver interface {
	Resolve(ctx context.Context, name string) ([]string, error)
}

// Cache is the persistence contract the prober needs from storage.
type Cache interface {
	GetProbe(subdomain string) (*models.ProbeEntry, error)
	PutProbe(subdomain string, entry *models.ProbeEntry) error
}

// Prober performs (or replays) the network probe cycle for a subdomain.
type Prober struct {
	cache    Cache
	fetcher  Fetcher
	resolver Resolver
	force    bool
	logger   *slog.Logger
}

// New builds a Prober. force bypasses cache reads (writes still happen).
func New(cache Cache, fetcher Fetcher, resolver Resolver, force bool, logger *slog.Logger) *Prober {
	if logger == nil {
		logger = slog.Default()
	}
	return &Prober{
		cache:    cache,
		fetcher:  fetcher,
		resolver: resolver,
		force:    force,
		logger:   logger,
	}
}

// Probe returns the probe entry for a subdomain, reusing the cached entry
// when one exists and a forced refresh was not requested. On a miss it
// performs exactly one fetch cycle and persists the result, overwriting any
// stale entry.
//
// Network failures degrade to a null/empty result inside the entry; only
// cache I/O can produce an error.
func (p *Prober) Probe(ctx context.Context, subdomain, endpointURL string) (*models.ProbeEntry, error) {
	if !p.force {
		cached, err := p.cache.GetProbe(subdomain)
		if err != nil {
			return nil, fmt.Errorf("reading probe cache for %s: %w", subdomain, err)
		}
		if cached != nil {
			p.logger.Debug("dns and content cached", "subdomain", subdomain)
			return cached, nil
		}
	}

	entry := p.fetchCycle(ctx, subdomain, endpointURL)

	if err := p.cache.PutProbe(subdomain, entry); err != nil {
		return nil, fmt.Errorf("writing probe cache for %s: %w", subdomain, err)
	}
	return entry, nil
}

// fetchCycle performs the network half of a probe: content fetch, wildcard
// DNS lookup, and (only when the wildcard answered) a self DNS lookup.
func (p *Prober) fetchCycle(ctx context.Context, subdomain, endpointURL string) *models.ProbeEntry {
	entry := &models.ProbeEntry{}

	p.logger.Debug("fetching content", "url", endpointURL)
	if content, ok := p.fetcher.Fetch(ctx, endpointURL); ok {
		entry.Content = &content
	}

	wildcard := domainutil.Wildcard(subdomain)
	p.logger.Debug("resolving wildcard", "name", wildcard)
	wildAnswers, err := p.resolver.Resolve(ctx, wildcard)
	if err != nil {
		p.logger.Debug("wildcard lookup failed", "name", wildcard, "err", err)
		wildAnswers = nil
	}

	// A non-existent wildcard can never match, so the subdomain's own DNS
	// is only queried when the wildcard form answered.
	var selfAnswers []string
	if len(wildAnswers) > 0 {
		p.logger.Debug("resolving subdomain", "name", subdomain)
		selfAnswers, err = p.resolver.Resolve(ctx, subdomain)
		if err != nil {
			p.logger.Debug("self lookup failed", "name", subdomain, "err", err)
			selfAnswers = nil
		}
	}

	slices.Sort(wildAnswers)
	slices.Sort(selfAnswers)
	entry.WildcardDNS = wildAnswers
	entry.SelfDNS = selfAnswers
	entry.MatchedWildcard = len(wildAnswers) > 0 && len(selfAnswers) > 0 &&
		slices.Equal(wildAnswers, selfAnswers)

	return entry
}
