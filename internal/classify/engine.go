// Package classify decides whether a candidate subdomain is a genuine,
// independently-reachable public website and annotates it with redirect
// behavior, liveness, and DNS wildcard evidence.
package classify

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"

	"github.com/hakim/subsift/internal/domainutil"
	"github.com/hakim/subsift/internal/models"
	"github.com/hakim/subsift/internal/refdata"
)

// InspectionSource looks up the upstream inspector's record for a domain.
// A nil record (with nil error) means the domain was never inspected.
type InspectionSource interface {
	Lookup(domain string) (*models.InspectionRecord, error)
}

// WildcardProber runs (or replays) the cached wildcard/content probe.
type WildcardProber interface {
	Probe(ctx context.Context, subdomain, endpointURL string) (*models.ProbeEntry, error)
}

// Engine classifies one candidate subdomain at a time. All collaborators
// are supplied at construction and treated as immutable; the engine itself
// holds no mutable state, so one Engine can serve concurrent workers.
type Engine struct {
	tables      *refdata.Tables
	inspections InspectionSource
	prober      WildcardProber
	logger      *slog.Logger
}

// New builds an Engine from its collaborators.
func New(tables *refdata.Tables, inspections InspectionSource, prober WildcardProber, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		tables:      tables,
		inspections: inspections,
		prober:      prober,
		logger:      logger,
	}
}

// Classify runs a candidate subdomain through the filter pipeline and, when
// it survives, produces its annotated output record. A non-empty SkipReason
// with a nil record means the candidate was suppressed; that is an expected
// outcome, not an error. Errors are reserved for cache and inspection store
// I/O failures.
func (e *Engine) Classify(ctx context.Context, subdomain string) (*models.SiteRecord, models.SkipReason, error) {
	log := e.logger.With("subdomain", subdomain)

	if reason := e.preFilter(subdomain); reason != models.SkipNone {
		log.Debug("skipping", "reason", reason)
		return nil, reason, nil
	}

	rec, err := e.inspections.Lookup(subdomain)
	if err != nil {
		return nil, models.SkipNone, err
	}
	if reason := inspectionFilter(rec); reason != models.SkipNone {
		log.Debug("skipping", "reason", reason)
		return nil, reason, nil
	}

	resolution, ok := ResolveEndpoint(rec)
	if !ok {
		log.Debug("skipping", "reason", models.SkipUnreachable)
		return nil, models.SkipUnreachable, nil
	}

	base := domainutil.BaseDomain(subdomain)
	external, sibling := ClassifyRedirect(resolution.Endpoint.RedirectTo, subdomain, base)

	// The probe fetches content at the same endpoint the resolver chose,
	// so the wildcard-noise filter below reasons about one endpoint, not
	// two.
	entry, err := e.prober.Probe(ctx, subdomain, resolution.URL(subdomain))
	if err != nil {
		return nil, models.SkipNone, err
	}

	status := resolution.Endpoint.StatusCode
	if reason := wildcardNoiseFilter(entry.MatchedWildcard, status); reason != models.SkipNone {
		log.Debug("skipping", "reason", reason, "status", status)
		return nil, reason, nil
	}

	owner, _ := e.tables.OwnerMetadata(base)

	return &models.SiteRecord{
		Subdomain:          subdomain,
		OwnerMetadata:      owner,
		RedirectsExternal:  external,
		RedirectsToSibling: sibling,
		StatusCode:         status,
		MatchedWildcard:    entry.MatchedWildcard,
		ContentSHA256:      contentHash(entry.Content),
	}, models.SkipNone, nil
}

// contentHash computes the SHA-256 hex digest of cached content at read
// time. Nil content degrades to an empty hash, never an error.
func contentHash(content *string) string {
	if content == nil {
		return ""
	}
	sum := sha256.Sum256([]byte(*content))
	return hex.EncodeToString(sum[:])
}
