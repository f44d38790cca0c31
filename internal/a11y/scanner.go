// Package a11y wraps the external pa11y accessibility auditor in the same
// cache-then-scan pattern the classification engine uses for its network
// probe: one scan per domain, cached durably, replayed on later runs.
package a11y

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hakim/subsift/internal/models"
	"github.com/hakim/subsift/internal/storage"
	"github.com/hakim/subsift/internal/tools"
)

// DefaultStandard is the WCAG conformance level pa11y audits against.
const DefaultStandard = "WCAG2AA"

// InspectionSource resolves the domain's inspection record so scans can
// follow the inspector's one-hop redirect target.
type InspectionSource interface {
	Lookup(domain string) (*models.InspectionRecord, error)
}

// Cache is the persistence contract the scanner needs from storage.
type Cache interface {
	GetA11y(domain string) (*storage.A11yEntry, error)
	PutA11y(domain string, entry *storage.A11yEntry) error
}

// Runner executes the external tool. Indirection for tests.
type Runner func(ctx context.Context, binary string, args ...string) (*tools.ToolResult, error)

// Scanner runs cached accessibility scans.
type Scanner struct {
	cache       Cache
	inspections InspectionSource
	pa11yPath   string
	standard    string
	force       bool
	run         Runner
	logger      *slog.Logger
}

// New builds a Scanner. Empty pa11yPath resolves "pa11y" from PATH; empty
// standard selects DefaultStandard.
func New(cache Cache, inspections InspectionSource, pa11yPath, standard string, force bool, logger *slog.Logger) *Scanner {
	if pa11yPath == "" {
		pa11yPath = "pa11y"
	}
	if standard == "" {
		standard = DefaultStandard
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{
		cache:       cache,
		inspections: inspections,
		pa11yPath:   pa11yPath,
		standard:    standard,
		force:       force,
		run:         tools.RunTool,
		logger:      logger,
	}
}

// Scan audits a domain and returns its error-type issues. The domain
// actually scanned follows the inspection record's redirect target when one
// exists; it is returned alongside the issues. Cached results are replayed
// unless the scanner was built with force.
func (s *Scanner) Scan(ctx context.Context, domain string) (string, []models.A11yIssue, error) {
	target := domain
	if s.inspections != nil {
		rec, err := s.inspections.Lookup(domain)
		if err != nil {
			return "", nil, err
		}
		if rec != nil && rec.Redirect && rec.RedirectTo != "" {
			target = rec.RedirectTo
		}
	}

	if !s.force {
		entry, err := s.cache.GetA11y(target)
		if err != nil {
			return "", nil, fmt.Errorf("reading a11y cache for %s: %w", target, err)
		}
		if entry != nil {
			s.logger.Debug("a11y cached", "domain", target, "outcome", entry.Outcome)
			if entry.Outcome == storage.A11yUnavailable {
				return target, nil, nil
			}
			return target, errorIssues(entry.Issues), nil
		}
	}

	issues, ok := s.scanTarget(ctx, target)
	entry := &storage.A11yEntry{Outcome: storage.A11yFresh, Issues: issues}
	if !ok {
		entry = &storage.A11yEntry{Outcome: storage.A11yUnavailable}
	}
	if err := s.cache.PutA11y(target, entry); err != nil {
		return "", nil, fmt.Errorf("writing a11y cache for %s: %w", target, err)
	}

	return target, errorIssues(issues), nil
}

// scanTarget invokes pa11y and parses its JSON report. ok is false when the
// tool produced no parseable output; that outcome is cached as unavailable
// so the domain is not retried until a forced refresh.
func (s *Scanner) scanTarget(ctx context.Context, target string) ([]models.A11yIssue, bool) {
	args := []string{target, "--reporter", "json", "--standard", s.standard, "--level", "none"}
	s.logger.Debug("running pa11y", "target", target, "standard", s.standard)

	result, err := s.run(ctx, s.pa11yPath, args...)
	if err != nil || len(result.Stdout) == 0 {
		s.logger.Debug("pa11y produced no output", "target", target, "err", err)
		return nil, false
	}

	var issues []models.A11yIssue
	if err := json.Unmarshal(result.Stdout, &issues); err != nil {
		s.logger.Debug("pa11y output unparseable", "target", target, "err", err)
		return nil, false
	}

	return issues, true
}

// errorIssues keeps only error-type findings, dropping warnings and notices.
func errorIssues(issues []models.A11yIssue) []models.A11yIssue {
	var errors []models.A11yIssue
	for _, issue := range issues {
		if issue.Type == "error" {
			errors = append(errors, issue)
		}
	}
	return errors
}
