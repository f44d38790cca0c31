package classify

import (
	"github.com/hakim/subsift/internal/domainutil"
	"github.com/hakim/subsift/internal/models"
)

// The filter pipeline is an ordered, short-circuiting sequence of skip
// predicates. Order is cost-ascending: the in-memory checks run before any
// inspection lookup, and both run before any network probe. The first
// predicate that fires suppresses the candidate for the rest of the run.

// preFilter runs the checks that need only the reference tables and the
// candidate name itself.
func (e *Engine) preFilter(subdomain string) models.SkipReason {
	if e.tables.IsExcluded(subdomain) {
		return models.SkipExcluded
	}
	if domainutil.IsSecondLevel(subdomain) {
		return models.SkipSecondLevel
	}
	return models.SkipNone
}

// inspectionFilter runs the checks over the inspection record.
func inspectionFilter(rec *models.InspectionRecord) models.SkipReason {
	if rec == nil {
		return models.SkipUninspected
	}
	if !rec.Up {
		return models.SkipDown
	}
	return models.SkipNone
}

// wildcardNoiseFilter fires when a subdomain matched a wildcard DNS record
// and its resolved endpoint returned a non-2xx status: the signal-to-noise
// is too low to report. 2xx responses behind a wildcard are kept for manual
// review.
func wildcardNoiseFilter(matchedWildcard bool, statusCode int) models.SkipReason {
	if matchedWildcard && (statusCode < 200 || statusCode > 299) {
		return models.SkipWildcardNoise
	}
	return models.SkipNone
}
