package models

// RunStatus represents the current state of a classification run
type RunStatus string

const (
	StatusPending  RunStatus = "pending"
	StatusRunning  RunStatus = "running"
	StatusComplete RunStatus = "complete"
	StatusFailed   RunStatus = "failed"
)

// Protocol is the scheme an endpoint was inspected over
type Protocol string

const (
	ProtocolHTTP  Protocol = "http"
	ProtocolHTTPS Protocol = "https"
)

// HostPrefix distinguishes the bare hostname from its www form
type HostPrefix string

const (
	PrefixRoot HostPrefix = "root"
	PrefixWWW  HostPrefix = "www"
)

// SkipReason explains why a candidate produced no output row.
// Skips are expected outcomes, not errors.
type SkipReason string

const (
	// SkipNone means the candidate survived every filter.
	SkipNone SkipReason = ""
	// SkipExcluded means the subdomain is on the manual exclusion list.
	SkipExcluded SkipReason = "excluded"
	// SkipSecondLevel means the name is a base domain (or its www form),
	// not a true subdomain.
	SkipSecondLevel SkipReason = "second-level"
	// SkipUninspected means no inspection record exists for the subdomain.
	SkipUninspected SkipReason = "uninspected"
	// SkipDown means the inspector marked the subdomain as not up.
	SkipDown SkipReason = "down"
	// SkipUnreachable means every endpoint combination had status 0.
	SkipUnreachable SkipReason = "unreachable"
	// SkipWildcardNoise means the subdomain matched a wildcard DNS record
	// and its endpoint returned a non-2xx status.
	SkipWildcardNoise SkipReason = "wildcard-noise"
)

// SkipReasons lists every skip reason in filter order, for reporting.
var SkipReasons = []SkipReason{
	SkipExcluded,
	SkipSecondLevel,
	SkipUninspected,
	SkipDown,
	SkipUnreachable,
	SkipWildcardNoise,
}
