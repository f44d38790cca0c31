package models

// ProbeEntry is the cached result of one wildcard/content probe cycle for a
// subdomain. Entries are written wholesale on a cache miss and never
// partially updated; nil slices and a nil Content mean the corresponding
// network operation produced no answer.
type ProbeEntry struct {
	Content     *string  `json:"content"`
	WildcardDNS []string `json:"wildcard_dns"`
	SelfDNS     []string `json:"self_dns"`
	// MatchedWildcard is true when the wildcard and self DNS answer sets
	// are both present and equal after sorting.
	MatchedWildcard bool `json:"matched_wildcard"`
}

// SiteRecord is one output row for a candidate subdomain that survived the
// filter pipeline. Created once, never mutated.
type SiteRecord struct {
	Subdomain string `json:"subdomain"`
	// OwnerMetadata is the parent domain's metadata field from the
	// reference table; empty when the base domain is unknown to it.
	OwnerMetadata string `json:"owner_metadata,omitempty"`
	// RedirectsExternal is true when the endpoint redirects to a
	// different base domain.
	RedirectsExternal bool `json:"redirects_external"`
	// RedirectsToSibling is true when the endpoint redirects to a
	// different subdomain under the same base domain.
	RedirectsToSibling bool `json:"redirects_to_subdomain"`
	StatusCode         int  `json:"status_code"`
	MatchedWildcard    bool `json:"matched_wildcard"`
	// ContentSHA256 is the hex digest of the fetched content; empty when
	// no content could be fetched.
	ContentSHA256 string `json:"content_sha256,omitempty"`
}

// A11yIssue is a single accessibility finding reported by the external
// auditing tool for a scanned domain.
type A11yIssue struct {
	Type     string `json:"type"`
	TypeCode int    `json:"typeCode"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Context  string `json:"context"`
	Selector string `json:"selector"`
}
