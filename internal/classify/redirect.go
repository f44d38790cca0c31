package classify

import (
	"net/url"

	"github.com/hakim/subsift/internal/domainutil"
)

// ClassifyRedirect determines where an endpoint's redirect points relative
// to the original subdomain. external means the target's base domain
// differs; sibling means the target is a different subdomain under the same
// base domain. "www.X" and "X" are treated as the same target, so a
// redirect from a.agency.gov to www.a.agency.gov counts as neither.
//
// The two flags are mutually exclusive by construction but computed
// independently so a caller can distinguish "no redirect" from "redirects
// to itself".
func ClassifyRedirect(redirectTo, subdomain, baseDomain string) (external, sibling bool) {
	if redirectTo == "" {
		return false, false
	}

	parsed, err := url.Parse(redirectTo)
	if err != nil || parsed.Hostname() == "" {
		return false, false
	}

	target := domainutil.StripWWW(parsed.Hostname())
	targetBase := domainutil.BaseDomain(target)

	external = targetBase != baseDomain
	// The base domain itself is not a sibling: a redirect up to
	// agency.gov (or www.agency.gov) points at the parent site, not at
	// another subdomain.
	sibling = targetBase == baseDomain &&
		target != baseDomain &&
		target != domainutil.StripWWW(subdomain)
	return external, sibling
}
