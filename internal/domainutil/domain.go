// Package domainutil provides hostname helpers shared by the classification
// engine: base-domain derivation, wildcard forms, and www normalization.
package domainutil

import (
	"strings"

	"golang.org/x/net/publicsuffix"
)

// BaseDomain returns the registrable second-level portion of a hostname,
// e.g. "agency.gov" for "apps.agency.gov". It consults the public suffix
// list; for names the list cannot place (single labels, names that are
// themselves suffixes) it falls back to the last two labels.
func BaseDomain(host string) string {
	host = normalize(host)
	if host == "" {
		return ""
	}

	base, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err == nil {
		return base
	}

	labels := strings.Split(host, ".")
	if len(labels) <= 2 {
		return host
	}
	return strings.Join(labels[len(labels)-2:], ".")
}

// StripWWW removes a single leading "www." label. "www.agency.gov" and
// "agency.gov" refer to the same site for comparison purposes.
func StripWWW(host string) string {
	return strings.TrimPrefix(normalize(host), "www.")
}

// Wildcard replaces the leftmost label of a subdomain with "*",
// e.g. "abc.mountains.gov" becomes "*.mountains.gov".
func Wildcard(subdomain string) string {
	subdomain = normalize(subdomain)
	labels := strings.Split(subdomain, ".")
	if len(labels) < 2 {
		return "*." + subdomain
	}
	return "*." + strings.Join(labels[1:], ".")
}

// IsSecondLevel reports whether a name is really its own base domain (or
// the www form of it) rather than a true subdomain.
func IsSecondLevel(host string) bool {
	stripped := StripWWW(host)
	return stripped == BaseDomain(stripped)
}

func normalize(host string) string {
	return strings.ToLower(strings.TrimSuffix(strings.TrimSpace(host), "."))
}
