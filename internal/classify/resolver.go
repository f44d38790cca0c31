package classify

import (
	"fmt"

	"github.com/hakim/subsift/internal/models"
)

// endpointKey identifies one protocol/prefix combination in an inspection
// record.
type endpointKey struct {
	Protocol models.Protocol
	Prefix   models.HostPrefix
}

// FallbackOrder is the fixed priority order tried when the inspector's
// canonical endpoint was unreachable: www before bare root, http first
// among the fallbacks. The order never varies per record, so output stays
// stable across runs.
var FallbackOrder = []endpointKey{
	{models.ProtocolHTTP, models.PrefixWWW},
	{models.ProtocolHTTPS, models.PrefixRoot},
	{models.ProtocolHTTPS, models.PrefixWWW},
	{models.ProtocolHTTP, models.PrefixRoot},
}

// Resolution is the canonical endpoint choice for a subdomain. Every
// downstream consumer — the redirect classifier, the wildcard prober, and
// the wildcard-noise filter — works from the same Resolution so they can
// never disagree about which endpoint was chosen.
type Resolution struct {
	Endpoint models.EndpointStatus
	Protocol models.Protocol
	Prefix   models.HostPrefix
}

// URL builds the endpoint URL for a subdomain from the chosen protocol and
// prefix, e.g. "https://www.apps.agency.gov".
func (r Resolution) URL(subdomain string) string {
	host := subdomain
	if r.Prefix == models.PrefixWWW {
		host = "www." + subdomain
	}
	return fmt.Sprintf("%s://%s", r.Protocol, host)
}

// ResolveEndpoint selects the best-available live endpoint from an
// inspection record. It starts at the inspector's declared canonical
// protocol/prefix and falls through FallbackOrder until it finds a non-zero
// status. The second return is false when every combination was
// unreachable: the subdomain is effectively down, a terminal skip rather
// than an error.
func ResolveEndpoint(rec *models.InspectionRecord) (Resolution, bool) {
	candidates := make([]endpointKey, 0, len(FallbackOrder)+1)
	candidates = append(candidates, endpointKey{rec.CanonicalProtocol, rec.CanonicalPrefix})
	candidates = append(candidates, FallbackOrder...)

	for _, key := range candidates {
		ep, ok := rec.Endpoint(key.Protocol, key.Prefix)
		if !ok || ep.StatusCode == 0 {
			continue
		}
		return Resolution{Endpoint: ep, Protocol: key.Protocol, Prefix: key.Prefix}, true
	}

	return Resolution{}, false
}
