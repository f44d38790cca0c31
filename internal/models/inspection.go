package models

// EndpointStatus is the inspector's verdict for one protocol/prefix
// combination. A status code of 0 means the endpoint was unreachable.
type EndpointStatus struct {
	StatusCode int    `json:"status"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

// InspectionRecord is the per-domain output of the upstream endpoint
// inspector. It is immutable for the duration of a classification run.
// Absence of a record for a domain means the domain was never inspected.
type InspectionRecord struct {
	Up                bool                                       `json:"up"`
	CanonicalProtocol Protocol                                   `json:"canonical_protocol"`
	CanonicalPrefix   HostPrefix                                 `json:"canonical_endpoint"`
	Redirect          bool                                       `json:"redirect,omitempty"`
	RedirectTo        string                                     `json:"redirect_to,omitempty"`
	Endpoints         map[Protocol]map[HostPrefix]EndpointStatus `json:"endpoints"`
}

// Endpoint returns the status recorded for a protocol/prefix pair.
// The second return is false when the inspector recorded nothing for it.
func (r *InspectionRecord) Endpoint(p Protocol, h HostPrefix) (EndpointStatus, bool) {
	prefixes, ok := r.Endpoints[p]
	if !ok {
		return EndpointStatus{}, false
	}
	ep, ok := prefixes[h]
	return ep, ok
}
