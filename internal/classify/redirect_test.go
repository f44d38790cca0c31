package classify

import "testing"

func TestClassifyRedirect(t *testing.T) {
	cases := []struct {
		name         string
		redirectTo   string
		subdomain    string
		wantExternal bool
		wantSibling  bool
	}{
		{
			name:       "no redirect",
			redirectTo: "",
			subdomain:  "a.agency.gov",
		},
		{
			name:       "www form of itself",
			redirectTo: "https://www.a.agency.gov/",
			subdomain:  "a.agency.gov",
		},
		{
			name:        "sibling subdomain",
			redirectTo:  "https://b.agency.gov/",
			subdomain:   "a.agency.gov",
			wantSibling: true,
		},
		{
			name:         "external domain",
			redirectTo:   "https://other.com/path",
			subdomain:    "a.agency.gov",
			wantExternal: true,
		},
		{
			name:       "redirects up to base domain",
			redirectTo: "https://www.agency.gov/",
			subdomain:  "a.agency.gov",
			// The parent site is not a sibling subdomain.
		},
		{
			name:       "redirects to exactly itself",
			redirectTo: "http://a.agency.gov/index.html",
			subdomain:  "a.agency.gov",
		},
		{
			name:         "external www-stripped",
			redirectTo:   "http://www.other.com",
			subdomain:    "a.agency.gov",
			wantExternal: true,
		},
		{
			name:       "unparseable target",
			redirectTo: "::notaurl",
			subdomain:  "a.agency.gov",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			external, sibling := ClassifyRedirect(c.redirectTo, c.subdomain, "agency.gov")
			if external != c.wantExternal {
				t.Errorf("external = %v, want %v", external, c.wantExternal)
			}
			if sibling != c.wantSibling {
				t.Errorf("sibling = %v, want %v", sibling, c.wantSibling)
			}
		})
	}
}

func TestClassifyRedirectMutuallyExclusive(t *testing.T) {
	targets := []string{
		"",
		"https://www.a.agency.gov/",
		"https://b.agency.gov/",
		"https://other.com/",
		"https://agency.gov/",
	}
	for _, target := range targets {
		external, sibling := ClassifyRedirect(target, "a.agency.gov", "agency.gov")
		if external && sibling {
			t.Errorf("flags must never both fire (target %q)", target)
		}
	}
}
