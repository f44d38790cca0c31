package domainutil

import "testing"

func TestBaseDomain(t *testing.T) {
	cases := []struct {
		host string
		want string
	}{
		{"apps.agency.gov", "agency.gov"},
		{"deep.apps.agency.gov", "agency.gov"},
		{"agency.gov", "agency.gov"},
		{"www.agency.gov", "agency.gov"},
		{"other.com", "other.com"},
		{"b.other.co.uk", "other.co.uk"},
		{"Apps.Agency.GOV", "agency.gov"},
		{"apps.agency.gov.", "agency.gov"},
	}
	for _, c := range cases {
		if got := BaseDomain(c.host); got != c.want {
			t.Errorf("BaseDomain(%q) = %q, want %q", c.host, got, c.want)
		}
	}
}

func TestStripWWW(t *testing.T) {
	if got := StripWWW("www.agency.gov"); got != "agency.gov" {
		t.Errorf("StripWWW(www.agency.gov) = %q", got)
	}
	if got := StripWWW("wwwx.agency.gov"); got != "wwwx.agency.gov" {
		t.Errorf("StripWWW should only remove a full www. label, got %q", got)
	}
	// Only one leading label is removed.
	if got := StripWWW("www.www.agency.gov"); got != "www.agency.gov" {
		t.Errorf("StripWWW(www.www.agency.gov) = %q", got)
	}
}

func TestWildcard(t *testing.T) {
	cases := []struct {
		host string
		want string
	}{
		{"abc.mountains.gov", "*.mountains.gov"},
		{"a.b.mountains.gov", "*.b.mountains.gov"},
		{"mountains.gov", "*.gov"},
	}
	for _, c := range cases {
		if got := Wildcard(c.host); got != c.want {
			t.Errorf("Wildcard(%q) = %q, want %q", c.host, got, c.want)
		}
	}
}

func TestIsSecondLevel(t *testing.T) {
	cases := []struct {
		host string
		want bool
	}{
		{"agency.gov", true},
		{"www.agency.gov", true},
		{"apps.agency.gov", false},
		{"www.apps.agency.gov", false},
	}
	for _, c := range cases {
		if got := IsSecondLevel(c.host); got != c.want {
			t.Errorf("IsSecondLevel(%q) = %v, want %v", c.host, got, c.want)
		}
	}
}
