package probe

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/miekg/dns"
)

const resolvConf = "/etc/resolv.conf"

// DNSResolver answers A-record lookups against a single upstream resolver
// using direct DNS queries. Wildcard names ("*.agency.gov") are valid
// question names and are queried as-is.
type DNSResolver struct {
	client *dns.Client
	server string
}

// NewDNSResolver builds a resolver for the given "host:port" server.
// An empty server falls back to the first nameserver in /etc/resolv.conf,
// then to Cloudflare's public resolver.
func NewDNSResolver(server string, timeout time.Duration) *DNSResolver {
	if server == "" {
		server = systemResolver()
	}
	if !strings.Contains(server, ":") {
		server += ":53"
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &DNSResolver{
		client: &dns.Client{Timeout: timeout},
		server: server,
	}
}

// Resolve returns the sorted answer set for a name: A record addresses plus
// any CNAME targets in the answer chain. An NXDOMAIN or empty answer yields
// an empty set, not an error.
func (r *DNSResolver) Resolve(ctx context.Context, name string) ([]string, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(name), dns.TypeA)

	resp, _, err := r.client.ExchangeContext(ctx, msg, r.server)
	if err != nil {
		return nil, fmt.Errorf("dns query for %s: %w", name, err)
	}
	if resp.Rcode != dns.RcodeSuccess {
		return nil, nil
	}

	var answers []string
	for _, rr := range resp.Answer {
		switch record := rr.(type) {
		case *dns.A:
			answers = append(answers, record.A.String())
		case *dns.CNAME:
			answers = append(answers, strings.TrimSuffix(record.Target, "."))
		}
	}

	sort.Strings(answers)
	return answers, nil
}

// systemResolver reads the first nameserver from resolv.conf.
func systemResolver() string {
	conf, err := dns.ClientConfigFromFile(resolvConf)
	if err == nil && len(conf.Servers) > 0 {
		return conf.Servers[0] + ":" + conf.Port
	}
	return "1.1.1.1:53"
}
