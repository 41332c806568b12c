// Package classifier turns one raw log line into the observations the
// aggregator consumes. Classification is a pure function of the line; no
// state crosses lines.
package classifier

import (
	"strconv"
	"strings"

	"github.com/softmetapod/netlog/internal/model"
	"github.com/softmetapod/netlog/internal/pattern"
)

// highLatencyMS is the threshold above which a latency field is flagged.
// The comparison is strict: exactly 100 ms is not flagged.
const highLatencyMS = 100.0

// rule pairs a recognizer with the observation kind it produces. Rules in a
// group are tried top to bottom and the first match wins, which is how deny
// outranks allow and failure outranks query on lines matching both.
type rule struct {
	kind  model.Kind
	match func(string) bool
}

var firewallRules = []rule{
	{model.FirewallDeny, pattern.FirewallDeny},
	{model.FirewallAllow, pattern.FirewallAllow},
}

var dnsRules = []rule{
	{model.DNSFailure, pattern.DNSFailure},
	{model.DNSQuery, pattern.DNSQuery},
}

func firstMatch(rules []rule, line string) (model.Kind, bool) {
	for _, r := range rules {
		if r.match(line) {
			return r.kind, true
		}
	}
	return 0, false
}

// Classify evaluates every recognizer against one line and returns the
// resulting observations: IP roles, ports, firewall verdict, DNS, connection
// errors, latency, packet loss, DHCP, and the timeline bucket.
func Classify(ln model.LogLine) []model.Observation {
	var obs []model.Observation
	rec := model.MatchRecord{Line: ln.Num, Text: strings.TrimSpace(ln.Text)}

	ips := pattern.IPs(ln.Text)
	obs = append(obs, ipRoles(ips)...)

	for _, p := range pattern.Ports(ln.Text) {
		obs = append(obs, model.Observation{Kind: model.Port, Key: p})
	}

	isDeny := false
	if kind, ok := firstMatch(firewallRules, ln.Text); ok {
		obs = append(obs, model.Observation{Kind: kind, Record: rec})
		if kind == model.FirewallDeny {
			isDeny = true
			for _, ip := range ips {
				obs = append(obs, model.Observation{Kind: model.DeniedIP, Key: ip})
			}
		}
	}

	if kind, ok := firstMatch(dnsRules, ln.Text); ok {
		obs = append(obs, model.Observation{Kind: kind, Record: rec})
	}

	isConnErr := pattern.ConnectionError(ln.Text)
	if isConnErr {
		obs = append(obs, model.Observation{Kind: model.ConnectionError, Record: rec})
	}

	if raw, ok := pattern.Latency(ln.Text); ok {
		// A malformed number skips this category only; the line keeps
		// whatever else it matched.
		if ms, err := strconv.ParseFloat(raw, 64); err == nil && ms > highLatencyMS {
			r := rec
			r.Value = ms
			obs = append(obs, model.Observation{Kind: model.HighLatency, Record: r})
		}
	}

	if raw, ok := pattern.PacketLoss(ln.Text); ok {
		if loss, err := strconv.ParseFloat(raw, 64); err == nil && loss > 0 {
			r := rec
			r.Value = loss
			obs = append(obs, model.Observation{Kind: model.PacketLoss, Record: r})
		}
	}

	if pattern.DHCPEvent(ln.Text) {
		obs = append(obs, model.Observation{Kind: model.DHCPEvent, Record: rec})
	}

	// A line that is both a deny and a connection error still lands in its
	// hour bucket exactly once.
	if bucket, ok := hourBucket(ln.Text); ok && (isDeny || isConnErr) {
		obs = append(obs, model.Observation{Kind: model.ErrorBucket, Key: bucket})
	}

	return obs
}

// ipRoles assigns the first IP on a line the source role and the second the
// destination role. This matches the SRC/DST field order of firewall logs
// but is only a positional guess for other formats; it is not protocol-aware
// and is known to misattribute roles on lines that list IPs in another order.
func ipRoles(ips []string) []model.Observation {
	var obs []model.Observation
	if len(ips) >= 1 {
		obs = append(obs, model.Observation{Kind: model.SourceIP, Key: ips[0]})
	}
	if len(ips) >= 2 {
		obs = append(obs, model.Observation{Kind: model.DestIP, Key: ips[1]})
	}
	return obs
}

// hourBucket truncates the line's timestamp to hour granularity: the first
// 13 characters of an ISO timestamp ("2024-05-01T10") or the first 10 of a
// syslog one ("May  1 10"). ISO is tried first; a line never lands in two
// buckets.
func hourBucket(line string) (string, bool) {
	if ts, ok := pattern.ISOTimestamp(line); ok {
		return ts[:13], true
	}
	if ts, ok := pattern.SyslogTimestamp(line); ok {
		return ts[:10], true
	}
	return "", false
}
