// Package pattern holds the recognizers applied to every log line. Each one
// is a compiled regular expression evaluated on a single line; none keeps
// state and none depends on another, so they can run in any order.
package pattern

import "regexp"

var (
	timestampSyslog = regexp.MustCompile(`^(\w{3}\s+\d{1,2}\s+\d{2}:\d{2}:\d{2})`)
	timestampISO    = regexp.MustCompile(`(\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2})`)
	ipAddress       = regexp.MustCompile(`\b(\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})\b`)
	macAddress      = regexp.MustCompile(`([0-9A-Fa-f]{2}[:-]){5}[0-9A-Fa-f]{2}`)
	portField       = regexp.MustCompile(`(?i)(?:SPT|SRC_PORT|sport|srcport|DPT|DST_PORT|dport|dstport)[=: ]+(\d{1,5})`)
	firewallDeny    = regexp.MustCompile(`(?i)(DROP|DENY|BLOCK|REJECT|REFUSED)`)
	firewallAllow   = regexp.MustCompile(`(?i)(ACCEPT|ALLOW|PERMIT)`)
	dnsQuery        = regexp.MustCompile(`(?i)(query|lookup|resolve[ds]?)\s+.*?[a-zA-Z0-9._-]+\.[a-zA-Z]{2,}`)
	dnsFailure      = regexp.MustCompile(`(?i)(NXDOMAIN|SERVFAIL|REFUSED|no\s+servers?\s+could\s+be\s+reached|timed?\s*out|resolution\s+failed)`)
	connectionError = regexp.MustCompile(`(?i)(connection\s+(refused|reset|timed?\s*out|closed|failed)|unreachable|no\s+route|link\s+down|interface\s+down)`)
	latencyField    = regexp.MustCompile(`(?i)(?:time|latency|rtt|delay)[=: ]+(\d+\.?\d*)\s*ms`)
	packetLoss      = regexp.MustCompile(`(?i)(\d+\.?\d*)%?\s*(?:packet\s+)?loss`)
	dhcpEvent       = regexp.MustCompile(`(?i)(DHCPDISCOVER|DHCPOFFER|DHCPREQUEST|DHCPACK|DHCPNAK|DHCPRELEASE|DHCPDECLINE)`)
)

// IPs returns every dotted-quad literal on the line, in order of appearance.
// Matching is purely lexical: octets above 255 are not rejected.
func IPs(line string) []string {
	return ipAddress.FindAllString(line, -1)
}

// MACs returns every colon- or hyphen-separated MAC address on the line.
func MACs(line string) []string {
	return macAddress.FindAllString(line, -1)
}

// Ports returns the digits of every labeled port field on the line
// (SPT=443, dport: 53, srcport 1024 and friends).
func Ports(line string) []string {
	matches := portField.FindAllStringSubmatch(line, -1)
	if matches == nil {
		return nil
	}
	ports := make([]string, 0, len(matches))
	for _, m := range matches {
		ports = append(ports, m[1])
	}
	return ports
}

// FirewallDeny reports whether the line carries a deny/drop verdict keyword.
func FirewallDeny(line string) bool { return firewallDeny.MatchString(line) }

// FirewallAllow reports whether the line carries an allow verdict keyword.
func FirewallAllow(line string) bool { return firewallAllow.MatchString(line) }

// DNSQuery reports whether the line looks like a DNS query or lookup for a
// dotted hostname.
func DNSQuery(line string) bool { return dnsQuery.MatchString(line) }

// DNSFailure reports whether the line carries a DNS failure indicator
// (NXDOMAIN, SERVFAIL, timeouts, unreachable servers).
func DNSFailure(line string) bool { return dnsFailure.MatchString(line) }

// ConnectionError reports whether the line describes a failed connection:
// refused, reset, timed out, closed, unreachable, no route, link down.
func ConnectionError(line string) bool { return connectionError.MatchString(line) }

// DHCPEvent reports whether the line contains a DHCP message type token.
func DHCPEvent(line string) bool { return dhcpEvent.MatchString(line) }

// Latency returns the numeric text of the first labeled latency field
// (time=12.3 ms, rtt: 250ms) and whether one was found.
func Latency(line string) (string, bool) {
	m := latencyField.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// PacketLoss returns the numeric text of the first packet-loss figure
// ("3% packet loss", "0.5 loss") and whether one was found.
func PacketLoss(line string) (string, bool) {
	m := packetLoss.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ISOTimestamp returns the first YYYY-MM-DD[T ]HH:MM:SS timestamp on the
// line and whether one was found.
func ISOTimestamp(line string) (string, bool) {
	m := timestampISO.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// SyslogTimestamp returns the leading "Mon DD HH:MM:SS" timestamp and
// whether one was found. Unlike the ISO form it must start the line.
func SyslogTimestamp(line string) (string, bool) {
	m := timestampSyslog.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}
