// Package output renders the final aggregate state as a sectioned plain-text
// troubleshooting report.
package output

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/softmetapod/netlog/internal/aggregator"
	"github.com/softmetapod/netlog/internal/model"
)

const (
	snippetLimit = 120 // max characters of a sample line shown
	barLimit     = 60  // max width of a timeline bar
)

var border = strings.Repeat("=", 72)

// Render produces the full report for one analyzed file. topN bounds every
// ranked and sample section; callers are responsible for passing a positive
// value. Apart from the Generated header line the output is a pure function
// of stats.
func Render(stats aggregator.Stats, topN int) string {
	lines := []string{
		border,
		"  NETWORK LOG TROUBLESHOOTING REPORT",
		"  Source: " + stats.Source,
		fmt.Sprintf("  Total lines parsed: %d", stats.TotalLines),
		"  Generated: " + time.Now().Format("2006-01-02 15:04:05"),
		border,
		"",
		"[SUMMARY]",
		fmt.Sprintf("  Firewall DENY/DROP entries : %d", len(stats.Denied)),
		fmt.Sprintf("  Firewall ALLOW entries     : %d", len(stats.Allowed)),
		fmt.Sprintf("  Connection errors          : %d", len(stats.ConnErrors)),
		fmt.Sprintf("  DNS failures               : %d", len(stats.DNSFailures)),
		fmt.Sprintf("  High-latency entries (>100ms): %d", len(stats.HighLatency)),
		fmt.Sprintf("  Packet-loss entries (>0%%)  : %d", len(stats.PacketLoss)),
		fmt.Sprintf("  DHCP events                : %d", len(stats.DHCPEvents)),
	}

	lines = append(lines, ipTable(fmt.Sprintf("TOP %d IPs IN DENY/DROP ENTRIES", topN), stats.DeniedIPs, topN, "hits")...)
	lines = append(lines, ipTable(fmt.Sprintf("TOP %d SOURCE IPs", topN), stats.SourceIPs, topN, "occurrences")...)
	lines = append(lines, ipTable(fmt.Sprintf("TOP %d DESTINATION IPs", topN), stats.DestIPs, topN, "occurrences")...)
	lines = append(lines, portTable(stats.Ports, topN)...)
	lines = append(lines, timeline(stats.Timeline)...)

	lines = append(lines, sample(fmt.Sprintf("CONNECTION ERRORS - showing first %d", topN), stats.ConnErrors, topN)...)
	lines = append(lines, sample(fmt.Sprintf("DNS FAILURES - showing first %d", topN), stats.DNSFailures, topN)...)
	lines = append(lines, valueSample(fmt.Sprintf("HIGH LATENCY ENTRIES - showing first %d", topN), stats.HighLatency, topN, "%.1f ms")...)
	lines = append(lines, valueSample(fmt.Sprintf("PACKET LOSS ENTRIES - showing first %d", topN), stats.PacketLoss, topN, "%.1f%% loss")...)
	lines = append(lines, sample(fmt.Sprintf("DHCP EVENTS - showing first %d", topN), stats.DHCPEvents, topN)...)
	lines = append(lines, sample(fmt.Sprintf("FIREWALL DENY/DROP SAMPLE - showing first %d", topN), stats.Denied, topN)...)

	lines = append(lines, "", border, "  END OF REPORT", border, "")
	return strings.Join(lines, "\n")
}

// ipTable renders one ranked frequency section, or nothing when the table
// is empty.
func ipTable(title string, t aggregator.FrequencyTable, topN int, unit string) []string {
	if len(t) == 0 {
		return nil
	}
	out := []string{"", "[" + title + "]"}
	for _, e := range t.TopN(topN) {
		out = append(out, fmt.Sprintf("  %-20s %d %s", e.Key, e.Count, unit))
	}
	return out
}

func portTable(t aggregator.FrequencyTable, topN int) []string {
	if len(t) == 0 {
		return nil
	}
	out := []string{"", fmt.Sprintf("[TOP %d TARGETED PORTS]", topN)}
	for _, e := range t.TopN(topN) {
		out = append(out, fmt.Sprintf("  Port %-10s %d occurrences", e.Key, e.Count))
	}
	return out
}

// timeline renders every hour bucket in ascending order with a proportional
// bar. Bucket keys sort lexically, which for a single timestamp format is
// also chronological.
func timeline(buckets map[string]int) []string {
	if len(buckets) == 0 {
		return nil
	}
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := []string{"", "[ERROR TIMELINE (errors per time bucket)]"}
	for _, k := range keys {
		bar := strings.Repeat("#", min(buckets[k], barLimit))
		out = append(out, fmt.Sprintf("  %s  %5d  %s", k, buckets[k], bar))
	}
	return out
}

// sample renders the first topN records of a category in file order.
func sample(title string, records []model.MatchRecord, topN int) []string {
	if len(records) == 0 {
		return nil
	}
	out := []string{"", "[" + title + "]"}
	for _, r := range records[:min(topN, len(records))] {
		out = append(out, fmt.Sprintf("  Line %d: %s", r.Line, snippet(r.Text)))
	}
	return out
}

// valueSample renders the topN records of a numeric category, highest value
// first. The sort is stable so equal values keep file order.
func valueSample(title string, records []model.MatchRecord, topN int, valueFmt string) []string {
	if len(records) == 0 {
		return nil
	}
	sorted := append([]model.MatchRecord(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Value > sorted[j].Value })

	out := []string{"", "[" + title + "]"}
	for _, r := range sorted[:min(topN, len(sorted))] {
		out = append(out, fmt.Sprintf("  Line %d (%s): %s", r.Line, fmt.Sprintf(valueFmt, r.Value), snippet(r.Text)))
	}
	return out
}

// snippet truncates display text to snippetLimit characters, counting runes
// so replacement characters from lossy decoding are not split.
func snippet(s string) string {
	runes := []rune(s)
	if len(runes) <= snippetLimit {
		return s
	}
	return string(runes[:snippetLimit])
}
