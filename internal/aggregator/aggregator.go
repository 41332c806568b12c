// Package aggregator accumulates classified observations across one whole
// file pass.
package aggregator

import (
	"sort"

	"github.com/softmetapod/netlog/internal/model"
)

// FrequencyTable counts occurrences per key (an IP or port string).
// Counts only ever grow; entries are never removed.
type FrequencyTable map[string]int

// Entry is one ranked row of a frequency table.
type Entry struct {
	Key   string
	Count int
}

// TopN returns the n highest-count entries, count descending. Ties order by
// key ascending so repeated runs over the same input rank identically.
func (t FrequencyTable) TopN(n int) []Entry {
	entries := make([]Entry, 0, len(t))
	for k, c := range t {
		entries = append(entries, Entry{Key: k, Count: c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Key < entries[j].Key
	})
	if n < len(entries) {
		entries = entries[:n]
	}
	return entries
}

// Stats is a read-only snapshot of aggregator state at report time.
type Stats struct {
	Source     string
	TotalLines int

	Denied      []model.MatchRecord
	Allowed     []model.MatchRecord
	ConnErrors  []model.MatchRecord
	DNSFailures []model.MatchRecord
	DNSQueries  []model.MatchRecord
	HighLatency []model.MatchRecord
	PacketLoss  []model.MatchRecord
	DHCPEvents  []model.MatchRecord

	SourceIPs FrequencyTable
	DestIPs   FrequencyTable
	DeniedIPs FrequencyTable
	Ports     FrequencyTable
	Timeline  map[string]int
}

// Aggregator owns every counter, sample list, and the error timeline for one
// analysis pass. It is single-writer state: one goroutine feeds it in line
// order and the renderer only ever sees a Snapshot taken after the pass.
type Aggregator struct {
	source     string
	totalLines int

	denied      []model.MatchRecord
	allowed     []model.MatchRecord
	connErrors  []model.MatchRecord
	dnsFailures []model.MatchRecord
	dnsQueries  []model.MatchRecord
	highLatency []model.MatchRecord
	packetLoss  []model.MatchRecord
	dhcpEvents  []model.MatchRecord

	sourceIPs FrequencyTable
	destIPs   FrequencyTable
	deniedIPs FrequencyTable
	ports     FrequencyTable
	timeline  map[string]int
}

// New creates an empty Aggregator for one input file.
func New(source string, totalLines int) *Aggregator {
	return &Aggregator{
		source:     source,
		totalLines: totalLines,
		sourceIPs:  make(FrequencyTable),
		destIPs:    make(FrequencyTable),
		deniedIPs:  make(FrequencyTable),
		ports:      make(FrequencyTable),
		timeline:   make(map[string]int),
	}
}

// Consume folds one line's observations into the accumulator. Every update
// is an increment or an append in line order; nothing is revised downward or
// removed, so sample lists keep file order.
func (a *Aggregator) Consume(obs []model.Observation) {
	for _, o := range obs {
		switch o.Kind {
		case model.SourceIP:
			a.sourceIPs[o.Key]++
		case model.DestIP:
			a.destIPs[o.Key]++
		case model.DeniedIP:
			a.deniedIPs[o.Key]++
		case model.Port:
			a.ports[o.Key]++
		case model.FirewallDeny:
			a.denied = append(a.denied, o.Record)
		case model.FirewallAllow:
			a.allowed = append(a.allowed, o.Record)
		case model.ConnectionError:
			a.connErrors = append(a.connErrors, o.Record)
		case model.DNSFailure:
			a.dnsFailures = append(a.dnsFailures, o.Record)
		case model.DNSQuery:
			a.dnsQueries = append(a.dnsQueries, o.Record)
		case model.HighLatency:
			a.highLatency = append(a.highLatency, o.Record)
		case model.PacketLoss:
			a.packetLoss = append(a.packetLoss, o.Record)
		case model.DHCPEvent:
			a.dhcpEvents = append(a.dhcpEvents, o.Record)
		case model.ErrorBucket:
			a.timeline[o.Key]++
		}
	}
}

// Snapshot copies the accumulated state so the renderer cannot observe or
// disturb the live maps.
func (a *Aggregator) Snapshot() Stats {
	return Stats{
		Source:      a.source,
		TotalLines:  a.totalLines,
		Denied:      append([]model.MatchRecord(nil), a.denied...),
		Allowed:     append([]model.MatchRecord(nil), a.allowed...),
		ConnErrors:  append([]model.MatchRecord(nil), a.connErrors...),
		DNSFailures: append([]model.MatchRecord(nil), a.dnsFailures...),
		HighLatency: append([]model.MatchRecord(nil), a.highLatency...),
		PacketLoss:  append([]model.MatchRecord(nil), a.packetLoss...),
		DNSQueries:  append([]model.MatchRecord(nil), a.dnsQueries...),
		DHCPEvents:  append([]model.MatchRecord(nil), a.dhcpEvents...),
		SourceIPs:   copyTable(a.sourceIPs),
		DestIPs:     copyTable(a.destIPs),
		DeniedIPs:   copyTable(a.deniedIPs),
		Ports:       copyTable(a.ports),
		Timeline:    copyTable(a.timeline),
	}
}

func copyTable[M ~map[string]int](t M) M {
	out := make(M, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}
