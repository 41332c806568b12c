package model

// LogLine is one raw line from the input file.
type LogLine struct {
	Num  int    // 1-based line number
	Text string // raw content, untrimmed
}

// MatchRecord ties a classified line to its position in the file.
// Value is only meaningful for the numeric categories (latency, packet loss).
type MatchRecord struct {
	Line  int
	Value float64
	Text  string // trimmed snippet kept for display
}

// Kind identifies what a single Observation says about a line.
type Kind int

const (
	SourceIP Kind = iota
	DestIP
	DeniedIP
	Port
	FirewallDeny
	FirewallAllow
	ConnectionError
	DNSFailure
	DNSQuery
	HighLatency
	PacketLoss
	DHCPEvent
	ErrorBucket
)

// Observation is one classified fact extracted from a line. Counter kinds
// (IPs, ports, timeline buckets) carry the counted key in Key; sample kinds
// carry the line reference in Record.
type Observation struct {
	Kind   Kind
	Key    string
	Record MatchRecord
}
