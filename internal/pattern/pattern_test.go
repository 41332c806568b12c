package pattern

import "testing"

func TestIPsLexical(t *testing.T) {
	ips := IPs("SRC=10.0.0.5 DST=10.0.0.9 via 999.999.999.999")
	if len(ips) != 3 {
		t.Fatalf("expected 3 IPs, got %d: %v", len(ips), ips)
	}
	if ips[0] != "10.0.0.5" || ips[1] != "10.0.0.9" {
		t.Errorf("expected ordered matches, got %v", ips)
	}
	// Matching is lexical; out-of-range octets still match.
	if ips[2] != "999.999.999.999" {
		t.Errorf("expected lexical match for 999.999.999.999, got %q", ips[2])
	}
}

func TestIPsNone(t *testing.T) {
	if ips := IPs("no addresses here, only 1.2.3 fragments"); len(ips) != 0 {
		t.Errorf("expected no IPs, got %v", ips)
	}
}

func TestMACs(t *testing.T) {
	macs := MACs("DHCPACK on 10.0.0.7 to aa:bb:cc:dd:ee:ff (laptop) via 00-1A-2B-3C-4D-5E")
	if len(macs) != 2 {
		t.Fatalf("expected 2 MACs, got %v", macs)
	}
	if macs[0] != "aa:bb:cc:dd:ee:ff" {
		t.Errorf("expected colon form, got %q", macs[0])
	}
	if macs[1] != "00-1A-2B-3C-4D-5E" {
		t.Errorf("expected hyphen form, got %q", macs[1])
	}
}

func TestPortLabels(t *testing.T) {
	cases := map[string]string{
		"SPT=443":       "443",
		"DPT=8080":      "8080",
		"sport: 53":     "53",
		"DSTPORT 9999":  "9999", // matches the dstport label case-insensitively
		"SRC_PORT=1024": "1024",
	}
	for line, want := range cases {
		ports := Ports(line)
		if len(ports) != 1 || ports[0] != want {
			t.Errorf("Ports(%q) = %v, want [%s]", line, ports, want)
		}
	}
}

func TestPortMultiple(t *testing.T) {
	ports := Ports("DROP SRC=10.0.0.5 SPT=443 DPT=8080")
	if len(ports) != 2 || ports[0] != "443" || ports[1] != "8080" {
		t.Errorf("expected [443 8080], got %v", ports)
	}
}

func TestPortUnlabeled(t *testing.T) {
	if ports := Ports("listening on 8080"); len(ports) != 0 {
		t.Errorf("unlabeled number should not match, got %v", ports)
	}
}

func TestFirewallVerdicts(t *testing.T) {
	if !FirewallDeny("kernel: iptables DROP IN=eth0") {
		t.Error("expected DROP to match deny")
	}
	if !FirewallDeny("access denied by policy") {
		t.Error("expected deny keyword to match case-insensitively")
	}
	if FirewallDeny("all quiet on eth0") {
		t.Error("expected no deny match")
	}
	if !FirewallAllow("ACCEPT tcp from 10.0.0.1") {
		t.Error("expected ACCEPT to match allow")
	}
	if !FirewallAllow("permit ip any any") {
		t.Error("expected permit to match allow")
	}
}

func TestDNSQuery(t *testing.T) {
	if !DNSQuery("client 10.0.0.2 query for www.example.com IN A") {
		t.Error("expected query phrase to match")
	}
	if !DNSQuery("resolved host.example.org in 2ms") {
		t.Error("expected resolved phrase to match")
	}
	if DNSQuery("query with no domain after it") {
		t.Error("expected no match without a dotted hostname")
	}
}

func TestDNSFailure(t *testing.T) {
	for _, line := range []string{
		"NXDOMAIN looking up bad.example.com",
		"SERVFAIL from upstream",
		"connection timed out; no servers could be reached",
		"name resolution failed for host",
	} {
		if !DNSFailure(line) {
			t.Errorf("expected DNS failure match for %q", line)
		}
	}
	if DNSFailure("answer A 93.184.216.34") {
		t.Error("expected no failure match on a clean answer")
	}
}

func TestConnectionError(t *testing.T) {
	for _, line := range []string{
		"connect to 10.0.0.9: connection refused",
		"Connection reset by peer",
		"connection timed out",
		"host 10.1.1.1 unreachable",
		"no route to host",
		"eth1: link down",
	} {
		if !ConnectionError(line) {
			t.Errorf("expected connection error match for %q", line)
		}
	}
	if ConnectionError("connection established to 10.0.0.9") {
		t.Error("expected no match on a successful connection")
	}
}

func TestLatency(t *testing.T) {
	raw, ok := Latency("icmp_seq=1 time=250.5 ms")
	if !ok || raw != "250.5" {
		t.Errorf("expected 250.5, got %q ok=%v", raw, ok)
	}
	raw, ok = Latency("rtt: 80ms to gateway")
	if !ok || raw != "80" {
		t.Errorf("expected 80, got %q ok=%v", raw, ok)
	}
	if _, ok := Latency("took 50 ms"); ok {
		t.Error("expected no match without a recognized label")
	}
}

func TestPacketLoss(t *testing.T) {
	raw, ok := PacketLoss("5% packet loss")
	if !ok || raw != "5" {
		t.Errorf("expected 5, got %q ok=%v", raw, ok)
	}
	raw, ok = PacketLoss("0.5 loss on uplink")
	if !ok || raw != "0.5" {
		t.Errorf("expected 0.5, got %q ok=%v", raw, ok)
	}
	if _, ok := PacketLoss("lossless transfer"); ok {
		t.Error("expected no match without a leading number")
	}
}

func TestDHCPEvent(t *testing.T) {
	if !DHCPEvent("dhcpd: DHCPDISCOVER from aa:bb:cc:dd:ee:ff via eth0") {
		t.Error("expected DHCPDISCOVER to match")
	}
	if !DHCPEvent("dhcpack to 10.0.0.7") {
		t.Error("expected case-insensitive match")
	}
	if DHCPEvent("dhcp lease database loaded") {
		t.Error("expected no match without a message type token")
	}
}

func TestISOTimestamp(t *testing.T) {
	ts, ok := ISOTimestamp("fw 2024-05-01T10:15:00 DROP")
	if !ok || ts != "2024-05-01T10:15:00" {
		t.Errorf("expected ISO match, got %q ok=%v", ts, ok)
	}
	ts, ok = ISOTimestamp("2024-05-01 10:15:00 event")
	if !ok || ts != "2024-05-01 10:15:00" {
		t.Errorf("expected space-separated ISO match, got %q ok=%v", ts, ok)
	}
}

func TestSyslogTimestamp(t *testing.T) {
	ts, ok := SyslogTimestamp("May  3 14:22:01 gw kernel: DROP")
	if !ok || ts != "May  3 14:22:01" {
		t.Errorf("expected syslog match, got %q ok=%v", ts, ok)
	}
	// The syslog form is anchored to the start of the line.
	if _, ok := SyslogTimestamp("prefix May  3 14:22:01"); ok {
		t.Error("expected no match mid-line")
	}
}
