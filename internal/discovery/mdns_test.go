package discovery

import (
	"net"
	"testing"
	"time"

	"github.com/grandcat/zeroconf"
)

func TestScanner_parseServiceEntry(t *testing.T) {
	scanner := NewScanner()

	tests := []struct {
		name       string
		entry      *zeroconf.ServiceEntry
		wantNil    bool
		wantSerial string
		wantIP     string
		wantPort   int
	}{
		{
			name: "valid head with IPv4",
			entry: &zeroconf.ServiceEntry{
				HostName: "stereohead23074101.local.",
				Port:     3956,
				AddrIPv4: []net.IP{net.ParseIP("192.168.10.31")},
				Text:     []string{"model=OakD-Pro", "fw=2.8.1"},
			},
			wantNil:    false,
			wantSerial: "23074101",
			wantIP:     "192.168.10.31",
			wantPort:   3956,
		},
		{
			name: "valid head without trailing dot",
			entry: &zeroconf.ServiceEntry{
				HostName: "stereohead19AB44.local",
				Port:     3956,
				AddrIPv4: []net.IP{net.ParseIP("10.0.0.5")},
				Text:     []string{},
			},
			wantNil:    false,
			wantSerial: "19AB44",
			wantIP:     "10.0.0.5",
			wantPort:   3956,
		},
		{
			name: "head with no port specified (should default to 3956)",
			entry: &zeroconf.ServiceEntry{
				HostName: "stereohead111111.local",
				Port:     0,
				AddrIPv4: []net.IP{net.ParseIP("172.16.0.1")},
			},
			wantNil:    false,
			wantSerial: "111111",
			wantIP:     "172.16.0.1",
			wantPort:   3956,
		},
		{
			name: "non-head device (wrong hostname pattern)",
			entry: &zeroconf.ServiceEntry{
				HostName: "someotherdevice.local",
				Port:     80,
				AddrIPv4: []net.IP{net.ParseIP("192.168.1.1")},
			},
			wantNil: true,
		},
		{
			name: "empty hostname",
			entry: &zeroconf.ServiceEntry{
				HostName: "",
				Port:     80,
				AddrIPv4: []net.IP{net.ParseIP("192.168.1.1")},
			},
			wantNil: true,
		},
		{
			name: "no IP address",
			entry: &zeroconf.ServiceEntry{
				HostName: "stereohead23074101.local",
				Port:     3956,
				AddrIPv4: []net.IP{},
				AddrIPv6: []net.IP{},
			},
			wantNil: true,
		},
		{
			name: "IPv6 only head",
			entry: &zeroconf.ServiceEntry{
				HostName: "stereohead222222.local",
				Port:     3956,
				AddrIPv6: []net.IP{net.ParseIP("fe80::1")},
			},
			wantNil:    false,
			wantSerial: "222222",
			wantIP:     "fe80::1",
			wantPort:   3956,
		},
		{
			name: "head with both IPv4 and IPv6 (should prefer IPv4)",
			entry: &zeroconf.ServiceEntry{
				HostName: "stereohead333333.local",
				Port:     3956,
				AddrIPv4: []net.IP{net.ParseIP("192.168.1.50")},
				AddrIPv6: []net.IP{net.ParseIP("fe80::2")},
			},
			wantNil:    false,
			wantSerial: "333333",
			wantIP:     "192.168.1.50",
			wantPort:   3956,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			head := scanner.parseServiceEntry(tt.entry)

			if tt.wantNil {
				if head != nil {
					t.Errorf("parseServiceEntry() = %v, want nil", head)
				}
				return
			}

			if head == nil {
				t.Fatal("parseServiceEntry() = nil, want non-nil head")
			}

			if head.Serial != tt.wantSerial {
				t.Errorf("head.Serial = %v, want %v", head.Serial, tt.wantSerial)
			}

			if head.IP != tt.wantIP {
				t.Errorf("head.IP = %v, want %v", head.IP, tt.wantIP)
			}

			if head.Port != tt.wantPort {
				t.Errorf("head.Port = %v, want %v", head.Port, tt.wantPort)
			}

			if head.Hostname != tt.entry.HostName {
				t.Errorf("head.Hostname = %v, want %v", head.Hostname, tt.entry.HostName)
			}

			// Check that DiscoveredAt is recent (within last second)
			if time.Since(head.DiscoveredAt) > time.Second {
				t.Errorf("head.DiscoveredAt is not recent: %v", head.DiscoveredAt)
			}
		})
	}
}

func TestScanner_parseServiceEntry_Metadata(t *testing.T) {
	scanner := NewScanner()

	entry := &zeroconf.ServiceEntry{
		HostName: "stereohead23074101.local",
		Port:     3956,
		AddrIPv4: []net.IP{net.ParseIP("192.168.10.31")},
		Text:     []string{"model=OakD-Pro", "fw=2.8.1", "flag", "baseline=75mm"},
	}

	head := scanner.parseServiceEntry(entry)
	if head == nil {
		t.Fatal("parseServiceEntry() = nil, want head")
	}

	expectedMetadata := map[string]string{
		"model":    "OakD-Pro",
		"fw":       "2.8.1",
		"flag":     "", // Key without value
		"baseline": "75mm",
	}

	if len(head.Metadata) != len(expectedMetadata) {
		t.Errorf("head.Metadata has %d entries, want %d", len(head.Metadata), len(expectedMetadata))
	}

	for key, expectedValue := range expectedMetadata {
		if actualValue, ok := head.Metadata[key]; !ok {
			t.Errorf("head.Metadata missing key %q", key)
		} else if actualValue != expectedValue {
			t.Errorf("head.Metadata[%q] = %q, want %q", key, actualValue, expectedValue)
		}
	}

	if head.Model != "OakD-Pro" {
		t.Errorf("head.Model = %q, want OakD-Pro", head.Model)
	}
}

func TestNewScanner(t *testing.T) {
	scanner := NewScanner()

	if scanner == nil {
		t.Fatal("NewScanner() = nil, want scanner")
	}

	if scanner.Timeout != DefaultScanTimeout {
		t.Errorf("scanner.Timeout = %v, want %v", scanner.Timeout, DefaultScanTimeout)
	}
}

func TestSerialPattern(t *testing.T) {
	tests := []struct {
		hostname    string
		shouldMatch bool
		serial      string
	}{
		{"stereohead23074101.local", true, "23074101"},
		{"stereohead23074101.local.", true, "23074101"},
		{"stereohead19AB44.local", true, "19AB44"},
		{"stereohead1.local", true, "1"},
		{"Stereohead23074101.local", false, ""}, // uppercase 'S'
		{"stereohead.local", false, ""},         // no serial
		{"stereohead_x.local", false, ""},       // non-alphanumeric serial
		{"somedevice.local", false, ""},         // wrong prefix
		{"stereohead23074101", false, ""},       // missing .local
		{"", false, ""},                         // empty
	}

	for _, tt := range tests {
		t.Run(tt.hostname, func(t *testing.T) {
			matches := serialPattern.FindStringSubmatch(tt.hostname)

			if tt.shouldMatch {
				if matches == nil || len(matches) < 2 {
					t.Errorf("serialPattern did not match %q", tt.hostname)
				} else if matches[1] != tt.serial {
					t.Errorf("serialPattern matched %q with serial %q, want %q", tt.hostname, matches[1], tt.serial)
				}
			} else {
				if matches != nil {
					t.Errorf("serialPattern matched %q, want no match", tt.hostname)
				}
			}
		})
	}
}

// Note: Integration tests with live mDNS discovery require network access
// and should be run manually with:
// go test -tags=integration ./internal/discovery/
