package discovery

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
)

const (
	// ServiceType is the mDNS service type stereo camera heads advertise
	ServiceType = "_stereocam._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for head discovery
	DefaultScanTimeout = 5 * time.Second

	// DefaultPort is the default control port (GigE Vision control channel)
	DefaultPort = 3956
)

// serialPattern matches stereo head hostnames (e.g., "stereohead23074101.local")
var serialPattern = regexp.MustCompile(`^stereohead([0-9A-Za-z]+)\.local\.?$`)

// Scanner handles mDNS camera head discovery
type Scanner struct {
	// Timeout is the maximum time to wait for head discovery
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// ScanForHeads discovers all stereo camera heads on the local network
// Returns a list of discovered heads or an error
func (s *Scanner) ScanForHeads() ([]*Head, error) {
	return s.ScanForHeadsWithContext(context.Background())
}

// ScanForHeadsWithContext discovers heads with a custom context
func (s *Scanner) ScanForHeadsWithContext(ctx context.Context) ([]*Head, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	heads := make([]*Head, 0)

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	// Collect entries in a goroutine while Browse runs
	go func() {
		for entry := range entries {
			head := s.parseServiceEntry(entry)
			if head != nil {
				heads = append(heads, head)
			}
		}
	}()

	err = resolver.Browse(ctx, ServiceType, ServiceDomain, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	// Wait for context to complete (timeout or cancellation)
	<-ctx.Done()

	return heads, nil
}

// WaitForHead waits for a specific head by serial number
// Returns the head or an error if not found within timeout
func (s *Scanner) WaitForHead(serial string) (*Head, error) {
	return s.WaitForHeadWithContext(context.Background(), serial)
}

// WaitForHeadWithContext waits for a specific head with a custom context
func (s *Scanner) WaitForHeadWithContext(ctx context.Context, serial string) (*Head, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	headChan := make(chan *Head, 1)

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	go func() {
		for entry := range entries {
			head := s.parseServiceEntry(entry)
			if head != nil && head.Serial == serial {
				headChan <- head
				cancel() // Found the head, cancel context
				return
			}
		}
	}()

	err = resolver.Browse(ctx, ServiceType, ServiceDomain, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	select {
	case head := <-headChan:
		return head, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("head with serial %s not found within timeout", serial)
	}
}

// parseServiceEntry converts a zeroconf service entry to a Head
// Returns nil if the entry is not a stereo camera head
func (s *Scanner) parseServiceEntry(entry *zeroconf.ServiceEntry) *Head {
	hostname := entry.HostName
	if hostname == "" {
		return nil
	}

	matches := serialPattern.FindStringSubmatch(hostname)
	if len(matches) < 2 {
		return nil
	}

	serial := matches[1]

	// Get IP address (prefer IPv4)
	var ip string
	for _, addr := range entry.AddrIPv4 {
		ip = addr.String()
		break
	}
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	// TXT records are in "key=value" format
	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			metadata[parts[0]] = ""
		}
	}

	return &Head{
		Serial:       serial,
		Hostname:     hostname,
		IP:           ip,
		Port:         port,
		Model:        metadata["model"],
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// ScanForHeads is a convenience function to scan for heads with a custom timeout
func ScanForHeads(timeout time.Duration) ([]*Head, error) {
	scanner := NewScanner()
	scanner.Timeout = timeout
	return scanner.ScanForHeads()
}

// ScanSerials scans for heads and returns just their serial numbers,
// deduplicated in discovery order.
func ScanSerials(timeout time.Duration) ([]string, error) {
	heads, err := ScanForHeads(timeout)
	if err != nil {
		return nil, err
	}
	return Serials(heads), nil
}

// FindHead searches for a specific head by serial number with default timeout
func FindHead(serial string) (*Head, error) {
	scanner := NewScanner()
	return scanner.WaitForHead(serial)
}
