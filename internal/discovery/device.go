package discovery

import (
	"fmt"
	"time"
)

// Head represents a discovered stereo camera head on the network
type Head struct {
	// Serial is the camera serial number (e.g., "23074101")
	Serial string

	// Hostname is the mDNS hostname (e.g., "stereohead23074101.local")
	Hostname string

	// IP is the IPv4 address (e.g., "192.168.10.31")
	IP string

	// Port is the control port (typically 3956)
	Port int

	// Model is the camera model string (populated from mDNS TXT data)
	Model string

	// Metadata contains additional mDNS TXT record data
	// Common fields: "model=OakD-Pro", "fw=2.8.1"
	Metadata map[string]string

	// DiscoveredAt is when the head was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the head
func (h *Head) String() string {
	return fmt.Sprintf("Stereo head %s (%s) at %s:%d", h.Serial, h.Hostname, h.IP, h.Port)
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (h *Head) GetMetadata(key string) string {
	if h.Metadata == nil {
		return ""
	}
	return h.Metadata[key]
}

// Serials extracts the serial numbers from a discovery result, preserving
// order and dropping duplicates (the first sighting wins). The returned
// slice is what the fleet reconciler consumes.
func Serials(heads []*Head) []string {
	serials := make([]string, 0, len(heads))
	seen := make(map[string]bool, len(heads))
	for _, h := range heads {
		if h.Serial == "" || seen[h.Serial] {
			continue
		}
		seen[h.Serial] = true
		serials = append(serials, h.Serial)
	}
	return serials
}
