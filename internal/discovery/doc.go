// Package discovery provides mDNS-based discovery of stereo camera heads.
//
// This package implements multicast DNS (mDNS) service discovery to locate
// stereo camera heads on the local network. Heads advertise themselves using
// the "_stereocam._tcp" service type with a hostname of the form
// "stereohead{serial}.local".
//
// # Discovery Process
//
// The discovery process works as follows:
//  1. Broadcasts mDNS queries on the local network
//  2. Listens for service advertisements from camera heads
//  3. Filters responses by the stereohead hostname pattern
//  4. Collects head information (hostname, IP, serial number, model)
//  5. Returns a list of discovered heads after the timeout period
//
// # Usage Example
//
//	// Discover heads with 5-second timeout
//	heads, err := discovery.ScanForHeads(5 * time.Second)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Feed the serial list to the fleet reconciler
//	changed := cfg.Reconcile(discovery.Serials(heads))
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Heads must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
//
// # Thread Safety
//
// This package is safe for concurrent use. Multiple discovery sessions can
// run simultaneously without interference.
package discovery
