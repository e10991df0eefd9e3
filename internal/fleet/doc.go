// Package fleet manages the persisted configuration of the stereo camera
// rig: up to three camera slots, fleet-wide defaults, and the reconciliation
// of stored assignments against the serial numbers detected at startup.
//
// # Data Model
//
// FleetConfig is the root: global output settings, the default mount,
// processing and control records, and one DeviceRecord per slot. The slot
// (index in Devices) is stable across reconciliation; serials move in and
// out of slots, slots never move. An empty serial marks an unassigned slot.
//
// # Persistence
//
// The fleet persists as a single INI file (stereorig.ini) with sections
// General, Defaults, Defaults.Params, Defaults.Control and Device.N /
// Device.N.Params / Device.N.Control per slot. Keys are case-insensitive;
// booleans serialize as 0/1. Per-device Params and Control sections are
// written only when they differ from the defaults, so an untouched fleet
// round-trips to a minimal file.
//
// The parser is deliberately lenient: comments (';' or '#') and malformed
// lines are skipped, duplicate keys take the last value. The one fatal
// parse condition is non-numeric text in a numeric key, which surfaces as a
// *ValueError rather than being silently defaulted.
//
// # Reconciliation
//
// Reconcile merges live-detected serials into the stored fleet: duplicates
// inside the fleet are cleared (earlier slot wins), unknown serials fill
// empty slots in ascending order and then append while under the size cap,
// and the fleet is padded or truncated to exactly MaxSize slots. Manual
// assignments that are still valid are never disturbed.
//
// # Concurrency
//
// The package performs no locking. A FleetConfig must be exclusively owned
// for the duration of a Load, Reconcile, Save cycle; the reconciliation
// invariants do not hold under concurrent mutation.
package fleet
