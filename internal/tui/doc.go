// Package tui implements the interactive fleet wizard.
//
// The wizard is a single-screen bubbletea dashboard over the fleet
// configuration: it lists every slot with its name, serial and
// orientation, lets the operator toggle slots on and off, re-runs
// discovery and reconciliation on demand, and saves the result.
//
// Discovery is injected as a ScanFunc so the model stays testable; the
// binary wires in the mDNS scanner, tests wire in fixed serial lists.
//
// The wizard never edits processing parameters. Those live in the INI
// file and are the domain of a text editor; the wizard's job is the
// fleet roster.
package tui
