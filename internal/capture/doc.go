// Package capture turns a reconciled fleet configuration into a concrete
// capture plan: which cameras to open, under what names, with which control
// and processing parameters, and where their artifacts go on disk.
//
// The package deliberately stops at the hardware boundary. Plan and the
// path helpers are pure; Driver and Session are the interfaces a real
// camera backend implements.
//
// # Artifact Layout
//
// Each planned camera owns a directory tree under the fleet's output dir:
//
//	<outputDir>/<prefix>/PNG
//	<outputDir>/<prefix>/PGM
//	<outputDir>/<prefix>/PLY
//
// where <prefix> is the sanitized camera tag (e.g. "CAM23074101_left").
// Artifact files within are named <prefix>_<timestamp>.<ext>.
package capture
