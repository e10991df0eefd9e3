// Package logging provides structured logging for the stereorig tool.
//
// This package wraps zap with convenience functions for the logging patterns
// used across the tool: configuration file activity, discovery results and
// fleet reconciliation outcomes.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: detailed internals (parsed keys, per-slot decisions)
//   - Info: normal operations (config loaded, fleet reconciled, file written)
//   - Warn: non-fatal issues (duplicate serial skipped, missing output dir)
//   - Error: failures (config not writable, discovery errors)
//
// # Configuration
//
// Logging is silent by default so CLI output stays clean. Set the
// STEREORIG_LOG_LEVEL environment variable to enable it:
//
//	STEREORIG_LOG_LEVEL=debug stereorig reconcile
//
// Commands initialize the logger at startup:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging
