package fleet

import "fmt"

// ValueError reports a config value that could not be converted to the type
// its key requires. It is a fatal condition for the Load call that hit it:
// silently defaulting a mistyped number could mask a real operator mistake,
// so the error propagates instead.
type ValueError struct {
	Key   string // full dotted key, e.g. "device.0.params.maxrangem"
	Value string // the offending stored text
	Err   error  // underlying strconv error
}

// Error implements the error interface.
func (e *ValueError) Error() string {
	return fmt.Sprintf("config key %q: invalid value %q: %v", e.Key, e.Value, e.Err)
}

// Unwrap returns the underlying conversion error.
func (e *ValueError) Unwrap() error {
	return e.Err
}
