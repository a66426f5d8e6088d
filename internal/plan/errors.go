package plan

import (
	"fmt"
	"strings"
)

// ValidationError reports missing or invalid user input. The backend is
// never called when one is returned.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "validation: missing or invalid fields: " + strings.Join(e.Missing, ", ")
}

// BackendCallError wraps a network/auth/quota failure from the generation
// backend. No automatic retry happens beyond the adapter's own
// config-fallback.
type BackendCallError struct {
	Stage string // "generate" or "repair"
	Err   error
}

func (e *BackendCallError) Error() string {
	return fmt.Sprintf("backend call (%s): %v", e.Stage, e.Err)
}

func (e *BackendCallError) Unwrap() error { return e.Err }

// MalformedOutputError signals that model output failed strict JSON parse.
// It carries the offending text so the repair pass can forward it.
type MalformedOutputError struct {
	Text string
	Err  error
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("malformed output: %v", e.Err)
}

func (e *MalformedOutputError) Unwrap() error { return e.Err }

// UnrecoverableParseError is the terminal failure after the single repair
// attempt also produced unparseable text. Text is the exact last attempt,
// surfaced verbatim so an operator can diagnose prompt or backend drift.
type UnrecoverableParseError struct {
	Text string
	Err  error
}

func (e *UnrecoverableParseError) Error() string {
	return fmt.Sprintf("unrecoverable parse failure after repair: %v\nlast text:\n%s", e.Err, e.Text)
}

func (e *UnrecoverableParseError) Unwrap() error { return e.Err }
