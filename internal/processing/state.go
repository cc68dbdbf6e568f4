// Package processing drives one file through plan, review, transcode,
// validation, and the accept/discard decision, then sequences a whole
// run of files.
package processing

// State is the controller's position in a file's lifecycle. Transitions
// only move forward; a retry starts a fresh attempt from Executing.
type State int

const (
	// StatePlanned: plan produced, awaiting the review decision.
	StatePlanned State = iota
	// StateSkipped: no-op plan or the user chose the next file.
	StateSkipped
	// StateExecuting: a transcode attempt is running.
	StateExecuting
	// StateExecutionFailed: the transcoder errored or produced no output.
	StateExecutionFailed
	// StateValidating: output exists, validation running.
	StateValidating
	// StateValidationPassed: awaiting the accept decision.
	StateValidationPassed
	// StateValidationFailed: awaiting the retry decision.
	StateValidationFailed
	// StateAccepted: original atomically replaced by the output.
	StateAccepted
	// StateDiscarded: output removed, original kept.
	StateDiscarded
)

func (s State) String() string {
	switch s {
	case StatePlanned:
		return "planned"
	case StateSkipped:
		return "skipped"
	case StateExecuting:
		return "executing"
	case StateExecutionFailed:
		return "execution_failed"
	case StateValidating:
		return "validating"
	case StateValidationPassed:
		return "validation_passed"
	case StateValidationFailed:
		return "validation_failed"
	case StateAccepted:
		return "accepted"
	case StateDiscarded:
		return "discarded"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state ends a file's processing.
func (s State) Terminal() bool {
	switch s {
	case StateSkipped, StateExecutionFailed, StateAccepted, StateDiscarded:
		return true
	default:
		return false
	}
}
