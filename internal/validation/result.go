// Package validation decides whether a transcode output is safe to
// accept: exact duration comparison first, a full decode test when the
// durations disagree or are unknown.
package validation

// Result is the outcome of validating one output file.
type Result struct {
	Passed bool
	// Message is the single human-readable verdict line.
	Message string
	Steps   []Step
}

// Step is one validation check with its outcome.
type Step struct {
	Name    string
	Passed  bool
	Details string
}

// Failures returns descriptions of the failed steps.
func (r *Result) Failures() []string {
	var failures []string
	for _, step := range r.Steps {
		if !step.Passed {
			failures = append(failures, step.Name+": "+step.Details)
		}
	}
	return failures
}
