// Package reporter provides progress reporting interfaces and implementations.
package reporter

import "time"

// RunStartInfo describes the files a run will visit.
type RunStartInfo struct {
	TotalFiles int
	FileList   []string
	InputDir   string
}

// FileContext identifies the current file within a run.
type FileContext struct {
	Index    int // 1-based
	Total    int
	Filename string
}

// AnalysisSummary is the stream summary shown after probing a file.
type AnalysisSummary struct {
	Filename string
	Summary  string
}

// PlanReview is everything the user sees before deciding on a file: the
// exact command, the flag walkthrough, and the resulting streams.
type PlanReview struct {
	CommandLine      string
	Explanation      string
	ResultingStreams string
	Notes            []string
}

// TranscodeStart announces one transcode attempt.
type TranscodeStart struct {
	AttemptID  string
	InputFile  string
	OutputFile string
}

// ProgressSnapshot carries transcode progress.
type ProgressSnapshot struct {
	Percent float32
	Speed   float32
	FPS     float32
	ETA     time.Duration
	Bitrate string
}

// MediaComparison holds the before/after inspector output.
type MediaComparison struct {
	InputName  string
	OutputName string
	Before     string
	After      string
}

// ValidationSummary contains validation results.
type ValidationSummary struct {
	Passed  bool
	Message string
	Steps   []ValidationStep
}

// ValidationStep represents a single validation check.
type ValidationStep struct {
	Name    string
	Passed  bool
	Details string
}

// FileOutcome is the terminal state of one file.
type FileOutcome struct {
	Filename string
	// State is the final controller state name: accepted, discarded,
	// skipped, failed.
	State   string
	Message string
}

// RunSummary aggregates a finished run.
type RunSummary struct {
	TotalFiles int
	Accepted   int
	Discarded  int
	Skipped    int
	Failed     int
	Duration   time.Duration
}

// ReporterError contains error information.
type ReporterError struct {
	Title      string
	Message    string
	Context    string
	Suggestion string
}
