package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// JSONReporter outputs NDJSON events, one object per line, for
// supervising processes.
type JSONReporter struct {
	writer             io.Writer
	mu                 sync.Mutex
	lastProgressBucket int
	lastProgressTime   time.Time
}

// NewJSONReporter creates a new JSON reporter that writes to stdout.
func NewJSONReporter() *JSONReporter {
	return NewJSONReporterWithWriter(os.Stdout)
}

// NewJSONReporterWithWriter creates a JSON reporter with a custom writer.
func NewJSONReporterWithWriter(w io.Writer) *JSONReporter {
	return &JSONReporter{
		writer:             w,
		lastProgressBucket: -1,
	}
}

func (r *JSONReporter) timestamp() int64 {
	return time.Now().Unix()
}

func (r *JSONReporter) write(v interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintln(r.writer, string(data))
}

func (r *JSONReporter) RunStarted(info RunStartInfo) {
	r.write(map[string]interface{}{
		"type":        "run_started",
		"total_files": info.TotalFiles,
		"file_list":   info.FileList,
		"input_dir":   info.InputDir,
		"timestamp":   r.timestamp(),
	})
}

func (r *JSONReporter) FileStarted(ctx FileContext) {
	r.write(map[string]interface{}{
		"type":        "file_started",
		"index":       ctx.Index,
		"total_files": ctx.Total,
		"filename":    ctx.Filename,
		"timestamp":   r.timestamp(),
	})
}

func (r *JSONReporter) Analysis(summary AnalysisSummary) {
	r.write(map[string]interface{}{
		"type":      "analysis",
		"filename":  summary.Filename,
		"summary":   summary.Summary,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) NoChanges(filename string) {
	r.write(map[string]interface{}{
		"type":      "no_changes",
		"filename":  filename,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) PlanReview(review PlanReview) {
	r.write(map[string]interface{}{
		"type":              "plan_review",
		"command_line":      review.CommandLine,
		"explanation":       review.Explanation,
		"resulting_streams": review.ResultingStreams,
		"notes":             review.Notes,
		"timestamp":         r.timestamp(),
	})
}

func (r *JSONReporter) TranscodeStarted(start TranscodeStart) {
	r.mu.Lock()
	r.lastProgressBucket = -1
	r.lastProgressTime = time.Time{}
	r.mu.Unlock()

	r.write(map[string]interface{}{
		"type":        "transcode_started",
		"attempt_id":  start.AttemptID,
		"input_file":  start.InputFile,
		"output_file": start.OutputFile,
		"timestamp":   r.timestamp(),
	})
}

func (r *JSONReporter) TranscodeProgress(progress ProgressSnapshot) {
	const progressBucketSize = 1
	const minInterval = 5 * time.Second

	bucket := int(progress.Percent) / progressBucketSize
	now := time.Now()

	r.mu.Lock()
	intervalElapsed := r.lastProgressTime.IsZero() || now.Sub(r.lastProgressTime) >= minInterval
	shouldEmit := bucket > r.lastProgressBucket || intervalElapsed || progress.Percent >= 99.0

	if !shouldEmit {
		r.mu.Unlock()
		return
	}

	if bucket > r.lastProgressBucket {
		r.lastProgressBucket = bucket
	}
	r.lastProgressTime = now
	r.mu.Unlock()

	r.write(map[string]interface{}{
		"type":        "transcode_progress",
		"percent":     progress.Percent,
		"speed":       progress.Speed,
		"fps":         progress.FPS,
		"eta_seconds": int64(progress.ETA.Seconds()),
		"bitrate":     progress.Bitrate,
		"timestamp":   r.timestamp(),
	})
}

func (r *JSONReporter) TranscodeFailed(message string) {
	r.write(map[string]interface{}{
		"type":      "transcode_failed",
		"message":   message,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) MediaComparison(comparison MediaComparison) {
	r.write(map[string]interface{}{
		"type":        "media_comparison",
		"input_name":  comparison.InputName,
		"output_name": comparison.OutputName,
		"before":      comparison.Before,
		"after":       comparison.After,
		"timestamp":   r.timestamp(),
	})
}

func (r *JSONReporter) ValidationComplete(summary ValidationSummary) {
	steps := make([]map[string]interface{}, len(summary.Steps))
	for i, step := range summary.Steps {
		steps[i] = map[string]interface{}{
			"step":    step.Name,
			"passed":  step.Passed,
			"details": step.Details,
		}
	}

	r.write(map[string]interface{}{
		"type":              "validation_complete",
		"validation_passed": summary.Passed,
		"message":           summary.Message,
		"validation_steps":  steps,
		"timestamp":         r.timestamp(),
	})
}

func (r *JSONReporter) FileComplete(outcome FileOutcome) {
	r.write(map[string]interface{}{
		"type":      "file_complete",
		"filename":  outcome.Filename,
		"state":     outcome.State,
		"message":   outcome.Message,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) RunComplete(summary RunSummary) {
	r.write(map[string]interface{}{
		"type":             "run_complete",
		"total_files":      summary.TotalFiles,
		"accepted":         summary.Accepted,
		"discarded":        summary.Discarded,
		"skipped":          summary.Skipped,
		"failed":           summary.Failed,
		"duration_seconds": int64(summary.Duration.Seconds()),
		"timestamp":        r.timestamp(),
	})
}

func (r *JSONReporter) Warning(message string) {
	r.write(map[string]interface{}{
		"type":      "warning",
		"message":   message,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) Error(err ReporterError) {
	r.write(map[string]interface{}{
		"type":       "error",
		"title":      err.Title,
		"message":    err.Message,
		"context":    err.Context,
		"suggestion": err.Suggestion,
		"timestamp":  r.timestamp(),
	})
}

func (r *JSONReporter) Verbose(message string) {
	r.write(map[string]interface{}{
		"type":      "verbose",
		"message":   message,
		"timestamp": r.timestamp(),
	})
}
