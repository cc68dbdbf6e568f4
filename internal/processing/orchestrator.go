package processing

import (
	"context"
	"fmt"
	"time"

	errs "github.com/trimux/trimux/internal/errors"
	"github.com/trimux/trimux/internal/reporter"
	"github.com/trimux/trimux/internal/util"
)

// ProcessFiles runs the controller over each file in order. Files are
// processed sequentially; a quit decision or context cancellation stops
// the run, any other per-file failure moves on to the next file.
func ProcessFiles(ctx context.Context, c *Controller, files []string) ([]FileResult, error) {
	rep := c.rep
	start := time.Now()

	var fileNames []string
	for _, f := range files {
		fileNames = append(fileNames, util.GetFilename(f))
	}
	rep.RunStarted(reporter.RunStartInfo{
		TotalFiles: len(files),
		FileList:   fileNames,
		InputDir:   c.cfg.InputDir,
	})

	var results []FileResult
	for idx, inputPath := range files {
		if ctx.Err() != nil {
			rep.Warning(fmt.Sprintf("Run cancelled: %v", ctx.Err()))
			break
		}

		rep.FileStarted(reporter.FileContext{
			Index:    idx + 1,
			Total:    len(files),
			Filename: util.GetFilename(inputPath),
		})

		result, err := c.ProcessFile(ctx, inputPath)
		if err != nil {
			if errs.IsCancelled(err) {
				rep.Verbose("quit requested; stopping run")
				break
			}
			rep.Error(reporter.ReporterError{
				Title:   "Processing Error",
				Message: err.Error(),
				Context: fmt.Sprintf("File: %s", inputPath),
			})
			results = append(results, FileResult{
				Filename: util.GetFilename(inputPath),
				State:    StateExecutionFailed,
				Message:  err.Error(),
			})
			continue
		}

		rep.FileComplete(reporter.FileOutcome{
			Filename: result.Filename,
			State:    result.State.String(),
			Message:  result.Message,
		})
		results = append(results, result)
	}

	rep.RunComplete(summarizeRun(results, len(files), time.Since(start)))
	return results, nil
}

func summarizeRun(results []FileResult, total int, elapsed time.Duration) reporter.RunSummary {
	summary := reporter.RunSummary{
		TotalFiles: total,
		Duration:   elapsed,
	}
	for _, r := range results {
		switch r.State {
		case StateAccepted:
			summary.Accepted++
		case StateDiscarded:
			summary.Discarded++
		case StateSkipped:
			summary.Skipped++
		case StateExecutionFailed:
			summary.Failed++
		}
	}
	return summary
}
