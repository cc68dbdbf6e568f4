package reporter

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/trimux/trimux/internal/util"
)

// TerminalReporter outputs human-friendly text to the terminal.
type TerminalReporter struct {
	mu         sync.Mutex
	progress   *progressbar.ProgressBar
	maxPercent float32
	verbose    bool
	cyan       *color.Color
	green      *color.Color
	yellow     *color.Color
	red        *color.Color
	magenta    *color.Color
	bold       *color.Color
}

// NewTerminalReporter creates a new terminal reporter.
func NewTerminalReporter(verbose bool) *TerminalReporter {
	return &TerminalReporter{
		verbose: verbose,
		cyan:    color.New(color.FgCyan, color.Bold),
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow, color.Bold),
		red:     color.New(color.FgRed, color.Bold),
		magenta: color.New(color.FgMagenta),
		bold:    color.New(color.Bold),
	}
}

func (r *TerminalReporter) finishProgress() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress != nil {
		_ = r.progress.Finish()
		r.progress = nil
	}
	r.maxPercent = 0
}

func (r *TerminalReporter) section(name string) {
	fmt.Println()
	_, _ = r.cyan.Println(name)
}

func (r *TerminalReporter) RunStarted(info RunStartInfo) {
	r.section("RUN")
	fmt.Printf("  Processing %d files in %s\n", info.TotalFiles, r.bold.Sprint(info.InputDir))
	for i, name := range info.FileList {
		fmt.Printf("  %d. %s\n", i+1, name)
	}
}

func (r *TerminalReporter) FileStarted(ctx FileContext) {
	fmt.Printf("\nFile %s of %d: %s\n",
		r.bold.Sprint(ctx.Index), ctx.Total, r.bold.Sprint(ctx.Filename))
}

func (r *TerminalReporter) Analysis(summary AnalysisSummary) {
	r.section("SUMMARY")
	fmt.Printf("  Analyzing: %s\n", r.bold.Sprint(summary.Filename))
	for _, line := range strings.Split(summary.Summary, "\n") {
		fmt.Printf("  %s\n", line)
	}
}

func (r *TerminalReporter) NoChanges(filename string) {
	fmt.Println()
	fmt.Printf("  %s No changes needed for '%s'. Skipping.\n", r.green.Sprint("·"), filename)
}

func (r *TerminalReporter) PlanReview(review PlanReview) {
	r.section("FFMPEG COMMAND (DRY-RUN)")
	fmt.Printf("  %s\n", review.CommandLine)

	r.section("COMMAND EXPLANATION")
	for _, line := range strings.Split(review.Explanation, "\n") {
		fmt.Printf("  %s\n", line)
	}

	r.section("RESULTING STREAMS (DRY-RUN)")
	for _, line := range strings.Split(review.ResultingStreams, "\n") {
		fmt.Printf("  %s\n", line)
	}
}

func (r *TerminalReporter) TranscodeStarted(start TranscodeStart) {
	fmt.Println()
	fmt.Printf("  Reencoding '%s' → '%s' ...\n", start.InputFile, start.OutputFile)

	r.finishProgress()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.progress = progressbar.NewOptions64(
		100,
		progressbar.OptionSetDescription(""),
		progressbar.OptionSetWidth(40),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "Remuxing [",
			BarEnd:        "]",
		}),
	)
}

func (r *TerminalReporter) TranscodeProgress(progress ProgressSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.progress == nil {
		return
	}

	clamped := progress.Percent
	if clamped > 100 {
		clamped = 100
	}
	if clamped < 0 {
		clamped = 0
	}

	if clamped >= r.maxPercent {
		r.maxPercent = clamped
		_ = r.progress.Set64(int64(clamped))
	}

	desc := fmt.Sprintf("speed %.1fx, eta %s",
		progress.Speed, util.FormatDurationFromSecs(int64(progress.ETA.Seconds())))
	r.progress.Describe(desc)
}

func (r *TerminalReporter) TranscodeFailed(message string) {
	r.finishProgress()
	fmt.Println()
	_, _ = r.red.Printf("  %s\n", message)
}

func (r *TerminalReporter) MediaComparison(comparison MediaComparison) {
	r.finishProgress()

	r.section("MEDIAINFO")
	fmt.Printf("  Media Info for %s BEFORE reencode operation:\n", r.bold.Sprint(comparison.InputName))
	for _, line := range strings.Split(comparison.Before, "\n") {
		fmt.Printf("    %s\n", line)
	}
	fmt.Println("  ========")
	fmt.Printf("  Media Info for %s AFTER reencode operation:\n", r.bold.Sprint(comparison.OutputName))
	for _, line := range strings.Split(comparison.After, "\n") {
		fmt.Printf("    %s\n", line)
	}
}

func (r *TerminalReporter) ValidationComplete(summary ValidationSummary) {
	r.finishProgress()

	r.section("VALIDATION")

	if summary.Passed {
		fmt.Printf("  %s\n", r.green.Add(color.Bold).Sprint("The output file has passed validation checks"))
	} else {
		fmt.Printf("  %s\n", r.red.Sprint("The output file failed validation checks"))
	}
	fmt.Printf("  Details: %s\n", summary.Message)

	maxLen := 0
	for _, step := range summary.Steps {
		if len(step.Name) > maxLen {
			maxLen = len(step.Name)
		}
	}
	for _, step := range summary.Steps {
		var status string
		if step.Passed {
			status = r.green.Sprint("✓")
		} else {
			status = r.red.Sprint("✗")
		}
		paddedName := fmt.Sprintf("%-*s", maxLen, step.Name)
		fmt.Printf("  - %s: %s (%s)\n", paddedName, status, step.Details)
	}
}

func (r *TerminalReporter) FileComplete(outcome FileOutcome) {
	r.finishProgress()

	fmt.Println()
	var marker string
	switch outcome.State {
	case "accepted":
		marker = r.green.Add(color.Bold).Sprint("✓")
	case "discarded", "skipped":
		marker = r.yellow.Sprint("·")
	default:
		marker = r.red.Sprint("✗")
	}
	fmt.Printf("%s %s\n", marker, r.bold.Sprint(outcome.Message))
}

func (r *TerminalReporter) RunComplete(summary RunSummary) {
	r.section("RUN SUMMARY")
	fmt.Printf("  %s\n", r.bold.Sprintf("%d files visited", summary.TotalFiles))
	fmt.Printf("  Accepted: %s  Discarded: %s  Skipped: %s  Failed: %s\n",
		r.green.Sprint(summary.Accepted),
		r.yellow.Sprint(summary.Discarded),
		r.bold.Sprint(summary.Skipped),
		r.red.Sprint(summary.Failed))
	fmt.Printf("  Time: %s\n", util.FormatDurationFromSecs(int64(summary.Duration.Seconds())))
}

func (r *TerminalReporter) Warning(message string) {
	fmt.Println()
	_, _ = r.yellow.Printf("WARN: %s\n", message)
}

func (r *TerminalReporter) Error(err ReporterError) {
	_, _ = fmt.Fprintln(os.Stderr)
	_, _ = r.red.Fprintf(os.Stderr, "ERROR %s\n", err.Title)
	_, _ = fmt.Fprintf(os.Stderr, "  %s\n", err.Message)
	if err.Context != "" {
		_, _ = fmt.Fprintf(os.Stderr, "  Context: %s\n", err.Context)
	}
	if err.Suggestion != "" {
		_, _ = fmt.Fprintf(os.Stderr, "  Suggestion: %s\n", err.Suggestion)
	}
}

func (r *TerminalReporter) Verbose(message string) {
	if !r.verbose {
		return
	}
	fmt.Printf("  %s %s\n", r.magenta.Sprint("›"), message)
}
