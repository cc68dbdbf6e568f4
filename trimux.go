// Package trimux provides a Go library for policy-driven stream cleanup
// of media files.
//
// Trimux inspects a file's streams, plans which audio and subtitle
// tracks to keep, drop, or synthesize under an English-surround policy,
// renders the plan as an ffmpeg invocation, and when executing
// validates the output before atomically replacing the original.
//
// Basic usage:
//
//	engine, err := trimux.New(
//	    trimux.WithAutoAccept(),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	plan, err := engine.PlanFile("movie.mkv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(plan.CommandLine)
package trimux

import (
	"context"
	"time"

	"github.com/trimux/trimux/internal/config"
	"github.com/trimux/trimux/internal/discovery"
	"github.com/trimux/trimux/internal/ffmpeg"
	"github.com/trimux/trimux/internal/ffprobe"
	"github.com/trimux/trimux/internal/inventory"
	"github.com/trimux/trimux/internal/processing"
	"github.com/trimux/trimux/internal/prompt"
	"github.com/trimux/trimux/internal/reporter"
	"github.com/trimux/trimux/internal/rules"
	"github.com/trimux/trimux/internal/util"
)

// Reporter receives pipeline events. See the reporter package types for
// the event payloads.
type Reporter = reporter.Reporter

// NullReporter discards all events.
type NullReporter = reporter.NullReporter

// Engine is the main entry point.
type Engine struct {
	config   *config.Config
	reporter reporter.Reporter
	decider  prompt.Decider
}

// FilePlan is the dry-run view of one file's plan.
type FilePlan struct {
	Filename         string
	Summary          string
	NoOp             bool
	CommandLine      string
	Explanation      string
	ResultingStreams string
	Notes            []string
}

// FileOutcome is the terminal result for one processed file.
type FileOutcome struct {
	Filename string
	// State is one of: accepted, discarded, skipped, execution_failed.
	State   string
	Message string
}

// RunResult aggregates a directory run.
type RunResult struct {
	Results    []FileOutcome
	TotalFiles int
	Accepted   int
	Discarded  int
	Skipped    int
	Failed     int
}

// Option configures the engine.
type Option func(*Engine)

// New creates an Engine with the given options. Without WithAutoAccept
// the engine reviews plans but never executes them, which is safe for
// non-interactive callers.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		config:   config.NewConfig("."),
		reporter: reporter.NullReporter{},
		decider:  prompt.AutoDecider{Accept: false},
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.config.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// WithAutoAccept executes every plan and accepts every validated
// output without prompting.
func WithAutoAccept() Option {
	return func(e *Engine) {
		e.config.AssumeYes = true
		e.decider = prompt.AutoDecider{Accept: true}
	}
}

// WithDecodeTimeout bounds the decode validation probe.
func WithDecodeTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.config.DecodeTimeoutSecs = int(d / time.Second)
	}
}

// WithSynthesisBitrate sets the bitrate of a synthesized AC3 track.
func WithSynthesisBitrate(bitrate string) Option {
	return func(e *Engine) {
		e.config.SynthesisBitrate = bitrate
	}
}

// WithSynthesisChannels sets the channel count of a synthesized AC3 track.
func WithSynthesisChannels(channels int) Option {
	return func(e *Engine) {
		e.config.SynthesisChannels = channels
	}
}

// WithReporter routes pipeline events to a custom reporter.
func WithReporter(rep Reporter) Option {
	return func(e *Engine) {
		if rep != nil {
			e.reporter = rep
		}
	}
}

// PlanFile probes a file and returns its dry-run plan without touching
// anything on disk.
func (e *Engine) PlanFile(path string) (*FilePlan, error) {
	streams, err := ffprobe.Probe(path)
	if err != nil {
		// Probe failures degrade to an empty inventory; the plan then
		// records why nothing can be done.
		streams = nil
	}
	inv := inventory.FromStreams(streams)

	plan := rules.Apply(inv, rules.Options{
		SynthesisChannels: e.config.SynthesisChannels,
		SynthesisBitrate:  e.config.SynthesisBitrate,
	})

	fp := &FilePlan{
		Filename: util.GetFilename(path),
		Summary:  inventory.Summarize(inv),
		NoOp:     plan.IsNoOp(),
		Notes:    plan.Notes,
	}
	if !fp.NoOp {
		args := ffmpeg.BuildRemuxArgs(path, util.OutputArtifactPath(path), plan)
		fp.CommandLine = ffmpeg.CommandLine(args)
		fp.Explanation = ffmpeg.Explain(plan)
		fp.ResultingStreams = ffmpeg.SummarizeResulting(inv, plan)
	}
	return fp, nil
}

// ProcessDirectory runs the full pipeline over every media file in a
// directory, sequentially.
func (e *Engine) ProcessDirectory(ctx context.Context, dir string) (*RunResult, error) {
	files, err := discovery.FindMediaFiles(dir)
	if err != nil {
		return nil, err
	}

	cfg := *e.config
	cfg.InputDir = dir

	controller := processing.NewController(
		&cfg,
		processing.DefaultProber{},
		processing.DefaultTranscoder{},
		processing.DefaultValidator{Cfg: &cfg},
		processing.DefaultInspector{},
		e.decider,
		e.reporter,
		nil,
	)

	results, err := processing.ProcessFiles(ctx, controller, files)
	if err != nil {
		return nil, err
	}

	run := &RunResult{TotalFiles: len(files)}
	for _, r := range results {
		run.Results = append(run.Results, FileOutcome{
			Filename: r.Filename,
			State:    r.State.String(),
			Message:  r.Message,
		})
		switch r.State {
		case processing.StateAccepted:
			run.Accepted++
		case processing.StateDiscarded:
			run.Discarded++
		case processing.StateSkipped:
			run.Skipped++
		case processing.StateExecutionFailed:
			run.Failed++
		}
	}
	return run, nil
}

// FindMedia finds media files in a directory, sorted by filename.
func FindMedia(dir string) ([]string, error) {
	return discovery.FindMediaFiles(dir)
}
