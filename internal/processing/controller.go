package processing

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/trimux/trimux/internal/config"
	errs "github.com/trimux/trimux/internal/errors"
	"github.com/trimux/trimux/internal/ffmpeg"
	"github.com/trimux/trimux/internal/ffprobe"
	"github.com/trimux/trimux/internal/inventory"
	"github.com/trimux/trimux/internal/logging"
	"github.com/trimux/trimux/internal/mediainfo"
	"github.com/trimux/trimux/internal/prompt"
	"github.com/trimux/trimux/internal/reporter"
	"github.com/trimux/trimux/internal/rules"
	"github.com/trimux/trimux/internal/util"
	"github.com/trimux/trimux/internal/validation"
)

// Prober measures source files.
type Prober interface {
	Streams(path string) ([]ffprobe.Stream, error)
	DurationMS(path string) (int64, bool)
}

// Transcoder runs a rendered command.
type Transcoder interface {
	Run(ctx context.Context, args []string, durationSecs float64, cb ffmpeg.ProgressCallback) ffmpeg.Result
}

// Validator decides whether an output is safe to accept.
type Validator interface {
	Validate(ctx context.Context, inputPath, outputPath string) *validation.Result
}

// Inspector describes a file for the before/after comparison.
type Inspector interface {
	Describe(path string) string
}

// FileResult is the terminal outcome for one file.
type FileResult struct {
	Filename string
	State    State
	Message  string
}

// Controller walks one file through the state machine. All side effects
// go through the injected collaborators.
type Controller struct {
	cfg        *config.Config
	prober     Prober
	transcoder Transcoder
	validator  Validator
	inspector  Inspector
	decider    prompt.Decider
	rep        reporter.Reporter
	log        *logging.Logger
}

// NewController wires a controller from its collaborators. A nil
// reporter is replaced with the null reporter.
func NewController(
	cfg *config.Config,
	prober Prober,
	transcoder Transcoder,
	validator Validator,
	inspector Inspector,
	decider prompt.Decider,
	rep reporter.Reporter,
	log *logging.Logger,
) *Controller {
	if rep == nil {
		rep = reporter.NullReporter{}
	}
	return &Controller{
		cfg:        cfg,
		prober:     prober,
		transcoder: transcoder,
		validator:  validator,
		inspector:  inspector,
		decider:    decider,
		rep:        rep,
		log:        log,
	}
}

// ProcessFile runs the full lifecycle for one file. A quit decision
// returns a cancelled error; the orchestrator stops the run on it.
func (c *Controller) ProcessFile(ctx context.Context, inputPath string) (FileResult, error) {
	filename := util.GetFilename(inputPath)

	inv := c.probe(inputPath)
	c.rep.Analysis(reporter.AnalysisSummary{
		Filename: filename,
		Summary:  inventory.Summarize(inv),
	})

	plan := rules.Apply(inv, rules.Options{
		SynthesisChannels: c.cfg.SynthesisChannels,
		SynthesisBitrate:  c.cfg.SynthesisBitrate,
	})

	if plan.IsNoOp() {
		c.rep.NoChanges(filename)
		c.log.Info("no changes needed for %s", filename)
		return FileResult{
			Filename: filename,
			State:    StateSkipped,
			Message:  fmt.Sprintf("No changes needed for '%s'. Skipping.", filename),
		}, nil
	}

	outputPath := util.OutputArtifactPath(inputPath)
	args := ffmpeg.BuildRemuxArgs(inputPath, outputPath, plan)

	c.rep.PlanReview(reporter.PlanReview{
		CommandLine:      ffmpeg.CommandLine(args),
		Explanation:      ffmpeg.Explain(plan),
		ResultingStreams: ffmpeg.SummarizeResulting(inv, plan),
		Notes:            plan.Notes,
	})

	decision, err := c.decider.ReviewPlan()
	if err != nil {
		return FileResult{}, err
	}
	switch decision {
	case prompt.DecisionNext:
		c.log.Info("skipped %s at review", filename)
		return FileResult{
			Filename: filename,
			State:    StateSkipped,
			Message:  fmt.Sprintf("Skipped '%s'.", filename),
		}, nil
	case prompt.DecisionQuit:
		c.log.Info("quit requested at review of %s", filename)
		return FileResult{}, errs.NewCancelledError()
	}

	before := c.inspector.Describe(inputPath)
	durationSecs := c.inputDurationSecs(inputPath)

	return c.attemptLoop(ctx, inputPath, outputPath, args, filename, before, durationSecs)
}

// attemptLoop runs transcode attempts until a terminal state. Each
// attempt starts by removing any stale artifact from a prior one.
func (c *Controller) attemptLoop(
	ctx context.Context,
	inputPath, outputPath string,
	args []string,
	filename, before string,
	durationSecs float64,
) (FileResult, error) {
	for {
		if err := ctx.Err(); err != nil {
			return FileResult{}, errs.NewCancelledError()
		}

		if err := util.RemoveIfExists(outputPath); err != nil {
			return FileResult{}, errs.NewIOError("failed to remove stale output artifact", err)
		}

		attemptID := uuid.NewString()
		c.log.Info("attempt %s: transcoding %s -> %s", attemptID, inputPath, outputPath)
		c.rep.TranscodeStarted(reporter.TranscodeStart{
			AttemptID:  attemptID,
			InputFile:  inputPath,
			OutputFile: outputPath,
		})

		res := c.transcoder.Run(ctx, args, durationSecs, func(p ffmpeg.Progress) {
			c.rep.TranscodeProgress(reporter.ProgressSnapshot{
				Percent: p.Percent,
				Speed:   p.Speed,
				FPS:     p.FPS,
				ETA:     p.ETA,
				Bitrate: p.Bitrate,
			})
		})

		if errs.IsCancelled(res.Error) {
			return FileResult{}, res.Error
		}

		if !res.Success || !util.FileExists(outputPath) {
			c.log.Error("attempt %s failed: %v", attemptID, res.Error)
			c.rep.TranscodeFailed("ffmpeg reported an error or output file was not created.")

			retry, err := c.decider.Confirm("Retry the reencode operation?")
			if err != nil {
				return FileResult{}, err
			}
			if retry {
				continue
			}
			_ = util.RemoveIfExists(outputPath)
			return FileResult{
				Filename: filename,
				State:    StateExecutionFailed,
				Message:  fmt.Sprintf("Transcode of '%s' failed; original file kept.", filename),
			}, nil
		}

		after := c.inspector.Describe(outputPath)
		c.rep.MediaComparison(reporter.MediaComparison{
			InputName:  filename,
			OutputName: util.GetFilename(outputPath),
			Before:     before,
			After:      after,
		})

		vres := c.validator.Validate(ctx, inputPath, outputPath)
		c.rep.ValidationComplete(reporter.ValidationSummary{
			Passed:  vres.Passed,
			Message: vres.Message,
			Steps:   toReporterSteps(vres.Steps),
		})
		c.log.Info("attempt %s validation: passed=%v %s", attemptID, vres.Passed, vres.Message)

		if vres.Passed {
			return c.acceptOrDiscard(inputPath, outputPath, filename)
		}

		retry, err := c.decider.Confirm("Retry the reencode operation?")
		if err != nil {
			return FileResult{}, err
		}
		if retry {
			continue
		}
		if err := util.RemoveIfExists(outputPath); err != nil {
			return FileResult{}, errs.NewIOError("failed to remove rejected output artifact", err)
		}
		return FileResult{
			Filename: filename,
			State:    StateDiscarded,
			Message:  "Reencode discarded; moving to next file.",
		}, nil
	}
}

// acceptOrDiscard asks the accept question after a passed validation.
func (c *Controller) acceptOrDiscard(inputPath, outputPath, filename string) (FileResult, error) {
	question := fmt.Sprintf("Accept reencode and replace '%s' with '%s'?",
		filename, util.GetFilename(outputPath))
	accept, err := c.decider.Confirm(question)
	if err != nil {
		return FileResult{}, err
	}

	if accept {
		if err := util.ReplaceFile(outputPath, inputPath); err != nil {
			return FileResult{}, errs.NewIOError("failed to replace original with output", err)
		}
		c.log.Info("accepted: %s replaced by %s", inputPath, outputPath)
		return FileResult{
			Filename: filename,
			State:    StateAccepted,
			Message:  "Original file has been replaced with the reencoded file.",
		}, nil
	}

	if err := util.RemoveIfExists(outputPath); err != nil {
		return FileResult{}, errs.NewIOError("failed to remove discarded output artifact", err)
	}
	c.log.Info("discarded: %s kept, %s removed", inputPath, outputPath)
	return FileResult{
		Filename: filename,
		State:    StateDiscarded,
		Message:  "Reencode discarded; original file kept.",
	}, nil
}

// probe degrades probe failures to an empty inventory; a file the
// prober cannot read still flows through the rule engine, which will
// note the missing English source.
func (c *Controller) probe(inputPath string) inventory.Inventory {
	streams, err := c.prober.Streams(inputPath)
	if err != nil {
		c.rep.Warning(fmt.Sprintf("Could not probe %s: %v", util.GetFilename(inputPath), err))
		c.log.Warn("probe failed for %s: %v", inputPath, err)
		return inventory.Inventory{}
	}
	return inventory.FromStreams(streams)
}

func (c *Controller) inputDurationSecs(inputPath string) float64 {
	if ms, ok := c.prober.DurationMS(inputPath); ok {
		return float64(ms) / 1000.0
	}
	return 0
}

func toReporterSteps(steps []validation.Step) []reporter.ValidationStep {
	out := make([]reporter.ValidationStep, len(steps))
	for i, s := range steps {
		out[i] = reporter.ValidationStep{Name: s.Name, Passed: s.Passed, Details: s.Details}
	}
	return out
}

// DefaultProber measures with ffprobe.
type DefaultProber struct{}

func (DefaultProber) Streams(path string) ([]ffprobe.Stream, error) {
	return ffprobe.Probe(path)
}

func (DefaultProber) DurationMS(path string) (int64, bool) {
	return ffprobe.GetDurationMS(path)
}

// DefaultTranscoder shells out to ffmpeg.
type DefaultTranscoder struct{}

func (DefaultTranscoder) Run(ctx context.Context, args []string, durationSecs float64, cb ffmpeg.ProgressCallback) ffmpeg.Result {
	return ffmpeg.RunTranscode(ctx, args, durationSecs, cb)
}

// DefaultValidator validates with the standard prober.
type DefaultValidator struct {
	Cfg *config.Config
}

func (v DefaultValidator) Validate(ctx context.Context, inputPath, outputPath string) *validation.Result {
	prober := validation.DefaultProber{DecodeTimeout: v.Cfg.DecodeTimeout()}
	return validation.Validate(ctx, prober, inputPath, outputPath)
}

// DefaultInspector describes files with MediaInfo.
type DefaultInspector struct{}

func (DefaultInspector) Describe(path string) string {
	return mediainfo.Describe(path)
}
