package validation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/trimux/trimux/internal/ffmpeg"
	"github.com/trimux/trimux/internal/ffprobe"
)

// Verdict messages. These are the only strings Validate produces for
// Message, so callers and logs stay grep-stable.
const (
	msgDurationsMatch = "Durations match exactly (%d ms)."
	msgDecodePassed   = "Decode test passed with no errors (duration mismatch accepted)."
	msgDecodeFailed   = "Decode test reported errors or non-zero exit code."
	msgDecodeTimeout  = "Decode test timed out (validation failed)."
)

// DecodeOutcome is the raw result of the decode probe.
type DecodeOutcome struct {
	ExitCode int
	Stderr   string
	TimedOut bool
}

// Prober supplies the measurements Validate needs. Production code uses
// DefaultProber; tests inject canned values.
type Prober interface {
	// DurationMS returns a file's duration in milliseconds; ok is false
	// when the duration cannot be determined.
	DurationMS(path string) (ms int64, ok bool)

	// DecodeCheck decodes the file without writing output.
	DecodeCheck(ctx context.Context, path string) DecodeOutcome
}

// DefaultProber measures with ffprobe and ffmpeg.
type DefaultProber struct {
	// DecodeTimeout bounds the decode test; the process is killed on
	// expiry and the check fails.
	DecodeTimeout time.Duration
}

func (p DefaultProber) DurationMS(path string) (int64, bool) {
	return ffprobe.GetDurationMS(path)
}

func (p DefaultProber) DecodeCheck(ctx context.Context, path string) DecodeOutcome {
	res := ffmpeg.RunDecodeCheck(ctx, path, p.DecodeTimeout)
	return DecodeOutcome{ExitCode: res.ExitCode, Stderr: res.Stderr, TimedOut: res.TimedOut}
}

// Validate compares input and output durations and falls back to the
// decode test on any disagreement. Unknown durations never pass on
// their own; they force the decode test.
func Validate(ctx context.Context, prober Prober, inputPath, outputPath string) *Result {
	inMS, inOK := prober.DurationMS(inputPath)
	outMS, outOK := prober.DurationMS(outputPath)

	durationDetails := durationStepDetails(inMS, inOK, outMS, outOK)
	if inOK && outOK && inMS == outMS {
		msg := fmt.Sprintf(msgDurationsMatch, inMS)
		return &Result{
			Passed:  true,
			Message: msg,
			Steps: []Step{
				{Name: "Duration comparison", Passed: true, Details: msg},
			},
		}
	}

	steps := []Step{
		{Name: "Duration comparison", Passed: false, Details: durationDetails},
	}

	outcome := prober.DecodeCheck(ctx, outputPath)
	switch {
	case outcome.TimedOut:
		return &Result{
			Message: msgDecodeTimeout,
			Steps:   append(steps, Step{Name: "Decode test", Details: msgDecodeTimeout}),
		}
	case outcome.ExitCode == 0 && strings.TrimSpace(outcome.Stderr) == "":
		return &Result{
			Passed:  true,
			Message: msgDecodePassed,
			Steps:   append(steps, Step{Name: "Decode test", Passed: true, Details: msgDecodePassed}),
		}
	default:
		return &Result{
			Message: msgDecodeFailed,
			Steps:   append(steps, Step{Name: "Decode test", Details: msgDecodeFailed}),
		}
	}
}

func durationStepDetails(inMS int64, inOK bool, outMS int64, outOK bool) string {
	switch {
	case !inOK && !outOK:
		return "Both durations unknown"
	case !inOK:
		return "Input duration unknown"
	case !outOK:
		return "Output duration unknown"
	default:
		return fmt.Sprintf("Durations differ: input %d ms, output %d ms", inMS, outMS)
	}
}
