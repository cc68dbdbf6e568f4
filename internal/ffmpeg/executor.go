package ffmpeg

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	errs "github.com/trimux/trimux/internal/errors"
	"github.com/trimux/trimux/internal/util"
)

// Progress carries one parsed progress update from the transcoder.
type Progress struct {
	Percent     float32
	Speed       float32
	FPS         float32
	ETA         time.Duration
	Bitrate     string
	ElapsedSecs float64
}

// ProgressCallback is invoked with progress updates during a transcode.
type ProgressCallback func(Progress)

// Result is the outcome of a remux invocation.
type Result struct {
	Success bool
	Error   error
	Stderr  string
}

var timeRegex = regexp.MustCompile(`time=(\d{2}:\d{2}:\d{2}\.?\d*)`)

// RunTranscode executes a remux invocation, streaming stderr for
// progress. durationSecs sizes the percent estimate; zero disables it.
func RunTranscode(ctx context.Context, args []string, durationSecs float64, callback ProgressCallback) Result {
	cmd := exec.CommandContext(ctx, Binary, args...)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return Result{Error: errs.NewCommandStartError(Binary, err)}
	}

	if err := cmd.Start(); err != nil {
		return Result{Error: errs.NewCommandStartError(Binary, err)}
	}

	var stderrBuilder strings.Builder
	parseProgress(stderr, &stderrBuilder, durationSecs, callback)

	err = cmd.Wait()
	stderrStr := stderrBuilder.String()

	if err != nil {
		if ctx.Err() != nil {
			return Result{Error: errs.NewCancelledError(), Stderr: stderrStr}
		}
		return Result{Error: errs.NewCommandFailedError(Binary, exitCode(err), stderrStr), Stderr: stderrStr}
	}

	return Result{Success: true, Stderr: stderrStr}
}

// DecodeResult is the raw outcome of the decode-only validation probe.
// Interpretation lives in the validation package.
type DecodeResult struct {
	ExitCode int
	Stderr   string
	TimedOut bool
	Err      error
}

// RunDecodeCheck decodes the output file without writing anything,
// killing the process when the timeout expires.
func RunDecodeCheck(ctx context.Context, outputPath string, timeout time.Duration) DecodeResult {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, Binary, BuildDecodeCheckArgs(outputPath)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return DecodeResult{TimedOut: true, Stderr: stderr.String(), Err: ctx.Err()}
	}
	if err != nil {
		return DecodeResult{ExitCode: exitCode(err), Stderr: stderr.String(), Err: err}
	}
	return DecodeResult{Stderr: stderr.String()}
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// parseProgress reads transcoder stderr byte-wise; progress lines end
// with \r, regular output with \n, so a line scanner would stall.
func parseProgress(stderr io.Reader, stderrBuilder *strings.Builder, durationSecs float64, callback ProgressCallback) {
	reader := bufio.NewReader(stderr)
	var lineBuf strings.Builder

	for {
		b, err := reader.ReadByte()
		if err != nil {
			break
		}

		stderrBuilder.WriteByte(b)

		if b == '\r' || b == '\n' {
			line := lineBuf.String()
			lineBuf.Reset()

			if callback != nil && strings.Contains(line, "time=") {
				if progress := parseProgressLine(line, durationSecs); progress != nil {
					callback(*progress)
				}
			}
		} else {
			lineBuf.WriteByte(b)
		}
	}
}

// parseProgressLine extracts the fields of one stderr progress line.
func parseProgressLine(line string, durationSecs float64) *Progress {
	var elapsedSecs float64
	if matches := timeRegex.FindStringSubmatch(line); len(matches) >= 2 {
		if secs, ok := util.ParseFFmpegTime(matches[1]); ok {
			elapsedSecs = secs
		}
	}

	var fps, speed float32
	var bitrate string

	if v := fieldAfter(line, "fps="); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			fps = float32(f)
		}
	}
	if v := fieldAfter(line, "bitrate="); v != "" {
		bitrate = v
	}
	if v := fieldAfter(line, "speed="); v != "" {
		v = strings.TrimSuffix(v, "x")
		if s, err := strconv.ParseFloat(v, 32); err == nil {
			speed = float32(s)
		}
	}

	var percent float32
	if durationSecs > 0 {
		percent = float32((elapsedSecs / durationSecs) * 100)
		if percent > 100 {
			percent = 100
		}
	}

	var eta time.Duration
	if speed > 0 && durationSecs > 0 {
		remaining := durationSecs - elapsedSecs
		eta = time.Duration(remaining/float64(speed)) * time.Second
	}

	return &Progress{
		Percent:     percent,
		Speed:       speed,
		FPS:         fps,
		ETA:         eta,
		Bitrate:     bitrate,
		ElapsedSecs: elapsedSecs,
	}
}

// fieldAfter returns the whitespace-delimited token following a key in
// a progress line, or "" when the key is absent.
func fieldAfter(line, key string) string {
	idx := strings.Index(line, key)
	if idx < 0 {
		return ""
	}
	remaining := strings.TrimLeft(line[idx+len(key):], " ")
	if end := strings.IndexAny(remaining, " \t\r\n"); end >= 0 {
		remaining = remaining[:end]
	}
	return remaining
}
