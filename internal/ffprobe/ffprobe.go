// Package ffprobe wraps the external prober used to inventory container streams.
package ffprobe

import (
	"encoding/json"
	"math"
	"os/exec"
	"strconv"

	"github.com/trimux/trimux/internal/errors"
)

// streamEntries selects the per-stream fields the rule engine needs.
const streamEntries = "stream=index,codec_type,codec_name,profile,width,height," +
	"channels,channel_layout,color_primaries,color_transfer,color_space" +
	":stream_tags=language,title,handler_name"

// StreamTags contains the stream tag fields the policy inspects.
type StreamTags struct {
	Language    string `json:"language"`
	Title       string `json:"title"`
	HandlerName string `json:"handler_name"`
}

// Stream is one raw stream entry as reported by the prober.
type Stream struct {
	Index          int        `json:"index"`
	CodecType      string     `json:"codec_type"`
	CodecName      string     `json:"codec_name"`
	Profile        string     `json:"profile"`
	Width          int64      `json:"width"`
	Height         int64      `json:"height"`
	Channels       int        `json:"channels"`
	ChannelLayout  string     `json:"channel_layout"`
	ColorPrimaries string     `json:"color_primaries"`
	ColorTransfer  string     `json:"color_transfer"`
	ColorSpace     string     `json:"color_space"`
	Tags           StreamTags `json:"tags"`
}

type probeOutput struct {
	Streams []Stream `json:"streams"`
}

type durationOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Probe returns the raw stream entries for a file. Callers degrade a
// probe failure to an empty inventory; it is never fatal to the run.
func Probe(inputPath string) ([]Stream, error) {
	cmd := exec.Command("ffprobe",
		"-v", "error",
		"-show_entries", streamEntries,
		"-of", "json",
		inputPath,
	)

	output, err := cmd.Output()
	if err != nil {
		return nil, errors.NewProbeError("ffprobe failed for "+inputPath, err)
	}

	return parseStreams(output)
}

// parseStreams decodes the prober's JSON stream listing.
func parseStreams(data []byte) ([]Stream, error) {
	var result probeOutput
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, errors.NewJSONParseError("failed to parse ffprobe output", err)
	}
	return result.Streams, nil
}

// GetDurationMS returns a file's total duration rounded to whole
// milliseconds. The second return value is false when the duration
// cannot be determined.
func GetDurationMS(inputPath string) (int64, bool) {
	cmd := exec.Command("ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "json",
		inputPath,
	)

	output, err := cmd.Output()
	if err != nil {
		return 0, false
	}

	return parseDurationMS(output)
}

// parseDurationMS decodes the duration-only probe output.
func parseDurationMS(data []byte) (int64, bool) {
	var result durationOutput
	if err := json.Unmarshal(data, &result); err != nil {
		return 0, false
	}
	if result.Format.Duration == "" {
		return 0, false
	}
	secs, err := strconv.ParseFloat(result.Format.Duration, 64)
	if err != nil {
		return 0, false
	}
	return int64(math.Round(secs * 1000)), true
}
