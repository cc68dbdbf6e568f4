// Package ffmpeg renders plans into ffmpeg invocations and runs them.
package ffmpeg

import (
	"fmt"

	"github.com/trimux/trimux/internal/rules"
	"github.com/trimux/trimux/internal/util"
)

// Binary is the transcoder executable resolved from PATH.
const Binary = "ffmpeg"

// BuildRemuxArgs renders a plan into the argument list for the remux
// invocation, without the binary name. Argument order is fixed: video,
// kept audio, synthesized audio, subtitles, metadata, output.
func BuildRemuxArgs(input, output string, plan *rules.Plan) []string {
	args := []string{"-y", "-i", input}

	if plan.VideoCopy {
		args = append(args, "-map", "0:v:0", "-c:v", "copy")
	}

	for i, a := range plan.AudioKeep {
		args = append(args,
			"-map", fmt.Sprintf("0:a:%d", a.SourcePos),
			fmt.Sprintf("-c:a:%d", i), "copy")
	}

	// The synthesized track lands after every kept stream, so its output
	// ordinal is the keep count.
	if syn := plan.AudioSynthesis; syn != nil {
		next := len(plan.AudioKeep)
		args = append(args,
			"-map", fmt.Sprintf("0:a:%d", syn.SourcePos),
			fmt.Sprintf("-c:a:%d", next), "ac3",
			fmt.Sprintf("-b:a:%d", next), syn.Bitrate,
			fmt.Sprintf("-ac:a:%d", next), fmt.Sprintf("%d", syn.OutputChannels))
	}

	for i, s := range plan.SubtitleKeep {
		args = append(args,
			"-map", fmt.Sprintf("0:s:%d", s.SourcePos),
			fmt.Sprintf("-c:s:%d", i), "copy")
	}

	args = append(args, "-map_metadata", "0", "-map_chapters", "0", output)
	return args
}

// BuildDecodeCheckArgs renders the decode-only validation probe: decode
// everything, write nothing, surface only errors.
func BuildDecodeCheckArgs(output string) []string {
	return []string{"-v", "error", "-i", output, "-f", "null", "-"}
}

// CommandLine renders an argument list as a shell-quoted command for
// display, binary included.
func CommandLine(args []string) string {
	return util.FormatCommand(append([]string{Binary}, args...))
}
