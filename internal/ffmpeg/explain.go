package ffmpeg

import (
	"fmt"
	"strings"

	"github.com/trimux/trimux/internal/inventory"
	"github.com/trimux/trimux/internal/rules"
)

// Explain renders a per-flag walkthrough of the remux command for the
// review screen.
func Explain(plan *rules.Plan) string {
	var lines []string

	lines = append(lines, "-y: overwrite the OUTPUT file if it already exists (input/original is never overwritten).")
	lines = append(lines, "-i INPUT: source file to read from.")

	if plan.VideoCopy {
		lines = append(lines, "-map 0:v:0 -c:v copy: keep the primary video stream as-is (no reencode).")
	}

	if len(plan.AudioKeep) > 0 {
		lines = append(lines, "Audio streams kept (copied):")
		for i, a := range plan.AudioKeep {
			lines = append(lines, fmt.Sprintf("  - -map 0:a:%d -c:a:%d copy → %s", a.SourcePos, i, a.Description))
		}
	}

	if syn := plan.AudioSynthesis; syn != nil {
		next := len(plan.AudioKeep)
		lines = append(lines, "AC3 creation:")
		lines = append(lines, fmt.Sprintf(
			"  - -map 0:a:%d -c:a:%d ac3 -b:a:%d %s -ac:a:%d %d → New AC3-%d (eng) track.",
			syn.SourcePos, next, next, syn.Bitrate, next, syn.OutputChannels, syn.OutputChannels))
	}

	if len(plan.SubtitleKeep) > 0 {
		lines = append(lines, "Subtitles kept (copied):")
		for i, s := range plan.SubtitleKeep {
			lines = append(lines, fmt.Sprintf("  - -map 0:s:%d -c:s:%d copy → Keep English subtitle", s.SourcePos, i))
		}
	}

	lines = append(lines, "-map_metadata 0 -map_chapters 0: preserve original metadata and chapters.")
	lines = append(lines, "OUTPUT: final output file.")
	return strings.Join(lines, "\n")
}

// SummarizeResulting renders the streams the output will contain, with
// positions resolved against the original inventory.
func SummarizeResulting(inv inventory.Inventory, plan *rules.Plan) string {
	var out []string

	out = append(out, "Video: copy original.")

	if len(plan.AudioKeep) > 0 {
		out = append(out, "Audio kept:")
		for _, a := range plan.AudioKeep {
			out = append(out, "  - "+inventory.AudioLabel(inv.Audio[a.SourcePos]))
		}
	}

	if syn := plan.AudioSynthesis; syn != nil {
		out = append(out, "Audio added:")
		out = append(out, fmt.Sprintf("  - New AC3-%d (eng) from %s",
			syn.OutputChannels, inventory.AudioLabel(inv.Audio[syn.SourcePos])))
	}

	if len(plan.SubtitleKeep) > 0 {
		out = append(out, "Subtitles kept:")
		for _, s := range plan.SubtitleKeep {
			lang := inv.Subtitle[s.SourcePos].Language
			if lang == "" {
				lang = "Unknown"
			}
			out = append(out, fmt.Sprintf("  - English subtitle (lang=%s)", lang))
		}
	} else {
		out = append(out, "Subtitles kept: none (non-English removed).")
	}

	if len(plan.Notes) > 0 {
		out = append(out, "Decisions:")
		for _, n := range plan.Notes {
			out = append(out, "  - "+n)
		}
	}

	return strings.Join(out, "\n")
}
