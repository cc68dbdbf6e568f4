// Package rules implements the keep/drop/synthesize policy for audio and
// subtitle streams. Apply is a pure function of the inventory; the same
// input always yields the same plan.
package rules

import (
	"fmt"

	"github.com/trimux/trimux/internal/inventory"
)

// extendedCodecs can carry object audio (Atmos / DTS:X), so English
// streams in these codecs are always kept regardless of channel count.
var extendedCodecs = map[string]bool{
	"truehd": true,
	"eac3":   true,
	"dts":    true,
}

const (
	// legacySurroundCodec is the AC3-class codec the surround guarantee
	// requires at three or more channels.
	legacySurroundCodec = "ac3"

	// stereoOnlyCodec is always dropped with a note.
	stereoOnlyCodec = "aac"
)

// noEnglishSourceNote is emitted when synthesis is required but no
// English audio stream exists to derive it from.
const noEnglishSourceNote = "No English source available to create AC3"

// Options carries the synthesis output parameters.
type Options struct {
	SynthesisChannels int
	SynthesisBitrate  string
}

// DefaultOptions returns the standard 5.1 AC3 synthesis parameters.
func DefaultOptions() Options {
	return Options{
		SynthesisChannels: 6,
		SynthesisBitrate:  "640k",
	}
}

// Apply evaluates the policy against an inventory and returns the plan.
func Apply(inv inventory.Inventory, opts Options) *Plan {
	plan := &Plan{VideoCopy: true}

	// Audio eligibility. Non-English streams are dropped silently; that
	// is the default, not a decision worth itemizing.
	var kept []inventory.StreamRecord
	for _, s := range inv.Audio {
		if !inventory.IsEnglish(s.Language) {
			continue
		}

		if extendedCodecs[s.CodecName] {
			kept = append(kept, s)
			continue
		}

		if s.CodecName == stereoOnlyCodec {
			plan.Notes = append(plan.Notes, fmt.Sprintf("Drop %s (AAC)", inventory.AudioLabel(s)))
			continue
		}

		if s.CodecName == legacySurroundCodec {
			// Channel-count enforcement happens in the surround guarantee.
			kept = append(kept, s)
			continue
		}

		plan.Notes = append(plan.Notes,
			fmt.Sprintf("Drop %s (unsupported codec for this rule set)", inventory.AudioLabel(s)))
	}

	// Channel dedup: once any kept stream exceeds two channels, streams
	// without a known count above two are redundant.
	hasSurround := false
	for _, s := range kept {
		if s.HasChannels() && s.Channels > 2 {
			hasSurround = true
			break
		}
	}
	if hasSurround {
		pruned := kept[:0]
		for _, s := range kept {
			if s.HasChannels() && s.Channels > 2 {
				pruned = append(pruned, s)
			}
		}
		if removed := len(kept) - len(pruned); removed > 0 {
			plan.Notes = append(plan.Notes,
				fmt.Sprintf("Removed %d 2-channel English streams", removed))
		}
		kept = pruned
	}

	// Surround guarantee: an AC3 track at 3+ channels must survive, or
	// one is synthesized from the best English source.
	hasLegacySurround := false
	for _, s := range kept {
		if s.CodecName == legacySurroundCodec && s.HasChannels() && s.Channels >= 3 {
			hasLegacySurround = true
			break
		}
	}
	if !hasLegacySurround {
		var candidates []inventory.StreamRecord
		for _, s := range inv.Audio {
			if inventory.IsEnglish(s.Language) {
				candidates = append(candidates, s)
			}
		}

		if len(candidates) == 0 {
			plan.Notes = append(plan.Notes, noEnglishSourceNote)
		} else {
			source := pickSynthesisSource(candidates)
			desc := fmt.Sprintf("Create AC3-%d (eng) from %s",
				opts.SynthesisChannels, inventory.AudioLabel(source))
			plan.AudioSynthesis = &AudioSynthesis{
				SourcePos:      source.TypePos,
				OutputChannels: opts.SynthesisChannels,
				Bitrate:        opts.SynthesisBitrate,
				Description:    desc,
			}
			plan.Notes = append(plan.Notes, desc)
		}
	}

	for _, s := range kept {
		plan.AudioKeep = append(plan.AudioKeep, AudioKeep{
			SourcePos:   s.TypePos,
			Description: "Keep " + inventory.AudioLabel(s),
		})
	}

	for _, s := range inv.Subtitle {
		if inventory.IsEnglish(s.Language) {
			plan.SubtitleKeep = append(plan.SubtitleKeep, SubtitleKeep{SourcePos: s.TypePos})
		}
	}

	return plan
}

// Synthesis scoring weights. Extension outranks codec class, which
// outranks raw channel count.
const (
	extensionBonus    = 100
	extendedCodecBase = 50
	basicCodecBase    = 10
)

// synthesisScore ranks a candidate synthesis source.
func synthesisScore(r inventory.StreamRecord) int {
	score := 0
	if r.IsAtmos || r.IsDtsX {
		score += extensionBonus
	}
	if extendedCodecs[r.CodecName] {
		score += extendedCodecBase
	} else {
		score += basicCodecBase
	}
	if r.HasChannels() {
		score += r.Channels
	}
	return score
}

// pickSynthesisSource returns the highest-scoring candidate. Ties keep
// the first-encountered stream.
func pickSynthesisSource(candidates []inventory.StreamRecord) inventory.StreamRecord {
	best := candidates[0]
	bestScore := synthesisScore(best)
	for _, c := range candidates[1:] {
		if s := synthesisScore(c); s > bestScore {
			best = c
			bestScore = s
		}
	}
	return best
}
