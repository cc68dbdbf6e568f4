package rules

// AudioKeep marks one original audio stream for passthrough.
type AudioKeep struct {
	// SourcePos is the stream's ordinal within the original file's
	// audio group.
	SourcePos   int
	Description string
}

// AudioSynthesis describes one new audio track derived from an original
// stream. A plan carries at most one.
type AudioSynthesis struct {
	SourcePos      int
	OutputChannels int
	Bitrate        string
	Description    string
}

// SubtitleKeep marks one original subtitle stream for passthrough.
type SubtitleKeep struct {
	SourcePos int
}

// Plan is the full decision for one file. It is descriptive: nothing in
// a Plan touches the filesystem.
type Plan struct {
	// VideoCopy is always true; the first video stream passes through.
	VideoCopy bool

	AudioKeep      []AudioKeep
	AudioSynthesis *AudioSynthesis
	SubtitleKeep   []SubtitleKeep

	// Notes itemize every decision that changed something: drops, dedup
	// removals, synthesis, or the inability to synthesize.
	Notes []string
}

// IsNoOp reports whether executing the plan would change nothing. A
// plan is a no-op when no decision produced a note and no track is
// synthesized.
func (p *Plan) IsNoOp() bool {
	return len(p.Notes) == 0 && p.AudioSynthesis == nil
}
