package inventory

import (
	"fmt"
	"strings"
)

// Dynamic range classifications for video streams.
const (
	RangeHDR10       = "HDR10"
	RangeHLG         = "HLG"
	RangeDolbyVision = "Dolby Vision"
	RangeSDR         = "SDR"
)

// ClassifyHDR classifies a video stream's dynamic range. Rules are
// ordered; the first match wins.
func ClassifyHDR(r StreamRecord) string {
	primaries := strings.ToLower(r.ColorPrimaries)
	transfer := strings.ToLower(r.ColorTransfer)
	codec := strings.ToLower(r.CodecName)

	if strings.Contains(primaries, "bt2020") || strings.Contains(transfer, "smpte2084") {
		return RangeHDR10
	}
	if strings.Contains(transfer, "hlg") {
		return RangeHLG
	}
	if strings.Contains(codec, "dvhe") || strings.Contains(codec, "dvh1") {
		return RangeDolbyVision
	}
	return RangeSDR
}

// CodecLabel returns the marketing name of an audio codec, promoted to
// the object-audio variant when the stream carries an Atmos/DTS:X tag.
func CodecLabel(r StreamRecord) string {
	switch {
	case r.CodecName == "truehd":
		if r.IsAtmos {
			return "Dolby Atmos"
		}
		return "Dolby TrueHD"
	case r.CodecName == "eac3":
		if r.IsAtmos {
			return "Dolby Atmos"
		}
		return "Dolby Digital Plus (E-AC3)"
	case strings.HasPrefix(r.CodecName, "dts"):
		if r.IsDtsX {
			return "DTS:X"
		}
		return "DTS / DTS-HD"
	case r.CodecName == "ac3":
		return "AC3"
	case r.CodecName == "aac":
		return "AAC"
	default:
		return strings.ToUpper(r.CodecName)
	}
}

// channelString renders a resolved channel count, or "?" when unknown.
func channelString(r StreamRecord) string {
	if !r.HasChannels() {
		return "?"
	}
	return fmt.Sprintf("%d", r.Channels)
}

// languageString renders a language tag, or "Unknown" when absent.
func languageString(r StreamRecord) string {
	if r.Language == "" {
		return "Unknown"
	}
	return r.Language
}

// AudioLabel renders an audio stream as "<Codec>-<ch> (<lang>)", the
// form used in plan notes and summaries.
func AudioLabel(r StreamRecord) string {
	return fmt.Sprintf("%s-%s (%s)", CodecLabel(r), channelString(r), languageString(r))
}

// Summarize renders the inventory as the three-line stream summary shown
// before planning.
func Summarize(inv Inventory) string {
	hdr := RangeSDR
	for _, v := range inv.Video {
		hdr = ClassifyHDR(v)
	}

	audioLines := make([]string, 0, len(inv.Audio))
	for _, a := range inv.Audio {
		audioLines = append(audioLines, AudioLabel(a))
	}

	subLangs := make([]string, 0, len(inv.Subtitle))
	for _, s := range inv.Subtitle {
		subLangs = append(subLangs, languageString(s))
	}

	return fmt.Sprintf("HDR: %s\nAudio streams (%d): %s\nSubtitle streams (%d): %s",
		hdr,
		len(audioLines), strings.Join(audioLines, ", "),
		len(subLangs), strings.Join(subLangs, ", "))
}
