// Package inventory normalizes prober output into per-type stream records.
package inventory

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/trimux/trimux/internal/ffprobe"
)

// StreamType classifies a stream within its container.
type StreamType int

const (
	// Video streams are always passed through untouched.
	Video StreamType = iota
	// Audio streams are subject to the keep/drop/synthesize policy.
	Audio
	// Subtitle streams are kept only when English.
	Subtitle
)

// String returns the lowercase name of the stream type.
func (t StreamType) String() string {
	switch t {
	case Video:
		return "video"
	case Audio:
		return "audio"
	case Subtitle:
		return "subtitle"
	default:
		return "unknown"
	}
}

// ChannelsUnknown marks a stream whose channel count could not be resolved.
const ChannelsUnknown = -1

// StreamRecord is an immutable snapshot of one physical stream.
type StreamRecord struct {
	// TypePos is the stream's ordinal within its own type group. The
	// transcoder's mapping syntax addresses streams this way, so the
	// position always refers to the original container, never to a
	// filtered set.
	TypePos int

	Type          StreamType
	CodecName     string
	Language      string
	Channels      int // ChannelsUnknown when unresolved
	ChannelLayout string

	// Video only
	ColorPrimaries string
	ColorTransfer  string

	// Object-audio extension flags from the title/handler tags
	IsAtmos bool
	IsDtsX  bool
}

// HasChannels reports whether the channel count was resolved.
func (r StreamRecord) HasChannels() bool {
	return r.Channels != ChannelsUnknown
}

// Inventory groups one file's streams by type, in container order.
type Inventory struct {
	Video    []StreamRecord
	Audio    []StreamRecord
	Subtitle []StreamRecord
}

// IsEmpty reports whether the inventory holds no streams at all.
func (inv Inventory) IsEmpty() bool {
	return len(inv.Video) == 0 && len(inv.Audio) == 0 && len(inv.Subtitle) == 0
}

// englishTags are the language values treated as English. Absent or
// unrecognized languages are non-English, never English by default.
var englishTags = map[string]bool{
	"en":      true,
	"eng":     true,
	"english": true,
}

// IsEnglish reports whether a language tag denotes English.
func IsEnglish(lang string) bool {
	return englishTags[strings.ToLower(lang)]
}

// layoutToCount maps known channel layout labels to channel counts.
var layoutToCount = map[string]int{
	"mono":      1,
	"1.0":       1,
	"stereo":    2,
	"2.0":       2,
	"2.1":       3,
	"3.0":       3,
	"3.1":       4,
	"4.0":       4,
	"4.1":       5,
	"5.0":       5,
	"5.1":       6,
	"6.1":       7,
	"7.1":       8,
	"7.1(wide)": 8,
}

var layoutPattern = regexp.MustCompile(`^(\d+)\.(\d+)`)

// resolveChannels derives a channel count from the prober fields:
// explicit positive count first, then the layout table, then an "n.m"
// layout string summed, else unknown.
func resolveChannels(channels int, layout string) int {
	if channels > 0 {
		return channels
	}

	l := strings.ToLower(layout)
	if count, ok := layoutToCount[l]; ok {
		return count
	}

	if m := layoutPattern.FindStringSubmatch(l); m != nil {
		n, err1 := strconv.Atoi(m[1])
		sub, err2 := strconv.Atoi(m[2])
		if err1 == nil && err2 == nil {
			return n + sub
		}
	}

	return ChannelsUnknown
}

// detectExtensions inspects title/handler tags for object-audio markers.
func detectExtensions(tags ffprobe.StreamTags) (atmos, dtsx bool) {
	title := strings.ToLower(tags.Title)
	handler := strings.ToLower(tags.HandlerName)

	atmos = strings.Contains(title, "atmos") || strings.Contains(handler, "atmos")
	dtsx = strings.Contains(title, "dts:x") || strings.Contains(handler, "dts:x") ||
		strings.Contains(title, "dtsx") || strings.Contains(handler, "dtsx")
	return atmos, dtsx
}

// FromStreams builds an Inventory from raw prober output. Streams of
// unrecognized types are ignored.
func FromStreams(streams []ffprobe.Stream) Inventory {
	var inv Inventory

	for _, s := range streams {
		switch s.CodecType {
		case "video":
			inv.Video = append(inv.Video, StreamRecord{
				TypePos:        len(inv.Video),
				Type:           Video,
				CodecName:      strings.ToLower(s.CodecName),
				ColorPrimaries: s.ColorPrimaries,
				ColorTransfer:  s.ColorTransfer,
			})
		case "audio":
			atmos, dtsx := detectExtensions(s.Tags)
			inv.Audio = append(inv.Audio, StreamRecord{
				TypePos:       len(inv.Audio),
				Type:          Audio,
				CodecName:     strings.ToLower(s.CodecName),
				Language:      s.Tags.Language,
				Channels:      resolveChannels(s.Channels, s.ChannelLayout),
				ChannelLayout: s.ChannelLayout,
				IsAtmos:       atmos,
				IsDtsX:        dtsx,
			})
		case "subtitle":
			inv.Subtitle = append(inv.Subtitle, StreamRecord{
				TypePos:   len(inv.Subtitle),
				Type:      Subtitle,
				CodecName: strings.ToLower(s.CodecName),
				Language:  s.Tags.Language,
			})
		}
	}

	return inv
}
