// Package mediainfo captures a human-readable description of a media
// file via the MediaInfo tool, for before/after comparison around a
// transcode.
package mediainfo

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// GeneralTrack holds container-level fields.
type GeneralTrack struct {
	Format   string `json:"Format"`
	Duration string `json:"Duration"`
	FileSize string `json:"FileSize"`
}

// VideoTrack holds video track fields.
type VideoTrack struct {
	Format                  string `json:"Format"`
	Width                   string `json:"Width"`
	Height                  string `json:"Height"`
	BitDepth                string `json:"BitDepth"`
	ColourPrimaries         string `json:"colour_primaries"`
	TransferCharacteristics string `json:"transfer_characteristics"`
}

// AudioTrack holds audio track fields.
type AudioTrack struct {
	Format   string `json:"Format"`
	Channels string `json:"Channels"`
	Language string `json:"Language"`
	BitRate  string `json:"BitRate"`
}

// TextTrack holds subtitle track fields.
type TextTrack struct {
	Format   string `json:"Format"`
	Language string `json:"Language"`
}

// Track is one MediaInfo track; only the variant matching Type is set.
type Track struct {
	Type    string `json:"@type"`
	General GeneralTrack
	Video   VideoTrack
	Audio   AudioTrack
	Text    TextTrack
}

// UnmarshalJSON dispatches on the @type discriminator.
func (t *Track) UnmarshalJSON(data []byte) error {
	var typeOnly struct {
		Type string `json:"@type"`
	}
	if err := json.Unmarshal(data, &typeOnly); err != nil {
		return err
	}
	t.Type = typeOnly.Type

	switch t.Type {
	case "General":
		return json.Unmarshal(data, &t.General)
	case "Video":
		return json.Unmarshal(data, &t.Video)
	case "Audio":
		return json.Unmarshal(data, &t.Audio)
	case "Text":
		return json.Unmarshal(data, &t.Text)
	}
	return nil
}

// Media contains the track array.
type Media struct {
	Track []Track `json:"track"`
}

// Response is the root MediaInfo JSON structure.
type Response struct {
	Media Media `json:"media"`
}

// IsAvailable checks whether the mediainfo tool is on PATH.
func IsAvailable() bool {
	return exec.Command("mediainfo", "--Version").Run() == nil
}

// GetMediaInfo runs MediaInfo on a file and returns parsed output.
func GetMediaInfo(inputPath string) (*Response, error) {
	output, err := exec.Command("mediainfo", "--Output=JSON", inputPath).Output()
	if err != nil {
		return nil, fmt.Errorf("mediainfo failed: %w", err)
	}
	return parseMediaInfoOutput(output)
}

func parseMediaInfoOutput(data []byte) (*Response, error) {
	var result Response
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse mediainfo output: %w", err)
	}
	return &result, nil
}

// Describe returns a human-readable track listing for a file. Failures
// never propagate; they are folded into the returned string so the
// before/after report always has something to show.
func Describe(path string) string {
	info, err := GetMediaInfo(path)
	if err != nil {
		return fmt.Sprintf("(mediainfo failed on %s: %v)", filepath.Base(path), err)
	}
	return Render(info)
}

// Render formats a parsed response as one line per track.
func Render(info *Response) string {
	var lines []string
	for _, track := range info.Media.Track {
		switch track.Type {
		case "General":
			lines = append(lines, fmt.Sprintf("General: %s, duration %s, size %s bytes",
				orUnknown(track.General.Format), orUnknown(track.General.Duration), orUnknown(track.General.FileSize)))
		case "Video":
			v := track.Video
			line := fmt.Sprintf("Video: %s %sx%s", orUnknown(v.Format), orUnknown(v.Width), orUnknown(v.Height))
			if v.BitDepth != "" {
				line += ", " + v.BitDepth + "-bit"
			}
			if v.ColourPrimaries != "" || v.TransferCharacteristics != "" {
				line += fmt.Sprintf(" (%s / %s)", orUnknown(v.ColourPrimaries), orUnknown(v.TransferCharacteristics))
			}
			lines = append(lines, line)
		case "Audio":
			a := track.Audio
			line := fmt.Sprintf("Audio: %s, %s ch, lang=%s", orUnknown(a.Format), orUnknown(a.Channels), orUnknown(a.Language))
			if a.BitRate != "" {
				line += ", " + a.BitRate + " b/s"
			}
			lines = append(lines, line)
		case "Text":
			lines = append(lines, fmt.Sprintf("Text: %s, lang=%s",
				orUnknown(track.Text.Format), orUnknown(track.Text.Language)))
		}
	}
	if len(lines) == 0 {
		return "(no tracks reported)"
	}
	return strings.Join(lines, "\n")
}

func orUnknown(s string) string {
	if s == "" {
		return "?"
	}
	return s
}
