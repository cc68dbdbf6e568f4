package ffprobe

import (
	"os"
	"path/filepath"
	"testing"
)

// loadTestData loads a JSON fixture from the testdata directory.
func loadTestData(t *testing.T, filename string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", filename))
	if err != nil {
		t.Fatalf("failed to load test data %s: %v", filename, err)
	}
	return data
}

func TestParseStreams_SurroundMixed(t *testing.T) {
	data := loadTestData(t, "surround_mixed.json")

	streams, err := parseStreams(data)
	if err != nil {
		t.Fatalf("parseStreams() error = %v", err)
	}

	if len(streams) != 6 {
		t.Fatalf("len(streams) = %d, want 6", len(streams))
	}

	video := streams[0]
	if video.CodecType != "video" {
		t.Errorf("video.CodecType = %q, want %q", video.CodecType, "video")
	}
	if video.ColorPrimaries != "bt2020" {
		t.Errorf("video.ColorPrimaries = %q, want %q", video.ColorPrimaries, "bt2020")
	}
	if video.ColorTransfer != "smpte2084" {
		t.Errorf("video.ColorTransfer = %q, want %q", video.ColorTransfer, "smpte2084")
	}

	truehd := streams[1]
	if truehd.CodecName != "truehd" {
		t.Errorf("truehd.CodecName = %q", truehd.CodecName)
	}
	if truehd.Channels != 8 {
		t.Errorf("truehd.Channels = %d, want 8", truehd.Channels)
	}
	if truehd.Tags.Language != "eng" {
		t.Errorf("truehd.Tags.Language = %q, want eng", truehd.Tags.Language)
	}
	if truehd.Tags.Title != "TrueHD Atmos 7.1" {
		t.Errorf("truehd.Tags.Title = %q", truehd.Tags.Title)
	}

	aac := streams[3]
	if aac.Tags.Language != "fra" {
		t.Errorf("aac.Tags.Language = %q, want fra", aac.Tags.Language)
	}
	if aac.ChannelLayout != "stereo" {
		t.Errorf("aac.ChannelLayout = %q, want stereo", aac.ChannelLayout)
	}

	sub := streams[4]
	if sub.CodecType != "subtitle" {
		t.Errorf("sub.CodecType = %q, want subtitle", sub.CodecType)
	}
}

func TestParseStreams_Empty(t *testing.T) {
	streams, err := parseStreams([]byte(`{"streams": []}`))
	if err != nil {
		t.Fatalf("parseStreams() error = %v", err)
	}
	if len(streams) != 0 {
		t.Errorf("len(streams) = %d, want 0", len(streams))
	}
}

func TestParseStreams_Malformed(t *testing.T) {
	_, err := parseStreams([]byte(`{"streams": [}`))
	if err == nil {
		t.Error("parseStreams() expected error for malformed JSON, got nil")
	}
}

func TestParseDurationMS(t *testing.T) {
	data := loadTestData(t, "duration.json")

	ms, ok := parseDurationMS(data)
	if !ok {
		t.Fatal("parseDurationMS() ok = false, want true")
	}
	if ms != 5400123 {
		t.Errorf("parseDurationMS() = %d, want 5400123", ms)
	}
}

func TestParseDurationMS_Rounding(t *testing.T) {
	ms, ok := parseDurationMS([]byte(`{"format": {"duration": "1.0006"}}`))
	if !ok {
		t.Fatal("parseDurationMS() ok = false")
	}
	if ms != 1001 {
		t.Errorf("parseDurationMS() = %d, want 1001", ms)
	}
}

func TestParseDurationMS_Missing(t *testing.T) {
	if _, ok := parseDurationMS([]byte(`{"format": {}}`)); ok {
		t.Error("parseDurationMS() ok = true for missing duration, want false")
	}
	if _, ok := parseDurationMS([]byte(`garbage`)); ok {
		t.Error("parseDurationMS() ok = true for garbage, want false")
	}
	if _, ok := parseDurationMS([]byte(`{"format": {"duration": "n/a"}}`)); ok {
		t.Error("parseDurationMS() ok = true for non-numeric duration, want false")
	}
}
