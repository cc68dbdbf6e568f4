package mediainfo

import (
	"os"
	"path/filepath"
	"strings"
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

func TestParseMediaInfoOutput(t *testing.T) {
	data := loadTestData(t, "movie_full.json")

	resp, err := parseMediaInfoOutput(data)
	if err != nil {
		t.Fatalf("parseMediaInfoOutput() error = %v", err)
	}

	if len(resp.Media.Track) != 5 {
		t.Fatalf("len(Track) = %d, want 5", len(resp.Media.Track))
	}

	if resp.Media.Track[0].Type != "General" {
		t.Errorf("track[0].Type = %q, want General", resp.Media.Track[0].Type)
	}
	if resp.Media.Track[0].General.Format != "Matroska" {
		t.Errorf("General.Format = %q, want Matroska", resp.Media.Track[0].General.Format)
	}

	video := resp.Media.Track[1].Video
	if video.Format != "HEVC" || video.Width != "3840" || video.Height != "2160" {
		t.Errorf("video = %+v, want HEVC 3840x2160", video)
	}
	if video.ColourPrimaries != "BT.2020" || video.TransferCharacteristics != "PQ" {
		t.Errorf("video color = %q/%q, want BT.2020/PQ", video.ColourPrimaries, video.TransferCharacteristics)
	}

	audio := resp.Media.Track[3].Audio
	if audio.Format != "AC-3" || audio.Channels != "6" || audio.Language != "en" {
		t.Errorf("audio = %+v, want AC-3 6ch en", audio)
	}

	text := resp.Media.Track[4].Text
	if text.Format != "UTF-8" || text.Language != "en" {
		t.Errorf("text = %+v, want UTF-8 en", text)
	}
}

func TestParseMediaInfoOutput_Malformed(t *testing.T) {
	_, err := parseMediaInfoOutput([]byte(`{"media": {"track": [}`))
	if err == nil {
		t.Error("parseMediaInfoOutput() expected error for malformed JSON, got nil")
	}
}

func TestRender(t *testing.T) {
	data := loadTestData(t, "movie_full.json")
	resp, err := parseMediaInfoOutput(data)
	if err != nil {
		t.Fatalf("parseMediaInfoOutput() error = %v", err)
	}

	got := Render(resp)
	wantLines := []string{
		"General: Matroska, duration 5400.123, size 21474836480 bytes",
		"Video: HEVC 3840x2160, 10-bit (BT.2020 / PQ)",
		"Audio: MLP FBA, 8 ch, lang=en, 4500000 b/s",
		"Audio: AC-3, 6 ch, lang=en, 640000 b/s",
		"Text: UTF-8, lang=en",
	}
	for _, line := range wantLines {
		if !strings.Contains(got, line) {
			t.Errorf("Render() missing %q\nfull output:\n%s", line, got)
		}
	}
}

func TestRender_NoTracks(t *testing.T) {
	got := Render(&Response{})
	if got != "(no tracks reported)" {
		t.Errorf("Render(empty) = %q", got)
	}
}

func TestRender_MissingFields(t *testing.T) {
	resp := &Response{Media: Media{Track: []Track{
		{Type: "Audio", Audio: AudioTrack{Format: "AAC"}},
	}}}

	got := Render(resp)
	if got != "Audio: AAC, ? ch, lang=?" {
		t.Errorf("Render() = %q", got)
	}
}
