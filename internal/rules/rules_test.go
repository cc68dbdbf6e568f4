package rules

import (
	"reflect"
	"testing"

	"github.com/trimux/trimux/internal/inventory"
)

func audio(pos int, codec, lang string, channels int) inventory.StreamRecord {
	return inventory.StreamRecord{
		TypePos:   pos,
		Type:      inventory.Audio,
		CodecName: codec,
		Language:  lang,
		Channels:  channels,
	}
}

func subtitle(pos int, lang string) inventory.StreamRecord {
	return inventory.StreamRecord{
		TypePos:  pos,
		Type:     inventory.Subtitle,
		Language: lang,
	}
}

func TestApply_NoOpSurroundPresent(t *testing.T) {
	inv := inventory.Inventory{
		Audio: []inventory.StreamRecord{
			audio(0, "ac3", "eng", 6),
		},
		Subtitle: []inventory.StreamRecord{
			subtitle(0, "eng"),
		},
	}

	plan := Apply(inv, DefaultOptions())

	if !plan.IsNoOp() {
		t.Errorf("IsNoOp() = false, notes = %v", plan.Notes)
	}
	if len(plan.AudioKeep) != 1 || plan.AudioKeep[0].SourcePos != 0 {
		t.Errorf("AudioKeep = %+v, want one keep at pos 0", plan.AudioKeep)
	}
	if plan.AudioKeep[0].Description != "Keep AC3-6 (eng)" {
		t.Errorf("keep description = %q", plan.AudioKeep[0].Description)
	}
	if len(plan.SubtitleKeep) != 1 || plan.SubtitleKeep[0].SourcePos != 0 {
		t.Errorf("SubtitleKeep = %+v, want one keep at pos 0", plan.SubtitleKeep)
	}
}

func TestApply_DropAAC(t *testing.T) {
	inv := inventory.Inventory{
		Audio: []inventory.StreamRecord{
			audio(0, "ac3", "eng", 6),
			audio(1, "aac", "eng", 2),
		},
	}

	plan := Apply(inv, DefaultOptions())

	want := []string{"Drop AAC-2 (eng) (AAC)"}
	if !reflect.DeepEqual(plan.Notes, want) {
		t.Errorf("Notes = %v, want %v", plan.Notes, want)
	}
	if len(plan.AudioKeep) != 1 || plan.AudioKeep[0].SourcePos != 0 {
		t.Errorf("AudioKeep = %+v, want only the ac3 stream", plan.AudioKeep)
	}
	if plan.AudioSynthesis != nil {
		t.Errorf("AudioSynthesis = %+v, want nil", plan.AudioSynthesis)
	}
}

func TestApply_DropUnsupportedCodec(t *testing.T) {
	inv := inventory.Inventory{
		Audio: []inventory.StreamRecord{
			audio(0, "ac3", "eng", 6),
			audio(1, "opus", "eng", 6),
		},
	}

	plan := Apply(inv, DefaultOptions())

	want := []string{"Drop OPUS-6 (eng) (unsupported codec for this rule set)"}
	if !reflect.DeepEqual(plan.Notes, want) {
		t.Errorf("Notes = %v, want %v", plan.Notes, want)
	}
}

func TestApply_NonEnglishDroppedSilently(t *testing.T) {
	inv := inventory.Inventory{
		Audio: []inventory.StreamRecord{
			audio(0, "ac3", "eng", 6),
			audio(1, "truehd", "fra", 8),
			audio(2, "aac", "jpn", 2),
		},
		Subtitle: []inventory.StreamRecord{
			subtitle(0, "spa"),
		},
	}

	plan := Apply(inv, DefaultOptions())

	if len(plan.Notes) != 0 {
		t.Errorf("Notes = %v, want none for non-English drops", plan.Notes)
	}
	if len(plan.AudioKeep) != 1 {
		t.Errorf("AudioKeep = %+v, want only the English ac3", plan.AudioKeep)
	}
	if len(plan.SubtitleKeep) != 0 {
		t.Errorf("SubtitleKeep = %+v, want none", plan.SubtitleKeep)
	}
}

func TestApply_StereoDedup(t *testing.T) {
	inv := inventory.Inventory{
		Audio: []inventory.StreamRecord{
			audio(0, "truehd", "eng", 8),
			audio(1, "ac3", "eng", 6),
			audio(2, "ac3", "eng", 2),
			audio(3, "dts", "eng", 2),
		},
	}

	plan := Apply(inv, DefaultOptions())

	want := []string{"Removed 2 2-channel English streams"}
	if !reflect.DeepEqual(plan.Notes, want) {
		t.Errorf("Notes = %v, want %v", plan.Notes, want)
	}
	if len(plan.AudioKeep) != 2 {
		t.Fatalf("AudioKeep = %+v, want 2 surround keeps", plan.AudioKeep)
	}
	if plan.AudioKeep[0].SourcePos != 0 || plan.AudioKeep[1].SourcePos != 1 {
		t.Errorf("kept positions = %d, %d, want 0, 1",
			plan.AudioKeep[0].SourcePos, plan.AudioKeep[1].SourcePos)
	}
}

func TestApply_DedupPrunesUnknownChannels(t *testing.T) {
	inv := inventory.Inventory{
		Audio: []inventory.StreamRecord{
			audio(0, "truehd", "eng", 8),
			audio(1, "dts", "eng", inventory.ChannelsUnknown),
		},
	}

	plan := Apply(inv, DefaultOptions())

	if len(plan.AudioKeep) != 1 || plan.AudioKeep[0].SourcePos != 0 {
		t.Errorf("AudioKeep = %+v, want only the known-surround stream", plan.AudioKeep)
	}
	want := "Removed 1 2-channel English streams"
	if len(plan.Notes) == 0 || plan.Notes[0] != want {
		t.Errorf("Notes = %v, want first %q", plan.Notes, want)
	}
}

func TestApply_NoDedupWhenAllStereo(t *testing.T) {
	inv := inventory.Inventory{
		Audio: []inventory.StreamRecord{
			audio(0, "ac3", "eng", 2),
			audio(1, "dts", "eng", 2),
		},
	}

	plan := Apply(inv, DefaultOptions())

	if len(plan.AudioKeep) != 2 {
		t.Errorf("AudioKeep = %+v, want both stereo streams kept", plan.AudioKeep)
	}
}

func TestApply_SynthesisFromAtmos(t *testing.T) {
	atmos := audio(0, "truehd", "eng", 8)
	atmos.IsAtmos = true

	inv := inventory.Inventory{
		Audio: []inventory.StreamRecord{
			atmos,
			audio(1, "dts", "eng", 6),
		},
	}

	plan := Apply(inv, DefaultOptions())

	if plan.AudioSynthesis == nil {
		t.Fatal("AudioSynthesis = nil, want synthesis from the Atmos stream")
	}
	syn := plan.AudioSynthesis
	if syn.SourcePos != 0 {
		t.Errorf("SourcePos = %d, want 0 (Atmos outranks plain dts)", syn.SourcePos)
	}
	if syn.OutputChannels != 6 || syn.Bitrate != "640k" {
		t.Errorf("synthesis params = %d/%q, want 6/640k", syn.OutputChannels, syn.Bitrate)
	}
	wantDesc := "Create AC3-6 (eng) from Dolby Atmos-8 (eng)"
	if syn.Description != wantDesc {
		t.Errorf("Description = %q, want %q", syn.Description, wantDesc)
	}
	if len(plan.Notes) == 0 || plan.Notes[len(plan.Notes)-1] != wantDesc {
		t.Errorf("Notes = %v, want synthesis note appended", plan.Notes)
	}
}

func TestApply_StereoAC3DoesNotSatisfyGuarantee(t *testing.T) {
	inv := inventory.Inventory{
		Audio: []inventory.StreamRecord{
			audio(0, "ac3", "eng", 2),
		},
	}

	plan := Apply(inv, DefaultOptions())

	if plan.AudioSynthesis == nil {
		t.Fatal("AudioSynthesis = nil, want synthesis from the stereo ac3")
	}
	if plan.AudioSynthesis.SourcePos != 0 {
		t.Errorf("SourcePos = %d, want 0", plan.AudioSynthesis.SourcePos)
	}
}

func TestApply_SynthesisUsesDroppedSource(t *testing.T) {
	// The dedup may prune a stream that is still the best synthesis
	// source; candidates come from the original inventory.
	inv := inventory.Inventory{
		Audio: []inventory.StreamRecord{
			audio(0, "truehd", "eng", 8),
			audio(1, "aac", "eng", 2),
		},
	}

	plan := Apply(inv, DefaultOptions())

	if plan.AudioSynthesis == nil {
		t.Fatal("AudioSynthesis = nil")
	}
	if plan.AudioSynthesis.SourcePos != 0 {
		t.Errorf("SourcePos = %d, want 0 (truehd)", plan.AudioSynthesis.SourcePos)
	}
}

func TestApply_NoEnglishSource(t *testing.T) {
	inv := inventory.Inventory{
		Audio: []inventory.StreamRecord{
			audio(0, "dts", "fra", 6),
		},
	}

	plan := Apply(inv, DefaultOptions())

	want := []string{"No English source available to create AC3"}
	if !reflect.DeepEqual(plan.Notes, want) {
		t.Errorf("Notes = %v, want %v", plan.Notes, want)
	}
	if plan.AudioSynthesis != nil {
		t.Errorf("AudioSynthesis = %+v, want nil", plan.AudioSynthesis)
	}
	if plan.IsNoOp() {
		t.Error("IsNoOp() = true, want false when a note exists")
	}
}

func TestApply_EmptyInventory(t *testing.T) {
	plan := Apply(inventory.Inventory{}, DefaultOptions())

	want := []string{"No English source available to create AC3"}
	if !reflect.DeepEqual(plan.Notes, want) {
		t.Errorf("Notes = %v, want %v", plan.Notes, want)
	}
	if len(plan.AudioKeep) != 0 || len(plan.SubtitleKeep) != 0 {
		t.Errorf("keeps = %+v / %+v, want none", plan.AudioKeep, plan.SubtitleKeep)
	}
}

func TestApply_Deterministic(t *testing.T) {
	inv := inventory.Inventory{
		Audio: []inventory.StreamRecord{
			audio(0, "truehd", "eng", 8),
			audio(1, "ac3", "eng", 2),
			audio(2, "aac", "eng", 2),
		},
		Subtitle: []inventory.StreamRecord{
			subtitle(0, "eng"),
			subtitle(1, "fra"),
		},
	}

	first := Apply(inv, DefaultOptions())
	second := Apply(inv, DefaultOptions())
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Apply() not deterministic:\n%+v\n%+v", first, second)
	}
}

func TestSynthesisScore(t *testing.T) {
	tests := []struct {
		name   string
		record inventory.StreamRecord
		want   int
	}{
		{"atmos truehd 8ch", inventory.StreamRecord{CodecName: "truehd", Channels: 8, IsAtmos: true}, 158},
		{"plain truehd 8ch", inventory.StreamRecord{CodecName: "truehd", Channels: 8}, 58},
		{"dtsx unknown channels", inventory.StreamRecord{CodecName: "dts", Channels: inventory.ChannelsUnknown, IsDtsX: true}, 150},
		{"ac3 6ch", inventory.StreamRecord{CodecName: "ac3", Channels: 6}, 16},
		{"aac 2ch", inventory.StreamRecord{CodecName: "aac", Channels: 2}, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := synthesisScore(tt.record); got != tt.want {
				t.Errorf("synthesisScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPickSynthesisSource_FirstMaxWins(t *testing.T) {
	a := audio(0, "dts", "eng", 6)
	b := audio(1, "dts", "eng", 6)

	got := pickSynthesisSource([]inventory.StreamRecord{a, b})
	if got.TypePos != 0 {
		t.Errorf("tie-break picked pos %d, want 0", got.TypePos)
	}
}
