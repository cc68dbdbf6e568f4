package validation

import (
	"context"
	"testing"
)

// mockProber returns canned measurements keyed by path.
type mockProber struct {
	durations map[string]int64 // absent key means unknown
	decode    DecodeOutcome
	decoded   bool
}

func (m *mockProber) DurationMS(path string) (int64, bool) {
	ms, ok := m.durations[path]
	return ms, ok
}

func (m *mockProber) DecodeCheck(_ context.Context, _ string) DecodeOutcome {
	m.decoded = true
	return m.decode
}

func TestValidate_DurationsMatch(t *testing.T) {
	prober := &mockProber{
		durations: map[string]int64{"in.mkv": 5400123, "out.mkv": 5400123},
	}

	result := Validate(context.Background(), prober, "in.mkv", "out.mkv")

	if !result.Passed {
		t.Error("Passed = false, want true")
	}
	want := "Durations match exactly (5400123 ms)."
	if result.Message != want {
		t.Errorf("Message = %q, want %q", result.Message, want)
	}
	if prober.decoded {
		t.Error("decode test ran despite matching durations")
	}
	if len(result.Steps) != 1 || !result.Steps[0].Passed {
		t.Errorf("Steps = %+v, want one passed duration step", result.Steps)
	}
}

func TestValidate_MismatchDecodePasses(t *testing.T) {
	prober := &mockProber{
		durations: map[string]int64{"in.mkv": 5400123, "out.mkv": 5400100},
		decode:    DecodeOutcome{ExitCode: 0, Stderr: ""},
	}

	result := Validate(context.Background(), prober, "in.mkv", "out.mkv")

	if !result.Passed {
		t.Error("Passed = false, want true")
	}
	want := "Decode test passed with no errors (duration mismatch accepted)."
	if result.Message != want {
		t.Errorf("Message = %q, want %q", result.Message, want)
	}
	if !prober.decoded {
		t.Error("decode test did not run")
	}
}

func TestValidate_MismatchDecodeStderrFails(t *testing.T) {
	prober := &mockProber{
		durations: map[string]int64{"in.mkv": 100, "out.mkv": 200},
		decode:    DecodeOutcome{ExitCode: 0, Stderr: "corrupt frame at 00:01:02\n"},
	}

	result := Validate(context.Background(), prober, "in.mkv", "out.mkv")

	if result.Passed {
		t.Error("Passed = true, want false for noisy stderr")
	}
	want := "Decode test reported errors or non-zero exit code."
	if result.Message != want {
		t.Errorf("Message = %q, want %q", result.Message, want)
	}
}

func TestValidate_MismatchDecodeExitCodeFails(t *testing.T) {
	prober := &mockProber{
		durations: map[string]int64{"in.mkv": 100, "out.mkv": 200},
		decode:    DecodeOutcome{ExitCode: 1},
	}

	result := Validate(context.Background(), prober, "in.mkv", "out.mkv")

	if result.Passed {
		t.Error("Passed = true, want false for non-zero exit")
	}
	if result.Message != "Decode test reported errors or non-zero exit code." {
		t.Errorf("Message = %q", result.Message)
	}
}

func TestValidate_DecodeTimeout(t *testing.T) {
	prober := &mockProber{
		durations: map[string]int64{"in.mkv": 100, "out.mkv": 200},
		decode:    DecodeOutcome{TimedOut: true},
	}

	result := Validate(context.Background(), prober, "in.mkv", "out.mkv")

	if result.Passed {
		t.Error("Passed = true, want false for timeout")
	}
	want := "Decode test timed out (validation failed)."
	if result.Message != want {
		t.Errorf("Message = %q, want %q", result.Message, want)
	}
	if len(result.Failures()) != 2 {
		t.Errorf("Failures() = %v, want duration and decode failures", result.Failures())
	}
}

func TestValidate_UnknownDurationsForceDecode(t *testing.T) {
	tests := []struct {
		name      string
		durations map[string]int64
		details   string
	}{
		{"input unknown", map[string]int64{"out.mkv": 200}, "Input duration unknown"},
		{"output unknown", map[string]int64{"in.mkv": 100}, "Output duration unknown"},
		{"both unknown", map[string]int64{}, "Both durations unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prober := &mockProber{
				durations: tt.durations,
				decode:    DecodeOutcome{ExitCode: 0},
			}

			result := Validate(context.Background(), prober, "in.mkv", "out.mkv")

			if !prober.decoded {
				t.Error("decode test did not run for unknown durations")
			}
			if !result.Passed {
				t.Error("Passed = false, want true for clean decode")
			}
			if result.Steps[0].Details != tt.details {
				t.Errorf("duration step details = %q, want %q", result.Steps[0].Details, tt.details)
			}
		})
	}
}

// Equal durations pass without ever touching the decode prober, even if
// a decode would have failed.
func TestValidate_MatchShortCircuits(t *testing.T) {
	prober := &mockProber{
		durations: map[string]int64{"in.mkv": 42, "out.mkv": 42},
		decode:    DecodeOutcome{ExitCode: 1, Stderr: "would fail"},
	}

	result := Validate(context.Background(), prober, "in.mkv", "out.mkv")

	if !result.Passed || prober.decoded {
		t.Errorf("Passed = %v, decoded = %v; want pass without decode", result.Passed, prober.decoded)
	}
}
