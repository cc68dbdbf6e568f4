package prompt

import "testing"

func TestParseReviewKey(t *testing.T) {
	tests := []struct {
		key      byte
		want     ReviewDecision
		accepted bool
	}{
		{'n', DecisionNext, true},
		{'N', DecisionNext, true},
		{'d', DecisionReencode, true},
		{'r', DecisionReencode, true},
		{'R', DecisionReencode, true},
		{'q', DecisionQuit, true},
		{'x', DecisionQuit, true},
		{0x03, DecisionQuit, true},
		{'z', 0, false},
		{' ', 0, false},
		{'\r', 0, false},
	}

	for _, tt := range tests {
		got, ok := parseReviewKey(tt.key)
		if ok != tt.accepted {
			t.Errorf("parseReviewKey(%q) accepted = %v, want %v", tt.key, ok, tt.accepted)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("parseReviewKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestParseConfirmKey(t *testing.T) {
	tests := []struct {
		key      byte
		want     bool
		accepted bool
	}{
		{'y', true, true},
		{'Y', true, true},
		{'n', false, true},
		{'N', false, true},
		{0x03, false, true},
		{'q', false, false},
		{'\n', false, false},
	}

	for _, tt := range tests {
		got, ok := parseConfirmKey(tt.key)
		if ok != tt.accepted {
			t.Errorf("parseConfirmKey(%q) accepted = %v, want %v", tt.key, ok, tt.accepted)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("parseConfirmKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestAutoDecider(t *testing.T) {
	accept := AutoDecider{Accept: true}
	if d, _ := accept.ReviewPlan(); d != DecisionReencode {
		t.Errorf("accepting ReviewPlan() = %v, want DecisionReencode", d)
	}
	if ok, _ := accept.Confirm("replace?"); !ok {
		t.Error("accepting Confirm() = false, want true")
	}

	skip := AutoDecider{Accept: false}
	if d, _ := skip.ReviewPlan(); d != DecisionNext {
		t.Errorf("skipping ReviewPlan() = %v, want DecisionNext", d)
	}
	if ok, _ := skip.Confirm("replace?"); ok {
		t.Error("skipping Confirm() = true, want false")
	}
}
