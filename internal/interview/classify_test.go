package interview

import (
	"testing"

	"github.com/nexai-hq/interview-gateway/internal/models"
)

func TestClassify_RoleVocabulary(t *testing.T) {
	cases := []struct {
		raw  string
		want models.Role
	}{
		{"assistant", models.RoleAssistant},
		{"AI", models.RoleAssistant},
		{"Bot", models.RoleAssistant},
		{"user", models.RoleCandidate},
		{"HUMAN", models.RoleCandidate},
		{"caller", models.RoleCandidate},
		{"customer", models.RoleCandidate},
		{"client", models.RoleCandidate},
		{"candidate", models.RoleCandidate},
	}
	for _, tc := range cases {
		ev, ok := Classify(map[string]any{"role": tc.raw, "text": "hi"}, models.TransportPrimary)
		if !ok {
			t.Errorf("role %q: expected frame to be kept", tc.raw)
			continue
		}
		if ev.Role != tc.want {
			t.Errorf("role %q: expected %v, got %v", tc.raw, tc.want, ev.Role)
		}
	}
}

func TestClassify_UnknownRoleDropped(t *testing.T) {
	for _, raw := range []string{"", "system", "moderator", "42"} {
		if _, ok := Classify(map[string]any{"role": raw, "text": "hi"}, models.TransportPrimary); ok {
			t.Errorf("role %q: expected frame to be dropped", raw)
		}
	}
}

func TestClassify_TranscriptPhases(t *testing.T) {
	partials := []string{"partial", "Interim", "TEMP", "temporary"}
	for _, tt := range partials {
		ev, ok := Classify(map[string]any{
			"role": "user", "type": "transcript", "transcriptType": tt, "transcript": "so",
		}, models.TransportPrimary)
		if !ok || ev.Phase != models.PhasePartial {
			t.Errorf("transcriptType %q: expected partial, got %v (ok=%v)", tt, ev.Phase, ok)
		}
	}

	finals := []string{"final", "Finalized", "complete", "COMPLETED"}
	for _, tt := range finals {
		ev, ok := Classify(map[string]any{
			"role": "user", "type": "transcript", "transcriptType": tt, "transcript": "so",
		}, models.TransportPrimary)
		if !ok || ev.Phase != models.PhaseFinal {
			t.Errorf("transcriptType %q: expected final, got %v (ok=%v)", tt, ev.Phase, ok)
		}
	}

	ev, ok := Classify(map[string]any{
		"role": "user", "type": "transcript", "transcriptType": "weird", "transcript": "so",
	}, models.TransportPrimary)
	if !ok || ev.Phase != models.PhaseUnspecified {
		t.Errorf("unrecognized transcriptType: expected unspecified, got %v (ok=%v)", ev.Phase, ok)
	}
}

func TestClassify_ImplicitFinal(t *testing.T) {
	// discrete model-output frame
	ev, ok := Classify(map[string]any{
		"role": "assistant", "type": "model-output", "output": "Tell me about yourself.",
	}, models.TransportPrimary)
	if !ok || ev.Phase != models.PhaseFinal || ev.Text != "Tell me about yourself." {
		t.Errorf("model-output: expected implicit final, got %+v (ok=%v)", ev, ok)
	}

	// untyped frame with text
	ev, ok = Classify(map[string]any{"role": "assistant", "text": "Hello."}, models.TransportSecondary)
	if !ok || ev.Phase != models.PhaseFinal {
		t.Errorf("untyped: expected implicit final, got %+v (ok=%v)", ev, ok)
	}
	if ev.Transport != models.TransportSecondary {
		t.Errorf("expected transport to be carried through, got %v", ev.Transport)
	}
}
