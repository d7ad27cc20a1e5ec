package interview

import (
	"strings"

	"github.com/nexai-hq/interview-gateway/internal/models"
)

// Fixed role and phase vocabularies. Matching is case-insensitive; a role
// outside both sets means the frame is dropped entirely.
var (
	assistantRoles = []string{"assistant", "ai", "bot"}
	candidateRoles = []string{"user", "human", "caller", "customer", "client", "candidate"}

	partialPhases = []string{"partial", "interim", "temp", "temporary"}
	finalPhases   = []string{"final", "finalized", "complete", "completed"}
)

func matchToken(v string, vocab []string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, t := range vocab {
		if v == t {
			return true
		}
	}
	return false
}

func roleOf(frame map[string]any) models.Role {
	raw, _ := frame["role"].(string)
	switch {
	case matchToken(raw, assistantRoles):
		return models.RoleAssistant
	case matchToken(raw, candidateRoles):
		return models.RoleCandidate
	default:
		return models.RoleUnknown
	}
}

// Classify maps a raw provider frame into a SpeechEvent. ok is false when
// the frame carries an unrecognized role; such frames update nothing.
//
// Transcript frames resolve their phase from transcriptType. Any other
// frame (a discrete model-output, or an untyped frame) is implicitly final:
// there is no in-flight form of it to supersede.
func Classify(frame map[string]any, transport models.Transport) (models.SpeechEvent, bool) {
	if frame == nil {
		return models.SpeechEvent{}, false
	}

	role := roleOf(frame)
	if role == models.RoleUnknown {
		return models.SpeechEvent{}, false
	}

	ev := models.SpeechEvent{
		Role:      role,
		Text:      pickText(frame),
		Transport: transport,
	}

	typ, _ := frame["type"].(string)
	if typ == "transcript" {
		tt, _ := frame["transcriptType"].(string)
		switch {
		case matchToken(tt, partialPhases):
			ev.Phase = models.PhasePartial
		case matchToken(tt, finalPhases):
			ev.Phase = models.PhaseFinal
		default:
			ev.Phase = models.PhaseUnspecified
		}
		return ev, true
	}

	ev.Phase = models.PhaseFinal
	return ev, true
}
