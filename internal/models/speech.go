package models

// Role identifies the speaker of an utterance.
type Role string

const (
	RoleAssistant Role = "assistant"
	RoleCandidate Role = "candidate"
	RoleUnknown   Role = "unknown"
)

// Phase identifies whether an utterance is still in flight.
type Phase string

const (
	PhasePartial     Phase = "partial"
	PhaseFinal       Phase = "final"
	PhaseUnspecified Phase = "unspecified"
)

// Transport identifies which channel delivered a frame.
type Transport string

const (
	TransportPrimary   Transport = "primary"
	TransportSecondary Transport = "secondary"
)

// SpeechEvent is one normalized inbound frame. Ephemeral, never persisted.
type SpeechEvent struct {
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Phase     Phase     `json:"phase"`
	Transport Transport `json:"transport"`
}

// LiveBuffer holds the single in-flight partial utterance for a role.
// It is overwritten by each newer partial and cleared by a final.
type LiveBuffer struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// TranscriptEntry is a finalized utterance. Immutable once appended;
// SequenceID increases in insertion order, which is the only ordering
// guarantee across the two transports.
type TranscriptEntry struct {
	SequenceID int64  `json:"sequence_id"`
	Role       Role   `json:"role"`
	Text       string `json:"text"`
}

// TranscriptSnapshot is what the UI renders after every merger mutation:
// the ordered final log plus the live bubbles and the countdown value.
type TranscriptSnapshot struct {
	SessionID        string            `json:"session_id"`
	Entries          []TranscriptEntry `json:"entries"`
	AssistantLive    string            `json:"assistant_live"`
	CandidateLive    string            `json:"candidate_live"`
	RemainingSeconds int               `json:"remaining_seconds"`
	RemainingDisplay string            `json:"remaining_display"`
}
