package interview

import (
	"github.com/nexai-hq/interview-gateway/internal/models"
	"github.com/nexai-hq/interview-gateway/internal/observability/metrics"
)

// Mutation reports what a single event did to the merger state.
type Mutation struct {
	// Appended is the transcript entry created by a final event, nil otherwise.
	Appended *models.TranscriptEntry
	// BufferChanged is true when a live buffer was written or cleared.
	BufferChanged bool
}

func (m Mutation) Changed() bool { return m.Appended != nil || m.BufferChanged }

// Merger reconciles speech events from both transports into per-role live
// buffers and one append-only finalized log. It performs no deduplication:
// a provider that double-delivers the same final utterance over both
// channels produces two entries. That is deliberate; losing an utterance is
// worse than repeating one.
//
// Merger is not safe for concurrent use. The session controller is its only
// caller, from a single event-handling goroutine.
type Merger struct {
	live    map[models.Role]string
	entries []models.TranscriptEntry
	nextSeq int64
}

func NewMerger() *Merger {
	return &Merger{
		live:    make(map[models.Role]string),
		nextSeq: 1,
	}
}

// OnEvent applies one classified event.
//
//   - partial: replace the role's live buffer, even with empty text, so a
//     provider can clear a stalled partial
//   - final with text: append an entry and clear the role's live buffer
//   - final without text, or unspecified phase: no-op
func (m *Merger) OnEvent(ev models.SpeechEvent) Mutation {
	if ev.Role == models.RoleUnknown {
		return Mutation{}
	}

	switch ev.Phase {
	case models.PhasePartial:
		m.live[ev.Role] = ev.Text
		return Mutation{BufferChanged: true}

	case models.PhaseFinal:
		if ev.Text == "" {
			return Mutation{}
		}
		if n := len(m.entries); n > 0 {
			last := m.entries[n-1]
			if last.Role == ev.Role && last.Text == ev.Text {
				metrics.Default.DuplicateFinals.Inc()
			}
		}
		entry := models.TranscriptEntry{
			SequenceID: m.nextSeq,
			Role:       ev.Role,
			Text:       ev.Text,
		}
		m.nextSeq++
		m.entries = append(m.entries, entry)
		cleared := m.live[ev.Role] != ""
		delete(m.live, ev.Role)
		metrics.Default.TranscriptEntries.Inc()
		return Mutation{Appended: &entry, BufferChanged: cleared}

	default:
		return Mutation{}
	}
}

// Live returns the in-flight partial text for a role ("" when none).
func (m *Merger) Live(role models.Role) string {
	return m.live[role]
}

// Entries returns a copy of the finalized log in insertion order.
func (m *Merger) Entries() []models.TranscriptEntry {
	out := make([]models.TranscriptEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// NaturalBreak reports whether neither role currently has live speech.
func (m *Merger) NaturalBreak() bool {
	for _, text := range m.live {
		if text != "" {
			return false
		}
	}
	return true
}

// Reset discards all per-session state so a new session starts clean.
func (m *Merger) Reset() {
	m.live = make(map[models.Role]string)
	m.entries = nil
	m.nextSeq = 1
}
