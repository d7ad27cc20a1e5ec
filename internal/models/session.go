package models

import "time"

type Interview struct {
	SessionID   string `json:"session_id"`
	CandidateID string `json:"candidate_id"`

	AssistantID string            `json:"assistant_id"`
	Status      string            `json:"status"` // active|ended
	Metadata    InterviewMetadata `json:"metadata,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`

	DurationSeconds int64 `json:"duration_seconds"`
}

type InterviewMetadata struct {
	ResumeID    string `json:"resume_id,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	Position    string `json:"position,omitempty"`
}

// CallInfo is what the provider reports at call-start: the provider call ID
// plus the optional monitor URLs. An absent ListenURL means the session runs
// on the primary channel only.
type CallInfo struct {
	CallID     string `json:"call_id"`
	ListenURL  string `json:"listen_url,omitempty"`
	ControlURL string `json:"control_url,omitempty"`
}

// AssistantProfile is the upstream interview API's record for a resume:
// which provider assistant conducts the interview.
type AssistantProfile struct {
	ResumeID    string `json:"resume_id"`
	AssistantID string `json:"assistant_id"`
	Candidate   string `json:"candidate_name,omitempty"`
	Position    string `json:"position,omitempty"`
}
