package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nexai-hq/interview-gateway/internal/models"
	"github.com/nexai-hq/interview-gateway/internal/services"
	"github.com/nexai-hq/interview-gateway/internal/utils"
)

type SessionHandler struct {
	sessions services.SessionService
	metadata services.MetadataService
}

func NewSessionHandler(sessions services.SessionService, metadata services.MetadataService) *SessionHandler {
	return &SessionHandler{sessions: sessions, metadata: metadata}
}

type StartInterviewRequest struct {
	AssistantID string                   `json:"assistant_id"`
	ResumeID    string                   `json:"resume_id"`
	Metadata    models.InterviewMetadata `json:"metadata"`
}

type StartInterviewResponse struct {
	SessionID   string `json:"session_id"`
	AssistantID string `json:"assistant_id"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

// Start creates a live session. The assistant can be given directly or
// resolved from a resume ID via the upstream interview API.
func (h *SessionHandler) Start(c *gin.Context) {
	candidateID, ok := requireCandidateID(c)
	if !ok {
		return
	}

	var req StartInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SessionHandler.Start", "invalid request body", err))
		return
	}

	assistantID := req.AssistantID
	if assistantID == "" && req.ResumeID != "" {
		profile, err := h.metadata.AssistantForResume(c.Request.Context(), req.ResumeID)
		if err != nil {
			writeError(c, err)
			return
		}
		assistantID = profile.AssistantID
		if req.Metadata.ResumeID == "" {
			req.Metadata.ResumeID = req.ResumeID
		}
	}
	if assistantID == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SessionHandler.Start", "assistant_id or resume_id is required", nil))
		return
	}

	iv, err := h.sessions.Start(c.Request.Context(), candidateID, assistantID, req.Metadata)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, StartInterviewResponse{
		SessionID:   iv.SessionID,
		AssistantID: iv.AssistantID,
		Status:      iv.Status,
		CreatedAt:   iv.CreatedAt.Format(time.RFC3339),
	})
}

func (h *SessionHandler) Get(c *gin.Context) {
	candidateID, ok := requireCandidateID(c)
	if !ok {
		return
	}

	sessionID := c.Param("session_id")
	iv, err := h.sessions.Get(c.Request.Context(), sessionID)
	if err != nil {
		writeError(c, err)
		return
	}

	if iv.CandidateID != candidateID {
		writeError(c, utils.E(utils.CodeForbidden, "SessionHandler.Get", "forbidden", nil))
		return
	}

	c.JSON(http.StatusOK, iv)
}

func (h *SessionHandler) End(c *gin.Context) {
	candidateID, ok := requireCandidateID(c)
	if !ok {
		return
	}

	sessionID := c.Param("session_id")

	iv, err := h.sessions.Get(c.Request.Context(), sessionID)
	if err != nil {
		writeError(c, err)
		return
	}
	if iv.CandidateID != candidateID {
		writeError(c, utils.E(utils.CodeForbidden, "SessionHandler.End", "forbidden", nil))
		return
	}

	ended, err := h.sessions.End(c.Request.Context(), sessionID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ended)
}
