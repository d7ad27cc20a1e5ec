package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexai-hq/interview-gateway/internal/services"
)

type MetadataHandler struct {
	metadata services.MetadataService
}

func NewMetadataHandler(metadata services.MetadataService) *MetadataHandler {
	return &MetadataHandler{metadata: metadata}
}

// ResumeAssistant resolves the provider assistant for a resume ID.
func (h *MetadataHandler) ResumeAssistant(c *gin.Context) {
	if _, ok := requireCandidateID(c); !ok {
		return
	}

	profile, err := h.metadata.AssistantForResume(c.Request.Context(), c.Param("resume_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
