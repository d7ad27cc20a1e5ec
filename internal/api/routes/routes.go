package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nexai-hq/interview-gateway/internal/api/handlers"
	"github.com/nexai-hq/interview-gateway/internal/api/middleware"
)

type Deps struct {
	Session  *handlers.SessionHandler
	Metadata *handlers.MetadataHandler
	WS       *handlers.WSHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Protected routes (JWT interview token)
	auth := r.Group("/")
	auth.Use(middleware.JWTAuth())

	auth.POST("/interview/start", d.Session.Start)
	auth.GET("/interview/session/:session_id", d.Session.Get)
	auth.POST("/interview/session/:session_id/end", d.Session.End)

	auth.GET("/interview/resume/:resume_id", d.Metadata.ResumeAssistant)

	// WebSocket
	auth.GET("/ws/interview/:session_id", d.WS.InterviewWS)
}
