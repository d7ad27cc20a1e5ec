package main

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/nexai-hq/interview-gateway/config"
	"github.com/nexai-hq/interview-gateway/internal/api/handlers"
	"github.com/nexai-hq/interview-gateway/internal/api/middleware"
	"github.com/nexai-hq/interview-gateway/internal/api/routes"
	"github.com/nexai-hq/interview-gateway/internal/cache"
	"github.com/nexai-hq/interview-gateway/internal/interview"
	"github.com/nexai-hq/interview-gateway/internal/logger"
	"github.com/nexai-hq/interview-gateway/internal/media"
	"github.com/nexai-hq/interview-gateway/internal/provider"
	"github.com/nexai-hq/interview-gateway/internal/provider/vapi"
	"github.com/nexai-hq/interview-gateway/internal/services"
	"github.com/nexai-hq/interview-gateway/internal/transcript"
)

func main() {
	_ = godotenv.Load()

	l := logger.New()

	if err := config.InitRedis(); err != nil {
		log.Fatalf("Redis init error: %v", err)
	}
	l.Info("redis connected")

	sink := transcript.NewRedisSink(config.RedisClient)
	captureSrc := &media.NullSource{Log: l}

	newCommander := func(controlURL string) provider.Commander {
		return vapi.NewControlClient(controlURL)
	}
	dialMonitor := func(ctx context.Context, url string, handler func(map[string]any)) (io.Closer, error) {
		return vapi.DialListener(ctx, url, l.WithField("channel", "monitor"), handler)
	}

	sessions := services.NewSessionService(
		config.InterviewConfig(), l, sink, captureSrc, newCommander, interview.MonitorDialer(dialMonitor),
	)
	metadata := services.NewMetadataService(
		config.UpstreamBaseURL(),
		cache.NewRedisCache(config.RedisClient),
		10*time.Minute,
	)

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(l))

	routes.RegisterRoutes(r, routes.Deps{
		Session:  handlers.NewSessionHandler(sessions, metadata),
		Metadata: handlers.NewMetadataHandler(metadata),
		WS:       handlers.NewWSHandler(sessions, config.RedisClient),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	l.WithFields(logrus.Fields{"port": port}).Info("interview gateway listening")
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
