package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nexai-hq/interview-gateway/internal/interview"
	"github.com/nexai-hq/interview-gateway/internal/media"
	"github.com/nexai-hq/interview-gateway/internal/models"
	"github.com/nexai-hq/interview-gateway/internal/observability/metrics"
	"github.com/nexai-hq/interview-gateway/internal/transcript"
	"github.com/nexai-hq/interview-gateway/internal/utils"
)

type SessionService interface {
	Start(ctx context.Context, candidateID, assistantID string, md models.InterviewMetadata) (*models.Interview, error)
	Get(ctx context.Context, sessionID string) (*models.Interview, error)
	End(ctx context.Context, sessionID string) (*models.Interview, error)
	Controller(sessionID string) (*interview.Controller, bool)
}

type sessionEntry struct {
	iv   *models.Interview
	ctrl *interview.Controller
}

// sessionService is an in-memory registry: a live session owns a running
// event loop, channels, and a capture handle, none of which can live
// outside the process. Nothing here survives a restart, matching the
// session-only lifetime of the reconciled transcript.
type sessionService struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry

	cfg  interview.Config
	deps interview.Deps
	log  *logrus.Logger
}

func NewSessionService(cfg interview.Config, log *logrus.Logger, sink transcript.Sink, captureSrc media.Source, newCommander interview.CommanderFactory, dialMonitor interview.MonitorDialer) SessionService {
	return &sessionService{
		sessions: make(map[string]*sessionEntry),
		cfg:      cfg,
		log:      log,
		deps: interview.Deps{
			Log:           log,
			Sink:          sink,
			CaptureSource: captureSrc,
			NewCommander:  newCommander,
			DialMonitor:   dialMonitor,
		},
	}
}

func (s *sessionService) Start(ctx context.Context, candidateID, assistantID string, md models.InterviewMetadata) (*models.Interview, error) {
	const op = "SessionService.Start"

	if candidateID == "" || assistantID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "candidate_id and assistant_id are required", nil)
	}

	iv := &models.Interview{
		SessionID:   uuid.NewString(),
		CandidateID: candidateID,
		AssistantID: assistantID,
		Status:      "active",
		Metadata:    md,
		CreatedAt:   time.Now().UTC(),
	}

	ctrl := interview.NewController(iv.SessionID, s.cfg, s.deps)
	ctrl.Start()

	s.mu.Lock()
	s.sessions[iv.SessionID] = &sessionEntry{iv: iv, ctrl: ctrl}
	s.mu.Unlock()

	metrics.Default.SessionsStarted.Inc()
	s.log.WithFields(logrus.Fields{
		"session_id":   iv.SessionID,
		"candidate_id": candidateID,
		"assistant_id": assistantID,
	}).Info("interview session started")

	out := *iv
	return &out, nil
}

func (s *sessionService) Get(ctx context.Context, sessionID string) (*models.Interview, error) {
	const op = "SessionService.Get"

	if sessionID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "session_id is required", nil)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.sessions[sessionID]
	if !ok {
		return nil, utils.E(utils.CodeNotFound, op, "session not found", nil)
	}
	iv := *entry.iv
	return &iv, nil
}

func (s *sessionService) End(ctx context.Context, sessionID string) (*models.Interview, error) {
	const op = "SessionService.End"

	if sessionID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "session_id is required", nil)
	}

	s.mu.Lock()
	entry, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return nil, utils.E(utils.CodeNotFound, op, "session not found", nil)
	}

	entry.ctrl.Stop()
	<-entry.ctrl.Done()

	now := time.Now().UTC()
	dur := int64(now.Sub(entry.iv.CreatedAt).Seconds())
	if dur < 0 {
		dur = 0
	}

	// Mutate under the lock: Get hands out the record concurrently. The
	// ended session is evicted here; its terminal state already went out on
	// the status channel during controller teardown.
	s.mu.Lock()
	entry.iv.Status = "ended"
	entry.iv.EndedAt = &now
	entry.iv.DurationSeconds = dur
	ended := *entry.iv
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	s.log.WithField("session_id", sessionID).Info("interview session ended")
	return &ended, nil
}

func (s *sessionService) Controller(sessionID string) (*interview.Controller, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.sessions[sessionID]
	if !ok {
		return nil, false
	}
	return entry.ctrl, true
}
