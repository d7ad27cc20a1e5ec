package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/nexai-hq/interview-gateway/internal/models"
	"github.com/nexai-hq/interview-gateway/internal/services"
	"github.com/nexai-hq/interview-gateway/internal/transcript"
	"github.com/nexai-hq/interview-gateway/internal/utils"
)

// WSHandler is the UI-facing socket for one live interview. Inbound, the
// browser relays provider SDK callbacks (frames and lifecycle signals);
// outbound, the handler forwards the transcript snapshots and status
// updates that the session controller publishes over redis.
type WSHandler struct {
	sessions services.SessionService
	redis    *redis.Client
	upgrader websocket.Upgrader
}

func NewWSHandler(sessions services.SessionService, rdb *redis.Client) *WSHandler {
	return &WSHandler{
		sessions: sessions,
		redis:    rdb,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origin in prod
		},
	}
}

type wsClientMsg struct {
	Type string `json:"type"` // call-start | message | call-end | error

	Call  *models.CallInfo `json:"call,omitempty"`
	Frame map[string]any   `json:"frame,omitempty"`
	Error string           `json:"error,omitempty"`
}

type wsConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) writeText(b []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.c.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return w.c.WriteMessage(websocket.TextMessage, b)
}

func (h *WSHandler) InterviewWS(c *gin.Context) {
	candidateID, ok := requireCandidateID(c)
	if !ok {
		return
	}

	sessionID := c.Param("session_id")
	if sessionID == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, "WSHandler.InterviewWS", "missing session_id", nil))
		return
	}

	iv, err := h.sessions.Get(c.Request.Context(), sessionID)
	if err != nil {
		writeError(c, err)
		return
	}
	if iv.CandidateID != candidateID {
		writeError(c, utils.E(utils.CodeForbidden, "WSHandler.InterviewWS", "forbidden", nil))
		return
	}

	ctrl, ok := h.sessions.Controller(sessionID)
	if !ok {
		writeError(c, utils.E(utils.CodeNotFound, "WSHandler.InterviewWS", "session not live", nil))
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote response in most cases
		return
	}
	defer conn.Close()

	wc := &wsConn{c: conn}
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	pubsub := h.redis.Subscribe(ctx,
		transcript.SnapshotChannel(sessionID),
		transcript.StatusChannel(sessionID),
	)
	defer pubsub.Close()

	// reader: browser relay -> controller
	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		// a vanished browser must still release the camera and stop the clock
		defer ctrl.Stop()

		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			return nil
		})

		for {
			_, data, rerr := conn.ReadMessage()
			if rerr != nil {
				return
			}
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))

			var msg wsClientMsg
			if err := json.Unmarshal(data, &msg); err != nil {
				_ = wc.writeText([]byte(`{"type":"error","code":"INVALID_ARGUMENT","message":"invalid json"}`))
				continue
			}

			switch msg.Type {
			case "call-start":
				if msg.Call == nil {
					_ = wc.writeText([]byte(`{"type":"error","code":"INVALID_ARGUMENT","message":"call info required"}`))
					continue
				}
				ctrl.CallStart(*msg.Call)

			case "message":
				if msg.Frame == nil {
					continue
				}
				ctrl.PushFrame(msg.Frame)

			case "call-end":
				ctrl.CallEnd()
				return

			case "error":
				ctrl.Fail(errors.New(msg.Error))
				return

			default:
				_ = wc.writeText([]byte(`{"type":"error","code":"INVALID_ARGUMENT","message":"unknown message type"}`))
			}
		}
	}()

	// writer: redis pub/sub -> browser
	for {
		select {
		case <-readDone:
			return
		case <-ctx.Done():
			return
		default:
			m, err := pubsub.ReceiveMessage(ctx)
			if err != nil {
				return
			}
			// payload is already JSON
			if werr := wc.writeText([]byte(m.Payload)); werr != nil {
				return
			}
		}
	}
}
