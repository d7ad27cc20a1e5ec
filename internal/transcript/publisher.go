// Package transcript fans reconciled transcript state out to whoever
// renders it. The controller publishes a snapshot after every mutation, in
// mutation order; the UI WebSocket handler subscribes and forwards.
package transcript

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/nexai-hq/interview-gateway/internal/models"
)

// Sink receives transcript state and session status updates.
type Sink interface {
	PublishSnapshot(ctx context.Context, snap models.TranscriptSnapshot) error
	PublishStatus(ctx context.Context, sessionID, status, message string) error
}

// SnapshotChannel is the redis pub/sub channel carrying transcript
// snapshots for a session.
func SnapshotChannel(sessionID string) string {
	return "interview:" + sessionID + ":transcript"
}

// StatusChannel is the redis pub/sub channel carrying lifecycle status.
func StatusChannel(sessionID string) string {
	return "interview:" + sessionID + ":status"
}

type statusMsg struct {
	Type    string `json:"type"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// RedisSink publishes over redis pub/sub.
type RedisSink struct {
	rdb *redis.Client
}

func NewRedisSink(rdb *redis.Client) *RedisSink {
	return &RedisSink{rdb: rdb}
}

func (s *RedisSink) PublishSnapshot(ctx context.Context, snap models.TranscriptSnapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.rdb.Publish(ctx, SnapshotChannel(snap.SessionID), b).Err()
}

func (s *RedisSink) PublishStatus(ctx context.Context, sessionID, status, message string) error {
	b, err := json.Marshal(statusMsg{Type: "status", Status: status, Message: message})
	if err != nil {
		return err
	}
	return s.rdb.Publish(ctx, StatusChannel(sessionID), b).Err()
}
