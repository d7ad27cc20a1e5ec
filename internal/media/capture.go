// Package media models the candidate's camera capture as an external
// collaborator. The gateway never touches frames; it only owns acquisition
// and release so that every session exit path stops the capture and no live
// camera indicator leaks.
package media

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Capture is a live capture handle. Stop must be idempotent.
type Capture interface {
	Stop() error
}

// Source acquires a capture for a session. A denied permission surfaces as
// an error; the interview continues in degraded no-self-view mode.
type Source interface {
	Acquire(ctx context.Context, sessionID string) (Capture, error)
}

// NullSource tracks acquisition and release without a real device. The
// actual camera lives in the browser; the gateway keeps the handle so
// teardown stays honest.
type NullSource struct {
	Log *logrus.Logger
}

func (s *NullSource) Acquire(ctx context.Context, sessionID string) (Capture, error) {
	if s.Log != nil {
		s.Log.WithField("session_id", sessionID).Debug("capture acquired")
	}
	return &nullCapture{log: s.Log, sessionID: sessionID}, nil
}

type nullCapture struct {
	log       *logrus.Logger
	sessionID string
	stopped   bool
}

func (c *nullCapture) Stop() error {
	if c.stopped {
		return nil
	}
	c.stopped = true
	if c.log != nil {
		c.log.WithField("session_id", c.sessionID).Debug("capture released")
	}
	return nil
}
