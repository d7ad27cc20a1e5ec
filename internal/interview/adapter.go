package interview

import (
	"context"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/nexai-hq/interview-gateway/internal/models"
)

// MonitorDialer opens the secondary monitor channel. Injected so tests can
// fake the provider socket.
type MonitorDialer func(ctx context.Context, url string, handler func(frame map[string]any)) (io.Closer, error)

// Adapter is the dual-channel ingress for one session. The primary channel
// is whatever calls Push (the UI relay forwarding provider SDK callbacks);
// the secondary is the provider's monitor socket, attached at call-start
// when a listen URL exists. Both feed the same downstream pipeline and the
// partial redundancy between them is tolerated, not suppressed.
type Adapter struct {
	push func(frame map[string]any, transport models.Transport)
	dial MonitorDialer
	log  *logrus.Entry

	mu      sync.Mutex
	monitor io.Closer
}

func NewAdapter(push func(frame map[string]any, transport models.Transport), dial MonitorDialer, log *logrus.Entry) *Adapter {
	return &Adapter{push: push, dial: dial, log: log}
}

// Push feeds one primary-channel frame.
func (a *Adapter) Push(frame map[string]any) {
	a.push(frame, models.TransportPrimary)
}

// AttachMonitor opens the secondary channel. An empty URL silently degrades
// to single-channel operation; a connection failure is logged and the
// session continues on the primary channel alone.
func (a *Adapter) AttachMonitor(ctx context.Context, listenURL string) {
	if listenURL == "" {
		a.log.Debug("no monitor url, running single-channel")
		return
	}

	monitor, err := a.dial(ctx, listenURL, func(frame map[string]any) {
		a.push(frame, models.TransportSecondary)
	})
	if err != nil {
		a.log.WithError(err).Warn("monitor channel unavailable, continuing on primary only")
		return
	}

	a.mu.Lock()
	a.monitor = monitor
	a.mu.Unlock()
}

// Close tears down the secondary channel if open.
func (a *Adapter) Close() {
	a.mu.Lock()
	monitor := a.monitor
	a.monitor = nil
	a.mu.Unlock()

	if monitor != nil {
		_ = monitor.Close()
	}
}
