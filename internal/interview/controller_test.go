package interview

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nexai-hq/interview-gateway/internal/media"
	"github.com/nexai-hq/interview-gateway/internal/models"
	"github.com/nexai-hq/interview-gateway/internal/provider"
)

type memSink struct {
	mu       sync.Mutex
	snaps    []models.TranscriptSnapshot
	statuses []string
}

func (s *memSink) PublishSnapshot(ctx context.Context, snap models.TranscriptSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps = append(s.snaps, snap)
	return nil
}

func (s *memSink) PublishStatus(ctx context.Context, sessionID, status, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses = append(s.statuses, status)
	return nil
}

func (s *memSink) lastSnap() (models.TranscriptSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.snaps) == 0 {
		return models.TranscriptSnapshot{}, false
	}
	return s.snaps[len(s.snaps)-1], true
}

func (s *memSink) hasStatus(status string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.statuses {
		if st == status {
			return true
		}
	}
	return false
}

type fakeCapture struct {
	mu      sync.Mutex
	stopped bool
}

func (c *fakeCapture) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
	return nil
}

func (c *fakeCapture) isStopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}

type fakeMonitor struct {
	mu     sync.Mutex
	closed bool
}

func (m *fakeMonitor) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *fakeMonitor) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

type testHarness struct {
	ctrl    *Controller
	sink    *memSink
	capture *fakeCapture
	monitor *fakeMonitor
	cmd     *fakeCommander

	mu        sync.Mutex
	dialedURL string
	handler   func(map[string]any)
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()

	h := &testHarness{
		sink:    &memSink{},
		capture: &fakeCapture{},
		monitor: &fakeMonitor{},
		cmd:     &fakeCommander{},
	}

	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)

	cfg := DefaultConfig()
	ctrl := NewController("sess-1", cfg, Deps{
		Log:           l,
		Sink:          h.sink,
		CaptureSource: &harnessCaptureSource{h: h},
		NewCommander:  func(controlURL string) provider.Commander { return h.cmd },
		DialMonitor: func(ctx context.Context, url string, handler func(map[string]any)) (io.Closer, error) {
			h.mu.Lock()
			h.dialedURL = url
			h.handler = handler
			h.mu.Unlock()
			return h.monitor, nil
		},
	})
	h.ctrl = ctrl
	ctrl.Start()
	return h
}

type harnessCaptureSource struct {
	h   *testHarness
	err error
}

func (s *harnessCaptureSource) Acquire(ctx context.Context, sessionID string) (media.Capture, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.h.capture, nil
}

func (h *testHarness) secondary(frame map[string]any) {
	h.mu.Lock()
	handler := h.handler
	h.mu.Unlock()
	if handler != nil {
		handler(frame)
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func waitDone(t *testing.T, ctrl *Controller) {
	t.Helper()
	select {
	case <-ctrl.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("controller did not tear down")
	}
}

func callInfo() models.CallInfo {
	return models.CallInfo{
		CallID:     "call-1",
		ListenURL:  "wss://monitor.example/listen",
		ControlURL: "https://monitor.example/control",
	}
}

func TestController_LifecycleAndTranscriptFlow(t *testing.T) {
	h := newHarness(t)

	h.ctrl.CallStart(callInfo())
	waitFor(t, "active status", func() bool { return h.sink.hasStatus("active") })

	h.mu.Lock()
	dialed := h.dialedURL
	h.mu.Unlock()
	if dialed != "wss://monitor.example/listen" {
		t.Errorf("expected monitor attach, dialed %q", dialed)
	}

	// primary partial shows up as live text
	h.ctrl.PushFrame(map[string]any{
		"role": "user", "type": "transcript", "transcriptType": "partial", "transcript": "I think",
	})
	waitFor(t, "candidate live text", func() bool {
		snap, ok := h.sink.lastSnap()
		return ok && snap.CandidateLive == "I think"
	})

	// secondary final lands in the log and clears the buffer
	h.secondary(map[string]any{
		"role": "user", "type": "transcript", "transcriptType": "final", "transcript": "I think it went well.",
	})
	waitFor(t, "final entry", func() bool {
		snap, ok := h.sink.lastSnap()
		return ok && len(snap.Entries) == 1 && snap.CandidateLive == ""
	})

	h.ctrl.CallEnd()
	waitDone(t, h.ctrl)

	if !h.capture.isStopped() {
		t.Error("camera capture must be released on call-end")
	}
	if !h.monitor.isClosed() {
		t.Error("monitor channel must be closed on call-end")
	}
	if h.ctrl.State() != StateEnded {
		t.Errorf("expected ENDED, got %v", h.ctrl.State())
	}
	if !h.sink.hasStatus("ended") {
		t.Error("expected ended status to be published")
	}
}

func TestController_DoubleDeliveryAcrossTransports(t *testing.T) {
	h := newHarness(t)
	h.ctrl.CallStart(callInfo())
	waitFor(t, "active status", func() bool { return h.sink.hasStatus("active") })

	frame := map[string]any{
		"role": "assistant", "type": "transcript", "transcriptType": "final",
		"transcript": "Tell me about yourself",
	}
	h.ctrl.PushFrame(frame)
	h.secondary(frame)

	waitFor(t, "two duplicate entries", func() bool {
		snap, ok := h.sink.lastSnap()
		return ok && len(snap.Entries) == 2
	})

	h.ctrl.CallEnd()
	waitDone(t, h.ctrl)
}

func TestController_UnknownRoleFramesIgnored(t *testing.T) {
	h := newHarness(t)
	h.ctrl.CallStart(callInfo())
	waitFor(t, "active status", func() bool { return h.sink.hasStatus("active") })

	h.ctrl.PushFrame(map[string]any{"role": "system", "text": "internal"})
	h.ctrl.PushFrame(map[string]any{"role": "user", "text": "kept"})

	waitFor(t, "single entry", func() bool {
		snap, ok := h.sink.lastSnap()
		return ok && len(snap.Entries) == 1 && snap.Entries[0].Text == "kept"
	})

	h.ctrl.CallEnd()
	waitDone(t, h.ctrl)
}

func TestController_CameraDeniedContinuesDegraded(t *testing.T) {
	sink := &memSink{}
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)

	ctrl := NewController("sess-denied", DefaultConfig(), Deps{
		Log:           l,
		Sink:          sink,
		CaptureSource: &harnessCaptureSource{err: errors.New("permission denied")},
		DialMonitor: func(ctx context.Context, url string, handler func(map[string]any)) (io.Closer, error) {
			return nil, errors.New("unused")
		},
	})
	ctrl.Start()

	ctrl.CallStart(models.CallInfo{CallID: "call-3"})
	waitFor(t, "active status despite camera denial", func() bool { return sink.hasStatus("active") })

	ctrl.PushFrame(map[string]any{"role": "user", "text": "no self view, still recorded"})
	waitFor(t, "entry in degraded mode", func() bool {
		snap, ok := sink.lastSnap()
		return ok && len(snap.Entries) == 1
	})

	ctrl.CallEnd()
	waitDone(t, ctrl)
}

func TestController_ProviderErrorTakesTeardownPath(t *testing.T) {
	h := newHarness(t)
	h.ctrl.CallStart(callInfo())
	waitFor(t, "active status", func() bool { return h.sink.hasStatus("active") })

	h.ctrl.Fail(errors.New("provider connection lost"))
	waitDone(t, h.ctrl)

	if !h.capture.isStopped() {
		t.Error("camera capture must be released on provider error")
	}
	if !h.monitor.isClosed() {
		t.Error("monitor channel must be closed on provider error")
	}
}

func TestController_ExternalStopReleasesEverything(t *testing.T) {
	h := newHarness(t)
	h.ctrl.CallStart(callInfo())
	waitFor(t, "active status", func() bool { return h.sink.hasStatus("active") })

	h.ctrl.Stop()
	waitDone(t, h.ctrl)

	if !h.capture.isStopped() {
		t.Error("camera capture must be released on external stop")
	}
}

func TestController_NoMonitorURLRunsSingleChannel(t *testing.T) {
	h := newHarness(t)
	h.ctrl.CallStart(models.CallInfo{CallID: "call-2"})
	waitFor(t, "active status", func() bool { return h.sink.hasStatus("active") })

	h.mu.Lock()
	dialed := h.dialedURL
	h.mu.Unlock()
	if dialed != "" {
		t.Errorf("expected no monitor dial, got %q", dialed)
	}

	h.ctrl.PushFrame(map[string]any{"role": "user", "text": "still works"})
	waitFor(t, "entry on primary only", func() bool {
		snap, ok := h.sink.lastSnap()
		return ok && len(snap.Entries) == 1
	})

	h.ctrl.CallEnd()
	waitDone(t, h.ctrl)
}
