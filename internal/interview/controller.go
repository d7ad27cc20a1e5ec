package interview

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/nexai-hq/interview-gateway/internal/media"
	"github.com/nexai-hq/interview-gateway/internal/models"
	"github.com/nexai-hq/interview-gateway/internal/observability/metrics"
	"github.com/nexai-hq/interview-gateway/internal/provider"
	"github.com/nexai-hq/interview-gateway/internal/transcript"
)

// Config holds the per-session timing parameters.
type Config struct {
	DurationSeconds int
	Closure         ClosureConfig
}

func DefaultConfig() Config {
	return Config{
		DurationSeconds: 600,
		Closure:         DefaultClosureConfig(),
	}
}

// CommanderFactory builds the outbound command client once the control URL
// is known at call-start.
type CommanderFactory func(controlURL string) provider.Commander

// Deps are the collaborators a controller needs.
type Deps struct {
	Log           *logrus.Logger
	Sink          transcript.Sink
	CaptureSource media.Source
	NewCommander  CommanderFactory
	DialMonitor   MonitorDialer
}

// input is one unit of work for the event loop.
type input struct {
	frame     map[string]any
	transport models.Transport

	callStart *models.CallInfo
	callEnd   bool
	fail      error
}

// Controller owns one live interview session. Every piece of mutable state
// (merger, closure machine, clock, capture handle) is touched only from the
// single run loop goroutine, so ordering is exactly the delivery order of
// inputs. The two transports, the clock, and lifecycle signals all funnel
// into that loop.
type Controller struct {
	sessionID string
	cfg       Config
	log       *logrus.Entry

	merger  *Merger
	closure *Closure
	clock   *Clock
	adapter *Adapter

	captureSrc media.Source
	capture    media.Capture
	sink       transcript.Sink

	newCommander CommanderFactory

	in      chan input
	quit    chan struct{}
	done    chan struct{}
	started bool

	stopOnce sync.Once
}

func NewController(sessionID string, cfg Config, deps Deps) *Controller {
	log := deps.Log.WithField("session_id", sessionID)

	c := &Controller{
		sessionID:    sessionID,
		cfg:          cfg,
		log:          log,
		merger:       NewMerger(),
		clock:        NewClock(),
		captureSrc:   deps.CaptureSource,
		sink:         deps.Sink,
		newCommander: deps.NewCommander,
		in:           make(chan input, 64),
		quit:         make(chan struct{}),
		done:         make(chan struct{}),
	}
	c.closure = NewClosure(cfg.Closure, nil, log)
	c.adapter = NewAdapter(c.pushFrame, deps.DialMonitor, log)
	return c
}

// Start launches the event loop.
func (c *Controller) Start() {
	go c.run()
}

// Done is closed once the session has fully torn down.
func (c *Controller) Done() <-chan struct{} { return c.done }

// State reports the closure state; used by the session service and tests.
func (c *Controller) State() ClosureState { return c.closure.State() }

// PushFrame feeds one primary-channel provider frame (the UI relay).
func (c *Controller) PushFrame(frame map[string]any) {
	c.adapter.Push(frame)
}

// CallStart reacts to the provider's call-start signal.
func (c *Controller) CallStart(info models.CallInfo) {
	c.post(input{callStart: &info})
}

// CallEnd reacts to the provider's call-end signal.
func (c *Controller) CallEnd() {
	c.post(input{callEnd: true})
}

// Fail reacts to a provider error signal; it takes the same teardown path
// as a normal call-end.
func (c *Controller) Fail(err error) {
	c.post(input{fail: err})
}

// Stop tears the session down from outside the provider lifecycle, e.g.
// when the UI socket disconnects.
func (c *Controller) Stop() {
	c.stopOnce.Do(func() { close(c.quit) })
}

func (c *Controller) pushFrame(frame map[string]any, transport models.Transport) {
	c.post(input{frame: frame, transport: transport})
}

func (c *Controller) post(in input) {
	select {
	case c.in <- in:
	case <-c.done:
	}
}

func (c *Controller) run() {
	defer c.teardown()

	for {
		select {
		case <-c.quit:
			return
		case in := <-c.in:
			switch {
			case in.callStart != nil:
				c.handleCallStart(*in.callStart)
			case in.callEnd:
				c.log.Info("call ended")
				return
			case in.fail != nil:
				c.log.WithError(in.fail).Error("provider session error")
				return
			case in.frame != nil:
				c.handleFrame(in.frame, in.transport)
			}
		case remaining := <-c.clock.C():
			c.handleTick(remaining)
		}
	}
}

func (c *Controller) handleCallStart(info models.CallInfo) {
	if c.started {
		c.log.Warn("duplicate call-start ignored")
		return
	}
	c.started = true
	c.log.WithField("call_id", info.CallID).Info("call started")

	capture, err := c.captureSrc.Acquire(context.Background(), c.sessionID)
	if err != nil {
		c.log.WithError(err).Warn("camera unavailable, continuing without self view")
	} else {
		c.capture = capture
	}

	if info.ControlURL != "" && c.newCommander != nil {
		c.closure.SetCommander(c.newCommander(info.ControlURL))
	}

	c.clock.Start(c.cfg.DurationSeconds)
	c.adapter.AttachMonitor(context.Background(), info.ListenURL)

	metrics.Default.SessionsActive.Inc()
	c.publishStatus("active", "interview in progress")
	c.publishSnapshot()
}

func (c *Controller) handleFrame(frame map[string]any, tr models.Transport) {
	metrics.Default.FramesReceived.WithLabelValues(string(tr)).Inc()

	ev, ok := Classify(frame, tr)
	if !ok {
		metrics.Default.FramesDropped.WithLabelValues("unknown_role").Inc()
		return
	}

	mut := c.merger.OnEvent(ev)
	if mut.Appended != nil {
		c.closure.OnTranscript(*mut.Appended)
	}
	if mut.Changed() {
		c.closure.OnBufferChange(c.merger.NaturalBreak())
		c.publishSnapshot()
	}
}

func (c *Controller) handleTick(remaining int) {
	c.closure.OnTick(remaining, c.merger.NaturalBreak())
	c.publishSnapshot()
}

// teardown runs on every exit path: provider end, provider error, or an
// external Stop. Camera release is unconditional.
func (c *Controller) teardown() {
	c.clock.Stop()
	c.adapter.Close()

	if c.capture != nil {
		if err := c.capture.Stop(); err != nil {
			c.log.WithError(err).Warn("failed to release capture")
		}
		c.capture = nil
	}

	c.closure.OnSessionEnd()
	if c.started {
		metrics.Default.SessionsActive.Dec()
	}
	c.publishStatus("ended", "interview completed")
	close(c.done)
}

func (c *Controller) publishSnapshot() {
	remaining, ok := c.clock.Remaining()
	if !ok {
		remaining = 0
	}
	snap := models.TranscriptSnapshot{
		SessionID:        c.sessionID,
		Entries:          c.merger.Entries(),
		AssistantLive:    c.merger.Live(models.RoleAssistant),
		CandidateLive:    c.merger.Live(models.RoleCandidate),
		RemainingSeconds: remaining,
		RemainingDisplay: FormatRemaining(remaining),
	}
	if err := c.sink.PublishSnapshot(context.Background(), snap); err != nil {
		c.log.WithError(err).Warn("failed to publish transcript snapshot")
	}
}

func (c *Controller) publishStatus(status, message string) {
	if err := c.sink.PublishStatus(context.Background(), c.sessionID, status, message); err != nil {
		c.log.WithError(err).Warn("failed to publish status")
	}
}
