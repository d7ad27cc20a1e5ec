package interview

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nexai-hq/interview-gateway/internal/models"
	"github.com/nexai-hq/interview-gateway/internal/observability/metrics"
	"github.com/nexai-hq/interview-gateway/internal/provider"
)

// ClosureState is the lifecycle of the timed wrap-up for one session.
type ClosureState int

const (
	// StateRunning - interview in progress, no closure action taken.
	StateRunning ClosureState = iota
	// StateWarnPending - warn threshold crossed during a recent question;
	// the warning waits for a natural break.
	StateWarnPending
	// StateWarnSent - wrap-up directive delivered.
	StateWarnSent
	// StateInterruptSent - hard interrupt delivered.
	StateInterruptSent
	// StateEnded - provider session is over. Terminal.
	StateEnded
)

func (s ClosureState) String() string {
	switch s {
	case StateRunning:
		return "RUNNING"
	case StateWarnPending:
		return "WARN_PENDING"
	case StateWarnSent:
		return "WARN_SENT"
	case StateInterruptSent:
		return "INTERRUPT_SENT"
	case StateEnded:
		return "ENDED"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(s))
	}
}

// ClosureConfig holds the wrap-up thresholds. Observed deployments run
// anywhere from 3 to 10 minute interviews with different grace windows, so
// none of these are hardcoded.
type ClosureConfig struct {
	WarnThresholdSeconds      int           // countdown value that triggers the warn
	InterruptThresholdSeconds int           // countdown value of the hard interrupt
	QuestionLookback          time.Duration // how recent a question defers the warn
	WarnMinGrace              time.Duration // minimum post-question wait before a deferred warn
	WarnMaxWait               time.Duration // ceiling on deferring the warn
	HaltDelay                 time.Duration // gap between stop-speech and the closing say
}

func DefaultClosureConfig() ClosureConfig {
	return ClosureConfig{
		WarnThresholdSeconds:      60,
		InterruptThresholdSeconds: 15,
		QuestionLookback:          12 * time.Second,
		WarnMinGrace:              20 * time.Second,
		WarnMaxWait:               30 * time.Second,
		HaltDelay:                 100 * time.Millisecond,
	}
}

const warnDirective = "Time is almost up. Do not ask the candidate any new questions. " +
	"Begin wrapping up the interview and guide the conversation to a natural close."

const interruptDirective = "IMMEDIATE INTERRUPTION REQUIRED - OVERRIDE ALL OTHER ACTIONS: " +
	"1. Stop listening to the candidate immediately. " +
	"2. Say \"Sorry to interrupt, but we need to end the interview now.\" " +
	"3. Then immediately say: \"Thank you for your time. This concludes our interview. " +
	"We will review your responses and get back to you soon. Have a great day!\" " +
	"4. Speak warmly but efficiently. " +
	"5. Do NOT wait for a candidate response after this."

const closingStatement = "Sorry to interrupt, but we need to end the interview now. " +
	"Thank you for your time. This concludes our interview. We will review your " +
	"responses and get back to you soon. Have a great day!"

// Closure drives the warn / interrupt / end behavior for one session. It is
// owned by the session controller and only ever touched from the single
// event-handling goroutine; a new session constructs a fresh instance.
//
// Transitions:
//
//	RUNNING ──(warn threshold, recent question)──→ WARN_PENDING
//	RUNNING ──(warn threshold, no recent question)──→ WARN_SENT
//	WARN_PENDING ──(natural break + grace, or max wait)──→ WARN_SENT
//	WARN_SENT ──(interrupt threshold, unconditional)──→ INTERRUPT_SENT
//	INTERRUPT_SENT ──(provider end/error)──→ ENDED
//
// Warn and interrupt each fire at most once per session regardless of how
// often their threshold value is observed.
type Closure struct {
	cfg ClosureConfig
	cmd provider.Commander
	log *logrus.Entry

	state         ClosureState
	warnSent      bool
	interruptSent bool

	lastQuestionAt time.Time // zero when no question seen yet
	warnDeferredAt time.Time // when WARN_PENDING was entered

	now   func() time.Time
	sleep func(time.Duration)
}

func NewClosure(cfg ClosureConfig, cmd provider.Commander, log *logrus.Entry) *Closure {
	return &Closure{
		cfg:   cfg,
		cmd:   cmd,
		log:   log,
		state: StateRunning,
		now:   time.Now,
		sleep: time.Sleep,
	}
}

func (c *Closure) State() ClosureState { return c.state }
func (c *Closure) WarnSent() bool      { return c.warnSent }
func (c *Closure) InterruptSent() bool { return c.interruptSent }

// SetCommander rebinds the outbound command channel once the control URL is
// known at call-start.
func (c *Closure) SetCommander(cmd provider.Commander) { c.cmd = cmd }

// OnTranscript feeds a finalized utterance into the question detector.
func (c *Closure) OnTranscript(entry models.TranscriptEntry) {
	if entry.Role == models.RoleAssistant && looksLikeQuestion(entry.Text) {
		c.lastQuestionAt = c.now()
	}
}

// OnTick evaluates thresholds against a fresh countdown value.
func (c *Closure) OnTick(remaining int, naturalBreak bool) {
	if c.state == StateEnded {
		return
	}

	if remaining == c.cfg.WarnThresholdSeconds && !c.warnSent && c.state == StateRunning {
		if c.questionRecent() {
			c.state = StateWarnPending
			c.warnDeferredAt = c.now()
			c.log.WithField("remaining", remaining).Info("warn deferred: question asked recently")
		} else {
			c.sendWarn()
		}
	}

	if c.state == StateWarnPending {
		c.evaluateDeferredWarn(naturalBreak)
	}

	if remaining == c.cfg.InterruptThresholdSeconds && !c.interruptSent {
		c.sendInterrupt()
	}
}

// OnBufferChange re-evaluates a deferred warn whenever live speech starts
// or stops.
func (c *Closure) OnBufferChange(naturalBreak bool) {
	if c.state == StateWarnPending {
		c.evaluateDeferredWarn(naturalBreak)
	}
}

// OnSessionEnd reacts to the provider's end or error signal.
func (c *Closure) OnSessionEnd() {
	c.state = StateEnded
}

func (c *Closure) questionRecent() bool {
	if c.lastQuestionAt.IsZero() {
		return false
	}
	return c.now().Sub(c.lastQuestionAt) <= c.cfg.QuestionLookback
}

// evaluateDeferredWarn bounds how long WARN_PENDING can hold the warning:
// send at a natural break once the post-question grace has elapsed, or at
// the max-wait ceiling, whichever comes first.
func (c *Closure) evaluateDeferredWarn(naturalBreak bool) {
	now := c.now()
	if now.Sub(c.warnDeferredAt) >= c.cfg.WarnMaxWait {
		c.sendWarn()
		return
	}
	if naturalBreak && now.Sub(c.lastQuestionAt) >= c.cfg.WarnMinGrace {
		c.sendWarn()
	}
}

func (c *Closure) sendWarn() {
	c.warnSent = true
	c.state = StateWarnSent
	c.send(provider.AddSystemMessage(warnDirective), "warn")
	metrics.Default.DirectivesSent.WithLabelValues("warn").Inc()
	c.log.Info("warn directive sent")
}

// sendInterrupt is the only transition allowed to cut off live speech: it
// is the last guaranteed chance to deliver a closing message before the
// provider session dies. Stop any in-progress speech first, give the halt a
// moment to take effect, then inject the directive and force the closing
// statement.
func (c *Closure) sendInterrupt() {
	c.interruptSent = true
	c.state = StateInterruptSent

	c.send(provider.StopSpeech(), "stop-speech")
	c.sleep(c.cfg.HaltDelay)
	c.send(provider.AddSystemMessage(interruptDirective), "interrupt")
	c.send(provider.Say(closingStatement), "closing-say")

	metrics.Default.DirectivesSent.WithLabelValues("interrupt").Inc()
	c.log.Info("interrupt directive sent")
}

// send logs and swallows delivery failures. A dropped control message
// degrades the wrap-up; it must never crash the live call, and the one-shot
// flags are already set so nothing retries endlessly.
func (c *Closure) send(cmd provider.Command, kind string) {
	if c.cmd == nil {
		c.log.WithField("command", kind).Warn("no commander bound, dropping command")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := c.cmd.Send(ctx, cmd); err != nil {
		c.log.WithError(err).WithField("command", kind).Warn("failed to deliver control command")
	}
}
