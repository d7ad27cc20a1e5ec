// Package config wires process-level dependencies from the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/nexai-hq/interview-gateway/internal/interview"
)

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envSeconds(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return time.Duration(n) * time.Second
		}
	}
	return def
}

// InterviewConfig loads the countdown and closure thresholds. Every value
// is tunable: observed deployments run 3 to 10 minute interviews with
// different grace windows.
func InterviewConfig() interview.Config {
	cfg := interview.DefaultConfig()
	cfg.DurationSeconds = envInt("INTERVIEW_DURATION_SECONDS", cfg.DurationSeconds)
	cfg.Closure.WarnThresholdSeconds = envInt("WARN_THRESHOLD_SECONDS", cfg.Closure.WarnThresholdSeconds)
	cfg.Closure.InterruptThresholdSeconds = envInt("INTERRUPT_THRESHOLD_SECONDS", cfg.Closure.InterruptThresholdSeconds)
	cfg.Closure.QuestionLookback = envSeconds("QUESTION_LOOKBACK_SECONDS", cfg.Closure.QuestionLookback)
	cfg.Closure.WarnMinGrace = envSeconds("WARN_MIN_GRACE_SECONDS", cfg.Closure.WarnMinGrace)
	cfg.Closure.WarnMaxWait = envSeconds("WARN_MAX_WAIT_SECONDS", cfg.Closure.WarnMaxWait)
	if ms := envInt("INTERRUPT_HALT_DELAY_MS", 0); ms > 0 {
		cfg.Closure.HaltDelay = time.Duration(ms) * time.Millisecond
	}
	return cfg
}

// UpstreamBaseURL is the interview API that owns resumes and assistants.
func UpstreamBaseURL() string {
	if v := os.Getenv("UPSTREAM_API_BASE_URL"); v != "" {
		return v
	}
	return "https://nexai.qwiktrace.com/ibot"
}
