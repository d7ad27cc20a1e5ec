package interview

import (
	"testing"
	"time"
)

func collect(t *testing.T, c *Clock, n int) []int {
	t.Helper()
	out := make([]int, 0, n)
	timeout := time.After(5 * time.Second)
	for len(out) < n {
		select {
		case v := <-c.C():
			out = append(out, v)
			if v == 0 {
				return out
			}
		case <-timeout:
			t.Fatalf("timed out after %d values: %v", len(out), out)
		}
	}
	return out
}

func TestClock_EmitsEveryValueExactlyOnce(t *testing.T) {
	c := newClock(time.Millisecond)
	c.Start(5)

	got := collect(t, c, 6)
	want := []int{5, 4, 3, 2, 1, 0}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}

	// halted: no further values
	select {
	case v := <-c.C():
		t.Errorf("expected no emission after 0, got %d", v)
	case <-time.After(20 * time.Millisecond):
	}

	if remaining, ok := c.Remaining(); !ok || remaining != 0 {
		t.Errorf("terminal value must stay observable, got (%d, %v)", remaining, ok)
	}
}

func TestClock_StopHidesRemaining(t *testing.T) {
	c := newClock(time.Millisecond)
	c.Start(1000)

	if remaining, ok := c.Remaining(); !ok || remaining > 1000 {
		t.Errorf("unexpected remaining (%d, %v)", remaining, ok)
	}

	c.Stop()
	if _, ok := c.Remaining(); ok {
		t.Error("stopped clock must hide its value")
	}

	// the pending tick is released; nothing more arrives beyond what was
	// already buffered
	drained := 0
	for {
		select {
		case <-c.C():
			drained++
			if drained > 1002 {
				t.Fatal("clock kept ticking after Stop")
			}
			continue
		case <-time.After(20 * time.Millisecond):
		}
		break
	}
}

func TestClock_RestartReplacesCountdown(t *testing.T) {
	c := newClock(time.Millisecond)
	c.Start(3)
	collect(t, c, 4)

	c.Start(2)
	got := collect(t, c, 3)
	want := []int{2, 1, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestClock_ZeroDurationHaltsImmediately(t *testing.T) {
	c := newClock(time.Millisecond)
	c.Start(0)

	select {
	case v := <-c.C():
		if v != 0 {
			t.Errorf("expected 0, got %d", v)
		}
	case <-time.After(time.Second):
		t.Fatal("expected immediate emission")
	}
}

func TestFormatRemaining(t *testing.T) {
	cases := map[int]string{
		0:   "00:00",
		5:   "00:05",
		60:  "01:00",
		75:  "01:15",
		600: "10:00",
		-3:  "00:00",
	}
	for in, want := range cases {
		if got := FormatRemaining(in); got != want {
			t.Errorf("FormatRemaining(%d): expected %q, got %q", in, want, got)
		}
	}
}
