package interview

import "testing"

func TestPickText_FieldPriority(t *testing.T) {
	frame := map[string]any{
		"transcript": "from transcript",
		"delta":      "from delta",
		"text":       "from text",
	}
	if got := pickText(frame); got != "from transcript" {
		t.Errorf("expected transcript field to win, got %q", got)
	}

	delete(frame, "transcript")
	if got := pickText(frame); got != "from delta" {
		t.Errorf("expected delta field next, got %q", got)
	}

	delete(frame, "delta")
	if got := pickText(frame); got != "from text" {
		t.Errorf("expected text field next, got %q", got)
	}
}

func TestPickText_EmptyStringStillWins(t *testing.T) {
	// an empty transcript field is a real value: it clears a stalled partial
	frame := map[string]any{
		"transcript": "",
		"text":       "fallback",
	}
	if got := pickText(frame); got != "" {
		t.Errorf("expected empty transcript to short-circuit, got %q", got)
	}
}

func TestPickText_ContentString(t *testing.T) {
	if got := pickText(map[string]any{"content": "hello"}); got != "hello" {
		t.Errorf("got %q", got)
	}
}

func TestPickText_ContentParts(t *testing.T) {
	frame := map[string]any{
		"content": []any{
			"first",
			map[string]any{"text": "second"},
			map[string]any{"value": "third"},
			map[string]any{"irrelevant": 1},
		},
	}
	if got := pickText(frame); got != "first second third" {
		t.Errorf("expected joined parts, got %q", got)
	}
}

func TestPickText_NestedDataText(t *testing.T) {
	frame := map[string]any{"data": map[string]any{"text": "nested"}}
	if got := pickText(frame); got != "nested" {
		t.Errorf("got %q", got)
	}
}

func TestPickText_MalformedDegradesToEmpty(t *testing.T) {
	cases := []map[string]any{
		nil,
		{},
		{"transcript": 42},
		{"content": []any{1, true}},
		{"data": "not a map"},
		{"data": map[string]any{"text": 9}},
	}
	for i, frame := range cases {
		if got := pickText(frame); got != "" {
			t.Errorf("case %d: expected empty string, got %q", i, got)
		}
	}
}
