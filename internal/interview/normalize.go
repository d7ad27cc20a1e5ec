// Package interview holds the live conversation core: frame normalization,
// role/phase classification, transcript merging, the session countdown, and
// the closure state machine that wraps an interview up on time.
package interview

import "strings"

// textFields are tried in priority order; provider versions disagree on
// where the spoken text lives.
var textFields = []string{"transcript", "delta", "text", "output"}

// pickText extracts the spoken text from a raw provider frame. Unrecognized
// or malformed frames degrade to an empty string, never an error, so bad
// input cannot take the session down.
func pickText(frame map[string]any) string {
	if frame == nil {
		return ""
	}

	for _, key := range textFields {
		if s, ok := frame[key].(string); ok {
			return s
		}
	}

	switch content := frame["content"].(type) {
	case string:
		return content
	case []any:
		parts := make([]string, 0, len(content))
		for _, p := range content {
			switch v := p.(type) {
			case string:
				if v != "" {
					parts = append(parts, v)
				}
			case map[string]any:
				if s, ok := v["text"].(string); ok && s != "" {
					parts = append(parts, s)
				} else if s, ok := v["value"].(string); ok && s != "" {
					parts = append(parts, s)
				}
			}
		}
		return strings.TrimSpace(strings.Join(parts, " "))
	}

	if data, ok := frame["data"].(map[string]any); ok {
		if s, ok := data["text"].(string); ok {
			return s
		}
	}

	return ""
}
