package interview

import "strings"

// looksLikeQuestion is a deliberately shallow heuristic: the provider never
// exposes dialogue-turn structure, so a literal question mark in assistant
// speech is the only signal that the candidate was just asked something.
// The closure machine pairs it with a bounded look-back window.
func looksLikeQuestion(text string) bool {
	return strings.Contains(text, "?")
}
