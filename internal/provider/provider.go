// Package provider defines the outbound control surface of the voice-AI
// session. The provider itself is opaque: the gateway only consumes its
// event feed and issues control commands back into the live call.
package provider

import "context"

// Message is the payload of an add-message command.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Command is one control message for the live call. Message holds a
// *Message for add-message commands and a plain string for say commands,
// matching the provider's wire format.
type Command struct {
	Type    string `json:"type"`
	Action  string `json:"action,omitempty"`
	Message any    `json:"message,omitempty"`
}

// AddSystemMessage injects a synthetic system directive into the ongoing
// conversation.
func AddSystemMessage(content string) Command {
	return Command{
		Type:    "add-message",
		Message: &Message{Role: "system", Content: content},
	}
}

// StopSpeech halts any in-progress provider speech output.
func StopSpeech() Command {
	return Command{Type: "control-tts", Action: "stop"}
}

// Say makes the assistant speak the given text immediately, bypassing any
// listening state.
func Say(text string) Command {
	return Command{Type: "say", Message: text}
}

// Commander issues control commands to a live session. Implementations
// return delivery errors; callers decide whether a dropped command matters.
type Commander interface {
	Send(ctx context.Context, cmd Command) error
}
