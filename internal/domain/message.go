package domain

import "time"

const (
	// SenderUser marks messages typed by the user.
	SenderUser Sender = "user"

	// SenderAssistant marks replies composed by the assistant.
	SenderAssistant Sender = "assistant"

	// SenderSystem marks daemon-originated messages such as the startup greeting.
	SenderSystem Sender = "system"
)

// Sender identifies the author of a chat message.
type Sender string

// ChatMessage is one entry in the persisted chat transcript.
type ChatMessage struct {
	// ID is a unique identifier for the message.
	ID string `json:"id"`

	// Text is the message content.
	Text string `json:"text"`

	// Sender identifies who authored the message.
	Sender Sender `json:"sender"`

	// Timestamp is when the message was recorded.
	Timestamp time.Time `json:"timestamp"`
}
