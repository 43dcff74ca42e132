package domain

import "time"

// Sender indicates who authored a chat message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
	SenderOperator  Sender = "operator"
)

// ChatMessage is one entry in the help-center transcript. The transcript is
// append-only and persisted as a whole snapshot after every mutating event.
type ChatMessage struct {
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
