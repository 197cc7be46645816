package chat

import "time"

type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type Session struct {
	Name           string
	Messages       []Message
	Categories     []string
	PromptsVisible bool
}

// SessionSummary is the sidebar read model: one row per session.
type SessionSummary struct {
	Name         string `json:"name"`
	MessageCount int    `json:"message_count"`
	Active       bool   `json:"active"`
}
