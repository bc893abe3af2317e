package ws

import "sparkmatch/internal/domain"

// Inbound is the envelope clients send over the socket.
type Inbound struct {
	Type    string `json:"type"`
	MatchID int64  `json:"match_id,omitempty"`
	Body    string `json:"body,omitempty"`
}

type messagePayload struct {
	Type    string          `json:"type"`
	Message *domain.Message `json:"message"`
}

type typingPayload struct {
	Type    string `json:"type"`
	MatchID int64  `json:"match_id"`
	UserID  int64  `json:"user_id"`
}

type readPayload struct {
	Type    string `json:"type"`
	MatchID int64  `json:"match_id"`
	UserID  int64  `json:"user_id"`
}

type presencePayload struct {
	Type   string `json:"type"`
	UserID int64  `json:"user_id"`
	Online bool   `json:"online"`
}

type errorPayload struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}
