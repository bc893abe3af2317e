package ws

const (
	// client - server
	MsgSend   = "send"
	MsgTyping = "typing"
	MsgRead   = "read"
	MsgPing   = "ping"

	// server - client
	MsgReady    = "ready"
	MsgMessage  = "message"
	MsgSent     = "sent"
	MsgPresence = "presence"
	MsgPong     = "pong"
	MsgError    = "error"
)
