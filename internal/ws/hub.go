package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"sparkmatch/internal/domain"
	"sparkmatch/internal/repository"
	"sparkmatch/internal/service"

	"github.com/prometheus/client_golang/prometheus"
)

var messagesSent = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "chat_messages_sent_total",
	Help: "Total chat messages persisted and dispatched over websocket",
})

func init() {
	prometheus.MustRegister(messagesSent)
}

const repoTimeout = 5 * time.Second

// Hub tracks connected clients by user id and routes chat traffic between
// matched users. At most one connection per user; a new connection replaces
// the old one.
type Hub struct {
	clients map[int64]*Client
	mu      sync.RWMutex

	Matches  *repository.SwipeRepository
	Messages *repository.MessageRepository
	Presence *service.PresenceService
}

func NewHub(matches *repository.SwipeRepository, messages *repository.MessageRepository, presence *service.PresenceService) *Hub {
	return &Hub{
		clients:  make(map[int64]*Client),
		Matches:  matches,
		Messages: messages,
		Presence: presence,
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	old := h.clients[c.UserID]
	h.clients[c.UserID] = c
	h.mu.Unlock()

	if old != nil {
		log.Printf("Hub.Register: user=%d reconnected, closing previous connection", c.UserID)
		old.Close()
	}

	h.Presence.Touch(context.Background(), c.UserID)
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if h.clients[c.UserID] == c {
		delete(h.clients, c.UserID)
	}
	h.mu.Unlock()

	h.Presence.Clear(context.Background(), c.UserID)
}

// SendToUser queues data for userID's connection. Returns false when the
// user is not connected or their send buffer is full.
func (h *Hub) SendToUser(userID int64, data []byte) bool {
	h.mu.RLock()
	c, ok := h.clients[userID]
	h.mu.RUnlock()
	if !ok {
		return false
	}

	select {
	case c.Send <- data:
		return true
	default:
		log.Printf("Hub.SendToUser: user=%d send buffer full, dropping", userID)
		return false
	}
}

func (h *Hub) Online(userID int64) bool {
	h.mu.RLock()
	_, ok := h.clients[userID]
	h.mu.RUnlock()
	return ok
}

// HandleMessage dispatches one inbound frame from c.
func (h *Hub) HandleMessage(c *Client, raw []byte) {
	var in Inbound
	if err := json.Unmarshal(raw, &in); err != nil {
		c.sendError("malformed message")
		return
	}

	switch in.Type {
	case MsgSend:
		h.handleSend(c, &in)
	case MsgTyping:
		h.handleTyping(c, &in)
	case MsgRead:
		h.handleRead(c, &in)
	case MsgPing:
		h.Presence.Touch(context.Background(), c.UserID)
		c.sendJSON(map[string]string{"type": MsgPong})
	default:
		c.sendError("unknown message type")
	}
}

func (h *Hub) handleSend(c *Client, in *Inbound) {
	if in.Body == "" {
		c.sendError("empty message body")
		return
	}
	if len(in.Body) > 2000 {
		c.sendError("message too long")
		return
	}

	peerID, ok := h.authorize(c, in.MatchID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), repoTimeout)
	defer cancel()

	msg := &domain.Message{
		MatchID:  in.MatchID,
		SenderID: c.UserID,
		Body:     in.Body,
	}
	if err := h.Messages.Create(ctx, msg); err != nil {
		log.Printf("Hub.handleSend: user=%d match=%d persist failed: %v", c.UserID, in.MatchID, err)
		c.sendError("failed to send message")
		return
	}
	messagesSent.Inc()

	if data, err := json.Marshal(messagePayload{Type: MsgMessage, Message: msg}); err == nil {
		h.SendToUser(peerID, data)
	}
	if data, err := json.Marshal(messagePayload{Type: MsgSent, Message: msg}); err == nil {
		c.send(data)
	}
}

func (h *Hub) handleTyping(c *Client, in *Inbound) {
	peerID, ok := h.authorize(c, in.MatchID)
	if !ok {
		return
	}

	data, err := json.Marshal(typingPayload{Type: MsgTyping, MatchID: in.MatchID, UserID: c.UserID})
	if err != nil {
		return
	}
	h.SendToUser(peerID, data)
}

func (h *Hub) handleRead(c *Client, in *Inbound) {
	peerID, ok := h.authorize(c, in.MatchID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), repoTimeout)
	defer cancel()

	if err := h.Messages.MarkRead(ctx, in.MatchID, c.UserID); err != nil {
		log.Printf("Hub.handleRead: user=%d match=%d mark read failed: %v", c.UserID, in.MatchID, err)
		return
	}

	data, err := json.Marshal(readPayload{Type: MsgRead, MatchID: in.MatchID, UserID: c.UserID})
	if err != nil {
		return
	}
	h.SendToUser(peerID, data)
}

// authorize checks that c belongs to the match and returns the peer's id.
func (h *Hub) authorize(c *Client, matchID int64) (int64, bool) {
	if matchID == 0 {
		c.sendError("match_id required")
		return 0, false
	}

	ctx, cancel := context.WithTimeout(context.Background(), repoTimeout)
	defer cancel()

	m, err := h.Matches.GetMatch(ctx, matchID)
	if err != nil {
		if err == repository.ErrNotFound {
			c.sendError("match not found")
		} else {
			log.Printf("Hub.authorize: user=%d match=%d lookup failed: %v", c.UserID, matchID, err)
			c.sendError("internal error")
		}
		return 0, false
	}

	peerID := m.PeerOf(c.UserID)
	if peerID == 0 {
		c.sendError("not your match")
		return 0, false
	}
	return peerID, true
}
