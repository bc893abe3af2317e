package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"sparkmatch/internal/repository"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListMatches(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ctx := c.Request.Context()
	entries, err := h.SwipeRepo.ListMatches(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load matches"})
		return
	}

	out := make([]gin.H, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		out = append(out, gin.H{
			"match": e.Match,
			"peer": gin.H{
				"id":           e.Peer.ID,
				"display_name": e.Peer.DisplayName,
				"age":          e.Peer.Age(),
				"photo_urls":   e.Peer.PhotoURLs,
			},
			"online": h.PresenceService.IsOnline(ctx, e.Peer.ID),
		})
	}

	c.JSON(http.StatusOK, gin.H{"matches": out})
}

// matchMember loads the match and checks the caller belongs to it.
func (h *Handler) matchMember(c *gin.Context, userID int64) (int64, bool) {
	matchID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid match id"})
		return 0, false
	}

	m, err := h.SwipeRepo.GetMatch(c.Request.Context(), matchID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
			return 0, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load match"})
		return 0, false
	}
	if m.PeerOf(userID) == 0 {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your match"})
		return 0, false
	}
	return matchID, true
}

func (h *Handler) ListMessages(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	matchID, ok := h.matchMember(c, userID)
	if !ok {
		return
	}

	var beforeID int64
	if v := c.Query("before_id"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid before_id"})
			return
		}
		beforeID = parsed
	}

	limit := 50
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be 1-100"})
			return
		}
		limit = parsed
	}

	messages, err := h.MessageRepo.ListByMatch(c.Request.Context(), matchID, beforeID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func (h *Handler) MarkMessagesRead(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	matchID, ok := h.matchMember(c, userID)
	if !ok {
		return
	}

	if err := h.MessageRepo.MarkRead(c.Request.Context(), matchID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) UnreadCount(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	count, err := h.MessageRepo.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count unread"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread": count})
}
