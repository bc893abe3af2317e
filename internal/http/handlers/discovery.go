package handlers

import (
	"errors"
	"net/http"

	"sparkmatch/internal/domain"
	"sparkmatch/internal/repository"

	"github.com/gin-gonic/gin"
)

// Deck returns the next batch of profiles the user has not swiped on yet.
func (h *Handler) Deck(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	candidates, err := h.UserRepo.Candidates(c.Request.Context(), userID, h.DeckSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load deck"})
		return
	}

	cards := make([]gin.H, 0, len(candidates))
	for i := range candidates {
		u := &candidates[i]
		cards = append(cards, gin.H{
			"id":           u.ID,
			"display_name": u.DisplayName,
			"age":          u.Age(),
			"gender":       u.Gender,
			"bio":          u.Bio,
			"interests":    u.Interests,
			"photo_urls":   u.PhotoURLs,
		})
	}

	c.JSON(http.StatusOK, gin.H{"profiles": cards})
}

type SwipeRequest struct {
	TargetID  int64  `json:"target_id" binding:"required"`
	Direction string `json:"direction" binding:"required"`
}

// SwipeCard records a swipe. A right swipe on someone who already liked the
// user back creates a match.
func (h *Handler) SwipeCard(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req SwipeRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	dir := domain.SwipeDirection(req.Direction)
	if dir != domain.SwipeRight && dir != domain.SwipeLeft {
		c.JSON(http.StatusBadRequest, gin.H{"error": "direction must be right or left"})
		return
	}
	if req.TargetID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot swipe on yourself"})
		return
	}

	ctx := c.Request.Context()

	if _, err := h.UserRepo.GetByID(ctx, req.TargetID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "swipe failed"})
		return
	}

	err := h.SwipeRepo.Create(ctx, &domain.Swipe{
		SwiperID:  userID,
		TargetID:  req.TargetID,
		Direction: dir,
	})
	if err != nil {
		if errors.Is(err, repository.ErrAlreadySwiped) {
			c.JSON(http.StatusConflict, gin.H{"error": "already swiped on this user"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "swipe failed"})
		return
	}

	if dir != domain.SwipeRight {
		c.JSON(http.StatusOK, gin.H{"matched": false})
		return
	}

	liked, err := h.SwipeRepo.HasLiked(ctx, req.TargetID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "swipe failed"})
		return
	}
	if !liked {
		c.JSON(http.StatusOK, gin.H{"matched": false})
		return
	}

	match, err := h.SwipeRepo.CreateMatch(ctx, userID, req.TargetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create match"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"matched": true, "match": match})
}
