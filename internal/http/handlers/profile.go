package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"sparkmatch/internal/domain"
	"sparkmatch/internal/repository"

	"github.com/gin-gonic/gin"
)

func parseGender(s string) domain.Gender {
	switch domain.Gender(s) {
	case domain.GenderWoman, domain.GenderMan, domain.GenderNonBinary:
		return domain.Gender(s)
	default:
		return ""
	}
}

func (h *Handler) Me(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.UserRepo.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "age": user.Age()})
}

func (h *Handler) GetProfile(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err := h.UserRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	// Other users only see the public part of a profile.
	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":           user.ID,
			"display_name": user.DisplayName,
			"age":          user.Age(),
			"gender":       user.Gender,
			"bio":          user.Bio,
			"interests":    user.Interests,
			"photo_urls":   user.PhotoURLs,
		},
		"online": h.PresenceService.IsOnline(c.Request.Context(), id),
	})
}

type UpdateProfileRequest struct {
	DisplayName *string  `json:"display_name"`
	Gender      *string  `json:"gender"`
	Bio         *string  `json:"bio"`
	Interests   []string `json:"interests"`
	PhotoURLs   []string `json:"photo_urls"`
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req UpdateProfileRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.UserRepo.GetByID(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	if req.DisplayName != nil {
		if *req.DisplayName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "display_name cannot be empty"})
			return
		}
		user.DisplayName = *req.DisplayName
	}
	if req.Gender != nil {
		g := parseGender(*req.Gender)
		if g == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid gender"})
			return
		}
		user.Gender = g
	}
	if req.Bio != nil {
		if len(*req.Bio) > 500 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bio too long"})
			return
		}
		user.Bio = *req.Bio
	}
	if req.Interests != nil {
		if len(req.Interests) > 10 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "too many interests"})
			return
		}
		user.Interests = req.Interests
	}
	if req.PhotoURLs != nil {
		if len(req.PhotoURLs) > 6 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "too many photos"})
			return
		}
		user.PhotoURLs = req.PhotoURLs
	}

	if err := h.UserRepo.UpdateProfile(ctx, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
