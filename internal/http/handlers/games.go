package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"sparkmatch/internal/minigame"
	"sparkmatch/internal/service"

	"github.com/gin-gonic/gin"
)

// gameError maps game and session errors onto HTTP statuses.
func gameError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoActiveGame):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrActiveGameExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrWrongGame),
		errors.Is(err, minigame.ErrUnoBadCard),
		errors.Is(err, minigame.ErrUnoBadIndex):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, minigame.ErrWrongPhase),
		errors.Is(err, minigame.ErrUnoNotYourTurn),
		errors.Is(err, minigame.ErrUnoNotActive):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, minigame.ErrStopped):
		c.JSON(http.StatusGone, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "game action failed"})
	}
}

func (h *Handler) ListGames(c *gin.Context) {
	games := append(minigame.PromptGameTypes(), minigame.GameUno)
	c.JSON(http.StatusOK, gin.H{"games": games})
}

type StartGameRequest struct {
	Game   string             `json:"game" binding:"required"`
	Resume *minigame.Snapshot `json:"resume,omitempty"`
}

func (h *Handler) StartGame(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req StartGameRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	sess, err := h.SessionService.Start(userID, minigame.GameType(req.Game), req.Resume)
	if err != nil {
		if errors.Is(err, service.ErrActiveGameExists) {
			gameError(c, err)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := h.SessionService.State(userID)
	if err != nil {
		gameError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session_id": sess.ID,
		"game":       sess.Game,
		"state":      state,
	})
}

func (h *Handler) GameState(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	state, err := h.SessionService.State(userID)
	if err != nil {
		gameError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": state})
}

func (h *Handler) BeginAnswering(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	snap, err := h.SessionService.Begin(userID)
	if err != nil {
		gameError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": snap})
}

type SubmitAnswerRequest struct {
	Text    string `json:"text,omitempty"`
	Choice  string `json:"choice,omitempty"`
	Confess *bool  `json:"confess,omitempty"`
}

func (h *Handler) SubmitAnswer(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req SubmitAnswerRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	var answer minigame.Answer
	switch {
	case req.Confess != nil:
		answer = minigame.ConfessAnswer(*req.Confess)
	case req.Choice != "":
		if req.Choice != "a" && req.Choice != "b" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "choice must be a or b"})
			return
		}
		answer = minigame.ChoiceAnswer(req.Choice)
	case req.Text != "":
		if len(req.Text) > 1000 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "answer too long"})
			return
		}
		answer = minigame.TextAnswer(req.Text)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "answer required"})
		return
	}

	snap, err := h.SessionService.Submit(userID, answer)
	if err != nil {
		gameError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": snap})
}

func (h *Handler) SkipRound(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	snap, err := h.SessionService.Skip(userID)
	if err != nil {
		gameError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": snap})
}

func (h *Handler) NextRound(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	snap, err := h.SessionService.Next(userID)
	if err != nil {
		gameError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": snap})
}

func (h *Handler) QuitGame(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.SessionService.Quit(userID); err != nil {
		gameError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type UnoPlayRequest struct {
	Index int `json:"index"`
}

func (h *Handler) UnoPlay(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req UnoPlayRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	state, err := h.SessionService.UnoPlay(userID, req.Index)
	if err != nil {
		gameError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": state})
}

func (h *Handler) UnoDraw(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	state, err := h.SessionService.UnoDraw(userID)
	if err != nil {
		gameError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": state})
}

func (h *Handler) GameHistory(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit := 20
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be 1-100"})
			return
		}
		limit = parsed
	}

	history, err := h.GameHistoryRepo.GetByUser(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": history})
}

func (h *Handler) GameStats(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	stats, err := h.GameHistoryRepo.GetUserStats(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
