package handlers

import (
	"sparkmatch/internal/repository"
	"sparkmatch/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HandlerConfig holds configuration for handler
type HandlerConfig struct {
	DeckSize int
}

type Handler struct {
	DB              *pgxpool.Pool
	UserRepo        *repository.UserRepository
	SwipeRepo       *repository.SwipeRepository
	MessageRepo     *repository.MessageRepository
	GameHistoryRepo *repository.GameHistoryRepository
	AuthService     *service.AuthService
	SessionService  *service.GameSessionService
	PresenceService *service.PresenceService
	DeckSize        int
}

func NewHandler(db *pgxpool.Pool, presence *service.PresenceService, cfg HandlerConfig) *Handler {
	users := repository.NewUserRepository(db)
	history := repository.NewGameHistoryRepository(db)

	deckSize := cfg.DeckSize
	if deckSize <= 0 {
		deckSize = 20
	}

	return &Handler{
		DB:              db,
		UserRepo:        users,
		SwipeRepo:       repository.NewSwipeRepository(db),
		MessageRepo:     repository.NewMessageRepository(db),
		GameHistoryRepo: history,
		AuthService:     service.NewAuthService(users),
		SessionService:  service.NewGameSessionService(history),
		PresenceService: presence,
		DeckSize:        deckSize,
	}
}

// getUserID extracts the authenticated user id set by the JWT middleware.
func getUserID(c *gin.Context) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
