package http

import (
	"time"

	"sparkmatch/internal/config"
	"sparkmatch/internal/http/handlers"
	"sparkmatch/internal/http/middleware"
	"sparkmatch/internal/service"
	"sparkmatch/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string) {
	presence := service.NewPresenceService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	h := handlers.NewHandler(db, presence, handlers.HandlerConfig{DeckSize: cfg.DeckSize})
	healthHandler := handlers.NewHealthHandler(db, h.SessionService, version)

	apiRateWindow := time.Duration(cfg.APIRateWindow) * time.Second
	authRateWindow := time.Duration(cfg.AuthRateWindow) * time.Second
	gameRateWindow := time.Duration(cfg.GameRateWindow) * time.Second

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(cfg.APIRateLimit, apiRateWindow))

	// Auth (tighter limit against credential stuffing)
	authRL := middleware.RedisRateLimit(cfg.AuthRateLimit, authRateWindow)
	v1.POST("/auth/register", authRL, h.Register)
	v1.POST("/auth/login", authRL, h.Login)

	// Profile
	v1.GET("/me", middleware.JWT(), h.Me)
	v1.PATCH("/me", middleware.JWT(), h.UpdateProfile)
	v1.GET("/profile/:id", middleware.JWT(), h.GetProfile)

	// Discovery
	v1.GET("/deck", middleware.JWT(), h.Deck)
	v1.POST("/swipe", middleware.JWT(), h.SwipeCard)

	// Matches and chat
	v1.GET("/matches", middleware.JWT(), h.ListMatches)
	v1.GET("/matches/:id/messages", middleware.JWT(), h.ListMessages)
	v1.POST("/matches/:id/read", middleware.JWT(), h.MarkMessagesRead)
	v1.GET("/messages/unread", middleware.JWT(), h.UnreadCount)

	// Mini-games (per-user rate limit on moves)
	gameRL := middleware.GameRateLimit(cfg.GameRateLimit, gameRateWindow)
	games := v1.Group("/games")
	games.Use(middleware.JWT())
	{
		games.GET("", h.ListGames)
		games.POST("/start", gameRL, h.StartGame)
		games.GET("/state", h.GameState)
		games.POST("/begin", gameRL, h.BeginAnswering)
		games.POST("/answer", gameRL, h.SubmitAnswer)
		games.POST("/skip", gameRL, h.SkipRound)
		games.POST("/next", gameRL, h.NextRound)
		games.POST("/quit", h.QuitGame)
		games.POST("/uno/play", gameRL, h.UnoPlay)
		games.POST("/uno/draw", gameRL, h.UnoDraw)
		games.GET("/history", h.GameHistory)
		games.GET("/stats", h.GameStats)
	}

	// WebSocket for chat
	hub := ws.NewHub(h.SwipeRepo, h.MessageRepo, presence)
	r.GET("/ws", ws.HandleWS(hub))
}
