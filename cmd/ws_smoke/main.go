package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"sparkmatch/internal/db"
	"sparkmatch/internal/domain"
	"sparkmatch/internal/repository"
	"sparkmatch/internal/service"
)

// Exercises the chat path end to end against a running server: two accounts,
// a mutual like, one message over the websocket.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}
	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	ur := repository.NewUserRepository(pool)
	sr := repository.NewSwipeRepository(pool)
	auth := service.NewAuthService(ur)
	ctx := context.Background()
	service.InitJWT()

	ensureUser := func(email, name string) *domain.User {
		u, err := ur.GetByEmail(ctx, email)
		if err == nil {
			return u
		}
		if !errors.Is(err, repository.ErrNotFound) {
			log.Fatalf("lookup %s: %v", email, err)
		}
		u, _, err = auth.Register(ctx, service.RegisterInput{
			Email:       email,
			Password:    "smokepassword1",
			DisplayName: name,
			Birthdate:   time.Date(1996, 3, 1, 0, 0, 0, 0, time.UTC),
		})
		if err != nil {
			log.Fatalf("register %s: %v", email, err)
		}
		return u
	}

	uA := ensureUser("smoke-a@example.com", "SmokeA")
	uB := ensureUser("smoke-b@example.com", "SmokeB")

	// mutual like, then the match
	_ = sr.Create(ctx, &domain.Swipe{SwiperID: uA.ID, TargetID: uB.ID, Direction: domain.SwipeRight})
	_ = sr.Create(ctx, &domain.Swipe{SwiperID: uB.ID, TargetID: uA.ID, Direction: domain.SwipeRight})
	match, err := sr.CreateMatch(ctx, uA.ID, uB.ID)
	if err != nil {
		log.Fatalf("create match: %v", err)
	}

	tokenA, err := service.GenerateJWT(uA.ID)
	if err != nil {
		log.Fatalf("gen token A: %v", err)
	}
	tokenB, err := service.GenerateJWT(uB.ID)
	if err != nil {
		log.Fatalf("gen token B: %v", err)
	}

	dialer := websocket.DefaultDialer

	// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
	connA, _, err := dialer.Dial(fmt.Sprintf("ws://127.0.0.1:%s/ws?token=%s", port, tokenA), nil)
	if err != nil {
		log.Fatalf("dial A: %v", err)
	}
	defer connA.Close()

	connB, _, err := dialer.Dial(fmt.Sprintf("ws://127.0.0.1:%s/ws?token=%s", port, tokenB), nil)
	if err != nil {
		log.Fatalf("dial B: %v", err)
	}
	defer connB.Close()

	waitFor := func(conn *websocket.Conn, want string) {
		deadline := time.Now().Add(3 * time.Second)
		for time.Now().Before(deadline) {
			conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				continue
			}
			var obj map[string]any
			_ = json.Unmarshal(msg, &obj)
			if t, ok := obj["type"].(string); ok && t == want {
				log.Printf("got %s: %s", want, string(msg))
				return
			}
		}
		log.Fatalf("timed out waiting for %q", want)
	}

	waitFor(connA, "ready")
	waitFor(connB, "ready")

	payload := fmt.Sprintf(`{"type":"send","match_id":%d,"body":"hey from the smoke test"}`, match.ID)
	if err := connA.WriteMessage(websocket.TextMessage, []byte(payload)); err != nil {
		log.Fatalf("write A: %v", err)
	}

	waitFor(connA, "sent")
	waitFor(connB, "message")

	log.Println("smoke test finished")
}
