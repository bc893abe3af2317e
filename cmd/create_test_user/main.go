package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"sparkmatch/internal/db"
	"sparkmatch/internal/domain"
	"sparkmatch/internal/repository"
	"sparkmatch/internal/service"
)

func main() {
	// expects DATABASE_URL and JWT_SECRET env vars
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	repo := repository.NewUserRepository(pool)
	auth := service.NewAuthService(repo)
	ctx := context.Background()
	service.InitJWT()

	email := "tester@example.com"

	existing, err := repo.GetByEmail(ctx, email)
	if err == nil {
		log.Printf("user already exists id=%d\n", existing.ID)
		token, err := service.GenerateJWT(existing.ID)
		if err != nil {
			log.Fatalf("failed to generate token: %v", err)
		}
		log.Printf("token=%s\n", token)
		return
	}
	if !errors.Is(err, repository.ErrNotFound) {
		log.Fatalf("lookup failed: %v", err)
	}

	user, token, err := auth.Register(ctx, service.RegisterInput{
		Email:       email,
		Password:    "testpassword1",
		DisplayName: "Tester",
		Birthdate:   time.Date(1995, 6, 15, 0, 0, 0, 0, time.UTC),
		Gender:      domain.GenderNonBinary,
	})
	if err != nil {
		log.Fatalf("create user failed: %v", err)
	}

	log.Printf("user created id=%d email=%s\n", user.ID, user.Email)
	log.Printf("token=%s\n", token)
}
