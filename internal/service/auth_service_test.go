package service

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "correct horse battery" {
		t.Fatal("password stored in the clear")
	}

	if !CheckPassword(hash, "correct horse battery") {
		t.Fatal("correct password rejected")
	}
	if CheckPassword(hash, "wrong password") {
		t.Fatal("wrong password accepted")
	}
}

func TestRegister_InputValidation(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	InitJWT()

	// validation failures return before any repository access, so a nil
	// repo is fine here
	svc := NewAuthService(nil)
	ctx := context.Background()

	adult := time.Now().AddDate(-25, 0, 0)

	_, _, err := svc.Register(ctx, RegisterInput{
		Email: "no-at-sign", Password: "longenough", DisplayName: "X", Birthdate: adult,
	})
	if err != ErrInvalidEmail {
		t.Fatalf("bad email: got %v, want ErrInvalidEmail", err)
	}

	_, _, err = svc.Register(ctx, RegisterInput{
		Email: "a@b.com", Password: "short", DisplayName: "X", Birthdate: adult,
	})
	if err != ErrWeakPassword {
		t.Fatalf("weak password: got %v, want ErrWeakPassword", err)
	}

	_, _, err = svc.Register(ctx, RegisterInput{
		Email: "a@b.com", Password: "longenough", DisplayName: "X",
		Birthdate: time.Now().AddDate(-17, 0, 0),
	})
	if err != ErrUnderage {
		t.Fatalf("underage: got %v, want ErrUnderage", err)
	}
}
