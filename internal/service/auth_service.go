package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"sparkmatch/internal/domain"
	"sparkmatch/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrUnderage           = errors.New("must be at least 18 years old")
)

type AuthService struct {
	users *repository.UserRepository
}

func NewAuthService(users *repository.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// RegisterInput carries the minimum a new account needs; the rest of the
// profile is filled in later through the profile endpoints.
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
	Birthdate   time.Time
	Gender      domain.Gender
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if !strings.Contains(in.Email, "@") {
		return nil, "", ErrInvalidEmail
	}
	if len(in.Password) < 8 {
		return nil, "", ErrWeakPassword
	}

	u := &domain.User{
		Email:       in.Email,
		DisplayName: strings.TrimSpace(in.DisplayName),
		Birthdate:   in.Birthdate,
		Gender:      in.Gender,
	}
	if u.Age() < 18 {
		return nil, "", ErrUnderage
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}
	u.PasswordHash = hash

	if err := s.users.Create(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := GenerateJWT(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !CheckPassword(u.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
