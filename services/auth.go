package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/LovationAdmin/pcease-api/models"
	"github.com/LovationAdmin/pcease-api/repository"
	"github.com/LovationAdmin/pcease-api/utils"
)

type AuthService struct {
	users  repository.UserRepository
	secret string
	ttl    time.Duration
}

func NewAuthService(users repository.UserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{users: users, secret: secret, ttl: ttl}
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		utils.LogAuthAction("register", username, false)
		return nil, ErrUserExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{Username: username, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	utils.LogAuthAction("register", username, true)
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		utils.LogAuthAction("login", username, false)
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !utils.CheckPassword(req.Password, user.PasswordHash) {
		utils.LogAuthAction("login", username, false)
		return nil, ErrInvalidPassword
	}

	token, err := utils.GenerateAccessToken(s.secret, user.ID, user.Username, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	utils.LogAuthAction("login", username, true)
	return &models.AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    *user,
	}, nil
}

// Authenticate resolves a bearer token to its claims.
func (s *AuthService) Authenticate(token string) (*utils.Claims, error) {
	return utils.ParseAccessToken(s.secret, token)
}
