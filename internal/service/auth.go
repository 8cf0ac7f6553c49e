package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"pawnledger-backend/internal/domain"
	"pawnledger-backend/internal/logger"
	"pawnledger-backend/internal/repository"
	"pawnledger-backend/internal/security"
)

var ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", domain.ErrUnauthenticated)

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens}
}

func (s *authService) Login(ctx context.Context, username, password string) (string, time.Time, *domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", time.Time{}, nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", time.Time{}, nil, ErrInvalidCredentials
		}
		return "", time.Time{}, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Warn("Login failed", "username", username)
		return "", time.Time{}, nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return "", time.Time{}, nil, fmt.Errorf("failed to issue token: %w", err)
	}

	logger.Info("User logged in", "user_id", user.ID, "role", user.Role)
	return token, expiresAt, user, nil
}

// EnsureAdmin creates the admin account unless the username already exists.
// It reports whether an account was created.
func EnsureAdmin(ctx context.Context, users repository.UserRepository, username, password, fullName string) (bool, error) {
	_, err := users.GetByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return false, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return false, err
	}
	admin := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         domain.UserRoleAdmin,
		FullName:     fullName,
	}
	if err := users.Create(ctx, admin); err != nil {
		return false, fmt.Errorf("failed to create admin: %w", err)
	}
	logger.Info("Admin account created", "username", username, "user_id", admin.ID)
	return true, nil
}

// HashPassword is shared by staff management and the admin bootstrap.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
