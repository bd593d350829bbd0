package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"coworkspace/internal/domain"
	"coworkspace/internal/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Service contains the business logic for authentication
type Service struct {
	users          UserRepository
	tokens         tokenIssuer
	initialBalance int64
	log            logrus.FieldLogger
}

func NewService(users UserRepository, tokens tokenIssuer, initialBalance int64, log logrus.FieldLogger) *Service {
	return &Service{users: users, tokens: tokens, initialBalance: initialBalance, log: log}
}

// Register creates a regular user with the configured starting balance.
// Admin accounts are provisioned out of band.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Telephone:    req.Telephone,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		Balance:      s.initialBalance,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", ErrEmailAlreadyExists
		}
		return nil, "", err
	}

	token, err := s.tokens.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	s.log.WithField("user_id", user.ID).Info("user registered")
	return user, token, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

func (s *Service) Me(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
