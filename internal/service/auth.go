package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/quickbite/order-service/internal/entities"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserRepo interface {
	SaveUser(ctx context.Context, u entities.User) error
	GetUserByEmail(ctx context.Context, email string) (entities.User, error)
}

type TokenIssuer interface {
	Issue(subject entities.Subject) (string, error)
}

type authService struct {
	logger *slog.Logger
	repo   UserRepo
	tokens TokenIssuer
	now    func() time.Time
}

func NewAuthService(logger *slog.Logger, repo UserRepo, tokens TokenIssuer) *authService {
	return &authService{
		logger: logger.With(slog.String("service", "auth")),
		repo:   repo,
		tokens: tokens,
		now:    time.Now,
	}
}

// Register creates a customer account. Staff accounts are provisioned
// out of band.
func (s *authService) Register(ctx context.Context, email, password string) (entities.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return entities.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entities.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         entities.RoleCustomer,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.repo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, entities.ErrEmailTaken) {
			return entities.User{}, entities.ErrEmailTaken
		}
		s.logger.ErrorContext(ctx, "failed to save user", slog.Any("error", err))
		return entities.User{}, fmt.Errorf("%w: register", entities.ErrStoreUnavailable)
	}

	s.logger.DebugContext(ctx, "user registered", slog.String("user_id", user.ID))
	return user, nil
}

// Login verifies the credentials and issues a bearer token carrying the
// subject's id and role. An unknown email and a wrong password are reported
// identically.
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if errors.Is(err, entities.ErrUserNotFound) {
		return "", entities.ErrInvalidCredentials
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		return "", fmt.Errorf("%w: login", entities.ErrStoreUnavailable)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", entities.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(entities.Subject{ID: user.ID, Role: user.Role})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to issue token", slog.Any("error", err))
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}
