package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/quickbite/order-service/internal/entities"
	"github.com/quickbite/order-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) SaveUser(ctx context.Context, u entities.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (entities.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(entities.User), args.Error(1)
}

type stubTokenIssuer struct {
	token string
	err   error
}

func (s stubTokenIssuer) Issue(entities.Subject) (string, error) {
	return s.token, s.err
}

func newAuthService(repo service.UserRepo, tokens service.TokenIssuer) interface {
	Register(ctx context.Context, email, password string) (entities.User, error)
	Login(ctx context.Context, email, password string) (string, error)
} {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return service.NewAuthService(logger, repo, tokens)
}

func TestAuthService_Register(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		repo := new(mockUserRepo)
		var saved entities.User
		repo.On("SaveUser", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { saved = args.Get(1).(entities.User) }).
			Return(nil).Once()

		svc := newAuthService(repo, stubTokenIssuer{})

		user, err := svc.Register(context.Background(), "alice@example.com", "s3cret-pass")
		require.NoError(t, err)

		assert.NotEmpty(t, user.ID)
		assert.Equal(t, entities.RoleCustomer, user.Role)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte("s3cret-pass")))
		assert.NotEqual(t, "s3cret-pass", saved.PasswordHash)
		repo.AssertExpectations(t)
	})

	t.Run("email taken", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("SaveUser", mock.Anything, mock.Anything).Return(entities.ErrEmailTaken).Once()

		svc := newAuthService(repo, stubTokenIssuer{})

		_, err := svc.Register(context.Background(), "alice@example.com", "s3cret-pass")
		assert.ErrorIs(t, err, entities.ErrEmailTaken)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("SaveUser", mock.Anything, mock.Anything).Return(errors.New("connection reset")).Once()

		svc := newAuthService(repo, stubTokenIssuer{})

		_, err := svc.Register(context.Background(), "alice@example.com", "s3cret-pass")
		assert.ErrorIs(t, err, entities.ErrStoreUnavailable)
	})
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	user := entities.User{
		ID:           "user-1",
		Email:        "alice@example.com",
		PasswordHash: string(hash),
		Role:         entities.RoleCustomer,
	}

	t.Run("OK", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(user, nil).Once()

		svc := newAuthService(repo, stubTokenIssuer{token: "signed-token"})

		token, err := svc.Login(context.Background(), "alice@example.com", "s3cret-pass")
		require.NoError(t, err)
		assert.Equal(t, "signed-token", token)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(user, nil).Once()

		svc := newAuthService(repo, stubTokenIssuer{token: "signed-token"})

		_, err := svc.Login(context.Background(), "alice@example.com", "wrong")
		assert.ErrorIs(t, err, entities.ErrInvalidCredentials)
	})

	t.Run("unknown email reported the same way", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("GetUserByEmail", mock.Anything, "bob@example.com").
			Return(entities.User{}, entities.ErrUserNotFound).Once()

		svc := newAuthService(repo, stubTokenIssuer{token: "signed-token"})

		_, err := svc.Login(context.Background(), "bob@example.com", "whatever")
		assert.ErrorIs(t, err, entities.ErrInvalidCredentials)
	})
}
