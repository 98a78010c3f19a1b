package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/quickbite/order-service/internal/entities"
	"github.com/quickbite/order-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type AuthService interface {
	Register(ctx context.Context, email, password string) (entities.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type AuthHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	svc      AuthService
}

func NewAuthHandler(logger *slog.Logger, svc AuthService) *AuthHandler {
	return &AuthHandler{
		logger:   logger.With(slog.String("handler", "auth")),
		validate: validator.New(),
		svc:      svc,
	}
}

func (h *AuthHandler) Init(r chi.Router) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})
}

// Register creates a customer account.
// @Summary      Register
// @Tags         auth
// @Param        request body RegisterRequest true "Credentials"
// @Success      201  {object}  RegisterResponse
// @Failure      400  {object}  utils.ValidationErrorResponse
// @Failure      409  {object}  utils.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RegisterRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	user, err := h.svc.Register(ctx, req.Email, req.Password)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}

	utils.WriteJSON(w, RegisterResponse{ID: user.ID}, http.StatusCreated)
}

// Login exchanges credentials for a bearer token.
// @Summary      Login
// @Tags         auth
// @Param        request body LoginRequest true "Credentials"
// @Success      200  {object}  TokenResponse
// @Failure      401  {object}  utils.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	token, err := h.svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}

	utils.WriteJSON(w, TokenResponse{Token: token}, http.StatusOK)
}
