package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/quickbite/order-service/internal/entities"
	"github.com/quickbite/order-service/internal/middleware"
	"github.com/quickbite/order-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, subject entities.Subject, items []entities.OrderItem) (entities.Order, error)
	ListOrders(ctx context.Context, subject entities.Subject) ([]entities.Order, error)
	GetOrder(ctx context.Context, subject entities.Subject, orderID string) (entities.Order, error)
	AdvanceStatus(ctx context.Context, subject entities.Subject, orderID string, next entities.Status) (entities.Order, error)
	CancelOrder(ctx context.Context, subject entities.Subject, orderID string) error
}

type OrderHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	svc      OrderService
	auth     func(http.Handler) http.Handler
}

func NewOrderHandler(logger *slog.Logger, svc OrderService, auth func(http.Handler) http.Handler) *OrderHandler {
	return &OrderHandler{
		logger:   logger.With(slog.String("handler", "orders")),
		validate: validator.New(),
		svc:      svc,
		auth:     auth,
	}
}

func (h *OrderHandler) Init(r chi.Router) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/", h.PlaceOrder)
		r.Get("/", h.ListOrders)
		r.Get("/{order_id}", h.GetOrder)
		r.Put("/{order_id}/status", h.AdvanceStatus)
		r.Delete("/{order_id}", h.CancelOrder)
	})
}

// PlaceOrder creates an order from the staged cart payload.
// @Summary      Place an order
// @Tags         orders
// @Param        request body PlaceOrderRequest true "Order items"
// @Success      201  {object}  Order
// @Failure      400  {object}  utils.ValidationErrorResponse
// @Failure      401  {object}  utils.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subject, ok := middleware.SubjectFromContext(ctx)
	if !ok {
		utils.WriteError(w, entities.ErrNoToken.Error(), http.StatusUnauthorized)
		return
	}

	var req PlaceOrderRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.svc.PlaceOrder(ctx, subject, ItemsJSONToEntity(req.Items))
	recordOperation("place", err)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusCreated)
}

// ListOrders returns the caller's orders, newest first.
// @Summary      List my orders
// @Tags         orders
// @Success      200  {array}  Order
// @Failure      401  {object}  utils.ErrorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subject, ok := middleware.SubjectFromContext(ctx)
	if !ok {
		utils.WriteError(w, entities.ErrNoToken.Error(), http.StatusUnauthorized)
		return
	}

	orders, err := h.svc.ListOrders(ctx, subject)
	recordOperation("list", err)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}

	utils.WriteJSON(w, OrdersEntityToJSON(orders), http.StatusOK)
}

// GetOrder returns one order for its owner or an admin.
// @Summary      Get order by id
// @Tags         orders
// @Param        order_id path string true "Order id"
// @Success      200  {object}  Order
// @Failure      403  {object}  utils.ErrorResponse
// @Failure      404  {object}  utils.ErrorResponse
// @Router       /api/orders/{order_id} [get]
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subject, ok := middleware.SubjectFromContext(ctx)
	if !ok {
		utils.WriteError(w, entities.ErrNoToken.Error(), http.StatusUnauthorized)
		return
	}
	orderID := chi.URLParam(r, "order_id")

	order, err := h.svc.GetOrder(ctx, subject, orderID)
	recordOperation("get", err)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// AdvanceStatus moves an order one stage forward. Staff only.
// @Summary      Advance order status
// @Tags         orders
// @Param        order_id path string true "Order id"
// @Param        request body UpdateStatusRequest true "Target status"
// @Success      200  {object}  Order
// @Failure      400  {object}  utils.ErrorResponse
// @Failure      403  {object}  utils.ErrorResponse
// @Failure      404  {object}  utils.ErrorResponse
// @Router       /api/orders/{order_id}/status [put]
func (h *OrderHandler) AdvanceStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subject, ok := middleware.SubjectFromContext(ctx)
	if !ok {
		utils.WriteError(w, entities.ErrNoToken.Error(), http.StatusUnauthorized)
		return
	}
	orderID := chi.URLParam(r, "order_id")

	var req UpdateStatusRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.svc.AdvanceStatus(ctx, subject, orderID, entities.Status(req.Status))
	recordOperation("advance", err)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// CancelOrder cancels a freshly placed order within the window.
// @Summary      Cancel order
// @Tags         orders
// @Param        order_id path string true "Order id"
// @Success      200  {object}  utils.MessageResponse
// @Failure      400  {object}  utils.ErrorResponse
// @Failure      403  {object}  utils.ErrorResponse
// @Failure      404  {object}  utils.ErrorResponse
// @Router       /api/orders/{order_id} [delete]
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subject, ok := middleware.SubjectFromContext(ctx)
	if !ok {
		utils.WriteError(w, entities.ErrNoToken.Error(), http.StatusUnauthorized)
		return
	}
	orderID := chi.URLParam(r, "order_id")

	err := h.svc.CancelOrder(ctx, subject, orderID)
	recordOperation("cancel", err)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}

	utils.WriteMessage(w, "order cancelled", http.StatusOK)
}
