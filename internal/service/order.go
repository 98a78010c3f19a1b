package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/quickbite/order-service/internal/config"
	"github.com/quickbite/order-service/internal/entities"
	"github.com/quickbite/order-service/pkg/trm"

	"github.com/google/uuid"
)

type OrderRepo interface {
	SaveOrder(ctx context.Context, o entities.Order) error
	SaveItems(ctx context.Context, orderID string, items []entities.OrderItem) error
	GetOrderByID(ctx context.Context, orderID string) (entities.Order, error)
	ListOrdersByOwner(ctx context.Context, ownerID string) ([]entities.Order, error)
	UpdateStatus(ctx context.Context, orderID string, from, to entities.Status) (bool, error)
	DeleteIfCancellable(ctx context.Context, orderID, ownerID string, cutoff time.Time) (bool, error)
	MarkCancelled(ctx context.Context, orderID, ownerID string, cutoff time.Time) (bool, error)
}

type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Delete(key string)
}

type EventPublisher interface {
	Publish(ctx context.Context, event entities.OrderEvent) error
}

type orderService struct {
	logger    *slog.Logger
	txManager trm.Manager
	repo      OrderRepo
	cache     Cache
	events    EventPublisher

	cancelWindow    time.Duration
	retainCancelled bool
	now             func() time.Time
}

type Option func(*orderService)

// WithClock overrides the engine's time source, for tests around the
// cancellation deadline.
func WithClock(now func() time.Time) Option {
	return func(s *orderService) { s.now = now }
}

func NewOrderService(
	logger *slog.Logger,
	txManager trm.Manager,
	repo OrderRepo,
	cache Cache,
	events EventPublisher,
	cfg config.Orders,
	opts ...Option,
) *orderService {
	s := &orderService{
		logger:          logger.With(slog.String("service", "order")),
		txManager:       txManager,
		repo:            repo,
		cache:           cache,
		events:          events,
		cancelWindow:    cfg.CancelWindow,
		retainCancelled: cfg.RetainCancelled,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PlaceOrder creates an order owned by the subject. The owner always comes
// from the verified subject, never from the payload.
func (s *orderService) PlaceOrder(ctx context.Context, subject entities.Subject, items []entities.OrderItem) (entities.Order, error) {
	if err := validateItems(items); err != nil {
		return entities.Order{}, err
	}

	order := entities.Order{
		ID:        uuid.NewString(),
		OwnerID:   subject.ID,
		Items:     items,
		Status:    entities.StatusPlaced,
		CreatedAt: s.now().UTC(),
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.repo.SaveOrder(ctx, order); err != nil {
			return fmt.Errorf("failed to save order: %w", err)
		}
		if err := s.repo.SaveItems(ctx, order.ID, order.Items); err != nil {
			return fmt.Errorf("failed to save items: %w", err)
		}
		return nil
	})
	if err != nil {
		return entities.Order{}, s.storeFailure(ctx, "place order", err)
	}

	s.logger.DebugContext(ctx, "order placed", slog.String("order_id", order.ID), slog.String("owner_id", order.OwnerID))
	s.publish(ctx, order, entities.EventOrderPlaced)
	return order, nil
}

// ListOrders returns every order owned by the subject, newest first.
func (s *orderService) ListOrders(ctx context.Context, subject entities.Subject) ([]entities.Order, error) {
	orders, err := s.repo.ListOrdersByOwner(ctx, subject.ID)
	if err != nil {
		return nil, s.storeFailure(ctx, "list orders", err)
	}
	return orders, nil
}

// GetOrder returns one order for its owner or an admin.
func (s *orderService) GetOrder(ctx context.Context, subject entities.Subject, orderID string) (entities.Order, error) {
	order, cached, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}

	if order.OwnerID != subject.ID && !subject.IsAdmin() {
		return entities.Order{}, entities.ErrNotOrderOwner
	}

	if !cached {
		if data, err := order.Marshal(); err == nil {
			s.cache.Set(order.ID, data)
		}
	}
	return order, nil
}

// AdvanceStatus moves the order one stage forward. Admin only; the target
// must be the single legal edge from the current status.
func (s *orderService) AdvanceStatus(ctx context.Context, subject entities.Subject, orderID string, next entities.Status) (entities.Order, error) {
	if !subject.IsAdmin() {
		return entities.Order{}, entities.ErrAdminOnly
	}
	if !next.Valid() {
		return entities.Order{}, fmt.Errorf("%w: unknown status %q", entities.ErrInvalidTransition, next)
	}

	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return entities.Order{}, s.storeFailure(ctx, "advance status", err)
	}

	if !order.Status.CanAdvanceTo(next) {
		return entities.Order{}, fmt.Errorf("%w: %s to %s", entities.ErrInvalidTransition, order.Status, next)
	}

	// guarded write: a concurrent cancel or advance makes it a no-op
	ok, err := s.repo.UpdateStatus(ctx, orderID, order.Status, next)
	if err != nil {
		return entities.Order{}, s.storeFailure(ctx, "advance status", err)
	}
	if !ok {
		return entities.Order{}, s.classifyAdvanceConflict(ctx, orderID, next)
	}

	order.Status = next
	s.cache.Delete(orderID)
	s.logger.DebugContext(ctx, "status advanced", slog.String("order_id", orderID), slog.String("status", next.String()))
	s.publish(ctx, order, entities.EventStatusChanged)
	return order, nil
}

// CancelOrder removes (or, with retention on, tombstones) the order. Only the
// owner may cancel, only while the order is still placed, and only within the
// cancellation window counted from placement.
func (s *orderService) CancelOrder(ctx context.Context, subject entities.Subject, orderID string) error {
	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return s.storeFailure(ctx, "cancel order", err)
	}

	if order.OwnerID != subject.ID {
		return entities.ErrNotOrderOwner
	}

	if !order.Cancellable(s.now().UTC(), s.cancelWindow) {
		return entities.ErrCancelWindowClosed
	}

	// the preconditions are re-evaluated inside the guarded write, with a
	// cutoff taken at this very moment, so the pre-check above can never be
	// the only thing standing between a cancel and a concurrent advance
	cutoff := s.now().UTC().Add(-s.cancelWindow)
	var ok bool
	if s.retainCancelled {
		ok, err = s.repo.MarkCancelled(ctx, orderID, subject.ID, cutoff)
	} else {
		ok, err = s.repo.DeleteIfCancellable(ctx, orderID, subject.ID, cutoff)
	}
	if err != nil {
		return s.storeFailure(ctx, "cancel order", err)
	}
	if !ok {
		return s.classifyCancelConflict(ctx, orderID)
	}

	order.Status = entities.StatusCancelled
	s.cache.Delete(orderID)
	s.logger.DebugContext(ctx, "order cancelled", slog.String("order_id", orderID))
	s.publish(ctx, order, entities.EventOrderCancelled)
	return nil
}

func (s *orderService) loadOrder(ctx context.Context, orderID string) (entities.Order, bool, error) {
	if data, ok := s.cache.Get(orderID); ok {
		var order entities.Order
		if err := order.Unmarshal(data); err == nil {
			return order, true, nil
		}
		// treat a corrupt entry as a miss
		s.cache.Delete(orderID)
	}

	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return entities.Order{}, false, s.storeFailure(ctx, "get order", err)
	}
	return order, false, nil
}

// classifyAdvanceConflict reports why a guarded status update matched no row.
func (s *orderService) classifyAdvanceConflict(ctx context.Context, orderID string, next entities.Status) error {
	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return s.storeFailure(ctx, "advance status", err)
	}
	return fmt.Errorf("%w: %s to %s", entities.ErrInvalidTransition, order.Status, next)
}

// classifyCancelConflict reports why a guarded cancel matched no row: the
// order vanished meanwhile, or it is no longer a freshly placed one.
func (s *orderService) classifyCancelConflict(ctx context.Context, orderID string) error {
	if _, err := s.repo.GetOrderByID(ctx, orderID); err != nil {
		return s.storeFailure(ctx, "cancel order", err)
	}
	return entities.ErrCancelWindowClosed
}

// storeFailure passes domain errors through and hides everything else behind
// ErrStoreUnavailable so store internals never leak to callers.
func (s *orderService) storeFailure(ctx context.Context, op string, err error) error {
	switch {
	case isDomainErr(err):
		return err
	default:
		s.logger.ErrorContext(ctx, "store failure", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%w: %s", entities.ErrStoreUnavailable, op)
	}
}

func (s *orderService) publish(ctx context.Context, order entities.Order, eventType string) {
	event := entities.OrderEvent{
		OrderID:  order.ID,
		OwnerID:  order.OwnerID,
		Type:     eventType,
		Status:   order.Status,
		Total:    order.Total(),
		Occurred: s.now().UTC(),
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish event",
			slog.String("order_id", order.ID),
			slog.String("type", eventType),
			slog.Any("error", err),
		)
	}
}

func validateItems(items []entities.OrderItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: order must contain at least one item", entities.ErrInvalidOrder)
	}
	for _, it := range items {
		if it.Name == "" {
			return fmt.Errorf("%w: item name is required", entities.ErrInvalidOrder)
		}
		if it.Quantity <= 0 {
			return fmt.Errorf("%w: quantity of %q must be positive", entities.ErrInvalidOrder, it.Name)
		}
		if it.UnitPrice < 0 {
			return fmt.Errorf("%w: price of %q must not be negative", entities.ErrInvalidOrder, it.Name)
		}
	}
	return nil
}
