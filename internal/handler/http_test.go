package handler_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/quickbite/order-service/internal/auth"
	"github.com/quickbite/order-service/internal/entities"
	"github.com/quickbite/order-service/internal/handler"
	"github.com/quickbite/order-service/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockOrderService struct {
	mock.Mock
}

func (m *mockOrderService) PlaceOrder(ctx context.Context, subject entities.Subject, items []entities.OrderItem) (entities.Order, error) {
	args := m.Called(ctx, subject, items)
	return args.Get(0).(entities.Order), args.Error(1)
}

func (m *mockOrderService) ListOrders(ctx context.Context, subject entities.Subject) ([]entities.Order, error) {
	args := m.Called(ctx, subject)
	orders, _ := args.Get(0).([]entities.Order)
	return orders, args.Error(1)
}

func (m *mockOrderService) GetOrder(ctx context.Context, subject entities.Subject, orderID string) (entities.Order, error) {
	args := m.Called(ctx, subject, orderID)
	return args.Get(0).(entities.Order), args.Error(1)
}

func (m *mockOrderService) AdvanceStatus(ctx context.Context, subject entities.Subject, orderID string, next entities.Status) (entities.Order, error) {
	args := m.Called(ctx, subject, orderID, next)
	return args.Get(0).(entities.Order), args.Error(1)
}

func (m *mockOrderService) CancelOrder(ctx context.Context, subject entities.Subject, orderID string) error {
	return m.Called(ctx, subject, orderID).Error(0)
}

var (
	codec    = auth.NewTokenCodec("test-secret", time.Hour)
	customer = entities.Subject{ID: "customer-1", Role: entities.RoleCustomer}
	admin    = entities.Subject{ID: "admin-1", Role: entities.RoleAdmin}
)

func newRouter(t *testing.T, svc handler.OrderService) chi.Router {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := handler.NewOrderHandler(logger, svc, middleware.Auth(codec))
	r := chi.NewRouter()
	h.Init(r)
	return r
}

func bearer(t *testing.T, subject entities.Subject) string {
	t.Helper()
	token, err := codec.Issue(subject)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestOrderHandler_Auth(t *testing.T) {
	testCases := []struct {
		name     string
		header   string
		wantBody string
	}{
		{
			name:     "missing token",
			header:   "",
			wantBody: "authorization token missing",
		},
		{
			name:     "malformed token",
			header:   "Bearer not-a-token",
			wantBody: "invalid token",
		},
		{
			name:     "not a bearer header",
			header:   "Basic dXNlcjpwYXNz",
			wantBody: "invalid token",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := newRouter(t, new(mockOrderService))

			req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.wantBody)
		})
	}
}

func TestOrderHandler_PlaceOrder(t *testing.T) {
	placed := entities.Order{
		ID:      "o1",
		OwnerID: customer.ID,
		Items:   []entities.OrderItem{{Name: "Pizza", Quantity: 2, UnitPrice: 300}},
		Status:  entities.StatusPlaced,
	}

	testCases := []struct {
		name         string
		body         string
		mockBehavior func(svc *mockOrderService)
		wantStatus   int
		wantBody     string
	}{
		{
			name: "created",
			body: `{"items":[{"name":"Pizza","quantity":2,"price":300}]}`,
			mockBehavior: func(svc *mockOrderService) {
				svc.On("PlaceOrder", mock.Anything, customer,
					[]entities.OrderItem{{Name: "Pizza", Quantity: 2, UnitPrice: 300}}).
					Return(placed, nil).Once()
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"total":600`,
		},
		{
			name:       "empty items rejected before the engine",
			body:       `{"items":[]}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `"invalid request"`,
		},
		{
			name:       "zero quantity rejected before the engine",
			body:       `{"items":[{"name":"Coke","quantity":0,"price":60}]}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `"invalid request"`,
		},
		{
			name:       "broken json",
			body:       `{"items":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "invalid request body",
		},
		{
			name: "store down",
			body: `{"items":[{"name":"Pizza","quantity":1,"price":300}]}`,
			mockBehavior: func(svc *mockOrderService) {
				svc.On("PlaceOrder", mock.Anything, customer, mock.Anything).
					Return(entities.Order{}, entities.ErrStoreUnavailable).Once()
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "store unavailable",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(mockOrderService)
			if tc.mockBehavior != nil {
				tc.mockBehavior(svc)
			}
			r := newRouter(t, svc)

			req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(tc.body))
			req.Header.Set("Authorization", bearer(t, customer))
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.wantBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestOrderHandler_ListOrders(t *testing.T) {
	owned := []entities.Order{
		{ID: "o2", OwnerID: customer.ID, Status: entities.StatusPlaced},
		{ID: "o1", OwnerID: customer.ID, Status: entities.StatusDelivered},
	}

	svc := new(mockOrderService)
	svc.On("ListOrders", mock.Anything, customer).Return(owned, nil).Once()

	r := newRouter(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", bearer(t, customer))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"id":"o2"`)
	assert.Contains(t, rr.Body.String(), `"id":"o1"`)
	svc.AssertExpectations(t)
}

func TestOrderHandler_GetOrder(t *testing.T) {
	testCases := []struct {
		name         string
		mockBehavior func(svc *mockOrderService)
		wantStatus   int
		wantBody     string
	}{
		{
			name: "found",
			mockBehavior: func(svc *mockOrderService) {
				svc.On("GetOrder", mock.Anything, customer, "o1").
					Return(entities.Order{ID: "o1", OwnerID: customer.ID, Status: entities.StatusPlaced}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"id":"o1"`,
		},
		{
			name: "not found",
			mockBehavior: func(svc *mockOrderService) {
				svc.On("GetOrder", mock.Anything, customer, "o1").
					Return(entities.Order{}, entities.ErrOrderNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
			wantBody:   "order not found",
		},
		{
			name: "someone else's order",
			mockBehavior: func(svc *mockOrderService) {
				svc.On("GetOrder", mock.Anything, customer, "o1").
					Return(entities.Order{}, entities.ErrNotOrderOwner).Once()
			},
			wantStatus: http.StatusForbidden,
			wantBody:   "not the order owner",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(mockOrderService)
			tc.mockBehavior(svc)
			r := newRouter(t, svc)

			req := httptest.NewRequest(http.MethodGet, "/api/orders/o1", nil)
			req.Header.Set("Authorization", bearer(t, customer))
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.wantBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestOrderHandler_AdvanceStatus(t *testing.T) {
	testCases := []struct {
		name         string
		subject      entities.Subject
		body         string
		mockBehavior func(svc *mockOrderService)
		wantStatus   int
		wantBody     string
	}{
		{
			name:    "admin advances",
			subject: admin,
			body:    `{"status":"preparing"}`,
			mockBehavior: func(svc *mockOrderService) {
				svc.On("AdvanceStatus", mock.Anything, admin, "o1", entities.StatusPreparing).
					Return(entities.Order{ID: "o1", Status: entities.StatusPreparing}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"status":"preparing"`,
		},
		{
			name:    "customer is forbidden",
			subject: customer,
			body:    `{"status":"preparing"}`,
			mockBehavior: func(svc *mockOrderService) {
				svc.On("AdvanceStatus", mock.Anything, customer, "o1", entities.StatusPreparing).
					Return(entities.Order{}, entities.ErrAdminOnly).Once()
			},
			wantStatus: http.StatusForbidden,
			wantBody:   "admin access required",
		},
		{
			name:    "illegal edge",
			subject: admin,
			body:    `{"status":"delivered"}`,
			mockBehavior: func(svc *mockOrderService) {
				svc.On("AdvanceStatus", mock.Anything, admin, "o1", entities.StatusDelivered).
					Return(entities.Order{}, entities.ErrInvalidTransition).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   "invalid status transition",
		},
		{
			name:       "missing status",
			subject:    admin,
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `"invalid request"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(mockOrderService)
			if tc.mockBehavior != nil {
				tc.mockBehavior(svc)
			}
			r := newRouter(t, svc)

			req := httptest.NewRequest(http.MethodPut, "/api/orders/o1/status", strings.NewReader(tc.body))
			req.Header.Set("Authorization", bearer(t, tc.subject))
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.wantBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestOrderHandler_CancelOrder(t *testing.T) {
	testCases := []struct {
		name       string
		svcErr     error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "cancelled",
			wantStatus: http.StatusOK,
			wantBody:   "order cancelled",
		},
		{
			name:       "window closed",
			svcErr:     entities.ErrCancelWindowClosed,
			wantStatus: http.StatusBadRequest,
			wantBody:   "no longer be cancelled",
		},
		{
			name:       "not the owner",
			svcErr:     entities.ErrNotOrderOwner,
			wantStatus: http.StatusForbidden,
			wantBody:   "not the order owner",
		},
		{
			name:       "already gone",
			svcErr:     entities.ErrOrderNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   "order not found",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(mockOrderService)
			svc.On("CancelOrder", mock.Anything, customer, "o1").Return(tc.svcErr).Once()
			r := newRouter(t, svc)

			req := httptest.NewRequest(http.MethodDelete, "/api/orders/o1", nil)
			req.Header.Set("Authorization", bearer(t, customer))
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.wantBody)
			svc.AssertExpectations(t)
		})
	}
}
