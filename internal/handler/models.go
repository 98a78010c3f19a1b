package handler

import (
	"time"

	"github.com/quickbite/order-service/internal/entities"
)

// OrderItem is one line of an order
type OrderItem struct {
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
	Price    int64  `json:"price" validate:"gte=0"`
}

// Order represents an order as returned to clients
type Order struct {
	ID        string      `json:"id"`
	OwnerID   string      `json:"owner_id"`
	Items     []OrderItem `json:"items"`
	Status    string      `json:"status"`
	Total     int64       `json:"total"`
	CreatedAt time.Time   `json:"created_at"`
}

// PlaceOrderRequest is the payload staged by the client-side cart
type PlaceOrderRequest struct {
	Items []OrderItem `json:"items" validate:"required,min=1,dive"`
}

// UpdateStatusRequest moves an order one stage forward
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// RegisterRequest creates a customer account
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest exchanges credentials for a bearer token
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterResponse carries the id of the created account
type RegisterResponse struct {
	ID string `json:"id"`
}

// TokenResponse carries the issued bearer token
type TokenResponse struct {
	Token string `json:"token"`
}

func ItemJSONToEntity(i OrderItem) entities.OrderItem {
	return entities.OrderItem{
		Name:      i.Name,
		Quantity:  i.Quantity,
		UnitPrice: i.Price,
	}
}

func ItemEntityToJSON(i entities.OrderItem) OrderItem {
	return OrderItem{
		Name:     i.Name,
		Quantity: i.Quantity,
		Price:    i.UnitPrice,
	}
}

func ItemsJSONToEntity(items []OrderItem) []entities.OrderItem {
	out := make([]entities.OrderItem, 0, len(items))
	for _, it := range items {
		out = append(out, ItemJSONToEntity(it))
	}
	return out
}

func OrderEntityToJSON(o entities.Order) Order {
	items := make([]OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, ItemEntityToJSON(it))
	}

	return Order{
		ID:        o.ID,
		OwnerID:   o.OwnerID,
		Items:     items,
		Status:    o.Status.String(),
		Total:     o.Total(),
		CreatedAt: o.CreatedAt,
	}
}

func OrdersEntityToJSON(orders []entities.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, OrderEntityToJSON(o))
	}
	return out
}
