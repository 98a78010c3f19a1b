package repo

import (
	"time"

	"github.com/quickbite/order-service/internal/entities"
)

type Order struct {
	ID        string    `db:"id"`
	OwnerID   string    `db:"owner_id"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}

type OrderItem struct {
	OrderID   string `db:"order_id"`
	Pos       int    `db:"pos"`
	Name      string `db:"name"`
	Quantity  int    `db:"quantity"`
	UnitPrice int64  `db:"unit_price"`
}

type User struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
}

func OrderToEntity(o Order, items []OrderItem) entities.Order {
	out := entities.Order{
		ID:        o.ID,
		OwnerID:   o.OwnerID,
		Status:    entities.Status(o.Status),
		CreatedAt: o.CreatedAt,
	}
	if len(items) > 0 {
		out.Items = make([]entities.OrderItem, 0, len(items))
		for _, it := range items {
			out.Items = append(out.Items, entities.OrderItem{
				Name:      it.Name,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
			})
		}
	}
	return out
}

func UserToEntity(u User) entities.User {
	return entities.User{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         entities.Role(u.Role),
		CreatedAt:    u.CreatedAt,
	}
}
