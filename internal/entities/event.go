package entities

import "time"

const (
	EventOrderPlaced    = "placed"
	EventStatusChanged  = "status_changed"
	EventOrderCancelled = "cancelled"
)

// OrderEvent is published to the lifecycle topic after a successful intent.
type OrderEvent struct {
	OrderID  string    `json:"order_id"`
	OwnerID  string    `json:"owner_id"`
	Type     string    `json:"type"`
	Status   Status    `json:"status"`
	Total    int64     `json:"total"`
	Occurred time.Time `json:"occurred"`
}
