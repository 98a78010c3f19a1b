package entities

import (
	"bytes"
	"encoding/gob"
	"errors"
	"time"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrder       = errors.New("invalid order")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrNotOrderOwner      = errors.New("not the order owner")
	ErrAdminOnly          = errors.New("admin access required")
	ErrCancelWindowClosed = errors.New("order can no longer be cancelled")
	ErrStoreUnavailable   = errors.New("store unavailable")
)

type OrderItem struct {
	Name      string
	Quantity  int
	UnitPrice int64
}

type Order struct {
	ID        string
	OwnerID   string
	Items     []OrderItem
	Status    Status
	CreatedAt time.Time
}

// Total is the amount owed for the order in minor currency units.
func (o Order) Total() int64 {
	var total int64
	for _, it := range o.Items {
		total += it.UnitPrice * int64(it.Quantity)
	}
	return total
}

// Cancellable reports whether the order may still be cancelled by its owner
// at the given moment. Only freshly placed orders within the window qualify.
func (o Order) Cancellable(now time.Time, window time.Duration) bool {
	return o.Status == StatusPlaced && now.Sub(o.CreatedAt) <= window
}

func (o *Order) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (o *Order) Unmarshal(data []byte) error {
	buf := bytes.NewBuffer(data)
	dec := gob.NewDecoder(buf)
	return dec.Decode(o)
}

func init() {
	gob.Register(Order{})
	gob.Register(OrderItem{})
}
