package entities

import "fmt"

// Status is the lifecycle state of an order. The four delivery stages form a
// strictly forward chain; cancelled is terminal and reachable only from
// placed, within the owner's cancellation window.
//
//	placed -> preparing -> out_for_delivery -> delivered
//	placed -> cancelled
type Status string

const (
	StatusPlaced         Status = "placed"
	StatusPreparing      Status = "preparing"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPlaced, StatusPreparing, StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, s)
}

func (s Status) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// Next returns the following delivery stage. ok is false for terminal
// statuses and for cancelled.
func (s Status) Next() (next Status, ok bool) {
	switch s {
	case StatusPlaced:
		return StatusPreparing, true
	case StatusPreparing:
		return StatusOutForDelivery, true
	case StatusOutForDelivery:
		return StatusDelivered, true
	}
	return "", false
}

// CanAdvanceTo reports whether next is the single legal forward edge from s.
func (s Status) CanAdvanceTo(next Status) bool {
	n, ok := s.Next()
	return ok && n == next
}

func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

func (s Status) String() string {
	return string(s)
}
