package entities

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoToken            = errors.New("authorization token missing")
	ErrInvalidToken       = errors.New("invalid token")
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// Subject is the verified identity behind a request. Every lifecycle
// operation takes it explicitly; nothing reads identity from ambient state.
type Subject struct {
	ID   string
	Role Role
}

func (s Subject) IsAdmin() bool {
	return s.Role == RoleAdmin
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
