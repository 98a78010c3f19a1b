// Package auth verifies and issues the bearer credentials that carry a
// subject's identity and role. Verification is stateless: given the signing
// secret, the same token always resolves to the same subject.
package auth

import (
	"fmt"
	"time"

	"github.com/quickbite/order-service/internal/entities"

	"github.com/golang-jwt/jwt/v5"
)

type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	return &TokenCodec{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (c *TokenCodec) WithClock(now func() time.Time) *TokenCodec {
	c.now = now
	return c
}

func (c *TokenCodec) Issue(subject entities.Subject) (string, error) {
	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   subject.ID,
		"role": string(subject.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(c.ttl).Unix(),
	})
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify resolves a signed credential into a Subject. Any defect (bad
// signature, expiry, wrong algorithm, missing claims) comes back as
// entities.ErrInvalidToken; an absent token is the caller's concern.
func (c *TokenCodec) Verify(tokenString string) (entities.Subject, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))

	if err != nil || !token.Valid {
		return entities.Subject{}, entities.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return entities.Subject{}, entities.ErrInvalidToken
	}

	id, _ := claims["id"].(string)
	role, _ := claims["role"].(string)
	subject := entities.Subject{ID: id, Role: entities.Role(role)}

	if subject.ID == "" || !subject.Role.Valid() {
		return entities.Subject{}, entities.ErrInvalidToken
	}
	return subject, nil
}
