// Package user holds the thin user entity consumed by the ledger when
// resolving the owner of a newly created account.
package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrUserNotFound is returned when a referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyRegistered is returned when a user with the same email
	// already exists.
	ErrEmailAlreadyRegistered = errors.New("email already registered")
)

// User identifies an account owner.
type User struct {
	ID        uuid.UUID
	Username  string
	Email     string
	CreatedAt time.Time
}

// New creates a User with a fresh id.
func New(username, email string) *User {
	return &User{
		ID:        uuid.New(),
		Username:  username,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
}
