package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyUserID   = errors.New("user ID cannot be empty")
	ErrEmptyPassword = errors.New("password cannot be empty")
	ErrEmptyToken    = errors.New("auth token cannot be empty")
)

// User represents a registered user of the task-list service.
// The ID doubles as the login name and is globally unique. Token is the
// user's auth identifier: generated once at creation, immutable for the
// user's lifetime, and accepted thereafter as that user's bearer token.
type User struct {
	ID       string    `json:"id"`
	Password string    `json:"-"` // bcrypt hash, never exposed in JSON
	Token    uuid.UUID `json:"uuid"`
	Tasks    []Task    `json:"tasks"`
}

// Credentials is the login payload: a user ID and a plaintext password.
// It is the input to user creation, user update, and token retrieval.
type Credentials struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

// NewUser creates a User from credentials, generating a fresh auth token.
// The password is stored as given; the caller is responsible for hashing
// it before the user reaches a store.
func NewUser(creds Credentials) (*User, error) {
	user := &User{
		ID:       creds.ID,
		Password: creds.Password,
		Token:    uuid.New(),
		Tasks:    []Task{},
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks that the User has a login ID, a password, and an auth token.
func (u *User) Validate() error {
	if u.ID == "" {
		return ErrEmptyUserID
	}
	if u.Password == "" {
		return ErrEmptyPassword
	}
	if u.Token == uuid.Nil {
		return ErrEmptyToken
	}
	return nil
}
