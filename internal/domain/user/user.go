package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// User rows are created by the auth subsystem. The profile service reads
// name/avatar for denormalization and deletes the row during account removal,
// it never mutates anything else.
type User struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Avatar string    `json:"avatar"`
}

var ErrUserNotFound = errors.New("user not found")

type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
