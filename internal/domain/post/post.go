package post

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type Repository interface {
	// DeleteByOwner removes every post owned by ownerID. Deleting zero rows
	// is not an error.
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
}
