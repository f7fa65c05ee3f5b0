package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by its unique email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Save creates or updates a user.
	// Inserting a duplicate email returns shared.ErrAlreadyExists.
	Save(ctx context.Context, user *User) error
}
