package identity

import (
	"strings"

	"github.com/storefront/backend/internal/domain/shared"
)

// FallbackUserName is used when the identity provider supplies no name claim.
const FallbackUserName = "Unknown User"

// User represents a local user record, synced lazily from the identity
// provider on the first authenticated write.
type User struct {
	shared.BaseEntity
	Name  string `gorm:"type:varchar(100);not null;index"`
	Email string `gorm:"type:varchar(100);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user from verified identity claims.
// An empty name falls back to a placeholder; the email is required.
func NewUser(name, email string) (*User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, shared.NewDomainError("MISSING_EMAIL", "User email is required")
	}
	if len(email) > 100 {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 100 characters")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = FallbackUserName
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot exceed 100 characters")
	}

	return &User{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Email:      email,
	}, nil
}
