package identity

import (
	"context"
	"errors"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// UserService resolves local user records from verified identity claims.
// Users are synced lazily: the first authenticated request for an email
// creates the row, later requests reuse it.
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// ResolveByEmail returns the user for the given email, creating the
// record on first sight. Two requests may race to create the same
// email; the loser's insert fails on the unique index and is retried
// as a lookup.
func (s *UserService) ResolveByEmail(ctx context.Context, email, name string) (*identity.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	user, err = identity.NewUser(name, email)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			s.logger.Debug("lost user sync race, re-reading", zap.String("email", email))
			return s.userRepo.FindByEmail(ctx, email)
		}
		return nil, err
	}

	s.logger.Info("synced new user from identity claims", zap.String("email", email))
	return user, nil
}
