// Package user provides the thin user-directory service: registering owners
// and resolving them by email. The ledger core only ever reads from it.
package user

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ledgerd/bankcore/pkg/domain/user"
	"github.com/ledgerd/bankcore/pkg/repository"
)

// Service exposes user directory operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a user Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Create registers a new user, rejecting duplicate emails.
func (s *Service) Create(ctx context.Context, username, email string) (*user.User, error) {
	var created *user.User
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		taken, err := uow.Users().ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if taken {
			return user.ErrEmailAlreadyRegistered
		}
		created = user.New(username, email)
		return uow.Users().Create(ctx, created)
	})
	if err != nil {
		s.logger.Error("create user failed", "email", email, "error", err)
		return nil, err
	}
	s.logger.Info("user created", "user_id", created.ID, "email", email)
	return created, nil
}

// Get resolves a user by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, err := s.uow.Users().Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// GetByEmail resolves a user by email.
func (s *Service) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	u, err := s.uow.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}
