package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/inventory-backend/internal/domain"
)

// BootstrapManager creates a manager account, or promotes an existing account
// to manager and resets its password. It runs without an actor and is meant
// for the promote command only.
func (s *Service) BootstrapManager(ctx context.Context, input BootstrapInput) (*domain.User, bool, error) {
	input.Email = normalizeEmail(input.Email)
	if err := input.Validate(); err != nil {
		return nil, false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, false, fmt.Errorf("user.BootstrapManager hash password: %w", err)
	}

	var (
		user    *domain.User
		created bool
	)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		existing, err := s.users.GetByEmail(txCtx, input.Email)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			user, err = s.users.Create(txCtx, &domain.User{
				ID:           uuid.New(),
				Email:        input.Email,
				FullName:     trimOrNil(input.FullName),
				PasswordHash: string(hash),
				Role:         domain.UserRoleManager,
				IsActive:     true,
			})
			if err != nil {
				return fmt.Errorf("create user: %w", err)
			}
			created = true
			return nil
		case err != nil:
			return fmt.Errorf("get user: %w", err)
		}

		if _, err := s.users.UpdatePassword(txCtx, existing.ID, string(hash)); err != nil {
			return fmt.Errorf("update password: %w", err)
		}
		user, err = s.users.UpdateRole(txCtx, existing.ID, domain.UserRoleManager)
		if err != nil {
			return fmt.Errorf("update role: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("user.BootstrapManager: %w", err)
	}

	s.log.InfoContext(ctx, "manager bootstrapped",
		slog.String("user_id", user.ID.String()),
		slog.Bool("created", created),
	)

	return user, created, nil
}
