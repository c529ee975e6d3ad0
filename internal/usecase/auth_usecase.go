package usecase

import (
	"context"
	"time"

	"go-dogwalking-backend/internal/domain"
	"go-dogwalking-backend/pkg/apperror"
)

type authUsecase struct {
	userRepo domain.UserRepository
}

func NewAuthUsecase(userRepo domain.UserRepository) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo}
}

// EnsureUserExists syncs a Supabase auth user into the local users table.
// Idempotent: called after every login, creates on first sight, updates the
// role if it changed.
func (u *authUsecase) EnsureUserExists(ctx context.Context, user *domain.User) error {
	existing, err := u.userRepo.GetByID(ctx, user.ID)
	if existing != nil && err == nil {
		if user.Role != "" && existing.Role != user.Role {
			existing.Role = user.Role
			existing.UpdatedAt = time.Now()
			return u.userRepo.Update(ctx, existing)
		}
		return nil
	}

	if user.Role == "" {
		user.Role = domain.RoleOwner
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	return u.userRepo.Create(ctx, user)
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}
	return user, nil
}
