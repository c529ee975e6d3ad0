package domain

import (
	"context"
	"time"
)

// Roles stored in the local users table. The JWT role claim is not trusted;
// middleware resolves the role from here.
const (
	RoleOwner  = "owner"
	RoleWalker = "walker"
	RoleAdmin  = "admin"
)

type User struct {
	ID        string    `json:"id"` // Supabase UUID
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
}

type AuthUsecase interface {
	EnsureUserExists(ctx context.Context, user *User) error
	GetCurrentUser(ctx context.Context, id string) (*User, error)
}
