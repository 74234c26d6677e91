// Package repository defines the persistence contracts for users and roles.
package repository

import (
	"context"

	"account-service/internal/user/domain"
)

// UserRepository is the user store. Lookup methods return (nil, nil) when no
// matching user exists; errors are reserved for store failures.
type UserRepository interface {
	Save(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByPhoneNumber(ctx context.Context, phoneNumber string) (*domain.User, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

// RoleRepository is the role store.
type RoleRepository interface {
	Find(ctx context.Context, typ domain.RoleType) (*domain.Role, error)
	FindByIDs(ctx context.Context, ids []int64) ([]domain.Role, error)
}
