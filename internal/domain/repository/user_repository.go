package repository

import (
	"context"

	"staffroster-web/internal/domain/entity"
)

// UserRepository defines the interface for employee-account operations.
// The remote API exposes no delete for accounts.
type UserRepository interface {
	List(ctx context.Context) ([]entity.UserAccount, error)
	Update(ctx context.Context, user *entity.UserAccount) error
	Create(ctx context.Context, user *entity.UserAccount) error
}
