package repository

import (
	"context"

	"staffroster-web/internal/domain/entity"
)

// AuthRepository defines the interface for login and permission lookups
type AuthRepository interface {
	Login(ctx context.Context, employeeID, password string) error
	Permission(ctx context.Context, employeeID string) (entity.Permission, error)
}
