package identity

import "context"

// Repository provides persistence for users and their roles.
type Repository interface {
	Create(ctx context.Context, tenantID string, user *User) error
	Get(ctx context.Context, tenantID, id string) (*User, error)
	GetByHandle(ctx context.Context, tenantID, handle string) (*User, error)
}
