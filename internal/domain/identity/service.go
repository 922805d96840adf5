package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/renderforge/shotflow/internal/repository"
)

// Directory resolves users by ID or contact handle.
type Directory struct {
	repo   Repository
	logger *slog.Logger
}

// NewDirectory creates a new identity directory.
func NewDirectory(repo Repository, logger *slog.Logger) *Directory {
	return &Directory{repo: repo, logger: logger}
}

// RegisterRequest defines user registration inputs.
type RegisterRequest struct {
	ID          string
	Handle      string
	DisplayName string
	Roles       []Role
}

// Register creates a new user account.
func (d *Directory) Register(ctx context.Context, tenantID string, req RegisterRequest) (*User, error) {
	if strings.TrimSpace(req.Handle) == "" {
		return nil, ErrInvalidInput
	}
	for _, role := range req.Roles {
		if !role.IsValid() {
			return nil, ErrInvalidInput
		}
	}

	id := req.ID
	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
	}

	user := &User{
		ID:          id,
		TenantID:    tenantID,
		Handle:      req.Handle,
		DisplayName: req.DisplayName,
		Roles:       req.Roles,
		CreatedAt:   time.Now(),
	}

	if err := d.repo.Create(ctx, tenantID, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

// FindByID fetches a user by ID.
func (d *Directory) FindByID(ctx context.Context, tenantID, id string) (*User, error) {
	user, err := d.repo.Get(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return user, nil
}

// FindByHandle fetches a user by contact handle.
func (d *Directory) FindByHandle(ctx context.Context, tenantID, handle string) (*User, error) {
	if strings.TrimSpace(handle) == "" {
		return nil, ErrInvalidInput
	}
	user, err := d.repo.GetByHandle(ctx, tenantID, handle)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user by handle: %w", err)
	}
	return user, nil
}
