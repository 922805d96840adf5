package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/renderforge/shotflow/internal/domain/identity"
	"github.com/renderforge/shotflow/internal/repository"
)

// UserRepository implements identity.Repository for SQLite
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user and their roles in one transaction
func (r *UserRepository) Create(ctx context.Context, tenantID string, user *identity.User) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (id, tenant_id, handle, display_name, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, user.ID, tenantID, user.Handle, user.DisplayName, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	for _, role := range user.Roles {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO user_roles (user_id, role) VALUES (?, ?)
		`, user.ID, role)
		if err != nil {
			return fmt.Errorf("failed to add role: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit user creation: %w", err)
	}
	return nil
}

// Get retrieves a user by ID
func (r *UserRepository) Get(ctx context.Context, tenantID, id string) (*identity.User, error) {
	return r.getBy(ctx, tenantID, "id", id)
}

// GetByHandle retrieves a user by contact handle
func (r *UserRepository) GetByHandle(ctx context.Context, tenantID, handle string) (*identity.User, error) {
	return r.getBy(ctx, tenantID, "handle", handle)
}

func (r *UserRepository) getBy(ctx context.Context, tenantID, column, value string) (*identity.User, error) {
	query := fmt.Sprintf(`
		SELECT id, tenant_id, handle, display_name, created_at
		FROM users
		WHERE %s = ? AND tenant_id = ?
	`, column)

	var user identity.User
	var displayName sql.NullString
	err := r.db.QueryRowContext(ctx, query, value, tenantID).Scan(
		&user.ID,
		&user.TenantID,
		&user.Handle,
		&displayName,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	user.DisplayName = displayName.String

	roles, err := r.getRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Roles = roles

	return &user, nil
}

func (r *UserRepository) getRoles(ctx context.Context, userID string) ([]identity.Role, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT role FROM user_roles WHERE user_id = ? ORDER BY role`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get roles: %w", err)
	}
	defer rows.Close()

	var roles []identity.Role
	for rows.Next() {
		var role identity.Role
		if err := rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, role)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating role rows: %w", err)
	}

	return roles, nil
}
