package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/renderforge/shotflow/internal/domain/sharing"
	"github.com/renderforge/shotflow/internal/repository"
)

// GrantRepository implements sharing.GrantRepository for SQLite
type GrantRepository struct {
	db *DB
}

// NewGrantRepository creates a new GrantRepository
func NewGrantRepository(db *DB) *GrantRepository {
	return &GrantRepository{db: db}
}

// Create inserts a grant. The partial unique index on active grants makes
// the duplicate check atomic with the insert; a violation maps to
// repository.ErrConflict.
func (r *GrantRepository) Create(ctx context.Context, tenantID string, grant *sharing.SharedTaskGrant) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO task_grants (id, tenant_id, task_id, artist_id, access_level, status, notes, granted_by, shared_at, approved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		grant.ID,
		tenantID,
		grant.TaskID,
		grant.ArtistID,
		grant.AccessLevel,
		grant.Status,
		grant.Notes,
		grant.GrantedBy,
		grant.SharedAt,
		grant.ApprovedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create grant: %w", err)
	}
	return nil
}

// Get retrieves a grant by ID
func (r *GrantRepository) Get(ctx context.Context, tenantID, id string) (*sharing.SharedTaskGrant, error) {
	query := grantSelect + ` WHERE id = ? AND tenant_id = ?`

	grant, err := scanGrant(r.db.QueryRowContext(ctx, query, id, tenantID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get grant: %w", err)
	}
	return grant, nil
}

// GetActive returns the pending or approved grant for a (task, artist) pair
func (r *GrantRepository) GetActive(ctx context.Context, tenantID, taskID, artistID string) (*sharing.SharedTaskGrant, error) {
	query := grantSelect + `
		WHERE task_id = ? AND artist_id = ? AND tenant_id = ?
		AND status IN ('pending', 'approved')
	`

	grant, err := scanGrant(r.db.QueryRowContext(ctx, query, taskID, artistID, tenantID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active grant: %w", err)
	}
	return grant, nil
}

// Resolve writes the decision, conditioned on the grant still being pending.
// A grant already resolved surfaces as repository.ErrConflict.
func (r *GrantRepository) Resolve(ctx context.Context, tenantID string, grant *sharing.SharedTaskGrant) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE task_grants
		SET status = ?, approved_at = ?
		WHERE id = ? AND tenant_id = ? AND status = 'pending'
	`,
		grant.Status,
		grant.ApprovedAt,
		grant.ID,
		tenantID,
	)
	if err != nil {
		return fmt.Errorf("failed to resolve grant: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		var exists bool
		checkQuery := `SELECT EXISTS(SELECT 1 FROM task_grants WHERE id = ? AND tenant_id = ?)`
		if err := r.db.QueryRowContext(ctx, checkQuery, grant.ID, tenantID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check grant existence: %w", err)
		}
		if !exists {
			return repository.ErrNotFound
		}
		// Grant exists but is no longer pending - conflict
		return repository.ErrConflict
	}

	return nil
}

// ListForArtist returns an artist's grants, newest first
func (r *GrantRepository) ListForArtist(ctx context.Context, tenantID, artistID string) ([]sharing.SharedTaskGrant, error) {
	query := grantSelect + `
		WHERE artist_id = ? AND tenant_id = ?
		ORDER BY shared_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, artistID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list grants: %w", err)
	}
	defer rows.Close()

	var grants []sharing.SharedTaskGrant
	for rows.Next() {
		grant, err := scanGrant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan grant: %w", err)
		}
		grants = append(grants, *grant)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating grant rows: %w", err)
	}

	return grants, nil
}

const grantSelect = `
	SELECT id, tenant_id, task_id, artist_id, access_level, status, notes, granted_by, shared_at, approved_at
	FROM task_grants`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGrant(row rowScanner) (*sharing.SharedTaskGrant, error) {
	var grant sharing.SharedTaskGrant
	var notes sql.NullString
	err := row.Scan(
		&grant.ID,
		&grant.TenantID,
		&grant.TaskID,
		&grant.ArtistID,
		&grant.AccessLevel,
		&grant.Status,
		&notes,
		&grant.GrantedBy,
		&grant.SharedAt,
		&grant.ApprovedAt,
	)
	if err != nil {
		return nil, err
	}
	grant.Notes = notes.String
	return &grant, nil
}
