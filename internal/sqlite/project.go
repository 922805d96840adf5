package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/renderforge/shotflow/internal/domain/workflow"
	"github.com/renderforge/shotflow/internal/repository"
)

// ProjectRepository implements workflow.ProjectRepository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts a project and its creation history entry in one transaction
func (r *ProjectRepository) Create(ctx context.Context, tenantID string, proj *workflow.Project, initial *workflow.StatusHistoryEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO projects (id, tenant_id, title, description, client_id, assigned_to, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		proj.ID,
		tenantID,
		proj.Title,
		proj.Description,
		proj.ClientID,
		proj.AssignedTo,
		proj.Status,
		proj.CreatedAt,
		proj.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create project: %w", err)
	}

	if initial != nil {
		if err := insertHistory(ctx, tx, tenantID, initial); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit project creation: %w", err)
	}
	return nil
}

// Get retrieves a project by ID
func (r *ProjectRepository) Get(ctx context.Context, tenantID, id string) (*workflow.Project, error) {
	query := `
		SELECT id, tenant_id, title, description, client_id, assigned_to, status, created_at, updated_at
		FROM projects
		WHERE id = ? AND tenant_id = ?
	`

	var proj workflow.Project
	err := r.db.QueryRowContext(ctx, query, id, tenantID).Scan(
		&proj.ID,
		&proj.TenantID,
		&proj.Title,
		&proj.Description,
		&proj.ClientID,
		&proj.AssignedTo,
		&proj.Status,
		&proj.CreatedAt,
		&proj.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return &proj, nil
}

// List returns project summaries for a tenant, newest first
func (r *ProjectRepository) List(ctx context.Context, tenantID string) ([]workflow.ProjectSummary, error) {
	query := `
		SELECT id, title, client_id, status, created_at, updated_at
		FROM projects
		WHERE tenant_id = ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var summaries []workflow.ProjectSummary
	for rows.Next() {
		var s workflow.ProjectSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.ClientID, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project summary: %w", err)
		}
		summaries = append(summaries, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return summaries, nil
}

// Transition applies a status change and appends its history entry in one
// transaction. The UPDATE is conditioned on the persisted status still being
// the expected one; a racing write surfaces as repository.ErrConflict.
func (r *ProjectRepository) Transition(ctx context.Context, tenantID string, proj *workflow.Project, expected workflow.Status, entry *workflow.StatusHistoryEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE projects
		SET status = ?, updated_at = ?
		WHERE id = ? AND tenant_id = ? AND status = ?
	`,
		proj.Status,
		proj.UpdatedAt,
		proj.ID,
		tenantID,
		expected,
	)
	if err != nil {
		return fmt.Errorf("failed to update project status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		var exists bool
		checkQuery := `SELECT EXISTS(SELECT 1 FROM projects WHERE id = ? AND tenant_id = ?)`
		if err := tx.QueryRowContext(ctx, checkQuery, proj.ID, tenantID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check project existence: %w", err)
		}
		if !exists {
			return repository.ErrNotFound
		}
		// Project exists but status no longer matches - conflict
		return repository.ErrConflict
	}

	if err := insertHistory(ctx, tx, tenantID, entry); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transition: %w", err)
	}
	return nil
}

func insertHistory(ctx context.Context, tx *sql.Tx, tenantID string, entry *workflow.StatusHistoryEntry) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO status_history (tenant_id, project_id, from_status, to_status, changed_by, reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		tenantID,
		entry.ProjectID,
		entry.FromStatus,
		entry.ToStatus,
		entry.ChangedBy,
		entry.Reason,
		entry.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to append history entry: %w", err)
	}
	return nil
}

// HistoryRepository implements workflow.HistoryRepository for SQLite
type HistoryRepository struct {
	db *DB
}

// NewHistoryRepository creates a new HistoryRepository
func NewHistoryRepository(db *DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// ListByProject returns a project's status history, newest first
func (r *HistoryRepository) ListByProject(ctx context.Context, tenantID, projectID string) ([]workflow.StatusHistoryEntry, error) {
	query := `
		SELECT id, project_id, from_status, to_status, changed_by, reason, created_at
		FROM status_history
		WHERE project_id = ? AND tenant_id = ?
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, projectID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var entries []workflow.StatusHistoryEntry
	for rows.Next() {
		var entry workflow.StatusHistoryEntry
		var reason sql.NullString
		err := rows.Scan(
			&entry.ID,
			&entry.ProjectID,
			&entry.FromStatus,
			&entry.ToStatus,
			&entry.ChangedBy,
			&reason,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entry.Reason = reason.String
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history rows: %w", err)
	}

	return entries, nil
}
