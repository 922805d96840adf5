package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/renderforge/shotflow/internal/domain/audit"
)

// AuditRepository implements audit.Repository for SQLite
type AuditRepository struct {
	db *DB
}

// NewAuditRepository creates a new AuditRepository
func NewAuditRepository(db *DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Log appends an audit entry
func (r *AuditRepository) Log(ctx context.Context, tenantID string, entry *audit.Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_log (tenant_id, project_id, subject, actor_id, event_type, summary, details, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		tenantID,
		entry.ProjectID,
		entry.Subject,
		entry.ActorID,
		entry.EventType,
		entry.Summary,
		entry.Details,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to log audit entry: %w", err)
	}
	return nil
}

// List returns audit entries matching the options, newest first
func (r *AuditRepository) List(ctx context.Context, tenantID string, opts audit.ListOptions) ([]audit.Entry, error) {
	query := `
		SELECT id, tenant_id, project_id, subject, actor_id, event_type, summary, details, created_at
		FROM audit_log
		WHERE tenant_id = ?
	`

	args := []interface{}{tenantID}
	conditions := []string{}

	if opts.ProjectID != "" {
		conditions = append(conditions, "project_id = ?")
		args = append(args, opts.ProjectID)
	}

	if opts.EventType != nil {
		conditions = append(conditions, "event_type = ?")
		args = append(args, *opts.EventType)
	}

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY created_at DESC, id DESC"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	} else if opts.Offset > 0 {
		// SQLite only accepts OFFSET after a LIMIT clause; -1 means unbounded.
		query += " LIMIT -1"
	}

	if opts.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, opts.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var entry audit.Entry
		var projectID, details sql.NullString
		err := rows.Scan(
			&entry.ID,
			&entry.TenantID,
			&projectID,
			&entry.Subject,
			&entry.ActorID,
			&entry.EventType,
			&entry.Summary,
			&details,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entry.ProjectID = projectID.String
		entry.Details = details.String
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit rows: %w", err)
	}

	return entries, nil
}
