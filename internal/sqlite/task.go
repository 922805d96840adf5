package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/renderforge/shotflow/internal/domain/sharing"
	"github.com/renderforge/shotflow/internal/repository"
)

// TaskRepository implements sharing.TaskRepository for SQLite
type TaskRepository struct {
	db *DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// CreateSequence inserts a sequence
func (r *TaskRepository) CreateSequence(ctx context.Context, tenantID string, seq *sharing.Sequence) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sequences (id, tenant_id, project_id, code, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, seq.ID, tenantID, seq.ProjectID, seq.Code, seq.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create sequence: %w", err)
	}
	return nil
}

// CreateShot inserts a shot
func (r *TaskRepository) CreateShot(ctx context.Context, tenantID string, shot *sharing.Shot) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO shots (id, tenant_id, sequence_id, code, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, shot.ID, tenantID, shot.SequenceID, shot.Code, shot.Status, shot.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create shot: %w", err)
	}
	return nil
}

// CreateTask inserts a task
func (r *TaskRepository) CreateTask(ctx context.Context, tenantID string, task *sharing.Task) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, tenant_id, shot_id, name, status, priority, assigned_to, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, task.ID, tenantID, task.ShotID, task.Name, task.Status, task.Priority, task.AssignedTo, task.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// GetTask retrieves a task by ID
func (r *TaskRepository) GetTask(ctx context.Context, tenantID, id string) (*sharing.Task, error) {
	query := `
		SELECT id, shot_id, name, status, priority, assigned_to, created_at
		FROM tasks
		WHERE id = ? AND tenant_id = ?
	`

	var task sharing.Task
	var status, priority sql.NullString
	err := r.db.QueryRowContext(ctx, query, id, tenantID).Scan(
		&task.ID,
		&task.ShotID,
		&task.Name,
		&status,
		&priority,
		&task.AssignedTo,
		&task.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	task.Status = status.String
	task.Priority = priority.String

	return &task, nil
}

// VisibleShots returns the shots in the sequence that have at least one task
// with an approved grant for the artist
func (r *TaskRepository) VisibleShots(ctx context.Context, tenantID, artistID, sequenceID string) ([]sharing.Shot, error) {
	query := `
		SELECT DISTINCT s.id, s.sequence_id, s.code, s.status, s.created_at
		FROM shots s
		JOIN tasks t ON t.shot_id = s.id AND t.tenant_id = s.tenant_id
		JOIN task_grants g ON g.task_id = t.id AND g.tenant_id = t.tenant_id
		WHERE s.sequence_id = ? AND s.tenant_id = ?
		AND g.artist_id = ? AND g.status = 'approved'
		ORDER BY s.code ASC
	`

	rows, err := r.db.QueryContext(ctx, query, sequenceID, tenantID, artistID)
	if err != nil {
		return nil, fmt.Errorf("failed to list visible shots: %w", err)
	}
	defer rows.Close()

	var shots []sharing.Shot
	for rows.Next() {
		var shot sharing.Shot
		var status sql.NullString
		if err := rows.Scan(&shot.ID, &shot.SequenceID, &shot.Code, &status, &shot.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan shot: %w", err)
		}
		shot.Status = status.String
		shots = append(shots, shot)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shot rows: %w", err)
	}

	return shots, nil
}

// VisibleTasks returns the tasks under the shot covered by an approved grant
// for the artist
func (r *TaskRepository) VisibleTasks(ctx context.Context, tenantID, artistID, shotID string) ([]sharing.Task, error) {
	query := `
		SELECT t.id, t.shot_id, t.name, t.status, t.priority, t.assigned_to, t.created_at
		FROM tasks t
		JOIN task_grants g ON g.task_id = t.id AND g.tenant_id = t.tenant_id
		WHERE t.shot_id = ? AND t.tenant_id = ?
		AND g.artist_id = ? AND g.status = 'approved'
		ORDER BY t.name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, shotID, tenantID, artistID)
	if err != nil {
		return nil, fmt.Errorf("failed to list visible tasks: %w", err)
	}
	defer rows.Close()

	var tasks []sharing.Task
	for rows.Next() {
		var task sharing.Task
		var status, priority sql.NullString
		if err := rows.Scan(&task.ID, &task.ShotID, &task.Name, &status, &priority, &task.AssignedTo, &task.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		task.Status = status.String
		task.Priority = priority.String
		tasks = append(tasks, task)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}

	return tasks, nil
}
