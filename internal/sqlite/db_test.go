package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/renderforge/shotflow/internal/domain/identity"
	"github.com/renderforge/shotflow/internal/domain/sharing"
	"github.com/renderforge/shotflow/internal/domain/workflow"
	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.Bootstrap()
	require.NoError(t, err, "failed to bootstrap schema")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// TestBootstrap verifies that the schema bootstrap creates all tables
func TestBootstrap(t *testing.T) {
	db := NewTestDB(t)

	tables := []string{
		"projects",
		"status_history",
		"users",
		"user_roles",
		"sequences",
		"shots",
		"tasks",
		"task_grants",
		"audit_log",
		"api_keys",
	}

	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}
}

// TestForeignKeys verifies that foreign key constraints are enabled
func TestForeignKeys(t *testing.T) {
	db := NewTestDB(t)

	var enabled int
	err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled)
	require.NoError(t, err)
	require.Equal(t, 1, enabled, "foreign keys not enabled")
}

// insertProject seeds a draft project with its creation history entry
func insertProject(t *testing.T, db *DB, id, tenantID, clientID string) {
	t.Helper()
	repo := NewProjectRepository(db)
	now := time.Now()
	proj := &workflow.Project{
		ID:        id,
		TenantID:  tenantID,
		Title:     "Test Project",
		ClientID:  clientID,
		Status:    workflow.StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	initial := &workflow.StatusHistoryEntry{
		ProjectID: id,
		ToStatus:  workflow.StatusDraft,
		CreatedAt: now,
	}
	require.NoError(t, repo.Create(context.Background(), tenantID, proj, initial))
}

// insertUser seeds a user with the given roles
func insertUser(t *testing.T, db *DB, id, tenantID, handle string, roles ...identity.Role) {
	t.Helper()
	repo := NewUserRepository(db)
	require.NoError(t, repo.Create(context.Background(), tenantID, &identity.User{
		ID:        id,
		TenantID:  tenantID,
		Handle:    handle,
		Roles:     roles,
		CreatedAt: time.Now(),
	}))
}

// insertTaskTree seeds a sequence, shot, and task under the given project
func insertTaskTree(t *testing.T, db *DB, tenantID, projectID, seqID, shotID, taskID string) {
	t.Helper()
	repo := NewTaskRepository(db)
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, repo.CreateSequence(ctx, tenantID, &sharing.Sequence{
		ID: seqID, ProjectID: projectID, Code: "SEQ010", CreatedAt: now,
	}))
	require.NoError(t, repo.CreateShot(ctx, tenantID, &sharing.Shot{
		ID: shotID, SequenceID: seqID, Code: "SH0010", CreatedAt: now,
	}))
	require.NoError(t, repo.CreateTask(ctx, tenantID, &sharing.Task{
		ID: taskID, ShotID: shotID, Name: "comp", CreatedAt: now,
	}))
}
