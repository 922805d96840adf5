package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// Bootstrap creates the schema if it doesn't exist yet.
func (db *DB) Bootstrap() error {
	schema := `
-- Projects table
CREATE TABLE IF NOT EXISTS projects (
    id TEXT PRIMARY KEY,
    tenant_id TEXT NOT NULL,
    title TEXT NOT NULL,
    description TEXT,
    client_id TEXT NOT NULL,
    assigned_to TEXT,
    status TEXT NOT NULL CHECK(status IN ('draft', 'open', 'in_progress', 'review', 'completed', 'cancelled')),
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_tenant_projects ON projects(tenant_id);
CREATE INDEX IF NOT EXISTS idx_client_projects ON projects(client_id);

-- Append-only status history
CREATE TABLE IF NOT EXISTS status_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    tenant_id TEXT NOT NULL,
    project_id TEXT NOT NULL,
    from_status TEXT,
    to_status TEXT NOT NULL,
    changed_by TEXT,
    reason TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (project_id) REFERENCES projects(id)
);
CREATE INDEX IF NOT EXISTS idx_project_history ON status_history(project_id);
CREATE INDEX IF NOT EXISTS idx_history_created ON status_history(created_at);

-- Users and roles
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    tenant_id TEXT NOT NULL,
    handle TEXT NOT NULL,
    display_name TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (tenant_id, handle)
);
CREATE INDEX IF NOT EXISTS idx_tenant_users ON users(tenant_id);

CREATE TABLE IF NOT EXISTS user_roles (
    user_id TEXT NOT NULL,
    role TEXT NOT NULL CHECK(role IN ('artist', 'studio', 'producer', 'admin')),
    PRIMARY KEY (user_id, role),
    FOREIGN KEY (user_id) REFERENCES users(id)
);

-- Sequence / shot / task structure
CREATE TABLE IF NOT EXISTS sequences (
    id TEXT PRIMARY KEY,
    tenant_id TEXT NOT NULL,
    project_id TEXT NOT NULL,
    code TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (project_id) REFERENCES projects(id)
);
CREATE INDEX IF NOT EXISTS idx_project_sequences ON sequences(project_id);

CREATE TABLE IF NOT EXISTS shots (
    id TEXT PRIMARY KEY,
    tenant_id TEXT NOT NULL,
    sequence_id TEXT NOT NULL,
    code TEXT NOT NULL,
    status TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (sequence_id) REFERENCES sequences(id)
);
CREATE INDEX IF NOT EXISTS idx_sequence_shots ON shots(sequence_id);

CREATE TABLE IF NOT EXISTS tasks (
    id TEXT PRIMARY KEY,
    tenant_id TEXT NOT NULL,
    shot_id TEXT NOT NULL,
    name TEXT NOT NULL,
    status TEXT,
    priority TEXT,
    assigned_to TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (shot_id) REFERENCES shots(id)
);
CREATE INDEX IF NOT EXISTS idx_shot_tasks ON tasks(shot_id);

-- Shared-task grants
CREATE TABLE IF NOT EXISTS task_grants (
    id TEXT PRIMARY KEY,
    tenant_id TEXT NOT NULL,
    task_id TEXT NOT NULL,
    artist_id TEXT NOT NULL,
    access_level TEXT NOT NULL CHECK(access_level IN ('view', 'comment', 'edit')),
    status TEXT NOT NULL CHECK(status IN ('pending', 'approved', 'rejected', 'revoked')),
    notes TEXT,
    granted_by TEXT NOT NULL,
    shared_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    approved_at TIMESTAMP,
    FOREIGN KEY (task_id) REFERENCES tasks(id),
    FOREIGN KEY (artist_id) REFERENCES users(id)
);
CREATE INDEX IF NOT EXISTS idx_artist_grants ON task_grants(artist_id);
CREATE INDEX IF NOT EXISTS idx_task_grants ON task_grants(task_id);
-- At most one active grant per (task, artist) pair.
CREATE UNIQUE INDEX IF NOT EXISTS idx_active_grant
    ON task_grants(task_id, artist_id)
    WHERE status IN ('pending', 'approved');

-- Audit log
CREATE TABLE IF NOT EXISTS audit_log (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    tenant_id TEXT NOT NULL,
    project_id TEXT,
    subject TEXT NOT NULL,
    actor_id TEXT,
    event_type TEXT NOT NULL,
    summary TEXT NOT NULL,
    details TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_tenant_audit ON audit_log(tenant_id);
CREATE INDEX IF NOT EXISTS idx_project_audit ON audit_log(project_id);
CREATE INDEX IF NOT EXISTS idx_audit_created ON audit_log(created_at);

-- API keys for authentication
CREATE TABLE IF NOT EXISTS api_keys (
    key_hash TEXT PRIMARY KEY,
    tenant_id TEXT NOT NULL,
    user_id TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    last_used TIMESTAMP,
    description TEXT
);
CREATE INDEX IF NOT EXISTS idx_tenant_keys ON api_keys(tenant_id);
`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to bootstrap schema: %w", err)
	}

	return nil
}
