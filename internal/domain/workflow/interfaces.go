package workflow

import (
	"context"

	"github.com/renderforge/shotflow/internal/domain/audit"
	"github.com/renderforge/shotflow/internal/domain/identity"
)

// ProjectRepository provides persistence for projects and their history.
type ProjectRepository interface {
	// Create inserts the project together with its creation history entry
	// as a single transaction.
	Create(ctx context.Context, tenantID string, proj *Project, initial *StatusHistoryEntry) error
	Get(ctx context.Context, tenantID, id string) (*Project, error)
	List(ctx context.Context, tenantID string) ([]ProjectSummary, error)
	// Transition updates the project status and appends the history entry
	// atomically, conditioned on the persisted status still being expected.
	// It returns repository.ErrConflict when the precondition fails.
	Transition(ctx context.Context, tenantID string, proj *Project, expected Status, entry *StatusHistoryEntry) error
}

// HistoryRepository reads the append-only status history.
type HistoryRepository interface {
	ListByProject(ctx context.Context, tenantID, projectID string) ([]StatusHistoryEntry, error)
}

// UserDirectory resolves acting users to their roles.
type UserDirectory interface {
	FindByID(ctx context.Context, tenantID, id string) (*identity.User, error)
}

// AuditRepository appends audit entries for successful transitions.
type AuditRepository interface {
	Log(ctx context.Context, tenantID string, entry *audit.Entry) error
}
