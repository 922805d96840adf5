package sharing

import (
	"context"

	"github.com/renderforge/shotflow/internal/domain/audit"
	"github.com/renderforge/shotflow/internal/domain/identity"
)

// GrantRepository provides persistence for shared-task grants.
type GrantRepository interface {
	// Create inserts the grant. The store enforces the at-most-one-active
	// rule and returns repository.ErrConflict when an active grant already
	// exists for the (task, artist) pair.
	Create(ctx context.Context, tenantID string, grant *SharedTaskGrant) error
	Get(ctx context.Context, tenantID, id string) (*SharedTaskGrant, error)
	// GetActive returns the pending or approved grant for the pair, if any.
	GetActive(ctx context.Context, tenantID, taskID, artistID string) (*SharedTaskGrant, error)
	// Resolve writes the decision, conditioned on the grant still being
	// pending. It returns repository.ErrConflict when the grant was resolved
	// in the meantime.
	Resolve(ctx context.Context, tenantID string, grant *SharedTaskGrant) error
	ListForArtist(ctx context.Context, tenantID, artistID string) ([]SharedTaskGrant, error)
}

// TaskRepository reads tasks and the shot/sequence structure above them.
type TaskRepository interface {
	GetTask(ctx context.Context, tenantID, id string) (*Task, error)
	// VisibleShots returns the shots in the sequence that have at least one
	// task with an approved grant for the artist.
	VisibleShots(ctx context.Context, tenantID, artistID, sequenceID string) ([]Shot, error)
	// VisibleTasks returns the tasks under the shot with an approved grant
	// for the artist.
	VisibleTasks(ctx context.Context, tenantID, artistID, shotID string) ([]Task, error)
}

// UserDirectory resolves users by ID or contact handle.
type UserDirectory interface {
	FindByID(ctx context.Context, tenantID, id string) (*identity.User, error)
	FindByHandle(ctx context.Context, tenantID, handle string) (*identity.User, error)
}

// AuditRepository appends audit entries for grant lifecycle events.
type AuditRepository interface {
	Log(ctx context.Context, tenantID string, entry *audit.Entry) error
}
