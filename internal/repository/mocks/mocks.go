package mocks

import (
	"context"

	"github.com/renderforge/shotflow/internal/domain/audit"
	"github.com/renderforge/shotflow/internal/domain/identity"
	"github.com/renderforge/shotflow/internal/domain/sharing"
	"github.com/renderforge/shotflow/internal/domain/workflow"
	"github.com/renderforge/shotflow/internal/notify"
	"github.com/stretchr/testify/mock"
)

var (
	_ workflow.ProjectRepository = (*ProjectRepository)(nil)
	_ workflow.HistoryRepository = (*HistoryRepository)(nil)
	_ workflow.AuditRepository   = (*AuditRepository)(nil)
	_ sharing.GrantRepository    = (*GrantRepository)(nil)
	_ sharing.TaskRepository     = (*TaskRepository)(nil)
	_ sharing.AuditRepository    = (*AuditRepository)(nil)
	_ identity.Repository        = (*UserRepository)(nil)
	_ audit.Repository           = (*AuditRepository)(nil)
	_ workflow.UserDirectory     = (*Directory)(nil)
	_ sharing.UserDirectory      = (*Directory)(nil)
	_ notify.Notifier            = (*Notifier)(nil)
)

// ProjectRepository is a mock for workflow.ProjectRepository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, tenantID string, proj *workflow.Project, initial *workflow.StatusHistoryEntry) error {
	args := m.Called(ctx, tenantID, proj, initial)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, tenantID, id string) (*workflow.Project, error) {
	args := m.Called(ctx, tenantID, id)
	if proj, ok := args.Get(0).(*workflow.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context, tenantID string) ([]workflow.ProjectSummary, error) {
	args := m.Called(ctx, tenantID)
	if list, ok := args.Get(0).([]workflow.ProjectSummary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Transition(ctx context.Context, tenantID string, proj *workflow.Project, expected workflow.Status, entry *workflow.StatusHistoryEntry) error {
	args := m.Called(ctx, tenantID, proj, expected, entry)
	return args.Error(0)
}

// HistoryRepository is a mock for workflow.HistoryRepository.
type HistoryRepository struct {
	mock.Mock
}

func (m *HistoryRepository) ListByProject(ctx context.Context, tenantID, projectID string) ([]workflow.StatusHistoryEntry, error) {
	args := m.Called(ctx, tenantID, projectID)
	if list, ok := args.Get(0).([]workflow.StatusHistoryEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// GrantRepository is a mock for sharing.GrantRepository.
type GrantRepository struct {
	mock.Mock
}

func (m *GrantRepository) Create(ctx context.Context, tenantID string, grant *sharing.SharedTaskGrant) error {
	args := m.Called(ctx, tenantID, grant)
	return args.Error(0)
}

func (m *GrantRepository) Get(ctx context.Context, tenantID, id string) (*sharing.SharedTaskGrant, error) {
	args := m.Called(ctx, tenantID, id)
	if grant, ok := args.Get(0).(*sharing.SharedTaskGrant); ok {
		return grant, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *GrantRepository) GetActive(ctx context.Context, tenantID, taskID, artistID string) (*sharing.SharedTaskGrant, error) {
	args := m.Called(ctx, tenantID, taskID, artistID)
	if grant, ok := args.Get(0).(*sharing.SharedTaskGrant); ok {
		return grant, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *GrantRepository) Resolve(ctx context.Context, tenantID string, grant *sharing.SharedTaskGrant) error {
	args := m.Called(ctx, tenantID, grant)
	return args.Error(0)
}

func (m *GrantRepository) ListForArtist(ctx context.Context, tenantID, artistID string) ([]sharing.SharedTaskGrant, error) {
	args := m.Called(ctx, tenantID, artistID)
	if list, ok := args.Get(0).([]sharing.SharedTaskGrant); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// TaskRepository is a mock for sharing.TaskRepository.
type TaskRepository struct {
	mock.Mock
}

func (m *TaskRepository) GetTask(ctx context.Context, tenantID, id string) (*sharing.Task, error) {
	args := m.Called(ctx, tenantID, id)
	if task, ok := args.Get(0).(*sharing.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) VisibleShots(ctx context.Context, tenantID, artistID, sequenceID string) ([]sharing.Shot, error) {
	args := m.Called(ctx, tenantID, artistID, sequenceID)
	if list, ok := args.Get(0).([]sharing.Shot); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) VisibleTasks(ctx context.Context, tenantID, artistID, shotID string) ([]sharing.Task, error) {
	args := m.Called(ctx, tenantID, artistID, shotID)
	if list, ok := args.Get(0).([]sharing.Task); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// UserRepository is a mock for identity.Repository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, tenantID string, user *identity.User) error {
	args := m.Called(ctx, tenantID, user)
	return args.Error(0)
}

func (m *UserRepository) Get(ctx context.Context, tenantID, id string) (*identity.User, error) {
	args := m.Called(ctx, tenantID, id)
	if user, ok := args.Get(0).(*identity.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) GetByHandle(ctx context.Context, tenantID, handle string) (*identity.User, error) {
	args := m.Called(ctx, tenantID, handle)
	if user, ok := args.Get(0).(*identity.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// AuditRepository is a mock for the audit repository interfaces.
type AuditRepository struct {
	mock.Mock
}

func (m *AuditRepository) Log(ctx context.Context, tenantID string, entry *audit.Entry) error {
	args := m.Called(ctx, tenantID, entry)
	return args.Error(0)
}

func (m *AuditRepository) List(ctx context.Context, tenantID string, opts audit.ListOptions) ([]audit.Entry, error) {
	args := m.Called(ctx, tenantID, opts)
	if list, ok := args.Get(0).([]audit.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// Directory is a mock for the domain UserDirectory interfaces.
type Directory struct {
	mock.Mock
}

func (m *Directory) FindByID(ctx context.Context, tenantID, id string) (*identity.User, error) {
	args := m.Called(ctx, tenantID, id)
	if user, ok := args.Get(0).(*identity.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Directory) FindByHandle(ctx context.Context, tenantID, handle string) (*identity.User, error) {
	args := m.Called(ctx, tenantID, handle)
	if user, ok := args.Get(0).(*identity.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// Notifier is a mock for notify.Notifier.
type Notifier struct {
	mock.Mock
}

func (m *Notifier) Notify(ctx context.Context, tenantID string, event notify.Event) {
	m.Called(ctx, tenantID, event)
}
