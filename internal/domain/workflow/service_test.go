package workflow_test

import (
	"context"
	"testing"

	"github.com/renderforge/shotflow/internal/domain/identity"
	"github.com/renderforge/shotflow/internal/domain/workflow"
	"github.com/renderforge/shotflow/internal/repository"
	"github.com/renderforge/shotflow/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestWorkflowService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant1"

	projectsRepo := &mocks.ProjectRepository{}
	auditsRepo := &mocks.AuditRepository{}
	directory := &mocks.Directory{}

	projectsRepo.On("Create", ctx, tenantID, mock.Anything, mock.Anything).Return(nil)
	auditsRepo.On("Log", ctx, tenantID, mock.Anything).Return(nil)

	svc := workflow.NewService(projectsRepo, nil, directory, auditsRepo, nil, nil)
	proj, err := svc.Create(ctx, tenantID, workflow.CreateRequest{
		Title:    "Spot 30s",
		ClientID: "client1",
	})
	require.NoError(t, err)
	require.Equal(t, workflow.StatusDraft, proj.Status)
	require.Equal(t, "client1", proj.ClientID)

	// The creation history entry is the synthetic null -> draft record.
	initial := projectsRepo.Calls[0].Arguments.Get(3).(*workflow.StatusHistoryEntry)
	require.Nil(t, initial.FromStatus)
	require.Equal(t, workflow.StatusDraft, initial.ToStatus)
	require.Nil(t, initial.ChangedBy)
}

func TestWorkflowService_Create_InvalidInput(t *testing.T) {
	ctx := context.Background()
	svc := workflow.NewService(&mocks.ProjectRepository{}, nil, &mocks.Directory{}, nil, nil, nil)

	_, err := svc.Create(ctx, "tenant1", workflow.CreateRequest{Title: "", ClientID: "client1"})
	require.ErrorIs(t, err, workflow.ErrInvalidInput)

	_, err = svc.Create(ctx, "tenant1", workflow.CreateRequest{Title: "Spot", ClientID: ""})
	require.ErrorIs(t, err, workflow.ErrInvalidInput)
}

func TestWorkflowService_ChangeStatus(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant1"

	projectsRepo := &mocks.ProjectRepository{}
	auditsRepo := &mocks.AuditRepository{}
	directory := &mocks.Directory{}

	projectsRepo.On("Get", ctx, tenantID, "p1").Return(&workflow.Project{
		ID:       "p1",
		ClientID: "client1",
		Status:   workflow.StatusDraft,
	}, nil)
	directory.On("FindByID", ctx, tenantID, "producer1").Return(&identity.User{
		ID:    "producer1",
		Roles: []identity.Role{identity.RoleProducer},
	}, nil)
	projectsRepo.On("Transition", ctx, tenantID, mock.Anything, workflow.StatusDraft, mock.Anything).Return(nil)
	auditsRepo.On("Log", ctx, tenantID, mock.Anything).Return(nil)

	svc := workflow.NewService(projectsRepo, nil, directory, auditsRepo, nil, nil)
	updated, err := svc.ChangeStatus(ctx, tenantID, workflow.ChangeStatusRequest{
		ProjectID: "p1",
		To:        workflow.StatusOpen,
		ActorID:   "producer1",
		Reason:    "kickoff",
	})
	require.NoError(t, err)
	require.Equal(t, workflow.StatusOpen, updated.Status)

	entry := projectsRepo.Calls[1].Arguments.Get(4).(*workflow.StatusHistoryEntry)
	require.Equal(t, workflow.StatusDraft, *entry.FromStatus)
	require.Equal(t, workflow.StatusOpen, entry.ToStatus)
	require.Equal(t, "producer1", *entry.ChangedBy)
	require.Equal(t, "kickoff", entry.Reason)
}

func TestWorkflowService_ChangeStatus_Denied(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant1"

	projectsRepo := &mocks.ProjectRepository{}
	directory := &mocks.Directory{}

	projectsRepo.On("Get", ctx, tenantID, "p1").Return(&workflow.Project{
		ID:       "p1",
		ClientID: "client1",
		Status:   workflow.StatusOpen,
	}, nil)
	directory.On("FindByID", ctx, tenantID, "artist1").Return(&identity.User{
		ID:    "artist1",
		Roles: []identity.Role{identity.RoleArtist},
	}, nil)

	svc := workflow.NewService(projectsRepo, nil, directory, nil, nil, nil)
	_, err := svc.ChangeStatus(ctx, tenantID, workflow.ChangeStatusRequest{
		ProjectID: "p1",
		To:        workflow.StatusCompleted,
		ActorID:   "artist1",
	})
	require.ErrorIs(t, err, workflow.ErrTransitionDenied)

	// Denied transitions never reach the repository write.
	projectsRepo.AssertNotCalled(t, "Transition", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWorkflowService_ChangeStatus_ConcurrentModification(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant1"

	projectsRepo := &mocks.ProjectRepository{}
	directory := &mocks.Directory{}

	projectsRepo.On("Get", ctx, tenantID, "p1").Return(&workflow.Project{
		ID:       "p1",
		ClientID: "client1",
		Status:   workflow.StatusOpen,
	}, nil)
	directory.On("FindByID", ctx, tenantID, "studio1").Return(&identity.User{
		ID:    "studio1",
		Roles: []identity.Role{identity.RoleStudio},
	}, nil)
	projectsRepo.On("Transition", ctx, tenantID, mock.Anything, workflow.StatusOpen, mock.Anything).
		Return(repository.ErrConflict)

	svc := workflow.NewService(projectsRepo, nil, directory, nil, nil, nil)
	_, err := svc.ChangeStatus(ctx, tenantID, workflow.ChangeStatusRequest{
		ProjectID: "p1",
		To:        workflow.StatusInProgress,
		ActorID:   "studio1",
	})
	require.ErrorIs(t, err, workflow.ErrConcurrentModification)
}

func TestWorkflowService_ChangeStatus_UnknownActor(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant1"

	projectsRepo := &mocks.ProjectRepository{}
	directory := &mocks.Directory{}

	projectsRepo.On("Get", ctx, tenantID, "p1").Return(&workflow.Project{
		ID:       "p1",
		ClientID: "client1",
		Status:   workflow.StatusOpen,
	}, nil)
	directory.On("FindByID", ctx, tenantID, "ghost").Return(nil, identity.ErrUserNotFound)

	svc := workflow.NewService(projectsRepo, nil, directory, nil, nil, nil)
	_, err := svc.ChangeStatus(ctx, tenantID, workflow.ChangeStatusRequest{
		ProjectID: "p1",
		To:        workflow.StatusCancelled,
		ActorID:   "ghost",
	})
	require.ErrorIs(t, err, workflow.ErrTransitionDenied)
}

func TestWorkflowService_ChangeStatus_OwnerWithoutRoles(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant1"

	projectsRepo := &mocks.ProjectRepository{}
	auditsRepo := &mocks.AuditRepository{}
	directory := &mocks.Directory{}

	projectsRepo.On("Get", ctx, tenantID, "p1").Return(&workflow.Project{
		ID:       "p1",
		ClientID: "client1",
		Status:   workflow.StatusOpen,
	}, nil)
	// The owner's account has no role that would admit the transition.
	directory.On("FindByID", ctx, tenantID, "client1").Return(&identity.User{
		ID:    "client1",
		Roles: nil,
	}, nil)
	projectsRepo.On("Transition", ctx, tenantID, mock.Anything, workflow.StatusOpen, mock.Anything).Return(nil)
	auditsRepo.On("Log", ctx, tenantID, mock.Anything).Return(nil)

	svc := workflow.NewService(projectsRepo, nil, directory, auditsRepo, nil, nil)
	updated, err := svc.ChangeStatus(ctx, tenantID, workflow.ChangeStatusRequest{
		ProjectID: "p1",
		To:        workflow.StatusCancelled,
		ActorID:   "client1",
	})
	require.NoError(t, err)
	require.Equal(t, workflow.StatusCancelled, updated.Status)
}

func TestWorkflowService_ChangeStatus_UnknownStatus(t *testing.T) {
	ctx := context.Background()
	svc := workflow.NewService(&mocks.ProjectRepository{}, nil, &mocks.Directory{}, nil, nil, nil)
	_, err := svc.ChangeStatus(ctx, "tenant1", workflow.ChangeStatusRequest{
		ProjectID: "p1",
		To:        "archived",
		ActorID:   "u1",
	})
	require.ErrorIs(t, err, workflow.ErrUnknownStatus)
}

func TestWorkflowService_ListHistory(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant1"

	projectsRepo := &mocks.ProjectRepository{}
	historyRepo := &mocks.HistoryRepository{}

	projectsRepo.On("Get", ctx, tenantID, "p1").Return(&workflow.Project{ID: "p1", Status: workflow.StatusOpen}, nil)
	from := workflow.StatusDraft
	historyRepo.On("ListByProject", ctx, tenantID, "p1").Return([]workflow.StatusHistoryEntry{
		{ProjectID: "p1", FromStatus: &from, ToStatus: workflow.StatusOpen},
		{ProjectID: "p1", ToStatus: workflow.StatusDraft},
	}, nil)

	svc := workflow.NewService(projectsRepo, historyRepo, &mocks.Directory{}, nil, nil, nil)
	entries, err := svc.ListHistory(ctx, tenantID, "p1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, workflow.StatusOpen, entries[0].ToStatus)
}

func TestWorkflowService_AvailableTransitionsFor(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant1"

	projectsRepo := &mocks.ProjectRepository{}
	directory := &mocks.Directory{}

	projectsRepo.On("Get", ctx, tenantID, "p1").Return(&workflow.Project{
		ID:       "p1",
		ClientID: "client1",
		Status:   workflow.StatusOpen,
	}, nil)
	directory.On("FindByID", ctx, tenantID, "artist1").Return(&identity.User{
		ID:    "artist1",
		Roles: []identity.Role{identity.RoleArtist},
	}, nil)

	svc := workflow.NewService(projectsRepo, nil, directory, nil, nil, nil)

	// The owner sees every catalog-admitted transition.
	transitions, err := svc.AvailableTransitionsFor(ctx, tenantID, "p1", "client1")
	require.NoError(t, err)
	require.Len(t, transitions, 2)

	// An artist has no admitted transition out of open.
	transitions, err = svc.AvailableTransitionsFor(ctx, tenantID, "p1", "artist1")
	require.NoError(t, err)
	require.Empty(t, transitions)
}
