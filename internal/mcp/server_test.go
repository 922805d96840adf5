package mcp

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/renderforge/shotflow/internal/domain/audit"
	"github.com/renderforge/shotflow/internal/domain/identity"
	"github.com/renderforge/shotflow/internal/domain/sharing"
	"github.com/renderforge/shotflow/internal/domain/workflow"
)

type workflowStub struct {
	createFn       func(context.Context, string, workflow.CreateRequest) (*workflow.Project, error)
	getFn          func(context.Context, string, string) (*workflow.Project, error)
	listFn         func(context.Context, string) ([]workflow.ProjectSummary, error)
	changeStatusFn func(context.Context, string, workflow.ChangeStatusRequest) (*workflow.Project, error)
	historyFn      func(context.Context, string, string) ([]workflow.StatusHistoryEntry, error)
	availableFn    func(context.Context, string, string, string) ([]workflow.Transition, error)
}

func (w workflowStub) Create(ctx context.Context, tenantID string, req workflow.CreateRequest) (*workflow.Project, error) {
	return w.createFn(ctx, tenantID, req)
}
func (w workflowStub) Get(ctx context.Context, tenantID, id string) (*workflow.Project, error) {
	return w.getFn(ctx, tenantID, id)
}
func (w workflowStub) List(ctx context.Context, tenantID string) ([]workflow.ProjectSummary, error) {
	return w.listFn(ctx, tenantID)
}
func (w workflowStub) ChangeStatus(ctx context.Context, tenantID string, req workflow.ChangeStatusRequest) (*workflow.Project, error) {
	return w.changeStatusFn(ctx, tenantID, req)
}
func (w workflowStub) ListHistory(ctx context.Context, tenantID, projectID string) ([]workflow.StatusHistoryEntry, error) {
	return w.historyFn(ctx, tenantID, projectID)
}
func (w workflowStub) AvailableTransitionsFor(ctx context.Context, tenantID, projectID, actorID string) ([]workflow.Transition, error) {
	return w.availableFn(ctx, tenantID, projectID, actorID)
}

type sharingStub struct {
	resolveArtistFn func(context.Context, string, string) (*identity.User, error)
	shareFn         func(context.Context, string, sharing.ShareRequest) (*sharing.SharedTaskGrant, error)
	resolveGrantFn  func(context.Context, string, sharing.ResolveRequest) (*sharing.SharedTaskGrant, error)
	shotsFn         func(context.Context, string, string, string) ([]sharing.Shot, error)
	tasksFn         func(context.Context, string, string, string) ([]sharing.Task, error)
}

func (s sharingStub) ResolveArtistByHandle(ctx context.Context, tenantID, handle string) (*identity.User, error) {
	return s.resolveArtistFn(ctx, tenantID, handle)
}
func (s sharingStub) ShareTask(ctx context.Context, tenantID string, req sharing.ShareRequest) (*sharing.SharedTaskGrant, error) {
	return s.shareFn(ctx, tenantID, req)
}
func (s sharingStub) ResolveGrant(ctx context.Context, tenantID string, req sharing.ResolveRequest) (*sharing.SharedTaskGrant, error) {
	return s.resolveGrantFn(ctx, tenantID, req)
}
func (s sharingStub) VisibleShotsForArtist(ctx context.Context, tenantID, artistID, sequenceID string) ([]sharing.Shot, error) {
	return s.shotsFn(ctx, tenantID, artistID, sequenceID)
}
func (s sharingStub) VisibleTasksForArtist(ctx context.Context, tenantID, artistID, shotID string) ([]sharing.Task, error) {
	return s.tasksFn(ctx, tenantID, artistID, shotID)
}

type auditStub struct {
	recentFn func(context.Context, string, audit.ListOptions) ([]audit.Entry, error)
}

func (a auditStub) Recent(ctx context.Context, tenantID string, opts audit.ListOptions) ([]audit.Entry, error) {
	return a.recentFn(ctx, tenantID, opts)
}

func newTestSession(t *testing.T, services Services) *sdkmcp.ClientSession {
	t.Helper()

	server := NewServer(Config{
		Services:      services,
		TransportMode: "stdio",
		Logger:        slog.New(slog.NewTextHandler(testWriter{t}, nil)),
	})

	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()

	ctx := context.Background()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { serverSession.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "0.0.0"}, nil)
	clientSession, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { clientSession.Close() })

	return clientSession
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

func TestServer_CreateProjectUsesPrincipal(t *testing.T) {
	var gotTenant string
	var gotReq workflow.CreateRequest

	session := newTestSession(t, Services{
		Workflow: workflowStub{
			createFn: func(_ context.Context, tenantID string, req workflow.CreateRequest) (*workflow.Project, error) {
				gotTenant = tenantID
				gotReq = req
				return &workflow.Project{ID: "p1", Title: req.Title, ClientID: req.ClientID, Status: workflow.StatusDraft}, nil
			},
		},
	})

	res, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      "create_project",
		Arguments: map[string]any{"title": "Spot 30s"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	// Stdio mode injects the default principal as tenant and actor.
	require.Equal(t, "default", gotTenant)
	require.Equal(t, "default", gotReq.ClientID)
	require.Equal(t, "Spot 30s", gotReq.Title)
}

func TestServer_ChangeStatusDenied(t *testing.T) {
	session := newTestSession(t, Services{
		Workflow: workflowStub{
			changeStatusFn: func(_ context.Context, _ string, _ workflow.ChangeStatusRequest) (*workflow.Project, error) {
				return nil, workflow.ErrTransitionDenied
			},
		},
	})

	res, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      "change_project_status",
		Arguments: map[string]any{"id": "p1", "to": "completed"},
	})
	require.NoError(t, err)
	require.True(t, res.IsError)

	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	require.Contains(t, text.Text, "TRANSITION_DENIED")
}

func TestServer_ChangeStatusConflict(t *testing.T) {
	session := newTestSession(t, Services{
		Workflow: workflowStub{
			changeStatusFn: func(_ context.Context, _ string, _ workflow.ChangeStatusRequest) (*workflow.Project, error) {
				return nil, workflow.ErrConcurrentModification
			},
		},
	})

	res, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      "change_project_status",
		Arguments: map[string]any{"id": "p1", "to": "open"},
	})
	require.NoError(t, err)
	require.True(t, res.IsError)

	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	require.Contains(t, text.Text, "CONCURRENT_MODIFICATION")
}

func TestServer_ShareTaskResolvesHandle(t *testing.T) {
	var gotHandle string
	var gotShare sharing.ShareRequest

	session := newTestSession(t, Services{
		Sharing: sharingStub{
			resolveArtistFn: func(_ context.Context, _ string, handle string) (*identity.User, error) {
				gotHandle = handle
				return &identity.User{ID: "artist-7", Handle: handle, Roles: []identity.Role{identity.RoleArtist}}, nil
			},
			shareFn: func(_ context.Context, _ string, req sharing.ShareRequest) (*sharing.SharedTaskGrant, error) {
				gotShare = req
				return &sharing.SharedTaskGrant{
					ID:          "g1",
					TaskID:      req.TaskID,
					ArtistID:    req.ArtistID,
					AccessLevel: req.AccessLevel,
					Status:      sharing.GrantPending,
					SharedAt:    time.Now(),
				}, nil
			},
		},
	})

	res, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      "share_task",
		Arguments: map[string]any{"task_id": "t1", "handle": "maya@vfx.example"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	require.Equal(t, "maya@vfx.example", gotHandle)
	require.Equal(t, "artist-7", gotShare.ArtistID)
	require.Equal(t, sharing.AccessView, gotShare.AccessLevel)
}

func TestServer_ResolveArtistRejectsNonArtist(t *testing.T) {
	session := newTestSession(t, Services{
		Sharing: sharingStub{
			resolveArtistFn: func(_ context.Context, _ string, _ string) (*identity.User, error) {
				return nil, sharing.ErrArtistNotFound
			},
		},
	})

	res, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      "resolve_artist",
		Arguments: map[string]any{"handle": "producer@vfx.example"},
	})
	require.NoError(t, err)
	require.True(t, res.IsError)

	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	require.Contains(t, text.Text, "ARTIST_NOT_FOUND")
}

func TestServer_RecentAuditFilters(t *testing.T) {
	var gotOpts audit.ListOptions

	session := newTestSession(t, Services{
		Audit: auditStub{
			recentFn: func(_ context.Context, _ string, opts audit.ListOptions) ([]audit.Entry, error) {
				gotOpts = opts
				return []audit.Entry{{ID: 1, Subject: "p1", EventType: audit.TypeStatusChanged, Summary: "draft -> open"}}, nil
			},
		},
	})

	res, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      "recent_audit",
		Arguments: map[string]any{"project_id": "p1", "event_type": "status_changed", "limit": 5},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	require.Equal(t, "p1", gotOpts.ProjectID)
	require.NotNil(t, gotOpts.EventType)
	require.Equal(t, audit.TypeStatusChanged, *gotOpts.EventType)
	require.Equal(t, 5, gotOpts.Limit)
}

func TestServer_ListsAllTools(t *testing.T) {
	session := newTestSession(t, Services{})

	res, err := session.ListTools(context.Background(), &sdkmcp.ListToolsParams{})
	require.NoError(t, err)

	names := make(map[string]bool, len(res.Tools))
	for _, tool := range res.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{
		"create_project", "get_project", "list_projects", "change_project_status",
		"available_transitions", "project_history", "share_task", "resolve_grant",
		"resolve_artist", "visible_shots", "visible_tasks", "recent_audit",
	} {
		require.True(t, names[want], "missing tool %s", want)
	}
}
