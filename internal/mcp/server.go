package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/renderforge/shotflow/internal/domain/audit"
	"github.com/renderforge/shotflow/internal/domain/identity"
	"github.com/renderforge/shotflow/internal/domain/sharing"
	"github.com/renderforge/shotflow/internal/domain/workflow"
)

// WorkflowService defines project lifecycle operations needed by MCP.
type WorkflowService interface {
	Create(ctx context.Context, tenantID string, req workflow.CreateRequest) (*workflow.Project, error)
	Get(ctx context.Context, tenantID, id string) (*workflow.Project, error)
	List(ctx context.Context, tenantID string) ([]workflow.ProjectSummary, error)
	ChangeStatus(ctx context.Context, tenantID string, req workflow.ChangeStatusRequest) (*workflow.Project, error)
	ListHistory(ctx context.Context, tenantID, projectID string) ([]workflow.StatusHistoryEntry, error)
	AvailableTransitionsFor(ctx context.Context, tenantID, projectID, actorID string) ([]workflow.Transition, error)
}

// SharingService defines task-sharing operations needed by MCP.
type SharingService interface {
	ResolveArtistByHandle(ctx context.Context, tenantID, handle string) (*identity.User, error)
	ShareTask(ctx context.Context, tenantID string, req sharing.ShareRequest) (*sharing.SharedTaskGrant, error)
	ResolveGrant(ctx context.Context, tenantID string, req sharing.ResolveRequest) (*sharing.SharedTaskGrant, error)
	VisibleShotsForArtist(ctx context.Context, tenantID, artistID, sequenceID string) ([]sharing.Shot, error)
	VisibleTasksForArtist(ctx context.Context, tenantID, artistID, shotID string) ([]sharing.Task, error)
}

// AuditService defines audit log operations needed by MCP.
type AuditService interface {
	Recent(ctx context.Context, tenantID string, opts audit.ListOptions) ([]audit.Entry, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Workflow WorkflowService
	Sharing  SharingService
	Audit    AuditService
}

// Config contains server configuration.
type Config struct {
	Services      Services
	Resolver      KeyResolver
	AuthEnabled   bool
	TransportMode string // "stdio" or "http"
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "shotflow",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	// Stdio mode runs locally; auth only applies over HTTP.
	if cfg.TransportMode == "stdio" || !cfg.AuthEnabled {
		server.AddReceivingMiddleware(noAuthMiddleware(Principal{TenantID: "default", UserID: "default"}))
	} else {
		server.AddReceivingMiddleware(authMiddleware(cfg.Resolver))
	}
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services)

	return server
}
