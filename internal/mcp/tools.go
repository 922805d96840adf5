package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/renderforge/shotflow/internal/domain/audit"
	"github.com/renderforge/shotflow/internal/domain/sharing"
	"github.com/renderforge/shotflow/internal/domain/workflow"
)

// Tool inputs and outputs. The SDK derives the JSON schema from these.

type createProjectInput struct {
	Title       string `json:"title" jsonschema:"Project title"`
	Description string `json:"description,omitempty" jsonschema:"Project description"`
	AssignedTo  string `json:"assigned_to,omitempty" jsonschema:"User ID of the assigned studio contact"`
}

type getProjectInput struct {
	ID string `json:"id" jsonschema:"Project ID"`
}

type listProjectsInput struct{}

type listProjectsOutput struct {
	Projects []workflow.ProjectSummary `json:"projects"`
}

type changeProjectStatusInput struct {
	ID     string `json:"id" jsonschema:"Project ID"`
	To     string `json:"to" jsonschema:"Target status (open, in_progress, review, completed, cancelled)"`
	Reason string `json:"reason,omitempty" jsonschema:"Reason for the change, recorded in history"`
}

type availableTransitionsInput struct {
	ID string `json:"id" jsonschema:"Project ID"`
}

type availableTransitionsOutput struct {
	Current     workflow.Status       `json:"current"`
	Transitions []workflow.Transition `json:"transitions"`
}

type projectHistoryInput struct {
	ID string `json:"id" jsonschema:"Project ID"`
}

type projectHistoryOutput struct {
	Entries []workflow.StatusHistoryEntry `json:"entries"`
}

type shareTaskInput struct {
	TaskID      string `json:"task_id" jsonschema:"Task ID to share"`
	ArtistID    string `json:"artist_id,omitempty" jsonschema:"Artist user ID (use resolve_artist when you only have a handle)"`
	Handle      string `json:"handle,omitempty" jsonschema:"Artist contact handle, resolved server-side when artist_id is omitted"`
	AccessLevel string `json:"access_level,omitempty" jsonschema:"Access ceiling: view, comment, or edit (default view)"`
	Notes       string `json:"notes,omitempty" jsonschema:"Note shown to the approver"`
}

type resolveGrantInput struct {
	GrantID  string `json:"grant_id" jsonschema:"Grant ID"`
	Decision string `json:"decision" jsonschema:"approve or reject"`
}

type resolveArtistInput struct {
	Handle string `json:"handle" jsonschema:"Contact handle (email or username) to resolve"`
}

type resolveArtistOutput struct {
	ArtistID    string `json:"artist_id"`
	Handle      string `json:"handle"`
	DisplayName string `json:"display_name,omitempty"`
}

type visibleShotsInput struct {
	ArtistID   string `json:"artist_id" jsonschema:"Artist user ID"`
	SequenceID string `json:"sequence_id" jsonschema:"Sequence to filter shots by"`
}

type visibleShotsOutput struct {
	Shots []sharing.Shot `json:"shots"`
}

type visibleTasksInput struct {
	ArtistID string `json:"artist_id" jsonschema:"Artist user ID"`
	ShotID   string `json:"shot_id" jsonschema:"Shot to filter tasks by"`
}

type visibleTasksOutput struct {
	Tasks []sharing.Task `json:"tasks"`
}

type recentAuditInput struct {
	ProjectID string `json:"project_id,omitempty" jsonschema:"Filter by project ID"`
	EventType string `json:"event_type,omitempty" jsonschema:"Filter by event type"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum number of entries"`
	Offset    int    `json:"offset,omitempty" jsonschema:"Offset for pagination"`
}

type recentAuditOutput struct {
	Entries []audit.Entry `json:"entries"`
}

func registerTools(server *sdkmcp.Server, svc Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Create a new project in draft status, owned by the acting user",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in createProjectInput) (*sdkmcp.CallToolResult, *workflow.Project, error) {
		var assigned *string
		if in.AssignedTo != "" {
			assigned = &in.AssignedTo
		}
		proj, err := svc.Workflow.Create(ctx, getTenantID(ctx), workflow.CreateRequest{
			Title:       in.Title,
			Description: in.Description,
			ClientID:    getActorID(ctx),
			AssignedTo:  assigned,
		})
		if err != nil {
			return nil, nil, wrapError(err)
		}
		return nil, proj, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get a project by ID, including its current status",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in getProjectInput) (*sdkmcp.CallToolResult, *workflow.Project, error) {
		proj, err := svc.Workflow.Get(ctx, getTenantID(ctx), in.ID)
		if err != nil {
			return nil, nil, wrapError(err)
		}
		return nil, proj, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List all projects for the current tenant",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ listProjectsInput) (*sdkmcp.CallToolResult, *listProjectsOutput, error) {
		projects, err := svc.Workflow.List(ctx, getTenantID(ctx))
		if err != nil {
			return nil, nil, wrapError(err)
		}
		return nil, &listProjectsOutput{Projects: projects}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "change_project_status",
		Description: "Move a project to a new status through the transition catalog, appending a history entry",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in changeProjectStatusInput) (*sdkmcp.CallToolResult, *workflow.Project, error) {
		proj, err := svc.Workflow.ChangeStatus(ctx, getTenantID(ctx), workflow.ChangeStatusRequest{
			ProjectID: in.ID,
			To:        workflow.Status(in.To),
			ActorID:   getActorID(ctx),
			Reason:    in.Reason,
		})
		if err != nil {
			return nil, nil, wrapError(err)
		}
		return nil, proj, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "available_transitions",
		Description: "List the status transitions the acting user may make on a project right now",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in availableTransitionsInput) (*sdkmcp.CallToolResult, *availableTransitionsOutput, error) {
		tenantID := getTenantID(ctx)
		proj, err := svc.Workflow.Get(ctx, tenantID, in.ID)
		if err != nil {
			return nil, nil, wrapError(err)
		}
		transitions, err := svc.Workflow.AvailableTransitionsFor(ctx, tenantID, in.ID, getActorID(ctx))
		if err != nil {
			return nil, nil, wrapError(err)
		}
		return nil, &availableTransitionsOutput{Current: proj.Status, Transitions: transitions}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "project_history",
		Description: "Get a project's status history, newest entry first",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in projectHistoryInput) (*sdkmcp.CallToolResult, *projectHistoryOutput, error) {
		entries, err := svc.Workflow.ListHistory(ctx, getTenantID(ctx), in.ID)
		if err != nil {
			return nil, nil, wrapError(err)
		}
		return nil, &projectHistoryOutput{Entries: entries}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "share_task",
		Description: "Share a task with an artist, creating a pending grant that must be approved",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in shareTaskInput) (*sdkmcp.CallToolResult, *sharing.SharedTaskGrant, error) {
		tenantID := getTenantID(ctx)
		artistID := in.ArtistID
		if artistID == "" && in.Handle != "" {
			artist, err := svc.Sharing.ResolveArtistByHandle(ctx, tenantID, in.Handle)
			if err != nil {
				return nil, nil, wrapError(err)
			}
			artistID = artist.ID
		}
		level := sharing.AccessLevel(in.AccessLevel)
		if in.AccessLevel == "" {
			level = sharing.AccessView
		}
		grant, err := svc.Sharing.ShareTask(ctx, tenantID, sharing.ShareRequest{
			TaskID:      in.TaskID,
			ArtistID:    artistID,
			AccessLevel: level,
			Notes:       in.Notes,
			GrantedBy:   getActorID(ctx),
		})
		if err != nil {
			return nil, nil, wrapError(err)
		}
		return nil, grant, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "resolve_grant",
		Description: "Approve or reject a pending task grant",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in resolveGrantInput) (*sdkmcp.CallToolResult, *sharing.SharedTaskGrant, error) {
		grant, err := svc.Sharing.ResolveGrant(ctx, getTenantID(ctx), sharing.ResolveRequest{
			GrantID:   in.GrantID,
			Decision:  sharing.Decision(in.Decision),
			DecidedBy: getActorID(ctx),
		})
		if err != nil {
			return nil, nil, wrapError(err)
		}
		return nil, grant, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "resolve_artist",
		Description: "Resolve a contact handle to an artist user ID; fails unless the handle belongs to an artist",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in resolveArtistInput) (*sdkmcp.CallToolResult, *resolveArtistOutput, error) {
		artist, err := svc.Sharing.ResolveArtistByHandle(ctx, getTenantID(ctx), in.Handle)
		if err != nil {
			return nil, nil, wrapError(err)
		}
		return nil, &resolveArtistOutput{
			ArtistID:    artist.ID,
			Handle:      artist.Handle,
			DisplayName: artist.DisplayName,
		}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "visible_shots",
		Description: "List the shots in a sequence visible to an artist through approved grants",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in visibleShotsInput) (*sdkmcp.CallToolResult, *visibleShotsOutput, error) {
		shots, err := svc.Sharing.VisibleShotsForArtist(ctx, getTenantID(ctx), in.ArtistID, in.SequenceID)
		if err != nil {
			return nil, nil, wrapError(err)
		}
		return nil, &visibleShotsOutput{Shots: shots}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "visible_tasks",
		Description: "List the tasks in a shot visible to an artist through approved grants",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in visibleTasksInput) (*sdkmcp.CallToolResult, *visibleTasksOutput, error) {
		tasks, err := svc.Sharing.VisibleTasksForArtist(ctx, getTenantID(ctx), in.ArtistID, in.ShotID)
		if err != nil {
			return nil, nil, wrapError(err)
		}
		return nil, &visibleTasksOutput{Tasks: tasks}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "recent_audit",
		Description: "Get recent audit log entries, optionally filtered by project or event type",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in recentAuditInput) (*sdkmcp.CallToolResult, *recentAuditOutput, error) {
		opts := audit.ListOptions{
			ProjectID: in.ProjectID,
			Limit:     in.Limit,
			Offset:    in.Offset,
		}
		if in.EventType != "" {
			et := audit.EventType(in.EventType)
			opts.EventType = &et
		}
		entries, err := svc.Audit.Recent(ctx, getTenantID(ctx), opts)
		if err != nil {
			return nil, nil, wrapError(err)
		}
		return nil, &recentAuditOutput{Entries: entries}, nil
	})
}
