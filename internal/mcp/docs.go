package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `shotflow manages VFX production projects through a status workflow plus a task-sharing approval flow.

Core concepts:
- Project: a client engagement moving through draft → open → in_progress → review → completed (or cancelled). Every status change is recorded in an append-only history.
- Transition catalog: which moves are legal, and which roles may make them. The project owner (client) may make any catalog move regardless of role.
- Task grant: permission for an outside artist to see one task. Grants start pending and must be approved before they confer visibility.
- Visibility: an artist sees exactly the shots and tasks covered by their approved grants. Pending or rejected grants confer nothing.

Rules of engagement:
1) Orient: list_projects, then get_project for detail.
2) Before moving a project, call available_transitions — it returns only the moves the acting user may actually make.
3) Move with change_project_status. TRANSITION_DENIED means the move is illegal or the actor lacks the role; CONCURRENT_MODIFICATION means someone moved the project first — re-fetch and retry once.
4) Share work: resolve_artist turns a contact handle into an artist ID, share_task creates a pending grant, resolve_grant approves or rejects it. ALREADY_SHARED means an active grant exists; NOT_PENDING means the grant was already decided.
5) Check what an artist can see with visible_shots / visible_tasks.
6) Audit anything with project_history (status trail) and recent_audit (all events).

Docs:
- shotflow://docs/workflow (status catalog and role gates)
- shotflow://docs/sharing (grant lifecycle and visibility)
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "shotflow://docs/workflow",
		Name:        "docs_workflow",
		Title:       "Project status workflow",
		Description: "The status catalog, legal transitions, and which roles may make them.",
		Content: `# Project status workflow

Every project carries exactly one status. Status only changes through the
transition catalog; there is no free-form status write.

## Statuses

| Status      | Meaning                                   |
|-------------|-------------------------------------------|
| draft       | Being set up, not yet visible to the team  |
| open        | Accepted, waiting for work to start        |
| in_progress | Work underway                              |
| review      | Work submitted, awaiting client review     |
| completed   | Accepted and archived (terminal)           |
| cancelled   | Abandoned at any pre-terminal point (terminal) |

## Transitions

| From        | To          | Who                          |
|-------------|-------------|------------------------------|
| draft       | open        | studio, producer, admin      |
| draft       | cancelled   | studio, producer, admin      |
| open        | in_progress | studio, producer, admin      |
| open        | cancelled   | studio, producer, admin      |
| in_progress | review      | artist, studio, producer, admin |
| in_progress | cancelled   | studio, producer, admin      |
| review      | completed   | studio, producer, admin      |
| review      | in_progress | studio, producer, admin      |
| review      | cancelled   | studio, producer, admin      |

The project owner (the client who created it) may make any move in the table
above regardless of their roles. Nobody, owner included, may make a move that
is not in the table. Terminal statuses have no outgoing moves.

## History

Every applied transition appends one history entry recording from-status,
to-status, the acting user, and an optional reason. Creation itself appends
the first entry (from null to draft). Denied or conflicting attempts append
nothing. project_history returns entries newest first.

## Concurrency

change_project_status is conditional on the status the server read. If two
callers race, one wins and the other gets CONCURRENT_MODIFICATION: re-fetch
the project and retry once if the move still makes sense.
`,
	},
	{
		URI:         "shotflow://docs/sharing",
		Name:        "docs_sharing",
		Title:       "Task sharing and visibility",
		Description: "How task grants work: pending → approved/rejected, and what artists can see.",
		Content: `# Task sharing and visibility

Outside artists see nothing by default. Visibility is granted per task
through an approval flow.

## Grant lifecycle

1. share_task creates a grant in **pending**. At most one active
   (pending or approved) grant may exist per (task, artist); a second
   share attempt returns ALREADY_SHARED.
2. resolve_grant moves a pending grant to **approved** or **rejected**.
   Resolving a grant that is no longer pending returns NOT_PENDING —
   the first decision stands.
3. A rejected grant frees the pair: the task may be shared with the same
   artist again.

## Resolving artists

share_task takes an artist ID. When you only have a contact handle (an
email or username), call resolve_artist first. It succeeds only when the
handle belongs to a user holding the artist role; anything else is
ARTIST_NOT_FOUND. Never guess an ID from a handle yourself.

## Visibility

visible_shots lists the shots in a sequence that contain at least one
task with an **approved** grant for the artist. visible_tasks lists the
approved-granted tasks within one shot. Pending and rejected grants
confer no visibility. The projection is computed from current grants on
every call, so an approval shows up immediately.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
