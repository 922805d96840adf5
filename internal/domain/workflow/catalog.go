package workflow

import "github.com/renderforge/shotflow/internal/domain/identity"

// Transition is one admissible status change, annotated with the roles
// allowed to execute it.
type Transition struct {
	From  Status          `json:"from"`
	To    Status          `json:"to"`
	Roles []identity.Role `json:"roles"`
}

// statusEntry holds catalog metadata for one status.
type statusEntry struct {
	color       string
	transitions []Transition
}

var managerRoles = []identity.Role{identity.RoleStudio, identity.RoleProducer, identity.RoleAdmin}

var allRoles = []identity.Role{identity.RoleArtist, identity.RoleStudio, identity.RoleProducer, identity.RoleAdmin}

// catalog is the static transition table. completed and cancelled are
// terminal and have no outgoing transitions.
var catalog = map[Status]statusEntry{
	StatusDraft: {
		color: "#9CA3AF",
		transitions: []Transition{
			{From: StatusDraft, To: StatusOpen, Roles: managerRoles},
			{From: StatusDraft, To: StatusCancelled, Roles: managerRoles},
		},
	},
	StatusOpen: {
		color: "#3B82F6",
		transitions: []Transition{
			{From: StatusOpen, To: StatusInProgress, Roles: managerRoles},
			{From: StatusOpen, To: StatusCancelled, Roles: managerRoles},
		},
	},
	StatusInProgress: {
		color: "#F59E0B",
		transitions: []Transition{
			{From: StatusInProgress, To: StatusReview, Roles: allRoles},
			{From: StatusInProgress, To: StatusCancelled, Roles: managerRoles},
		},
	},
	StatusReview: {
		color: "#8B5CF6",
		transitions: []Transition{
			{From: StatusReview, To: StatusCompleted, Roles: managerRoles},
			{From: StatusReview, To: StatusInProgress, Roles: managerRoles},
			{From: StatusReview, To: StatusCancelled, Roles: managerRoles},
		},
	},
	StatusCompleted: {color: "#10B981"},
	StatusCancelled: {color: "#EF4444"},
}

// StatusColor returns the display color for a status, or an empty string
// for unknown statuses.
func StatusColor(s Status) string {
	return catalog[s].color
}

// findTransition returns the catalog transition for a (from, to) pair.
func findTransition(from, to Status) (Transition, bool) {
	for _, t := range catalog[from].transitions {
		if t.To == to {
			return t, true
		}
	}
	return Transition{}, false
}

// roleAllowed reports whether any of the given roles may execute the transition.
func roleAllowed(t Transition, roles []identity.Role) bool {
	for _, allowed := range t.Roles {
		for _, held := range roles {
			if held == allowed {
				return true
			}
		}
	}
	return false
}

// ValidateTransition decides whether the actor may move the project to the
// target status. It is pure: the verdict depends only on the catalog, the
// project's current status and owner, and the actor's identity and roles.
// A same-status request is a denial, never a silent no-op.
func ValidateTransition(proj *Project, to Status, actorID string, roles []identity.Role) error {
	if proj.Status == to {
		return ErrTransitionDenied
	}
	t, ok := findTransition(proj.Status, to)
	if !ok {
		return ErrTransitionDenied
	}
	// The owning client may execute any catalog-admitted transition on
	// their own project, regardless of role.
	if actorID != "" && actorID == proj.ClientID {
		return nil
	}
	if !roleAllowed(t, roles) {
		return ErrTransitionDenied
	}
	return nil
}

// AvailableTransitions returns the catalog transitions out of the current
// status that any of the given roles may execute. Unknown roles get an
// empty set.
func AvailableTransitions(current Status, roles []identity.Role) []Transition {
	var out []Transition
	for _, t := range catalog[current].transitions {
		if roleAllowed(t, roles) {
			out = append(out, t)
		}
	}
	return out
}

// OutgoingTransitions returns every catalog transition out of the current
// status, without role filtering. Used for the ownership override, where
// the owning client sees all admissible targets.
func OutgoingTransitions(current Status) []Transition {
	entry := catalog[current]
	out := make([]Transition, len(entry.transitions))
	copy(out, entry.transitions)
	return out
}
