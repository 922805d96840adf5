package sharing

import "time"

// AccessLevel is the capability ceiling an approved grant confers.
type AccessLevel string

const (
	AccessView    AccessLevel = "view"
	AccessComment AccessLevel = "comment"
	AccessEdit    AccessLevel = "edit"
)

// IsValid reports whether the access level is known.
func (a AccessLevel) IsValid() bool {
	switch a {
	case AccessView, AccessComment, AccessEdit:
		return true
	default:
		return false
	}
}

// GrantStatus is the lifecycle status of a shared-task grant.
// revoked is recognized as a terminal value that may appear in storage;
// no operation here produces it.
type GrantStatus string

const (
	GrantPending  GrantStatus = "pending"
	GrantApproved GrantStatus = "approved"
	GrantRejected GrantStatus = "rejected"
	GrantRevoked  GrantStatus = "revoked"
)

// Active reports whether the grant status counts toward the
// one-active-grant-per-pair rule.
func (g GrantStatus) Active() bool {
	return g == GrantPending || g == GrantApproved
}

// SharedTaskGrant links one task to one artist with an access level and an
// approval state. At most one active (pending or approved) grant exists per
// (task, artist) pair.
type SharedTaskGrant struct {
	ID          string      `json:"id"`
	TenantID    string      `json:"tenant_id"`
	TaskID      string      `json:"task_id"`
	ArtistID    string      `json:"artist_id"`
	AccessLevel AccessLevel `json:"access_level"`
	Status      GrantStatus `json:"status"`
	Notes       string      `json:"notes,omitempty"`
	GrantedBy   string      `json:"granted_by"`
	SharedAt    time.Time   `json:"shared_at"`
	ApprovedAt  *time.Time  `json:"approved_at,omitempty"`
}

// Decision is the approver's verdict on a pending grant.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Sequence groups shots under a project.
type Sequence struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

// Shot is a unit of work inside a sequence.
type Shot struct {
	ID         string    `json:"id"`
	SequenceID string    `json:"sequence_id"`
	Code       string    `json:"code"`
	Status     string    `json:"status,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Task is a unit of work inside a shot. Internal to the owning studio
// unless shared through an approved grant.
type Task struct {
	ID         string    `json:"id"`
	ShotID     string    `json:"shot_id"`
	Name       string    `json:"name"`
	Status     string    `json:"status,omitempty"`
	Priority   string    `json:"priority,omitempty"`
	AssignedTo *string   `json:"assigned_to,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
