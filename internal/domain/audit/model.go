package audit

import "time"

// EventType represents the type of audited event.
type EventType string

const (
	TypeProjectCreated EventType = "project_created"
	TypeStatusChanged  EventType = "status_changed"
	TypeTaskShared     EventType = "task_shared"
	TypeGrantApproved  EventType = "grant_approved"
	TypeGrantRejected  EventType = "grant_rejected"
)

// Entry represents one line in the audit log.
type Entry struct {
	ID        int64     `json:"id"`
	TenantID  string    `json:"tenant_id"`
	ProjectID string    `json:"project_id,omitempty"`
	Subject   string    `json:"subject"`
	ActorID   *string   `json:"actor_id,omitempty"`
	EventType EventType `json:"type"`
	Summary   string    `json:"summary"`
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ListOptions provides filtering options for listing audit entries.
type ListOptions struct {
	ProjectID string
	EventType *EventType
	Limit     int
	Offset    int
}
