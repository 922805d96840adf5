package workflow

import "time"

// Status represents the lifecycle status of a project.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusReview     Status = "review"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// IsValid reports whether the status is a known catalog value.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusOpen, StatusInProgress, StatusReview, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Project represents a client project moving through the lifecycle.
type Project struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ClientID    string    `json:"client_id"`
	AssignedTo  *string   `json:"assigned_to,omitempty"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StatusHistoryEntry records one status change of a project. Entries are
// append-only; the entry with a nil FromStatus is the creation entry.
type StatusHistoryEntry struct {
	ID         int64     `json:"id"`
	ProjectID  string    `json:"project_id"`
	FromStatus *Status   `json:"from_status,omitempty"`
	ToStatus   Status    `json:"to_status"`
	ChangedBy  *string   `json:"changed_by,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ProjectSummary is a lightweight representation for listing.
type ProjectSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	ClientID  string    `json:"client_id"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
