package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/renderforge/shotflow/internal/domain/audit"
	"github.com/renderforge/shotflow/internal/domain/identity"
	"github.com/renderforge/shotflow/internal/notify"
	"github.com/renderforge/shotflow/internal/repository"
)

// Service handles project lifecycle operations.
type Service struct {
	projects  ProjectRepository
	history   HistoryRepository
	directory UserDirectory
	audits    AuditRepository
	notifier  notify.Notifier
	logger    *slog.Logger
}

// NewService creates a new workflow service.
func NewService(
	projects ProjectRepository,
	history HistoryRepository,
	directory UserDirectory,
	audits AuditRepository,
	notifier notify.Notifier,
	logger *slog.Logger,
) *Service {
	return &Service{
		projects:  projects,
		history:   history,
		directory: directory,
		audits:    audits,
		notifier:  notifier,
		logger:    logger,
	}
}

// CreateRequest describes a project creation request.
type CreateRequest struct {
	ID          string
	Title       string
	Description string
	ClientID    string
	AssignedTo  *string
}

// ChangeStatusRequest describes a status transition request.
type ChangeStatusRequest struct {
	ProjectID string
	To        Status
	ActorID   string
	Reason    string
}

// Create creates a project in draft status together with its creation
// history entry.
func (s *Service) Create(ctx context.Context, tenantID string, req CreateRequest) (*Project, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.ClientID) == "" {
		return nil, ErrInvalidInput
	}

	id := req.ID
	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
	}

	now := time.Now()
	proj := &Project{
		ID:          id,
		TenantID:    tenantID,
		Title:       req.Title,
		Description: req.Description,
		ClientID:    req.ClientID,
		AssignedTo:  req.AssignedTo,
		Status:      StatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	initial := &StatusHistoryEntry{
		ProjectID:  proj.ID,
		FromStatus: nil,
		ToStatus:   StatusDraft,
		ChangedBy:  nil,
		CreatedAt:  now,
	}

	if err := s.projects.Create(ctx, tenantID, proj, initial); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	if s.audits != nil {
		_ = s.audits.Log(ctx, tenantID, &audit.Entry{
			ProjectID: proj.ID,
			Subject:   proj.ID,
			EventType: audit.TypeProjectCreated,
			Summary:   fmt.Sprintf("created project %s", proj.ID),
			CreatedAt: now,
		})
	}

	return proj, nil
}

// Get returns a project by ID.
func (s *Service) Get(ctx context.Context, tenantID, id string) (*Project, error) {
	proj, err := s.projects.Get(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// List returns project summaries.
func (s *Service) List(ctx context.Context, tenantID string) ([]ProjectSummary, error) {
	return s.projects.List(ctx, tenantID)
}

// ChangeStatus validates the transition against the persisted current status
// and applies it atomically together with its history entry. A racing write
// surfaces as ErrConcurrentModification; the caller re-fetches and may retry.
func (s *Service) ChangeStatus(ctx context.Context, tenantID string, req ChangeStatusRequest) (*Project, error) {
	if req.ProjectID == "" || req.ActorID == "" {
		return nil, ErrInvalidInput
	}
	if !req.To.IsValid() {
		return nil, ErrUnknownStatus
	}

	current, err := s.projects.Get(ctx, tenantID, req.ProjectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("loading project: %w", err)
	}

	roles, err := s.actorRoles(ctx, tenantID, req.ActorID)
	if err != nil {
		return nil, err
	}

	if err := ValidateTransition(current, req.To, req.ActorID, roles); err != nil {
		return nil, err
	}

	now := time.Now()
	updated := *current
	updated.Status = req.To
	updated.UpdatedAt = now

	from := current.Status
	actor := req.ActorID
	entry := &StatusHistoryEntry{
		ProjectID:  current.ID,
		FromStatus: &from,
		ToStatus:   req.To,
		ChangedBy:  &actor,
		Reason:     req.Reason,
		CreatedAt:  now,
	}

	if err := s.projects.Transition(ctx, tenantID, &updated, current.Status, entry); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrConcurrentModification
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("transitioning project: %w", err)
	}

	if s.audits != nil {
		_ = s.audits.Log(ctx, tenantID, &audit.Entry{
			ProjectID: updated.ID,
			Subject:   updated.ID,
			ActorID:   &actor,
			EventType: audit.TypeStatusChanged,
			Summary:   fmt.Sprintf("project %s: %s -> %s", updated.ID, from, req.To),
			Details:   req.Reason,
			CreatedAt: now,
		})
	}

	if s.notifier != nil {
		s.notifier.Notify(ctx, tenantID, notify.Event{
			Kind:        "project_status_changed",
			RecipientID: updated.ClientID,
			Subject:     updated.ID,
			Message:     fmt.Sprintf("project %q moved to %s", updated.Title, req.To),
		})
	}

	return &updated, nil
}

// ListHistory returns the project's status history, newest first.
func (s *Service) ListHistory(ctx context.Context, tenantID, projectID string) ([]StatusHistoryEntry, error) {
	if projectID == "" {
		return nil, ErrInvalidInput
	}
	if _, err := s.Get(ctx, tenantID, projectID); err != nil {
		return nil, err
	}
	entries, err := s.history.ListByProject(ctx, tenantID, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	return entries, nil
}

// AvailableTransitionsFor returns the transitions the actor may execute on
// the project right now. The owning client sees every catalog-admitted
// transition; everyone else gets the role-filtered set.
func (s *Service) AvailableTransitionsFor(ctx context.Context, tenantID, projectID, actorID string) ([]Transition, error) {
	proj, err := s.Get(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}

	if actorID != "" && actorID == proj.ClientID {
		return OutgoingTransitions(proj.Status), nil
	}

	roles, err := s.actorRoles(ctx, tenantID, actorID)
	if err != nil {
		return nil, err
	}
	return AvailableTransitions(proj.Status, roles), nil
}

// actorRoles resolves the actor's roles. An unknown actor gets no roles;
// the ownership override in the validator still applies by ID.
func (s *Service) actorRoles(ctx context.Context, tenantID, actorID string) ([]identity.Role, error) {
	if actorID == "" {
		return nil, nil
	}
	user, err := s.directory.FindByID(ctx, tenantID, actorID)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolving actor: %w", err)
	}
	return user.Roles, nil
}
