package sharing

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

// Service coordinates the task-sharing approval workflow.
type Service struct {
	grants    GrantRepository
	tasks     TaskRepository
	directory UserDirectory
	audits    AuditRepository
	notifier  notify.Notifier
	logger    *slog.Logger
}

// NewService creates a new sharing service.
func NewService(
	grants GrantRepository,
	tasks TaskRepository,
	directory UserDirectory,
	audits AuditRepository,
	notifier notify.Notifier,
	logger *slog.Logger,
) *Service {
	return &Service{
		grants:    grants,
		tasks:     tasks,
		directory: directory,
		audits:    audits,
		notifier:  notifier,
		logger:    logger,
	}
}

// ShareRequest describes a task share request.
type ShareRequest struct {
	TaskID      string
	ArtistID    string
	AccessLevel AccessLevel
	Notes       string
	GrantedBy   string
}

// ResolveRequest describes a grant decision.
type ResolveRequest struct {
	GrantID   string
	Decision  Decision
	DecidedBy string
}

// ResolveArtistByHandle looks up a user by contact handle and asserts the
// result actually holds the artist role. It never falls back to a
// non-artist ID.
func (s *Service) ResolveArtistByHandle(ctx context.Context, tenantID, handle string) (*identity.User, error) {
	if strings.TrimSpace(handle) == "" {
		return nil, ErrInvalidInput
	}
	user, err := s.directory.FindByHandle(ctx, tenantID, handle)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return nil, ErrArtistNotFound
		}
		return nil, fmt.Errorf("resolving handle: %w", err)
	}
	if !user.HasRole(identity.RoleArtist) {
		return nil, ErrArtistNotFound
	}
	return user, nil
}

// ShareTask creates a pending grant for the (task, artist) pair. An active
// grant already covering the pair fails with ErrAlreadyShared; the store's
// uniqueness check makes the duplicate check atomic with the insert.
func (s *Service) ShareTask(ctx context.Context, tenantID string, req ShareRequest) (*SharedTaskGrant, error) {
	if req.TaskID == "" || req.ArtistID == "" || req.GrantedBy == "" {
		return nil, ErrInvalidInput
	}
	if !req.AccessLevel.IsValid() {
		return nil, ErrInvalidInput
	}

	task, err := s.tasks.GetTask(ctx, tenantID, req.TaskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("loading task: %w", err)
	}

	existing, err := s.grants.GetActive(ctx, tenantID, req.TaskID, req.ArtistID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("checking active grant: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyShared
	}

	now := time.Now()
	grant := &SharedTaskGrant{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		TaskID:      req.TaskID,
		ArtistID:    req.ArtistID,
		AccessLevel: req.AccessLevel,
		Status:      GrantPending,
		Notes:       req.Notes,
		GrantedBy:   req.GrantedBy,
		SharedAt:    now,
	}

	if err := s.grants.Create(ctx, tenantID, grant); err != nil {
		// A racing share request hit the partial unique index first.
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrAlreadyShared
		}
		return nil, fmt.Errorf("creating grant: %w", err)
	}

	actor := req.GrantedBy
	if s.audits != nil {
		_ = s.audits.Log(ctx, tenantID, &audit.Entry{
			Subject:   grant.ID,
			ActorID:   &actor,
			EventType: audit.TypeTaskShared,
			Summary:   fmt.Sprintf("shared task %s with artist %s (%s)", task.ID, req.ArtistID, req.AccessLevel),
			CreatedAt: now,
		})
	}

	if s.notifier != nil {
		s.notifier.Notify(ctx, tenantID, notify.Event{
			Kind:        "task_share_requested",
			RecipientID: req.ArtistID,
			Subject:     grant.ID,
			Message:     fmt.Sprintf("task %q shared with you at %s access", task.Name, req.AccessLevel),
		})
	}

	return grant, nil
}

// ResolveGrant records the approve/reject decision on a pending grant.
// Resolving an already-resolved grant fails with ErrNotPending; the write
// itself is conditioned on the grant still being pending, so racing
// decisions cannot both win.
func (s *Service) ResolveGrant(ctx context.Context, tenantID string, req ResolveRequest) (*SharedTaskGrant, error) {
	if req.GrantID == "" || req.DecidedBy == "" {
		return nil, ErrInvalidInput
	}
	if req.Decision != DecisionApprove && req.Decision != DecisionReject {
		return nil, ErrInvalidInput
	}

	current, err := s.grants.Get(ctx, tenantID, req.GrantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGrantNotFound
		}
		return nil, fmt.Errorf("loading grant: %w", err)
	}

	if current.Status != GrantPending {
		return nil, ErrNotPending
	}

	now := time.Now()
	updated := *current
	if req.Decision == DecisionApprove {
		updated.Status = GrantApproved
		updated.ApprovedAt = &now
	} else {
		updated.Status = GrantRejected
	}

	if err := s.grants.Resolve(ctx, tenantID, &updated); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrNotPending
		}
		return nil, fmt.Errorf("resolving grant: %w", err)
	}

	eventType := audit.TypeGrantRejected
	kind := "task_share_rejected"
	if req.Decision == DecisionApprove {
		eventType = audit.TypeGrantApproved
		kind = "task_share_approved"
	}

	actor := req.DecidedBy
	if s.audits != nil {
		_ = s.audits.Log(ctx, tenantID, &audit.Entry{
			Subject:   updated.ID,
			ActorID:   &actor,
			EventType: eventType,
			Summary:   fmt.Sprintf("grant %s %s", updated.ID, updated.Status),
			CreatedAt: now,
		})
	}

	if s.notifier != nil {
		s.notifier.Notify(ctx, tenantID, notify.Event{
			Kind:        kind,
			RecipientID: updated.GrantedBy,
			Subject:     updated.ID,
			Message:     fmt.Sprintf("grant for task %s was %s", updated.TaskID, updated.Status),
		})
	}

	return &updated, nil
}

// GetGrant returns a grant by ID.
func (s *Service) GetGrant(ctx context.Context, tenantID, id string) (*SharedTaskGrant, error) {
	grant, err := s.grants.Get(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGrantNotFound
		}
		return nil, fmt.Errorf("getting grant: %w", err)
	}
	return grant, nil
}

// GrantsForArtist lists the artist's grants, newest first.
func (s *Service) GrantsForArtist(ctx context.Context, tenantID, artistID string) ([]SharedTaskGrant, error) {
	if artistID == "" {
		return nil, ErrInvalidInput
	}
	return s.grants.ListForArtist(ctx, tenantID, artistID)
}

// VisibleShotsForArtist returns the shots in the sequence reachable through
// an approved grant. Recomputed on demand, never materialized.
func (s *Service) VisibleShotsForArtist(ctx context.Context, tenantID, artistID, sequenceID string) ([]Shot, error) {
	if artistID == "" || sequenceID == "" {
		return nil, ErrInvalidInput
	}
	shots, err := s.tasks.VisibleShots(ctx, tenantID, artistID, sequenceID)
	if err != nil {
		return nil, fmt.Errorf("listing visible shots: %w", err)
	}
	return shots, nil
}

// VisibleTasksForArtist returns the tasks under the shot covered by an
// approved grant for the artist.
func (s *Service) VisibleTasksForArtist(ctx context.Context, tenantID, artistID, shotID string) ([]Task, error) {
	if artistID == "" || shotID == "" {
		return nil, ErrInvalidInput
	}
	tasks, err := s.tasks.VisibleTasks(ctx, tenantID, artistID, shotID)
	if err != nil {
		return nil, fmt.Errorf("listing visible tasks: %w", err)
	}
	return tasks, nil
}
