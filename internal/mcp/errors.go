package mcp

import (
	"errors"
	"fmt"

	"github.com/renderforge/shotflow/internal/domain/identity"
	"github.com/renderforge/shotflow/internal/domain/sharing"
	"github.com/renderforge/shotflow/internal/domain/workflow"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, workflow.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Check the project ID"}
	case errors.Is(err, workflow.ErrTransitionDenied):
		return &APIError{Code: "TRANSITION_DENIED", Message: "status transition denied", RecoveryHint: "Call available_transitions to see permitted targets"}
	case errors.Is(err, workflow.ErrConcurrentModification):
		return &APIError{Code: "CONCURRENT_MODIFICATION", Message: "project modified concurrently", RecoveryHint: "Re-fetch the project and retry once"}
	case errors.Is(err, workflow.ErrUnknownStatus):
		return &APIError{Code: "UNKNOWN_STATUS", Message: "unknown project status", RecoveryHint: "Use one of the catalog statuses"}
	case errors.Is(err, sharing.ErrAlreadyShared):
		return &APIError{Code: "ALREADY_SHARED", Message: "task already shared with artist", RecoveryHint: "Resolve or update the existing grant"}
	case errors.Is(err, sharing.ErrNotPending):
		return &APIError{Code: "NOT_PENDING", Message: "grant already resolved", RecoveryHint: "No action needed"}
	case errors.Is(err, sharing.ErrArtistNotFound):
		return &APIError{Code: "ARTIST_NOT_FOUND", Message: "handle does not resolve to an artist", RecoveryHint: "Check the handle spelling"}
	case errors.Is(err, sharing.ErrGrantNotFound):
		return &APIError{Code: "GRANT_NOT_FOUND", Message: "grant not found", RecoveryHint: "Check the grant ID"}
	case errors.Is(err, sharing.ErrTaskNotFound):
		return &APIError{Code: "TASK_NOT_FOUND", Message: "task not found", RecoveryHint: "Check the task ID"}
	case errors.Is(err, identity.ErrUserNotFound):
		return &APIError{Code: "USER_NOT_FOUND", Message: "user not found", RecoveryHint: "Check the user ID"}
	case errors.Is(err, workflow.ErrInvalidInput),
		errors.Is(err, sharing.ErrInvalidInput),
		errors.Is(err, identity.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	default:
		return nil
	}
}

// wrapError converts a domain error into the API error, passing through
// anything unmapped.
func wrapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
