package mcp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/renderforge/shotflow/internal/domain/sharing"
	"github.com/renderforge/shotflow/internal/domain/workflow"
)

func TestMapError_Codes(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{workflow.ErrProjectNotFound, "PROJECT_NOT_FOUND"},
		{workflow.ErrTransitionDenied, "TRANSITION_DENIED"},
		{workflow.ErrConcurrentModification, "CONCURRENT_MODIFICATION"},
		{workflow.ErrUnknownStatus, "UNKNOWN_STATUS"},
		{sharing.ErrAlreadyShared, "ALREADY_SHARED"},
		{sharing.ErrNotPending, "NOT_PENDING"},
		{sharing.ErrArtistNotFound, "ARTIST_NOT_FOUND"},
		{sharing.ErrGrantNotFound, "GRANT_NOT_FOUND"},
		{sharing.ErrTaskNotFound, "TASK_NOT_FOUND"},
		{workflow.ErrInvalidInput, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		apiErr := MapError(tt.err)
		require.NotNil(t, apiErr, "no mapping for %v", tt.err)
		require.Equal(t, tt.code, apiErr.Code)
	}
}

func TestMapError_WrappedError(t *testing.T) {
	wrapped := fmt.Errorf("change status: %w", workflow.ErrConcurrentModification)
	apiErr := MapError(wrapped)
	require.NotNil(t, apiErr)
	require.Equal(t, "CONCURRENT_MODIFICATION", apiErr.Code)
	require.NotEmpty(t, apiErr.RecoveryHint)
}

func TestMapError_UnknownErrorPassesThrough(t *testing.T) {
	require.Nil(t, MapError(errors.New("something else")))
	require.Nil(t, MapError(nil))
}
