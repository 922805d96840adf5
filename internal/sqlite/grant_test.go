package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/renderforge/shotflow/internal/domain/identity"
	"github.com/renderforge/shotflow/internal/domain/sharing"
	"github.com/renderforge/shotflow/internal/repository"
	"github.com/stretchr/testify/require"
)

func seedGrantFixtures(t *testing.T, db *DB) {
	t.Helper()
	insertProject(t, db, "p1", "tenant1", "client1")
	insertUser(t, db, "artist1", "tenant1", "ana@example.com", identity.RoleArtist)
	insertTaskTree(t, db, "tenant1", "p1", "seq1", "shot1", "task1")
}

func newGrant(id, taskID, artistID string, status sharing.GrantStatus) *sharing.SharedTaskGrant {
	return &sharing.SharedTaskGrant{
		ID:          id,
		TenantID:    "tenant1",
		TaskID:      taskID,
		ArtistID:    artistID,
		AccessLevel: sharing.AccessView,
		Status:      status,
		GrantedBy:   "studio1",
		SharedAt:    time.Now(),
	}
}

func TestGrantRepository_CreateGet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	seedGrantFixtures(t, db)

	repo := NewGrantRepository(db)
	grant := newGrant("g1", "task1", "artist1", sharing.GrantPending)
	grant.Notes = "match the reference plate"
	require.NoError(t, repo.Create(ctx, "tenant1", grant))

	loaded, err := repo.Get(ctx, "tenant1", "g1")
	require.NoError(t, err)
	require.Equal(t, sharing.GrantPending, loaded.Status)
	require.Equal(t, sharing.AccessView, loaded.AccessLevel)
	require.Equal(t, "match the reference plate", loaded.Notes)
	require.Nil(t, loaded.ApprovedAt)
}

func TestGrantRepository_ActiveUniqueness(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	seedGrantFixtures(t, db)

	repo := NewGrantRepository(db)
	require.NoError(t, repo.Create(ctx, "tenant1", newGrant("g1", "task1", "artist1", sharing.GrantPending)))

	// A second active grant for the same pair hits the partial unique index.
	err := repo.Create(ctx, "tenant1", newGrant("g2", "task1", "artist1", sharing.GrantPending))
	require.Equal(t, repository.ErrConflict, err)

	// A rejected grant does not block a fresh share.
	resolved := newGrant("g1", "task1", "artist1", sharing.GrantRejected)
	require.NoError(t, repo.Resolve(ctx, "tenant1", resolved))
	require.NoError(t, repo.Create(ctx, "tenant1", newGrant("g3", "task1", "artist1", sharing.GrantPending)))
}

func TestGrantRepository_GetActive(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	seedGrantFixtures(t, db)

	repo := NewGrantRepository(db)

	_, err := repo.GetActive(ctx, "tenant1", "task1", "artist1")
	require.Equal(t, repository.ErrNotFound, err)

	require.NoError(t, repo.Create(ctx, "tenant1", newGrant("g1", "task1", "artist1", sharing.GrantPending)))

	active, err := repo.GetActive(ctx, "tenant1", "task1", "artist1")
	require.NoError(t, err)
	require.Equal(t, "g1", active.ID)
}

func TestGrantRepository_ResolveConflict(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	seedGrantFixtures(t, db)

	repo := NewGrantRepository(db)
	require.NoError(t, repo.Create(ctx, "tenant1", newGrant("g1", "task1", "artist1", sharing.GrantPending)))

	now := time.Now()
	approved := newGrant("g1", "task1", "artist1", sharing.GrantApproved)
	approved.ApprovedAt = &now
	require.NoError(t, repo.Resolve(ctx, "tenant1", approved))

	loaded, err := repo.Get(ctx, "tenant1", "g1")
	require.NoError(t, err)
	require.Equal(t, sharing.GrantApproved, loaded.Status)
	require.NotNil(t, loaded.ApprovedAt)

	// Resolving an already-resolved grant conflicts.
	rejected := newGrant("g1", "task1", "artist1", sharing.GrantRejected)
	err = repo.Resolve(ctx, "tenant1", rejected)
	require.Equal(t, repository.ErrConflict, err)

	rejected.ID = "missing"
	err = repo.Resolve(ctx, "tenant1", rejected)
	require.Equal(t, repository.ErrNotFound, err)
}

func TestGrantRepository_ListForArtist(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	seedGrantFixtures(t, db)
	insertTaskTree(t, db, "tenant1", "p1", "seq2", "shot2", "task2")

	repo := NewGrantRepository(db)
	first := newGrant("g1", "task1", "artist1", sharing.GrantPending)
	first.SharedAt = time.Now().Add(-time.Hour)
	require.NoError(t, repo.Create(ctx, "tenant1", first))
	require.NoError(t, repo.Create(ctx, "tenant1", newGrant("g2", "task2", "artist1", sharing.GrantPending)))

	grants, err := repo.ListForArtist(ctx, "tenant1", "artist1")
	require.NoError(t, err)
	require.Len(t, grants, 2)
	require.Equal(t, "g2", grants[0].ID)
}
