package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshRaj112/pastebin-backend/internal/models"
)

func TestCreatePaste_TrimsAndStampsOwner(t *testing.T) {
	t.Parallel()

	srv, _, pastes := newTestEnv(t)
	ctx := context.Background()

	identity := &Identity{UserID: "u1", Username: "alice"}
	pasteID, err := pastes.Create(ctx, "  hello world\n", identity)
	require.NoError(t, err)
	require.NotEmpty(t, pasteID)

	var record models.PasteRecord
	require.True(t, srv.Bin(pasteID, &record))
	assert.Equal(t, "hello world", record.Content)
	assert.NotEmpty(t, record.CreatedAt)
	assert.Empty(t, record.UpdatedAt)
	require.NotNil(t, record.UserID)
	assert.Equal(t, "u1", *record.UserID)
	require.NotNil(t, record.Username)
	assert.Equal(t, "alice", *record.Username)
}

func TestCreatePaste_Anonymous(t *testing.T) {
	t.Parallel()

	srv, _, pastes := newTestEnv(t)

	pasteID, err := pastes.Create(context.Background(), "anonymous snippet", nil)
	require.NoError(t, err)

	var record models.PasteRecord
	require.True(t, srv.Bin(pasteID, &record))
	assert.Nil(t, record.UserID)
	assert.Nil(t, record.Username)
}

func TestCreatePaste_EmptyContent(t *testing.T) {
	t.Parallel()

	srv, _, pastes := newTestEnv(t)
	ctx := context.Background()

	before := srv.Requests()

	_, err := pastes.Create(ctx, "", nil)
	assert.ErrorIs(t, err, ErrEmptyContent)

	_, err = pastes.Create(ctx, "   \n\t", nil)
	assert.ErrorIs(t, err, ErrEmptyContent)

	assert.Equal(t, before, srv.Requests(), "rejected content must not reach the store")
}

func TestGetPaste_RoundTrip(t *testing.T) {
	t.Parallel()

	_, _, pastes := newTestEnv(t)
	ctx := context.Background()

	pasteID, err := pastes.Create(ctx, "  some content  ", nil)
	require.NoError(t, err)

	paste, err := pastes.Get(ctx, pasteID)
	require.NoError(t, err)
	assert.Equal(t, pasteID, paste.ID)
	assert.Equal(t, "some content", paste.Content)
}

func TestGetPaste_NotFound(t *testing.T) {
	t.Parallel()

	_, _, pastes := newTestEnv(t)

	_, err := pastes.Get(context.Background(), "missing-bin")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePaste_ByOwner(t *testing.T) {
	t.Parallel()

	srv, _, pastes := newTestEnv(t)
	ctx := context.Background()

	identity := &Identity{UserID: "u1", Username: "alice"}
	pasteID, err := pastes.Create(ctx, "first draft", identity)
	require.NoError(t, err)

	require.NoError(t, pastes.Update(ctx, pasteID, "  second draft  ", identity))

	var record models.PasteRecord
	require.True(t, srv.Bin(pasteID, &record))
	assert.Equal(t, "second draft", record.Content)
	assert.NotEmpty(t, record.UpdatedAt)
	require.NotNil(t, record.UserID, "owner fields survive the rewrite")
	assert.Equal(t, "u1", *record.UserID)
}

func TestUpdatePaste_WrongOwner(t *testing.T) {
	t.Parallel()

	_, _, pastes := newTestEnv(t)
	ctx := context.Background()

	pasteID, err := pastes.Create(ctx, "alice's paste", &Identity{UserID: "u1", Username: "alice"})
	require.NoError(t, err)

	err = pastes.Update(ctx, pasteID, "hijacked", &Identity{UserID: "u2", Username: "mallory"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdatePaste_AnonymousPasteIsImmutable(t *testing.T) {
	t.Parallel()

	_, _, pastes := newTestEnv(t)
	ctx := context.Background()

	pasteID, err := pastes.Create(ctx, "anonymous", nil)
	require.NoError(t, err)

	// A null owner matches no identity, so nobody can ever edit or delete it.
	err = pastes.Update(ctx, pasteID, "new content", &Identity{UserID: "u1", Username: "alice"})
	assert.ErrorIs(t, err, ErrForbidden)

	err = pastes.Delete(ctx, pasteID, &Identity{UserID: "u1", Username: "alice"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdatePaste_Missing(t *testing.T) {
	t.Parallel()

	_, _, pastes := newTestEnv(t)

	err := pastes.Update(context.Background(), "missing-bin", "content", &Identity{UserID: "u1", Username: "alice"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePaste_EmptyContent(t *testing.T) {
	t.Parallel()

	_, _, pastes := newTestEnv(t)
	ctx := context.Background()

	identity := &Identity{UserID: "u1", Username: "alice"}
	pasteID, err := pastes.Create(ctx, "content", identity)
	require.NoError(t, err)

	err = pastes.Update(ctx, pasteID, "   ", identity)
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestDeletePaste_ByOwner(t *testing.T) {
	t.Parallel()

	_, _, pastes := newTestEnv(t)
	ctx := context.Background()

	identity := &Identity{UserID: "u1", Username: "alice"}
	pasteID, err := pastes.Create(ctx, "short lived", identity)
	require.NoError(t, err)

	require.NoError(t, pastes.Delete(ctx, pasteID, identity))

	_, err = pastes.Get(ctx, pasteID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeletePaste_WrongOwner(t *testing.T) {
	t.Parallel()

	_, _, pastes := newTestEnv(t)
	ctx := context.Background()

	pasteID, err := pastes.Create(ctx, "alice's paste", &Identity{UserID: "u1", Username: "alice"})
	require.NoError(t, err)

	err = pastes.Delete(ctx, pasteID, &Identity{UserID: "u2", Username: "mallory"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListByUsername_SortsNewestFirst(t *testing.T) {
	t.Parallel()

	srv, users, pastes := newTestEnv(t)
	ctx := context.Background()

	registered, err := users.Register(ctx, "alice", "hunter22")
	require.NoError(t, err)

	srv.SeedCollectionBin(testCollectionID, "paste-old", models.PasteRecord{
		Content: "old", CreatedAt: "2024-01-01T00:00:00.000Z",
		UserID: strPtr(registered.ID), Username: strPtr("alice"),
	})
	srv.SeedCollectionBin(testCollectionID, "paste-new", models.PasteRecord{
		Content: "new", CreatedAt: "2025-06-01T00:00:00.000Z",
		UserID: strPtr(registered.ID), Username: strPtr("alice"),
	})
	srv.SeedCollectionBin(testCollectionID, "paste-other", models.PasteRecord{
		Content: "other", CreatedAt: "2025-01-01T00:00:00.000Z",
		UserID: strPtr("someone-else"), Username: strPtr("bob"),
	})
	srv.SeedCollectionBin(testCollectionID, "paste-anon", models.PasteRecord{
		Content: "anon", CreatedAt: "2025-02-01T00:00:00.000Z",
	})

	got, err := pastes.ListByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "paste-new", got[0].ID)
	assert.Equal(t, "paste-old", got[1].ID)
}

func TestListByUsername_UnknownUser(t *testing.T) {
	t.Parallel()

	_, _, pastes := newTestEnv(t)

	_, err := pastes.ListByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListByUser_SkipsFailingBins(t *testing.T) {
	t.Parallel()

	srv, _, pastes := newTestEnv(t)
	ctx := context.Background()

	srv.SeedCollectionBin(testCollectionID, "paste-good", models.PasteRecord{
		Content: "good", CreatedAt: "2025-01-01T00:00:00.000Z",
		UserID: strPtr("u1"), Username: strPtr("alice"),
	})
	srv.SeedCollectionBin(testCollectionID, "paste-broken", models.PasteRecord{
		Content: "broken", CreatedAt: "2025-02-01T00:00:00.000Z",
		UserID: strPtr("u1"), Username: strPtr("alice"),
	})
	srv.FailBin("paste-broken")

	got, err := pastes.ListByUser(ctx, "u1")
	require.NoError(t, err, "a failing bin must not fail the listing")
	require.Len(t, got, 1)
	assert.Equal(t, "paste-good", got[0].ID)
}

func TestListByUser_NoPastes(t *testing.T) {
	t.Parallel()

	_, _, pastes := newTestEnv(t)

	got, err := pastes.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, got)
}
