package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clauseworks/verdict-cli/internal/core/domain"
	"github.com/clauseworks/verdict-cli/internal/core/ports/driven"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNewStoreIdempotentMigrations(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening must not re-run applied migrations.
	store, err = NewStore(dir)
	require.NoError(t, err)
	assert.NoError(t, store.Close())
}

func TestDocumentLifecycle(t *testing.T) {
	store := newTestStore(t)
	docs := store.DocumentStore()
	ctx := context.Background()

	doc := domain.Document{
		ID:        "doc-1",
		Filename:  "policy.pdf",
		FileType:  "pdf",
		Status:    domain.StatusPending,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, docs.Save(ctx, doc))

	got, err := docs.Get(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.Empty(t, got.Content)

	require.NoError(t, docs.UpdateStatus(ctx, "doc-1", domain.StatusProcessed, "extracted text"))

	got, err = docs.Get(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessed, got.Status)
	assert.Equal(t, "extracted text", got.Content)
}

func TestUpdateStatusUnknownDocument(t *testing.T) {
	store := newTestStore(t)

	err := store.DocumentStore().UpdateStatus(context.Background(), "missing", domain.StatusFailed, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetUnknownDocument(t *testing.T) {
	store := newTestStore(t)

	_, err := store.DocumentStore().Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListDocumentsNewestFirst(t *testing.T) {
	store := newTestStore(t)
	docs := store.DocumentStore()
	ctx := context.Background()

	base := time.Now().UTC()
	require.NoError(t, docs.Save(ctx, domain.Document{
		ID: "old", Filename: "a.txt", FileType: "txt",
		Status: domain.StatusProcessed, CreatedAt: base.Add(-time.Hour),
	}))
	require.NoError(t, docs.Save(ctx, domain.Document{
		ID: "new", Filename: "b.txt", FileType: "txt",
		Status: domain.StatusPending, CreatedAt: base,
	}))

	list, err := docs.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].ID)
	assert.Equal(t, "old", list[1].ID)
}

func TestSaveChunks(t *testing.T) {
	store := newTestStore(t)
	docs := store.DocumentStore()
	ctx := context.Background()

	require.NoError(t, docs.Save(ctx, domain.Document{
		ID: "doc-1", Filename: "a.txt", FileType: "txt",
		Status: domain.StatusProcessed, CreatedAt: time.Now().UTC(),
	}))

	chunks := []domain.Chunk{
		{DocumentID: "doc-1", Index: 0, VectorID: "doc_doc-1_chunk_0_aaaa1111"},
		{DocumentID: "doc-1", Index: 1, VectorID: "doc_doc-1_chunk_1_bbbb2222"},
	}
	require.NoError(t, docs.SaveChunks(ctx, chunks))

	// Re-saving the same positions replaces, not duplicates.
	require.NoError(t, docs.SaveChunks(ctx, chunks))

	var count int
	row := store.db.QueryRow("SELECT COUNT(*) FROM chunks WHERE document_id = ?", "doc-1")
	require.NoError(t, row.Scan(&count))
	assert.Equal(t, 2, count)
}

func TestSaveChunksEmpty(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.DocumentStore().SaveChunks(context.Background(), nil))
}

func TestQueryRecords(t *testing.T) {
	store := newTestStore(t)
	queries := store.QueryStore()
	ctx := context.Background()

	amount := 150000.0
	base := time.Now().UTC()
	require.NoError(t, queries.Save(ctx, driven.QueryRecord{
		ID:            "q-1",
		QueryText:     "is knee surgery covered?",
		DocumentID:    "doc-1",
		Decision:      "Approved",
		Amount:        &amount,
		Justification: `[{"clause_id":"clause_1","text":"covered","reason":"matches"}]`,
		CreatedAt:     base.Add(-time.Minute),
	}))
	require.NoError(t, queries.Save(ctx, driven.QueryRecord{
		ID:            "q-2",
		QueryText:     "what about dental?",
		Decision:      "Rejected",
		Justification: "[]",
		CreatedAt:     base,
	}))

	records, err := queries.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "q-2", records[0].ID)
	assert.Empty(t, records[0].DocumentID)
	assert.Nil(t, records[0].Amount)

	assert.Equal(t, "q-1", records[1].ID)
	assert.Equal(t, "doc-1", records[1].DocumentID)
	require.NotNil(t, records[1].Amount)
	assert.Equal(t, 150000.0, *records[1].Amount)
}
