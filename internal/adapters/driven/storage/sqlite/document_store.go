package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/clauseworks/verdict-cli/internal/core/domain"
	"github.com/clauseworks/verdict-cli/internal/core/ports/driven"
)

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// Save inserts a document record.
func (d *documentStore) Save(ctx context.Context, doc domain.Document) error {
	_, err := d.store.db.ExecContext(ctx, `
		INSERT INTO documents (id, filename, file_type, content, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.Filename, doc.FileType, doc.Content, string(doc.Status), doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// UpdateStatus moves a document to a terminal status. On success the
// extracted content is stored alongside.
func (d *documentStore) UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, content string) error {
	res, err := d.store.db.ExecContext(ctx, `
		UPDATE documents SET status = ?, content = ? WHERE id = ?
	`, string(status), content, id)
	if err != nil {
		return fmt.Errorf("updating document status: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating document status: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SaveChunks records the chunk-to-vector-id mapping for a document.
func (d *documentStore) SaveChunks(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := d.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO chunks (document_id, chunk_index, vector_id)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing chunk insert: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		if _, err := stmt.ExecContext(ctx, chunk.DocumentID, chunk.Index, chunk.VectorID); err != nil {
			return fmt.Errorf("saving chunk %d: %w", chunk.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing chunks: %w", err)
	}
	return nil
}

// Get returns a document by id.
func (d *documentStore) Get(ctx context.Context, id string) (*domain.Document, error) {
	row := d.store.db.QueryRowContext(ctx, `
		SELECT id, filename, file_type, content, status, created_at
		FROM documents WHERE id = ?
	`, id)

	var doc domain.Document
	var status string
	err := row.Scan(&doc.ID, &doc.Filename, &doc.FileType, &doc.Content, &status, &doc.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting document: %w", err)
	}
	doc.Status = domain.DocumentStatus(status)
	return &doc, nil
}

// List returns all documents, newest first.
func (d *documentStore) List(ctx context.Context) ([]domain.Document, error) {
	rows, err := d.store.db.QueryContext(ctx, `
		SELECT id, filename, file_type, content, status, created_at
		FROM documents ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var doc domain.Document
		var status string
		if err := rows.Scan(&doc.ID, &doc.Filename, &doc.FileType, &doc.Content, &status, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		doc.Status = domain.DocumentStatus(status)
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}
