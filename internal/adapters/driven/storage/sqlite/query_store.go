package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/clauseworks/verdict-cli/internal/core/ports/driven"
)

// queryStore implements driven.QueryStore.
type queryStore struct {
	store *Store
}

var _ driven.QueryStore = (*queryStore)(nil)

// Save inserts a query record.
func (q *queryStore) Save(ctx context.Context, rec driven.QueryRecord) error {
	var docID sql.NullString
	if rec.DocumentID != "" {
		docID = sql.NullString{String: rec.DocumentID, Valid: true}
	}
	var amount sql.NullFloat64
	if rec.Amount != nil {
		amount = sql.NullFloat64{Float64: *rec.Amount, Valid: true}
	}

	_, err := q.store.db.ExecContext(ctx, `
		INSERT INTO queries (id, query_text, document_id, decision, amount, justification, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.QueryText, docID, rec.Decision, amount, rec.Justification, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving query: %w", err)
	}
	return nil
}

// List returns all query records, newest first.
func (q *queryStore) List(ctx context.Context) ([]driven.QueryRecord, error) {
	rows, err := q.store.db.QueryContext(ctx, `
		SELECT id, query_text, document_id, decision, amount, justification, created_at
		FROM queries ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing queries: %w", err)
	}
	defer rows.Close()

	var records []driven.QueryRecord
	for rows.Next() {
		var rec driven.QueryRecord
		var docID sql.NullString
		var amount sql.NullFloat64
		if err := rows.Scan(&rec.ID, &rec.QueryText, &docID, &rec.Decision, &amount, &rec.Justification, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning query: %w", err)
		}
		if docID.Valid {
			rec.DocumentID = docID.String
		}
		if amount.Valid {
			rec.Amount = &amount.Float64
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
