// This file implements the prompts staging adapter for the SQLite store.
// Like selections, written rows are committed: sero does not persist
// drafts server-side.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/RamonOpazo/sero-sub005/pkg/staging"
	"github.com/RamonOpazo/sero-sub005/pkg/types"
)

// Compile-time interface check: PromptsRepo must implement the staging
// adapter for prompts.
var _ staging.Adapter[types.Prompt, types.PromptAttrs, types.PromptAttrs] = (*PromptsRepo)(nil)

// PromptsRepo is the store adapter for redaction prompts.
type PromptsRepo struct {
	store *Store
}

// Fetch returns every prompt of the document as a wire record.
func (r *PromptsRepo) Fetch(ctx context.Context, documentID string) ([]staging.Record[types.Prompt], error) {
	if documentID == "" {
		return nil, types.ErrInvalidID
	}
	db, err := r.store.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		"SELECT prompt_id, document_id, state, title, directive, text, created_at, updated_at FROM prompts WHERE document_id = ? ORDER BY created_at",
		documentID,
	)
	if err != nil {
		return nil, fmt.Errorf("fetching prompts: %w", err)
	}
	defer rows.Close()

	var recs []staging.Record[types.Prompt]
	for rows.Next() {
		rec, err := hydratePrompt(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Create inserts a new prompt under the document and returns its
// canonical record.
func (r *PromptsRepo) Create(ctx context.Context, documentID string, attrs types.PromptAttrs) (staging.Record[types.Prompt], error) {
	var zero staging.Record[types.Prompt]
	if documentID == "" {
		return zero, types.ErrInvalidID
	}
	if err := attrs.Validate(); err != nil {
		return zero, err
	}
	db, err := r.store.conn()
	if err != nil {
		return zero, err
	}

	var one int
	if err := db.QueryRowContext(ctx, "SELECT 1 FROM documents WHERE document_id = ?", documentID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, types.ErrNotFound
		}
		return zero, fmt.Errorf("checking document %s: %w", documentID, err)
	}

	now := time.Now().UTC()
	p := types.Prompt{
		PromptID:   generateUUID(),
		DocumentID: documentID,
		Title:      attrs.Title,
		Directive:  attrs.Directive,
		Text:       attrs.Text,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	_, err = db.ExecContext(ctx,
		"INSERT INTO prompts (prompt_id, document_id, state, title, directive, text, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		p.PromptID, p.DocumentID, string(staging.StageCommitted),
		p.Title, p.Directive, p.Text,
		now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return zero, fmt.Errorf("inserting prompt: %w", err)
	}
	return staging.Record[types.Prompt]{
		ID:      p.PromptID,
		State:   string(staging.StageCommitted),
		Payload: p,
	}, nil
}

// Update persists changed attributes for an existing prompt and returns
// its canonical record.
func (r *PromptsRepo) Update(ctx context.Context, id string, req staging.UpdateRequest[types.PromptAttrs]) (staging.Record[types.Prompt], error) {
	var zero staging.Record[types.Prompt]
	if id == "" {
		return zero, types.ErrInvalidID
	}
	if !staging.Stage(req.State).Valid() {
		return zero, types.ErrInvalidState
	}
	if err := req.Attrs.Validate(); err != nil {
		return zero, err
	}
	db, err := r.store.conn()
	if err != nil {
		return zero, err
	}

	now := time.Now().UTC()
	res, err := db.ExecContext(ctx,
		"UPDATE prompts SET state = ?, title = ?, directive = ?, text = ?, updated_at = ? WHERE prompt_id = ?",
		string(staging.StageCommitted),
		req.Attrs.Title, req.Attrs.Directive, req.Attrs.Text,
		now.Format(time.RFC3339), id,
	)
	if err != nil {
		return zero, fmt.Errorf("updating prompt %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return zero, err
	}
	if n == 0 {
		return zero, types.ErrNotFound
	}

	row := db.QueryRowContext(ctx,
		"SELECT prompt_id, document_id, state, title, directive, text, created_at, updated_at FROM prompts WHERE prompt_id = ?",
		id,
	)
	return hydratePrompt(row)
}

// Delete removes a prompt.
func (r *PromptsRepo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	db, err := r.store.conn()
	if err != nil {
		return err
	}

	res, err := db.ExecContext(ctx, "DELETE FROM prompts WHERE prompt_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting prompt %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// hydratePrompt scans one prompts row into a wire record.
func hydratePrompt(s scanner) (staging.Record[types.Prompt], error) {
	var zero staging.Record[types.Prompt]
	var p types.Prompt
	var state, createdAt, updatedAt string
	err := s.Scan(
		&p.PromptID, &p.DocumentID, &state, &p.Title, &p.Directive, &p.Text,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, types.ErrNotFound
		}
		return zero, err
	}
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return zero, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return zero, fmt.Errorf("parsing updated_at: %w", err)
	}
	return staging.Record[types.Prompt]{ID: p.PromptID, State: state, Payload: p}, nil
}
