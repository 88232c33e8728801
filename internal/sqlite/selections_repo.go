// This file implements the selections staging adapter for the SQLite
// store. Create and Update resolve whatever staged state the client
// reports: sero does not persist drafts, so a successfully written row is
// committed and the returned record says so.
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

// Compile-time interface check: SelectionsRepo must implement the staging
// adapter for selections.
var _ staging.Adapter[types.Selection, types.SelectionAttrs, types.SelectionAttrs] = (*SelectionsRepo)(nil)

// SelectionsRepo is the store adapter for redaction selections.
type SelectionsRepo struct {
	store *Store
}

// Fetch returns every selection of the document as a wire record.
func (r *SelectionsRepo) Fetch(ctx context.Context, documentID string) ([]staging.Record[types.Selection], error) {
	if documentID == "" {
		return nil, types.ErrInvalidID
	}
	db, err := r.store.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		"SELECT selection_id, document_id, state, page_number, x, y, width, height, confidence, created_at, updated_at FROM selections WHERE document_id = ? ORDER BY created_at",
		documentID,
	)
	if err != nil {
		return nil, fmt.Errorf("fetching selections: %w", err)
	}
	defer rows.Close()

	var recs []staging.Record[types.Selection]
	for rows.Next() {
		rec, err := hydrateSelection(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Create inserts a new selection under the document and returns its
// canonical record.
func (r *SelectionsRepo) Create(ctx context.Context, documentID string, attrs types.SelectionAttrs) (staging.Record[types.Selection], error) {
	var zero staging.Record[types.Selection]
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
	sel := types.Selection{
		SelectionID: generateUUID(),
		DocumentID:  documentID,
		PageNumber:  attrs.PageNumber,
		X:           attrs.X,
		Y:           attrs.Y,
		Width:       attrs.Width,
		Height:      attrs.Height,
		Confidence:  attrs.Confidence,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err = db.ExecContext(ctx,
		"INSERT INTO selections (selection_id, document_id, state, page_number, x, y, width, height, confidence, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		sel.SelectionID, sel.DocumentID, string(staging.StageCommitted),
		nullInt(sel.PageNumber), sel.X, sel.Y, sel.Width, sel.Height, nullFloat(sel.Confidence),
		now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return zero, fmt.Errorf("inserting selection: %w", err)
	}
	return staging.Record[types.Selection]{
		ID:      sel.SelectionID,
		State:   string(staging.StageCommitted),
		Payload: sel,
	}, nil
}

// Update persists changed attributes for an existing selection and
// returns its canonical record.
func (r *SelectionsRepo) Update(ctx context.Context, id string, req staging.UpdateRequest[types.SelectionAttrs]) (staging.Record[types.Selection], error) {
	var zero staging.Record[types.Selection]
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
		"UPDATE selections SET state = ?, page_number = ?, x = ?, y = ?, width = ?, height = ?, confidence = ?, updated_at = ? WHERE selection_id = ?",
		string(staging.StageCommitted),
		nullInt(req.Attrs.PageNumber), req.Attrs.X, req.Attrs.Y, req.Attrs.Width, req.Attrs.Height,
		nullFloat(req.Attrs.Confidence), now.Format(time.RFC3339), id,
	)
	if err != nil {
		return zero, fmt.Errorf("updating selection %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return zero, err
	}
	if n == 0 {
		return zero, types.ErrNotFound
	}

	row := db.QueryRowContext(ctx,
		"SELECT selection_id, document_id, state, page_number, x, y, width, height, confidence, created_at, updated_at FROM selections WHERE selection_id = ?",
		id,
	)
	return hydrateSelection(row)
}

// Delete removes a selection.
func (r *SelectionsRepo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	db, err := r.store.conn()
	if err != nil {
		return err
	}

	res, err := db.ExecContext(ctx, "DELETE FROM selections WHERE selection_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting selection %s: %w", id, err)
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

// hydrateSelection scans one selections row into a wire record.
func hydrateSelection(s scanner) (staging.Record[types.Selection], error) {
	var zero staging.Record[types.Selection]
	var sel types.Selection
	var state, createdAt, updatedAt string
	var page sql.NullInt64
	var confidence sql.NullFloat64
	err := s.Scan(
		&sel.SelectionID, &sel.DocumentID, &state, &page,
		&sel.X, &sel.Y, &sel.Width, &sel.Height, &confidence,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, types.ErrNotFound
		}
		return zero, err
	}
	if page.Valid {
		p := int(page.Int64)
		sel.PageNumber = &p
	}
	if confidence.Valid {
		c := confidence.Float64
		sel.Confidence = &c
	}
	if sel.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return zero, fmt.Errorf("parsing created_at: %w", err)
	}
	if sel.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return zero, fmt.Errorf("parsing updated_at: %w", err)
	}
	return staging.Record[types.Selection]{ID: sel.SelectionID, State: state, Payload: sel}, nil
}

// nullInt converts an optional int to its SQL value.
func nullInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

// nullFloat converts an optional float to its SQL value.
func nullFloat(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
