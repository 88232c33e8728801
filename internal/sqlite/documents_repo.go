// This file implements the documents repository for the SQLite store.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/RamonOpazo/sero-sub005/pkg/types"
)

// Compile-time interface check: DocumentsRepo must implement types.DocumentsRepo.
var _ types.DocumentsRepo = (*DocumentsRepo)(nil)

// DocumentsRepo provides CRUD access to the documents table.
type DocumentsRepo struct {
	store *Store
}

// Get retrieves a document by ID.
func (r *DocumentsRepo) Get(id string) (*types.Document, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	db, err := r.store.conn()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow(
		"SELECT document_id, project_id, name, page_count, created_at, updated_at FROM documents WHERE document_id = ?",
		id,
	)
	d, err := hydrateDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting document %s: %w", id, err)
	}
	return d, nil
}

// Put persists a document. When d.DocumentID is empty a new UUID v7 is
// generated and the row inserted under d.ProjectID, which must name an
// existing project; otherwise the existing row is updated. Returns the
// actual ID used.
func (r *DocumentsRepo) Put(d *types.Document) (string, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}
	db, err := r.store.conn()
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	if d.DocumentID == "" {
		if d.ProjectID == "" {
			return "", types.ErrInvalidID
		}
		var one int
		if err := db.QueryRow("SELECT 1 FROM projects WHERE project_id = ?", d.ProjectID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return "", types.ErrNotFound
			}
			return "", fmt.Errorf("checking project %s: %w", d.ProjectID, err)
		}
		d.DocumentID = generateUUID()
		d.CreatedAt = now
		d.UpdatedAt = now
		_, err = db.Exec(
			"INSERT INTO documents (document_id, project_id, name, page_count, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
			d.DocumentID, d.ProjectID, d.Name, d.PageCount,
			d.CreatedAt.Format(time.RFC3339), d.UpdatedAt.Format(time.RFC3339),
		)
		if err != nil {
			return "", fmt.Errorf("inserting document: %w", err)
		}
		return d.DocumentID, nil
	}

	d.UpdatedAt = now
	res, err := db.Exec(
		"UPDATE documents SET name = ?, page_count = ?, updated_at = ? WHERE document_id = ?",
		d.Name, d.PageCount, d.UpdatedAt.Format(time.RFC3339), d.DocumentID,
	)
	if err != nil {
		return "", fmt.Errorf("updating document %s: %w", d.DocumentID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", types.ErrNotFound
	}
	return d.DocumentID, nil
}

// Delete removes a document. Its selections and prompts go with it by
// cascade.
func (r *DocumentsRepo) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	db, err := r.store.conn()
	if err != nil {
		return err
	}

	res, err := db.Exec("DELETE FROM documents WHERE document_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document %s: %w", id, err)
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

// ListByProject returns the documents of one project ordered by creation
// time.
func (r *DocumentsRepo) ListByProject(projectID string) ([]*types.Document, error) {
	if projectID == "" {
		return nil, types.ErrInvalidID
	}
	db, err := r.store.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(
		"SELECT document_id, project_id, name, page_count, created_at, updated_at FROM documents WHERE project_id = ? ORDER BY created_at",
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []*types.Document
	for rows.Next() {
		d, err := hydrateDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// hydrateDocument scans one documents row into a Document.
func hydrateDocument(s scanner) (*types.Document, error) {
	var d types.Document
	var createdAt, updatedAt string
	if err := s.Scan(&d.DocumentID, &d.ProjectID, &d.Name, &d.PageCount, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if d.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if d.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &d, nil
}
