// This file implements the projects repository for the SQLite store.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/RamonOpazo/sero-sub005/pkg/types"
)

// Compile-time interface check: ProjectsRepo must implement types.ProjectsRepo.
var _ types.ProjectsRepo = (*ProjectsRepo)(nil)

// ProjectsRepo provides CRUD access to the projects table.
type ProjectsRepo struct {
	store *Store
}

// Get retrieves a project by ID.
func (r *ProjectsRepo) Get(id string) (*types.Project, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	db, err := r.store.conn()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow(
		"SELECT project_id, name, description, created_at, updated_at FROM projects WHERE project_id = ?",
		id,
	)
	p, err := hydrateProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting project %s: %w", id, err)
	}
	return p, nil
}

// Put persists a project. When p.ProjectID is empty a new UUID v7 is
// generated and the row inserted; otherwise the existing row is updated.
// Returns the actual ID used.
func (r *ProjectsRepo) Put(p *types.Project) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	db, err := r.store.conn()
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	if p.ProjectID == "" {
		p.ProjectID = generateUUID()
		p.CreatedAt = now
		p.UpdatedAt = now
		_, err = db.Exec(
			"INSERT INTO projects (project_id, name, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
			p.ProjectID, p.Name, p.Description,
			p.CreatedAt.Format(time.RFC3339), p.UpdatedAt.Format(time.RFC3339),
		)
		if err != nil {
			return "", fmt.Errorf("inserting project: %w", err)
		}
		return p.ProjectID, nil
	}

	p.UpdatedAt = now
	res, err := db.Exec(
		"UPDATE projects SET name = ?, description = ?, updated_at = ? WHERE project_id = ?",
		p.Name, p.Description, p.UpdatedAt.Format(time.RFC3339), p.ProjectID,
	)
	if err != nil {
		return "", fmt.Errorf("updating project %s: %w", p.ProjectID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", types.ErrNotFound
	}
	return p.ProjectID, nil
}

// Delete removes a project. Documents, selections, and prompts under it
// go with it by cascade.
func (r *ProjectsRepo) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	db, err := r.store.conn()
	if err != nil {
		return err
	}

	res, err := db.Exec("DELETE FROM projects WHERE project_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
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

// List returns all projects ordered by creation time.
func (r *ProjectsRepo) List() ([]*types.Project, error) {
	db, err := r.store.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(
		"SELECT project_id, name, description, created_at, updated_at FROM projects ORDER BY created_at",
	)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*types.Project
	for rows.Next() {
		p, err := hydrateProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// hydrateProject scans one projects row into a Project.
func hydrateProject(s scanner) (*types.Project, error) {
	var p types.Project
	var createdAt, updatedAt string
	if err := s.Scan(&p.ProjectID, &p.Name, &p.Description, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}
