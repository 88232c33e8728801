// Package sqlite implements the SQLite storage backend for sero: plain
// CRUD repositories for projects and documents, and staging adapters for
// selections and prompts.
package sqlite

// Schema DDL. Timestamps are RFC 3339 strings; child rows cascade on
// delete so removing a project or document cleans its annotations.
const (
	createProjects = `CREATE TABLE IF NOT EXISTS projects (
    project_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createDocuments = `CREATE TABLE IF NOT EXISTS documents (
    document_id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL REFERENCES projects(project_id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    page_count INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createSelections = `CREATE TABLE IF NOT EXISTS selections (
    selection_id TEXT PRIMARY KEY,
    document_id TEXT NOT NULL REFERENCES documents(document_id) ON DELETE CASCADE,
    state TEXT NOT NULL,
    page_number INTEGER,
    x REAL NOT NULL,
    y REAL NOT NULL,
    width REAL NOT NULL,
    height REAL NOT NULL,
    confidence REAL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createPrompts = `CREATE TABLE IF NOT EXISTS prompts (
    prompt_id TEXT PRIMARY KEY,
    document_id TEXT NOT NULL REFERENCES documents(document_id) ON DELETE CASCADE,
    state TEXT NOT NULL,
    title TEXT NOT NULL,
    directive TEXT NOT NULL,
    text TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`
)

// schemaStatements lists the DDL in dependency order.
var schemaStatements = []string{
	createProjects,
	createDocuments,
	createSelections,
	createPrompts,
}
