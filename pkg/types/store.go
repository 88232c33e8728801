package types

// Store defines backend-agnostic access to the durable redaction store.
// Callers attach to a backend, use the repositories, and detach when done.
// Selection and prompt access goes through the staging adapter surface of
// the concrete backend, which is generic and therefore not part of this
// interface.
type Store interface {
	// Attach connects the Store to the backend described by config.
	// Creates the DataDir if it does not exist.
	// Returns ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls
	// succeed. After Detach, repository operations return ErrStoreDetached.
	Detach() error

	// Projects returns the project repository.
	Projects() ProjectsRepo

	// Documents returns the document repository.
	Documents() DocumentsRepo
}

// ProjectsRepo provides CRUD access to projects.
type ProjectsRepo interface {
	// Get retrieves the project with the given ID.
	// Returns ErrNotFound if no project exists with that ID.
	Get(id string) (*Project, error)

	// Put creates or updates a project. When p.ProjectID is empty a new
	// UUID v7 is generated. Returns the actual ID used.
	Put(p *Project) (string, error)

	// Delete removes a project and, by cascade, its documents,
	// selections, and prompts. Returns ErrNotFound if the ID is unknown.
	Delete(id string) error

	// List returns all projects ordered by creation time.
	List() ([]*Project, error)
}

// DocumentsRepo provides CRUD access to documents.
type DocumentsRepo interface {
	// Get retrieves the document with the given ID.
	// Returns ErrNotFound if no document exists with that ID.
	Get(id string) (*Document, error)

	// Put creates or updates a document. When d.DocumentID is empty a new
	// UUID v7 is generated. Returns the actual ID used.
	Put(d *Document) (string, error)

	// Delete removes a document and, by cascade, its selections and
	// prompts. Returns ErrNotFound if the ID is unknown.
	Delete(id string) error

	// ListByProject returns the documents of one project ordered by
	// creation time.
	ListByProject(projectID string) ([]*Document, error)
}
