package staging

import "context"

// Comparator supplies identity, equality, and copying for a payload type.
// Equal decides dirtiness and therefore which edits stage; it should
// compare caller-owned fields and ignore server-owned ones such as
// timestamps. Clone must return a copy sharing no mutable state with its
// argument, since baselines and history snapshots outlive the value they
// were taken from.
type Comparator[T any] interface {
	ID(item T) string
	Equal(a, b T) bool
	Clone(item T) T
}

// Transform maps between the payload type and its wire shapes.
// Validate runs before any network call is attempted; a non-nil result
// keeps the item off the wire.
type Transform[T, C, U any] interface {
	ForCreate(item T) C
	ForUpdate(item T) U
	FromWire(raw T) T
	Validate(item T) error
}

// Record is the wire envelope for one entity: the server's ID and state
// string alongside the domain payload.
type Record[T any] struct {
	ID      string
	State   string
	Payload T
}

// UpdateRequest is the wire envelope for an update call. State carries the
// client-side stage in server-recognized form, so a store that persists
// drafts can track it.
type UpdateRequest[U any] struct {
	State string
	Attrs U
}

// Adapter is the abstract remote store a session commits against.
// Implementations own transport, serialization, and retries; the session
// only sees Records and errors.
type Adapter[T, C, U any] interface {
	// Fetch returns every record in the given context (for sero, the
	// document the entities belong to).
	Fetch(ctx context.Context, contextID string) ([]Record[T], error)

	// Create persists a new entity and returns the canonical record,
	// including the server-assigned ID.
	Create(ctx context.Context, contextID string, attrs C) (Record[T], error)

	// Update persists changed attributes for an existing entity and
	// returns the canonical record.
	Update(ctx context.Context, id string, req UpdateRequest[U]) (Record[T], error)

	// Delete removes an entity.
	Delete(ctx context.Context, id string) error
}
