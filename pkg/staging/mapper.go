package staging

// Mapper holds the pure conversion functions between the wire
// representation and the lifecycle-tagged local one. All four functions
// are side-effect free; FromWire and Merge are idempotent.
type Mapper[T, C, U any] struct {
	cmp Comparator[T]
	tr  Transform[T, C, U]
}

// NewMapper builds a Mapper over the given contracts.
func NewMapper[T, C, U any](cmp Comparator[T], tr Transform[T, C, U]) Mapper[T, C, U] {
	return Mapper[T, C, U]{cmp: cmp, tr: tr}
}

// FromWire converts a server record into a local entity. The server's
// state string maps onto the Stage enum (unknown states load as
// committed), the entity is persisted by definition, and clean: the
// record IS the canonical state.
func (m Mapper[T, C, U]) FromWire(rec Record[T]) Entity[T] {
	return Entity[T]{
		ID:        rec.ID,
		Stage:     ParseStage(rec.State),
		Persisted: true,
		Dirty:     false,
		Payload:   m.tr.FromWire(rec.Payload),
	}
}

// ToCreate produces the create payload for a staged creation. Lifecycle
// metadata and the local placeholder ID never reach the wire; the
// Transform extracts exactly the fields the create endpoint accepts.
func (m Mapper[T, C, U]) ToCreate(e Entity[T]) C {
	return m.tr.ForCreate(e.Payload)
}

// ToUpdate produces the update request for a staged entity. The local
// stage travels as the server-recognized state string so a store that
// persists drafts can track it; no other lifecycle metadata leaks.
func (m Mapper[T, C, U]) ToUpdate(e Entity[T]) UpdateRequest[U] {
	return UpdateRequest[U]{
		State: string(e.Stage),
		Attrs: m.tr.ForUpdate(e.Payload),
	}
}

// Merge folds a server response back into a local entity: the server's
// payload and state become canonical, the entity is persisted and clean,
// and the advisory dirty-field hints are cleared. Applying Merge twice
// with the same record yields the same entity as applying it once.
func (m Mapper[T, C, U]) Merge(local Entity[T], rec Record[T]) Entity[T] {
	local.ID = rec.ID
	local.Stage = ParseStage(rec.State)
	local.Persisted = true
	local.Dirty = false
	local.DirtyFields = nil
	local.Payload = m.tr.FromWire(rec.Payload)
	return local
}
