package staging

// Entity wraps a domain payload with its edit-lifecycle metadata. The
// metadata never lives on the payload itself; the payload stays exactly
// what the caller's Comparator and Transform understand.
type Entity[T any] struct {
	// ID is the session-local identity of the entity. For entities loaded
	// from the server it equals the server ID; for staged creations it is
	// a locally generated placeholder until commit.
	ID string

	// Stage is the current lifecycle stage.
	Stage Stage

	// Persisted is true iff the entity currently has a durable
	// server-side counterpart.
	Persisted bool

	// Dirty is true iff the payload differs from the baseline entry for
	// this ID, or no baseline entry exists.
	Dirty bool

	// DirtyFields names the payload fields that differ from baseline.
	// Advisory only, for display hints; no transition depends on it.
	DirtyFields []string

	// Payload is the domain value.
	Payload T
}
