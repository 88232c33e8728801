package staging

// Op is the kind of store call dispatched for one item during commit.
type Op string

// Commit operations.
const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Outcome records how one item's commit call resolved. Err is nil on
// success. For creates the server may assign a new canonical ID; NewID
// then carries it and the working collection is re-keyed accordingly.
type Outcome struct {
	ID    string
	Op    Op
	NewID string
	Err   *CommitItemError
}

// Succeeded reports whether the item's call resolved without error.
func (o Outcome) Succeeded() bool {
	return o.Err == nil
}

// Report enumerates the per-item outcomes of one CommitAll call, keyed by
// the item's ID at commit start.
type Report struct {
	Outcomes map[string]Outcome
}

// Empty reports whether the commit dispatched no calls at all.
func (r Report) Empty() bool {
	return len(r.Outcomes) == 0
}

// Succeeded returns the IDs of items whose calls resolved successfully.
func (r Report) Succeeded() []string {
	var ids []string
	for id, o := range r.Outcomes {
		if o.Succeeded() {
			ids = append(ids, id)
		}
	}
	return ids
}

// Failed returns the IDs of items whose calls failed. Those items remain
// staged in the session.
func (r Report) Failed() []string {
	var ids []string
	for id, o := range r.Outcomes {
		if !o.Succeeded() {
			ids = append(ids, id)
		}
	}
	return ids
}
