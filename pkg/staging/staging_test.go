// Shared test fixtures for the staging package: a small note payload, its
// contracts, and an in-memory fake store adapter with failure hooks.
package staging

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// note is the payload type the staging tests run the engine over.
type note struct {
	ID    string
	Title string
	X     float64
}

type noteAttrs struct {
	Title string
	X     float64
}

type noteComparator struct{}

func (noteComparator) ID(n note) string { return n.ID }

func (noteComparator) Equal(a, b note) bool {
	return a.Title == b.Title && a.X == b.X
}

func (noteComparator) Clone(n note) note { return n }

var errTitleRequired = errors.New("title required")

type noteTransform struct{}

func (noteTransform) ForCreate(n note) noteAttrs {
	return noteAttrs{Title: n.Title, X: n.X}
}

func (noteTransform) ForUpdate(n note) noteAttrs {
	return noteAttrs{Title: n.Title, X: n.X}
}

func (noteTransform) FromWire(raw note) note { return raw }

func (noteTransform) Validate(n note) error {
	if n.Title == "" {
		return errTitleRequired
	}
	return nil
}

// fakeAdapter is an in-memory store. Failures are injected per title
// (creates carry no ID) or per ID (updates and deletes).
type fakeAdapter struct {
	mu      sync.Mutex
	seq     int
	rows    map[string]note
	calls   int
	started chan string   // receives an id/title when a call begins, if set
	block   chan struct{} // calls wait on this before resolving, if set

	failCreateTitle map[string]bool
	failUpdateID    map[string]bool
	failDeleteID    map[string]bool

	// fetchRecs, when set, is returned verbatim by Fetch instead of the
	// rows map. Lets tests hand the session malformed record sets.
	fetchRecs []Record[note]
}

var errInjected = errors.New("injected store failure")

func newFakeAdapter() *fakeAdapter {
	return &fakeAdapter{
		rows:            make(map[string]note),
		failCreateTitle: make(map[string]bool),
		failUpdateID:    make(map[string]bool),
		failDeleteID:    make(map[string]bool),
	}
}

func (f *fakeAdapter) announce(key string) {
	if f.started != nil {
		f.started <- key
	}
	if f.block != nil {
		<-f.block
	}
}

func (f *fakeAdapter) countCall() {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
}

func (f *fakeAdapter) Fetch(ctx context.Context, contextID string) ([]Record[note], error) {
	f.countCall()
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchRecs != nil {
		return f.fetchRecs, nil
	}
	var recs []Record[note]
	for id, n := range f.rows {
		recs = append(recs, Record[note]{ID: id, State: string(StageCommitted), Payload: n})
	}
	return recs, nil
}

func (f *fakeAdapter) Create(ctx context.Context, contextID string, attrs noteAttrs) (Record[note], error) {
	f.countCall()
	f.announce(attrs.Title)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreateTitle[attrs.Title] {
		return Record[note]{}, errInjected
	}
	f.seq++
	id := fmt.Sprintf("srv-%d", f.seq)
	n := note{ID: id, Title: attrs.Title, X: attrs.X}
	f.rows[id] = n
	return Record[note]{ID: id, State: string(StageCommitted), Payload: n}, nil
}

func (f *fakeAdapter) Update(ctx context.Context, id string, req UpdateRequest[noteAttrs]) (Record[note], error) {
	f.countCall()
	f.announce(id)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdateID[id] {
		return Record[note]{}, errInjected
	}
	n := note{ID: id, Title: req.Attrs.Title, X: req.Attrs.X}
	f.rows[id] = n
	return Record[note]{ID: id, State: string(StageCommitted), Payload: n}, nil
}

func (f *fakeAdapter) Delete(ctx context.Context, id string) error {
	f.countCall()
	f.announce(id)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDeleteID[id] {
		return errInjected
	}
	delete(f.rows, id)
	return nil
}

// newNoteSession builds a session over the fake adapter.
func newNoteSession(ad *fakeAdapter, opts ...Option) *Session[note, noteAttrs, noteAttrs] {
	return NewSession[note, noteAttrs, noteAttrs]("doc-1", noteComparator{}, noteTransform{}, ad, opts...)
}
