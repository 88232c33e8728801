package staging

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Session is the staged-edit engine for one editing surface: it owns the
// working collection of entities, routes mutations through the lifecycle
// state machine, tracks dirtiness against the captured baseline, records
// undo/redo snapshots, and reconciles bulk commits against the adapter.
//
// One Session serves one context (for sero, one document). Construct it
// with its contracts and pass it by reference; there is no ambient global
// session. All operations are safe for concurrent use; CommitAll is the
// only operation that performs network calls.
type Session[T, C, U any] struct {
	mu        sync.RWMutex
	contextID string
	cmp       Comparator[T]
	tr        Transform[T, C, U]
	adapter   Adapter[T, C, U]
	mapper    Mapper[T, C, U]

	order    []string
	items    map[string]Entity[T]
	base     *baseline[T]
	hist     *history[T]
	inFlight map[string]bool
}

// Option configures a Session at construction.
type Option func(*sessionConfig)

type sessionConfig struct {
	historyDepth int
}

// WithHistoryDepth bounds the undo stack at n snapshots instead of
// DefaultHistoryDepth.
func WithHistoryDepth(n int) Option {
	return func(c *sessionConfig) { c.historyDepth = n }
}

// NewSession builds a Session scoped to contextID over the caller's
// contracts and store adapter.
func NewSession[T, C, U any](
	contextID string,
	cmp Comparator[T],
	tr Transform[T, C, U],
	adapter Adapter[T, C, U],
	opts ...Option,
) *Session[T, C, U] {
	cfg := sessionConfig{historyDepth: DefaultHistoryDepth}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Session[T, C, U]{
		contextID: contextID,
		cmp:       cmp,
		tr:        tr,
		adapter:   adapter,
		mapper:    NewMapper(cmp, tr),
		items:     make(map[string]Entity[T]),
		base:      newBaseline(cmp),
		hist:      newHistory[T](cfg.historyDepth),
		inFlight:  make(map[string]bool),
	}
}

// mutation is the closed set of working-collection commands. Every
// variant is matched exhaustively in apply; a new command cannot be added
// without being handled there.
type mutation interface {
	isMutation()
}

type createOp[T any] struct {
	id      string
	payload T
}

type updateOp[T any] struct {
	id    string
	patch func(T) T
}

type deleteOp struct{ id string }

type discardOp struct{ id string }

func (createOp[T]) isMutation() {}
func (updateOp[T]) isMutation() {}
func (deleteOp) isMutation()    {}
func (discardOp) isMutation()   {}

// apply routes a mutation through the state machine. On success the
// pre-mutation snapshot lands on the undo stack and the redo stack is
// cleared; on error the working collection is untouched. The caller must
// hold s.mu.
func (s *Session[T, C, U]) apply(m mutation) error {
	pre := s.cloneItemsLocked()
	var err error
	switch m := m.(type) {
	case createOp[T]:
		err = s.applyCreate(m)
	case updateOp[T]:
		err = s.applyUpdate(m)
	case deleteOp:
		err = s.applyDelete(m)
	case discardOp:
		err = s.applyDiscard(m)
	default:
		panic(fmt.Sprintf("staging: unhandled mutation %T", m))
	}
	if err != nil {
		return err
	}
	s.hist.Push(pre)
	return nil
}

// Load replaces the working collection with items fetched by the caller.
// Every item is wrapped as committed and persisted, its baseline is
// captured, and both history stacks are cleared. Items must carry unique,
// non-empty IDs.
func (s *Session[T, C, U]) Load(items []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := make([]string, 0, len(items))
	coll := make(map[string]Entity[T], len(items))
	for _, item := range items {
		id := s.cmp.ID(item)
		if id == "" {
			return fmt.Errorf("%w: loaded item without id", ErrValidation)
		}
		if _, ok := coll[id]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
		coll[id] = Entity[T]{
			ID:        id,
			Stage:     StageCommitted,
			Persisted: true,
			Payload:   s.cmp.Clone(item),
		}
		order = append(order, id)
	}

	s.order = order
	s.items = coll
	s.base.Reset()
	for id, e := range coll {
		s.base.Capture(id, e.Payload)
	}
	s.hist.Reset()
	return nil
}

// Reload fetches the context's records through the adapter and replaces
// the working collection with them, stages and all. Local staged edits
// are discarded. The fetch error, if any, is returned to the caller
// unreconciled.
func (s *Session[T, C, U]) Reload(ctx context.Context) error {
	recs, err := s.adapter.Fetch(ctx, s.contextID)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", s.contextID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order := make([]string, 0, len(recs))
	coll := make(map[string]Entity[T], len(recs))
	base := newBaseline(s.cmp)
	for _, rec := range recs {
		e := s.mapper.FromWire(rec)
		if _, ok := coll[e.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateID, e.ID)
		}
		coll[e.ID] = e
		order = append(order, e.ID)
		base.Capture(e.ID, e.Payload)
	}
	// Install only after the whole fetch validated; a failed reload must
	// leave the working collection and its baseline untouched.
	s.order = order
	s.items = coll
	s.base = base
	s.hist.Reset()
	return nil
}

// Create stages a new local entity and returns its ID. When the payload
// carries no ID a UUID v7 placeholder is generated; the server assigns
// the canonical ID at commit. The entity enters the collection as a
// staged creation: not persisted, dirty, no baseline entry.
func (s *Session[T, C, U]) Create(payload T) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.tr.Validate(payload); err != nil {
		return "", fmt.Errorf("%w: %v", ErrValidation, err)
	}
	id := s.cmp.ID(payload)
	if id == "" {
		id = newID()
	}
	if err := s.apply(createOp[T]{id: id, payload: s.cmp.Clone(payload)}); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Session[T, C, U]) applyCreate(m createOp[T]) error {
	if _, ok := s.items[m.id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, m.id)
	}
	s.items[m.id] = Entity[T]{
		ID:        m.id,
		Stage:     StageCreation,
		Persisted: false,
		Dirty:     true,
		Payload:   m.payload,
	}
	s.order = append(s.order, m.id)
	return nil
}

// Update applies patch to the entity's payload and runs the edit
// transition: a committed entity whose payload now differs from baseline
// becomes a staged edition; a staged edition whose payload is edited back
// to its baseline reverts to committed; a staged creation only changes
// payload. Updating an entity staged for deletion is illegal; discard the
// deletion first.
func (s *Session[T, C, U]) Update(id string, patch func(T) T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(updateOp[T]{id: id, patch: patch})
}

func (s *Session[T, C, U]) applyUpdate(m updateOp[T]) error {
	e, ok := s.items[m.id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, m.id)
	}
	if e.Stage == StageDeletion {
		return fmt.Errorf("%w: update of %s staged for deletion", ErrInvalidStage, m.id)
	}

	next := m.patch(s.cmp.Clone(e.Payload))
	if err := s.tr.Validate(next); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if got := s.cmp.ID(next); got != "" && got != m.id {
		return fmt.Errorf("%w: patch changed id from %s to %s", ErrValidation, m.id, got)
	}

	e.Payload = next
	e.Dirty = s.base.Dirty(m.id, next)
	e.DirtyFields = s.base.DiffFields(m.id, next)
	switch e.Stage {
	case StageCommitted:
		if e.Dirty {
			e.Stage = StageEdition
		}
	case StageEdition:
		if !e.Dirty {
			e.Stage = StageCommitted
		}
	case StageCreation, StageUnstaged:
		// Payload-only change; the stage stands.
	}
	s.items[m.id] = e
	return nil
}

// Delete stages an entity for deletion. A committed entity or staged
// edition keeps its payload and baseline for a possible revert; a staged
// creation never reached the server and is removed from the collection
// outright. Deleting an entity already staged for deletion is illegal.
func (s *Session[T, C, U]) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(deleteOp{id: id})
}

func (s *Session[T, C, U]) applyDelete(m deleteOp) error {
	e, ok := s.items[m.id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, m.id)
	}
	switch e.Stage {
	case StageCreation, StageUnstaged:
		s.removeLocked(m.id)
	case StageCommitted, StageEdition:
		e.Stage = StageDeletion
		s.items[m.id] = e
	case StageDeletion:
		return fmt.Errorf("%w: %s already staged for deletion", ErrInvalidStage, m.id)
	}
	return nil
}

// Discard reverts the staged change of one entity: a staged deletion
// returns to the stage its payload implies against baseline, a staged
// edition reverts its payload to the baseline entry, and a staged
// creation is removed from the collection. A committed entity has nothing
// to discard.
func (s *Session[T, C, U]) Discard(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(discardOp{id: id})
}

func (s *Session[T, C, U]) applyDiscard(m discardOp) error {
	e, ok := s.items[m.id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, m.id)
	}
	switch e.Stage {
	case StageDeletion:
		e.Dirty = s.base.Dirty(m.id, e.Payload)
		e.DirtyFields = s.base.DiffFields(m.id, e.Payload)
		if e.Dirty {
			e.Stage = StageEdition
		} else {
			e.Stage = StageCommitted
		}
		s.items[m.id] = e
	case StageEdition:
		entry, ok := s.base.Get(m.id)
		if !ok {
			return fmt.Errorf("%w: no baseline for %s", ErrInvalidStage, m.id)
		}
		e.Payload = entry
		e.Stage = StageCommitted
		e.Dirty = false
		e.DirtyFields = nil
		s.items[m.id] = e
	case StageCreation:
		s.removeLocked(m.id)
	default:
		return fmt.Errorf("%w: %s has no staged change", ErrInvalidStage, m.id)
	}
	return nil
}

// CaptureBaseline snapshots the current payload of every persisted entity
// as its new baseline and recomputes dirtiness against it. Stages are not
// altered; staged creations have no durable counterpart and keep no
// baseline entry.
func (s *Session[T, C, U]) CaptureBaseline() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, e := range s.items {
		if e.Stage == StageCreation || e.Stage == StageUnstaged {
			continue
		}
		s.base.Capture(id, e.Payload)
		e.Dirty = false
		e.DirtyFields = nil
		s.items[id] = e
	}
}

// Undo replaces the working collection with the most recent pre-mutation
// snapshot, re-deriving dirtiness against the current baseline. Returns
// false when there is nothing to undo.
func (s *Session[T, C, U]) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	restored, ok := s.hist.Undo(s.cloneItemsLocked())
	if !ok {
		return false
	}
	s.installLocked(restored)
	return true
}

// Redo reverses the most recent Undo. Returns false when there is
// nothing to redo.
func (s *Session[T, C, U]) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	restored, ok := s.hist.Redo(s.cloneItemsLocked())
	if !ok {
		return false
	}
	s.installLocked(restored)
	return true
}

// CanUndo reports whether an undo snapshot is available.
func (s *Session[T, C, U]) CanUndo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hist.CanUndo()
}

// CanRedo reports whether a redo snapshot is available.
func (s *Session[T, C, U]) CanRedo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hist.CanRedo()
}

// Get returns a copy of the entity with the given ID.
func (s *Session[T, C, U]) Get(id string) (Entity[T], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.items[id]
	if !ok {
		return Entity[T]{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.cloneEntity(e), nil
}

// Items returns the working collection in insertion order. Entities are
// copies; mutating them does not touch the session.
func (s *Session[T, C, U]) Items() []Entity[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cloneItemsLocked()
}

// Counts summarizes the working collection for UI badges.
type Counts struct {
	Creations int // entities staged for creation
	Editions  int // entities staged for edition
	Deletions int // entities staged for deletion
	Dirty     int // entities whose payload differs from baseline
}

// Counts returns derived collection counts.
func (s *Session[T, C, U]) Counts() Counts {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var c Counts
	for _, e := range s.items {
		switch e.Stage {
		case StageCreation:
			c.Creations++
		case StageEdition:
			c.Editions++
		case StageDeletion:
			c.Deletions++
		}
		if e.Dirty {
			c.Dirty++
		}
	}
	return c
}

// removeLocked drops an entity from the collection and its baseline
// entry. The caller must hold s.mu.
func (s *Session[T, C, U]) removeLocked(id string) {
	delete(s.items, id)
	s.base.Remove(id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// installLocked replaces the working collection with a history snapshot,
// recomputing dirtiness against the baseline as it stands now. The caller
// must hold s.mu.
func (s *Session[T, C, U]) installLocked(restored []Entity[T]) {
	order := make([]string, 0, len(restored))
	coll := make(map[string]Entity[T], len(restored))
	for _, e := range restored {
		e = s.cloneEntity(e)
		e.Dirty = s.base.Dirty(e.ID, e.Payload)
		e.DirtyFields = s.base.DiffFields(e.ID, e.Payload)
		coll[e.ID] = e
		order = append(order, e.ID)
	}
	s.order = order
	s.items = coll
}

func (s *Session[T, C, U]) cloneItemsLocked() []Entity[T] {
	out := make([]Entity[T], 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.cloneEntity(s.items[id]))
	}
	return out
}

func (s *Session[T, C, U]) cloneEntity(e Entity[T]) Entity[T] {
	e.Payload = s.cmp.Clone(e.Payload)
	if e.DirtyFields != nil {
		fields := make([]string, len(e.DirtyFields))
		copy(fields, e.DirtyFields)
		e.DirtyFields = fields
	}
	return e
}

// newID generates a UUID v7 placeholder for a staged creation.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fall back to UUID v4 if v7 generation fails.
		return uuid.New().String()
	}
	return id.String()
}
