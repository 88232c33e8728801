package staging

// DefaultHistoryDepth bounds the undo stack when the caller does not
// choose a depth.
const DefaultHistoryDepth = 50

// snapshot is an immutable capture of the full working collection, in
// iteration order, tagged with a monotonically increasing sequence number.
type snapshot[T any] struct {
	seq   uint64
	items []Entity[T]
}

// history holds the bounded undo and redo stacks. Undo and redo replace
// the collection wholesale rather than inverting individual edits, which
// stays correct no matter how many entities a mutation touched.
type history[T any] struct {
	depth int
	seq   uint64
	undo  []snapshot[T]
	redo  []snapshot[T]
}

func newHistory[T any](depth int) *history[T] {
	if depth <= 0 {
		depth = DefaultHistoryDepth
	}
	return &history[T]{depth: depth}
}

// Push records a pre-mutation snapshot on the undo stack and clears the
// redo stack. The oldest snapshot falls off once the stack is full.
func (h *history[T]) Push(items []Entity[T]) {
	h.seq++
	h.undo = append(h.undo, snapshot[T]{seq: h.seq, items: items})
	if len(h.undo) > h.depth {
		h.undo = h.undo[1:]
	}
	h.redo = nil
}

// Undo pops the most recent snapshot, pushing current onto the redo
// stack. Returns false when the undo stack is empty.
func (h *history[T]) Undo(current []Entity[T]) ([]Entity[T], bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	top := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.seq++
	h.redo = append(h.redo, snapshot[T]{seq: h.seq, items: current})
	return top.items, true
}

// Redo pops the most recent redo snapshot, pushing current back onto the
// undo stack. Returns false when the redo stack is empty.
func (h *history[T]) Redo(current []Entity[T]) ([]Entity[T], bool) {
	if len(h.redo) == 0 {
		return nil, false
	}
	top := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.seq++
	h.undo = append(h.undo, snapshot[T]{seq: h.seq, items: current})
	return top.items, true
}

// Reset drops both stacks. Used when the collection is replaced from the
// server or a commit makes the server the source of truth.
func (h *history[T]) Reset() {
	h.undo = nil
	h.redo = nil
}

// CanUndo reports whether an undo snapshot is available.
func (h *history[T]) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether a redo snapshot is available.
func (h *history[T]) CanRedo() bool { return len(h.redo) > 0 }
