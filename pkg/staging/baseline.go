package staging

import (
	"reflect"
	"sort"
)

// baseline is the snapshot of the last known-committed payload per entity
// ID. Entries are clones, so later edits to the working collection never
// leak into the comparison basis. Local-only entities (pending creation)
// have no entry and are dirty by definition.
type baseline[T any] struct {
	cmp     Comparator[T]
	entries map[string]T
}

func newBaseline[T any](cmp Comparator[T]) *baseline[T] {
	return &baseline[T]{
		cmp:     cmp,
		entries: make(map[string]T),
	}
}

// Capture stores a clone of payload as the baseline for id, replacing any
// previous entry.
func (b *baseline[T]) Capture(id string, payload T) {
	b.entries[id] = b.cmp.Clone(payload)
}

// Remove drops the baseline entry for id, if any.
func (b *baseline[T]) Remove(id string) {
	delete(b.entries, id)
}

// Get returns a clone of the baseline entry for id.
func (b *baseline[T]) Get(id string) (T, bool) {
	entry, ok := b.entries[id]
	if !ok {
		var zero T
		return zero, false
	}
	return b.cmp.Clone(entry), true
}

// Dirty reports whether current differs from the baseline entry for id.
// An entity with no baseline entry is always dirty.
func (b *baseline[T]) Dirty(id string, current T) bool {
	entry, ok := b.entries[id]
	if !ok {
		return true
	}
	return !b.cmp.Equal(current, entry)
}

// DiffFields returns the names of exported payload fields that differ
// from the baseline entry, in sorted order. The comparison is shallow and
// advisory: it feeds display hints, never stage transitions. A payload
// that is not a struct (or pointer to struct) yields nil.
func (b *baseline[T]) DiffFields(id string, current T) []string {
	entry, ok := b.entries[id]
	if !ok {
		return nil
	}
	return shallowDiff(reflect.ValueOf(current), reflect.ValueOf(entry))
}

// Reset drops every entry.
func (b *baseline[T]) Reset() {
	b.entries = make(map[string]T)
}

func shallowDiff(a, bv reflect.Value) []string {
	for a.Kind() == reflect.Pointer {
		if a.IsNil() || bv.IsNil() {
			return nil
		}
		a, bv = a.Elem(), bv.Elem()
	}
	if a.Kind() != reflect.Struct || bv.Kind() != reflect.Struct {
		return nil
	}
	var fields []string
	t := a.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if !reflect.DeepEqual(a.Field(i).Interface(), bv.Field(i).Interface()) {
			fields = append(fields, f.Name)
		}
	}
	sort.Strings(fields)
	return fields
}
