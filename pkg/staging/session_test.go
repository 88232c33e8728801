package staging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCreate(t *testing.T) {
	s := newNoteSession(newFakeAdapter())

	id, err := s.Create(note{Title: "t1"})
	require.NoError(t, err)
	require.NotEmpty(t, id, "a payload without id gets a generated placeholder")

	e, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, StageCreation, e.Stage)
	assert.False(t, e.Persisted)
	assert.True(t, e.Dirty, "no baseline entry means dirty")
}

func TestSessionCreateKeepsCallerID(t *testing.T) {
	s := newNoteSession(newFakeAdapter())

	id, err := s.Create(note{ID: "c1", Title: "t1"})
	require.NoError(t, err)
	assert.Equal(t, "c1", id)

	_, err = s.Create(note{ID: "c1", Title: "again"})
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestSessionCreateValidates(t *testing.T) {
	s := newNoteSession(newFakeAdapter())

	_, err := s.Create(note{Title: ""})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, s.Items(), "a rejected create stages nothing")
}

func TestSessionLoad(t *testing.T) {
	s := newNoteSession(newFakeAdapter())

	err := s.Load([]note{
		{ID: "s1", Title: "first", X: 0.1},
		{ID: "s2", Title: "second", X: 0.2},
	})
	require.NoError(t, err)

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "s1", items[0].ID, "insertion order preserved")
	for _, e := range items {
		assert.Equal(t, StageCommitted, e.Stage)
		assert.True(t, e.Persisted)
		assert.False(t, e.Dirty)
	}
	assert.False(t, s.CanUndo(), "load is not a mutation")
}

func TestSessionLoadRejectsBadInput(t *testing.T) {
	s := newNoteSession(newFakeAdapter())

	err := s.Load([]note{{Title: "no id"}})
	assert.ErrorIs(t, err, ErrValidation)

	err = s.Load([]note{{ID: "s1", Title: "a"}, {ID: "s1", Title: "b"}})
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestSessionReload(t *testing.T) {
	ad := newFakeAdapter()
	ad.rows["s1"] = note{ID: "s1", Title: "remote", X: 0.3}
	s := newNoteSession(ad)
	_, err := s.Create(note{ID: "c1", Title: "local"})
	require.NoError(t, err)

	require.NoError(t, s.Reload(context.Background()))

	items := s.Items()
	require.Len(t, items, 1, "local staged edits are discarded")
	assert.Equal(t, "s1", items[0].ID)
	assert.Equal(t, StageCommitted, items[0].Stage)
	assert.False(t, s.CanUndo())
}

func TestSessionReloadFailureLeavesStateIntact(t *testing.T) {
	ad := newFakeAdapter()
	s := newNoteSession(ad)
	require.NoError(t, s.Load([]note{{ID: "e1", Title: "t", X: 0.1}}))

	ad.fetchRecs = []Record[note]{
		{ID: "dup", State: string(StageCommitted), Payload: note{ID: "dup", Title: "a"}},
		{ID: "dup", State: string(StageCommitted), Payload: note{ID: "dup", Title: "b"}},
	}
	err := s.Reload(context.Background())
	require.ErrorIs(t, err, ErrDuplicateID)

	// The old collection and its baseline survive the failed reload: an
	// identity patch on an untouched entity must not read as an edit.
	require.NoError(t, s.Update("e1", func(n note) note { return n }))
	e, err := s.Get("e1")
	require.NoError(t, err)
	assert.Equal(t, StageCommitted, e.Stage)
	assert.False(t, e.Dirty)

	// And a real edit is still revertible from the surviving baseline.
	require.NoError(t, s.Update("e1", func(n note) note { n.X = 0.9; return n }))
	require.NoError(t, s.Discard("e1"))
	e, err = s.Get("e1")
	require.NoError(t, err)
	assert.Equal(t, 0.1, e.Payload.X)
}

func TestSessionUpdateEditTransitions(t *testing.T) {
	s := newNoteSession(newFakeAdapter())
	require.NoError(t, s.Load([]note{{ID: "s1", Title: "t", X: 0.1}}))

	// Editing a committed entity stages an edition.
	err := s.Update("s1", func(n note) note { n.X = 0.5; return n })
	require.NoError(t, err)
	e, _ := s.Get("s1")
	assert.Equal(t, StageEdition, e.Stage)
	assert.True(t, e.Dirty)
	assert.Equal(t, []string{"X"}, e.DirtyFields)

	// Editing the payload back to baseline reverts to committed.
	err = s.Update("s1", func(n note) note { n.X = 0.1; return n })
	require.NoError(t, err)
	e, _ = s.Get("s1")
	assert.Equal(t, StageCommitted, e.Stage)
	assert.False(t, e.Dirty)
}

func TestSessionUpdateStagedCreationStays(t *testing.T) {
	s := newNoteSession(newFakeAdapter())
	id, err := s.Create(note{ID: "c1", Title: "t1"})
	require.NoError(t, err)

	err = s.Update(id, func(n note) note { n.Title = "t2"; return n })
	require.NoError(t, err)
	e, _ := s.Get(id)
	assert.Equal(t, StageCreation, e.Stage, "an uncommitted creation stays a creation")
	assert.True(t, e.Dirty)
	assert.Equal(t, "t2", e.Payload.Title)
}

func TestSessionUpdateErrors(t *testing.T) {
	s := newNoteSession(newFakeAdapter())
	require.NoError(t, s.Load([]note{{ID: "s1", Title: "t", X: 0.1}}))

	err := s.Update("missing", func(n note) note { return n })
	assert.ErrorIs(t, err, ErrNotFound)

	err = s.Update("s1", func(n note) note { n.Title = ""; return n })
	assert.ErrorIs(t, err, ErrValidation)
	e, _ := s.Get("s1")
	assert.Equal(t, "t", e.Payload.Title, "failed update leaves the payload untouched")

	err = s.Update("s1", func(n note) note { n.ID = "other"; return n })
	assert.ErrorIs(t, err, ErrValidation, "a patch must not change identity")

	require.NoError(t, s.Delete("s1"))
	err = s.Update("s1", func(n note) note { return n })
	assert.ErrorIs(t, err, ErrInvalidStage, "entities staged for deletion are not editable")
}

func TestSessionDeleteCommitted(t *testing.T) {
	s := newNoteSession(newFakeAdapter())
	require.NoError(t, s.Load([]note{{ID: "s1", Title: "t", X: 0.1}}))

	require.NoError(t, s.Delete("s1"))
	e, _ := s.Get("s1")
	assert.Equal(t, StageDeletion, e.Stage)
	assert.Equal(t, "t", e.Payload.Title, "payload retained for possible revert")

	err := s.Delete("s1")
	assert.ErrorIs(t, err, ErrInvalidStage)
}

func TestSessionDeleteStagedCreationRemoves(t *testing.T) {
	s := newNoteSession(newFakeAdapter())
	id, err := s.Create(note{ID: "c1", Title: "t1"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(id))
	_, err = s.Get(id)
	assert.ErrorIs(t, err, ErrNotFound, "a creation that never reached the server vanishes")
	assert.Empty(t, s.Items())
}

func TestSessionDiscardDeletion(t *testing.T) {
	s := newNoteSession(newFakeAdapter())
	require.NoError(t, s.Load([]note{{ID: "s1", Title: "t", X: 0.1}}))

	// Clean deletion discards back to committed.
	require.NoError(t, s.Delete("s1"))
	require.NoError(t, s.Discard("s1"))
	e, _ := s.Get("s1")
	assert.Equal(t, StageCommitted, e.Stage)

	// A deletion staged on top of an edit discards back to the edition.
	require.NoError(t, s.Update("s1", func(n note) note { n.X = 0.9; return n }))
	require.NoError(t, s.Delete("s1"))
	require.NoError(t, s.Discard("s1"))
	e, _ = s.Get("s1")
	assert.Equal(t, StageEdition, e.Stage)
	assert.True(t, e.Dirty)
}

func TestSessionDiscardEditionRevertsToBaseline(t *testing.T) {
	s := newNoteSession(newFakeAdapter())
	require.NoError(t, s.Load([]note{{ID: "s1", Title: "t", X: 0.1}}))
	require.NoError(t, s.Update("s1", func(n note) note { n.X = 0.9; return n }))

	require.NoError(t, s.Discard("s1"))
	e, _ := s.Get("s1")
	assert.Equal(t, StageCommitted, e.Stage)
	assert.Equal(t, 0.1, e.Payload.X)
	assert.False(t, e.Dirty)
}

func TestSessionDiscardErrors(t *testing.T) {
	s := newNoteSession(newFakeAdapter())
	require.NoError(t, s.Load([]note{{ID: "s1", Title: "t", X: 0.1}}))

	err := s.Discard("s1")
	assert.ErrorIs(t, err, ErrInvalidStage, "a clean committed entity has nothing to discard")

	err = s.Discard("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionDiscardStagedCreationRemoves(t *testing.T) {
	s := newNoteSession(newFakeAdapter())
	id, err := s.Create(note{ID: "c1", Title: "t1"})
	require.NoError(t, err)

	require.NoError(t, s.Discard(id))
	assert.Empty(t, s.Items())
}

func TestSessionCaptureBaseline(t *testing.T) {
	s := newNoteSession(newFakeAdapter())
	require.NoError(t, s.Load([]note{{ID: "s1", Title: "t", X: 0.1}}))
	require.NoError(t, s.Update("s1", func(n note) note { n.X = 0.7; return n }))
	_, err := s.Create(note{ID: "c1", Title: "new"})
	require.NoError(t, err)

	s.CaptureBaseline()

	e, _ := s.Get("s1")
	assert.False(t, e.Dirty, "current payload becomes the comparison basis")
	assert.Equal(t, StageEdition, e.Stage, "capture does not alter stages")

	c, _ := s.Get("c1")
	assert.True(t, c.Dirty, "creations have no durable counterpart, so no baseline entry")
}

func TestSessionUndoRedoRoundTrip(t *testing.T) {
	s := newNoteSession(newFakeAdapter())
	require.NoError(t, s.Load([]note{{ID: "s1", Title: "t", X: 0.1}}))

	// A sequence of mutations, then undo all, redo all.
	_, err := s.Create(note{ID: "c1", Title: "n1"})
	require.NoError(t, err)
	require.NoError(t, s.Update("s1", func(n note) note { n.X = 0.5; return n }))
	require.NoError(t, s.Update("c1", func(n note) note { n.Title = "n1b"; return n }))
	require.NoError(t, s.Delete("s1"))
	after := s.Items()

	const n = 4
	for i := 0; i < n; i++ {
		assert.True(t, s.Undo(), "undo %d", i)
	}
	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, StageCommitted, items[0].Stage)
	assert.Equal(t, 0.1, items[0].Payload.X)
	assert.False(t, s.Undo(), "undo stack exhausted")

	for i := 0; i < n; i++ {
		assert.True(t, s.Redo(), "redo %d", i)
	}
	assert.Equal(t, after, s.Items(), "redo restores the exact post-mutation collection")
	assert.False(t, s.Redo(), "redo stack exhausted")
}

func TestSessionMutationAfterUndoClearsRedo(t *testing.T) {
	s := newNoteSession(newFakeAdapter())
	_, err := s.Create(note{ID: "c1", Title: "a"})
	require.NoError(t, err)

	require.True(t, s.Undo())
	require.True(t, s.CanRedo())

	_, err = s.Create(note{ID: "c2", Title: "b"})
	require.NoError(t, err)
	assert.False(t, s.CanRedo())
}

func TestSessionCounts(t *testing.T) {
	s := newNoteSession(newFakeAdapter())
	require.NoError(t, s.Load([]note{
		{ID: "s1", Title: "a", X: 0.1},
		{ID: "s2", Title: "b", X: 0.2},
		{ID: "s3", Title: "c", X: 0.3},
	}))
	_, err := s.Create(note{ID: "c1", Title: "new"})
	require.NoError(t, err)
	require.NoError(t, s.Update("s1", func(n note) note { n.X = 0.9; return n }))
	require.NoError(t, s.Delete("s2"))

	c := s.Counts()
	assert.Equal(t, 1, c.Creations)
	assert.Equal(t, 1, c.Editions)
	assert.Equal(t, 1, c.Deletions)
	assert.Equal(t, 2, c.Dirty, "the creation and the edition differ from baseline")
}

func TestSessionGetReturnsCopy(t *testing.T) {
	s := newNoteSession(newFakeAdapter())
	require.NoError(t, s.Load([]note{{ID: "s1", Title: "t", X: 0.1}}))

	e, err := s.Get("s1")
	require.NoError(t, err)
	e.Payload.Title = "mutated"

	again, _ := s.Get("s1")
	assert.Equal(t, "t", again.Payload.Title)
}
