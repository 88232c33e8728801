package staging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitAllEmpty(t *testing.T) {
	ad := newFakeAdapter()
	s := newNoteSession(ad)
	require.NoError(t, s.Load([]note{{ID: "s1", Title: "t", X: 0.1}}))

	report := s.CommitAll(context.Background())
	assert.True(t, report.Empty())
	assert.Equal(t, 0, ad.calls, "no staged items, no network activity")
}

func TestCommitAllCreation(t *testing.T) {
	ad := newFakeAdapter()
	s := newNoteSession(ad)
	id, err := s.Create(note{ID: "c1", Title: "t1", X: 0.2})
	require.NoError(t, err)

	report := s.CommitAll(context.Background())
	require.Len(t, report.Outcomes, 1)
	outcome := report.Outcomes[id]
	require.True(t, outcome.Succeeded())
	require.NotEmpty(t, outcome.NewID, "server assigns the canonical id")

	// The collection is re-keyed to the server id; the local placeholder
	// is gone.
	_, err = s.Get(id)
	assert.ErrorIs(t, err, ErrNotFound)
	e, err := s.Get(outcome.NewID)
	require.NoError(t, err)
	assert.Equal(t, StageCommitted, e.Stage)
	assert.True(t, e.Persisted)
	assert.False(t, e.Dirty, "baseline captured from the server response")
}

func TestCommitAllPartialFailure(t *testing.T) {
	ad := newFakeAdapter()
	ad.failUpdateID["e1"] = true
	s := newNoteSession(ad)
	require.NoError(t, s.Load([]note{{ID: "e1", Title: "edit me", X: 0.1}}))
	require.NoError(t, s.Update("e1", func(n note) note { n.X = 0.9; return n }))
	_, err := s.Create(note{ID: "c1", Title: "new", X: 0.2})
	require.NoError(t, err)

	report := s.CommitAll(context.Background())
	require.Len(t, report.Outcomes, 2)

	created := report.Outcomes["c1"]
	assert.True(t, created.Succeeded())

	failed := report.Outcomes["e1"]
	require.False(t, failed.Succeeded())
	assert.ErrorIs(t, failed.Err, errInjected)
	assert.Equal(t, OpUpdate, failed.Err.Op)

	// The failed item stays staged for retry; the succeeded one is
	// committed.
	e, _ := s.Get("e1")
	assert.Equal(t, StageEdition, e.Stage)
	assert.True(t, e.Dirty)
	c, _ := s.Get(created.NewID)
	assert.Equal(t, StageCommitted, c.Stage)
}

func TestCommitAllRetryAfterFailure(t *testing.T) {
	ad := newFakeAdapter()
	ad.failUpdateID["e1"] = true
	s := newNoteSession(ad)
	require.NoError(t, s.Load([]note{{ID: "e1", Title: "t", X: 0.1}}))
	require.NoError(t, s.Update("e1", func(n note) note { n.X = 0.9; return n }))

	report := s.CommitAll(context.Background())
	require.False(t, report.Outcomes["e1"].Succeeded())

	// Clearing the injected failure lets a second commit resolve the
	// still-staged item.
	ad.failUpdateID["e1"] = false
	report = s.CommitAll(context.Background())
	require.True(t, report.Outcomes["e1"].Succeeded())
	e, _ := s.Get("e1")
	assert.Equal(t, StageCommitted, e.Stage)
	assert.False(t, e.Dirty)
}

func TestCommitAllDeletion(t *testing.T) {
	ad := newFakeAdapter()
	s := newNoteSession(ad)
	require.NoError(t, s.Load([]note{{ID: "s1", Title: "t", X: 0.1}}))
	require.NoError(t, s.Delete("s1"))

	report := s.CommitAll(context.Background())
	require.True(t, report.Outcomes["s1"].Succeeded())
	assert.Equal(t, OpDelete, report.Outcomes["s1"].Op)

	_, err := s.Get("s1")
	assert.ErrorIs(t, err, ErrNotFound, "a resolved deletion leaves the collection")
	assert.Empty(t, ad.rows)
}

func TestCommitAllFailedDeletionStaysStaged(t *testing.T) {
	ad := newFakeAdapter()
	ad.failDeleteID["s1"] = true
	s := newNoteSession(ad)
	require.NoError(t, s.Load([]note{{ID: "s1", Title: "t", X: 0.1}}))
	require.NoError(t, s.Delete("s1"))

	report := s.CommitAll(context.Background())
	require.False(t, report.Outcomes["s1"].Succeeded())

	e, _ := s.Get("s1")
	assert.Equal(t, StageDeletion, e.Stage)
}

func TestCommitAllDeletedCreationNeverDispatched(t *testing.T) {
	ad := newFakeAdapter()
	s := newNoteSession(ad)
	id, err := s.Create(note{ID: "c1", Title: "t1"})
	require.NoError(t, err)
	require.NoError(t, s.Delete(id))

	report := s.CommitAll(context.Background())
	assert.True(t, report.Empty(), "a deleted creation produces no commit entry")
	assert.Equal(t, 0, ad.calls)
}

func TestCommitAllValidationFailureSkipsNetwork(t *testing.T) {
	ad := newFakeAdapter()
	s := newNoteSession(ad)
	// Load a valid row, then stage an edit and strip the title past the
	// Update validation by mutating through the patch of a second field.
	require.NoError(t, s.Load([]note{{ID: "s1", Title: "t", X: 0.1}}))
	require.NoError(t, s.Update("s1", func(n note) note { n.X = 0.9; return n }))

	// Simulate a contract whose commit-time validation rejects the item.
	s.items["s1"] = func() Entity[note] {
		e := s.items["s1"]
		e.Payload.Title = ""
		return e
	}()

	report := s.CommitAll(context.Background())
	require.False(t, report.Outcomes["s1"].Succeeded())
	assert.ErrorIs(t, report.Outcomes["s1"].Err, ErrValidation)
	assert.Equal(t, 0, ad.calls, "rejected payloads never reach the wire")

	e, _ := s.Get("s1")
	assert.Equal(t, StageEdition, e.Stage, "the item stays staged")
}

func TestCommitAllClearsHistory(t *testing.T) {
	ad := newFakeAdapter()
	s := newNoteSession(ad)
	_, err := s.Create(note{ID: "c1", Title: "t1"})
	require.NoError(t, err)
	require.True(t, s.CanUndo())

	s.CommitAll(context.Background())
	assert.False(t, s.CanUndo(), "committed changes are not locally reversible")
	assert.False(t, s.CanRedo())
}

func TestCommitAllInFlightGuard(t *testing.T) {
	ad := newFakeAdapter()
	ad.started = make(chan string, 1)
	ad.block = make(chan struct{})
	s := newNoteSession(ad)
	require.NoError(t, s.Load([]note{{ID: "e1", Title: "t", X: 0.1}}))
	require.NoError(t, s.Update("e1", func(n note) note { n.X = 0.9; return n }))

	done := make(chan Report, 1)
	go func() { done <- s.CommitAll(context.Background()) }()
	<-ad.started // the update call for e1 is now in flight

	// A second commit must not issue another call for the same id; the
	// item reports failed with ErrInFlight instead.
	second := s.CommitAll(context.Background())
	require.Contains(t, second.Outcomes, "e1")
	assert.False(t, second.Outcomes["e1"].Succeeded())
	assert.ErrorIs(t, second.Outcomes["e1"].Err, ErrInFlight)
	assert.Equal(t, 1, ad.calls, "no second call dispatched for e1")

	close(ad.block)
	first := <-done
	require.True(t, first.Outcomes["e1"].Succeeded())
	e, _ := s.Get("e1")
	assert.Equal(t, StageCommitted, e.Stage)
}

func TestCommitAllSnapshotIgnoresConcurrentEdit(t *testing.T) {
	ad := newFakeAdapter()
	ad.started = make(chan string, 1)
	ad.block = make(chan struct{})
	s := newNoteSession(ad)
	require.NoError(t, s.Load([]note{{ID: "e1", Title: "t", X: 0.1}}))
	require.NoError(t, s.Update("e1", func(n note) note { n.X = 0.5; return n }))

	done := make(chan Report, 1)
	go func() { done <- s.CommitAll(context.Background()) }()
	<-ad.started

	// Mutating while the commit is in flight does not alter the request
	// payload, which was snapshotted at commit start.
	require.NoError(t, s.Update("e1", func(n note) note { n.X = 0.8; return n }))

	close(ad.block)
	<-done
	assert.Equal(t, 0.5, ad.rows["e1"].X, "the in-flight request carried the snapshot")
}
