package staging

import (
	"context"
	"fmt"
	"sync"
)

// commitCall is one item's pending store call, snapshotted at commit
// start. Mutations made while the call is in flight do not alter it.
type commitCall[T any] struct {
	id     string
	op     Op
	entity Entity[T]
}

// commitResult is the resolution of one dispatched call.
type commitResult[T any] struct {
	id  string
	op  Op
	rec Record[T]
	err error
}

// CommitAll sends every staged change to the store and reconciles the
// responses: staged creations become create calls, staged editions update
// calls, staged deletions delete calls. Calls are dispatched concurrently
// and independently; one item's failure neither blocks nor rolls back any
// other item, because the store has no multi-item transaction primitive.
//
// Successful items transition per the lifecycle rules (creations and
// editions merge the canonical server record and become committed,
// deletions leave the collection); failed items keep their staged stage
// for retry and appear in the report wrapped in a CommitItemError. Items
// whose payload fails validation are reported failed without a network
// call. An item with a call still in flight from a previous commit is
// not dispatched again; it reports failed with ErrInFlight and resolves
// through the earlier commit's reconciliation.
//
// The report is keyed by each item's ID at commit start. A commit with
// zero staged items returns an empty report without network activity.
// Commit is not undoable: both history stacks are cleared.
func (s *Session[T, C, U]) CommitAll(ctx context.Context) Report {
	report := Report{Outcomes: make(map[string]Outcome)}

	s.mu.Lock()
	var calls []commitCall[T]
	for _, id := range s.order {
		e := s.items[id]
		if !e.Stage.Staged() {
			continue
		}
		op := opForStage(e.Stage)
		if s.inFlight[id] {
			report.Outcomes[id] = Outcome{
				ID: id,
				Op: op,
				Err: &CommitItemError{ID: id, Op: op, Err: ErrInFlight},
			}
			continue
		}
		if e.Stage != StageDeletion {
			if err := s.tr.Validate(e.Payload); err != nil {
				report.Outcomes[id] = Outcome{
					ID: id,
					Op: op,
					Err: &CommitItemError{
						ID:  id,
						Op:  op,
						Err: fmt.Errorf("%w: %v", ErrValidation, err),
					},
				}
				continue
			}
		}
		s.inFlight[id] = true
		calls = append(calls, commitCall[T]{id: id, op: op, entity: s.cloneEntity(e)})
	}
	s.mu.Unlock()

	if len(calls) == 0 && len(report.Outcomes) == 0 {
		return report
	}

	results := make([]commitResult[T], len(calls))
	var wg sync.WaitGroup
	for i, call := range calls {
		wg.Add(1)
		go func(i int, call commitCall[T]) {
			defer wg.Done()
			res := commitResult[T]{id: call.id, op: call.op}
			switch call.op {
			case OpCreate:
				res.rec, res.err = s.adapter.Create(ctx, s.contextID, s.mapper.ToCreate(call.entity))
			case OpUpdate:
				res.rec, res.err = s.adapter.Update(ctx, call.id, s.mapper.ToUpdate(call.entity))
			case OpDelete:
				res.err = s.adapter.Delete(ctx, call.id)
			}
			results[i] = res
		}(i, call)
	}
	wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, res := range results {
		delete(s.inFlight, res.id)
		if res.err != nil {
			report.Outcomes[res.id] = Outcome{
				ID: res.id,
				Op: res.op,
				Err: &CommitItemError{ID: res.id, Op: res.op, Err: res.err},
			}
			continue
		}
		outcome := Outcome{ID: res.id, Op: res.op}
		switch res.op {
		case OpCreate, OpUpdate:
			if local, ok := s.items[res.id]; ok {
				merged := s.mapper.Merge(local, res.rec)
				if res.rec.ID != res.id {
					outcome.NewID = res.rec.ID
					s.rekeyLocked(res.id, res.rec.ID)
				}
				s.items[merged.ID] = merged
				s.base.Capture(merged.ID, merged.Payload)
			}
		case OpDelete:
			s.removeLocked(res.id)
		}
		report.Outcomes[res.id] = outcome
	}
	// The server is the source of truth now; pre-commit snapshots must
	// not be restorable.
	s.hist.Reset()
	return report
}

// opForStage maps a staged stage to the store call it requires.
func opForStage(stage Stage) Op {
	switch stage {
	case StageEdition:
		return OpUpdate
	case StageDeletion:
		return OpDelete
	default:
		return OpCreate
	}
}

// rekeyLocked moves an entity to the server-assigned ID, keeping its
// position in iteration order. The caller must hold s.mu.
func (s *Session[T, C, U]) rekeyLocked(oldID, newID string) {
	delete(s.items, oldID)
	s.base.Remove(oldID)
	for i, id := range s.order {
		if id == oldID {
			s.order[i] = newID
			break
		}
	}
}
