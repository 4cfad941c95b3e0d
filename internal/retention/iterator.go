package retention

import (
	"iter"

	"github.com/raoulx24/bckpcln/internal/snapshot"
)

// Step is one eviction: the victim and the folder as it would be without it.
type Step struct {
	Victim    snapshot.Snapshot
	Remaining *Folder
}

// Iterator walks a folder in eviction order. It works on its own copy of
// the folder, so the source Folder is never modified.
//
// Every step clones the remaining snapshots into Step.Remaining, which makes
// a complete walk quadratic in the number of snapshots.
type Iterator struct {
	work *Folder
}

// Iterator returns a single-pass eviction iterator over a copy of f.
func (f *Folder) Iterator() *Iterator {
	return &Iterator{work: f.Clone()}
}

// Next pops the next victim. It returns false once every snapshot was yielded.
func (it *Iterator) Next() (Step, bool) {
	victim, ok := it.work.PopBestCandidate()
	if !ok {
		return Step{}, false
	}
	return Step{Victim: victim, Remaining: it.work.Clone()}, true
}

// InDeletionOrder yields each victim with the residual folder after its removal.
func (f *Folder) InDeletionOrder() iter.Seq2[snapshot.Snapshot, *Folder] {
	return func(yield func(snapshot.Snapshot, *Folder) bool) {
		it := f.Iterator()
		for {
			step, ok := it.Next()
			if !ok {
				return
			}
			if !yield(step.Victim, step.Remaining) {
				return
			}
		}
	}
}

// Plan lists the victims needed to bring f down to ceiling bytes, assuming
// every eviction succeeds. It is empty when f already fits.
func Plan(f *Folder, ceiling uint64) []snapshot.Snapshot {
	residual := f.TotalSize
	if residual <= ceiling {
		return nil
	}

	var victims []snapshot.Snapshot
	for victim := range f.InDeletionOrder() {
		victims = append(victims, victim)
		residual -= victim.Size
		if residual <= ceiling {
			break
		}
	}
	return victims
}
