// Package retention decides which snapshots to evict from a backup folder.
//
// Snapshots are evicted by increasing isolation: the snapshot whose nearest
// neighbor in time is closest goes first, because that neighbor still covers
// its era. Ties go to the older snapshot. The earliest and latest snapshots
// carry the sentinel isolation and are evicted last, so the survivors keep
// spanning the whole original time range while getting sparser.
package retention

import (
	"cmp"
	"slices"
	"strings"

	"github.com/raoulx24/bckpcln/internal/logging"
	"github.com/raoulx24/bckpcln/internal/snapshot"
)

// Folder is a set of snapshots sorted by date with consistent isolations.
type Folder struct {
	Path      string
	Snapshots []snapshot.Snapshot

	// TotalSize is the aggregate size when the folder was built. It is kept
	// unchanged in the residual folders produced by an Iterator.
	TotalSize uint64
}

// NewFolder sorts a copy of snaps by date, computes isolations and sums sizes.
func NewFolder(path string, snaps []snapshot.Snapshot) *Folder {
	sorted := slices.Clone(snaps)
	slices.SortFunc(sorted, byDate)
	UpdateIsolations(sorted)

	var total uint64
	for _, s := range sorted {
		total += s.Size
	}

	return &Folder{
		Path:      path,
		Snapshots: sorted,
		TotalSize: total,
	}
}

// Load discovers the snapshots under dir and wraps them into a Folder.
func Load(dir string, log logging.Logger) (*Folder, error) {
	snaps, err := snapshot.Scan(dir, log)
	if err != nil {
		return nil, err
	}
	f := NewFolder(dir, snaps)
	for _, s := range f.Snapshots {
		log.Debug("snapshot found", "snapshot", s)
	}
	return f, nil
}

// Clone returns a deep copy of f.
func (f *Folder) Clone() *Folder {
	return &Folder{
		Path:      f.Path,
		Snapshots: slices.Clone(f.Snapshots),
		TotalSize: f.TotalSize,
	}
}

// Len returns the number of snapshots currently in the folder.
func (f *Folder) Len() int {
	return len(f.Snapshots)
}

// Size sums the sizes of the snapshots currently in the folder.
func (f *Folder) Size() uint64 {
	var n uint64
	for _, s := range f.Snapshots {
		n += s.Size
	}
	return n
}

// UpdateIsolations recomputes the isolation of every snapshot in snaps,
// which must be sorted by date. Both ends get snapshot.MaxIsolation.
func UpdateIsolations(snaps []snapshot.Snapshot) {
	last := len(snaps) - 1
	for i := range snaps {
		if i == 0 || i == last {
			snaps[i].Isolation = snapshot.MaxIsolation
			continue
		}
		before := snaps[i].Date.Sub(snaps[i-1].Date)
		after := snaps[i+1].Date.Sub(snaps[i].Date)
		snaps[i].Isolation = min(before, after)
	}
}

// PopBestCandidate removes the next snapshot to evict from f and refreshes
// the isolations of the remaining ones. It returns false when f is empty.
func (f *Folder) PopBestCandidate() (snapshot.Snapshot, bool) {
	if len(f.Snapshots) == 0 {
		return snapshot.Snapshot{}, false
	}

	best := 0
	for i := 1; i < len(f.Snapshots); i++ {
		if byEvictionPreference(f.Snapshots[i], f.Snapshots[best]) < 0 {
			best = i
		}
	}

	victim := f.Snapshots[best]
	f.Snapshots = slices.Delete(f.Snapshots, best, best+1)
	UpdateIsolations(f.Snapshots)

	return victim, true
}

// byDate orders by date, then by path so equal dates stay deterministic.
func byDate(a, b snapshot.Snapshot) int {
	if c := a.Date.Compare(b.Date); c != 0 {
		return c
	}
	return strings.Compare(a.Path, b.Path)
}

// byEvictionPreference puts the preferred victim first.
func byEvictionPreference(a, b snapshot.Snapshot) int {
	if c := cmp.Compare(a.Isolation, b.Isolation); c != 0 {
		return c
	}
	return byDate(a, b)
}
