package output

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/disiqueira/gotree/v3"
	"github.com/dustin/go-humanize"

	"github.com/raoulx24/bckpcln/internal/retention"
	"github.com/raoulx24/bckpcln/internal/size"
	"github.com/raoulx24/bckpcln/internal/snapshot"
)

// RenderFolder draws f as a tree, one node per snapshot in date order.
// Dates are also shown relative to now.
func RenderFolder(f *retention.Folder, now time.Time) string {
	root := gotree.New(fmt.Sprintf("%q: %d snapshots, %s",
		f.Path, f.Len(), size.Format(f.Size())))

	for _, s := range f.Snapshots {
		node := root.Add(filepath.Base(s.Path))
		node.Add(fmt.Sprintf("date: %s (%s)",
			s.Date.Format(time.DateTime), humanize.RelTime(s.Date, now, "ago", "from now")))
		node.Add(fmt.Sprintf("size: %s (%s bytes)", size.Format(s.Size), humanize.Comma(int64(s.Size))))
		node.Add("isolation: " + Isolation(s))
	}

	return root.Print()
}

// Isolation renders the isolation of s, "endpoint" for the sentinel.
func Isolation(s snapshot.Snapshot) string {
	if s.IsEndpoint() {
		return "endpoint"
	}
	return s.Isolation.String()
}
