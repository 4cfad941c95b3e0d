package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/raoulx24/bckpcln/internal/retention"
	"github.com/raoulx24/bckpcln/internal/snapshot"
)

func TestPrinter_SplitsStreams(t *testing.T) {
	var out, diag bytes.Buffer
	p := NewPrinter(&out, &diag)

	p.Out("Max size: %s\n", "2 GiB")
	p.Err("Deletion of %q failed, ERROR : %s\n", "/x", "boom")

	if out.String() != "Max size: 2 GiB\n" {
		t.Errorf("stdout = %q", out.String())
	}
	if diag.String() != "Deletion of \"/x\" failed, ERROR : boom\n" {
		t.Errorf("stderr = %q", diag.String())
	}
}

func TestRenderFolder(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	f := retention.NewFolder("/backups", []snapshot.Snapshot{
		{Path: "/backups/2024-01-01_0000_00", Date: base, Size: 2048},
		{Path: "/backups/2024-01-02_0000_00", Date: base.Add(24 * time.Hour), Size: 1024},
		{Path: "/backups/2024-01-04_0000_00", Date: base.Add(72 * time.Hour), Size: 1500},
	})

	out := RenderFolder(f, base.Add(96*time.Hour))

	for _, want := range []string{
		`"/backups": 3 snapshots, 4 KiB`,
		"2024-01-02_0000_00",
		"size: 2 KiB (2,048 bytes)",
		"isolation: endpoint",
		"isolation: 24h0m0s",
		"date: 2024-01-01 00:00:00 (4 days ago)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}
