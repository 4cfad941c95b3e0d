// Package fs performs the filesystem side-effects of evicting snapshots.
// It provides the FS interface used by the cleaner and its OS implementation.
package fs

import "context"

// FS removes or relocates snapshot directories.
type FS interface {
	// RemoveAll deletes path and everything below it.
	RemoveAll(ctx context.Context, path string) error

	// Move relocates the directory src to dst. dst must not exist yet;
	// its parent is created when missing.
	Move(ctx context.Context, src, dst string) error
}
