package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// OSFS is the FS backed by the local filesystem.
type OSFS struct{}

func New() *OSFS {
	return &OSFS{}
}

func (o *OSFS) RemoveAll(ctx context.Context, path string) error {
	return retry(ctx, "remove", func() error {
		return os.RemoveAll(path)
	})
}

func (o *OSFS) Move(ctx context.Context, src, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		return fmt.Errorf("move destination %s: %w", dst, os.ErrExist)
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("creating move target: %w", err)
	}

	err := retry(ctx, "rename", func() error {
		return os.Rename(src, dst)
	})
	if err == nil || !isCrossDevice(err) {
		return err
	}

	// Different filesystems: copy, then drop the source.
	if err := copyTree(ctx, src, dst); err != nil {
		_ = os.RemoveAll(dst)
		return fmt.Errorf("copying %s: %w", src, err)
	}
	return o.RemoveAll(ctx, src)
}
