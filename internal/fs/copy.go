package fs

import (
	"context"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
)

// copyTree recreates src at dst: directories, regular files and symlinks.
func copyTree(ctx context.Context, src, dst string) error {
	return filepath.WalkDir(src, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		switch {
		case d.IsDir():
			info, err := d.Info()
			if err != nil {
				return err
			}
			return os.MkdirAll(target, info.Mode().Perm()|0o700)
		case d.Type()&iofs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			return os.Symlink(link, target)
		case d.Type().IsRegular():
			return copyWithRetry(ctx, path, target)
		default:
			return fmt.Errorf("cannot copy special file %s", path)
		}
	})
}

// copyWithRetry copies one file and aborts if the source changes mid-copy.
func copyWithRetry(ctx context.Context, src, dst string) error {
	orig, err := os.Stat(src)
	if err != nil {
		return err
	}

	return retry(ctx, "copy", func() error {
		now, err := os.Stat(src)
		if err != nil {
			return err
		}

		if sourceChanged(orig, now) {
			return fmt.Errorf("source %s changed during copy", src)
		}

		return copyOnce(src, dst, orig.Mode().Perm())
	})
}

func sourceChanged(orig, now os.FileInfo) bool {
	return !os.SameFile(orig, now) ||
		now.ModTime().After(orig.ModTime()) ||
		now.Size() != orig.Size()
}

func copyOnce(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}

	return out.Sync()
}
