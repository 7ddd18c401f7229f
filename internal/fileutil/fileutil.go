package fileutil

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// LockSuffix is appended to a destination path to form its lock file.
const LockSuffix = ".lock"

const lockRetryDelay = 50 * time.Millisecond

// ErrLockTimeout reports that the destination lock could not be acquired
// before the context ended.
var ErrLockTimeout = errors.New("destination is locked by another writer")

// WithLock holds an exclusive flock on dest+LockSuffix while fn runs. The
// lock file is left in place so later writers contend on the same inode.
func WithLock(ctx context.Context, dest string, fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("ensure output directory: %w", err)
	}
	lock := flock.New(dest + LockSuffix)
	ok, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %w", ErrLockTimeout, ctxErr)
		}
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return ErrLockTimeout
	}
	defer func() {
		_ = lock.Unlock()
	}()
	return fn()
}

// WriteAtomic streams fill into a temp file next to dest and renames it over
// dest once fill succeeds. A failed write leaves dest untouched.
func WriteAtomic(dest string, mode os.FileMode, fill func(io.Writer) error) error {
	return ReplaceAtomic(dest, mode, func(tmpPath string) error {
		f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_TRUNC, mode)
		if err != nil {
			return err
		}
		bw := bufio.NewWriter(f)
		if err := fill(bw); err != nil {
			_ = f.Close()
			return err
		}
		if err := bw.Flush(); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Sync(); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	})
}

// ReplaceAtomic reserves an empty temp file next to dest, lets build populate
// it by path, and renames it over dest. Used by writers that manage their own
// file handle, such as database drivers.
func ReplaceAtomic(dest string, mode os.FileMode, build func(tmpPath string) error) error {
	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(dest)+"-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("create temp file: %w", err)
	}
	_ = os.Chmod(tmpPath, mode)

	if err := build(tmpPath); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", filepath.Base(dest), err)
	}
	_ = syncDir(dir)
	return nil
}

// syncDir makes the rename durable on POSIX filesystems.
func syncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
