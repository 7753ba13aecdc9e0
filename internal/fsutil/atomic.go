// Package fsutil holds the small file helpers the ledger and config writers
// share: atomic replace, a rolling .bak copy and quarantine of unreadable
// files.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// QuarantineLayout is the timestamp suffix used for quarantined files.
const QuarantineLayout = "20060102-150405"

// WriteFileAtomic replaces path with data. The bytes go to a temp file in
// the same directory, which is synced and renamed over path, so readers see
// either the old or the new content.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	if err := writeAndClose(tmp, data, perm); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	if err := replace(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename %s -> %s: %w", tmpPath, path, err)
	}
	syncDir(dir)
	return nil
}

func writeAndClose(f *os.File, data []byte, perm os.FileMode) error {
	name := f.Name()
	if err := f.Chmod(perm); err != nil {
		_ = f.Close()
		return fmt.Errorf("chmod %s: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("fsync %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	return nil
}

// replace renames src over dst. Windows refuses to rename onto an existing
// file, so there the destination is removed first.
func replace(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil || runtime.GOOS != "windows" {
		return err
	}
	if _, statErr := os.Stat(dst); statErr != nil {
		return err
	}
	if rmErr := os.Remove(dst); rmErr != nil {
		return err
	}
	return os.Rename(src, dst)
}

// BestEffortBackup copies the current contents of path to path+".bak".
// Failures are ignored.
func BestEffortBackup(path string, perm os.FileMode) {
	data, err := os.ReadFile(path)
	if err != nil || len(data) == 0 {
		return
	}
	_ = WriteFileAtomic(BackupPath(path), data, perm)
}

// BackupPath is where BestEffortBackup keeps the copy of path.
func BackupPath(path string) string {
	return path + ".bak"
}

// Quarantine moves an unreadable file aside to path.corrupt.<stamp> and
// returns the new location.
func Quarantine(path string, at time.Time) (string, error) {
	dst := fmt.Sprintf("%s.corrupt.%s", path, at.Format(QuarantineLayout))
	if err := os.Rename(path, dst); err != nil {
		return "", err
	}
	return dst, nil
}

func syncDir(dir string) {
	f, err := os.Open(dir)
	if err != nil {
		return
	}
	defer f.Close()
	_ = f.Sync()
}
