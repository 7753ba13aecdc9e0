package fsutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWriteFileAtomic_ReplacesContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sheet.json")

	if err := WriteFileAtomic(path, []byte("one"), 0600); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := WriteFileAtomic(path, []byte("two"), 0600); err != nil {
		t.Fatalf("second write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "two" {
		t.Errorf("content = %q, want two", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestWriteFileAtomic_MissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "sheet.json")
	if err := WriteFileAtomic(path, []byte("x"), 0600); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestBestEffortBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.json")

	BestEffortBackup(path, 0600)
	if _, err := os.Stat(BackupPath(path)); !os.IsNotExist(err) {
		t.Fatalf("backup of a missing file should not exist, stat err = %v", err)
	}

	if err := os.WriteFile(path, []byte("v1"), 0600); err != nil {
		t.Fatal(err)
	}
	BestEffortBackup(path, 0600)

	data, err := os.ReadFile(BackupPath(path))
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(data) != "v1" {
		t.Errorf("backup = %q, want v1", data)
	}
}

func TestQuarantine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.json")
	if err := os.WriteFile(path, []byte("{broken"), 0600); err != nil {
		t.Fatal(err)
	}

	at := time.Date(2026, 10, 19, 8, 30, 5, 0, time.Local)
	dst, err := Quarantine(path, at)
	if err != nil {
		t.Fatalf("Quarantine: %v", err)
	}
	if want := path + ".corrupt.20261019-083005"; dst != want {
		t.Errorf("dst = %q, want %q", dst, want)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("original still present")
	}
	if data, _ := os.ReadFile(dst); string(data) != "{broken" {
		t.Errorf("quarantined content = %q", data)
	}

	if _, err := Quarantine(path, at); err == nil {
		t.Error("quarantining a missing file should fail")
	}
}
