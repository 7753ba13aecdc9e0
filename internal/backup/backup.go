// Package backup snapshots the day sheets of a daylog data directory and
// restores them. Each snapshot is a timestamped directory under
// <data_dir>/backups holding copies of the sheet files and a manifest.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"daylog/internal/fsutil"
	"daylog/internal/storage"
	"daylog/internal/timesheet"
)

const (
	ManifestVersion = "1.0"
	ManifestFile    = "manifest.json"
	BackupsDir      = "backups"

	nameLayout = "2006-01-02_150405"
	// Attempts at a free name when two snapshots land in the same millisecond.
	createAttempts = 1000
)

// Manager creates, lists, restores and prunes snapshots for one store.
type Manager struct {
	store      *storage.Storage
	backupDir  string
	appVersion string
}

// Manifest describes a snapshot.
type Manifest struct {
	Version    string         `json:"version"`
	CreatedAt  time.Time      `json:"created_at"`
	AppVersion string         `json:"app_version"`
	Files      []string       `json:"files"`
	Stats      map[string]int `json:"stats"`
}

// BackupInfo summarizes a snapshot on disk.
type BackupInfo struct {
	Name      string         // directory name, e.g. 2026-10-19_170000_000
	Path      string         // full path of the snapshot directory
	CreatedAt time.Time      // when the snapshot was taken
	Stats     map[string]int // "days" and "entries"
}

// NewManager returns a Manager for the sheets of store.
func NewManager(store *storage.Storage, appVersion string) *Manager {
	return &Manager{
		store:      store,
		backupDir:  filepath.Join(store.GetDataDir(), BackupsDir),
		appVersion: appVersion,
	}
}

// Dir returns the directory holding the snapshots.
func (m *Manager) Dir() string {
	return m.backupDir
}

// Create snapshots every day sheet and returns the snapshot name.
func (m *Manager) Create() (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	days, err := m.store.ListDays()
	if err != nil {
		return "", err
	}

	now := m.store.Now()
	name, backupPath, err := m.reserve(now)
	if err != nil {
		return "", err
	}

	var files []string
	stats := map[string]int{"days": 0, "entries": 0}
	for _, day := range days {
		src := m.store.SheetPath(day)
		filename := filepath.Base(src)

		data, err := os.ReadFile(src)
		if err != nil {
			_ = os.RemoveAll(backupPath)
			return "", fmt.Errorf("failed to read %s: %w", filename, err)
		}
		if err := fsutil.WriteFileAtomic(filepath.Join(backupPath, filename), data, 0600); err != nil {
			_ = os.RemoveAll(backupPath)
			return "", fmt.Errorf("failed to copy %s: %w", filename, err)
		}

		files = append(files, filename)
		stats["days"]++
		// Damaged sheets are copied as they are but not counted.
		if points, err := decodeSheet(data); err == nil {
			stats["entries"] += len(points)
		}
	}

	manifest := Manifest{
		Version:    ManifestVersion,
		CreatedAt:  now,
		AppVersion: m.appVersion,
		Files:      files,
		Stats:      stats,
	}
	if err := writeJSON(filepath.Join(backupPath, ManifestFile), manifest); err != nil {
		_ = os.RemoveAll(backupPath)
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}

	return name, nil
}

// reserve creates an unused snapshot directory named after now.
func (m *Manager) reserve(now time.Time) (string, string, error) {
	at := now
	for i := 0; i < createAttempts; i++ {
		name := formatName(at)
		path := filepath.Join(m.backupDir, name)
		err := os.Mkdir(path, 0700)
		if err == nil {
			return name, path, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", "", fmt.Errorf("failed to create backup: %w", err)
		}
		at = at.Add(time.Millisecond)
	}
	return "", "", fmt.Errorf("failed to create backup: no free name near %s", formatName(now))
}

// List returns all snapshots, newest first.
func (m *Manager) List() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []BackupInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []BackupInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := m.info(entry.Name())
		if err != nil {
			continue
		}
		backups = append(backups, *info)
	}

	sort.SliceStable(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})
	return backups, nil
}

// GetBackup returns information about the snapshot called name.
func (m *Manager) GetBackup(name string) (*BackupInfo, error) {
	if err := validateBackupName(name); err != nil {
		return nil, err
	}
	if _, err := os.Stat(filepath.Join(m.backupDir, name)); os.IsNotExist(err) {
		return nil, fmt.Errorf("backup not found: %s", name)
	}
	return m.info(name)
}

func (m *Manager) info(name string) (*BackupInfo, error) {
	path := filepath.Join(m.backupDir, name)

	var manifest Manifest
	if err := readJSON(filepath.Join(path, ManifestFile), &manifest); err != nil {
		createdAt, parseErr := parseBackupName(name)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid backup: %s", name)
		}
		manifest.CreatedAt = createdAt
		manifest.Stats = make(map[string]int)
	}

	return &BackupInfo{
		Name:      name,
		Path:      path,
		CreatedAt: manifest.CreatedAt,
		Stats:     manifest.Stats,
	}, nil
}

// Restore copies the sheets of a snapshot back into the data directory.
// Days missing from the snapshot are left alone. Every sheet in the snapshot
// is checked before anything is written, and a safety snapshot of the
// current data is taken first; its name is returned.
func (m *Manager) Restore(name string) (string, error) {
	if err := validateBackupName(name); err != nil {
		return "", err
	}

	backupPath := filepath.Join(m.backupDir, name)
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return "", fmt.Errorf("backup not found: %s", name)
	}

	files, err := snapshotFiles(backupPath)
	if err != nil {
		return "", err
	}

	contents := make(map[string][]byte, len(files))
	for _, filename := range files {
		data, err := os.ReadFile(filepath.Join(backupPath, filename))
		if err != nil {
			return "", fmt.Errorf("failed to read %s from backup: %w", filename, err)
		}
		if _, err := decodeSheet(data); err != nil {
			return "", fmt.Errorf("backup file %s is invalid: %w", filename, err)
		}
		contents[filename] = data
	}

	safetyName, err := m.Create()
	if err != nil {
		return "", fmt.Errorf("failed to create safety backup: %w", err)
	}

	for _, filename := range files {
		dst := filepath.Join(m.store.SheetsDir(), filename)
		if err := fsutil.WriteFileAtomic(dst, contents[filename], 0600); err != nil {
			return safetyName, fmt.Errorf("failed to restore %s (safety backup: %s): %w", filename, safetyName, err)
		}
	}
	return safetyName, nil
}

// RestoreLatest restores the most recent snapshot and returns its name
// followed by the safety snapshot's name.
func (m *Manager) RestoreLatest() (string, string, error) {
	backups, err := m.List()
	if err != nil {
		return "", "", err
	}
	if len(backups) == 0 {
		return "", "", fmt.Errorf("no backups available")
	}

	name := backups[0].Name
	safety, err := m.Restore(name)
	return name, safety, err
}

// Delete removes the snapshot called name.
func (m *Manager) Delete(name string) error {
	if err := validateBackupName(name); err != nil {
		return err
	}

	path := filepath.Join(m.backupDir, name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("backup not found: %s", name)
	}
	return os.RemoveAll(path)
}

// Prune removes all but the keepCount newest snapshots and reports how
// many were deleted.
func (m *Manager) Prune(keepCount int) (int, error) {
	if keepCount < 0 {
		return 0, fmt.Errorf("keepCount must be non-negative")
	}

	backups, err := m.List()
	if err != nil {
		return 0, err
	}
	if len(backups) <= keepCount {
		return 0, nil
	}

	deleted := 0
	for _, b := range backups[keepCount:] {
		if err := m.Delete(b.Name); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

// snapshotFiles lists the sheets held by a snapshot: the manifest's list,
// or every day file in the directory when the manifest is unreadable.
func snapshotFiles(backupPath string) ([]string, error) {
	var manifest Manifest
	if err := readJSON(filepath.Join(backupPath, ManifestFile), &manifest); err == nil {
		for _, f := range manifest.Files {
			if !isSheetFile(f) {
				return nil, fmt.Errorf("manifest lists an unexpected file: %q", f)
			}
		}
		return manifest.Files, nil
	}

	entries, err := os.ReadDir(backupPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && isSheetFile(e.Name()) {
			files = append(files, e.Name())
		}
	}
	return files, nil
}

// isSheetFile reports whether name is a plain YYYY-MM-DD.json file name.
func isSheetFile(name string) bool {
	if name != filepath.Base(name) || filepath.Ext(name) != ".json" {
		return false
	}
	_, err := storage.ParseDay(name[:len(name)-len(".json")])
	return err == nil
}

func decodeSheet(data []byte) ([]timesheet.TimePoint, error) {
	var points []timesheet.TimePoint
	if err := json.Unmarshal(data, &points); err != nil {
		return nil, err
	}
	return points, nil
}

func validateBackupName(name string) error {
	if name == "" {
		return fmt.Errorf("backup name is required")
	}
	if name != filepath.Base(name) {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	if _, err := parseBackupName(name); err != nil {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data, 0600)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func formatName(t time.Time) string {
	return fmt.Sprintf("%s_%03d", t.Format(nameLayout), t.Nanosecond()/1e6)
}

// parseBackupName reads a snapshot name back into its local timestamp.
// Names without the millisecond suffix are accepted too.
func parseBackupName(name string) (time.Time, error) {
	if len(name) == len(nameLayout)+4 {
		base, err := time.ParseInLocation(nameLayout, name[:len(nameLayout)], time.Local)
		if err != nil {
			return time.Time{}, err
		}
		if name[len(nameLayout)] != '_' {
			return time.Time{}, fmt.Errorf("invalid backup format")
		}
		ms, err := strconv.Atoi(name[len(nameLayout)+1:])
		if err != nil || ms < 0 || ms > 999 {
			return time.Time{}, fmt.Errorf("invalid milliseconds")
		}
		return base.Add(time.Duration(ms) * time.Millisecond), nil
	}
	return time.ParseInLocation(nameLayout, name, time.Local)
}
