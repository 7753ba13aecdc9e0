package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"daylog/internal/fsutil"
	"daylog/internal/timesheet"
)

// Storage handles all file I/O operations
type Storage struct {
	dataDir string
	now     func() time.Time // injectable clock for deterministic tests
}

const (
	dataDirPerm  os.FileMode = 0700
	dataFilePerm os.FileMode = 0600

	sheetsDir = "sheets"
	sheetExt  = ".json"
)

// New creates a new Storage instance with the given data directory
func New(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(filepath.Join(dataDir, sheetsDir), dataDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Storage{dataDir: dataDir, now: time.Now}, nil
}

// SetNowFunc overrides the clock used by time-dependent storage operations.
// Passing nil resets it to time.Now.
func (s *Storage) SetNowFunc(now func() time.Time) {
	if now == nil {
		s.now = time.Now
		return
	}
	s.now = now
}

// Now returns the current time according to the storage clock.
func (s *Storage) Now() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// GetDataDir returns the path to the data directory.
func (s *Storage) GetDataDir() string {
	return s.dataDir
}

// SheetsDir returns the directory holding the per-day sheet files.
func (s *Storage) SheetsDir() string {
	return filepath.Join(s.dataDir, sheetsDir)
}

// SheetPath returns the file holding the sheet of day.
func (s *Storage) SheetPath(day time.Time) string {
	return filepath.Join(s.SheetsDir(), DayKey(day)+sheetExt)
}

// LoadSheet reads the entries saved for day. A day without a file yields
// nil entries and no error.
//
// An empty or unparsable file is recovered from its .bak when possible;
// otherwise it is moved aside and nil entries are returned. Both cases
// report an error describing what happened, which callers treat as a
// warning.
func (s *Storage) LoadSheet(day time.Time) ([]timesheet.TimePoint, error) {
	path := s.SheetPath(day)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	points, err := decodeSheet(data)
	if err == nil {
		return points, nil
	}
	return s.recoverSheet(path, fmt.Errorf("parse %s: %w", filepath.Base(path), err))
}

// ReadSheet is LoadSheet without recovery: it never moves, restores or
// rewrites anything, and an empty or unparsable file is reported as an
// error. Reports and listings read through it.
func (s *Storage) ReadSheet(day time.Time) ([]timesheet.TimePoint, error) {
	path := s.SheetPath(day)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	points, err := decodeSheet(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return points, nil
}

func decodeSheet(data []byte) ([]timesheet.TimePoint, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("file is empty")
	}
	var points []timesheet.TimePoint
	if err := json.Unmarshal(data, &points); err != nil {
		return nil, err
	}
	return points, nil
}

func (s *Storage) recoverSheet(path string, cause error) ([]timesheet.TimePoint, error) {
	name := filepath.Base(path)

	// Try backup first.
	if bak, err := os.ReadFile(fsutil.BackupPath(path)); err == nil {
		if points, err := decodeSheet(bak); err == nil {
			_, _ = fsutil.Quarantine(path, s.Now())
			if err := s.writeSheet(path, points, false); err != nil {
				return points, fmt.Errorf("%w (recovered from %s.bak, rewrite failed: %v)", cause, name, err)
			}
			return points, fmt.Errorf("%w (recovered from %s.bak)", cause, name)
		}
	}

	// No usable backup: keep the broken file for inspection and start over.
	moved, err := fsutil.Quarantine(path, s.Now())
	if err != nil {
		return nil, fmt.Errorf("%w (could not move it aside: %v)", cause, err)
	}
	return nil, fmt.Errorf("%w (starting fresh; original moved to %s)", cause, filepath.Base(moved))
}

// SaveSheet writes the entries of day, keeping the previous file as .bak.
func (s *Storage) SaveSheet(day time.Time, points []timesheet.TimePoint) error {
	return s.writeSheet(s.SheetPath(day), points, true)
}

func (s *Storage) writeSheet(path string, points []timesheet.TimePoint, backup bool) error {
	if points == nil {
		points = []timesheet.TimePoint{}
	}
	data, err := json.MarshalIndent(points, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize %s: %w", filepath.Base(path), err)
	}

	if err := os.MkdirAll(filepath.Dir(path), dataDirPerm); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	if backup {
		fsutil.BestEffortBackup(path, dataFilePerm)
	}
	if err := fsutil.WriteFileAtomic(path, data, dataFilePerm); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// ListDays returns the days that have a sheet, oldest first.
func (s *Storage) ListDays() ([]time.Time, error) {
	entries, err := os.ReadDir(s.SheetsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list sheets: %w", err)
	}

	var days []time.Time
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, sheetExt) {
			continue
		}
		day, err := ParseDay(strings.TrimSuffix(name, sheetExt))
		if err != nil {
			continue
		}
		days = append(days, day)
	}
	slices.SortFunc(days, func(a, b time.Time) int { return a.Compare(b) })
	return days, nil
}
