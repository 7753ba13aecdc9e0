package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"daylog/internal/storage"
	"daylog/internal/timesheet"
)

// pastDay is a Monday well in the past, so its ledger is closed by its last entry.
var pastDay = time.Date(2020, 1, 6, 0, 0, 0, 0, time.Local)

// setupData writes one closed day and returns the root flags pointing at it.
func setupData(t *testing.T) (dataDir string, flags []string) {
	t.Helper()
	dataDir = t.TempDir()
	store, err := storage.New(dataDir)
	if err != nil {
		t.Fatal(err)
	}
	at := func(h, m int) time.Time { return time.Date(2020, 1, 6, h, m, 0, 0, time.Local) }
	points := []timesheet.TimePoint{
		timesheet.NewTimePoint("start", at(9, 0)),
		timesheet.NewTimePoint("dev", at(9, 30)),
		timesheet.NewTimePoint("lunch", at(12, 0)),
		timesheet.NewTimePoint("dev", at(12, 45)),
		timesheet.NewTimePoint("home", at(17, 0)),
	}
	if err := store.SaveSheet(pastDay, points); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	return dataDir, []string{"--config", cfgPath, "--data-dir", dataDir}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNormalizeFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "markdown", want: "markdown"},
		{in: "md", want: "markdown"},
		{in: "json", want: "json"},
		{in: "table", want: "table"},
		{in: "csv", wantErr: true},
	}
	for _, tt := range tests {
		got, err := normalizeFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("normalizeFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestExport_Markdown(t *testing.T) {
	_, flags := setupData(t)

	out, err := execute(t, append(flags, "export", "2020-01-06")...)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	for _, want := range []string{"# Daily Report: Monday, January 6, 2020", "**Worked:** 7:15", "| dev |"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestExport_JSON(t *testing.T) {
	_, flags := setupData(t)

	out, err := execute(t, append(flags, "export", "2020-01-06", "--format", "json")...)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	var report struct {
		Total   time.Duration `json:"total"`
		Pause   time.Duration `json:"pause"`
		Entries []struct {
			Text string `json:"text"`
		} `json:"entries"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if report.Total != 7*time.Hour+15*time.Minute {
		t.Errorf("total = %v, want 7h15m", report.Total)
	}
	if report.Pause != 45*time.Minute {
		t.Errorf("pause = %v, want 45m", report.Pause)
	}
	if len(report.Entries) != 5 {
		t.Errorf("entries = %d, want 5", len(report.Entries))
	}
}

func TestExport_WeeklyToFile(t *testing.T) {
	_, flags := setupData(t)
	dst := filepath.Join(t.TempDir(), "reports", "week.md")

	out, err := execute(t, append(flags, "export", "2020-01-06", "--weekly", "-o", dst)...)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(out, "Report written to") {
		t.Errorf("output = %q", out)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(data), "# Weekly Report: Jan 5 to Jan 11, 2020") {
		t.Errorf("report:\n%s", data)
	}
}

func TestExport_BadInput(t *testing.T) {
	_, flags := setupData(t)

	if _, err := execute(t, append(flags, "export", "06.01.2020")...); err == nil {
		t.Error("expected error for a malformed date")
	}
	if _, err := execute(t, append(flags, "export", "--format", "csv")...); err == nil {
		t.Error("expected error for an unknown format")
	}
	if _, err := execute(t, append(flags, "export", "2020-01-06", "2020-01-07")...); err == nil {
		t.Error("expected error for two dates")
	}
}

func TestDays(t *testing.T) {
	_, flags := setupData(t)

	out, err := execute(t, append(flags, "days")...)
	if err != nil {
		t.Fatalf("days: %v", err)
	}
	for _, want := range []string{"WORKED", "2020-01-06", "Mon", "7:15", "0:45"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDays_DamagedDayStaysListed(t *testing.T) {
	dataDir, flags := setupData(t)
	path := filepath.Join(dataDir, "sheets", "2020-01-07.json")
	if err := os.WriteFile(path, []byte("{broken"), 0600); err != nil {
		t.Fatal(err)
	}

	for run := 1; run <= 2; run++ {
		out, err := execute(t, append(flags, "days")...)
		if err != nil {
			t.Fatalf("days run %d: %v", run, err)
		}
		if !strings.Contains(out, "2020-01-07") || !strings.Contains(out, "unreadable") {
			t.Errorf("run %d should flag the damaged day:\n%s", run, out)
		}
	}
	if data, err := os.ReadFile(path); err != nil || string(data) != "{broken" {
		t.Errorf("damaged sheet changed: %q, %v", data, err)
	}
}

func TestDays_Empty(t *testing.T) {
	flags := []string{"--config", filepath.Join(t.TempDir(), "none.yaml"), "--data-dir", t.TempDir()}

	out, err := execute(t, append(flags, "days")...)
	if err != nil {
		t.Fatalf("days: %v", err)
	}
	if !strings.Contains(out, "No days logged yet.") {
		t.Errorf("output = %q", out)
	}
}

func TestConfigInit(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "daylog", "config.yaml")
	flags := []string{"--config", cfgPath, "--data-dir", t.TempDir()}

	if _, err := execute(t, append(flags, "config", "--init")...); err != nil {
		t.Fatalf("config --init: %v", err)
	}
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if !strings.Contains(string(data), "pause_synonyms") {
		t.Errorf("config:\n%s", data)
	}

	if _, err := execute(t, append(flags, "config", "--init")...); err == nil {
		t.Error("second --init should refuse to overwrite")
	}
	if _, err := execute(t, append(flags, "config", "--init", "--force")...); err != nil {
		t.Errorf("--force: %v", err)
	}

	out, err := execute(t, append(flags, "config")...)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if !strings.Contains(out, "override_open:") {
		t.Errorf("config output:\n%s", out)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "daylog version dev") {
		t.Errorf("output = %q", out)
	}

	out, _ = execute(t, "version", "--short")
	if strings.TrimSpace(out) != "dev" {
		t.Errorf("short output = %q", out)
	}
}

func TestRoot_RejectsArgs(t *testing.T) {
	if _, err := execute(t, "unknown-thing"); err == nil {
		t.Error("expected error for an unknown argument")
	}
}

func TestBackupAndRestore(t *testing.T) {
	dataDir, flags := setupData(t)

	out, err := execute(t, append(flags, "backup")...)
	if err != nil {
		t.Fatalf("backup: %v", err)
	}
	if !strings.Contains(out, "Backup created:") || !strings.Contains(out, "Days: 1, Entries: 5") {
		t.Errorf("backup output:\n%s", out)
	}

	store, err := storage.New(dataDir)
	if err != nil {
		t.Fatal(err)
	}
	replaced := []timesheet.TimePoint{timesheet.NewTimePoint("start", pastDay.Add(8*time.Hour))}
	if err := store.SaveSheet(pastDay, replaced); err != nil {
		t.Fatal(err)
	}

	// Declining the prompt leaves the data alone.
	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetIn(strings.NewReader("n\n"))
	cmd.SetArgs(append(flags, "restore", "--latest"))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("restore (declined): %v", err)
	}
	if !strings.Contains(buf.String(), "Restore cancelled.") {
		t.Errorf("declined output:\n%s", buf.String())
	}
	if points, _ := store.LoadSheet(pastDay); len(points) != 1 {
		t.Fatalf("declined restore changed the sheet: %d entries", len(points))
	}

	out, err = execute(t, append(flags, "restore", "--latest", "--force")...)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !strings.Contains(out, "Restored from") {
		t.Errorf("restore output:\n%s", out)
	}
	if points, _ := store.LoadSheet(pastDay); len(points) != 5 {
		t.Errorf("restored sheet has %d entries, want 5", len(points))
	}

	out, err = execute(t, append(flags, "backup", "--list")...)
	if err != nil {
		t.Fatalf("backup --list: %v", err)
	}
	if !strings.Contains(out, "NAME") || strings.Count(out, "just now") != 2 {
		t.Errorf("list should show the backup and the safety backup:\n%s", out)
	}

	out, err = execute(t, append(flags, "backup", "--prune", "1")...)
	if err != nil {
		t.Fatalf("backup --prune: %v", err)
	}
	if !strings.Contains(out, "Removed 1 backup(s)") {
		t.Errorf("prune output:\n%s", out)
	}
}

func TestRestore_NeedsName(t *testing.T) {
	_, flags := setupData(t)

	if _, err := execute(t, append(flags, "restore")...); err == nil {
		t.Error("expected error without a backup name")
	}
	if _, err := execute(t, append(flags, "restore", "--latest")...); err == nil {
		t.Error("expected error when there are no backups")
	}
	if _, err := execute(t, append(flags, "restore", "--latest", "2020-01-06_090000_000")...); err == nil {
		t.Error("expected error for a name and --latest together")
	}
}

func TestFormatAge(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "just now"},
		{time.Minute, "1 minute ago"},
		{45 * time.Minute, "45 minutes ago"},
		{3 * time.Hour, "3 hours ago"},
		{24 * time.Hour, "1 day ago"},
		{15 * 24 * time.Hour, "2 weeks ago"},
	}
	for _, tt := range tests {
		if got := formatAge(tt.d); got != tt.want {
			t.Errorf("formatAge(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
