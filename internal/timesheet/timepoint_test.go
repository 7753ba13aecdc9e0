package timesheet

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimePoint_RoundTrip(t *testing.T) {
	labels := []string{"start", "dev", "code review for #42", "käffchen", "a  b", "x]y"}
	now := time.Date(2026, 10, 19, 7, 5, 33, 0, time.Local)

	for _, label := range labels {
		p := NewTimePoint(label, now)

		at, got, ok := ParsePrefix(p.Display())
		if !ok {
			t.Errorf("ParsePrefix(%q) failed", p.Display())
			continue
		}
		if got != label {
			t.Errorf("label = %q, want %q", got, label)
		}
		if at != p.Time.Truncate(time.Minute) {
			t.Errorf("time = %v, want %v", at, p.Time)
		}
	}
}

func TestParsePrefix_Failures(t *testing.T) {
	inputs := []string{
		"",
		"dev",
		"[] dev",
		"[9] dev",
		"[ab:cd] dev",
		"[24:00] dev",
		"09:00 dev",
		"[09:00 dev",
	}
	for _, in := range inputs {
		if _, _, ok := ParsePrefix(in); ok {
			t.Errorf("ParsePrefix(%q) succeeded, want failure", in)
		}
	}
}

func TestParsePrefix_Lenient(t *testing.T) {
	at, label, ok := ParsePrefix("[7:05]dev")
	if !ok || at != At(7, 5) || label != "dev" {
		t.Errorf("ParsePrefix = %v %q %v", at, label, ok)
	}
}

func TestTimeOfDay_Arithmetic(t *testing.T) {
	if got := At(23, 50).Add(20 * time.Minute); got != At(0, 10) {
		t.Errorf("wrap forward = %v", got)
	}
	if got := At(0, 10).Add(-20 * time.Minute); got != At(23, 50) {
		t.Errorf("wrap backward = %v", got)
	}
	if got := At(9, 0).Sub(At(10, 30)); got != -90*time.Minute {
		t.Errorf("Sub = %v, want -1h30m", got)
	}
	if got := At(13, 7).Format(); got != "13:07" {
		t.Errorf("Format = %q", got)
	}
}

func TestTimeOfDay_JSON(t *testing.T) {
	p := TimePoint{Text: "[09:15] dev", Time: At(9, 15).Add(42 * time.Second)}
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"text":"[09:15] dev","time":"09:15:42"}` {
		t.Errorf("json = %s", data)
	}

	var back TimePoint
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back != p {
		t.Errorf("decoded %+v, want %+v", back, p)
	}

	var short TimePoint
	if err := json.Unmarshal([]byte(`{"text":"x","time":"18:30"}`), &short); err != nil {
		t.Fatalf("Unmarshal short form: %v", err)
	}
	if short.Time != At(18, 30) {
		t.Errorf("short form time = %v", short.Time)
	}

	if err := json.Unmarshal([]byte(`{"text":"x","time":"noon"}`), &short); err == nil {
		t.Error("expected error for invalid time")
	}
}
