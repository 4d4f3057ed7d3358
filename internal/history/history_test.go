package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func TestLog_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.jsonl")

	Log(path, Entry{Kind: "global", Source: "adb", Groups: 3, Settings: 10})

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatalf("History file was not created")
	}
}

func TestLog_AppendsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")

	Log(path, Entry{Kind: "config", Source: "dir"})
	Log(path, Entry{Kind: "secure", Source: "dir", Error: "root permission is not granted"})
	Log(path, Entry{Kind: "system", Source: "dir"})

	entries, err := ReadEntries(path)
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}

	expected := []string{"config", "secure", "system"}
	for i, kind := range expected {
		if entries[i].Kind != kind {
			t.Errorf("Entry %d: expected kind %q, got %q", i, kind, entries[i].Kind)
		}
	}
	if entries[1].Error == "" {
		t.Error("Expected error to be recorded for entry 1")
	}
}

func TestLog_FillsTimestampAndID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")

	Log(path, Entry{Kind: "global"})

	entries, err := ReadEntries(path)
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	entry := entries[0]

	if _, err := entry.Time(); err != nil {
		t.Errorf("Timestamp %q does not parse: %v", entry.Timestamp, err)
	}
	if _, err := uuid.Parse(entry.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", entry.ID, err)
	}
}

func TestLog_EmptyPathIsNoop(t *testing.T) {
	Log("", Entry{Kind: "global"})
}

func TestReadEntries_MissingFile(t *testing.T) {
	entries, err := ReadEntries(filepath.Join(t.TempDir(), "missing.jsonl"))
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(entries))
	}
}

func TestParseEntries_SkipsMalformedLines(t *testing.T) {
	data := []byte(`{"ts":"2026-01-01T00:00:00.000000Z","id":"a","kind":"config","source":"adb"}
not json
{"ts":"2026-01-02T00:00:00Z","id":"b","kind":"global","source":"adb"}

{"broken":
`)

	entries := ParseEntries(data)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[1].Kind != "global" {
		t.Errorf("Expected second entry kind global, got %q", entries[1].Kind)
	}
	if _, err := entries[1].Time(); err != nil {
		t.Errorf("RFC3339 timestamp should parse: %v", err)
	}
}

func TestLast(t *testing.T) {
	entries := []Entry{{ID: "1"}, {ID: "2"}, {ID: "3"}}

	got := Last(entries, 2)
	if len(got) != 2 || got[0].ID != "3" || got[1].ID != "2" {
		t.Errorf("Last(2) = %+v", got)
	}

	got = Last(entries, 0)
	if len(got) != 3 || got[0].ID != "3" {
		t.Errorf("Last(0) = %+v", got)
	}
}
