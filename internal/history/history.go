package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const timestampFormat = "2006-01-02T15:04:05.000000Z"

// Entry represents a single load.
type Entry struct {
	Timestamp string `json:"ts"`     // RFC3339 with microseconds.
	ID        string `json:"id"`     // Random load identifier.
	Kind      string `json:"kind"`   // Settings file kind.
	Source    string `json:"source"` // Source name.

	Groups   int    `json:"groups,omitempty"`
	Settings int    `json:"settings,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Time parses the entry timestamp.
func (e Entry) Time() (time.Time, error) {
	t, err := time.Parse(timestampFormat, e.Timestamp)
	if err != nil {
		return time.Parse(time.RFC3339, e.Timestamp)
	}
	return t, nil
}

// Log appends an entry to the log at path, filling in the timestamp and id.
// If logging fails the error is ignored; loads should not fail just because
// history could not be written.
func Log(path string, entry Entry) {
	if path == "" {
		return
	}

	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(timestampFormat)
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// ReadEntries reads all entries from the log at path.
// Returns an empty slice if the log doesn't exist.
func ReadEntries(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data), nil
}

// ParseEntries parses JSON Lines data into entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) []Entry {
	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries
}

// Last returns at most n of the most recent entries, newest first.
// n <= 0 returns every entry.
func Last(entries []Entry, n int) []Entry {
	result := make([]Entry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		result = append(result, entries[i])
		if n > 0 && len(result) == n {
			break
		}
	}
	return result
}
