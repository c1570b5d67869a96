package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LatestSession returns the path of the newest session log in dir, relying
// on the timestamp-prefixed file names sorting chronologically. Returns
// os.ErrNotExist when the directory holds no session logs.
func LatestSession(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("store: read dir %q: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".jsonl") {
			files = append(files, e.Name())
		}
	}
	if len(files) == 0 {
		return "", os.ErrNotExist
	}
	sort.Strings(files)
	return filepath.Join(dir, files[len(files)-1]), nil
}

// ReadSession loads every entry from a session log file. Malformed lines
// are skipped, matching the live reader's behavior.
func ReadSession(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("store: open %q: %w", path, err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(line, &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("store: scan %q: %w", path, err)
	}
	return entries, nil
}

// Summarize aggregates a loaded session into a SessionSummary. The session
// ID is derived from the file name; StartedAt comes from the first entry.
func Summarize(path string, entries []Entry) SessionSummary {
	s := SessionSummary{
		SessionID: strings.TrimSuffix(filepath.Base(path), ".jsonl"),
	}
	if len(entries) > 0 {
		s.StartedAt = entries[0].Timestamp
	}
	for _, e := range entries {
		switch e.Kind {
		case KindIntercepted:
			s.Intercepted++
		case KindPassed:
			s.Passed++
		case KindRebound:
			s.Rebound++
		case KindConflict:
			s.Conflicts++
		case KindReload:
			s.Reloads++
		}
		if e.Action != "" {
			s.LastAction = e.Action
		}
		if e.Combo != "" {
			s.LastCombo = e.Combo
		}
	}
	return s
}
