package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// JSONL is a Store backed by an append-only JSONL file. Each line is a
// JSON-serialized Entry. The file is synced after every Append so the log
// survives a hard kill mid-session.
//
// Session identity: "<unix-timestamp>-<pid>.jsonl". The name is derived
// once at open time, so everything the process logs lands in one file and
// files sort chronologically by name.
type JSONL struct {
	file      *os.File
	mu        sync.Mutex
	idx       *fileIndex
	sessionID string
	startedAt time.Time
	pos       int64 // current write position in the file
}

// NewJSONL creates (or reopens) the session JSONL log in dir. dir is created
// with os.MkdirAll if it does not exist.
func NewJSONL(dir string) (*JSONL, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("store: mkdir %q: %w", dir, err)
	}
	now := time.Now()
	sessionID := fmt.Sprintf("%d-%d", now.Unix(), os.Getpid())
	path := filepath.Join(dir, sessionID+".jsonl")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("store: open %q: %w", path, err)
	}
	pos, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("store: seek: %w", err)
	}
	return &JSONL{
		file:      f,
		idx:       newFileIndex(),
		sessionID: sessionID,
		startedAt: now,
		pos:       pos,
	}, nil
}

// Append serializes entry as a JSON line, writes it to the file, and syncs.
// A zero Timestamp is filled in with the current time. Safe to call from
// multiple goroutines.
func (j *JSONL) Append(entry Entry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("store: marshal: %w", err)
	}
	data = append(data, '\n')

	j.mu.Lock()
	defer j.mu.Unlock()

	lineOffset := j.pos
	if _, err := j.file.Write(data); err != nil {
		return fmt.Errorf("store: write: %w", err)
	}
	if err := j.file.Sync(); err != nil {
		return fmt.Errorf("store: sync: %w", err)
	}
	lineLen := int64(len(data))
	j.pos += lineLen
	j.idx.onAppend(entry, lineOffset, lineLen)
	return nil
}

// Close closes the underlying file.
func (j *JSONL) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.file.Close()
}

// Tail returns the most recent n entries in append order. It reads one
// contiguous byte range covering the last n lines via file.ReadAt.
func (j *JSONL) Tail(n int) ([]Entry, error) {
	j.mu.Lock()
	lines := j.idx.lines
	if n < len(lines) {
		lines = lines[len(lines)-n:]
	}
	var r lineRange
	if len(lines) > 0 {
		r = lineRange{start: lines[0].start, end: lines[len(lines)-1].end}
	}
	j.mu.Unlock()

	return j.readRange(r)
}

// ActionLog returns every entry recorded for action, in append order.
// Lines for one action are scattered through the file, so each is read
// individually at its bookmarked offset.
func (j *JSONL) ActionLog(action string) ([]Entry, error) {
	j.mu.Lock()
	ranges := make([]lineRange, len(j.idx.byAction[action]))
	copy(ranges, j.idx.byAction[action])
	j.mu.Unlock()

	var entries []Entry
	for _, r := range ranges {
		got, err := j.readRange(r)
		if err != nil {
			return nil, err
		}
		entries = append(entries, got...)
	}
	return entries, nil
}

// readRange reads and decodes the lines in the [start, end) byte range.
func (j *JSONL) readRange(r lineRange) ([]Entry, error) {
	size := r.end - r.start
	if size <= 0 {
		return nil, nil
	}
	buf := make([]byte, size)
	if _, err := j.file.ReadAt(buf, r.start); err != nil {
		return nil, fmt.Errorf("store: read at %d: %w", r.start, err)
	}
	var entries []Entry
	for _, line := range bytes.Split(buf, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(line, &e); err != nil {
			log.Printf("store: skipping malformed line: %v", err)
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// SessionSummary returns aggregate counts for the current session derived
// from the in-memory index.
func (j *JSONL) SessionSummary() (SessionSummary, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return SessionSummary{
		SessionID:   j.sessionID,
		StartedAt:   j.startedAt,
		Intercepted: j.idx.counts[KindIntercepted],
		Passed:      j.idx.counts[KindPassed],
		Rebound:     j.idx.counts[KindRebound],
		Conflicts:   j.idx.counts[KindConflict],
		Reloads:     j.idx.counts[KindReload],
		LastAction:  j.idx.lastAction,
		LastCombo:   j.idx.lastCombo,
	}, nil
}

// Prune removes the oldest session log files in dir, keeping at most
// maxKeep files. maxKeep <= 0 disables pruning. A missing dir is not an
// error.
func Prune(dir string, maxKeep int) error {
	if maxKeep <= 0 {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("store: read dir %q: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".jsonl") {
			files = append(files, e.Name())
		}
	}

	sort.Strings(files) // timestamp-prefixed names sort chronologically

	toDelete := len(files) - maxKeep
	for i := 0; i < toDelete; i++ {
		path := filepath.Join(dir, files[i])
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("store: remove %q: %w", path, err)
		}
	}
	return nil
}
