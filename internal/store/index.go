package store

// lineRange is the [start, end) byte range of one JSONL line in the log file.
type lineRange struct {
	start int64
	end   int64
}

// fileIndex keeps in-memory bookmarks for every line appended this session.
// It is updated by onAppend as each Entry is written and lets Tail and
// ActionLog read entries back with file.ReadAt instead of a full scan.
type fileIndex struct {
	lines      []lineRange
	byAction   map[string][]lineRange
	counts     map[Kind]int
	lastAction string
	lastCombo  string
}

func newFileIndex() *fileIndex {
	return &fileIndex{
		byAction: make(map[string][]lineRange),
		counts:   make(map[Kind]int),
	}
}

// onAppend records a written line. lineOffset is the byte offset of the
// first byte of the line; lineLen includes the trailing newline.
func (idx *fileIndex) onAppend(entry Entry, lineOffset, lineLen int64) {
	r := lineRange{start: lineOffset, end: lineOffset + lineLen}
	idx.lines = append(idx.lines, r)
	idx.counts[entry.Kind]++
	if entry.Action != "" {
		idx.byAction[entry.Action] = append(idx.byAction[entry.Action], r)
		idx.lastAction = entry.Action
	}
	if entry.Combo != "" {
		idx.lastCombo = entry.Combo
	}
}
