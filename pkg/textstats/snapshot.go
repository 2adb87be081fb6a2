package textstats

// Snapshot is an immutable set of metrics for one (text, selection) pair.
type Snapshot struct {
	// Characters counts user-perceived characters (grapheme clusters).
	Characters int

	// Words counts UAX #29 word segments that contain a letter or number.
	Words int

	// Lines is the number of terminator-delimited lines, at least 1.
	Lines int

	// HasCursor reports whether the three cursor fields below are present.
	HasCursor bool

	// CursorLocation is the caret offset, or the start of a range selection.
	CursorLocation int

	// CurrentLine is the 1-based line containing CursorLocation.
	CurrentLine int

	// ColumnInLine is the 1-based column of CursorLocation within CurrentLine.
	ColumnInLine int

	// SelectedCodePoint is "U+XXXX" when the selection covers exactly one
	// scalar value, empty otherwise.
	SelectedCodePoint string

	// Generation is the trigger sequence number that produced the snapshot.
	// Zero for snapshots computed outside an inspector.
	Generation uint64
}

// HasCodePoint reports whether SelectedCodePoint is present.
func (s Snapshot) HasCodePoint() bool {
	return s.SelectedCodePoint != ""
}

// Position returns the cursor fields, with ok false when they are absent.
func (s Snapshot) Position() (location, line, column int, ok bool) {
	if !s.HasCursor {
		return 0, 0, 0, false
	}
	return s.CursorLocation, s.CurrentLine, s.ColumnInLine, true
}
