package domain

// Page is one window of an ordered result sequence.
type Page struct {
	Number     int
	Size       int
	TotalPages int
	Total      int
	Records    []Record
}

// HasNext reports whether a following page exists.
func (p Page) HasNext() bool {
	return p.Number < p.TotalPages
}

// HasPrev reports whether a preceding page exists.
func (p Page) HasPrev() bool {
	return p.Number > 1 && p.TotalPages > 0
}

// LevelOption is one selectable entry of the level dropdown. A nil Level is the "All Levels" wildcard.
type LevelOption struct {
	Label string
	Level *Level
}

// View is everything a rendering sink needs to draw the current state.
type View struct {
	Language string
	Query    Query
	Page     Page
	Levels   []LevelOption
}

// Table is a header plus string rows, the shape of a CSV file.
type Table struct {
	Header []string
	Rows   [][]string
}

// Column returns the index of name in the header, or -1.
func (t *Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// EnsureColumn appends name to the header (and pads rows) when missing, returning its index.
func (t *Table) EnsureColumn(name string) int {
	if idx := t.Column(name); idx >= 0 {
		return idx
	}
	t.Header = append(t.Header, name)
	idx := len(t.Header) - 1
	for i := range t.Rows {
		for len(t.Rows[i]) <= idx {
			t.Rows[i] = append(t.Rows[i], "")
		}
	}
	return idx
}

// Cell returns the value at row/col, or "" when the row is short.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// SetCell writes value, padding a short row as needed.
func (t *Table) SetCell(row, col int, value string) {
	for len(t.Rows[row]) <= col {
		t.Rows[row] = append(t.Rows[row], "")
	}
	t.Rows[row][col] = value
}

// ToBatch converts the table into a batch of raw records. Missing cells are absent; extra cells are dropped.
func (t *Table) ToBatch(source string) Batch {
	fields := make([]string, 0, len(t.Header))
	for _, h := range t.Header {
		if h != "" {
			fields = append(fields, h)
		}
	}

	records := make([]RawRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make(RawRecord, len(t.Header))
		for i, name := range t.Header {
			if name == "" || i >= len(row) {
				continue
			}
			rec[name] = row[i]
		}
		records = append(records, rec)
	}

	return Batch{Source: source, Fields: fields, Records: records}
}
