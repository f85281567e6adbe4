package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Options controls how a delimited file is read and cleaned.
type Options struct {
	// Delimiter for the file. If 0, ';' is used.
	Delimiter rune
	// DecimalSeparator is replaced with '.' before parsing non-numeric columns. If 0, ',' is used.
	DecimalSeparator rune
	// Exclude drops the named columns before cleaning (matched after trimming).
	Exclude []string
}

// DefaultOptions returns the settings for the agents metrics export.
func DefaultOptions() Options {
	return Options{
		Delimiter:        ';',
		DecimalSeparator: ',',
	}
}

// Column holds one column of the table. Raw keeps the trimmed cell text;
// Values is filled by Clean (NaN for missing cells).
type Column struct {
	Name    string
	Raw     []string
	Values  []float64
	Numeric bool
}

// Table is an in-memory delimited dataset, one Column per header field.
type Table struct {
	Name    string
	Rows    int
	Columns []*Column
	// Dropped lists the all-missing columns removed at load time.
	Dropped []string
	cleaned bool
}

// Load reads a delimited file into a Table. Header names are trimmed and
// columns whose every cell is missing are dropped.
func Load(path string, opt Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	t, err := Read(f, opt)
	if err != nil {
		return nil, err
	}
	t.Name = filepath.Base(path)
	return t, nil
}

// Read parses delimited text from r. See Load.
func Read(r io.Reader, opt Options) (*Table, error) {
	delim := opt.Delimiter
	if delim == 0 {
		delim = ';'
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comma = delim

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoHeader
		}
		return nil, &ParseError{Line: 1, Err: err}
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	ncol := len(header)
	t := &Table{Columns: make([]*Column, ncol)}
	for i, h := range header {
		t.Columns[i] = &Column{Name: strings.TrimSpace(h)}
	}

	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &ParseError{Line: t.Rows + 2, Err: err}
		}
		if len(rec) > ncol {
			return nil, &ParseError{Line: t.Rows + 2, Err: fmt.Errorf("expected %d fields, saw %d", ncol, len(rec))}
		}
		for j, c := range t.Columns {
			v := ""
			if j < len(rec) {
				v = strings.TrimSpace(rec[j])
			}
			c.Raw = append(c.Raw, v)
		}
		t.Rows++
	}
	if t.Rows == 0 {
		return nil, ErrNoRows
	}

	t.Dropped = t.DropEmptyColumns()
	seen := make(map[string]struct{}, len(t.Columns))
	for _, c := range t.Columns {
		if _, dup := seen[c.Name]; dup {
			return nil, &DuplicateColumnError{Name: c.Name}
		}
		seen[c.Name] = struct{}{}
	}
	if len(opt.Exclude) > 0 {
		t.Drop(opt.Exclude...)
	}
	return t, nil
}

// DropEmptyColumns removes columns in which every cell is missing and returns their names.
func (t *Table) DropEmptyColumns() []string {
	var dropped []string
	kept := t.Columns[:0]
	for _, c := range t.Columns {
		empty := true
		for _, v := range c.Raw {
			if !isMissing(v) {
				empty = false
				break
			}
		}
		if empty {
			dropped = append(dropped, c.Name)
			continue
		}
		kept = append(kept, c)
	}
	t.Columns = kept
	return dropped
}

// Drop removes the named columns if present.
func (t *Table) Drop(names ...string) {
	rm := make(map[string]struct{}, len(names))
	for _, n := range names {
		rm[strings.TrimSpace(n)] = struct{}{}
	}
	kept := t.Columns[:0]
	for _, c := range t.Columns {
		if _, ok := rm[c.Name]; ok {
			continue
		}
		kept = append(kept, c)
	}
	t.Columns = kept
}

// Column returns the column with the given name.
func (t *Table) Column(name string) (*Column, error) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, &ColumnNotFoundError{Name: name, Table: t.Name}
}

// Floats returns the cleaned values of a column. Clean must have been called.
func (t *Table) Floats(name string) ([]float64, error) {
	c, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if !t.cleaned {
		return nil, fmt.Errorf("column %q: table not cleaned", name)
	}
	return c.Values, nil
}

// Names lists column names in file order.
func (t *Table) Names() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// naTokens mirrors the default missing-value markers of common dataframe tools.
var naTokens = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

func isMissing(v string) bool {
	_, ok := naTokens[v]
	return ok
}
