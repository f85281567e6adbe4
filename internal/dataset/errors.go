package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrNoHeader indicates an empty input file.
	ErrNoHeader = errors.New("input has no header row")
	// ErrNoRows indicates a header without any data rows.
	ErrNoRows = errors.New("input has no data rows")
)

// ParseError indicates malformed delimiter structure at a given line (1-based, header is line 1).
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse line %d: %v", e.Line, e.Err) }

func (e *ParseError) Unwrap() error { return e.Err }

// ConversionError indicates a cell that is not a number after decimal normalization.
type ConversionError struct {
	Column string
	Row    int // 1-based data row
	Value  string
	Err    error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("convert column %q row %d: cannot parse %q as float", e.Column, e.Row, e.Value)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// ColumnNotFoundError indicates a required column is absent from the table.
type ColumnNotFoundError struct {
	Name  string
	Table string
}

func (e *ColumnNotFoundError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("column %q not found in %s", e.Name, e.Table)
	}
	return fmt.Sprintf("column %q not found", e.Name)
}

// DuplicateColumnError indicates two header fields with the same trimmed name.
type DuplicateColumnError struct{ Name string }

func (e *DuplicateColumnError) Error() string { return fmt.Sprintf("duplicate column %q", e.Name) }
