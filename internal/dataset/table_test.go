package dataset

import (
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var agentRows = []string{
	" agent_id ;execution_time_seconds; cost_per_task_cents ;task_complexity;accuracy_score;notes",
	"1;12,5;3,2;4;0,91;",
	"2;8,0;2,1;2;0,95;",
	"3;20,25;5,75;7;0,78;",
	"4;15;4;5;0,85;",
}

func writeCSV(t *testing.T, name string, rows []string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(strings.Join(rows, "\n")), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return p
}

func TestLoadTrimsHeadersAndDropsEmptyColumns(t *testing.T) {
	path := writeCSV(t, "agents.csv", agentRows)
	tbl, err := Load(path, DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.Name != "agents.csv" {
		t.Fatalf("name = %q", tbl.Name)
	}
	if tbl.Rows != 4 {
		t.Fatalf("rows = %d, want 4", tbl.Rows)
	}
	want := []string{"agent_id", "execution_time_seconds", "cost_per_task_cents", "task_complexity", "accuracy_score"}
	got := tbl.Names()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("columns = %v, want %v", got, want)
	}
	if len(tbl.Dropped) != 1 || tbl.Dropped[0] != "notes" {
		t.Fatalf("dropped = %v, want [notes]", tbl.Dropped)
	}
}

func TestLoadStripsBOMAndPadsShortRows(t *testing.T) {
	path := writeCSV(t, "bom.csv", []string{
		"\ufeffa;b;c",
		"1;2;3",
		"4;5",
	})
	tbl, err := Load(path, DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := tbl.Column("a"); err != nil {
		t.Fatalf("expected BOM stripped from first header: %v", err)
	}
	c, _ := tbl.Column("c")
	if c.Raw[1] != "" {
		t.Fatalf("expected padded missing cell, got %q", c.Raw[1])
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.csv"), DefaultOptions()); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}

	long := writeCSV(t, "long.csv", []string{"a;b", "1;2", "3;4;5"})
	_, err := Load(long, DefaultOptions())
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if pe.Line != 3 {
		t.Fatalf("parse error line = %d, want 3", pe.Line)
	}

	empty := writeCSV(t, "empty.csv", nil)
	if _, err := Load(empty, DefaultOptions()); !errors.Is(err, ErrNoHeader) {
		t.Fatalf("expected ErrNoHeader, got %v", err)
	}

	headerOnly := writeCSV(t, "header.csv", []string{"a;b"})
	if _, err := Load(headerOnly, DefaultOptions()); !errors.Is(err, ErrNoRows) {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}

	dup := writeCSV(t, "dup.csv", []string{"a; a ", "1;2"})
	var de *DuplicateColumnError
	if _, err := Load(dup, DefaultOptions()); !errors.As(err, &de) {
		t.Fatalf("expected *DuplicateColumnError, got %v", err)
	}
}

func TestCleanNormalizesDecimalComma(t *testing.T) {
	tbl, err := Read(strings.NewReader(strings.Join(agentRows, "\n")), DefaultOptions())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if err := tbl.Clean(','); err != nil {
		t.Fatalf("Clean: %v", err)
	}
	exec, err := tbl.Floats("execution_time_seconds")
	if err != nil {
		t.Fatalf("Floats: %v", err)
	}
	want := []float64{12.5, 8, 20.25, 15}
	for i := range want {
		if exec[i] != want[i] {
			t.Fatalf("exec[%d] = %v, want %v", i, exec[i], want[i])
		}
	}
	id, _ := tbl.Column("agent_id")
	if !id.Numeric {
		t.Fatalf("agent_id should parse without normalization")
	}
	acc, _ := tbl.Column("accuracy_score")
	if acc.Numeric {
		t.Fatalf("accuracy_score should be marked as converted")
	}
}

func TestCleanMissingBecomesNaN(t *testing.T) {
	tbl, err := Read(strings.NewReader("x;y\n1,5;NA\n;2\n3;3"), DefaultOptions())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if err := tbl.Clean(','); err != nil {
		t.Fatalf("Clean: %v", err)
	}
	x, _ := tbl.Floats("x")
	y, _ := tbl.Floats("y")
	if !math.IsNaN(x[1]) || !math.IsNaN(y[0]) {
		t.Fatalf("expected NaN for missing cells, got x=%v y=%v", x, y)
	}
}

func TestCleanRejectsText(t *testing.T) {
	tbl, err := Read(strings.NewReader("agent;score\nalpha;0,9\nbeta;0,8"), DefaultOptions())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	err = tbl.Clean(',')
	var ce *ConversionError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ConversionError, got %v", err)
	}
	if ce.Column != "agent" || ce.Row != 1 || ce.Value != "alpha" {
		t.Fatalf("unexpected conversion error: %+v", ce)
	}
	if tbl.cleaned {
		t.Fatalf("table must not be marked cleaned after failure")
	}
}

func TestExcludeDropsTextColumnsBeforeCleaning(t *testing.T) {
	opt := DefaultOptions()
	opt.Exclude = []string{" agent "}
	tbl, err := Read(strings.NewReader("agent;score\nalpha;0,9\nbeta;0,8"), opt)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if err := tbl.Clean(opt.DecimalSeparator); err != nil {
		t.Fatalf("Clean: %v", err)
	}
	var nf *ColumnNotFoundError
	if _, err := tbl.Column("agent"); !errors.As(err, &nf) {
		t.Fatalf("expected agent to be excluded, got %v", err)
	}
}

func TestFloatsRequiresClean(t *testing.T) {
	tbl, err := Read(strings.NewReader("a\n1"), DefaultOptions())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if _, err := tbl.Floats("a"); err == nil {
		t.Fatalf("expected error before Clean")
	}
}
