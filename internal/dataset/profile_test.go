package dataset

import (
	"strings"
	"testing"
)

func TestDescribeMarkdown(t *testing.T) {
	rows := []string{
		"score;latency;empty",
		"0,90;10;",
		"0,91;11;",
		"0,92;12;",
		"0,89;10;",
		"0,90;11;",
		"0,91;12;",
		"0,90;10;",
		"0,88;95;",
		"NA;11;",
	}
	tbl, err := Read(strings.NewReader(strings.Join(rows, "\n")), DefaultOptions())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	tbl.Name = "agents.csv"
	if _, err := Describe(tbl); err == nil {
		t.Fatalf("expected error for uncleaned table")
	}
	if err := tbl.Clean(','); err != nil {
		t.Fatalf("Clean: %v", err)
	}
	p, err := Describe(tbl)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if len(p.Cols) != 2 {
		t.Fatalf("cols = %d, want 2", len(p.Cols))
	}
	score := p.Cols[0]
	if score.NonNull != 8 || score.Missing != 1 {
		t.Fatalf("score counts = %d/%d", score.NonNull, score.Missing)
	}
	if score.Min != 0.88 || score.Max != 0.92 {
		t.Fatalf("score range = [%v, %v]", score.Min, score.Max)
	}
	if p.Cols[1].OutliersCount != 1 {
		t.Fatalf("latency outliers = %d, want 1", p.Cols[1].OutliersCount)
	}

	md := p.Markdown()
	for _, want := range []string{
		"[DATASET SUMMARY]",
		"File: agents.csv",
		"Rows: 9",
		"- score: numeric (decimal comma) (non-null 8, missing 11.1%)",
		"- latency: numeric (non-null 9, missing 0.0%)",
		"outliers: 1 above |z|>3.5",
		"dropped empty column empty",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}
