package dataset

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Profile is a markdown-friendly description of a cleaned table.
type Profile struct {
	Name    string
	Rows    int
	Cols    []ColumnProfile
	Dropped []string
}

// ColumnProfile captures per-column statistics.
type ColumnProfile struct {
	Name      string
	Converted bool // decimal separator was normalized
	NonNull   int
	Missing   int
	Min       float64
	Max       float64
	Mean      float64
	Std       float64
	// Outliers (robust Z via MAD)
	OutliersCount   int
	OutliersMaxAbsZ float64
}

// outlierThreshold is the robust |z| above which a value counts as an outlier.
const outlierThreshold = 3.5

// Describe computes a Profile. The table must be cleaned.
func Describe(t *Table) (*Profile, error) {
	if !t.cleaned {
		return nil, fmt.Errorf("describe %s: table not cleaned", t.Name)
	}
	p := &Profile{Name: t.Name, Rows: t.Rows, Dropped: append([]string(nil), t.Dropped...)}
	for _, c := range t.Columns {
		cp := ColumnProfile{Name: c.Name, Converted: !c.Numeric}
		present := make([]float64, 0, len(c.Values))
		for _, x := range c.Values {
			if math.IsNaN(x) {
				cp.Missing++
				continue
			}
			present = append(present, x)
		}
		n := len(present)
		cp.NonNull = n
		if n > 0 {
			cp.Min = floats.Min(present)
			cp.Max = floats.Max(present)
			cp.Mean = stat.Mean(present, nil)
		}
		if n > 1 {
			cp.Std = stat.StdDev(present, nil)
		}
		if n >= 8 {
			median, mad := medianMAD(present)
			if mad > 0 {
				for _, v := range present {
					az := math.Abs(0.6745 * (v - median) / mad)
					if az > outlierThreshold {
						cp.OutliersCount++
					}
					if az > cp.OutliersMaxAbsZ {
						cp.OutliersMaxAbsZ = az
					}
				}
			}
		}
		p.Cols = append(p.Cols, cp)
	}
	return p, nil
}

// Markdown renders a compact report.
func (p *Profile) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if p.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", p.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", p.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", len(p.Cols)))

	b.WriteString("[SCHEMA]\n")
	for _, c := range p.Cols {
		total := c.NonNull + c.Missing
		missPct := 0.0
		if total > 0 {
			missPct = float64(c.Missing) * 100.0 / float64(total)
		}
		kind := "numeric"
		if c.Converted {
			kind = "numeric (decimal comma)"
		}
		b.WriteString(fmt.Sprintf("- %s: %s (non-null %d, missing %.1f%%)", c.Name, kind, c.NonNull, missPct))
		if c.NonNull > 0 {
			b.WriteString(fmt.Sprintf(" — min %.4g, max %.4g, mean %.4g, std %.4g", c.Min, c.Max, c.Mean, c.Std))
		}
		if c.OutliersCount > 0 {
			b.WriteString(fmt.Sprintf("; outliers: %d above |z|>%.1f (max |z|≈%.2f)", c.OutliersCount, outlierThreshold, c.OutliersMaxAbsZ))
		}
		b.WriteString("\n")
	}
	if len(p.Dropped) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, d := range p.Dropped {
			name := d
			if strings.TrimSpace(name) == "" {
				name = "(unnamed)"
			}
			b.WriteString(fmt.Sprintf("- dropped empty column %s\n", name))
		}
	}
	return b.String()
}

// medianMAD computes median and MAD (median absolute deviation) of values.
func medianMAD(vals []float64) (median, mad float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	median = quantile(cp, 0.5)
	dev := make([]float64, len(cp))
	for i, v := range cp {
		dev[i] = math.Abs(v - median)
	}
	sort.Float64s(dev)
	mad = quantile(dev, 0.5)
	return
}

func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
