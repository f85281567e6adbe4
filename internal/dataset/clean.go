package dataset

import (
	"math"
	"strconv"
	"strings"
)

// Clean converts every column to float64 in place. Columns that already parse
// as dot-decimal numbers are kept as is; all others have the decimal separator
// replaced with '.' and are parsed again. Missing cells become NaN. The first
// cell that still fails to parse aborts with a *ConversionError.
func (t *Table) Clean(decimal rune) error {
	if decimal == 0 {
		decimal = ','
	}
	for _, c := range t.Columns {
		if vals, ok := parseColumn(c.Raw); ok {
			c.Values = vals
			c.Numeric = true
			continue
		}
		vals := make([]float64, len(c.Raw))
		for i, raw := range c.Raw {
			if isMissing(raw) {
				vals[i] = math.NaN()
				continue
			}
			x, err := strconv.ParseFloat(normalizeDecimal(raw, decimal), 64)
			if err != nil {
				return &ConversionError{Column: c.Name, Row: i + 1, Value: raw, Err: err}
			}
			vals[i] = x
		}
		c.Values = vals
	}
	t.cleaned = true
	return nil
}

// parseColumn parses raw cells as dot-decimal floats, failing on the first non-number.
func parseColumn(raw []string) ([]float64, bool) {
	out := make([]float64, len(raw))
	for i, v := range raw {
		if isMissing(v) {
			out[i] = math.NaN()
			continue
		}
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, false
		}
		out[i] = x
	}
	return out, true
}

func normalizeDecimal(s string, decimal rune) string {
	if decimal == '.' {
		return s
	}
	return strings.ReplaceAll(s, string(decimal), ".")
}
