package regression

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTooFewObservations indicates no residual degrees of freedom remain.
	ErrTooFewObservations = errors.New("too few observations")
	// ErrConstantResponse indicates a response with zero variance, for which R² is undefined.
	ErrConstantResponse = errors.New("response has zero variance")
)

// RankDeficiencyError indicates collinear or otherwise degenerate predictors.
// Columns are never dropped to recover from it.
type RankDeficiencyError struct {
	Rank    int
	Columns int
	Names   []string
}

func (e *RankDeficiencyError) Error() string {
	return fmt.Sprintf("design matrix is rank deficient: rank %d < %d columns (%s)", e.Rank, e.Columns, strings.Join(e.Names, ", "))
}

// MissingValueError indicates a NaN or infinite cell in a column used by the fit.
type MissingValueError struct {
	Column string
	Row    int // 1-based data row
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("column %q row %d: missing or non-finite value", e.Column, e.Row)
}
