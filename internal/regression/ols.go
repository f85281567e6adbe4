// Package regression fits ordinary least squares models over cleaned dataset
// columns and renders a classic text summary of the fit.
package regression

import (
	"fmt"
	"math"

	"github.com/KaramelBytes/agentreg-cli/internal/dataset"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// InterceptName labels the constant column prepended to the design matrix.
const InterceptName = "const"

// Fit is the immutable result of an OLS estimation. Slices indexed by
// coefficient follow Names, with the intercept first.
type Fit struct {
	Response string
	Names    []string

	Params   []float64
	StdErr   []float64
	TValues  []float64
	PValues  []float64
	ConfLow  []float64
	ConfHigh []float64

	Fitted []float64
	Resid  []float64

	NObs    int
	DfModel float64
	DfResid float64

	RSquared    float64
	AdjRSquared float64
	FValue      float64
	FPValue     float64

	LogLikelihood float64
	AIC           float64
	BIC           float64

	DurbinWatson  float64
	Omnibus       float64
	OmnibusPValue float64
	JarqueBera    float64
	JBPValue      float64
	Skew          float64
	Kurtosis      float64
	CondNo        float64
}

// FitOLS regresses response on predictors plus an intercept using columns of a
// cleaned table. No rows are dropped: a missing cell in any used column fails
// with *MissingValueError.
func FitOLS(t *dataset.Table, response string, predictors []string) (*Fit, error) {
	y, x, names, err := Design(t, response, predictors)
	if err != nil {
		return nil, err
	}
	return Estimate(response, names, x, y)
}

// Design builds the response vector and the design matrix (constant column
// first) from a cleaned table.
func Design(t *dataset.Table, response string, predictors []string) ([]float64, *mat.Dense, []string, error) {
	yv, err := t.Floats(response)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := checkFinite(response, yv); err != nil {
		return nil, nil, nil, err
	}
	cols := make([][]float64, len(predictors))
	for j, name := range predictors {
		v, err := t.Floats(name)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := checkFinite(name, v); err != nil {
			return nil, nil, nil, err
		}
		cols[j] = v
	}

	n, p := len(yv), len(predictors)+1
	x := mat.NewDense(n, p, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
		for j, c := range cols {
			x.Set(i, j+1, c[i])
		}
	}
	names := append([]string{InterceptName}, predictors...)
	y := append([]float64(nil), yv...)
	return y, x, names, nil
}

func checkFinite(column string, v []float64) error {
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return &MissingValueError{Column: column, Row: i + 1}
		}
	}
	return nil
}

// Estimate fits y = X·β by least squares. X must carry its own intercept column
// (see Design); names labels the columns of X.
func Estimate(response string, names []string, x *mat.Dense, y []float64) (*Fit, error) {
	n, p := x.Dims()
	if len(y) != n {
		return nil, fmt.Errorf("estimate: response has %d rows, design has %d", len(y), n)
	}
	if len(names) != p {
		return nil, fmt.Errorf("estimate: %d names for %d design columns", len(names), p)
	}

	var svd mat.SVD
	if ok := svd.Factorize(x, mat.SVDNone); !ok {
		return nil, fmt.Errorf("estimate: singular value decomposition failed")
	}
	sv := svd.Values(nil)
	rank := numericalRank(sv, n, p)
	if rank < p {
		return nil, &RankDeficiencyError{Rank: rank, Columns: p, Names: append([]string(nil), names...)}
	}
	if n <= p {
		return nil, fmt.Errorf("%w: %d observations for %d parameters", ErrTooFewObservations, n, p)
	}
	ybar := stat.Mean(y, nil)
	var tss float64
	for _, v := range y {
		tss += (v - ybar) * (v - ybar)
	}
	if tss == 0 {
		return nil, ErrConstantResponse
	}

	var qr mat.QR
	qr.Factorize(x)
	yVec := mat.NewVecDense(n, append([]float64(nil), y...))
	var beta mat.VecDense
	if err := qr.SolveVecTo(&beta, false, yVec); err != nil {
		return nil, fmt.Errorf("solve least squares: %w", err)
	}

	var fv mat.VecDense
	fv.MulVec(x, &beta)
	fitted := make([]float64, n)
	resid := make([]float64, n)
	for i := 0; i < n; i++ {
		fitted[i] = fv.AtVec(i)
		resid[i] = y[i] - fitted[i]
	}
	ssr := floats.Dot(resid, resid)

	f := &Fit{
		Response: response,
		Names:    append([]string(nil), names...),
		Params:   make([]float64, p),
		StdErr:   make([]float64, p),
		TValues:  make([]float64, p),
		PValues:  make([]float64, p),
		ConfLow:  make([]float64, p),
		ConfHigh: make([]float64, p),
		Fitted:   fitted,
		Resid:    resid,
		NObs:     n,
		DfModel:  float64(p - 1),
		DfResid:  float64(n - p),
		CondNo:   sv[0] / sv[len(sv)-1],
	}

	f.RSquared = clamp01(1 - ssr/tss)
	f.AdjRSquared = 1 - float64(n-1)/f.DfResid*(1-f.RSquared)

	// Covariance of β: σ²(XᵀX)⁻¹
	var xtx mat.SymDense
	xtx.SymOuterK(1, x.T())
	var chol mat.Cholesky
	if ok := chol.Factorize(&xtx); !ok {
		return nil, &RankDeficiencyError{Rank: rank, Columns: p, Names: f.Names}
	}
	var xtxInv mat.SymDense
	if err := chol.InverseTo(&xtxInv); err != nil {
		return nil, fmt.Errorf("invert normal equations: %w", err)
	}
	scale := ssr / f.DfResid
	tdist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: f.DfResid}
	crit := tdist.Quantile(0.975)
	for j := 0; j < p; j++ {
		b := beta.AtVec(j)
		se := math.Sqrt(scale * xtxInv.At(j, j))
		f.Params[j] = b
		f.StdErr[j] = se
		f.TValues[j] = b / se
		f.PValues[j] = 2 * tdist.Survival(math.Abs(b/se))
		f.ConfLow[j] = b - crit*se
		f.ConfHigh[j] = b + crit*se
	}

	switch {
	case f.DfModel == 0:
		f.FValue, f.FPValue = math.NaN(), math.NaN()
	case f.RSquared == 1:
		f.FValue, f.FPValue = math.Inf(1), 0
	default:
		f.FValue = (f.RSquared / f.DfModel) / ((1 - f.RSquared) / f.DfResid)
		f.FPValue = fSurvival(f.FValue, f.DfModel, f.DfResid)
	}

	nf := float64(n)
	f.LogLikelihood = -nf/2*math.Log(2*math.Pi) - nf/2*math.Log(ssr/nf) - nf/2
	k := f.DfModel + 1
	f.AIC = -2*f.LogLikelihood + 2*k
	f.BIC = -2*f.LogLikelihood + math.Log(nf)*k

	var dw float64
	for i := 1; i < n; i++ {
		d := resid[i] - resid[i-1]
		dw += d * d
	}
	f.DurbinWatson = dw / ssr

	m2 := stat.Moment(2, resid, nil)
	f.Skew = stat.Moment(3, resid, nil) / math.Pow(m2, 1.5)
	f.Kurtosis = stat.Moment(4, resid, nil) / (m2 * m2)
	f.JarqueBera = nf / 6 * (f.Skew*f.Skew + (f.Kurtosis-3)*(f.Kurtosis-3)/4)
	f.JBPValue = distuv.ChiSquared{K: 2}.Survival(f.JarqueBera)
	f.Omnibus = omnibusK2(f.Skew, f.Kurtosis, n)
	f.OmnibusPValue = distuv.ChiSquared{K: 2}.Survival(f.Omnibus)
	return f, nil
}

// fSurvival is P(F > x) for an F(d1, d2) variate, taken directly from the
// regularized incomplete beta so that tails below machine epsilon survive.
func fSurvival(x, d1, d2 float64) float64 {
	if x <= 0 {
		return 1
	}
	return mathext.RegIncBeta(d2/2, d1/2, d2/(d2+d1*x))
}

// omnibusK2 is D'Agostino and Pearson's K² normality statistic from the
// biased sample skew and (non-excess) kurtosis. It needs at least 8
// observations and is NaN below that.
func omnibusK2(skew, kurt float64, n int) float64 {
	if n < 8 || math.IsNaN(skew) || math.IsNaN(kurt) {
		return math.NaN()
	}
	nf := float64(n)

	// Skewness test.
	y := skew * math.Sqrt((nf+1)*(nf+3)/(6*(nf-2)))
	beta2 := 3 * (nf*nf + 27*nf - 70) * (nf + 1) * (nf + 3) / ((nf - 2) * (nf + 5) * (nf + 7) * (nf + 9))
	w2 := -1 + math.Sqrt(2*(beta2-1))
	delta := 1 / math.Sqrt(0.5*math.Log(w2))
	alpha := math.Sqrt(2 / (w2 - 1))
	if y == 0 {
		y = 1
	}
	zs := delta * math.Asinh(y/alpha)

	// Kurtosis test.
	e := 3 * (nf - 1) / (nf + 1)
	varb2 := 24 * nf * (nf - 2) * (nf - 3) / ((nf + 1) * (nf + 1) * (nf + 3) * (nf + 5))
	x := (kurt - e) / math.Sqrt(varb2)
	sqrtBeta1 := 6 * (nf*nf - 5*nf + 2) / ((nf + 7) * (nf + 9)) * math.Sqrt(6*(nf+3)*(nf+5)/(nf*(nf-2)*(nf-3)))
	a := 6 + 8/sqrtBeta1*(2/sqrtBeta1+math.Sqrt(1+4/(sqrtBeta1*sqrtBeta1)))
	denom := 1 + x*math.Sqrt(2/(a-4))
	if denom == 0 {
		return math.NaN()
	}
	term2 := math.Copysign(math.Cbrt((1-2/a)/math.Abs(denom)), denom)
	zk := (1 - 2/(9*a) - term2) / math.Sqrt(2/(9*a))

	return zs*zs + zk*zk
}

// numericalRank counts singular values above s_max·max(n, p)·ε.
func numericalRank(sv []float64, n, p int) int {
	if len(sv) == 0 {
		return 0
	}
	tol := sv[0] * float64(max(n, p)) * eps
	rank := 0
	for _, s := range sv {
		if s > tol {
			rank++
		}
	}
	return rank
}

const eps = 2.220446049250313e-16

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Coefficient returns the estimate for the named design column.
func (f *Fit) Coefficient(name string) (float64, bool) {
	for i, n := range f.Names {
		if n == name {
			return f.Params[i], true
		}
	}
	return 0, false
}
