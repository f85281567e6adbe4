package regression

import (
	"fmt"
	"math"
	"strings"
)

const summaryWidth = 78

// Summary renders the fit as a fixed-width text report. The output depends
// only on the fit, so identical input yields byte-identical text.
func (f *Fit) Summary() string {
	var b strings.Builder
	title := "OLS Regression Results"
	pad := (summaryWidth - len(title)) / 2
	b.WriteString(strings.Repeat(" ", pad) + title + "\n")
	b.WriteString(strings.Repeat("=", summaryWidth) + "\n")

	left := [][2]string{
		{"Dep. Variable:", truncate(f.Response, 20)},
		{"Model:", "OLS"},
		{"Method:", "Least Squares"},
		{"No. Observations:", fmt.Sprintf("%d", f.NObs)},
		{"Df Residuals:", fmt.Sprintf("%.0f", f.DfResid)},
		{"Df Model:", fmt.Sprintf("%.0f", f.DfModel)},
		{"Covariance Type:", "nonrobust"},
	}
	right := [][2]string{
		{"R-squared:", fmt.Sprintf("%.3f", f.RSquared)},
		{"Adj. R-squared:", fmt.Sprintf("%.3f", f.AdjRSquared)},
		{"F-statistic:", num(f.FValue, 4)},
		{"Prob (F-statistic):", num(f.FPValue, 3)},
		{"Log-Likelihood:", num(f.LogLikelihood, 5)},
		{"AIC:", num(f.AIC, 4)},
		{"BIC:", num(f.BIC, 4)},
	}
	writePairs(&b, left, right)

	nameW := 6
	for _, n := range f.Names {
		if len(n)+1 > nameW {
			nameW = len(n) + 1
		}
	}
	tableW := max(summaryWidth, nameW+63)
	b.WriteString(strings.Repeat("=", tableW) + "\n")
	b.WriteString(fmt.Sprintf("%-*s%10s%11s%11s%11s%10s%10s\n", nameW, "", "coef", "std err", "t", "P>|t|", "[0.025", "0.975]"))
	b.WriteString(strings.Repeat("-", tableW) + "\n")
	for i, n := range f.Names {
		b.WriteString(fmt.Sprintf("%-*s%10.4f%11.3f%11.3f%11.3f%10.3f%10.3f\n",
			nameW, n, f.Params[i], f.StdErr[i], f.TValues[i], f.PValues[i], f.ConfLow[i], f.ConfHigh[i]))
	}
	b.WriteString(strings.Repeat("=", tableW) + "\n")

	writePairs(&b,
		[][2]string{
			{"Omnibus:", num3(f.Omnibus)},
			{"Prob(Omnibus):", num3(f.OmnibusPValue)},
			{"Skew:", num3(f.Skew)},
			{"Kurtosis:", num3(f.Kurtosis)},
		},
		[][2]string{
			{"Durbin-Watson:", num3(f.DurbinWatson)},
			{"Jarque-Bera (JB):", num3(f.JarqueBera)},
			{"Prob(JB):", num(f.JBPValue, 3)},
			{"Cond. No.", num(f.CondNo, 3)},
		})
	b.WriteString(strings.Repeat("=", summaryWidth) + "\n\n")

	b.WriteString("Notes:\n")
	b.WriteString("[1] Standard Errors assume that the covariance matrix of the errors is correctly specified.\n")
	if f.CondNo > 1000 {
		b.WriteString(fmt.Sprintf("[2] The condition number is large, %.3g. This might indicate that there are\n", f.CondNo))
		b.WriteString("strong multicollinearity or other numerical problems.\n")
	}
	return b.String()
}

func writePairs(b *strings.Builder, left, right [][2]string) {
	for i := range left {
		b.WriteString(fmt.Sprintf("%-19s%20s   %-19s%17s\n", left[i][0], left[i][1], right[i][0], right[i][1]))
	}
}

// num formats with the given significant digits, keeping infinities and NaN readable.
func num(v float64, digits int) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return fmt.Sprintf("%.*g", digits, v)
}

// num3 is fixed three-decimal formatting that still prints nan and inf.
func num3(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return num(v, 3)
	}
	return fmt.Sprintf("%.3f", v)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
