// Package pipeline runs the agent performance regression end to end: load,
// clean, fit, report and plot.
package pipeline

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/KaramelBytes/agentreg-cli/internal/config"
	"github.com/KaramelBytes/agentreg-cli/internal/dataset"
	"github.com/KaramelBytes/agentreg-cli/internal/logging"
	"github.com/KaramelBytes/agentreg-cli/internal/plot"
	"github.com/KaramelBytes/agentreg-cli/internal/regression"
	"github.com/KaramelBytes/agentreg-cli/internal/utils"
	"github.com/google/uuid"
)

// complexityColumn gets a friendlier axis label on the factors figure.
const complexityColumn = "task_complexity"

// Result is what a run produced.
type Result struct {
	RunID     string
	Table     *dataset.Table
	Fit       *regression.Fit
	Summary   string
	Artifacts []Artifact
}

// Artifact is one file written by a run.
type Artifact struct {
	Kind string `yaml:"kind"`
	Path string `yaml:"path"`
}

// Artifact kinds.
const (
	KindScatter  = "regression_plot"
	KindFactors  = "factors_plot"
	KindSummary  = "summary"
	KindManifest = "manifest"
)

// DatasetOptions maps configuration onto loader options.
func DatasetOptions(c *config.Global) (dataset.Options, error) {
	opt := dataset.DefaultOptions()
	d, err := ParseSeparator(c.Delimiter)
	if err != nil {
		return opt, fmt.Errorf("delimiter: %w", err)
	}
	if d != 0 {
		opt.Delimiter = d
	}
	dec, err := ParseSeparator(c.DecimalSeparator)
	if err != nil {
		return opt, fmt.Errorf("decimal separator: %w", err)
	}
	if dec != 0 {
		opt.DecimalSeparator = dec
	}
	opt.Exclude = c.ExcludeColumns
	return opt, nil
}

// ParseSeparator accepts a single character or one of the names "tab",
// "comma", "semicolon", "dot". Empty input yields 0 (use the default).
func ParseSeparator(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "":
		return 0, nil
	case "tab", "\t":
		return '\t', nil
	case "comma":
		return ',', nil
	case "semicolon":
		return ';', nil
	case "dot":
		return '.', nil
	}
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("unsupported separator %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// LoadTable reads and cleans the configured input.
func LoadTable(c *config.Global, log *slog.Logger) (*dataset.Table, error) {
	opt, err := DatasetOptions(c)
	if err != nil {
		return nil, err
	}
	log.Debug("loading dataset", "path", c.Input, "delimiter", string(opt.Delimiter))
	t, err := dataset.Load(c.Input, opt)
	if err != nil {
		return nil, err
	}
	for _, name := range t.Dropped {
		log.Info("dropped empty column", "column", name)
	}
	if err := t.Clean(opt.DecimalSeparator); err != nil {
		return nil, fmt.Errorf("clean %s: %w", t.Name, err)
	}
	log.Debug("dataset ready", "rows", t.Rows, "columns", t.Names())
	return t, nil
}

// Run executes one analysis. The summary and confirmation lines go to out.
func Run(c *config.Global, out io.Writer, log *slog.Logger) (*Result, error) {
	if c == nil {
		return nil, fmt.Errorf("no configuration loaded")
	}
	if log == nil {
		log = logging.Discard()
	}
	if c.Response == "" || len(c.Predictors) == 0 {
		return nil, fmt.Errorf("response and predictors must be set")
	}
	res := &Result{RunID: uuid.NewString()}
	log = log.With("run_id", res.RunID)

	t, err := LoadTable(c, log)
	if err != nil {
		return nil, err
	}
	res.Table = t

	fit, err := regression.FitOLS(t, c.Response, c.Predictors)
	if err != nil {
		return nil, fmt.Errorf("fit %s: %w", c.Response, err)
	}
	res.Fit = fit
	log.Info("model fitted", "observations", fit.NObs, "r_squared", fit.RSquared, "cond_no", fit.CondNo)

	res.Summary = fit.Summary()
	fmt.Fprintln(out, res.Summary)

	if err := utils.EnsureDir(c.OutputDir); err != nil {
		return nil, err
	}
	if c.SummaryFile != "" {
		p := utils.OutputPath(c.OutputDir, c.SummaryFile)
		if err := utils.SafeWriteFile(p, []byte(res.Summary+"\n")); err != nil {
			return nil, fmt.Errorf("write summary: %w", err)
		}
		res.Artifacts = append(res.Artifacts, Artifact{Kind: KindSummary, Path: p})
		fmt.Fprintf(out, "✓ Wrote summary to %s\n", p)
	}

	actual, err := t.Floats(c.Response)
	if err != nil {
		return nil, err
	}
	scatterPath := utils.OutputPath(c.OutputDir, c.ScatterPlot)
	sopt := plot.DefaultScatterOptions()
	if c.ScatterDPI > 0 {
		sopt.DPI = c.ScatterDPI
	}
	if err := plot.WriteScatter(scatterPath, fit.Fitted, actual, fit.RSquared, sopt); err != nil {
		return nil, err
	}
	res.Artifacts = append(res.Artifacts, Artifact{Kind: KindScatter, Path: scatterPath})
	fmt.Fprintf(out, "✓ Wrote regression plot to %s\n", scatterPath)

	factorsPath := utils.OutputPath(c.OutputDir, c.FactorsPlot)
	if err := writeFactors(factorsPath, t, fit, c); err != nil {
		return nil, err
	}
	res.Artifacts = append(res.Artifacts, Artifact{Kind: KindFactors, Path: factorsPath})
	fmt.Fprintf(out, "✓ Wrote factors analysis to %s\n", factorsPath)

	if c.ManifestFile != "" {
		p := utils.OutputPath(c.OutputDir, c.ManifestFile)
		res.Artifacts = append(res.Artifacts, Artifact{Kind: KindManifest, Path: p})
		if err := WriteManifest(p, NewManifest(res, c.Input, time.Now().UTC())); err != nil {
			return nil, err
		}
		log.Debug("manifest written", "path", p)
	}
	return res, nil
}

func writeFactors(path string, t *dataset.Table, fit *regression.Fit, c *config.Global) error {
	coefs := make([]plot.Coefficient, 0, len(fit.Names))
	for i, name := range fit.Names {
		if name == regression.InterceptName {
			continue
		}
		coefs = append(coefs, plot.Coefficient{Name: name, Value: fit.Params[i]})
	}
	groupCol := c.GroupBy
	if groupCol == "" {
		groupCol = complexityColumn
	}
	keys, err := t.Floats(groupCol)
	if err != nil {
		return fmt.Errorf("group by: %w", err)
	}
	actual, err := t.Floats(c.Response)
	if err != nil {
		return err
	}
	groups, err := plot.GroupBy(keys, actual)
	if err != nil {
		return err
	}
	opt := plot.DefaultFactorsOptions()
	if c.FactorsDPI > 0 {
		opt.DPI = c.FactorsDPI
	}
	if groupCol != complexityColumn {
		opt.GroupLabel = groupCol
	}
	return plot.WriteFactors(path, coefs, groups, opt)
}
