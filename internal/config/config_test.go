package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Input != "agents_data_ml.csv" || c.Delimiter != ";" || c.DecimalSeparator != "," {
		t.Fatalf("unexpected input defaults: %+v", c)
	}
	if c.Response != "accuracy_score" {
		t.Fatalf("response = %q", c.Response)
	}
	if strings.Join(c.Predictors, ",") != "execution_time_seconds,cost_per_task_cents,task_complexity" {
		t.Fatalf("predictors = %v", c.Predictors)
	}
	if c.ScatterPlot != "regression_analysis_plot.png" || c.FactorsPlot != "factors_analysis.png" {
		t.Fatalf("unexpected plot names: %+v", c)
	}
	if c.ScatterDPI != 300 || c.FactorsDPI != 100 {
		t.Fatalf("dpi = %v/%v", c.ScatterDPI, c.FactorsDPI)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".agentreg")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	yml := "output_dir: out\nscatter_dpi: 150\npredictors: [a, b]\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("AGENTREG_OUTPUT_DIR", "/tmp/plots")

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.OutputDir != "/tmp/plots" {
		t.Fatalf("env should win over file, got %q", c.OutputDir)
	}
	if c.ScatterDPI != 150 {
		t.Fatalf("scatter_dpi = %v, want 150 from file", c.ScatterDPI)
	}
	if strings.Join(c.Predictors, ",") != "a,b" {
		t.Fatalf("predictors = %v", c.Predictors)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	c.GroupBy = "cost_per_task_cents"
	c.ExcludeColumns = []string{"agent_name"}
	path := filepath.Join(t.TempDir(), "agentreg.yaml")
	if err := Save(c, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load saved: %v", err)
	}
	if back.GroupBy != "cost_per_task_cents" || len(back.ExcludeColumns) != 1 || back.ExcludeColumns[0] != "agent_name" {
		t.Fatalf("round trip mismatch: %+v", back)
	}
}
