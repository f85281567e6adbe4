package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	Input            string   `mapstructure:"input" yaml:"input"`
	Delimiter        string   `mapstructure:"delimiter" yaml:"delimiter"`
	DecimalSeparator string   `mapstructure:"decimal_separator" yaml:"decimal_separator"`
	ExcludeColumns   []string `mapstructure:"exclude_columns" yaml:"exclude_columns"`

	// Model
	Response   string   `mapstructure:"response" yaml:"response"`
	Predictors []string `mapstructure:"predictors" yaml:"predictors"`
	GroupBy    string   `mapstructure:"group_by" yaml:"group_by"`

	// Outputs
	OutputDir    string  `mapstructure:"output_dir" yaml:"output_dir"`
	ScatterPlot  string  `mapstructure:"scatter_plot" yaml:"scatter_plot"`
	FactorsPlot  string  `mapstructure:"factors_plot" yaml:"factors_plot"`
	ScatterDPI   float64 `mapstructure:"scatter_dpi" yaml:"scatter_dpi"`
	FactorsDPI   float64 `mapstructure:"factors_dpi" yaml:"factors_dpi"`
	SummaryFile  string  `mapstructure:"summary_file" yaml:"summary_file"`
	ManifestFile string  `mapstructure:"manifest_file" yaml:"manifest_file"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// Keys lists the settable configuration keys in display order.
var Keys = []string{
	"input", "delimiter", "decimal_separator", "exclude_columns",
	"response", "predictors", "group_by",
	"output_dir", "scatter_plot", "factors_plot", "scatter_dpi", "factors_dpi",
	"summary_file", "manifest_file", "log_level",
}

func defaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".agentreg", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.agentreg/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := defaultPath()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = p
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Command flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("AGENTREG")
	v.AutomaticEnv()

	v.SetDefault("input", "agents_data_ml.csv")
	v.SetDefault("delimiter", ";")
	v.SetDefault("decimal_separator", ",")
	v.SetDefault("exclude_columns", []string{})
	v.SetDefault("response", "accuracy_score")
	v.SetDefault("predictors", []string{"execution_time_seconds", "cost_per_task_cents", "task_complexity"})
	v.SetDefault("group_by", "task_complexity")
	v.SetDefault("output_dir", ".")
	v.SetDefault("scatter_plot", "regression_analysis_plot.png")
	v.SetDefault("factors_plot", "factors_analysis.png")
	v.SetDefault("scatter_dpi", 300)
	v.SetDefault("factors_dpi", 100)
	v.SetDefault("summary_file", "")
	v.SetDefault("manifest_file", "")
	v.SetDefault("log_level", "WARN")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		p, err := defaultPath()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(filepath.Dir(p))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
