package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/agentreg-cli/internal/config"
	"github.com/KaramelBytes/agentreg-cli/internal/logging"
	"github.com/KaramelBytes/agentreg-cli/internal/pipeline"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set agentreg configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := ensureConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "input: %s\n", cfg.Input)
		fmt.Fprintf(out, "delimiter: %q\n", cfg.Delimiter)
		fmt.Fprintf(out, "decimal_separator: %q\n", cfg.DecimalSeparator)
		if len(cfg.ExcludeColumns) > 0 {
			fmt.Fprintf(out, "exclude_columns: %s\n", strings.Join(cfg.ExcludeColumns, ","))
		}
		fmt.Fprintf(out, "response: %s\n", cfg.Response)
		fmt.Fprintf(out, "predictors: %s\n", strings.Join(cfg.Predictors, ","))
		fmt.Fprintf(out, "group_by: %s\n", cfg.GroupBy)
		fmt.Fprintf(out, "output_dir: %s\n", cfg.OutputDir)
		fmt.Fprintf(out, "scatter_plot: %s\n", cfg.ScatterPlot)
		fmt.Fprintf(out, "factors_plot: %s\n", cfg.FactorsPlot)
		fmt.Fprintf(out, "scatter_dpi: %g\n", cfg.ScatterDPI)
		fmt.Fprintf(out, "factors_dpi: %g\n", cfg.FactorsDPI)
		if cfg.SummaryFile != "" {
			fmt.Fprintf(out, "summary_file: %s\n", cfg.SummaryFile)
		}
		if cfg.ManifestFile != "" {
			fmt.Fprintf(out, "manifest_file: %s\n", cfg.ManifestFile)
		}
		fmt.Fprintf(out, "log_level: %s\n", cfg.LogLevel)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		switch key {
		case "input":
			c.Input = val
		case "delimiter", "decimal_separator":
			if _, err := pipeline.ParseSeparator(val); err != nil {
				return fmt.Errorf("invalid %s: %w", key, err)
			}
			if key == "delimiter" {
				c.Delimiter = val
			} else {
				c.DecimalSeparator = val
			}
		case "exclude_columns":
			c.ExcludeColumns = splitList(val)
		case "response":
			c.Response = val
		case "predictors":
			p := splitList(val)
			if len(p) == 0 {
				return fmt.Errorf("predictors must name at least one column")
			}
			c.Predictors = p
		case "group_by":
			c.GroupBy = val
		case "output_dir":
			c.OutputDir = val
		case "scatter_plot":
			c.ScatterPlot = val
		case "factors_plot":
			c.FactorsPlot = val
		case "scatter_dpi", "factors_dpi":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 {
				return fmt.Errorf("invalid positive float for %s: %v", key, val)
			}
			if key == "scatter_dpi" {
				c.ScatterDPI = f
			} else {
				c.FactorsDPI = f
			}
		case "summary_file":
			c.SummaryFile = val
		case "manifest_file":
			c.ManifestFile = val
		case "log_level":
			switch strings.ToUpper(val) {
			case logging.LevelDebug, logging.LevelInfo, logging.LevelWarn, logging.LevelError:
				c.LogLevel = strings.ToUpper(val)
			default:
				return fmt.Errorf("invalid log_level: %s (use DEBUG, INFO, WARN or ERROR)", val)
			}
		default:
			return fmt.Errorf("unknown key: %s (valid: %s)", key, strings.Join(cfgpkg.Keys, ", "))
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

// splitList parses a comma-separated value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
