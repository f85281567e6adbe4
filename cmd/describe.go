package cmd

import (
	"fmt"

	"github.com/KaramelBytes/agentreg-cli/internal/dataset"
	"github.com/KaramelBytes/agentreg-cli/internal/pipeline"
	"github.com/KaramelBytes/agentreg-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	descOutputPath string
	descDelimiter  string
	descDecimal    string
	descExclude    []string
)

var describeCmd = &cobra.Command{
	Use:   "describe [file]",
	Short: "Profile the dataset columns without fitting a model",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := ensureConfig()
		if err != nil {
			return err
		}
		c := *base
		if len(args) == 1 {
			c.Input = args[0]
		}
		if cmd.Flags().Changed("delimiter") {
			c.Delimiter = descDelimiter
		}
		if cmd.Flags().Changed("decimal") {
			c.DecimalSeparator = descDecimal
		}
		if cmd.Flags().Changed("exclude") {
			c.ExcludeColumns = descExclude
		}

		t, err := pipeline.LoadTable(&c, newLogger(&c))
		if err != nil {
			return err
		}
		prof, err := dataset.Describe(t)
		if err != nil {
			return err
		}
		md := prof.Markdown()

		out := cmd.OutOrStdout()
		if descOutputPath != "" {
			if err := utils.SafeWriteFile(descOutputPath, []byte(md)); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(out, "✓ Wrote dataset summary to %s\n", descOutputPath)
			return nil
		}
		fmt.Fprintln(out, md)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().StringVarP(&descOutputPath, "output", "o", "", "optional path to write the profile (Markdown)")
	describeCmd.Flags().StringVar(&descDelimiter, "delimiter", "", "field delimiter: ';' | ',' | 'tab'")
	describeCmd.Flags().StringVar(&descDecimal, "decimal", "", "decimal separator in numeric cells: ','|'.'")
	describeCmd.Flags().StringSliceVar(&descExclude, "exclude", nil, "comma-separated columns to drop before cleaning")
}
