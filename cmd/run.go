package cmd

import (
	"github.com/KaramelBytes/agentreg-cli/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	runDelimiter   string
	runDecimal     string
	runOutputDir   string
	runResponse    string
	runPredictors  []string
	runGroupBy     string
	runExclude     []string
	runScatterPlot string
	runFactorsPlot string
	runScatterDPI  float64
	runFactorsDPI  float64
	runSummaryPath string
	runManifest    string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Fit the accuracy regression, print the summary and write the plots",
	Long: `Loads the agents dataset (agents_data_ml.csv unless a file is given),
converts comma decimals, fits accuracy_score on the configured predictors plus
an intercept, prints the OLS summary and writes regression_analysis_plot.png
and factors_analysis.png.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := ensureConfig()
		if err != nil {
			return err
		}
		c := *base
		if len(args) == 1 {
			c.Input = args[0]
		}
		f := cmd.Flags()
		if f.Changed("delimiter") {
			c.Delimiter = runDelimiter
		}
		if f.Changed("decimal") {
			c.DecimalSeparator = runDecimal
		}
		if f.Changed("output-dir") {
			c.OutputDir = runOutputDir
		}
		if f.Changed("response") {
			c.Response = runResponse
		}
		if f.Changed("predictors") {
			c.Predictors = runPredictors
		}
		if f.Changed("group-by") {
			c.GroupBy = runGroupBy
		}
		if f.Changed("exclude") {
			c.ExcludeColumns = runExclude
		}
		if f.Changed("scatter-plot") {
			c.ScatterPlot = runScatterPlot
		}
		if f.Changed("factors-plot") {
			c.FactorsPlot = runFactorsPlot
		}
		if f.Changed("scatter-dpi") && runScatterDPI > 0 {
			c.ScatterDPI = runScatterDPI
		}
		if f.Changed("factors-dpi") && runFactorsDPI > 0 {
			c.FactorsDPI = runFactorsDPI
		}
		if f.Changed("summary") {
			c.SummaryFile = runSummaryPath
		}
		if f.Changed("manifest") {
			c.ManifestFile = runManifest
		}

		_, err = pipeline.Run(&c, cmd.OutOrStdout(), newLogger(&c))
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&runDelimiter, "delimiter", "", "field delimiter: ';' | ',' | 'tab'")
	runCmd.Flags().StringVar(&runDecimal, "decimal", "", "decimal separator in numeric cells: ','|'.'")
	runCmd.Flags().StringVar(&runOutputDir, "output-dir", "", "directory for plots and other outputs")
	runCmd.Flags().StringVar(&runResponse, "response", "", "response column")
	runCmd.Flags().StringSliceVar(&runPredictors, "predictors", nil, "comma-separated predictor columns")
	runCmd.Flags().StringVar(&runGroupBy, "group-by", "", "column used to group the accuracy box plot")
	runCmd.Flags().StringSliceVar(&runExclude, "exclude", nil, "comma-separated columns to drop before cleaning")
	runCmd.Flags().StringVar(&runScatterPlot, "scatter-plot", "", "file name of the predicted vs actual plot")
	runCmd.Flags().StringVar(&runFactorsPlot, "factors-plot", "", "file name of the factors plot")
	runCmd.Flags().Float64Var(&runScatterDPI, "scatter-dpi", 0, "resolution of the predicted vs actual plot")
	runCmd.Flags().Float64Var(&runFactorsDPI, "factors-dpi", 0, "resolution of the factors plot")
	runCmd.Flags().StringVarP(&runSummaryPath, "summary", "o", "", "also write the summary text to this file")
	runCmd.Flags().StringVar(&runManifest, "manifest", "", "write a YAML run manifest to this file")
}
