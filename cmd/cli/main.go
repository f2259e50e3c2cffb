package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"inferkit/adapters/excel"
	"inferkit/app"
	"inferkit/domain/stats"
	"inferkit/internal/inference"
	"inferkit/internal/testkit"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "inferkit",
		Short: "Statistical inference calculator: intervals, hypothesis tests, sample sizing, regression",
	}

	rootCmd.AddCommand(
		newIntervalCmd(),
		newTestCmd(),
		newSampleSizeCmd(),
		newRegressCmd(),
		newSweepCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// sampleFlags are the shared ways to describe a sample on the command line
type sampleFlags struct {
	mean   float64
	stdDev float64
	n      int
	data   string
	file   string
	column string
}

func (f *sampleFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.mean, "mean", 0, "Sample mean")
	cmd.Flags().Float64Var(&f.stdDev, "std-dev", 0, "Sample standard deviation")
	cmd.Flags().IntVar(&f.n, "n", 0, "Sample size")
	cmd.Flags().StringVar(&f.data, "data", "", "Raw values, comma separated (overrides summary flags)")
	cmd.Flags().StringVar(&f.file, "file", "", "Spreadsheet or CSV to read raw values from")
	cmd.Flags().StringVar(&f.column, "column", "", "Column name within --file")
}

func (f *sampleFlags) resolve(ctx context.Context) (app.SampleInput, error) {
	switch {
	case f.file != "":
		if f.column == "" {
			return app.SampleInput{}, fmt.Errorf("--column is required with --file")
		}
		values, err := excel.NewDataReader(f.file).ReadColumn(ctx, f.column)
		if err != nil {
			return app.SampleInput{}, err
		}
		return app.SampleInput{RawValues: values}, nil
	case f.data != "":
		values, err := inference.ParseRawValues(f.data)
		if err != nil {
			return app.SampleInput{}, err
		}
		return app.SampleInput{RawValues: values}, nil
	default:
		return app.SampleInput{Mean: f.mean, StdDev: f.stdDev, N: f.n}, nil
	}
}

func newIntervalCmd() *cobra.Command {
	var sample sampleFlags
	var confidence float64

	cmd := &cobra.Command{
		Use:   "interval",
		Short: "Confidence interval for the population mean",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := sample.resolve(cmd.Context())
			if err != nil {
				return err
			}
			svc := app.NewAnalysisService(testkit.NewInMemoryLedger())
			resp, err := svc.ComputeInterval(cmd.Context(), app.IntervalRequest{
				Sample:     input,
				Confidence: confidence,
			})
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}

	sample.register(cmd)
	cmd.Flags().Float64Var(&confidence, "confidence", 0.95, "Confidence level in (0, 1)")
	return cmd
}

func newTestCmd() *cobra.Command {
	var sample sampleFlags
	var nullMean, alpha float64
	var tail string

	cmd := &cobra.Command{
		Use:   "test",
		Short: "One-sample Z/T hypothesis test against a null mean",
		Long: `Test the sample mean against a hypothesized population mean. The
distribution follows the sample size: Z for n >= 30, Student's T otherwise.

Example: inferkit test --mean 100 --std-dev 15 --n 25 --null 95 --alpha 0.05`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := sample.resolve(cmd.Context())
			if err != nil {
				return err
			}
			svc := app.NewAnalysisService(testkit.NewInMemoryLedger())
			req := app.HypothesisRequest{
				Sample: input,
				Alpha:  alpha,
				Tail:   stats.TailMode(tail),
			}
			if cmd.Flags().Changed("null") {
				req.NullMean = &nullMean
			}
			resp, err := svc.RunHypothesisTest(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}

	sample.register(cmd)
	cmd.Flags().Float64Var(&nullMean, "null", 0, "Null hypothesis mean (defaults to the sample mean)")
	cmd.Flags().Float64Var(&alpha, "alpha", 0.05, "Significance level")
	cmd.Flags().StringVar(&tail, "tail", string(stats.TailTwoSided), "Tail mode: two_sided, left, right")
	return cmd
}

func newSampleSizeCmd() *cobra.Command {
	var stdDev, moe, confidence, critical float64

	cmd := &cobra.Command{
		Use:   "samplesize",
		Short: "Minimum n for a target margin of error",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := app.NewAnalysisService(testkit.NewInMemoryLedger())
			resp, err := svc.PlanSampleSize(cmd.Context(), app.SampleSizeRequest{
				StdDev:        stdDev,
				TargetMoE:     moe,
				Confidence:    confidence,
				CriticalValue: critical,
			})
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}

	cmd.Flags().Float64Var(&stdDev, "std-dev", 0, "Assumed standard deviation")
	cmd.Flags().Float64Var(&moe, "moe", 0, "Target margin of error")
	cmd.Flags().Float64Var(&confidence, "confidence", 0.95, "Confidence level in (0, 1)")
	cmd.Flags().Float64Var(&critical, "critical", 0, "Explicit critical value (overrides --confidence)")
	return cmd
}

func newRegressCmd() *cobra.Command {
	var xData, yData string
	var file, xColumn, yColumn string
	var predictAt []float64

	cmd := &cobra.Command{
		Use:   "regress",
		Short: "Bivariate OLS regression of y on x",
		RunE: func(cmd *cobra.Command, args []string) error {
			var x, y []float64
			var err error
			if file != "" {
				reader := excel.NewDataReader(file)
				if x, err = reader.ReadColumn(cmd.Context(), xColumn); err != nil {
					return err
				}
				if y, err = reader.ReadColumn(cmd.Context(), yColumn); err != nil {
					return err
				}
			} else {
				if x, err = inference.ParseRawValues(xData); err != nil {
					return err
				}
				if y, err = inference.ParseRawValues(yData); err != nil {
					return err
				}
			}

			svc := app.NewAnalysisService(testkit.NewInMemoryLedger())
			resp, err := svc.FitRegression(cmd.Context(), app.RegressionRequest{
				X:         x,
				Y:         y,
				PredictAt: predictAt,
			})
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}

	cmd.Flags().StringVar(&xData, "x", "", "X values, comma separated")
	cmd.Flags().StringVar(&yData, "y", "", "Y values, comma separated")
	cmd.Flags().StringVar(&file, "file", "", "Spreadsheet or CSV to read columns from")
	cmd.Flags().StringVar(&xColumn, "x-column", "", "X column name within --file")
	cmd.Flags().StringVar(&yColumn, "y-column", "", "Y column name within --file")
	cmd.Flags().Float64SliceVar(&predictAt, "predict-at", nil, "New x values to predict at")
	return cmd
}

func newSweepCmd() *cobra.Command {
	var file string
	var columns []string
	var nullMean, alpha float64
	var tail string

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run one hypothesis test across many columns of a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return fmt.Errorf("--file is required")
			}

			ledger := testkit.NewInMemoryLedger()
			analysis := app.NewAnalysisService(ledger)
			batch := app.NewBatchService(excel.NewDataReader(file), analysis, ledger)

			req := app.SweepRequest{
				Columns: columns,
				Alpha:   alpha,
				Tail:    stats.TailMode(tail),
			}
			if cmd.Flags().Changed("null") {
				req.NullMean = &nullMean
			}
			resp, err := batch.RunSweep(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Spreadsheet or CSV to sweep")
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "Columns to test (default: all)")
	cmd.Flags().Float64Var(&nullMean, "null", 0, "Null hypothesis mean (defaults to each column's mean)")
	cmd.Flags().Float64Var(&alpha, "alpha", 0.05, "Significance level")
	cmd.Flags().StringVar(&tail, "tail", string(stats.TailTwoSided), "Tail mode: two_sided, left, right")
	return cmd
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
