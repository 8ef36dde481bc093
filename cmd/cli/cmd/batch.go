// Package cmd - batch command
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"presolar/core/batch"
	"presolar/core/input"
	"presolar/core/output"
	"presolar/internal/config"
	"presolar/internal/errors"
	"presolar/internal/logging"
)

var (
	batchWorkers     int
	batchCompare     bool
	batchStopOnError bool
	batchFailOnDiff  bool
	batchProbs       bool
	batchFormat      string
)

// batchCmd classifies every grain in a CSV or JSON file
var batchCmd = &cobra.Command{
	Use:   "batch FILE",
	Short: "Classify every grain in a CSV or JSON file",
	Long: `Classify a table of grains.

CSV files use PGD column names: "PGD ID", "12C/13C", "err[12C/13C]",
"err+[14N/15N]", "err-[14N/15N]", "d(29Si/28Si)", "rho[30Si-29Si]" and so on.
Empty and "nan" cells are absent values. JSON files hold an array of grains,
or an object with a "grains" array.

With --compare, grains carrying a "PGD Type" are checked against the
computed type and mismatches are reported.

Examples:
  presolar batch grains.csv
  presolar batch grains.csv --compare --probabilities
  presolar batch grains.json --format json --workers 8`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "number of parallel workers (default from config)")
	batchCmd.Flags().BoolVar(&batchCompare, "compare", false, "compare against recorded types")
	batchCmd.Flags().BoolVar(&batchStopOnError, "stop-on-error", false, "abort at the first invalid grain")
	batchCmd.Flags().BoolVar(&batchFailOnDiff, "fail-on-mismatch", false, "exit with an error when --compare finds mismatches")
	batchCmd.Flags().BoolVarP(&batchProbs, "probabilities", "p", false, "show the probability of every type")
	batchCmd.Flags().StringVarP(&batchFormat, "format", "f", "", "output format (cli, json, csv)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	path := args[0]

	formatter, err := output.Get(formatOrDefault(batchFormat, cfg))
	if err != nil {
		return err
	}

	records, err := readRecords(path)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no grains found in %s", path)
	}

	runner := batch.NewRunner(batchOptions(cmd, cfg))
	report, err := runner.Run(context.Background(), records)
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	opts := output.Options{
		ShowProbabilities: batchProbs || cfg.Output.ShowProbabilities,
		Compare:           batchCompare || cfg.Batch.Compare,
	}
	if err := formatter.Render(cmd.OutOrStdout(), report, opts); err != nil {
		return err
	}

	if batchFailOnDiff && opts.Compare && report.Stats.Mismatched > 0 {
		return fmt.Errorf("%d of %d grains differ from their recorded type",
			report.Stats.Mismatched, report.Stats.Total)
	}
	return nil
}

func batchOptions(cmd *cobra.Command, cfg *config.Config) batch.Options {
	opts := batch.Options{
		Workers:     cfg.Batch.Workers,
		StopOnError: cfg.Batch.StopOnError,
	}
	if cmd.Flags().Changed("workers") {
		opts.Workers = batchWorkers
	}
	if cmd.Flags().Changed("stop-on-error") {
		opts.StopOnError = batchStopOnError
	}
	return opts
}

// readRecords picks a reader from the file extension
func readRecords(path string) ([]input.Record, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.NotFound("input file", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return input.DecodeJSON(f)
	case ".csv", ".txt", "":
		table, err := input.ReadCSV(f)
		if err != nil {
			return nil, err
		}
		log := logging.With(zap.String("file", path))
		if len(table.Missing) > 0 {
			log.Warn("ratios missing from table, treating them as absent",
				zap.Strings("ratios", table.Missing))
		}
		log.Debug("read table", zap.Int("grains", len(table.Records)))
		return table.Records, nil
	default:
		return nil, errors.NotSupported(
			fmt.Sprintf("file type %q (use .csv or .json)", filepath.Ext(path)))
	}
}
