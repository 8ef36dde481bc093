// Package cmd - classify command
package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"presolar/core/batch"
	"presolar/core/classify"
	"presolar/core/output"
	"presolar/internal/config"
	"presolar/internal/logging"
)

var (
	grainID      string
	c12c13Flag   string
	n14n15Flag   string
	si29Flag     string
	si30Flag     string
	al26Flag     string
	rhoSi        float64
	showProbs    bool
	outputFormat string
)

// classifyCmd classifies a single grain given on the command line
var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify a single grain",
	Long: `Classify one grain from its isotope measurements.

Each measurement is "value", "value:sigma" or "value:+sigmaPlus:-sigmaMinus".
Omitted uncertainties default to a tenth of the value. Silicon values are
delta values in permil and must have symmetric uncertainties.

Examples:
  presolar classify --si29=-500:1 --si30=-700:1
  presolar classify --c12c13 258.2:8.8 --n14n15 529.2:+67.3:-53.7 \
    --si29 23.23:4.72 --si30 134.98:3.93 --al26al27 0.00089:0.00018 --rho=-0.27
  presolar classify --c12c13 4.83:0.048 --probabilities`,
	Args: cobra.NoArgs,
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().StringVar(&grainID, "id", "grain", "grain identifier used in the output")
	classifyCmd.Flags().StringVar(&c12c13Flag, "c12c13", "", "12C/13C ratio")
	classifyCmd.Flags().StringVar(&n14n15Flag, "n14n15", "", "14N/15N ratio")
	classifyCmd.Flags().StringVar(&si29Flag, "si29", "", "d(29Si/28Si) in permil")
	classifyCmd.Flags().StringVar(&si30Flag, "si30", "", "d(30Si/28Si) in permil")
	classifyCmd.Flags().StringVar(&al26Flag, "al26al27", "", "26Al/27Al ratio")
	classifyCmd.Flags().Float64Var(&rhoSi, "rho", 0, "correlation between d30Si and d29Si errors")
	classifyCmd.Flags().BoolVarP(&showProbs, "probabilities", "p", false, "show the probability of every type")
	classifyCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, json, csv)")
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	start := time.Now()

	grain, err := grainFromFlags()
	if err != nil {
		return err
	}

	formatter, err := output.Get(formatOrDefault(outputFormat, cfg))
	if err != nil {
		return err
	}

	res, err := classify.Classify(grain)
	if err != nil {
		return fmt.Errorf("failed to classify grain: %w", err)
	}

	logging.Debug("grain classified",
		zap.String("id", grainID),
		zap.Stringer("type", res.Type),
		zap.String("subtype", string(res.Subtype)),
		zap.Duration("duration", time.Since(start)))

	report := &batch.Report{
		Outcomes: []batch.Outcome{{ID: grainID, Result: res}},
		Stats: batch.Stats{
			Total:      1,
			Classified: 1,
			ByType:     map[string]int{res.Type.String(): 1},
			Workers:    1,
			StartTime:  start,
			Duration:   time.Since(start),
		},
	}
	opts := output.Options{ShowProbabilities: showProbs || cfg.Output.ShowProbabilities}
	return formatter.Render(cmd.OutOrStdout(), report, opts)
}

func grainFromFlags() (classify.Grain, error) {
	g := classify.Grain{RhoSi: rhoSi}
	for _, f := range []struct {
		name  string
		value string
		dst   *classify.Measurement
	}{
		{"c12c13", c12c13Flag, &g.C12C13},
		{"n14n15", n14n15Flag, &g.N14N15},
		{"si29", si29Flag, &g.D29Si},
		{"si30", si30Flag, &g.D30Si},
		{"al26al27", al26Flag, &g.Al26Al27},
	} {
		m, err := classify.ParseMeasurement(f.value)
		if err != nil {
			return g, fmt.Errorf("--%s: %w", f.name, err)
		}
		*f.dst = m
	}
	return g, nil
}

func formatOrDefault(flag string, cfg *config.Config) string {
	if flag != "" {
		return flag
	}
	return cfg.Output.DefaultFormat
}
