package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gridcap/renew247/config"
	"github.com/gridcap/renew247/core/planner"
	"github.com/gridcap/renew247/infra/logger"
	"github.com/gridcap/renew247/infra/trace"
	"github.com/gridcap/renew247/pkg/export"
)

var (
	shiftInput  string
	shiftOutput string
	shiftFormat string
)

var shiftCmd = &cobra.Command{
	Use:   "shift",
	Short: "Redistribute flexible workload within each day window",
	RunE:  runShift,
}

func init() {
	shiftCmd.Flags().StringVarP(&shiftInput, "input", "i", "", "CSV power trace (required)")
	shiftCmd.Flags().StringVarP(&shiftOutput, "output", "o", "-", "result destination, - for stdout")
	shiftCmd.Flags().StringVarP(&shiftFormat, "format", "f", "csv", "output format: csv or json")
	_ = shiftCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(shiftCmd)
}

func runShift(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	series, err := trace.ReadFile(shiftInput)
	if err != nil {
		return fmt.Errorf("load trace: %w", err)
	}

	p := planner.New(cfg.Battery, cfg.Sizing, cfg.Reallocation, logger.New("shift"), newSink(cfg))
	report, err := p.ShiftWorkload(series)
	if err != nil {
		return err
	}

	w, done, err := openOutput(shiftOutput)
	if err != nil {
		return err
	}
	defer done()
	switch shiftFormat {
	case "csv":
		return export.WriteSeriesCSV(w, report.Series)
	case "json":
		return export.WriteJSON(w, report)
	default:
		return fmt.Errorf("unknown output format %q", shiftFormat)
	}
}
