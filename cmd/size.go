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
	sizeInput  string
	sizeOutput string
	sizeApply  bool
)

var sizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Find the minimum storage capacity that covers the trace",
	RunE:  runSize,
}

func init() {
	sizeCmd.Flags().StringVarP(&sizeInput, "input", "i", "", "CSV power trace (required)")
	sizeCmd.Flags().StringVarP(&sizeOutput, "output", "o", "-", "report destination, - for stdout")
	sizeCmd.Flags().BoolVar(&sizeApply, "apply", false, "also replay the found capacity and report unmet demand")
	_ = sizeCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(sizeCmd)
}

func runSize(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	series, err := trace.ReadFile(sizeInput)
	if err != nil {
		return fmt.Errorf("load trace: %w", err)
	}

	p := planner.New(cfg.Battery, cfg.Sizing, cfg.Reallocation, logger.New("size"), newSink(cfg))
	report, err := p.SizeStorage(series, sizeApply)
	if err != nil {
		return err
	}

	w, done, err := openOutput(sizeOutput)
	if err != nil {
		return err
	}
	defer done()
	return export.WriteJSON(w, report)
}
