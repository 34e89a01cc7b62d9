package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gridcap/renew247/config"
	coremetrics "github.com/gridcap/renew247/core/metrics"
	inframetrics "github.com/gridcap/renew247/infra/metrics"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "renew247",
	Short: "Offline renewable coverage planner for datacenter power traces",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// newSink builds the metrics sink selected by the configuration.
func newSink(cfg *config.Config) coremetrics.MetricsSink {
	if cfg.Influx.Enabled {
		return inframetrics.NewInfluxSinkWithFallback(cfg.Influx.URL, cfg.Influx.Token, cfg.Influx.Org, cfg.Influx.Bucket)
	}
	return coremetrics.NopSink{}
}

// openOutput returns the writer for path, using stdout for "" or "-".
func openOutput(path string) (*os.File, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
