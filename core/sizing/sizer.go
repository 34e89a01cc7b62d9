// Package sizing finds the minimum storage capacity that lets a power trace
// run fully on renewables plus battery, and replays fixed capacities against
// a trace. Feasibility is monotonic non-decreasing in capacity, which is what
// makes the binary and hybrid strategies correct; that precondition is
// assumed, not checked.
package sizing

import (
	"fmt"

	"github.com/gridcap/renew247/core/battery"
	"github.com/gridcap/renew247/core/logger"
	"github.com/gridcap/renew247/core/model"
)

// Strategy selects a capacity search implementation.
type Strategy string

const (
	StrategySequential Strategy = "sequential"
	StrategyBinary     Strategy = "binary"
	StrategyHybrid     Strategy = "hybrid"
)

// resolutionMWh is the bisection stopping width shared by the binary and
// hybrid strategies.
const resolutionMWh = 0.1

// seedBoundMWh starts the hybrid doubling phase.
const seedBoundMWh = 2.0

// Config holds the capacity search parameters.
type Config struct {
	Strategy Strategy `json:"strategy"`
	// MaxBoundMWh caps the searched capacity. A trace infeasible at this
	// bound yields an undetermined result, not an error.
	MaxBoundMWh float64 `json:"max_bound_mwh"`
	// Granularity is the number of micro-steps each sample is subdivided
	// into during feasibility replay.
	Granularity int `json:"granularity"`
	// ToleranceMWh is the slack allowed between a deficit and the energy
	// actually delivered before a step counts as unmet.
	ToleranceMWh float64 `json:"tolerance_mwh"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Strategy == "" {
		c.Strategy = StrategySequential
	}
	if c.MaxBoundMWh == 0 {
		c.MaxBoundMWh = 1000
	}
	if c.Granularity == 0 {
		c.Granularity = 60
	}
	if c.ToleranceMWh == 0 {
		c.ToleranceMWh = 1e-4
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	switch c.Strategy {
	case StrategySequential, StrategyBinary, StrategyHybrid:
	default:
		return fmt.Errorf("unknown search strategy %q", c.Strategy)
	}
	if c.MaxBoundMWh <= 0 {
		return fmt.Errorf("max bound must be positive, got %g", c.MaxBoundMWh)
	}
	if c.Granularity <= 0 {
		return fmt.Errorf("granularity must be positive, got %d", c.Granularity)
	}
	if c.ToleranceMWh < 0 {
		return fmt.Errorf("tolerance must not be negative, got %g", c.ToleranceMWh)
	}
	return nil
}

// StepHours returns the micro-step duration used during replay.
func (c Config) StepHours() float64 { return 1.0 / float64(c.Granularity) }

// Result is the outcome of one capacity search. Determined is false when the
// trace was not coverable within the configured bound; CapacityMWh then holds
// the bound that was exhausted.
type Result struct {
	CapacityMWh float64 `json:"capacity_mwh"`
	Determined  bool    `json:"determined"`
	// Trials counts full-series feasibility replays performed.
	Trials int `json:"trials"`
}

// Sizer searches for the minimum feasible storage capacity.
type Sizer interface {
	MinimumCapacity(series model.Series) (Result, error)
}

// NewSizer resolves the strategy tag into an implementation. The factory must
// have been validated for cfg.StepHours().
func NewSizer(cfg Config, factory *battery.Factory, log logger.Logger) (Sizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop{}
	}
	o := oracle{factory: factory, granularity: cfg.Granularity, tolMWh: cfg.ToleranceMWh}
	switch cfg.Strategy {
	case StrategySequential:
		return &sequentialSizer{factory: factory, log: log}, nil
	case StrategyBinary:
		return &binarySizer{oracle: o, maxBoundMWh: cfg.MaxBoundMWh, log: log}, nil
	case StrategyHybrid:
		return &hybridSizer{oracle: o, maxBoundMWh: cfg.MaxBoundMWh, log: log}, nil
	default:
		return nil, fmt.Errorf("unknown search strategy %q", cfg.Strategy)
	}
}
