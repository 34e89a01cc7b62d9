// Package realloc redistributes flexible datacenter workload inside fixed
// day windows, moving demand away from high-deficit or high-carbon slots and
// into slots with spare renewable supply or low grid carbon intensity. The
// redistribution is a greedy pour bounded by a per-day movable volume and an
// instantaneous power ceiling; it is best-effort, not globally optimal.
package realloc

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/gridcap/renew247/core/logger"
	"github.com/gridcap/renew247/core/model"
)

// Objective selects what the reallocation minimises.
type Objective string

const (
	// ObjectiveRenewable minimises the renewable deficit.
	ObjectiveRenewable Objective = "renewable"
	// ObjectiveGridMix minimises grid carbon intensity exposure.
	ObjectiveGridMix Objective = "grid_mix"
)

// Strategy selects the threshold search implementation.
type Strategy string

const (
	StrategySequential Strategy = "sequential"
	StrategyBinary     Strategy = "binary"
	StrategyHybrid     Strategy = "hybrid"
)

// Config holds the reallocation parameters.
type Config struct {
	Objective Objective `json:"objective"`
	Strategy  Strategy  `json:"strategy"`
	// FlexibleWorkloadRatio is the share of workload that may shift in
	// time, as a percentage in [0, 100].
	FlexibleWorkloadRatio float64 `json:"flexible_workload_ratio"`
	// MaxCapacityMW is the instantaneous power ceiling no slot may exceed
	// after reallocation.
	MaxCapacityMW float64 `json:"max_capacity_mw"`
	// WindowLen is the day window length in samples. A trailing partial
	// window is discarded.
	WindowLen int `json:"window_len"`
	// VolumeTolerance is the relative slack around the target movable
	// volume accepted by the binary and hybrid searches.
	VolumeTolerance float64 `json:"volume_tolerance"`
	// RefineSteps bounds the binary refinement iterations.
	RefineSteps int `json:"refine_steps"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Objective == "" {
		c.Objective = ObjectiveRenewable
	}
	if c.Strategy == "" {
		c.Strategy = StrategySequential
	}
	if c.WindowLen == 0 {
		c.WindowLen = 24
	}
	if c.VolumeTolerance == 0 {
		c.VolumeTolerance = 0.05
	}
	if c.RefineSteps == 0 {
		c.RefineSteps = 7
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	switch c.Objective {
	case ObjectiveRenewable, ObjectiveGridMix:
	default:
		return fmt.Errorf("unknown objective %q", c.Objective)
	}
	switch c.Strategy {
	case StrategySequential, StrategyBinary, StrategyHybrid:
	default:
		return fmt.Errorf("unknown search strategy %q", c.Strategy)
	}
	if c.FlexibleWorkloadRatio < 0 || c.FlexibleWorkloadRatio > 100 {
		return fmt.Errorf("flexible workload ratio must be in [0,100], got %g", c.FlexibleWorkloadRatio)
	}
	if c.MaxCapacityMW <= 0 {
		return fmt.Errorf("max capacity must be positive, got %g", c.MaxCapacityMW)
	}
	if c.WindowLen <= 0 {
		return fmt.Errorf("window length must be positive, got %d", c.WindowLen)
	}
	if c.RefineSteps <= 0 {
		return fmt.Errorf("refine steps must be positive, got %d", c.RefineSteps)
	}
	return nil
}

// Summary aggregates what the pour achieved across all windows.
type Summary struct {
	Windows   int     `json:"windows"`
	MovedMWh  float64 `json:"moved_mwh"`
	TargetMWh float64 `json:"target_mwh"`
}

// Reallocate returns a copy of the series with the demand column adjusted
// per day window. The input series is not mutated. Total demand within each
// window is conserved.
func Reallocate(series model.Series, cfg Config, log logger.Logger) (model.Series, Summary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, Summary{}, err
	}
	if log == nil {
		log = logger.Nop{}
	}
	if cfg.Objective == ObjectiveGridMix && !series.HasCarbon() {
		log.Warnf("grid_mix objective on a trace without carbon intensity data")
	}

	search := newThresholdSearch(cfg)
	ratio := cfg.FlexibleWorkloadRatio / 100
	out := series.Clone()
	var sum Summary

	for start := 0; start+cfg.WindowLen <= len(out); start += cfg.WindowLen {
		window := out[start : start+cfg.WindowLen]
		d := day{
			metrics: windowMetrics(window, cfg.Objective),
			demands: model.Series(window).Demand(),
			ratio:   ratio,
		}
		target := ratio * floats.Sum(d.demands)
		if target <= 0 {
			continue
		}
		cutoff := search.cutoff(d, target)
		moved := pour(window, cfg, cutoff, d.metrics, target)
		sum.Windows++
		sum.MovedMWh += moved
		sum.TargetMWh += target
		log.Debugw("window poured", map[string]any{
			"start": start, "cutoff": cutoff, "moved_mwh": moved, "target_mwh": target,
		})
	}
	return out, sum, nil
}

// windowMetrics computes the per-slot donor metric: the renewable deficit for
// the renewable objective, the raw carbon intensity for grid_mix.
func windowMetrics(window []model.PowerSample, obj Objective) []float64 {
	m := make([]float64, len(window))
	for i, s := range window {
		if obj == ObjectiveGridMix {
			m[i] = s.CarbonIntensity
		} else {
			m[i] = s.Deficit()
		}
	}
	return m
}

// pour greedily moves demand from donor slots (metric above cutoff) into
// recipient slots, bounded per donor by ratio times its own demand, globally
// by target, and per recipient by its remaining headroom.
func pour(window []model.PowerSample, cfg Config, cutoff float64, metrics []float64, target float64) float64 {
	ratio := cfg.FlexibleWorkloadRatio / 100

	var donors, recipients []int
	headroom := make([]float64, len(window))
	for i, s := range window {
		if metrics[i] > cutoff {
			donors = append(donors, i)
			continue
		}
		h := cfg.MaxCapacityMW - s.DemandMW
		if cfg.Objective == ObjectiveRenewable {
			h = min(s.RenewableMW-s.DemandMW, h)
		}
		if h > 0 {
			headroom[i] = h
			recipients = append(recipients, i)
		}
	}

	sort.SliceStable(donors, func(a, b int) bool {
		return metrics[donors[a]] > metrics[donors[b]]
	})
	if cfg.Objective == ObjectiveGridMix {
		// Lowest-carbon destinations first.
		sort.SliceStable(recipients, func(a, b int) bool {
			return window[recipients[a]].CarbonIntensity < window[recipients[b]].CarbonIntensity
		})
	} else {
		sort.SliceStable(recipients, func(a, b int) bool {
			return headroom[recipients[a]] > headroom[recipients[b]]
		})
	}

	moved := 0.0
	for _, d := range donors {
		if moved >= target {
			break
		}
		allow := min(window[d].DemandMW*ratio, target-moved)
		if allow <= 0 {
			continue
		}
		for _, r := range recipients {
			if headroom[r] <= 0 {
				continue
			}
			amt := min(allow, headroom[r])
			window[d].DemandMW -= amt
			window[r].DemandMW += amt
			headroom[r] -= amt
			allow -= amt
			moved += amt
			if allow <= 0 {
				break
			}
		}
	}
	return moved
}
