package sizing

import (
	"github.com/gridcap/renew247/core/logger"
	"github.com/gridcap/renew247/core/model"
)

// hybridSizer doubles an upper bound from a small seed until the trace
// becomes feasible, then bisects inside the last doubling interval. For
// traces needing little storage this touches far fewer trial capacities than
// bisecting the full [0, maxBound] range.
type hybridSizer struct {
	oracle      oracle
	maxBoundMWh float64
	log         logger.Logger
}

func (s *hybridSizer) MinimumCapacity(series model.Series) (Result, error) {
	trials := 0
	feasible := func(c float64) bool {
		trials++
		return s.oracle.feasible(series, c)
	}

	if feasible(0) {
		return Result{CapacityMWh: 0, Determined: true, Trials: trials}, nil
	}

	lo, hi := 0.0, seedBoundMWh
	for hi < s.maxBoundMWh && !feasible(hi) {
		lo = hi
		hi *= 2
	}
	if hi > s.maxBoundMWh {
		hi = s.maxBoundMWh
	}
	if !feasible(hi) {
		s.log.Warnf("trace infeasible within %g MWh", s.maxBoundMWh)
		return Result{CapacityMWh: s.maxBoundMWh, Determined: false, Trials: trials}, nil
	}
	s.log.Debugw("bracket found", map[string]any{"lower_mwh": lo, "upper_mwh": hi})

	for hi-lo > resolutionMWh {
		mid := (lo + hi) / 2
		if feasible(mid) {
			hi = mid
		} else {
			lo = mid
		}
	}
	return Result{CapacityMWh: hi, Determined: true, Trials: trials}, nil
}
