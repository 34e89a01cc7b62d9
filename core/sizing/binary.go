package sizing

import (
	"github.com/gridcap/renew247/core/logger"
	"github.com/gridcap/renew247/core/model"
)

// binarySizer bisects capacity over [0, maxBound], running a full-series
// feasibility replay per trial.
type binarySizer struct {
	oracle      oracle
	maxBoundMWh float64
	log         logger.Logger
}

func (s *binarySizer) MinimumCapacity(series model.Series) (Result, error) {
	trials := 0
	feasible := func(c float64) bool {
		trials++
		return s.oracle.feasible(series, c)
	}

	if feasible(0) {
		return Result{CapacityMWh: 0, Determined: true, Trials: trials}, nil
	}
	if !feasible(s.maxBoundMWh) {
		s.log.Warnf("trace infeasible within %g MWh", s.maxBoundMWh)
		return Result{CapacityMWh: s.maxBoundMWh, Determined: false, Trials: trials}, nil
	}

	lo, hi := 0.0, s.maxBoundMWh
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
