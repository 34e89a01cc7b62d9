package sizing

import (
	"github.com/gridcap/renew247/core/battery"
	"github.com/gridcap/renew247/core/logger"
	"github.com/gridcap/renew247/core/model"
)

// sequentialSizer keeps a single live battery across the whole trace and
// grows its capacity whenever a shortfall is observed. The result is a
// sufficient capacity found in one linear pass, not a minimum located by
// search; capacity never shrinks.
type sequentialSizer struct {
	factory *battery.Factory
	log     logger.Logger
}

func (s *sequentialSizer) MinimumCapacity(series model.Series) (Result, error) {
	b := s.factory.New(0, 0)
	maxCapacity := 0.0

	for i, p := range series {
		deficit := p.DemandMW - p.RenewableMW
		if deficit > 0 {
			if err := s.cover(b, deficit); err != nil {
				return Result{}, err
			}
		} else if b.Capacity() > 0 {
			b.Charge(-deficit, 1)
		}
		if c := b.Capacity(); c > maxCapacity {
			maxCapacity = c
			s.log.Debugw("capacity grown", map[string]any{"step": i, "capacity_mwh": c})
		}
	}
	return Result{CapacityMWh: maxCapacity, Determined: true, Trials: 1}, nil
}

// cover serves one deficit step: an empty or zero-capacity battery is grown
// by the full shortfall, otherwise the battery discharges first and grows by
// any residual shortfall.
func (s *sequentialSizer) cover(b battery.Battery, deficit float64) error {
	if b.Capacity() == 0 || b.Load() == 0 {
		return b.GrowToFit(deficit)
	}
	drawn := b.Discharge(deficit, 1)
	if residual := deficit - drawn; residual > 0 {
		return b.GrowToFit(residual)
	}
	return nil
}
