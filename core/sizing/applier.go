package sizing

import (
	"github.com/gridcap/renew247/core/battery"
	"github.com/gridcap/renew247/core/model"
)

// Applied reports the outcome of replaying a fixed capacity against a trace.
type Applied struct {
	// UnmetMWh is the total demand the battery could not cover.
	UnmetMWh float64 `json:"unmet_mwh"`
	// Adjusted is a copy of the input trace whose renewable column accounts
	// for the battery: surplus spent on charging is debited, discharged
	// energy is credited as effective renewable coverage.
	Adjusted model.Series `json:"adjusted"`
}

// Apply replays the series once against a fully charged battery of the given
// fixed capacity. No search is performed. The input series is not mutated.
func Apply(series model.Series, factory *battery.Factory, capacityMWh float64, granularity int) Applied {
	b := factory.New(capacityMWh, capacityMWh)
	adjusted := series.Clone()
	step := 1.0 / float64(granularity)
	unmet := 0.0

	for i, s := range series {
		gap := s.DemandMW - s.RenewableMW
		delivered := 0.0
		for j := 0; j < granularity; j++ {
			if gap > 0 {
				delivered += b.Discharge(gap, step)
			} else {
				b.Charge(-gap, step)
				adjusted[i].RenewableMW -= -gap * step
			}
		}
		if gap > 0 {
			if short := gap - delivered; short > 0 {
				unmet += short
			}
			adjusted[i].RenewableMW += delivered
		}
	}
	return Applied{UnmetMWh: unmet, Adjusted: adjusted}
}
