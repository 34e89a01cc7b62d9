package sizing

import (
	"github.com/gridcap/renew247/core/battery"
	"github.com/gridcap/renew247/core/model"
)

// oracle replays a whole trace against one battery and decides whether every
// deficit was coverable.
type oracle struct {
	factory     *battery.Factory
	granularity int
	tolMWh      float64
}

// feasible constructs a fresh, fully charged trial battery and replays the
// series against it.
func (o oracle) feasible(series model.Series, capacityMWh float64) bool {
	return o.replay(series, o.factory.New(capacityMWh, capacityMWh))
}

// replay subdivides each sample into micro-steps to approximate continuous
// control. A macro-step with a deficit fails as soon as the accumulated
// delivered energy falls short of the deficit beyond the tolerance; the
// simulation then terminates immediately.
func (o oracle) replay(series model.Series, b battery.Battery) bool {
	step := 1.0 / float64(o.granularity)
	for _, s := range series {
		net := s.RenewableMW - s.DemandMW
		delivered := 0.0
		for j := 0; j < o.granularity; j++ {
			if net > 0 {
				b.Charge(net, step)
			} else {
				delivered += b.Discharge(-net, step)
			}
		}
		if net < 0 && delivered < -net-o.tolMWh {
			return false
		}
	}
	return true
}
