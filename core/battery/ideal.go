package battery

// Ideal is a lossless, rate-unlimited battery. Charging clamps at capacity,
// discharging delivers only what is stored.
type Ideal struct {
	capacityMWh float64
	loadMWh     float64
}

// NewIdeal returns an ideal battery with the given capacity and initial load.
// The load is clamped into [0, capacity].
func NewIdeal(capacityMWh, loadMWh float64) *Ideal {
	b := &Ideal{capacityMWh: capacityMWh}
	b.loadMWh = clamp(loadMWh, 0, capacityMWh)
	return b
}

func (b *Ideal) Charge(powerMW, stepHours float64) float64 {
	b.loadMWh = clamp(b.loadMWh+powerMW*stepHours, 0, b.capacityMWh)
	return b.loadMWh
}

func (b *Ideal) Discharge(powerMW, stepHours float64) float64 {
	want := powerMW * stepHours
	if want >= b.loadMWh {
		delivered := b.loadMWh
		b.loadMWh = 0
		return delivered
	}
	b.loadMWh -= want
	return want
}

func (b *Ideal) Capacity() float64 { return b.capacityMWh }
func (b *Ideal) Load() float64     { return b.loadMWh }
func (b *Ideal) IsFull() bool      { return b.loadMWh == b.capacityMWh }

// GrowToFit expands capacity by exactly amountMWh so the shortfall becomes
// coverable. It never fails for the ideal model.
func (b *Ideal) GrowToFit(amountMWh float64) error {
	b.capacityMWh += amountMWh
	return nil
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
