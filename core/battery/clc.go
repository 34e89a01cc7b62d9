package battery

// CLC models a battery with charge/discharge efficiencies and linear
// charging/discharging rate limits relative to capacity. It follows the
// C/L/C formulation of "Tractable lithium-ion storage models for optimizing
// energy systems" (Energy Informatics 2.1, 2019).
type CLC struct {
	capacityMWh float64
	loadMWh     float64
	c           Coefficients
}

// NewCLC returns a rate-limited battery with the given coefficients. The
// coefficients must have been validated beforehand; see Coefficients.Validate.
func NewCLC(capacityMWh, loadMWh float64, c Coefficients) *CLC {
	b := &CLC{capacityMWh: capacityMWh, c: c}
	b.loadMWh = clamp(loadMWh, 0, capacityMWh)
	return b
}

// maxChargeMW is the highest charging power that keeps the next-step stored
// energy within the linear envelope b <= u*p + v*capacity, bounded by the
// flat multiple-of-capacity rate cap.
func (b *CLC) maxChargeMW(stepHours float64) float64 {
	flat := (b.capacityMWh / b.c.ChargeEfficiency) * b.c.ChargeRateCap
	envelope := (b.c.UpperV*b.capacityMWh - b.loadMWh) /
		(b.c.ChargeEfficiency*stepHours - b.c.UpperU)
	return min(flat, envelope)
}

// maxDischargeMW mirrors maxChargeMW for the lower envelope.
func (b *CLC) maxDischargeMW(stepHours float64) float64 {
	flat := (b.capacityMWh / b.c.DischargeEfficiency) * b.c.DischargeRateCap
	envelope := (b.loadMWh - b.c.LowerV*b.capacityMWh) /
		(b.c.LowerU + b.c.DischargeEfficiency*stepHours)
	return min(flat, envelope)
}

func (b *CLC) Charge(powerMW, stepHours float64) float64 {
	rate := b.maxChargeMW(stepHours)
	if rate < 0 {
		rate = 0
	}
	p := min(powerMW, rate)
	b.loadMWh = clamp(b.loadMWh+p*b.c.ChargeEfficiency*stepHours, 0, b.capacityMWh)
	return b.loadMWh
}

// Discharge reports the rate-limited amount, not the request, when the
// limit binds.
func (b *CLC) Discharge(powerMW, stepHours float64) float64 {
	rate := b.maxDischargeMW(stepHours)
	if rate < 0 {
		rate = 0
	}
	p := min(powerMW, rate)
	b.loadMWh = clamp(b.loadMWh-p*b.c.DischargeEfficiency*stepHours, 0, b.capacityMWh)
	return p * stepHours
}

func (b *CLC) Capacity() float64 { return b.capacityMWh }
func (b *CLC) Load() float64     { return b.loadMWh }
func (b *CLC) IsFull() bool      { return b.loadMWh == b.capacityMWh }

const (
	growIncrementMWh  = 0.1
	maxGrowIterations = 200000
)

// GrowToFit expands capacity until the discharge rate limit at the new
// capacity can deliver amountMWh within one hour. The refinement has no
// closed form, so it steps the capacity up by a fixed increment; the loop is
// capped and fails with ErrNoConvergence when the budget is exhausted.
func (b *CLC) GrowToFit(amountMWh float64) error {
	b.capacityMWh += amountMWh * b.c.DischargeEfficiency
	stored := amountMWh * b.c.DischargeEfficiency
	for i := 0; i < maxGrowIterations; i++ {
		limit := (stored - b.c.LowerV*b.capacityMWh) /
			(b.c.LowerU + b.c.DischargeEfficiency)
		if limit >= amountMWh {
			return nil
		}
		b.capacityMWh += growIncrementMWh
		stored += growIncrementMWh
	}
	return ErrNoConvergence
}
