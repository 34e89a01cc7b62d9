package battery

import (
	"errors"
	"math"
	"testing"
)

func nmc(t *testing.T) Coefficients {
	t.Helper()
	c, err := Preset("lithium-nmc")
	if err != nil {
		t.Fatalf("preset: %v", err)
	}
	return c
}

func TestCLCMaxRates(t *testing.T) {
	c := nmc(t)
	b := NewCLC(100, 50, c)

	// Envelope bound: (v*capacity - load) / (eff_c*step - u).
	wantCharge := (1.0*100 - 50) / (0.97*1 - (-0.04))
	if got := b.maxChargeMW(1); math.Abs(got-wantCharge) > 1e-9 {
		t.Fatalf("max charge: want %g got %g", wantCharge, got)
	}

	// Envelope bound: (load - v*capacity) / (u + eff_d*step).
	wantDischarge := 50.0 / (0.01 + 1.04*1)
	if got := b.maxDischargeMW(1); math.Abs(got-wantDischarge) > 1e-9 {
		t.Fatalf("max discharge: want %g got %g", wantDischarge, got)
	}
}

func TestCLCDischargeReportsRateLimitedAmount(t *testing.T) {
	c := nmc(t)
	b := NewCLC(100, 50, c)

	limit := b.maxDischargeMW(1)
	got := b.Discharge(100, 1)
	if math.Abs(got-limit) > 1e-9 {
		t.Fatalf("expected rate-limited delivery %g, got %g", limit, got)
	}

	// A request under the limit is served scaled by the step only.
	b = NewCLC(100, 50, c)
	if got := b.Discharge(5, 1); math.Abs(got-5) > 1e-9 {
		t.Fatalf("expected 5 delivered, got %g", got)
	}
	wantLoad := 50 - 5*c.DischargeEfficiency
	if math.Abs(b.Load()-wantLoad) > 1e-9 {
		t.Fatalf("expected load %g, got %g", wantLoad, b.Load())
	}
}

func TestCLCChargeAppliesEfficiency(t *testing.T) {
	c := nmc(t)
	b := NewCLC(100, 0, c)
	b.Charge(10, 1)
	want := 10 * c.ChargeEfficiency
	if math.Abs(b.Load()-want) > 1e-9 {
		t.Fatalf("expected %g stored, got %g", want, b.Load())
	}
}

func TestCLCLoadNeverLeavesBounds(t *testing.T) {
	c := nmc(t)
	b := NewCLC(10, 10, c)
	for i := 0; i < 500; i++ {
		b.Charge(50, 1.0/60)
		b.Discharge(50, 1.0/60)
		if b.Load() < 0 || b.Load() > b.Capacity() {
			t.Fatalf("load %g out of [0,%g] at step %d", b.Load(), b.Capacity(), i)
		}
	}
}

func TestCLCGrowToFitConverges(t *testing.T) {
	c := nmc(t)
	b := NewCLC(0, 0, c)
	if err := b.GrowToFit(10); err != nil {
		t.Fatalf("grow: %v", err)
	}
	// The discharge envelope at the new capacity must admit the amount.
	stored := b.Capacity()
	limit := (stored - c.LowerV*b.Capacity()) / (c.LowerU + c.DischargeEfficiency)
	if limit < 10 {
		t.Fatalf("capacity %g cannot deliver 10 MWh in one hour (limit %g)", b.Capacity(), limit)
	}
}

func TestCLCGrowToFitDegenerate(t *testing.T) {
	// With lower_v = 1 the envelope cancels the capacity growth and the
	// refinement can never reach the target amount.
	c := nmc(t)
	c.LowerV = 1
	b := NewCLC(0, 0, c)
	if err := b.GrowToFit(5); !errors.Is(err, ErrNoConvergence) {
		t.Fatalf("expected ErrNoConvergence, got %v", err)
	}
}
