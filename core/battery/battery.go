package battery

import "errors"

// ErrNoConvergence is returned when the rate-limited capacity growth loop
// exhausts its iteration budget before the target amount becomes deliverable.
var ErrNoConvergence = errors.New("battery: capacity growth did not converge")

// Battery models an energy store replayed against a power trace. All
// implementations take an explicit step duration in hours; the ideal model is
// simply insensitive to rate limits, not to the step itself.
//
// Invariant: 0 <= Load() <= Capacity() after every mutation.
type Battery interface {
	// Charge stores powerMW applied for stepHours and returns the new load in MWh.
	Charge(powerMW, stepHours float64) float64
	// Discharge draws powerMW for stepHours and returns the energy actually
	// delivered in MWh, which may be less than requested.
	Discharge(powerMW, stepHours float64) float64
	// Capacity returns the maximum storable energy in MWh.
	Capacity() float64
	// Load returns the currently stored energy in MWh.
	Load() float64
	// IsFull reports whether the store is at capacity.
	IsFull() bool
	// GrowToFit expands capacity until amountMWh can be delivered within one
	// hour. The ideal model grows by exactly amountMWh and never fails.
	GrowToFit(amountMWh float64) error
}
