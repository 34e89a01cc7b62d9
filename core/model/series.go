package model

import "gonum.org/v1/gonum/floats"

// PowerSample is one slot of an aligned datacenter power trace. Samples are
// equally spaced; the position in the series carries the time semantics.
type PowerSample struct {
	// DemandMW is the average datacenter power draw over the slot.
	DemandMW float64 `json:"demand_mw"`
	// RenewableMW is the renewable supply available during the slot.
	RenewableMW float64 `json:"renewable_mw"`
	// CarbonIntensity is the grid carbon intensity for the slot, in
	// gCO2eq/kWh. It is zero when the trace carries no carbon column.
	CarbonIntensity float64 `json:"carbon_intensity,omitempty"`
}

// Deficit returns the unmet power draw of the slot, never negative.
func (s PowerSample) Deficit() float64 {
	if d := s.DemandMW - s.RenewableMW; d > 0 {
		return d
	}
	return 0
}

// Series is an ordered power trace.
type Series []PowerSample

// Clone returns a deep copy of the series.
func (s Series) Clone() Series {
	cp := make(Series, len(s))
	copy(cp, s)
	return cp
}

// Demand returns the demand column as a new slice.
func (s Series) Demand() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.DemandMW
	}
	return out
}

// Renewable returns the renewable supply column as a new slice.
func (s Series) Renewable() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.RenewableMW
	}
	return out
}

// Carbon returns the carbon intensity column as a new slice.
func (s Series) Carbon() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.CarbonIntensity
	}
	return out
}

// TotalDemand returns the sum of the demand column.
func (s Series) TotalDemand() float64 {
	return floats.Sum(s.Demand())
}

// HasCarbon reports whether any slot carries a non-zero carbon intensity.
func (s Series) HasCarbon() bool {
	for _, p := range s {
		if p.CarbonIntensity != 0 {
			return true
		}
	}
	return false
}
