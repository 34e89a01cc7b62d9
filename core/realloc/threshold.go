package realloc

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// day is the per-window view a threshold search operates on.
type day struct {
	metrics []float64
	demands []float64
	ratio   float64
}

// movableVolume is the workload the ratio permits to leave the slots whose
// metric exceeds the cutoff. It is monotonic non-increasing in the cutoff:
// a higher cutoff selects fewer donors.
func (d day) movableVolume(cutoff float64) float64 {
	v := 0.0
	for i, m := range d.metrics {
		if m > cutoff {
			v += d.demands[i] * d.ratio
		}
	}
	return v
}

// thresholdSearch locates the donor/recipient cutoff for one day window.
// None of the implementations guarantees exact attainment of the target
// volume; each returns a best-effort cutoff within its own tolerance.
type thresholdSearch interface {
	cutoff(d day, target float64) float64
}

// newThresholdSearch resolves the strategy tag once.
func newThresholdSearch(cfg Config) thresholdSearch {
	switch cfg.Strategy {
	case StrategyBinary:
		return binarySearch{steps: cfg.RefineSteps, tol: cfg.VolumeTolerance}
	case StrategyHybrid:
		return hybridSearch{steps: cfg.RefineSteps, tol: cfg.VolumeTolerance}
	default:
		return sequentialSearch{}
	}
}

// minWidth stops a refinement once the interval is narrower than this.
const minWidth = 0.1

// refine bisects [lo, hi] for at most steps iterations, accepting a cutoff
// whose movable volume is within tol of the target and otherwise returning
// the closest one seen.
func refine(d day, target, lo, hi float64, steps int, tol float64) float64 {
	best := lo
	bestDiff := math.Abs(d.movableVolume(lo) - target)

	for i := 0; i < steps && hi-lo > minWidth; i++ {
		mid := (lo + hi) / 2
		v := d.movableVolume(mid)
		if diff := math.Abs(v - target); diff < bestDiff {
			best, bestDiff = mid, diff
		}
		if math.Abs(v-target) <= tol*target {
			return mid
		}
		if v > target {
			lo = mid
		} else {
			hi = mid
		}
	}
	return best
}

// sequentialSearch scans the observed metric values in ascending order and
// returns the first cutoff whose movable volume falls below the target.
// Constructive rather than a true search: the answer is the lowest cutoff
// that stops over-selecting donors.
type sequentialSearch struct{}

func (sequentialSearch) cutoff(d day, target float64) float64 {
	candidates := append([]float64(nil), d.metrics...)
	sort.Float64s(candidates)
	for _, c := range candidates {
		if d.movableVolume(c) < target {
			return c
		}
	}
	return candidates[len(candidates)-1]
}

// binarySearch bisects over the full observed metric range.
type binarySearch struct {
	steps int
	tol   float64
}

func (s binarySearch) cutoff(d day, target float64) float64 {
	lo, hi := floats.Min(d.metrics), floats.Max(d.metrics)
	if lo == hi {
		return lo
	}
	return refine(d, target, lo, hi, s.steps, s.tol)
}

// hybridSearch widens the search interval exponentially from a small seed
// until the movable volume first drops below the target, then bisects inside
// that bracket.
type hybridSearch struct {
	steps int
	tol   float64
}

func (s hybridSearch) cutoff(d day, target float64) float64 {
	lo, hi := s.bracket(d, target)
	if lo == hi {
		return lo
	}
	return refine(d, target, lo, hi, s.steps, s.tol)
}

// bracket returns an interval whose lower edge still moves at least the
// target volume and whose upper edge no longer does. The final cutoff always
// lies inside this interval.
func (s hybridSearch) bracket(d day, target float64) (float64, float64) {
	base, top := floats.Min(d.metrics), floats.Max(d.metrics)
	if base == top {
		return base, top
	}
	width := (top - base) / 128
	lower, upper := base, base+width
	for upper < top && d.movableVolume(upper) >= target {
		lower = upper
		width *= 2
		upper = base + width
	}
	if upper > top {
		upper = top
	}
	return lower, upper
}
