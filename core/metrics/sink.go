package metrics

import "time"

// SizingEvent captures the outcome of one capacity sizing run.
type SizingEvent struct {
	RunID       string
	Strategy    string
	Model       string
	CapacityMWh float64
	Determined  bool
	Trials      int
	Samples     int
	// UnmetMWh is filled when the found capacity was also applied.
	UnmetMWh float64
	Applied  bool
	Time     time.Time
}

// ReallocationEvent captures the outcome of one workload shift run.
type ReallocationEvent struct {
	RunID     string
	Objective string
	Strategy  string
	Windows   int
	MovedMWh  float64
	TargetMWh float64
	Samples   int
	Time      time.Time
}

// MetricsSink records planner results to an external system.
type MetricsSink interface {
	RecordSizing(ev SizingEvent) error
	RecordReallocation(ev ReallocationEvent) error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordSizing(SizingEvent) error             { return nil }
func (NopSink) RecordReallocation(ReallocationEvent) error { return nil }
