package trace

import (
	"strings"
	"testing"
)

func TestReadTrace(t *testing.T) {
	in := "demand_mw,renewable_mw,carbon_intensity\n100,80,420\n50,120,310\n"
	s, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(s) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(s))
	}
	if s[0].DemandMW != 100 || s[0].RenewableMW != 80 || s[0].CarbonIntensity != 420 {
		t.Fatalf("bad first sample %+v", s[0])
	}
}

func TestReadTraceWithoutCarbon(t *testing.T) {
	in := "renewable_mw,demand_mw\n80,100\n"
	s, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if s[0].DemandMW != 100 || s[0].CarbonIntensity != 0 {
		t.Fatalf("bad sample %+v", s[0])
	}
}

func TestReadTraceIgnoresExtraColumns(t *testing.T) {
	in := "timestamp,demand_mw,renewable_mw\n2024-01-01T00:00:00Z,100,80\n"
	s, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if s[0].DemandMW != 100 {
		t.Fatalf("bad sample %+v", s[0])
	}
}

func TestReadTraceErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"missing demand", "renewable_mw\n80\n"},
		{"missing renewable", "demand_mw\n100\n"},
		{"bad float", "demand_mw,renewable_mw\noops,80\n"},
		{"empty trace", "demand_mw,renewable_mw\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Read(strings.NewReader(tc.in)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
