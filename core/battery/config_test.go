package battery

import (
	"strings"
	"testing"
)

func TestPresetLookup(t *testing.T) {
	if _, err := Preset("lithium-nmc"); err != nil {
		t.Fatalf("lithium-nmc preset should exist: %v", err)
	}
	if _, err := Preset("unobtainium"); err == nil {
		t.Fatalf("expected error for unknown preset")
	}
	if len(PresetNames()) < 2 {
		t.Fatalf("expected at least two presets, got %v", PresetNames())
	}
}

func TestCoefficientsValidate(t *testing.T) {
	base, _ := Preset("lithium-nmc")

	cases := []struct {
		name    string
		mutate  func(*Coefficients)
		step    float64
		wantErr string
	}{
		{"valid", func(*Coefficients) {}, 1.0 / 60, ""},
		{"zero step", func(*Coefficients) {}, 0, "step duration"},
		{"charge denominator", func(c *Coefficients) { c.UpperU = 0.02 }, 1.0 / 60, "charge rate denominator"},
		{"discharge denominator", func(c *Coefficients) { c.LowerU = -0.02 }, 1.0 / 60, "discharge rate denominator"},
		{"negative efficiency", func(c *Coefficients) { c.ChargeEfficiency = -1 }, 1, "charge efficiency"},
		{"zero rate cap", func(c *Coefficients) { c.DischargeRateCap = 0 }, 1, "rate caps"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := base
			tc.mutate(&c)
			err := c.Validate(tc.step)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected %q error, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestNewFactory(t *testing.T) {
	if _, err := NewFactory(Config{Model: "flux-capacitor"}, 1); err == nil {
		t.Fatalf("expected error for unknown model")
	}

	f, err := NewFactory(Config{Model: ModelIdeal}, 1)
	if err != nil {
		t.Fatalf("ideal factory: %v", err)
	}
	if _, ok := f.New(10, 5).(*Ideal); !ok {
		t.Fatalf("expected *Ideal")
	}

	f, err = NewFactory(Config{Model: ModelCLC, Preset: "lithium-nmc"}, 1.0/60)
	if err != nil {
		t.Fatalf("clc factory: %v", err)
	}
	if _, ok := f.New(10, 5).(*CLC); !ok {
		t.Fatalf("expected *CLC")
	}

	if _, err := NewFactory(Config{Model: ModelCLC, Preset: "nope"}, 1); err == nil {
		t.Fatalf("expected error for unknown preset")
	}

	bad := Coefficients{ChargeEfficiency: 0.97, DischargeEfficiency: 1.04,
		ChargeRateCap: 3, DischargeRateCap: 3, UpperU: 0.5, UpperV: 1}
	if _, err := NewFactory(Config{Model: ModelCLC, Coefficients: &bad}, 1.0/60); err == nil {
		t.Fatalf("expected error for degenerate coefficients")
	}
}

func TestConfigSetDefaults(t *testing.T) {
	var c Config
	c.SetDefaults()
	if c.Model != ModelIdeal || c.Preset != "lithium-nmc" {
		t.Fatalf("unexpected defaults %+v", c)
	}
}
