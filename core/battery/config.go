package battery

import "fmt"

// Model selects the battery implementation.
type Model string

const (
	ModelIdeal Model = "ideal"
	ModelCLC   Model = "rate-limited-efficiency"
)

// Coefficients carries the CLC model parameters. Rate caps are expressed as
// multiples of capacity per hour; the envelope limits are of the form
// u*power + v*capacity.
type Coefficients struct {
	ChargeEfficiency    float64 `json:"charge_efficiency"`
	DischargeEfficiency float64 `json:"discharge_efficiency"`
	ChargeRateCap       float64 `json:"charge_rate_cap"`
	DischargeRateCap    float64 `json:"discharge_rate_cap"`
	UpperU              float64 `json:"upper_u"`
	UpperV              float64 `json:"upper_v"`
	LowerU              float64 `json:"lower_u"`
	LowerV              float64 `json:"lower_v"`
}

// Presets are named coefficient sets constructed explicitly so no package
// state is shared between battery instances.
var presets = map[string]Coefficients{
	// Lithium NMC cell including DC-AC inverter loss.
	"lithium-nmc": {
		ChargeEfficiency:    0.97,
		DischargeEfficiency: 1.04,
		ChargeRateCap:       3,
		DischargeRateCap:    3,
		UpperU:              -0.04,
		UpperV:              1,
		LowerU:              0.01,
		LowerV:              0,
	},
	// Tighter envelope from the C/L/C reference parameterisation.
	"lithium-nmc-clc": {
		ChargeEfficiency:    0.98,
		DischargeEfficiency: 1.05,
		ChargeRateCap:       3,
		DischargeRateCap:    3,
		UpperU:              -0.125,
		UpperV:              1,
		LowerU:              0.05,
		LowerV:              0,
	},
}

// Preset returns the named coefficient set.
func Preset(name string) (Coefficients, error) {
	c, ok := presets[name]
	if !ok {
		return Coefficients{}, fmt.Errorf("unknown battery preset %q", name)
	}
	return c, nil
}

// PresetNames lists the available preset identifiers.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	return names
}

// Validate rejects coefficient sets whose rate-limit denominators degenerate
// at the given step duration. minStepHours must be the smallest step the
// battery will be driven with; larger steps only grow the denominators.
func (c Coefficients) Validate(minStepHours float64) error {
	if minStepHours <= 0 {
		return fmt.Errorf("step duration must be positive, got %g", minStepHours)
	}
	if c.ChargeEfficiency <= 0 {
		return fmt.Errorf("charge efficiency must be positive, got %g", c.ChargeEfficiency)
	}
	if c.DischargeEfficiency <= 0 {
		return fmt.Errorf("discharge efficiency must be positive, got %g", c.DischargeEfficiency)
	}
	if c.ChargeRateCap <= 0 || c.DischargeRateCap <= 0 {
		return fmt.Errorf("rate caps must be positive, got charge=%g discharge=%g",
			c.ChargeRateCap, c.DischargeRateCap)
	}
	if d := c.ChargeEfficiency*minStepHours - c.UpperU; d <= 0 {
		return fmt.Errorf("degenerate charge rate denominator %g (upper_u=%g)", d, c.UpperU)
	}
	if d := c.LowerU + c.DischargeEfficiency*minStepHours; d <= 0 {
		return fmt.Errorf("degenerate discharge rate denominator %g (lower_u=%g)", d, c.LowerU)
	}
	return nil
}

// Config selects a battery model plus its coefficients, either as a named
// preset or as an explicit override.
type Config struct {
	Model        Model         `json:"model"`
	Preset       string        `json:"preset"`
	Coefficients *Coefficients `json:"coefficients,omitempty"`
}

// SetDefaults applies the ideal model and the lithium NMC preset.
func (c *Config) SetDefaults() {
	if c.Model == "" {
		c.Model = ModelIdeal
	}
	if c.Preset == "" && c.Coefficients == nil {
		c.Preset = "lithium-nmc"
	}
}

// Factory builds batteries of one configured model. Coefficients are resolved
// and validated once, before any simulation runs.
type Factory struct {
	model  Model
	coeffs Coefficients
}

// NewFactory resolves the configuration into a validated factory.
// minStepHours is the smallest step duration the batteries will see.
func NewFactory(cfg Config, minStepHours float64) (*Factory, error) {
	switch cfg.Model {
	case ModelIdeal:
		return &Factory{model: ModelIdeal}, nil
	case ModelCLC:
		coeffs := Coefficients{}
		if cfg.Coefficients != nil {
			coeffs = *cfg.Coefficients
		} else {
			var err error
			if coeffs, err = Preset(cfg.Preset); err != nil {
				return nil, err
			}
		}
		if err := coeffs.Validate(minStepHours); err != nil {
			return nil, fmt.Errorf("battery coefficients: %w", err)
		}
		return &Factory{model: ModelCLC, coeffs: coeffs}, nil
	default:
		return nil, fmt.Errorf("unknown battery model %q", cfg.Model)
	}
}

// New constructs a fresh battery with the given capacity and initial load.
func (f *Factory) New(capacityMWh, loadMWh float64) Battery {
	if f.model == ModelCLC {
		return NewCLC(capacityMWh, loadMWh, f.coeffs)
	}
	return NewIdeal(capacityMWh, loadMWh)
}
