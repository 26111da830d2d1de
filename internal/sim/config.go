package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the immutable run configuration, consumed once at setup.
// Percentage pairs leave their third category as the remainder, floored at 0
// when the pair sums past 100. Out-of-range values are accepted as-is: a spawn
// rate above 100 simply guarantees multiple trials succeed per tick.
type Config struct {
	// Defenders.
	DefenderCount int               `yaml:"defender_count"`
	LightPct      float64           `yaml:"light_pct"` // rapid_pct's sibling; sniper is the remainder
	RapidPct      float64           `yaml:"rapid_pct"`
	Strategy      PlacementStrategy `yaml:"strategy"`

	// Attackers.
	SpawnRatePct      float64 `yaml:"spawn_rate_pct"` // base probability p of the stacked spawn trials
	AttackerHealthMul float64 `yaml:"attacker_health_mul"`
	FastPct           float64 `yaml:"fast_pct"` // tough_pct's sibling; balanced is the remainder
	ToughPct          float64 `yaml:"tough_pct"`
	SpawnCap          int     `yaml:"spawn_cap"` // 0 = unlimited

	// Run limits and field geometry.
	MaxTicks        int     `yaml:"max_ticks"`
	FieldHalfWidth  float64 `yaml:"field_half_width"`
	FieldHalfHeight float64 `yaml:"field_half_height"`
}

// DefaultConfig is the stock battle setup:
// a mid-size ring of defenders against a steady mixed assault.
func DefaultConfig() Config {
	return Config{
		DefenderCount:     24,
		LightPct:          50,
		RapidPct:          30,
		Strategy:          PlacementRing,
		SpawnRatePct:      45,
		AttackerHealthMul: 1.0,
		FastPct:           30,
		ToughPct:          25,
		SpawnCap:          0,
		MaxTicks:          3600,
		FieldHalfWidth:    35,
		FieldHalfHeight:   35,
	}
}

// SniperPct returns the defender remainder percentage, floored at 0.
func (c Config) SniperPct() float64 {
	return remainderPct(c.LightPct, c.RapidPct)
}

// BalancedPct returns the attacker remainder percentage, floored at 0.
func (c Config) BalancedPct() float64 {
	return remainderPct(c.FastPct, c.ToughPct)
}

func remainderPct(a, b float64) float64 {
	r := 100 - a - b
	if r < 0 {
		return 0
	}
	return r
}

// Field returns the field geometry described by the config.
func (c Config) Field() Field {
	return Field{HalfWidth: c.FieldHalfWidth, HalfHeight: c.FieldHalfHeight}
}

// LoadConfig reads a YAML scenario file over the defaults: fields absent from
// the file keep their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// MarshalYAML encodes the strategy by name.
func (ps PlacementStrategy) MarshalYAML() (interface{}, error) {
	return ps.String(), nil
}

// UnmarshalYAML decodes a strategy name.
func (ps *PlacementStrategy) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParsePlacementStrategy(name)
	if err != nil {
		return err
	}
	*ps = parsed
	return nil
}
