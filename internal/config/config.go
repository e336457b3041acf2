package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/phasekit/internal/phase"
	"github.com/san-kum/phasekit/internal/species"
)

const DefaultMixture = "air"

var ErrConflictingComposition = errors.New("config: init_state sets both mole_fractions and mass_fractions")

// Config describes a mixture: its species and an initial state.
type Config struct {
	Mixture   string          `yaml:"mixture"`
	Species   []SpeciesConfig `yaml:"species"`
	InitState InitStateConfig `yaml:"init_state"`
}

type SpeciesConfig struct {
	Name            string  `yaml:"name"`
	MolecularWeight float64 `yaml:"mw"`
	Charge          float64 `yaml:"charge,omitempty"`
}

// InitStateConfig is applied after freezing. Zero temperature or density
// keeps the freeze defaults.
type InitStateConfig struct {
	Temperature   float64 `yaml:"temperature"`
	Density       float64 `yaml:"density"`
	MoleFractions string  `yaml:"mole_fractions,omitempty"`
	MassFractions string  `yaml:"mass_fractions,omitempty"`
}

func DefaultConfig() *Config {
	return GetPreset(DefaultMixture)
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Mixture == "" {
		cfg.Mixture = "custom"
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Directory builds an unfrozen species directory.
func (c *Config) Directory() (*species.Directory, error) {
	dir := species.NewDirectory()
	for _, s := range c.Species {
		if _, err := dir.Add(s.Name, s.MolecularWeight, s.Charge); err != nil {
			return nil, fmt.Errorf("config %s: %w", c.Mixture, err)
		}
	}
	return dir, nil
}

// NewPhase builds, freezes and initializes a phase for the mixture.
func (c *Config) NewPhase(opts ...phase.Option) (*phase.Phase, error) {
	dir, err := c.Directory()
	if err != nil {
		return nil, err
	}

	p := phase.New(dir, opts...)
	if err := p.FreezeSpecies(); err != nil {
		return nil, err
	}
	if err := c.InitState.Apply(p); err != nil {
		return nil, fmt.Errorf("config %s: %w", c.Mixture, err)
	}
	return p, nil
}

// Apply sets the composition first, then temperature and density.
func (s InitStateConfig) Apply(p *phase.Phase) error {
	switch {
	case s.MoleFractions != "" && s.MassFractions != "":
		return ErrConflictingComposition
	case s.MoleFractions != "":
		if err := p.SetMoleFractionsByString(s.MoleFractions); err != nil {
			return err
		}
	case s.MassFractions != "":
		if err := p.SetMassFractionsByString(s.MassFractions); err != nil {
			return err
		}
	}

	if s.Temperature > 0 {
		p.SetTemperature(s.Temperature)
	}
	if s.Density > 0 {
		p.SetDensity(s.Density)
	}
	return nil
}

// FromTables builds a config with no initial state from parallel species
// tables, such as those recorded in a checkpoint. charges may be nil.
func FromTables(mixture string, names []string, weights, charges []float64) *Config {
	cfg := &Config{Mixture: mixture, Species: make([]SpeciesConfig, len(names))}
	for k, name := range names {
		cfg.Species[k] = SpeciesConfig{Name: name}
		if k < len(weights) {
			cfg.Species[k].MolecularWeight = weights[k]
		}
		if k < len(charges) {
			cfg.Species[k].Charge = charges[k]
		}
	}
	return cfg
}

// Tables is the inverse of FromTables.
func (c *Config) Tables() (names []string, weights, charges []float64) {
	for _, s := range c.Species {
		names = append(names, s.Name)
		weights = append(weights, s.MolecularWeight)
		charges = append(charges, s.Charge)
	}
	return names, weights, charges
}
