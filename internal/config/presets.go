package config

import "sort"

var (
	o2  = SpeciesConfig{Name: "O2", MolecularWeight: 31.998}
	n2  = SpeciesConfig{Name: "N2", MolecularWeight: 28.014}
	ar  = SpeciesConfig{Name: "AR", MolecularWeight: 39.948}
	h2  = SpeciesConfig{Name: "H2", MolecularWeight: 2.016}
	h2o = SpeciesConfig{Name: "H2O", MolecularWeight: 18.015}
	ch4 = SpeciesConfig{Name: "CH4", MolecularWeight: 16.043}
	co2 = SpeciesConfig{Name: "CO2", MolecularWeight: 44.009}
)

var Presets = map[string]*Config{
	"air": {
		Mixture:   "air",
		Species:   []SpeciesConfig{o2, n2, ar},
		InitState: InitStateConfig{
			Temperature:   300,
			Density:       1.1769,
			MoleFractions: "O2:0.21, N2:0.78, AR:0.01",
		},
	},
	"h2-air": {
		Mixture:   "h2-air",
		Species:   []SpeciesConfig{h2, o2, h2o, n2},
		InitState: InitStateConfig{
			Temperature:   1000,
			Density:       0.25,
			MoleFractions: "H2:2, O2:1, N2:3.76",
		},
	},
	"methane-air": {
		Mixture:   "methane-air",
		Species:   []SpeciesConfig{ch4, o2, co2, h2o, n2},
		InitState: InitStateConfig{
			Temperature:   300,
			Density:       1.13,
			MoleFractions: "CH4:1, O2:2, N2:7.52",
		},
	},
	"argon-plasma": {
		Mixture: "argon-plasma",
		Species: []SpeciesConfig{
			{Name: "E", MolecularWeight: 5.485799e-4, Charge: -1},
			ar,
			{Name: "AR+", MolecularWeight: 39.9475, Charge: 1},
		},
		InitState: InitStateConfig{
			Temperature:   10000,
			Density:       0.01,
			MoleFractions: "E:0.05, AR:0.9, AR+:0.05",
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Species = append([]SpeciesConfig(nil), p.Species...)
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
