package phase

import (
	"fmt"

	"github.com/san-kum/phasekit/internal/composition"
)

// unsetFraction marks species not mentioned in a composition string.
const unsetFraction = -1.0

// SetMoleFractionsByName sets mole fractions from m. Species missing from m
// or mapped to a value <= 0 get zero.
func (p *Phase) SetMoleFractionsByName(m composition.Map) error {
	return p.state.SetMoleFractions(p.denseFractions(m))
}

// SetMassFractionsByName is the mass-basis form of SetMoleFractionsByName.
func (p *Phase) SetMassFractionsByName(m composition.Map) error {
	return p.state.SetMassFractions(p.denseFractions(m))
}

// SetMoleFractionsByString parses text such as "CH4:1, O2:2" and sets the
// named mole fractions, zeroing all other species. Unknown names are an
// error and leave the phase unchanged.
func (p *Phase) SetMoleFractionsByString(text string) error {
	m, err := p.parseComposition(text)
	if err != nil {
		return fmt.Errorf("phase: set mole fractions: %w", err)
	}
	return p.SetMoleFractionsByName(m)
}

// SetMassFractionsByString is the mass-basis form of SetMoleFractionsByString.
func (p *Phase) SetMassFractionsByString(text string) error {
	m, err := p.parseComposition(text)
	if err != nil {
		return fmt.Errorf("phase: set mass fractions: %w", err)
	}
	return p.SetMassFractionsByName(m)
}

// MoleFractionsByName clears dst and fills it with one entry per species,
// zeros included. A nil dst is allocated.
func (p *Phase) MoleFractionsByName(dst composition.Map) composition.Map {
	dst = resetMap(dst, p.kk)
	for k := 0; k < p.kk; k++ {
		dst[p.dir.Name(k)] = p.state.MoleFraction(k)
	}
	return dst
}

func (p *Phase) MassFractionsByName(dst composition.Map) composition.Map {
	dst = resetMap(dst, p.kk)
	for k := 0; k < p.kk; k++ {
		dst[p.dir.Name(k)] = p.state.MassFraction(k)
	}
	return dst
}

// MoleFractionByName returns 0 for names not in the directory.
func (p *Phase) MoleFractionByName(name string) float64 {
	k, ok := p.SpeciesIndex(name)
	if !ok {
		return 0.0
	}
	return p.state.MoleFraction(k)
}

// MassFractionByName returns 0 for names not in the directory.
func (p *Phase) MassFractionByName(name string) float64 {
	k, ok := p.SpeciesIndex(name)
	if !ok {
		return 0.0
	}
	return p.state.MassFraction(k)
}

func (p *Phase) denseFractions(m composition.Map) []float64 {
	v := make([]float64, p.kk)
	for k := range v {
		if x := m.Get(p.dir.Name(k)); x > 0.0 {
			v[k] = x
		}
	}
	return v
}

func (p *Phase) parseComposition(text string) (composition.Map, error) {
	m := composition.Seed(p.SpeciesNames(), unsetFraction)
	if err := composition.Parse(text, m); err != nil {
		return nil, err
	}
	return m, nil
}

func resetMap(m composition.Map, size int) composition.Map {
	if m == nil {
		return make(composition.Map, size)
	}
	m.Clear()
	return m
}
