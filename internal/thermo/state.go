package thermo

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// ErrShortInput is returned when a composition array has fewer entries
// than the state has species.
var ErrShortInput = errors.New("thermo: input shorter than species count")

// State holds temperature, mass density and composition for N species.
// Mass fractions are the only stored basis; mole fractions are derived on
// every read.
type State struct {
	temperature float64
	density     float64

	mw  []float64
	rmw []float64
	y   []float64
	ym  []float64 // y/mw

	sumYm float64
	mmw   float64
	ready bool
}

// Init sizes the state for the given molecular weights. Any previous
// composition is discarded.
func (s *State) Init(mw []float64) {
	n := len(mw)
	s.mw = make([]float64, n)
	copy(s.mw, mw)
	s.rmw = make([]float64, n)
	for k, w := range mw {
		s.rmw[k] = 1.0 / w
	}
	s.y = make([]float64, n)
	s.ym = make([]float64, n)
	s.sumYm = 0
	s.mmw = 0
	s.ready = n > 0
}

func (s *State) Ready() bool { return s.ready }

func (s *State) NSpecies() int { return len(s.y) }

func (s *State) Temperature() float64     { return s.temperature }
func (s *State) SetTemperature(t float64) { s.temperature = t }

// Density is the mass density in kg/m^3.
func (s *State) Density() float64     { return s.density }
func (s *State) SetDensity(r float64) { s.density = r }

func (s *State) MeanMolecularWeight() float64 { return s.mmw }

// MolarDensity returns density / mean molecular weight in kmol/m^3.
func (s *State) MolarDensity() float64 {
	if s.mmw == 0 {
		return 0
	}
	return s.density / s.mmw
}

func (s *State) Concentration(k int) float64 {
	return s.density * s.ym[k]
}

// SetMassFractions assigns y and scales it to sum to one. An all-zero input
// is stored as-is.
func (s *State) SetMassFractions(y []float64) error {
	if err := s.checkLen(y); err != nil {
		return err
	}
	copy(s.y, y)
	if sum := floats.Sum(s.y); sum > 0 {
		floats.Scale(1.0/sum, s.y)
	}
	s.update()
	return nil
}

// SetMassFractionsNoNorm assigns y exactly as given.
func (s *State) SetMassFractionsNoNorm(y []float64) error {
	if err := s.checkLen(y); err != nil {
		return err
	}
	copy(s.y, y)
	s.update()
	return nil
}

// SetMoleFractions converts x to mass fractions using the molecular
// weights and normalizes the result.
func (s *State) SetMoleFractions(x []float64) error {
	if err := s.checkLen(x); err != nil {
		return err
	}
	floats.MulTo(s.y, x[:len(s.y)], s.mw)
	if sum := floats.Sum(s.y); sum > 0 {
		floats.Scale(1.0/sum, s.y)
	}
	s.update()
	return nil
}

func (s *State) MassFraction(k int) float64 { return s.y[k] }

func (s *State) MoleFraction(k int) float64 {
	if s.sumYm == 0 {
		return 0
	}
	return s.ym[k] / s.sumYm
}

// MassFractionsView returns the stored mass fractions without copying.
// The slice must not be modified.
func (s *State) MassFractionsView() []float64 { return s.y }

// MassFractions appends the mass fractions to dst[:0].
func (s *State) MassFractions(dst []float64) []float64 {
	return append(dst[:0], s.y...)
}

// MoleFractions appends the mole fractions to dst[:0].
func (s *State) MoleFractions(dst []float64) []float64 {
	dst = append(dst[:0], s.ym...)
	if s.sumYm > 0 {
		floats.Scale(1.0/s.sumYm, dst)
	}
	return dst
}

func (s *State) checkLen(v []float64) error {
	if len(v) < len(s.y) {
		return fmt.Errorf("%w: got %d, want %d", ErrShortInput, len(v), len(s.y))
	}
	return nil
}

func (s *State) update() {
	floats.MulTo(s.ym, s.y, s.rmw)
	s.sumYm = floats.Sum(s.ym)
	if s.sumYm > 0 {
		s.mmw = floats.Sum(s.y) / s.sumYm
	} else {
		s.mmw = 0
	}
}
