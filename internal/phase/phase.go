package phase

import (
	"github.com/go-logr/logr"

	"github.com/san-kum/phasekit/internal/thermo"
)

// Defaults applied by FreezeSpecies.
const (
	DefaultTemperature = 300.0 // K
	DefaultDensity     = 0.001 // kg/m^3
)

// Directory is the species lookup a Phase reads from.
type Directory interface {
	Count() int
	Name(k int) string
	Index(name string) (int, bool)
	MolecularWeights() []float64
	Charge(k int) float64
	Freeze()
	Ready() bool
}

// NumericState stores temperature, density and composition.
type NumericState interface {
	Init(mw []float64)
	Ready() bool
	Temperature() float64
	SetTemperature(t float64)
	Density() float64
	SetDensity(rho float64)
	SetMoleFractions(x []float64) error
	SetMassFractions(y []float64) error
	SetMassFractionsNoNorm(y []float64) error
	MoleFraction(k int) float64
	MassFraction(k int) float64
	MoleFractions(dst []float64) []float64
	MassFractions(dst []float64) []float64
	MeanMolecularWeight() float64
}

// Phase owns the thermodynamic state of a mixture whose species come from a
// Directory. Create one with New and call FreezeSpecies before use.
type Phase struct {
	dir   Directory
	state NumericState
	kk    int
	log   logr.Logger
}

// Option configures a Phase in New.
type Option func(*Phase)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log logr.Logger) Option {
	return func(p *Phase) { p.log = log }
}

// WithState replaces the default thermo.State.
func WithState(s NumericState) Option {
	return func(p *Phase) { p.state = s }
}

// New returns an unfrozen Phase over dir backed by a thermo.State.
func New(dir Directory, opts ...Option) *Phase {
	p := &Phase{
		dir:   dir,
		state: &thermo.State{},
		log:   logr.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FreezeSpecies fixes the species count from the directory and resets the
// state to the defaults. Any previous composition is discarded.
func (p *Phase) FreezeSpecies() error {
	p.dir.Freeze()
	p.state.Init(p.dir.MolecularWeights())

	kk := p.dir.Count()
	y := make([]float64, kk)
	if kk > 0 {
		y[0] = 1.0
	}
	p.kk = kk
	if err := p.SetStateTRY(DefaultTemperature, DefaultDensity, y); err != nil {
		return err
	}

	p.log.V(1).Info("froze species", "species", kk)
	return nil
}

// Ready reports whether species are frozen and both collaborators are
// initialized.
func (p *Phase) Ready() bool {
	return p.kk > 0 && p.dir.Ready() && p.state.Ready()
}

// NSpecies is the species count fixed by the last FreezeSpecies.
func (p *Phase) NSpecies() int { return p.kk }

// StateSize is the length of a state buffer: N+2.
func (p *Phase) StateSize() int { return p.kk + 2 }

// SpeciesName returns the name of species k.
func (p *Phase) SpeciesName(k int) string { return p.dir.Name(k) }

// SpeciesIndex returns the index of name, or -1 and false.
func (p *Phase) SpeciesIndex(name string) (int, bool) {
	k, ok := p.dir.Index(name)
	if !ok || k >= p.kk {
		return -1, false
	}
	return k, true
}

// SpeciesNames returns a fresh slice of names in index order.
func (p *Phase) SpeciesNames() []string {
	names := make([]string, p.kk)
	for k := range names {
		names[k] = p.dir.Name(k)
	}
	return names
}

func (p *Phase) Temperature() float64         { return p.state.Temperature() }
func (p *Phase) Density() float64             { return p.state.Density() }
func (p *Phase) MeanMolecularWeight() float64 { return p.state.MeanMolecularWeight() }

func (p *Phase) SetTemperature(t float64) { p.state.SetTemperature(t) }
func (p *Phase) SetDensity(rho float64)   { p.state.SetDensity(rho) }

func (p *Phase) SetMoleFractions(x []float64) error { return p.state.SetMoleFractions(x) }
func (p *Phase) SetMassFractions(y []float64) error { return p.state.SetMassFractions(y) }

func (p *Phase) SetMassFractionsNoNorm(y []float64) error {
	return p.state.SetMassFractionsNoNorm(y)
}

func (p *Phase) MoleFraction(k int) float64 { return p.state.MoleFraction(k) }
func (p *Phase) MassFraction(k int) float64 { return p.state.MassFraction(k) }

func (p *Phase) MoleFractions(dst []float64) []float64 { return p.state.MoleFractions(dst) }
func (p *Phase) MassFractions(dst []float64) []float64 { return p.state.MassFractions(dst) }
