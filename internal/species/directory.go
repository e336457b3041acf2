package species

import (
	"errors"
	"fmt"
)

var (
	// ErrNameNotFound is returned when a lookup names no known species.
	ErrNameNotFound = errors.New("species: name not found")

	// ErrDuplicateSpecies is returned when Add is given a name already present.
	ErrDuplicateSpecies = errors.New("species: duplicate species name")

	// ErrInvalidWeight is returned for a zero or negative molecular weight.
	ErrInvalidWeight = errors.New("species: molecular weight must be positive")

	// ErrEmptyName is returned when Add is given an empty name.
	ErrEmptyName = errors.New("species: empty name")
)

// Species is one constituent tracked by the directory.
type Species struct {
	Name            string
	MolecularWeight float64 // kg/kmol
	Charge          float64 // elementary charges
}

// Directory maps species names to positions and holds the per-species
// molecular weight and charge tables.
type Directory struct {
	species []Species
	index   map[string]int
	mw      []float64
	frozen  bool
}

func NewDirectory() *Directory {
	return &Directory{index: make(map[string]int)}
}

// Add appends a species and returns its index. Adding to a frozen
// directory un-freezes it until the next Freeze.
func (d *Directory) Add(name string, mw, charge float64) (int, error) {
	if name == "" {
		return -1, ErrEmptyName
	}
	if _, ok := d.index[name]; ok {
		return -1, fmt.Errorf("%w: %s", ErrDuplicateSpecies, name)
	}
	if !(mw > 0) {
		return -1, fmt.Errorf("%w: %s (%g)", ErrInvalidWeight, name, mw)
	}

	k := len(d.species)
	d.species = append(d.species, Species{Name: name, MolecularWeight: mw, Charge: charge})
	d.mw = append(d.mw, mw)
	d.index[name] = k
	d.frozen = false
	return k, nil
}

func (d *Directory) Freeze()      { d.frozen = true }
func (d *Directory) Frozen() bool { return d.frozen }

func (d *Directory) Ready() bool {
	return d.frozen && len(d.species) > 0
}

func (d *Directory) Count() int { return len(d.species) }

func (d *Directory) Name(k int) string { return d.species[k].Name }

func (d *Directory) Names() []string {
	names := make([]string, len(d.species))
	for k, s := range d.species {
		names[k] = s.Name
	}
	return names
}

// Index returns the position of name, or -1 and false.
func (d *Directory) Index(name string) (int, bool) {
	k, ok := d.index[name]
	if !ok {
		return -1, false
	}
	return k, true
}

// Lookup is Index with an error for unknown names.
func (d *Directory) Lookup(name string) (int, error) {
	k, ok := d.index[name]
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrNameNotFound, name)
	}
	return k, nil
}

// MolecularWeights returns the directory's own table. The slice is
// borrowed: callers must not modify it, and it is replaced when species are
// added.
func (d *Directory) MolecularWeights() []float64 { return d.mw }

func (d *Directory) MolecularWeight(k int) float64 { return d.mw[k] }

func (d *Directory) Charge(k int) float64 { return d.species[k].Charge }

func (d *Directory) Species(k int) Species { return d.species[k] }
