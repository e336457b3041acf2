package phase

import (
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/phasekit/internal/thermo"
)

// MolecularWeights returns the directory's table without copying. The
// slice is only valid while the directory is unchanged and must not be
// modified.
func (p *Phase) MolecularWeights() []float64 {
	return p.dir.MolecularWeights()[:p.kk:p.kk]
}

// CopyMolecularWeights copies the weights into dst, growing it when it is
// shorter than N. Entries of dst past N are kept.
func (p *Phase) CopyMolecularWeights(dst []float64) []float64 {
	if len(dst) < p.kk {
		dst = append(dst, make([]float64, p.kk-len(dst))...)
	}
	copy(dst, p.MolecularWeights())
	return dst
}

// MolecularWeightsTo copies into a fixed caller buffer and fails when it
// cannot hold N values.
func (p *Phase) MolecularWeightsTo(dst []float64) error {
	if len(dst) < p.kk {
		return &SizeMismatchError{Op: "MolecularWeightsTo", Got: len(dst), Want: p.kk}
	}
	copy(dst, p.MolecularWeights())
	return nil
}

// ChargeDensity returns F * sum(z_k * X_k) in C/kmol. Computed on every call.
func (p *Phase) ChargeDensity() float64 {
	if p.kk == 0 {
		return 0
	}
	z := make([]float64, p.kk)
	for k := range z {
		z[k] = p.dir.Charge(k)
	}
	x := p.state.MoleFractions(make([]float64, 0, p.kk))
	return floats.Dot(z, x[:p.kk]) * thermo.Faraday
}
