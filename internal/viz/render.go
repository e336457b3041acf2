package viz

import (
	"fmt"
	"strings"

	"github.com/san-kum/phasekit/internal/phase"
)

type Basis int

const (
	MoleBasis Basis = iota
	MassBasis
)

func (b Basis) String() string {
	if b == MassBasis {
		return "mass"
	}
	return "mole"
}

const nameWidth = 8

// RenderState draws temperature, density and one bar per species.
func RenderState(p *phase.Phase, basis Basis, barWidth int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s   %s %s   %s %s\n",
		MetricLabel.Render("T"), MetricValue.Render(fmt.Sprintf("%.2f K", p.Temperature())),
		MetricLabel.Render("rho"), MetricValue.Render(fmt.Sprintf("%.6g kg/m³", p.Density())),
		MetricLabel.Render("W"), MetricValue.Render(fmt.Sprintf("%.4f kg/kmol", p.MeanMolecularWeight())),
	)
	b.WriteString(Subtle.Render(fmt.Sprintf("%s fractions", basis)))
	b.WriteByte('\n')

	for k := 0; k < p.NSpecies(); k++ {
		v := p.MoleFraction(k)
		if basis == MassBasis {
			v = p.MassFraction(k)
		}
		name := p.SpeciesName(k)
		if len(name) < nameWidth {
			name += strings.Repeat(" ", nameWidth-len(name))
		}
		fmt.Fprintf(&b, "%s %s %.6f\n", MetricLabel.Render(name), FractionBar(v, barWidth), v)
	}
	return strings.TrimRight(b.String(), "\n")
}
