package phase

import "github.com/san-kum/phasekit/internal/composition"

// Combined setters apply composition first, then temperature, then density.

func (p *Phase) SetStateTRX(t, rho float64, x []float64) error {
	if err := p.SetMoleFractions(x); err != nil {
		return err
	}
	p.SetTemperature(t)
	p.SetDensity(rho)
	return nil
}

func (p *Phase) SetStateTRXByName(t, rho float64, x composition.Map) error {
	if err := p.SetMoleFractionsByName(x); err != nil {
		return err
	}
	p.SetTemperature(t)
	p.SetDensity(rho)
	return nil
}

func (p *Phase) SetStateTRY(t, rho float64, y []float64) error {
	if err := p.SetMassFractions(y); err != nil {
		return err
	}
	p.SetTemperature(t)
	p.SetDensity(rho)
	return nil
}

func (p *Phase) SetStateTRYByName(t, rho float64, y composition.Map) error {
	if err := p.SetMassFractionsByName(y); err != nil {
		return err
	}
	p.SetTemperature(t)
	p.SetDensity(rho)
	return nil
}

func (p *Phase) SetStateTR(t, rho float64) {
	p.SetTemperature(t)
	p.SetDensity(rho)
}

func (p *Phase) SetStateTX(t float64, x []float64) error {
	if err := p.SetMoleFractions(x); err != nil {
		return err
	}
	p.SetTemperature(t)
	return nil
}

func (p *Phase) SetStateTY(t float64, y []float64) error {
	if err := p.SetMassFractions(y); err != nil {
		return err
	}
	p.SetTemperature(t)
	return nil
}

func (p *Phase) SetStateRX(rho float64, x []float64) error {
	if err := p.SetMoleFractions(x); err != nil {
		return err
	}
	p.SetDensity(rho)
	return nil
}

func (p *Phase) SetStateRY(rho float64, y []float64) error {
	if err := p.SetMassFractions(y); err != nil {
		return err
	}
	p.SetDensity(rho)
	return nil
}
