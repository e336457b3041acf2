package phase

// SaveState writes [T, rho, Y...] into dst, resized to exactly N+2, and
// returns it. A nil dst is allocated.
func (p *Phase) SaveState(dst []float64) []float64 {
	n := p.StateSize()
	if cap(dst) < n {
		dst = make([]float64, n)
	}
	dst = dst[:n]
	p.fillState(dst)
	return dst
}

// SaveStateTo writes into a caller-owned fixed buffer. It fails if dst is
// shorter than N+2 and leaves entries past N+2 untouched.
func (p *Phase) SaveStateTo(dst []float64) error {
	n := p.StateSize()
	if len(dst) < n {
		return &SizeMismatchError{Op: "SaveStateTo", Got: len(dst), Want: n}
	}
	p.fillState(dst[:n])
	return nil
}

func (p *Phase) fillState(dst []float64) {
	dst[0] = p.state.Temperature()
	dst[1] = p.state.Density()
	for k := 0; k < p.kk; k++ {
		dst[2+k] = p.state.MassFraction(k)
	}
}

// RestoreState loads a buffer produced by SaveState. Mass fractions are
// applied without normalization, then temperature, then density, so the
// buffer's T and rho win over anything the composition update recomputes.
// A buffer shorter than N+2 is rejected and the phase is left unchanged.
func (p *Phase) RestoreState(state []float64) error {
	n := p.StateSize()
	if len(state) < n {
		p.log.V(1).Info("rejected state restore", "got", len(state), "want", n)
		return &SizeMismatchError{Op: "RestoreState", Got: len(state), Want: n}
	}

	if err := p.state.SetMassFractionsNoNorm(state[2:n]); err != nil {
		return err
	}
	p.state.SetTemperature(state[0])
	p.state.SetDensity(state[1])
	return nil
}
