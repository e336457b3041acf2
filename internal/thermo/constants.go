package thermo

const (
	Avogadro       = 6.02214076e26             // 1/kmol
	ElectronCharge = 1.602176634e-19           // C
	Faraday        = ElectronCharge * Avogadro // C/kmol
)
