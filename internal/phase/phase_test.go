package phase_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/phasekit/internal/composition"
	"github.com/san-kum/phasekit/internal/phase"
	"github.com/san-kum/phasekit/internal/species"
	"github.com/san-kum/phasekit/internal/thermo"
)

// densityShiftingState recomputes density whenever mass fractions change,
// the way a constant-volume state collaborator would.
type densityShiftingState struct {
	thermo.State
	calls []string
	lastX []float64
}

func (s *densityShiftingState) SetMassFractionsNoNorm(y []float64) error {
	s.calls = append(s.calls, "Y")
	s.State.SetDensity(-42)
	return s.State.SetMassFractionsNoNorm(y)
}

func (s *densityShiftingState) SetMassFractions(y []float64) error {
	s.calls = append(s.calls, "Y")
	s.State.SetDensity(-42)
	return s.State.SetMassFractions(y)
}

func (s *densityShiftingState) SetMoleFractions(x []float64) error {
	s.calls = append(s.calls, "X")
	s.lastX = append([]float64(nil), x...)
	s.State.SetDensity(-42)
	return s.State.SetMoleFractions(x)
}

func (s *densityShiftingState) SetTemperature(t float64) {
	s.calls = append(s.calls, "T")
	s.State.SetTemperature(t)
}

func (s *densityShiftingState) SetDensity(rho float64) {
	s.calls = append(s.calls, "R")
	s.State.SetDensity(rho)
}

func newDirectory(names ...string) *species.Directory {
	dir := species.NewDirectory()
	for i, name := range names {
		_, err := dir.Add(name, float64(10*(i+1)), 0)
		Expect(err).NotTo(HaveOccurred())
	}
	return dir
}

func newFrozen(opts []phase.Option, names ...string) *phase.Phase {
	p := phase.New(newDirectory(names...), opts...)
	Expect(p.FreezeSpecies()).To(Succeed())
	return p
}

var _ = Describe("Phase", func() {
	var p *phase.Phase

	BeforeEach(func() {
		p = newFrozen(nil, "A", "B", "C")
	})

	Describe("lifecycle", func() {
		It("is not ready before freezing", func() {
			q := phase.New(newDirectory("A", "B"))
			Expect(q.Ready()).To(BeFalse())
			Expect(q.NSpecies()).To(Equal(0))
			Expect(q.StateSize()).To(Equal(2))
		})

		It("applies defaults on freeze", func() {
			q := newFrozen(nil, "A", "B")
			Expect(q.Ready()).To(BeTrue())
			Expect(q.Temperature()).To(Equal(300.0))
			Expect(q.Density()).To(Equal(0.001))
			Expect(q.MassFractions(nil)).To(Equal([]float64{1.0, 0.0}))
		})

		It("is not ready with an empty directory", func() {
			q := newFrozen(nil)
			Expect(q.Ready()).To(BeFalse())
			Expect(q.SaveState(nil)).To(Equal([]float64{300.0, 0.001}))
		})

		It("resets on a second freeze after adding species", func() {
			dir := newDirectory("A", "B")
			q := phase.New(dir)
			Expect(q.FreezeSpecies()).To(Succeed())
			Expect(q.SetStateTRY(1000, 2, []float64{0.2, 0.8})).To(Succeed())

			_, err := dir.Add("C", 30, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(q.Ready()).To(BeFalse())
			Expect(q.NSpecies()).To(Equal(2))

			Expect(q.FreezeSpecies()).To(Succeed())
			Expect(q.Ready()).To(BeTrue())
			Expect(q.NSpecies()).To(Equal(3))
			Expect(q.Temperature()).To(Equal(300.0))
			Expect(q.MassFractions(nil)).To(Equal([]float64{1, 0, 0}))
		})
	})

	Describe("state buffer", func() {
		BeforeEach(func() {
			Expect(p.SetStateTRY(1234.5, 0.37, []float64{0.1, 0.2, 0.7})).To(Succeed())
		})

		It("saves [T, rho, Y...] with exact length", func() {
			buf := p.SaveState(make([]float64, 10))
			Expect(buf).To(HaveLen(5))
			Expect(buf[0]).To(Equal(1234.5))
			Expect(buf[1]).To(Equal(0.37))
			Expect(buf[2:]).To(Equal(p.MassFractions(nil)))
		})

		It("round-trips bit for bit", func() {
			saved := p.SaveState(nil)

			q := newFrozen(nil, "A", "B", "C")
			Expect(q.RestoreState(saved)).To(Succeed())
			Expect(q.SaveState(nil)).To(Equal(saved))
		})

		It("does not renormalize restored fractions", func() {
			Expect(p.RestoreState([]float64{500, 1, 0.5, 0.5, 0.5})).To(Succeed())
			Expect(p.MassFractions(nil)).To(Equal([]float64{0.5, 0.5, 0.5}))
		})

		It("accepts longer buffers", func() {
			Expect(p.RestoreState([]float64{500, 1, 0, 1, 0, 99, 99})).To(Succeed())
			Expect(p.Temperature()).To(Equal(500.0))
			Expect(p.MassFraction(1)).To(Equal(1.0))
		})

		It("rejects every short length without mutating", func() {
			before := p.SaveState(nil)
			full := []float64{900, 9, 0.3, 0.3, 0.4}

			for n := 0; n < p.StateSize(); n++ {
				err := p.RestoreState(full[:n])
				Expect(errors.Is(err, phase.ErrSizeMismatch)).To(BeTrue())

				var serr *phase.SizeMismatchError
				Expect(errors.As(err, &serr)).To(BeTrue())
				Expect(serr.Got).To(Equal(n))
				Expect(serr.Want).To(Equal(5))
				Expect(p.SaveState(nil)).To(Equal(before))
			}
		})

		It("fails loudly when saving into a short fixed buffer", func() {
			Expect(p.SaveStateTo(make([]float64, 4))).To(MatchError(phase.ErrSizeMismatch))

			buf := []float64{0, 0, 0, 0, 0, -1}
			Expect(p.SaveStateTo(buf)).To(Succeed())
			Expect(buf[0]).To(Equal(1234.5))
			Expect(buf[5]).To(Equal(-1.0))
		})

		It("reapplies temperature and density after the composition", func() {
			fake := &densityShiftingState{}
			q := newFrozen([]phase.Option{phase.WithState(fake)}, "A", "B")
			fake.calls = nil

			Expect(q.RestoreState([]float64{450, 0.8, 0.25, 0.75})).To(Succeed())
			Expect(fake.calls).To(Equal([]string{"Y", "T", "R"}))
			Expect(q.Density()).To(Equal(0.8))
			Expect(q.Temperature()).To(Equal(450.0))
		})
	})

	Describe("name-keyed composition", func() {
		It("honors only strictly positive map entries", func() {
			fake := &densityShiftingState{}
			q := newFrozen([]phase.Option{phase.WithState(fake)}, "A", "B", "C")

			Expect(q.SetMoleFractionsByName(composition.Map{"A": 0.3, "B": -1, "C": 0})).To(Succeed())
			Expect(fake.lastX).To(Equal([]float64{0.3, 0, 0}))
			Expect(q.MoleFraction(0)).To(BeNumerically("~", 1, 1e-12))
			Expect(q.MoleFraction(1)).To(Equal(0.0))
		})

		It("treats missing map keys as zero", func() {
			Expect(p.SetMassFractionsByName(composition.Map{"B": 2})).To(Succeed())
			Expect(p.MassFractions(nil)).To(Equal([]float64{0, 1, 0}))
		})

		It("ignores names the directory does not know", func() {
			Expect(p.SetMassFractionsByName(composition.Map{"A": 1, "Z": 5})).To(Succeed())
			Expect(p.MassFractions(nil)).To(Equal([]float64{1, 0, 0}))
		})

		It("sets mole fractions from a string", func() {
			Expect(p.SetMoleFractionsByString("A:0.3,C:0.7")).To(Succeed())
			Expect(p.MoleFraction(0)).To(BeNumerically("~", 0.3, 1e-12))
			Expect(p.MoleFraction(1)).To(Equal(0.0))
			Expect(p.MoleFraction(2)).To(BeNumerically("~", 0.7, 1e-12))
		})

		It("zeros species left out of the string", func() {
			Expect(p.SetMassFractionsByString("B:1")).To(Succeed())
			Expect(p.SetMassFractionsByString("C:1")).To(Succeed())
			Expect(p.MassFractions(nil)).To(Equal([]float64{0, 0, 1}))
		})

		It("surfaces unknown species in strings and keeps the state", func() {
			before := p.SaveState(nil)
			err := p.SetMoleFractionsByString("A:0.5,Q:0.5")
			Expect(err).To(MatchError(species.ErrNameNotFound))
			Expect(err).To(MatchError(composition.ErrUnknownSpecies))
			Expect(p.SaveState(nil)).To(Equal(before))

			Expect(p.SetMassFractionsByString("nope")).To(MatchError(composition.ErrSyntax))
		})

		It("returns every species from the getter", func() {
			Expect(p.SetMoleFractionsByString("A:0.3,C:0.7")).To(Succeed())
			got := p.MoleFractionsByName(composition.Map{"stale": 1})
			Expect(got).To(HaveLen(3))
			Expect(got).To(HaveKeyWithValue("B", 0.0))
			Expect(got.Get("A")).To(BeNumerically("~", 0.3, 1e-12))
			Expect(got.Get("C")).To(BeNumerically("~", 0.7, 1e-12))
			Expect(got.Has("stale")).To(BeFalse())

			Expect(p.MassFractionsByName(nil)).To(HaveLen(3))
		})

		It("returns zero for unknown scalar lookups", func() {
			Expect(p.MoleFractionByName("nonexistent")).To(Equal(0.0))
			Expect(p.MassFractionByName("nonexistent")).To(Equal(0.0))
			Expect(p.MassFractionByName("A")).To(Equal(1.0))
		})
	})

	Describe("combined setters", func() {
		It("apply composition before temperature and density", func() {
			fake := &densityShiftingState{}
			q := newFrozen([]phase.Option{phase.WithState(fake)}, "A", "B")
			fake.calls = nil

			Expect(q.SetStateTRY(400, 2, []float64{0.5, 0.5})).To(Succeed())
			Expect(q.Density()).To(Equal(2.0))
			Expect(q.SetStateTRX(410, 3, []float64{0.5, 0.5})).To(Succeed())
			q.SetStateTR(420, 4)
			Expect(fake.calls).To(Equal([]string{"Y", "T", "R", "X", "T", "R", "T", "R"}))
			Expect(q.Density()).To(Equal(4.0))
		})

		It("apply composition first for the two-variable setters", func() {
			fake := &densityShiftingState{}
			q := newFrozen([]phase.Option{phase.WithState(fake)}, "A", "B")
			fake.calls = nil

			Expect(q.SetStateTX(430, []float64{0.5, 0.5})).To(Succeed())
			Expect(q.SetStateTY(440, []float64{0.5, 0.5})).To(Succeed())
			Expect(fake.calls).To(Equal([]string{"X", "T", "Y", "T"}))
			Expect(q.Temperature()).To(Equal(440.0))

			fake.calls = nil
			Expect(q.SetStateRX(5, []float64{0.5, 0.5})).To(Succeed())
			Expect(q.Density()).To(Equal(5.0))
			Expect(q.SetStateRY(6, []float64{0.5, 0.5})).To(Succeed())
			Expect(q.Density()).To(Equal(6.0))
			Expect(fake.calls).To(Equal([]string{"X", "R", "Y", "R"}))
		})

		It("set each subset", func() {
			Expect(p.SetStateTRX(500, 1.5, []float64{1, 1, 0})).To(Succeed())
			Expect(p.Temperature()).To(Equal(500.0))
			Expect(p.Density()).To(Equal(1.5))
			Expect(p.MoleFraction(0)).To(BeNumerically("~", 0.5, 1e-12))

			Expect(p.SetStateTRXByName(510, 1.6, composition.Map{"C": 1})).To(Succeed())
			Expect(p.MoleFractionByName("C")).To(Equal(1.0))

			Expect(p.SetStateTRYByName(520, 1.7, composition.Map{"B": 1})).To(Succeed())
			Expect(p.MassFractionByName("B")).To(Equal(1.0))
			Expect(p.Density()).To(Equal(1.7))

			Expect(p.SetStateTX(530, []float64{0, 0, 1})).To(Succeed())
			Expect(p.SetStateTY(540, []float64{1, 0, 0})).To(Succeed())
			Expect(p.Temperature()).To(Equal(540.0))
			Expect(p.Density()).To(Equal(1.7))

			Expect(p.SetStateRX(1.8, []float64{0, 1, 0})).To(Succeed())
			Expect(p.SetStateRY(1.9, []float64{0, 0, 1})).To(Succeed())
			Expect(p.Temperature()).To(Equal(540.0))
			Expect(p.Density()).To(Equal(1.9))
			Expect(p.MassFractions(nil)).To(Equal([]float64{0, 0, 1}))
		})

		It("reject short composition arrays", func() {
			Expect(p.SetStateTRY(600, 1, []float64{1})).To(MatchError(thermo.ErrShortInput))
			Expect(p.Temperature()).To(Equal(300.0))
		})
	})

	Describe("molecular weights and charge", func() {
		It("exposes the directory table", func() {
			Expect(p.MolecularWeights()).To(Equal([]float64{10, 20, 30}))
		})

		It("does not share spare capacity with the directory", func() {
			dir := newDirectory("A", "B", "C")
			q := phase.New(dir)
			Expect(q.FreezeSpecies()).To(Succeed())

			view := q.MolecularWeights()
			Expect(cap(view)).To(Equal(3))
			grown := append(view, 99)

			_, err := dir.Add("D", 40, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(grown[3]).To(Equal(99.0))
			Expect(dir.MolecularWeights()).To(Equal([]float64{10, 20, 30, 40}))
		})

		It("grows growable buffers", func() {
			Expect(p.CopyMolecularWeights(nil)).To(Equal([]float64{10, 20, 30}))
			Expect(p.CopyMolecularWeights([]float64{0, 0, 0, 7})).To(Equal([]float64{10, 20, 30, 7}))
		})

		It("rejects short fixed buffers", func() {
			var fixed [2]float64
			err := p.MolecularWeightsTo(fixed[:])
			Expect(err).To(MatchError(phase.ErrSizeMismatch))
			Expect(fixed).To(Equal([2]float64{}))

			var big [3]float64
			Expect(p.MolecularWeightsTo(big[:])).To(Succeed())
			Expect(big[2]).To(Equal(30.0))
		})

		It("computes charge density from mole fractions", func() {
			dir := species.NewDirectory()
			dir.Add("E", 5.485799e-4, -1)
			dir.Add("N2+", 28.0134, 1)
			dir.Add("N2", 28.0134, 0)
			q := phase.New(dir)
			Expect(q.FreezeSpecies()).To(Succeed())

			Expect(q.SetMoleFractionsByString("E:0.2, N2+:0.2, N2:0.6")).To(Succeed())
			Expect(q.ChargeDensity()).To(BeNumerically("~", 0, 1e-3))

			Expect(q.SetMoleFractionsByString("N2+:0.5, N2:0.5")).To(Succeed())
			Expect(q.ChargeDensity()).To(BeNumerically("~", 0.5*thermo.Faraday, 1))
		})
	})
})
