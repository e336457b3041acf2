// Package thermo stores the numeric state of a multi-species mixture.
//
// A [State] keeps temperature, mass density and mass fractions. Mass
// fractions are the canonical basis; mole fractions, mean molecular weight
// and concentrations are computed from them with the molecular weights given
// to [State.Init].
//
// Setting a composition never changes the stored density.
package thermo
