// Package phase manages the thermodynamic state of a multi-species phase.
//
// A [Phase] ties a species directory (names, molecular weights, charges) to
// a numeric state holding temperature, density and mass fractions. It
// provides:
//
//   - state buffers: [Phase.SaveState] and [Phase.RestoreState] convert the
//     state to and from a flat []float64 laid out as
//     [T, rho, Y_0, ..., Y_{N-1}]
//   - name-keyed composition: setters taking a [composition.Map] or a
//     "name:value, ..." string, and exhaustive name-keyed getters
//   - combined setters such as [Phase.SetStateTRY]
//
// # Lifecycle
//
// Species are added to the directory first, then [Phase.FreezeSpecies]
// fixes the species count and resets the state to 300 K, 0.001 kg/m^3 and
// pure species 0. Freezing again after adding species is a reset.
//
// # Error policy
//
// Bulk setters propagate lookup failures for unknown species. The scalar
// accessors [Phase.MoleFractionByName] and [Phase.MassFractionByName]
// return 0 for unknown names instead.
//
// # Thread Safety
//
// Phase instances are NOT thread-safe. Use one Phase per goroutine.
package phase
