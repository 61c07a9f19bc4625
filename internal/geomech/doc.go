// Package geomech converts depth-indexed well-log samples (depth, bulk
// density, Vp, Vs) into derived elastic and geomechanical parameters,
// assuming an isotropic, linear-elastic medium in SI units.
//
// The package is the numeric core of the pipeline and has four stages:
//
//   - MapColumns: tolerant detection of which source column carries each
//     canonical field (depth, density, vp, vs).
//   - UnitScale: per-column multiplier converting raw values to SI.
//   - PrepareSamples: row coercion, silent discarding of unusable rows,
//     stable depth-ascending ordering.
//   - Derive: per-depth computation of stress, moduli, impedances,
//     ratios and gradients.
//
// All stages are pure: no I/O, no shared state. Numeric degeneracy
// (near-zero denominators, undefined ratios) never produces an error;
// the affected field resolves to an undefined sentinel (NaN) while the
// rest of the sample stays intact. The only fatal conditions are an
// incomplete column mapping and an input with zero usable rows.
package geomech
