package geomech

import "math"

const (
	// gravity is the gravitational acceleration used by the vertical
	// stress integral, in m/s2.
	gravity = 9.81

	// denomEpsilon guards ratio denominators against numeric blow-up.
	denomEpsilon = 1e-12
)

// Derive computes the full derived parameter set for an ordered,
// depth-ascending sample sequence. The output is index-aligned 1:1 with
// the input. Derive is purely functional and never fails: degenerate
// formulas resolve to the undefined sentinel for that field only.
//
// The stress integral and the brittleness normalization need the whole
// sequence, so the input must be fully resident; Derive is not a
// streaming transform.
func Derive(samples []PreparedSample) []DerivedSample {
	n := len(samples)
	out := make([]DerivedSample, n)
	if n == 0 {
		return out
	}

	for i, s := range samples {
		vp2 := s.Vp * s.Vp
		vs2 := s.Vs * s.Vs

		d := DerivedSample{PreparedSample: s}
		d.ShearModulus = s.Density * vs2
		d.BulkModulus = s.Density * (vp2 - 4.0/3.0*vs2)
		d.LameLambda = s.Density * (vp2 - 2*vs2)
		d.AcousticImpedance = s.Density * s.Vp
		d.ShearImpedance = s.Density * s.Vs
		d.PModulus = s.Density * vp2

		d.PoissonRatio = guardedRatio(vp2-2*vs2, 2*(vp2-vs2))
		if IsDefined(d.PoissonRatio) {
			d.YoungsModulus = 2 * d.ShearModulus * (1 + d.PoissonRatio)
		} else {
			d.YoungsModulus = Undefined()
		}

		if s.Vs != 0 {
			d.VpVsRatio = s.Vp / s.Vs
		} else {
			d.VpVsRatio = Undefined()
		}
		if d.ShearModulus != 0 {
			d.LambdaOverMu = d.LameLambda / d.ShearModulus
		} else {
			d.LambdaOverMu = Undefined()
		}
		d.PoissonFromModuli = guardedRatio(
			3*d.BulkModulus-2*d.ShearModulus,
			2*(3*d.BulkModulus+d.ShearModulus),
		)

		out[i] = d
	}

	integrateVerticalStress(samples, out)
	differentiateImpedance(samples, out)
	normalizeBrittleness(out)

	return out
}

// integrateVerticalStress accumulates the trapezoidal integral of
// density over depth, scaled by g. The shallowest sample is the
// zero-stress reference regardless of its actual depth.
func integrateVerticalStress(samples []PreparedSample, out []DerivedSample) {
	var stress float64
	out[0].VerticalStress = 0
	for i := 1; i < len(samples); i++ {
		dz := samples[i].Depth - samples[i-1].Depth
		stress += 0.5 * (samples[i-1].Density + samples[i].Density) * dz * gravity
		out[i].VerticalStress = stress
	}
}

// differentiateImpedance fills the acoustic-impedance finite difference
// and the sample-to-sample impedance delta. Interior samples use a
// centered difference; the two boundary samples use one-sided
// differences. A zero depth span, or fewer than two samples, yields the
// undefined sentinel.
func differentiateImpedance(samples []PreparedSample, out []DerivedSample) {
	n := len(out)
	for i := range out {
		if i == 0 {
			out[i].DeltaImpedancePrev = 0
		} else {
			out[i].DeltaImpedancePrev = out[i].AcousticImpedance - out[i-1].AcousticImpedance
		}

		if n < 2 {
			out[i].ImpedanceGradient = Undefined()
			continue
		}
		var lo, hi int
		switch i {
		case 0:
			lo, hi = 0, 1
		case n - 1:
			lo, hi = n-2, n-1
		default:
			lo, hi = i-1, i+1
		}
		span := samples[hi].Depth - samples[lo].Depth
		if span == 0 {
			out[i].ImpedanceGradient = Undefined()
			continue
		}
		out[i].ImpedanceGradient = (out[hi].AcousticImpedance - out[lo].AcousticImpedance) / span
	}
}

// normalizeBrittleness min-max normalizes Young's modulus over the
// samples whose modulus is defined. With no defined values, or a single
// distinct value, every sample gets the sentinel.
func normalizeBrittleness(out []DerivedSample) {
	eMin := math.Inf(1)
	eMax := math.Inf(-1)
	defined := 0
	for i := range out {
		if e := out[i].YoungsModulus; IsDefined(e) {
			defined++
			eMin = math.Min(eMin, e)
			eMax = math.Max(eMax, e)
		}
	}
	if defined == 0 || eMax == eMin {
		for i := range out {
			out[i].BrittlenessE = Undefined()
		}
		return
	}
	for i := range out {
		if e := out[i].YoungsModulus; IsDefined(e) {
			out[i].BrittlenessE = (e - eMin) / (eMax - eMin)
		} else {
			out[i].BrittlenessE = Undefined()
		}
	}
}

// guardedRatio divides num by den, resolving to the undefined sentinel
// when the denominator is within denomEpsilon of zero.
func guardedRatio(num, den float64) float64 {
	if math.Abs(den) < denomEpsilon {
		return Undefined()
	}
	return num / den
}
