package geomech

import (
	"encoding/json"
	"math"
)

// Field identifies one of the canonical well-log curves the pipeline
// requires from an input file.
type Field string

const (
	FieldDepth   Field = "depth"
	FieldDensity Field = "density"
	FieldVp      Field = "vp"
	FieldVs      Field = "vs"
)

// CanonicalFields lists the required fields in the order validation
// errors report them.
var CanonicalFields = []Field{FieldDepth, FieldDensity, FieldVp, FieldVs}

// UnitKind selects the unit-conversion rule set for a column.
type UnitKind int

const (
	UnitDepth UnitKind = iota
	UnitDensity
	UnitVelocity
)

// RawRow is one decoded input record, keyed by the original header
// label. Values are whatever the decoder produced: a number, a string,
// or nil/absent. RawRows are owned by the decoder and read-only here.
type RawRow map[string]any

// ColumnMapping assigns each canonical field to the source header label
// that carries it. Fields with no detected column are simply absent.
type ColumnMapping map[Field]string

// PreparedSample is one validated log sample in SI units: depth in m,
// density in kg/m3, velocities in m/s. All values are finite.
type PreparedSample struct {
	Depth   float64 `json:"depth"`
	Density float64 `json:"density"`
	Vp      float64 `json:"vp"`
	Vs      float64 `json:"vs"`
}

// DerivedSample is a PreparedSample plus the derived elastic and
// geomechanical parameters. A derived field may hold the undefined
// sentinel (NaN) when its formula is numerically degenerate for this
// sample; the sample itself is never dropped. Field order matches the
// canonical serialization order.
type DerivedSample struct {
	PreparedSample

	VerticalStress     float64 // Pa, trapezoidal integral of density over depth
	ShearModulus       float64 // Pa
	BulkModulus        float64 // Pa
	LameLambda         float64 // Pa
	YoungsModulus      float64 // Pa
	PoissonRatio       float64
	AcousticImpedance  float64 // kg/(m2*s)
	ShearImpedance     float64 // kg/(m2*s)
	PModulus           float64 // Pa
	VpVsRatio          float64
	ImpedanceGradient  float64 // d(acoustic impedance)/d(depth)
	DeltaImpedancePrev float64
	LambdaOverMu       float64
	PoissonFromModuli  float64
	BrittlenessE       float64 // min-max normalized Young's modulus
}

// Undefined returns the sentinel marking a derived field whose formula
// is degenerate for a sample.
func Undefined() float64 {
	return math.NaN()
}

// IsDefined reports whether v is a real measurement rather than the
// undefined sentinel.
func IsDefined(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ColumnNames is the canonical field order for any serialized output
// (CSV, XLSX, JSON results).
var ColumnNames = []string{
	"depth", "density", "vp", "vs",
	"vertical_stress", "shear_modulus", "bulk_modulus", "lame_lambda",
	"youngs_modulus", "poisson_ratio", "acoustic_impedance",
	"shear_impedance", "p_modulus", "vp_vs_ratio", "impedance_gradient",
	"delta_impedance_prev", "lambda_over_mu", "poisson_from_moduli",
	"brittleness_e",
}

// Columns returns the sample's values aligned with ColumnNames.
func (d DerivedSample) Columns() []float64 {
	return []float64{
		d.Depth, d.Density, d.Vp, d.Vs,
		d.VerticalStress, d.ShearModulus, d.BulkModulus, d.LameLambda,
		d.YoungsModulus, d.PoissonRatio, d.AcousticImpedance,
		d.ShearImpedance, d.PModulus, d.VpVsRatio, d.ImpedanceGradient,
		d.DeltaImpedancePrev, d.LambdaOverMu, d.PoissonFromModuli,
		d.BrittlenessE,
	}
}

// derivedSampleJSON mirrors DerivedSample with nullable derived fields,
// since JSON has no NaN. Undefined fields marshal as null.
type derivedSampleJSON struct {
	Depth              float64  `json:"depth"`
	Density            float64  `json:"density"`
	Vp                 float64  `json:"vp"`
	Vs                 float64  `json:"vs"`
	VerticalStress     *float64 `json:"vertical_stress"`
	ShearModulus       *float64 `json:"shear_modulus"`
	BulkModulus        *float64 `json:"bulk_modulus"`
	LameLambda         *float64 `json:"lame_lambda"`
	YoungsModulus      *float64 `json:"youngs_modulus"`
	PoissonRatio       *float64 `json:"poisson_ratio"`
	AcousticImpedance  *float64 `json:"acoustic_impedance"`
	ShearImpedance     *float64 `json:"shear_impedance"`
	PModulus           *float64 `json:"p_modulus"`
	VpVsRatio          *float64 `json:"vp_vs_ratio"`
	ImpedanceGradient  *float64 `json:"impedance_gradient"`
	DeltaImpedancePrev *float64 `json:"delta_impedance_prev"`
	LambdaOverMu       *float64 `json:"lambda_over_mu"`
	PoissonFromModuli  *float64 `json:"poisson_from_moduli"`
	BrittlenessE       *float64 `json:"brittleness_e"`
}

// MarshalJSON serializes the sample in the canonical field order with
// null standing in for undefined values.
func (d DerivedSample) MarshalJSON() ([]byte, error) {
	return json.Marshal(derivedSampleJSON{
		Depth:              d.Depth,
		Density:            d.Density,
		Vp:                 d.Vp,
		Vs:                 d.Vs,
		VerticalStress:     nullable(d.VerticalStress),
		ShearModulus:       nullable(d.ShearModulus),
		BulkModulus:        nullable(d.BulkModulus),
		LameLambda:         nullable(d.LameLambda),
		YoungsModulus:      nullable(d.YoungsModulus),
		PoissonRatio:       nullable(d.PoissonRatio),
		AcousticImpedance:  nullable(d.AcousticImpedance),
		ShearImpedance:     nullable(d.ShearImpedance),
		PModulus:           nullable(d.PModulus),
		VpVsRatio:          nullable(d.VpVsRatio),
		ImpedanceGradient:  nullable(d.ImpedanceGradient),
		DeltaImpedancePrev: nullable(d.DeltaImpedancePrev),
		LambdaOverMu:       nullable(d.LambdaOverMu),
		PoissonFromModuli:  nullable(d.PoissonFromModuli),
		BrittlenessE:       nullable(d.BrittlenessE),
	})
}

// UnmarshalJSON restores the sample, mapping null back to the undefined
// sentinel.
func (d *DerivedSample) UnmarshalJSON(data []byte) error {
	var raw derivedSampleJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.Depth = raw.Depth
	d.Density = raw.Density
	d.Vp = raw.Vp
	d.Vs = raw.Vs
	d.VerticalStress = fromNullable(raw.VerticalStress)
	d.ShearModulus = fromNullable(raw.ShearModulus)
	d.BulkModulus = fromNullable(raw.BulkModulus)
	d.LameLambda = fromNullable(raw.LameLambda)
	d.YoungsModulus = fromNullable(raw.YoungsModulus)
	d.PoissonRatio = fromNullable(raw.PoissonRatio)
	d.AcousticImpedance = fromNullable(raw.AcousticImpedance)
	d.ShearImpedance = fromNullable(raw.ShearImpedance)
	d.PModulus = fromNullable(raw.PModulus)
	d.VpVsRatio = fromNullable(raw.VpVsRatio)
	d.ImpedanceGradient = fromNullable(raw.ImpedanceGradient)
	d.DeltaImpedancePrev = fromNullable(raw.DeltaImpedancePrev)
	d.LambdaOverMu = fromNullable(raw.LambdaOverMu)
	d.PoissonFromModuli = fromNullable(raw.PoissonFromModuli)
	d.BrittlenessE = fromNullable(raw.BrittlenessE)
	return nil
}

func nullable(v float64) *float64 {
	if !IsDefined(v) {
		return nil
	}
	return &v
}

func fromNullable(p *float64) float64 {
	if p == nil {
		return Undefined()
	}
	return *p
}
