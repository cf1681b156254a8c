package acidbase

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Estagiarius/simulajuls/internal/core/numeric"
	apperrors "github.com/Estagiarius/simulajuls/internal/platform/errors"
)

// MaxCurvePoints bounds the number of points in one titration curve.
const MaxCurvePoints = 2000

// volumeEpsilon absorbs float drift when stepping titrant volumes (mL).
const volumeEpsilon = 1e-9

const (
	titrantIsAcidField        = "titrant_is_acid"
	titrantNameField          = "titrant_name"
	titrantConcentrationField = "titrant_concentration"
	initialVolumeField        = "initial_titrant_volume_ml"
	finalVolumeField          = "final_titrant_volume_ml"
	incrementField            = "volume_increment_ml"
)

// CurveParams describes a titration. The analyte is the acid when the
// titrant is a base and the base when the titrant is an acid; the fields of
// the other species are ignored.
type CurveParams struct {
	AcidName               string  `json:"acid_name,omitempty"`
	AcidConcentration      float64 `json:"acid_concentration"`
	AcidVolume             float64 `json:"acid_volume"`
	BaseName               string  `json:"base_name,omitempty"`
	BaseConcentration      float64 `json:"base_concentration"`
	BaseVolume             float64 `json:"base_volume"`
	TitrantIsAcid          bool    `json:"titrant_is_acid"`
	TitrantName            string  `json:"titrant_name,omitempty"`
	TitrantConcentration   float64 `json:"titrant_concentration"`
	InitialTitrantVolumeML float64 `json:"initial_titrant_volume_ml"`
	FinalTitrantVolumeML   float64 `json:"final_titrant_volume_ml"`
	VolumeIncrementML      float64 `json:"volume_increment_ml"`
}

// CurvePoint is the pH after adding a titrant volume.
type CurvePoint struct {
	TitrantVolumeAddedML float64 `json:"titrant_volume_added_ml"`
	PH                   float64 `json:"ph"`
}

// CurveResult is a full titration curve.
type CurveResult struct {
	TitrationCurve     []CurvePoint `json:"titration_curve"`
	EquivalencePointML *float64     `json:"equivalence_point_ml"`
	Message            string       `json:"message"`
	ParametersUsed     CurveParams  `json:"parameters_used"`
}

// ParseCurveParams reads a titration from loosely typed request fields.
func ParseCurveParams(raw map[string]any) (CurveParams, error) {
	var p CurveParams
	var err error
	if p.TitrantIsAcid, err = numeric.CoerceOptionalBool(raw[titrantIsAcidField], titrantIsAcidField, false); err != nil {
		return CurveParams{}, err
	}

	// Only the analyte side is required.
	acidRequired, baseRequired := !p.TitrantIsAcid, p.TitrantIsAcid
	numbers := []struct {
		target   *float64
		field    string
		required bool
	}{
		{&p.AcidConcentration, acidConcentrationField, acidRequired},
		{&p.AcidVolume, acidVolumeField, acidRequired},
		{&p.BaseConcentration, baseConcentrationField, baseRequired},
		{&p.BaseVolume, baseVolumeField, baseRequired},
		{&p.TitrantConcentration, titrantConcentrationField, true},
		{&p.InitialTitrantVolumeML, initialVolumeField, false},
		{&p.FinalTitrantVolumeML, finalVolumeField, true},
		{&p.VolumeIncrementML, incrementField, true},
	}
	for _, n := range numbers {
		if n.required {
			*n.target, err = numeric.CoerceNumber(raw[n.field], n.field)
		} else {
			*n.target, err = numeric.CoerceOptionalNumber(raw[n.field], n.field, 0)
		}
		if err != nil {
			return CurveParams{}, err
		}
	}

	texts := []struct {
		target *string
		field  string
	}{
		{&p.AcidName, acidNameField},
		{&p.BaseName, baseNameField},
		{&p.TitrantName, titrantNameField},
	}
	for _, t := range texts {
		if *t.target, err = numeric.CoerceOptionalString(raw[t.field], t.field, ""); err != nil {
			return CurveParams{}, err
		}
	}
	return p, nil
}

// analyte returns the concentration and volume of the titrated species.
func (p CurveParams) analyte() (concentration, volumeML float64) {
	if p.TitrantIsAcid {
		return p.BaseConcentration, p.BaseVolume
	}
	return p.AcidConcentration, p.AcidVolume
}

// PointCount returns how many points the curve will hold, the final volume
// included.
func (p CurveParams) PointCount() int {
	span := p.FinalTitrantVolumeML - p.InitialTitrantVolumeML
	raw := math.Floor(span/p.VolumeIncrementML + volumeEpsilon)
	if raw >= math.MaxInt32 {
		return math.MaxInt32
	}
	steps := int(raw)
	count := steps + 1
	if p.InitialTitrantVolumeML+float64(steps)*p.VolumeIncrementML < p.FinalTitrantVolumeML-volumeEpsilon {
		count++
	}
	return count
}

// Validate checks ranges and the point budget.
func (p CurveParams) Validate() error {
	concentration, volume := p.analyte()
	concentrationField, volumeField := acidConcentrationField, acidVolumeField
	if p.TitrantIsAcid {
		concentrationField, volumeField = baseConcentrationField, baseVolumeField
	}
	nonNegative := []struct {
		value float64
		field string
	}{
		{concentration, concentrationField},
		{volume, volumeField},
		{p.TitrantConcentration, titrantConcentrationField},
		{p.InitialTitrantVolumeML, initialVolumeField},
	}
	for _, c := range nonNegative {
		if err := numeric.RequireNonNegative(c.value, c.field); err != nil {
			return err
		}
	}
	if err := numeric.RequirePositive(p.VolumeIncrementML, incrementField); err != nil {
		return err
	}
	if err := numeric.RequireRange(p.FinalTitrantVolumeML, p.InitialTitrantVolumeML, math.Inf(1), finalVolumeField); err != nil {
		return err
	}
	if n := p.PointCount(); n > MaxCurvePoints {
		return apperrors.InvalidParameter(incrementField, apperrors.RuleMaxPoints, map[string]string{
			apperrors.MetaMax:   strconv.Itoa(MaxCurvePoints),
			apperrors.MetaValue: strconv.Itoa(n),
		})
	}
	return nil
}

// Volumes returns the titrant volumes sampled by the curve, evenly spaced by
// the increment and ending exactly at the final volume.
func (p CurveParams) Volumes() []float64 {
	n := p.PointCount()
	volumes := make([]float64, 0, n)
	for k := 0; k < n; k++ {
		v := p.InitialTitrantVolumeML + float64(k)*p.VolumeIncrementML
		if v > p.FinalTitrantVolumeML || k == n-1 {
			v = p.FinalTitrantVolumeML
		}
		volumes = append(volumes, v)
	}
	return volumes
}

// EquivalenceVolume returns the titrant volume (mL) that exactly neutralizes
// the analyte. ok is false when the titrant concentration is zero.
func (p CurveParams) EquivalenceVolume() (volumeML float64, ok bool) {
	if p.TitrantConcentration == 0 {
		return 0, false
	}
	concentration, volume := p.analyte()
	return concentration * volume / p.TitrantConcentration, true
}

// Curve validates p and computes the pH after each titrant addition.
func Curve(p CurveParams) (CurveResult, error) {
	if err := p.Validate(); err != nil {
		return CurveResult{}, err
	}

	concentration, volume := p.analyte()
	volumes := p.Volumes()
	points := make([]CurvePoint, 0, len(volumes))
	for _, added := range volumes {
		acidC, acidV, baseC, baseV := concentration, volume, p.TitrantConcentration, added
		if p.TitrantIsAcid {
			acidC, acidV, baseC, baseV = p.TitrantConcentration, added, concentration, volume
		}
		if acidV+baseV == 0 {
			return CurveResult{}, apperrors.WithMetadata(apperrors.CodeDivisionByZero,
				fmt.Sprintf("total solution volume is zero at %v mL of titrant", added),
				map[string]string{apperrors.MetaRule: apperrors.RuleTotalVolume})
		}
		m, err := mix(acidC, acidV, baseC, baseV)
		if err != nil {
			return CurveResult{}, p.renameOverflow(err)
		}
		points = append(points, CurvePoint{
			TitrantVolumeAddedML: numeric.Round(added, 3),
			PH:                   numeric.Round(m.ph, 2),
		})
	}

	result := CurveResult{
		TitrationCurve: points,
		Message:        fmt.Sprintf("Curva de titulação gerada com %d pontos.", len(points)),
		ParametersUsed: p,
	}
	if eq, ok := p.EquivalenceVolume(); ok {
		if err := numeric.RequireFinite(eq, titrantConcentrationField); err != nil {
			return CurveResult{}, err
		}
		rounded := numeric.Round(eq, 3)
		result.EquivalencePointML = &rounded
	}
	return result, nil
}

// renameOverflow points an overflow reported by mix at the titration field
// that fed it: the titrant side of mix is the titrant concentration and the
// total volume grows with the final titrant volume.
func (p CurveParams) renameOverflow(err error) error {
	if apperrors.Rule(err) != apperrors.RuleOverflow {
		return err
	}
	titrantSide := baseConcentrationField
	if p.TitrantIsAcid {
		titrantSide = acidConcentrationField
	}
	switch apperrors.Field(err) {
	case titrantSide:
		return apperrors.InvalidParameter(titrantConcentrationField, apperrors.RuleOverflow, nil)
	case acidVolumeField:
		return apperrors.InvalidParameter(finalVolumeField, apperrors.RuleOverflow, nil)
	}
	return err
}
