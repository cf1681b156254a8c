// Package acidbase computes the outcome of mixing a strong monoprotic acid
// with a strong monohydroxy base, and titration curves built from the same
// calculation.
//
// Weak-acid equilibria, polyprotic species and buffers are out of scope: every
// proton and hydroxide is assumed fully dissociated, so the final pH depends
// only on the excess moles and the total volume.
package acidbase

import (
	"fmt"
	"math"
	"strings"

	"github.com/Estagiarius/simulajuls/internal/core/numeric"
	apperrors "github.com/Estagiarius/simulajuls/internal/platform/errors"
)

// Status classifies the final solution.
type Status string

const (
	StatusAcidic  Status = "Ácida"
	StatusNeutral Status = "Neutra"
	StatusBasic   Status = "Básica"
)

// Excess reactant labels.
const (
	ExcessHydrogen  = "H+"
	ExcessHydroxide = "OH-"
	ExcessNone      = "Nenhum"
)

const (
	// NeutralEpsilon is the mole difference treated as exact neutralization.
	NeutralEpsilon = 1e-9

	neutralPH = 7.0
	maxPH     = 14.0

	defaultAcidName = "Ácido Forte Monoprótico"
	defaultBaseName = "Base Forte Monohidroxílica"

	msgNeutralized = "Neutralização completa. O ponto de equivalência foi atingido."
	msgClamped     = "O pH calculado excede a escala de 0 a 14 e foi ajustado ao limite."
	msgNearNeutral = "O excesso de %s é pequeno demais para afastar o pH de 7,00."
)

const (
	acidConcentrationField = "acid_concentration"
	acidVolumeField        = "acid_volume"
	baseConcentrationField = "base_concentration"
	baseVolumeField        = "base_volume"
	indicatorNameField     = "indicator_name"
	acidNameField          = "acid_name"
	baseNameField          = "base_name"
)

// Params describes one mixture. Volumes are in mL and concentrations in mol/L.
type Params struct {
	AcidName          string  `json:"acid_name"`
	AcidConcentration float64 `json:"acid_concentration"`
	AcidVolume        float64 `json:"acid_volume"`
	BaseName          string  `json:"base_name"`
	BaseConcentration float64 `json:"base_concentration"`
	BaseVolume        float64 `json:"base_volume"`
	IndicatorName     string  `json:"indicator_name,omitempty"`
}

// Result is the state of the mixed solution.
type Result struct {
	FinalPH            float64 `json:"final_ph"`
	FinalPOH           float64 `json:"final_poh"`
	Status             Status  `json:"status"`
	ExcessReactant     string  `json:"excess_reactant"`
	IndicatorColor     *string `json:"indicator_color"`
	Message            *string `json:"message"`
	TotalVolumeML      float64 `json:"total_volume_ml"`
	MolsHPlusInitial   float64 `json:"mols_h_plus_initial"`
	MolsOHMinusInitial float64 `json:"mols_oh_minus_initial"`
	ParametersUsed     Params  `json:"parameters_used"`
}

// ParseParams reads a mixture from loosely typed request fields.
func ParseParams(raw map[string]any) (Params, error) {
	var p Params
	var err error
	if p.AcidConcentration, err = numeric.CoerceNumber(raw[acidConcentrationField], acidConcentrationField); err != nil {
		return Params{}, err
	}
	if p.AcidVolume, err = numeric.CoerceNumber(raw[acidVolumeField], acidVolumeField); err != nil {
		return Params{}, err
	}
	if p.BaseConcentration, err = numeric.CoerceNumber(raw[baseConcentrationField], baseConcentrationField); err != nil {
		return Params{}, err
	}
	if p.BaseVolume, err = numeric.CoerceNumber(raw[baseVolumeField], baseVolumeField); err != nil {
		return Params{}, err
	}
	if p.IndicatorName, err = numeric.CoerceOptionalString(raw[indicatorNameField], indicatorNameField, ""); err != nil {
		return Params{}, err
	}
	if p.AcidName, err = numeric.CoerceOptionalString(raw[acidNameField], acidNameField, ""); err != nil {
		return Params{}, err
	}
	if p.BaseName, err = numeric.CoerceOptionalString(raw[baseNameField], baseNameField, ""); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate checks that every quantity is finite and non-negative and that the
// mixture has volume.
func (p Params) Validate() error {
	checks := []struct {
		value float64
		field string
	}{
		{p.AcidConcentration, acidConcentrationField},
		{p.AcidVolume, acidVolumeField},
		{p.BaseConcentration, baseConcentrationField},
		{p.BaseVolume, baseVolumeField},
	}
	for _, c := range checks {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return apperrors.InvalidParameter(c.field, apperrors.RuleNotFinite, nil)
		}
		if err := numeric.RequireNonNegative(c.value, c.field); err != nil {
			return err
		}
	}
	if p.AcidVolume+p.BaseVolume == 0 {
		return apperrors.WithMetadata(apperrors.CodeDivisionByZero, "total solution volume is zero",
			map[string]string{apperrors.MetaRule: apperrors.RuleTotalVolume})
	}
	return nil
}

func (p Params) withDefaults() Params {
	if p.AcidName == "" {
		p.AcidName = defaultAcidName
	}
	if p.BaseName == "" {
		p.BaseName = defaultBaseName
	}
	return p
}

// mixture is the unrounded chemistry of one mix.
type mixture struct {
	molsH   float64
	molsOH  float64
	totalL  float64
	ph      float64
	excess  string
	clamped bool
}

// mix reacts the acid with the base. Quantities whose moles or volume
// overflow float64 are rejected against the field that drove them.
func mix(acidConcentration, acidVolumeML, baseConcentration, baseVolumeML float64) (mixture, error) {
	m := mixture{
		molsH:  acidConcentration * acidVolumeML / 1000,
		molsOH: baseConcentration * baseVolumeML / 1000,
		totalL: (acidVolumeML + baseVolumeML) / 1000,
	}
	if err := numeric.RequireFinite(m.molsH, acidConcentrationField); err != nil {
		return mixture{}, err
	}
	if err := numeric.RequireFinite(m.molsOH, baseConcentrationField); err != nil {
		return mixture{}, err
	}
	if err := numeric.RequireFinite(m.totalL, acidVolumeField); err != nil {
		return mixture{}, err
	}
	net := m.molsH - m.molsOH

	switch {
	case math.Abs(net) < NeutralEpsilon:
		m.ph = neutralPH
		m.excess = ExcessNone
	case net > 0:
		m.ph = math.Min(-math.Log10(net/m.totalL), neutralPH)
		m.excess = ExcessHydrogen
	default:
		poh := -math.Log10(-net / m.totalL)
		m.ph = math.Max(maxPH-poh, neutralPH)
		m.excess = ExcessHydroxide
	}

	if m.ph < 0 {
		m.ph, m.clamped = 0, true
	} else if m.ph > maxPH {
		m.ph, m.clamped = maxPH, true
	}
	return m, nil
}

// StatusFor classifies a solution by the reactant left in excess. A tiny
// excess may still report pH 7.00 while the solution is not neutral.
func StatusFor(excess string) Status {
	switch excess {
	case ExcessHydrogen:
		return StatusAcidic
	case ExcessHydroxide:
		return StatusBasic
	default:
		return StatusNeutral
	}
}

// Calculate validates p and computes the mixed solution.
func Calculate(p Params) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	p = p.withDefaults()

	m, err := mix(p.AcidConcentration, p.AcidVolume, p.BaseConcentration, p.BaseVolume)
	if err != nil {
		return Result{}, err
	}
	ph := numeric.Round(m.ph, 2)

	result := Result{
		FinalPH:            ph,
		FinalPOH:           numeric.Round(maxPH-ph, 2),
		Status:             StatusFor(m.excess),
		ExcessReactant:     m.excess,
		TotalVolumeML:      numeric.Round(m.totalL*1000, 3),
		MolsHPlusInitial:   numeric.Round(m.molsH, 9),
		MolsOHMinusInitial: numeric.Round(m.molsOH, 9),
		ParametersUsed:     p,
	}

	var messages []string
	if m.excess == ExcessNone {
		messages = append(messages, msgNeutralized)
	} else if ph == neutralPH {
		messages = append(messages, fmt.Sprintf(msgNearNeutral, m.excess))
	}
	if m.clamped {
		messages = append(messages, msgClamped)
	}

	if ind, ok, none := LookupIndicator(p.IndicatorName); ok {
		color := ind.Color(ph)
		result.IndicatorColor = &color
	} else if !none {
		messages = append(messages, fmt.Sprintf("Indicador '%s' não é suportado ou reconhecido.", p.IndicatorName))
	}

	if len(messages) > 0 {
		msg := strings.Join(messages, " ")
		result.Message = &msg
	}
	return result, nil
}
