// Package projectile simulates an oblique launch without air resistance.
//
// Kinematics are solved in SI units. Requests may give the initial velocity
// and height in other units and choose the units of the reported results;
// trajectory times are always in seconds.
package projectile

import (
	"math"

	"github.com/Estagiarius/simulajuls/internal/core/numeric"
	"github.com/Estagiarius/simulajuls/internal/core/units"
	apperrors "github.com/Estagiarius/simulajuls/internal/platform/errors"
)

const (
	// DefaultGravity is Earth's surface gravity in m/s².
	DefaultGravity = 9.81
	// DefaultResolution is the number of sampling intervals when unset.
	DefaultResolution = 100
	// MaxResolution bounds the trajectory to MaxResolution+1 samples.
	MaxResolution = 2000
	// MaxLaunchAngle is the steepest accepted launch, in degrees.
	MaxLaunchAngle = 90.0

	precision = 3
)

const (
	initialVelocityField     = "initial_velocity"
	initialVelocityUnitField = "initial_velocity_unit"
	launchAngleField         = "launch_angle"
	initialHeightField       = "initial_height"
	initialHeightUnitField   = "initial_height_unit"
	gravityField             = "gravity"
	resolutionField          = "resolution"
	outputUnitsField         = "output_units"
	velocityUnitField        = "velocity_unit"
	timeUnitField            = "time_unit"
	rangeUnitField           = "range_unit"
	heightUnitField          = "height_unit"
)

// OutputUnits selects the units of the reported results.
type OutputUnits struct {
	VelocityUnit units.Unit `json:"velocity_unit"`
	TimeUnit     units.Unit `json:"time_unit"`
	RangeUnit    units.Unit `json:"range_unit"`
	HeightUnit   units.Unit `json:"height_unit"`
}

// Params describes one launch.
type Params struct {
	InitialVelocity     float64     `json:"initial_velocity"`
	InitialVelocityUnit units.Unit  `json:"initial_velocity_unit"`
	LaunchAngle         float64     `json:"launch_angle"`
	InitialHeight       float64     `json:"initial_height"`
	InitialHeightUnit   units.Unit  `json:"initial_height_unit"`
	Gravity             float64     `json:"gravity"`
	Resolution          int         `json:"resolution"`
	OutputUnits         OutputUnits `json:"output_units"`
}

// Result is the solved launch, rounded to three decimals.
type Result struct {
	InitialVelocityX float64    `json:"initial_velocity_x"`
	InitialVelocityY float64    `json:"initial_velocity_y"`
	VelocityUnit     units.Unit `json:"velocity_unit"`
	TotalTime        float64    `json:"total_time"`
	TimeUnit         units.Unit `json:"time_unit"`
	MaxRange         float64    `json:"max_range"`
	RangeUnit        units.Unit `json:"range_unit"`
	MaxHeight        float64    `json:"max_height"`
	HeightUnit       units.Unit `json:"height_unit"`
	Trajectory       []Sample   `json:"trajectory"`
	ParametersUsed   Params     `json:"parameters_used"`
}

// ParseParams reads a launch from loosely typed request fields.
func ParseParams(raw map[string]any) (Params, error) {
	var p Params
	var err error
	if p.InitialVelocity, err = numeric.CoerceNumber(raw[initialVelocityField], initialVelocityField); err != nil {
		return Params{}, err
	}
	if p.LaunchAngle, err = numeric.CoerceNumber(raw[launchAngleField], launchAngleField); err != nil {
		return Params{}, err
	}
	if p.InitialHeight, err = numeric.CoerceOptionalNumber(raw[initialHeightField], initialHeightField, 0); err != nil {
		return Params{}, err
	}
	if p.Gravity, err = numeric.CoerceOptionalNumber(raw[gravityField], gravityField, DefaultGravity); err != nil {
		return Params{}, err
	}
	p.Resolution = DefaultResolution
	if raw[resolutionField] != nil {
		if p.Resolution, err = numeric.CoerceInt(raw[resolutionField], resolutionField); err != nil {
			return Params{}, err
		}
		// An explicit zero must not fall back to the default in Normalize.
		if err := checkResolution(p.Resolution); err != nil {
			return Params{}, err
		}
	}

	if p.InitialVelocityUnit, err = parseUnit(raw, initialVelocityUnitField); err != nil {
		return Params{}, err
	}
	if p.InitialHeightUnit, err = parseUnit(raw, initialHeightUnitField); err != nil {
		return Params{}, err
	}

	switch out := raw[outputUnitsField].(type) {
	case nil:
	case map[string]any:
		fields := []struct {
			target *units.Unit
			field  string
		}{
			{&p.OutputUnits.VelocityUnit, velocityUnitField},
			{&p.OutputUnits.TimeUnit, timeUnitField},
			{&p.OutputUnits.RangeUnit, rangeUnitField},
			{&p.OutputUnits.HeightUnit, heightUnitField},
		}
		for _, f := range fields {
			if *f.target, err = parseUnit(out, f.field); err != nil {
				return Params{}, err
			}
		}
	default:
		return Params{}, apperrors.InvalidParameter(outputUnitsField, apperrors.RuleObject, nil)
	}
	return p, nil
}

func parseUnit(raw map[string]any, field string) (units.Unit, error) {
	s, err := numeric.CoerceOptionalString(raw[field], field, "")
	return units.Unit(s), err
}

// Normalize fills unset units with SI defaults and a zero resolution with
// DefaultResolution. Unknown units are rejected. Gravity has no Go-level
// default; ParseParams applies DefaultGravity for requests.
func (p Params) Normalize() (Params, error) {
	var err error
	if p.Resolution == 0 {
		p.Resolution = DefaultResolution
	}
	checks := []struct {
		target   *units.Unit
		table    units.Table
		field    string
		fallback units.Unit
		input    bool
	}{
		{&p.InitialVelocityUnit, units.Velocity, initialVelocityUnitField, units.MetersPerSecond, true},
		{&p.InitialHeightUnit, units.Length, initialHeightUnitField, units.Meters, true},
		{&p.OutputUnits.VelocityUnit, units.Velocity, velocityUnitField, units.MetersPerSecond, false},
		{&p.OutputUnits.TimeUnit, units.Time, timeUnitField, units.Seconds, false},
		{&p.OutputUnits.RangeUnit, units.Length, rangeUnitField, units.Meters, false},
		{&p.OutputUnits.HeightUnit, units.Length, heightUnitField, units.Meters, false},
	}
	for _, c := range checks {
		if c.input {
			*c.target, err = c.table.ParseInput(string(*c.target), c.field, c.fallback)
		} else {
			*c.target, err = c.table.ParseOutput(string(*c.target), c.field, c.fallback)
		}
		if err != nil {
			return Params{}, err
		}
	}
	return p, nil
}

// Validate checks the physical ranges of p.
func (p Params) Validate() error {
	finite := []struct {
		value float64
		field string
	}{
		{p.InitialVelocity, initialVelocityField},
		{p.LaunchAngle, launchAngleField},
		{p.InitialHeight, initialHeightField},
		{p.Gravity, gravityField},
	}
	for _, f := range finite {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return apperrors.InvalidParameter(f.field, apperrors.RuleNotFinite, nil)
		}
	}

	if err := numeric.RequireNonNegative(p.InitialVelocity, initialVelocityField); err != nil {
		return err
	}
	if err := numeric.RequireRange(p.LaunchAngle, 0, MaxLaunchAngle, launchAngleField); err != nil {
		return err
	}
	if err := numeric.RequireNonNegative(p.InitialHeight, initialHeightField); err != nil {
		return err
	}
	if err := numeric.RequirePositive(p.Gravity, gravityField); err != nil {
		return err
	}
	return checkResolution(p.Resolution)
}

func checkResolution(resolution int) error {
	return numeric.RequireRange(float64(resolution), 1, MaxResolution, resolutionField)
}

// Simulate validates p and solves the launch.
func Simulate(p Params) (Result, error) {
	p, err := p.Normalize()
	if err != nil {
		return Result{}, err
	}
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	speed, err := units.Velocity.ToBase(p.InitialVelocity, p.InitialVelocityUnit)
	if err != nil {
		return Result{}, err
	}
	height, err := units.Length.ToBase(p.InitialHeight, p.InitialHeightUnit)
	if err != nil {
		return Result{}, err
	}
	launch, err := NewLaunch(speed, p.LaunchAngle, height, p.Gravity)
	if err != nil {
		return Result{}, err
	}

	out := p.OutputUnits
	conv := converter{}
	result := Result{
		InitialVelocityX: conv.do(units.Velocity, launch.VX, out.VelocityUnit, initialVelocityField),
		InitialVelocityY: conv.do(units.Velocity, launch.VY, out.VelocityUnit, initialVelocityField),
		VelocityUnit:     out.VelocityUnit,
		TotalTime:        conv.do(units.Time, launch.TotalTime, out.TimeUnit, gravityField),
		TimeUnit:         out.TimeUnit,
		MaxRange:         conv.do(units.Length, launch.Range(), out.RangeUnit, initialVelocityField),
		RangeUnit:        out.RangeUnit,
		MaxHeight:        conv.do(units.Length, launch.MaxHeight(), out.HeightUnit, gravityField),
		HeightUnit:       out.HeightUnit,
		ParametersUsed:   p,
	}

	samples := launch.Samples(p.Resolution)
	result.Trajectory = make([]Sample, len(samples))
	for i, s := range samples {
		result.Trajectory[i] = Sample{
			Time: conv.do(units.Time, s.Time, units.Seconds, gravityField),
			X:    conv.do(units.Length, s.X, out.RangeUnit, initialVelocityField),
			Y:    conv.do(units.Length, s.Y, out.HeightUnit, gravityField),
		}
	}
	if conv.err != nil {
		return Result{}, conv.err
	}
	return result, nil
}

// converter converts SI values to output units, keeping the first error.
// A value that overflows is blamed on field.
type converter struct {
	err error
}

func (c *converter) do(table units.Table, value float64, unit units.Unit, field string) float64 {
	if c.err != nil {
		return 0
	}
	converted, err := table.FromBase(value, unit)
	if err == nil {
		err = numeric.RequireFinite(converted, field)
	}
	if err != nil {
		c.err = err
		return 0
	}
	return numeric.Round(converted, precision)
}
