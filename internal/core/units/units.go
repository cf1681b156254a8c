// Package units converts the velocity, length and time units accepted by the
// projectile simulation to and from SI base units.
package units

import (
	"sort"
	"strings"

	apperrors "github.com/Estagiarius/simulajuls/internal/platform/errors"
)

// Unit is a unit symbol as written in requests ("m/s", "km", ...).
type Unit string

// Velocity units.
const (
	MetersPerSecond   Unit = "m/s"
	KilometersPerHour Unit = "km/h"
	FeetPerSecond     Unit = "ft/s"
	MilesPerHour      Unit = "mph"
)

// Length units.
const (
	Meters     Unit = "m"
	Kilometers Unit = "km"
	Feet       Unit = "ft"
	Miles      Unit = "mi"
)

// Time units.
const (
	Seconds Unit = "s"
	Minutes Unit = "min"
)

// Conversion factors.
const (
	KilometersPerMeter = 0.001
	MetersPerKilometer = 1000.0
	FeetPerMeter       = 3.28084
	MetersPerFoot      = 0.3048
	MilesPerMeter      = 0.000621371
	MetersPerMile      = 1609.34
	SecondsPerHour     = 3600.0
	MinutesPerSecond   = 1.0 / 60.0
)

// Table maps units of one dimension to factors. toBase multiplies a value in
// the unit to obtain SI; fromBase multiplies an SI value to obtain the unit.
type Table struct {
	dimension string
	toBase    map[Unit]float64
	fromBase  map[Unit]float64
}

var (
	// Velocity accepts every velocity unit in both directions.
	Velocity = Table{
		dimension: "velocity",
		toBase: map[Unit]float64{
			MetersPerSecond:   1,
			KilometersPerHour: MetersPerKilometer / SecondsPerHour,
			FeetPerSecond:     MetersPerFoot,
			MilesPerHour:      MetersPerMile / SecondsPerHour,
		},
		fromBase: map[Unit]float64{
			MetersPerSecond:   1,
			KilometersPerHour: KilometersPerMeter * SecondsPerHour,
			FeetPerSecond:     1 / MetersPerFoot,
			MilesPerHour:      MilesPerMeter * SecondsPerHour,
		},
	}

	// Length accepts m and ft as input and m, km, ft, mi as output.
	Length = Table{
		dimension: "length",
		toBase: map[Unit]float64{
			Meters: 1,
			Feet:   MetersPerFoot,
		},
		fromBase: map[Unit]float64{
			Meters:     1,
			Kilometers: KilometersPerMeter,
			Feet:       FeetPerMeter,
			Miles:      MilesPerMeter,
		},
	}

	// Time is output-only.
	Time = Table{
		dimension: "time",
		toBase:    map[Unit]float64{Seconds: 1},
		fromBase: map[Unit]float64{
			Seconds: 1,
			Minutes: MinutesPerSecond,
		},
	}
)

// Dimension names the quantity the table converts.
func (t Table) Dimension() string {
	return t.dimension
}

// ToBase converts value in unit to SI.
func (t Table) ToBase(value float64, unit Unit) (float64, error) {
	factor, ok := t.toBase[unit]
	if !ok {
		return 0, unknownUnit(t.dimension, unit, t.toBase)
	}
	return value * factor, nil
}

// FromBase converts an SI value to unit.
func (t Table) FromBase(value float64, unit Unit) (float64, error) {
	factor, ok := t.fromBase[unit]
	if !ok {
		return 0, unknownUnit(t.dimension, unit, t.fromBase)
	}
	return value * factor, nil
}

// ParseInput validates raw as an input unit of this table for field.
// Empty input selects fallback.
func (t Table) ParseInput(raw string, field string, fallback Unit) (Unit, error) {
	return parse(raw, field, fallback, t.toBase)
}

// ParseOutput validates raw as an output unit of this table for field.
// Empty input selects fallback.
func (t Table) ParseOutput(raw string, field string, fallback Unit) (Unit, error) {
	return parse(raw, field, fallback, t.fromBase)
}

// InputUnits lists accepted input units in sorted order.
func (t Table) InputUnits() []Unit {
	return sortedUnits(t.toBase)
}

// OutputUnits lists accepted output units in sorted order.
func (t Table) OutputUnits() []Unit {
	return sortedUnits(t.fromBase)
}

func parse(raw, field string, fallback Unit, allowed map[Unit]float64) (Unit, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fallback, nil
	}
	unit := Unit(trimmed)
	if _, ok := allowed[unit]; !ok {
		return "", apperrors.InvalidParameter(field, apperrors.RuleUnit, map[string]string{
			apperrors.MetaValue:   trimmed,
			apperrors.MetaAllowed: joinUnits(sortedUnits(allowed)),
		})
	}
	return unit, nil
}

func unknownUnit(dimension string, unit Unit, allowed map[Unit]float64) error {
	return apperrors.InvalidParameter(dimension+"_unit", apperrors.RuleUnit, map[string]string{
		apperrors.MetaValue:   string(unit),
		apperrors.MetaAllowed: joinUnits(sortedUnits(allowed)),
	})
}

func sortedUnits(m map[Unit]float64) []Unit {
	out := make([]Unit, 0, len(m))
	for unit := range m {
		out = append(out, unit)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func joinUnits(list []Unit) string {
	parts := make([]string, len(list))
	for i, unit := range list {
		parts[i] = string(unit)
	}
	return strings.Join(parts, ", ")
}
