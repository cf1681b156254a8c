package projectile

import (
	"math"

	"github.com/Estagiarius/simulajuls/internal/core/numeric"
	apperrors "github.com/Estagiarius/simulajuls/internal/platform/errors"
)

// flightEpsilon is the shortest flight time (s) still sampled as a trajectory.
const flightEpsilon = 1e-6

// Launch is the unrounded SI kinematics of one projectile.
type Launch struct {
	VX        float64
	VY        float64
	Height    float64
	Gravity   float64
	TotalTime float64
}

// Sample is one point of the trajectory.
type Sample struct {
	Time float64 `json:"time"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// NewLaunch solves the flight of a projectile fired at speed (m/s) and
// angleDeg degrees from height (m) under gravity (m/s²). Inputs whose
// kinematics overflow float64 are rejected as overflow errors.
func NewLaunch(speed, angleDeg, height, gravity float64) (Launch, error) {
	theta := angleDeg * math.Pi / 180
	l := Launch{
		VX:      speed * math.Cos(theta),
		VY:      speed * math.Sin(theta),
		Height:  height,
		Gravity: gravity,
	}

	if err := numeric.RequireFinite(l.VY*l.VY, initialVelocityField); err != nil {
		return Launch{}, err
	}
	if err := numeric.RequireFinite(2*gravity*height, initialHeightField); err != nil {
		return Launch{}, err
	}
	discriminant := l.VY*l.VY + 2*gravity*height
	if discriminant < 0 || math.IsNaN(discriminant) {
		return Launch{}, apperrors.WithMetadata(apperrors.CodeInvalidParameter,
			"flight time has no real solution",
			map[string]string{apperrors.MetaField: initialHeightField})
	}
	l.TotalTime = (l.VY + math.Sqrt(discriminant)) / gravity
	if err := numeric.RequireFinite(l.TotalTime, gravityField); err != nil {
		return Launch{}, err
	}
	if l.TotalTime < flightEpsilon {
		l.TotalTime = 0
	}
	if err := numeric.RequireFinite(l.Range(), initialVelocityField); err != nil {
		return Launch{}, err
	}
	if err := numeric.RequireFinite(l.MaxHeight(), gravityField); err != nil {
		return Launch{}, err
	}
	return l, nil
}

// Range is the horizontal distance (m) covered until landing.
func (l Launch) Range() float64 {
	return l.VX * l.TotalTime
}

// MaxHeight is the apex of the flight (m).
func (l Launch) MaxHeight() float64 {
	if l.VY > 0 {
		return l.Height + l.VY*l.VY/(2*l.Gravity)
	}
	return l.Height
}

// Position returns the position (m) at t seconds. y never goes below ground.
func (l Launch) Position(t float64) (x, y float64) {
	x = l.VX * t
	y = l.Height + l.VY*t - 0.5*l.Gravity*t*t
	if y < 0 {
		y = 0
	}
	return x, y
}

// Samples returns resolution+1 evenly spaced samples from launch to landing.
// The last sample sits exactly on the ground at the landing point. A launch
// with no flight time yields the single sample (0, 0, height).
func (l Launch) Samples(resolution int) []Sample {
	if l.TotalTime == 0 {
		return []Sample{{Time: 0, X: 0, Y: l.Height}}
	}
	if resolution < 1 {
		resolution = 1
	}

	samples := make([]Sample, 0, resolution+1)
	step := l.TotalTime / float64(resolution)
	for k := 0; k < resolution; k++ {
		t := float64(k) * step
		x, y := l.Position(t)
		samples = append(samples, Sample{Time: t, X: x, Y: y})
	}
	return append(samples, Sample{Time: l.TotalTime, X: l.Range(), Y: 0})
}
