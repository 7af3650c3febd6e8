package view

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/tesseract/pkg/math3d"
	"github.com/taigrr/tesseract/pkg/render"
)

// Dolly limits, in world units from the origin.
const (
	MinDistance = 3.0
	MaxDistance = 20.0
)

const maxPitch = math.Pi/2 - 0.01

// Axis tracks position and velocity for one orbit angle with spring decay.
type Axis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // internal spring velocity (for animating Velocity toward 0)
}

// NewAxis creates an axis whose velocity settles critically damped.
func NewAxis(fps int) Axis {
	return Axis{
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update applies velocity to position and decays velocity toward 0.
func (a *Axis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// Orbit is the interactive camera rig: yaw and pitch that coast to a stop
// after a nudge, and a dolly distance that eases toward its target.
type Orbit struct {
	Yaw, Pitch Axis

	distance float64
	distVel  float64
	target   float64
	initial  float64
	dolly    harmonica.Spring
	fps      int
}

// NewOrbit creates a rig at distance from the origin, looking down -Z.
func NewOrbit(fps int, distance float64) *Orbit {
	distance = clampDistance(distance)
	return &Orbit{
		Yaw:      NewAxis(fps),
		Pitch:    NewAxis(fps),
		distance: distance,
		target:   distance,
		initial:  distance,
		dolly:    harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
		fps:      fps,
	}
}

func clampDistance(d float64) float64 {
	return max(MinDistance, min(MaxDistance, d))
}

// Nudge adds angular velocity in radians per frame.
func (o *Orbit) Nudge(yaw, pitch float64) {
	o.Yaw.Velocity += yaw
	o.Pitch.Velocity += pitch
}

// Zoom moves the dolly target by delta, clamped to [MinDistance, MaxDistance].
func (o *Orbit) Zoom(delta float64) {
	o.target = clampDistance(o.target + delta)
}

// Reset returns to the starting view.
func (o *Orbit) Reset() {
	o.Yaw = NewAxis(o.fps)
	o.Pitch = NewAxis(o.fps)
	o.target = o.initial
}

// Target returns the distance the dolly is easing toward.
func (o *Orbit) Target() float64 { return o.target }

// Distance returns the current camera distance.
func (o *Orbit) Distance() float64 { return o.distance }

// Update advances one frame.
func (o *Orbit) Update() {
	o.Yaw.Update()
	o.Pitch.Update()
	if o.Pitch.Position > maxPitch {
		o.Pitch.Position, o.Pitch.Velocity = maxPitch, 0
	}
	if o.Pitch.Position < -maxPitch {
		o.Pitch.Position, o.Pitch.Velocity = -maxPitch, 0
	}
	o.distance, o.distVel = o.dolly.Update(o.distance, o.distVel, o.target)
}

// Apply positions cam on the rig, looking at the origin.
func (o *Orbit) Apply(cam *render.Camera) {
	cam.Orbit(math3d.Zero3(), o.distance, o.Yaw.Position, o.Pitch.Position)
}
