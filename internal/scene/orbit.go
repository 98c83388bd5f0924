package scene

import "math"

const phiEpsilon = 1e-6

// OrbitControls swings a camera around its target on a sphere. Input adds
// to pending deltas which Update bleeds off a fraction at a time, so motion
// eases out after the mouse lets go.
type OrbitControls struct {
	Camera *Camera

	EnableDamping   bool
	DampingFactor   float64
	AutoRotate      bool
	AutoRotateSpeed float64 // 2.0 is one orbit per 30s at 60 updates/s
	RotateSpeed     float64
	ZoomSpeed       float64
	MinDistance     float64
	MaxDistance     float64

	radius, theta, phi float64
	deltaTheta         float64
	deltaPhi           float64
	scale              float64
}

// NewOrbitControls attaches damped, auto-rotating controls to c.
func NewOrbitControls(c *Camera) *OrbitControls {
	o := &OrbitControls{
		Camera:          c,
		EnableDamping:   true,
		DampingFactor:   0.05,
		AutoRotate:      true,
		AutoRotateSpeed: 2,
		RotateSpeed:     1,
		ZoomSpeed:       1,
		MinDistance:     0.5,
		MaxDistance:     60,
		scale:           1,
	}
	o.sync()
	return o
}

// sync reads spherical coordinates back from the camera position.
func (o *OrbitControls) sync() {
	off := o.Camera.Position.Sub(o.Camera.Target)
	o.radius = off.Len()
	if o.radius == 0 {
		o.theta, o.phi = 0, math.Pi/2
		return
	}
	o.theta = math.Atan2(off.X, off.Z)
	o.phi = math.Acos(math.Max(-1, math.Min(1, off.Y/o.radius)))
}

// Rotate handles a pointer drag of (dx, dy) pixels in a viewport of height h.
func (o *OrbitControls) Rotate(dx, dy, h float64) {
	if h <= 0 {
		return
	}
	o.deltaTheta -= 2 * math.Pi * dx / h * o.RotateSpeed
	o.deltaPhi -= 2 * math.Pi * dy / h * o.RotateSpeed
}

// Dolly moves toward the target for positive steps and away for negative.
func (o *OrbitControls) Dolly(steps float64) {
	o.scale *= math.Pow(0.95, steps*o.ZoomSpeed)
}

// Distance returns the current camera distance from the target.
func (o *OrbitControls) Distance() float64 { return o.radius }

// Update advances the controls by one frame and moves the camera.
func (o *OrbitControls) Update() {
	if o.AutoRotate {
		o.deltaTheta -= 2 * math.Pi / 60 / 60 * o.AutoRotateSpeed
	}

	if o.EnableDamping {
		o.theta += o.deltaTheta * o.DampingFactor
		o.phi += o.deltaPhi * o.DampingFactor
	} else {
		o.theta += o.deltaTheta
		o.phi += o.deltaPhi
	}
	o.phi = math.Max(phiEpsilon, math.Min(math.Pi-phiEpsilon, o.phi))

	o.radius *= o.scale
	o.radius = math.Max(o.MinDistance, math.Min(o.MaxDistance, o.radius))
	o.scale = 1

	sinPhi := math.Sin(o.phi)
	o.Camera.Position = o.Camera.Target.Add(Vec3{
		X: o.radius * sinPhi * math.Sin(o.theta),
		Y: o.radius * math.Cos(o.phi),
		Z: o.radius * sinPhi * math.Cos(o.theta),
	})
	o.Camera.Update()

	if o.EnableDamping {
		o.deltaTheta *= 1 - o.DampingFactor
		o.deltaPhi *= 1 - o.DampingFactor
	} else {
		o.deltaTheta, o.deltaPhi = 0, 0
	}
}
