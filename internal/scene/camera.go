package scene

import "math"

// Camera is a perspective camera looking at Target.
type Camera struct {
	FOV      float64 // vertical, degrees
	Aspect   float64
	Near     float64
	Far      float64
	Position Vec3
	Target   Vec3
	Up       Vec3

	// view basis, rebuilt by Update
	right, up, forward Vec3
}

// NewCamera returns the default galaxy camera: 75° FOV, near 0.1, far 100,
// placed at (3,3,3) and looking at the origin.
func NewCamera(aspect float64) *Camera {
	c := &Camera{
		FOV:      75,
		Aspect:   aspect,
		Near:     0.1,
		Far:      100,
		Position: Vec3{3, 3, 3},
		Up:       Vec3{0, 1, 0},
	}
	c.Update()
	return c
}

// SetAspect is called on resize.
func (c *Camera) SetAspect(aspect float64) {
	if aspect > 0 {
		c.Aspect = aspect
	}
}

// Update recomputes the view basis after Position or Target change.
func (c *Camera) Update() {
	c.forward = c.Target.Sub(c.Position).Normalize()
	c.right = c.forward.Cross(c.Up).Normalize()
	c.up = c.right.Cross(c.forward)
}

// Focal returns pixels per world unit at depth 1 for a viewport of height h.
func (c *Camera) Focal(h float64) float64 {
	return h / 2 / math.Tan(c.FOV*math.Pi/360)
}

// Project maps a world point onto a w×h viewport. ok is false outside the
// near/far range and for points far off screen. A stale Aspect stretches the
// image horizontally, so callers update it on resize.
func (c *Camera) Project(p Vec3, w, h float64) (sx, sy, depth float64, ok bool) {
	return c.Projector(w, h).Project(p.X, p.Y, p.Z)
}

// Projector freezes the camera for one frame so projecting many points
// skips the per-call setup.
func (c *Camera) Projector(w, h float64) Projector {
	f := c.Focal(h)
	stretch := 1.0
	if c.Aspect > 0 && h > 0 {
		stretch = w / h / c.Aspect
	}
	return Projector{
		eye:     c.Position,
		right:   c.right.Scale(f * stretch),
		up:      c.up.Scale(f),
		forward: c.forward,
		near:    c.Near,
		far:     c.Far,
		w:       w,
		h:       h,
	}
}

// Projector is a per-frame snapshot of a Camera.
type Projector struct {
	eye, right, up, forward Vec3
	near, far               float64
	w, h                    float64
}

// Project is Camera.Project with the frame setup already done.
func (p Projector) Project(x, y, z float64) (sx, sy, depth float64, ok bool) {
	dx, dy, dz := x-p.eye.X, y-p.eye.Y, z-p.eye.Z
	depth = dx*p.forward.X + dy*p.forward.Y + dz*p.forward.Z
	if depth < p.near || depth > p.far {
		return 0, 0, depth, false
	}
	sx = p.w/2 + (dx*p.right.X+dy*p.right.Y+dz*p.right.Z)/depth
	sy = p.h/2 - (dx*p.up.X+dy*p.up.Y+dz*p.up.Z)/depth
	if sx < -p.w || sx > 2*p.w || sy < -p.h || sy > 2*p.h {
		return sx, sy, depth, false
	}
	return sx, sy, depth, true
}

// PointSize returns the attenuated on-screen size of a point of world size s.
func (c *Camera) PointSize(s, depth, h float64) float64 {
	return s * (h / 2) / depth
}
