// Package rotate converts pointer drags into rotation of a displayed object.
package rotate

import (
	"math"
)

const (
	DefaultSensitivity = 0.01
	DefaultDamping     = 0.95

	// Velocity below this (rad/tick) on both axes is clamped to zero.
	stopThreshold = 1e-4
)

// Orientation is the rotation of an object about its X and Y axes.
type Orientation interface {
	Rotate(x, y float64)
}

type Variant int

const (
	// Direct applies drag deltas to the orientation immediately.
	Direct Variant = iota
	// Damped turns drag deltas into an angular velocity which is applied by
	// Tick after release and decays geometrically.
	Damped
)

// Controller tracks the pointer over a drawing surface.
// It is not safe for concurrent use.
type Controller struct {
	Sensitivity float64
	Damping     float64

	variant Variant
	target  Orientation

	dragging     bool
	lastX, lastY float64

	vx, vy float64
}

func New(target Orientation, v Variant) *Controller {
	return &Controller{
		Sensitivity: DefaultSensitivity,
		Damping:     DefaultDamping,
		variant:     v,
		target:      target,
	}
}

// SetTarget changes the rotated object. A nil target is allowed and makes
// the controller only track the pointer.
func (c *Controller) SetTarget(o Orientation) {
	c.target = o
}

func (c *Controller) Variant() Variant {
	return c.variant
}

func (c *Controller) Dragging() bool {
	return c.dragging
}

// Velocity returns the pending rotation per tick about X and Y.
func (c *Controller) Velocity() (x, y float64) {
	return c.vx, c.vy
}

func (c *Controller) PointerDown(x, y float64) {
	c.dragging = true
	c.lastX, c.lastY = x, y
}

func (c *Controller) PointerMove(x, y float64) {
	if !c.dragging {
		return
	}
	k := c.sensitivity()
	dx := (x - c.lastX) * k
	dy := (y - c.lastY) * k
	c.lastX, c.lastY = x, y

	switch c.variant {
	case Damped:
		c.vx, c.vy = dy, dx
	default:
		if c.target != nil {
			c.target.Rotate(dy, dx)
		}
	}
}

func (c *Controller) PointerUp() {
	c.dragging = false
}

func (c *Controller) PointerLeave() {
	c.dragging = false
}

// Tick applies and decays the angular velocity. It must be called once per
// frame and does nothing for the Direct variant or while dragging.
func (c *Controller) Tick() {
	if c.variant != Damped || c.dragging {
		return
	}
	if c.target == nil || (c.vx == 0 && c.vy == 0) {
		return
	}
	c.target.Rotate(c.vx, c.vy)

	d := c.damping()
	c.vx *= d
	c.vy *= d
	if math.Abs(c.vx) < stopThreshold && math.Abs(c.vy) < stopThreshold {
		c.vx, c.vy = 0, 0
	}
}

// Stop drops any residual motion.
func (c *Controller) Stop() {
	c.vx, c.vy = 0, 0
}

func (c *Controller) sensitivity() float64 {
	if c.Sensitivity <= 0 {
		return DefaultSensitivity
	}
	return c.Sensitivity
}

func (c *Controller) damping() float64 {
	if c.Damping <= 0 || c.Damping >= 1 {
		return DefaultDamping
	}
	return c.Damping
}
