package main

import (
	"math"

	"github.com/seqsense/pcgol/mat"
)

const (
	defaultFov = 75 * math.Pi / 180
	nearClip   = 0.1
	farClip    = 1000.0
)

// camera looks at the origin from +Z with a fixed canvas height.
type camera struct {
	fov      float64
	distance float32

	width, height int
	projection    mat.Mat4
}

func newCamera(distance float32, height int) *camera {
	return &camera{
		fov:      defaultFov,
		distance: distance,
		height:   height,
	}
}

// resize updates the projection for the new canvas width.
// It returns false if nothing changed.
func (c *camera) resize(width int) bool {
	if width <= 0 || width == c.width {
		return false
	}
	c.width = width
	c.projection = mat.Perspective(
		float32(c.fov),
		c.aspect(),
		nearClip, farClip,
	)
	return true
}

func (c *camera) aspect() float32 {
	return float32(c.width) / float32(c.height)
}

func (c *camera) view() mat.Mat4 {
	return mat.Translate(0, 0, -c.distance)
}
