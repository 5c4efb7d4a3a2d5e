package model

import (
	"math"

	"github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"
)

// Rotation is an Euler rotation applied in X, Y order, in radians.
type Rotation struct {
	X, Y float64
}

// Node is an object in the scene. Cloud is nil for the default cube.
type Node struct {
	Rotation Rotation
	Position mat.Vec3
	Scale    mat.Vec3

	// Center is subtracted from the geometry before scaling so that the
	// node rotates about it.
	Center mat.Vec3
	Cloud  *pc.PointCloud
}

func NewNode() *Node {
	return &Node{
		Scale: mat.Vec3{1, 1, 1},
	}
}

// Rotate implements rotate.Orientation.
func (n *Node) Rotate(x, y float64) {
	n.Rotation.X += x
	n.Rotation.Y += y
}

func (n *Node) SetScale(s float32) {
	n.Scale = mat.Vec3{s, s, s}
}

// Matrix returns the model matrix T(Position) * Rx * Ry * S(Scale) * T(-Center).
func (n *Node) Matrix() mat.Mat4 {
	return mat.Translate(n.Position[0], n.Position[1], n.Position[2]).
		MulAffine(rotationX(n.Rotation.X)).
		MulAffine(rotationY(n.Rotation.Y)).
		MulAffine(scaling(n.Scale)).
		MulAffine(mat.Translate(-n.Center[0], -n.Center[1], -n.Center[2]))
}

// Matrices are column major.

func rotationX(ang float64) mat.Mat4 {
	s64, c64 := math.Sincos(ang)
	s, c := float32(s64), float32(c64)
	return mat.Mat4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

func rotationY(ang float64) mat.Mat4 {
	s64, c64 := math.Sincos(ang)
	s, c := float32(s64), float32(c64)
	return mat.Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

func scaling(v mat.Vec3) mat.Mat4 {
	return mat.Mat4{
		v[0], 0, 0, 0,
		0, v[1], 0, 0,
		0, 0, v[2], 0,
		0, 0, 0, 1,
	}
}
