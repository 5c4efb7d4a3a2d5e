package main

import (
	"testing"

	"github.com/seqsense/pcgol/mat"
)

func TestCamera_Resize(t *testing.T) {
	c := newCamera(5, 400)

	if c.resize(0) {
		t.Error("Zero width must be ignored")
	}
	if !c.resize(800) {
		t.Fatal("First resize must update projection")
	}
	if a := c.aspect(); a != 2 {
		t.Errorf("Expected aspect 2, got %f", a)
	}
	p := c.projection
	if p == (mat.Mat4{}) {
		t.Fatal("Projection must be computed")
	}
	if c.resize(800) {
		t.Error("Same width must not update projection")
	}
	if !c.resize(400) {
		t.Fatal("Width change must update projection")
	}
	if c.projection == p {
		t.Error("Projection must follow aspect ratio")
	}
}

func TestCamera_View(t *testing.T) {
	c := newCamera(5, 400)
	v := c.view().TransformAffine(mat.Vec3{0, 0, 0})
	if v != (mat.Vec3{0, 0, -5}) {
		t.Errorf("Origin must be 5 units in front of the camera, got %v", v)
	}
}
