package main

import (
	"errors"
	"fmt"

	"github.com/seqsense/dragview/rotate"
	"github.com/seqsense/pcgol/mat"
	"gopkg.in/yaml.v3"
)

const (
	defaultCameraDistance = 5.0
	defaultCanvasHeight   = 400
)

var (
	errUnknownVariant = errors.New("unknown variant")
	errVectorLength   = errors.New("vector must have 3 elements")
)

type sceneConfig struct {
	Variant        string    `yaml:"variant"`
	Sensitivity    float64   `yaml:"sensitivity"`
	Damping        float64   `yaml:"damping"`
	Background     []float32 `yaml:"background"`
	Color          []float32 `yaml:"color"`
	Scale          float32   `yaml:"scale"`
	Position       []float32 `yaml:"position"`
	CameraDistance float32   `yaml:"camera_distance"`
	CanvasHeight   int       `yaml:"canvas_height"`
	Model          string    `yaml:"model"`
	Controls       bool      `yaml:"controls"`
	Mirror         string    `yaml:"mirror"`
}

func defaultConfig() *sceneConfig {
	return &sceneConfig{
		Variant:        "direct",
		Sensitivity:    rotate.DefaultSensitivity,
		Damping:        rotate.DefaultDamping,
		Background:     []float32{0, 0, 0},
		Color:          []float32{0, 1, 0},
		Scale:          1,
		Position:       []float32{0, 0, 0},
		CameraDistance: defaultCameraDistance,
		CanvasHeight:   defaultCanvasHeight,
		Controls:       true,
	}
}

// parseConfig overlays the YAML document on the default config.
func parseConfig(b []byte) (*sceneConfig, error) {
	c := defaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}
	if _, err := c.variant(); err != nil {
		return nil, err
	}
	for name, v := range map[string][]float32{
		"background": c.Background,
		"color":      c.Color,
		"position":   c.Position,
	} {
		if len(v) != 3 {
			return nil, fmt.Errorf("%s: %w", name, errVectorLength)
		}
	}
	if c.CanvasHeight <= 0 {
		c.CanvasHeight = defaultCanvasHeight
	}
	if c.CameraDistance <= 0 {
		c.CameraDistance = defaultCameraDistance
	}
	return c, nil
}

func (c *sceneConfig) variant() (rotate.Variant, error) {
	switch c.Variant {
	case "direct", "":
		return rotate.Direct, nil
	case "damped":
		return rotate.Damped, nil
	default:
		return 0, fmt.Errorf("%w: %q", errUnknownVariant, c.Variant)
	}
}

func (c *sceneConfig) newController() *rotate.Controller {
	v, _ := c.variant()
	ctrl := rotate.New(nil, v)
	ctrl.Sensitivity = c.Sensitivity
	ctrl.Damping = c.Damping
	return ctrl
}

func (c *sceneConfig) position() mat.Vec3 {
	return mat.Vec3{c.Position[0], c.Position[1], c.Position[2]}
}

func (c *sceneConfig) color() mat.Vec3 {
	return mat.Vec3{c.Color[0], c.Color[1], c.Color[2]}
}
