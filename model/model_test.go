package model

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"
	"testing/iotest"

	"github.com/seqsense/pcgol/mat"
)

func pcdBinary(t *testing.T, pp [][4]float32) []byte {
	t.Helper()
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "VERSION 0.7\n"+
		"FIELDS x y z intensity\n"+
		"SIZE 4 4 4 4\n"+
		"TYPE F F F F\n"+
		"COUNT 1 1 1 1\n"+
		"WIDTH %d\n"+
		"HEIGHT 1\n"+
		"VIEWPOINT 0 0 0 1 0 0 0\n"+
		"POINTS %d\n"+
		"DATA binary\n", len(pp), len(pp))
	for _, p := range pp {
		if err := binary.Write(&buf, binary.LittleEndian, p); err != nil {
			t.Fatal(err)
		}
	}
	return buf.Bytes()
}

func vecNear(a, b mat.Vec3) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > 1e-5 {
			return false
		}
	}
	return true
}

func TestNode_Matrix(t *testing.T) {
	testCases := map[string]struct {
		rot      Rotation
		pos      mat.Vec3
		scale    float32
		center   mat.Vec3
		in       mat.Vec3
		expected mat.Vec3
	}{
		"Identity": {
			scale:    1,
			in:       mat.Vec3{1, 2, 3},
			expected: mat.Vec3{1, 2, 3},
		},
		"RotateY": {
			rot:      Rotation{Y: math.Pi / 2},
			pos:      mat.Vec3{1, 2, 3},
			scale:    2,
			in:       mat.Vec3{1, 0, 0},
			expected: mat.Vec3{1, 2, 1},
		},
		"RotateX": {
			rot:      Rotation{X: math.Pi / 2},
			scale:    1,
			in:       mat.Vec3{0, 1, 0},
			expected: mat.Vec3{0, 0, 1},
		},
		"Center": {
			scale:    0.5,
			center:   mat.Vec3{10, 10, 10},
			in:       mat.Vec3{12, 10, 8},
			expected: mat.Vec3{1, 0, -1},
		},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			n := NewNode()
			n.Rotation = tt.rot
			n.Position = tt.pos
			n.SetScale(tt.scale)
			n.Center = tt.center

			out := n.Matrix().TransformAffine(tt.in)
			if !vecNear(tt.expected, out) {
				t.Errorf("Expected %v, got %v", tt.expected, out)
			}
		})
	}
}

func TestNode_Rotate(t *testing.T) {
	n := NewNode()
	n.Rotate(0.2, 0.1)
	n.Rotate(0.2, 0.1)
	if math.Abs(n.Rotation.X-0.4) > 1e-9 || math.Abs(n.Rotation.Y-0.2) > 1e-9 {
		t.Errorf("Expected rotation (0.4, 0.2), got %v", n.Rotation)
	}
}

func TestLoad(t *testing.T) {
	data := pcdBinary(t, [][4]float32{
		{1, 2, 3, 100},
		{3, 4, 5, 200},
		{2, 0, 4, 300},
	})

	l := Load(iotest.OneByteReader(bytes.NewReader(data)), int64(len(data)))
	n, err := l.Result()
	if err != nil {
		t.Fatal(err)
	}

	var last Progress
	for p := range l.Progress() {
		if p.Loaded < last.Loaded {
			t.Errorf("Progress must not decrease: %d -> %d", last.Loaded, p.Loaded)
		}
		if p.Total != int64(len(data)) {
			t.Errorf("Expected total %d, got %d", len(data), p.Total)
		}
		last = p
	}
	if last.Loaded != int64(len(data)) {
		t.Errorf("Expected final progress %d, got %d", len(data), last.Loaded)
	}

	if n.Cloud.Points != 3 {
		t.Fatalf("Expected 3 points, got %d", n.Cloud.Points)
	}
	if len(n.Cloud.Fields) != 3 {
		t.Errorf("Cloud must be converted to x, y, z, got fields %v", n.Cloud.Fields)
	}
	if len(n.Cloud.Data) != 3*12 {
		t.Errorf("Expected packed data of %d bytes, got %d", 3*12, len(n.Cloud.Data))
	}

	it, err := n.Cloud.Vec3Iterator()
	if err != nil {
		t.Fatal(err)
	}
	expected := []mat.Vec3{{1, 2, 3}, {3, 4, 5}, {2, 0, 4}}
	for i := 0; it.IsValid(); it.Incr() {
		if !vecNear(expected[i], it.Vec3()) {
			t.Errorf("Point %d: expected %v, got %v", i, expected[i], it.Vec3())
		}
		i++
	}

	if c := (mat.Vec3{2, 2, 4}); !vecNear(c, n.Center) {
		t.Errorf("Expected center %v, got %v", c, n.Center)
	}
	if n.Scale != (mat.Vec3{1, 1, 1}) {
		t.Errorf("Expected unit scale, got %v", n.Scale)
	}
}

func TestLoad_DoneAfterConversion(t *testing.T) {
	data := pcdBinary(t, [][4]float32{{1, 2, 3, 0}, {3, 4, 5, 0}})
	l := Load(bytes.NewReader(data), int64(len(data)))
	for range l.Progress() {
	}
	<-l.Done()

	// Result must not have anything left to wait for once Done is closed.
	if l.node == nil || l.err != nil {
		t.Fatalf("Expected converted node after Done, got (%v, %v)", l.node, l.err)
	}
	if len(l.node.Cloud.Fields) != 3 {
		t.Errorf("Cloud must be converted before Done, got fields %v", l.node.Cloud.Fields)
	}
}

var errBroken = errors.New("broken reader")

func TestLoad_Error(t *testing.T) {
	testCases := map[string]*Loading{
		"Garbage":     Load(bytes.NewReader([]byte("this is not a point cloud")), -1),
		"ReaderError": Load(iotest.ErrReader(errBroken), -1),
		"Failed":      Failed(errBroken),
	}
	for name, l := range testCases {
		l := l
		t.Run(name, func(t *testing.T) {
			n, err := l.Result()
			if !errors.Is(err, ErrLoad) {
				t.Errorf("Expected ErrLoad, got %v", err)
			}
			if n != nil {
				t.Error("Node must be nil on failure")
			}
			for range l.Progress() {
			}
		})
	}
}

func TestScene_AddLoaded(t *testing.T) {
	s := &Scene{}
	s.Add(NewNode())

	var logged []string
	logf := func(format string, args ...interface{}) {
		logged = append(logged, fmt.Sprintf(format, args...))
	}

	if _, err := s.AddLoaded(Failed(errBroken), logf); err == nil {
		t.Fatal("Expected error")
	}
	if s.Len() != 1 {
		t.Errorf("Scene must be unchanged on failure, got %d nodes", s.Len())
	}
	if len(logged) != 1 {
		t.Errorf("Error must be logged exactly once, got %v", logged)
	}

	data := pcdBinary(t, [][4]float32{{0, 0, 0, 0}})
	n, err := s.AddLoaded(Load(bytes.NewReader(data), int64(len(data))), logf)
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 2 || s.Nodes()[1] != n {
		t.Error("Loaded node must be appended to the scene")
	}
	if len(logged) != 1 {
		t.Errorf("Success must not be logged as error, got %v", logged)
	}
}

func TestScene_ReplaceLoaded(t *testing.T) {
	s := &Scene{}
	cube := NewNode()
	s.Add(cube)

	data := pcdBinary(t, [][4]float32{{1, 1, 1, 0}})
	a, err := s.ReplaceLoaded(Load(bytes.NewReader(data), int64(len(data))), cube, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 1 || s.Nodes()[0] != a {
		t.Fatalf("Loaded node must replace the cube, got %v", s.Nodes())
	}

	b, err := s.ReplaceLoaded(Load(bytes.NewReader(data), int64(len(data))), a, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 1 || s.Nodes()[0] != b {
		t.Fatalf("Second load must replace the first, got %v", s.Nodes())
	}

	if _, err := s.ReplaceLoaded(Failed(errBroken), b, nil); err == nil {
		t.Fatal("Expected error")
	}
	if s.Len() != 1 || s.Nodes()[0] != b {
		t.Errorf("Scene must be unchanged on failure, got %v", s.Nodes())
	}
}

func TestScene_Replace(t *testing.T) {
	a, b, c := NewNode(), NewNode(), NewNode()
	a.Position = mat.Vec3{1, 0, 0}
	b.Position = mat.Vec3{0, 1, 0}
	c.Position = mat.Vec3{0, 0, 1}
	testCases := map[string]struct {
		initial  []*Node
		old      *Node
		expected []*Node
	}{
		"Found":    {initial: []*Node{a, b}, old: a, expected: []*Node{c, b}},
		"NotFound": {initial: []*Node{a}, old: b, expected: []*Node{a, c}},
		"Nil":      {initial: []*Node{a}, expected: []*Node{a, c}},
		"Empty":    {old: a, expected: []*Node{c}},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			s := &Scene{}
			for _, n := range tt.initial {
				s.Add(n)
			}
			s.Replace(tt.old, c)
			if !reflect.DeepEqual(tt.expected, s.Nodes()) {
				t.Errorf("Expected %v, got %v", tt.expected, s.Nodes())
			}
		})
	}
}

func TestCube(t *testing.T) {
	edges := Cube()
	if len(edges) != 24 {
		t.Fatalf("Expected 24 end points, got %d", len(edges))
	}
	for i := 0; i < len(edges); i += 2 {
		d := edges[i+1].Sub(edges[i])
		if l := d.Norm(); math.Abs(float64(l)-1) > 1e-6 {
			t.Errorf("Edge %d must have unit length, got %f", i/2, l)
		}
	}
}

func TestProgress_Percent(t *testing.T) {
	testCases := map[string]struct {
		p        Progress
		expected int
		ok       bool
	}{
		"Unknown": {p: Progress{Loaded: 10, Total: -1}},
		"Zero":    {p: Progress{Loaded: 0, Total: 200}, expected: 0, ok: true},
		"Half":    {p: Progress{Loaded: 100, Total: 200}, expected: 50, ok: true},
		"Done":    {p: Progress{Loaded: 200, Total: 200}, expected: 100, ok: true},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			v, ok := tt.p.Percent()
			if ok != tt.ok || v != tt.expected {
				t.Errorf("Expected (%d, %v), got (%d, %v)", tt.expected, tt.ok, v, ok)
			}
		})
	}
}
