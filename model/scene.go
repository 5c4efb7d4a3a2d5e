package model

import (
	"github.com/seqsense/pcgol/mat"
)

// Scene is the ordered list of displayed nodes.
type Scene struct {
	nodes []*Node
}

func (s *Scene) Add(n *Node) {
	s.nodes = append(s.nodes, n)
}

func (s *Scene) Nodes() []*Node {
	return s.nodes
}

func (s *Scene) Len() int {
	return len(s.nodes)
}

// Replace puts n in the place of old. n is appended if old is not in the scene.
func (s *Scene) Replace(old, n *Node) {
	for i, o := range s.nodes {
		if o == old && old != nil {
			s.nodes[i] = n
			return
		}
	}
	s.Add(n)
}

// AddLoaded waits for l and adds the loaded node to the scene.
// On failure the error is logged once and the scene is left unchanged.
func (s *Scene) AddLoaded(l *Loading, logf func(format string, args ...interface{})) (*Node, error) {
	return s.ReplaceLoaded(l, nil, logf)
}

// ReplaceLoaded is like AddLoaded but the loaded node takes the place of old.
func (s *Scene) ReplaceLoaded(l *Loading, old *Node, logf func(format string, args ...interface{})) (*Node, error) {
	n, err := l.Result()
	if err != nil {
		if logf != nil {
			logf("%v", err)
		}
		return nil, err
	}
	s.Replace(old, n)
	return n, nil
}

// Cube returns the 12 edges of the unit cube centered at the origin,
// as pairs of end points.
func Cube() []mat.Vec3 {
	v := [8]mat.Vec3{
		{-0.5, -0.5, -0.5},
		{0.5, -0.5, -0.5},
		{0.5, 0.5, -0.5},
		{-0.5, 0.5, -0.5},
		{-0.5, -0.5, 0.5},
		{0.5, -0.5, 0.5},
		{0.5, 0.5, 0.5},
		{-0.5, 0.5, 0.5},
	}
	edges := [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}
	out := make([]mat.Vec3, 0, 24)
	for _, e := range edges {
		out = append(out, v[e[0]], v[e[1]])
	}
	return out
}
