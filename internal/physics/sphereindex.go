package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// SphereIndex is the dynamic counterpart of the triangle octree: an octant
// index over the current projectile positions, rebuilt once per simulation
// step before any pairwise query reads it. Node storage is reused between
// rebuilds so the steady state allocates nothing.
type SphereIndex struct {
	maxDepth  int
	threshold int
	nodes     []sphereNode
	entries   []sphereEntry

	stamps []uint32
	visit  uint32
}

type sphereEntry struct {
	bounds AABB
	body   int32
}

type sphereNode struct {
	bounds    AABB
	childBase int32
	entries   []int32 // indices into s.entries
}

func NewSphereIndex(maxDepth, threshold int) *SphereIndex {
	return &SphereIndex{maxDepth: maxDepth, threshold: threshold}
}

// Rebuild repopulates the index from the live bodies of a pool. Dead pool
// slots are skipped.
func (s *SphereIndex) Rebuild(bodies []Body) {
	s.entries = s.entries[:0]
	s.nodes = s.nodes[:0]

	var bounds AABB
	for i := range bodies {
		if !bodies[i].alive {
			continue
		}
		b := NewAABBFromSphere(bodies[i].Center, bodies[i].Radius)
		if len(s.entries) == 0 {
			bounds = b
		} else {
			bounds = bounds.Union(b)
		}
		s.entries = append(s.entries, sphereEntry{bounds: b, body: int32(i)})
	}

	if cap(s.stamps) < len(s.entries) {
		s.stamps = make([]uint32, len(s.entries))
		s.visit = 0
	}
	s.stamps = s.stamps[:len(s.entries)]

	root := sphereNode{bounds: bounds, childBase: -1}
	for i := range s.entries {
		root.entries = append(root.entries, int32(i))
	}
	s.nodes = append(s.nodes, root)
	if len(s.entries) > 0 {
		s.subdivide(0, 0)
	}
}

func (s *SphereIndex) subdivide(ni int32, depth int) {
	node := &s.nodes[ni]
	if len(node.entries) <= s.threshold || depth >= s.maxDepth {
		return
	}

	childBase := int32(len(s.nodes))
	center := node.bounds.Center()
	for oct := 0; oct < 8; oct++ {
		s.nodes = append(s.nodes, sphereNode{
			bounds:    octantBounds(s.nodes[ni].bounds, center, oct),
			childBase: -1,
		})
	}

	node = &s.nodes[ni]
	for _, ei := range node.entries {
		eb := s.entries[ei].bounds
		for c := int32(0); c < 8; c++ {
			child := &s.nodes[childBase+c]
			if child.bounds.Intersects(eb) {
				child.entries = append(child.entries, ei)
			}
		}
	}

	node.childBase = childBase
	node.entries = node.entries[:0]

	for c := int32(0); c < 8; c++ {
		s.subdivide(childBase+c, depth+1)
	}
}

// QuerySpheres appends the pool indices of bodies whose bounds overlap the
// query sphere, excluding pool slot exclude, and returns the extended
// slice. Results follow index insertion order, keeping pairwise resolution
// deterministic.
func (s *SphereIndex) QuerySpheres(center rl.Vector3, radius float32, exclude int32, out []int32) []int32 {
	if len(s.nodes) == 0 || len(s.entries) == 0 {
		return out
	}
	s.visit++
	if s.visit == 0 {
		clear(s.stamps)
		s.visit = 1
	}
	return s.queryNode(0, NewAABBFromSphere(center, radius), exclude, out)
}

func (s *SphereIndex) queryNode(ni int32, bounds AABB, exclude int32, out []int32) []int32 {
	node := &s.nodes[ni]
	if !node.bounds.Intersects(bounds) {
		return out
	}
	if node.childBase < 0 {
		for _, ei := range node.entries {
			e := &s.entries[ei]
			if e.body == exclude || s.stamps[ei] == s.visit {
				continue
			}
			s.stamps[ei] = s.visit
			if e.bounds.Intersects(bounds) {
				out = append(out, e.body)
			}
		}
		return out
	}
	for c := int32(0); c < 8; c++ {
		out = s.queryNode(node.childBase+c, bounds, exclude, out)
	}
	return out
}
