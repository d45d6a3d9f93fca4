package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OctreeConfig controls subdivision of the static triangle index.
type OctreeConfig struct {
	MaxDepth       int     // recursion bound
	SplitThreshold int     // subdivide when a node holds more than this many triangles
	MinNodeSize    float32 // stop splitting below this box edge length
}

func DefaultOctreeConfig() OctreeConfig {
	return OctreeConfig{
		MaxDepth:       8,
		SplitThreshold: 8,
		MinNodeSize:    1.0,
	}
}

// octreeNode lives in a flat arena. A node is either a leaf holding
// triangle indices or an interior node with eight contiguous children
// starting at childBase.
type octreeNode struct {
	bounds    AABB
	childBase int32 // -1 for leaves
	triangles []int32
}

// Octree is a read-only spatial index over static triangles. Built once
// from level geometry, never mutated during simulation.
type Octree struct {
	cfg       OctreeConfig
	triangles []Triangle
	nodes     []octreeNode

	// Per-triangle visit stamps deduplicate query results without maps.
	stamps []uint32
	visit  uint32
}

// BuildOctree partitions triangles into an octree covering bounds. A
// triangle straddling a split plane is referenced by every child box it
// intersects. An empty triangle set yields a single empty leaf.
func BuildOctree(triangles []Triangle, bounds AABB, cfg OctreeConfig) *Octree {
	o := &Octree{
		cfg:       cfg,
		triangles: triangles,
		stamps:    make([]uint32, len(triangles)),
	}

	all := make([]int32, len(triangles))
	for i := range all {
		all[i] = int32(i)
	}

	o.nodes = append(o.nodes, octreeNode{bounds: bounds, childBase: -1, triangles: all})
	o.subdivide(0, 0)
	return o
}

// subdivide splits node ni in place if the subdivision policy allows it.
// Node storage is a flat arena, so children are appended and referenced by
// index; only the call stack is recursive.
func (o *Octree) subdivide(ni int32, depth int) {
	node := &o.nodes[ni]
	if len(node.triangles) <= o.cfg.SplitThreshold || depth >= o.cfg.MaxDepth {
		return
	}
	size := node.bounds.Size()
	if min(size.X, min(size.Y, size.Z))/2 < o.cfg.MinNodeSize {
		return
	}

	childBase := int32(len(o.nodes))
	center := node.bounds.Center()
	for oct := 0; oct < 8; oct++ {
		o.nodes = append(o.nodes, octreeNode{
			bounds:    octantBounds(o.nodes[ni].bounds, center, oct),
			childBase: -1,
		})
	}

	// Appending may have moved the arena; re-take the pointer.
	node = &o.nodes[ni]
	for _, ti := range node.triangles {
		tri := &o.triangles[ti]
		for c := int32(0); c < 8; c++ {
			child := &o.nodes[childBase+c]
			if tri.IntersectsBox(child.bounds) {
				child.triangles = append(child.triangles, ti)
			}
		}
	}

	node.childBase = childBase
	node.triangles = nil

	for c := int32(0); c < 8; c++ {
		o.subdivide(childBase+c, depth+1)
	}
}

// octantBounds returns child box oct (bit 0 = +X, bit 1 = +Y, bit 2 = +Z)
// of a parent box split at center.
func octantBounds(parent AABB, center rl.Vector3, oct int) AABB {
	b := AABB{Min: parent.Min, Max: center}
	if oct&1 != 0 {
		b.Min.X, b.Max.X = center.X, parent.Max.X
	}
	if oct&2 != 0 {
		b.Min.Y, b.Max.Y = center.Y, parent.Max.Y
	}
	if oct&4 != 0 {
		b.Min.Z, b.Max.Z = center.Z, parent.Max.Z
	}
	return b
}

// QueryTriangles appends the indices of all triangles whose leaves
// intersect bounds, deduplicated, and returns the extended slice. The
// result is a superset of the exact brute-force intersection set. Pass a
// reused slice to avoid steady-state allocation.
func (o *Octree) QueryTriangles(bounds AABB, out []int32) []int32 {
	o.visit++
	if o.visit == 0 {
		// Stamp counter wrapped; reset so stale stamps can't collide.
		clear(o.stamps)
		o.visit = 1
	}
	return o.queryNode(0, bounds, out)
}

func (o *Octree) queryNode(ni int32, bounds AABB, out []int32) []int32 {
	node := &o.nodes[ni]
	if !node.bounds.Intersects(bounds) {
		return out
	}
	if node.childBase < 0 {
		for _, ti := range node.triangles {
			if o.stamps[ti] != o.visit {
				o.stamps[ti] = o.visit
				out = append(out, ti)
			}
		}
		return out
	}
	for c := int32(0); c < 8; c++ {
		out = o.queryNode(node.childBase+c, bounds, out)
	}
	return out
}

// Triangle returns the indexed triangle. The pointer stays valid for the
// lifetime of the octree; triangles are immutable.
func (o *Octree) Triangle(i int32) *Triangle {
	return &o.triangles[i]
}

func (o *Octree) TriangleCount() int {
	return len(o.triangles)
}

func (o *Octree) NodeCount() int {
	return len(o.nodes)
}

func (o *Octree) Bounds() AABB {
	return o.nodes[0].bounds
}
