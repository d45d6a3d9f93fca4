package physics

import (
	"math/rand"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func randVec(rng *rand.Rand, extent float32) rl.Vector3 {
	return rl.Vector3{
		X: (rng.Float32()*2 - 1) * extent,
		Y: (rng.Float32()*2 - 1) * extent,
		Z: (rng.Float32()*2 - 1) * extent,
	}
}

func randTriangles(rng *rand.Rand, n int, extent, edge float32) []Triangle {
	tris := make([]Triangle, 0, n)
	for len(tris) < n {
		origin := randVec(rng, extent)
		tri := NewTriangle(
			origin,
			rl.Vector3Add(origin, randVec(rng, edge)),
			rl.Vector3Add(origin, randVec(rng, edge)),
		)
		if tri.IsDegenerate() {
			continue
		}
		tris = append(tris, tri)
	}
	return tris
}

func TestOctreeEmpty(t *testing.T) {
	tree := BuildOctree(nil, NewAABBFromCenter(rl.Vector3{}, rl.Vector3{X: 20, Y: 20, Z: 20}), DefaultOctreeConfig())

	if tree.NodeCount() != 1 {
		t.Fatalf("empty octree should be a single leaf, got %d nodes", tree.NodeCount())
	}
	got := tree.QueryTriangles(NewAABBFromCenter(rl.Vector3{}, rl.Vector3{X: 100, Y: 100, Z: 100}), nil)
	if len(got) != 0 {
		t.Fatalf("query on empty octree returned %d triangles", len(got))
	}
	if _, ok := tree.Raycast(rl.Vector3{Y: 5}, rl.Vector3{Y: -1}, 100, nil); ok {
		t.Fatal("raycast on empty octree should miss")
	}
}

func TestOctreeSubdivides(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tris := randTriangles(rng, 500, 10, 2)
	tree := BuildOctree(tris, TrianglesBounds(tris).Expand(1), DefaultOctreeConfig())

	if tree.NodeCount() <= 1 {
		t.Fatal("500 triangles should force subdivision")
	}
	if tree.TriangleCount() != 500 {
		t.Fatalf("TriangleCount = %d, want 500", tree.TriangleCount())
	}
	for i := range tris {
		for _, v := range []rl.Vector3{tris[i].A, tris[i].B, tris[i].C} {
			if !tree.Bounds().Contains(v) {
				t.Fatalf("triangle %d vertex %v outside root bounds", i, v)
			}
		}
	}
}

// Octree queries must return a superset of the exact brute-force result:
// accelerating the lookup may widen it, never narrow it.
func TestOctreeQuerySupersetOfBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tris := randTriangles(rng, 300, 10, 2)
	tree := BuildOctree(tris, TrianglesBounds(tris).Expand(1), DefaultOctreeConfig())

	var buf []int32
	for trial := 0; trial < 200; trial++ {
		query := NewAABBFromCenter(randVec(rng, 10), rl.Vector3{
			X: rng.Float32()*4 + 0.1,
			Y: rng.Float32()*4 + 0.1,
			Z: rng.Float32()*4 + 0.1,
		})

		buf = tree.QueryTriangles(query, buf[:0])
		got := make(map[int32]bool, len(buf))
		for _, ti := range buf {
			if got[ti] {
				t.Fatalf("trial %d: triangle %d returned twice", trial, ti)
			}
			got[ti] = true
		}

		for i := range tris {
			if tris[i].IntersectsBox(query) && !got[int32(i)] {
				t.Fatalf("trial %d: octree missed triangle %d", trial, i)
			}
		}
	}
}

func TestOctreeQueryAwayFromGeometry(t *testing.T) {
	tris := groundTriangles(50)
	tree := BuildOctree(tris, TrianglesBounds(tris).Expand(1), DefaultOctreeConfig())

	// A query far above the plane touches nothing
	got := tree.QueryTriangles(NewAABBFromCenter(rl.Vector3{Y: 30}, rl.Vector3{X: 1, Y: 1, Z: 1}), nil)
	if len(got) != 0 {
		t.Fatalf("query away from all geometry returned %d triangles", len(got))
	}
}

func TestOctreeRaycastGround(t *testing.T) {
	tris := groundTriangles(10)
	tree := BuildOctree(tris, TrianglesBounds(tris).Expand(1), DefaultOctreeConfig())

	hit, ok := tree.Raycast(rl.Vector3{X: 0.5, Y: 5, Z: 0.5}, rl.Vector3{Y: -1}, 100, nil)
	if !ok {
		t.Fatal("expected ground hit")
	}
	approx(t, hit.Distance, 5, 1e-4, "distance")
	approxVec(t, hit.Point, rl.Vector3{X: 0.5, Y: 0, Z: 0.5}, 1e-4, "point")
	approx(t, hit.Normal.Y, 1, 1e-6, "normal.y")

	// Pointing away misses
	if _, ok := tree.Raycast(rl.Vector3{X: 0.5, Y: 5, Z: 0.5}, rl.Vector3{Y: 1}, 100, nil); ok {
		t.Fatal("upward ray should miss the ground")
	}
}

func TestSphereIndexQuery(t *testing.T) {
	bodies := make([]Body, 8)
	for i := range bodies {
		bodies[i] = Body{
			Center: rl.Vector3{X: float32(i) * 3},
			Radius: 0.5,
			alive:  true,
		}
	}
	bodies[5].alive = false

	idx := NewSphereIndex(5, 2)
	idx.Rebuild(bodies)

	// Query radius 3 reaches the bounds of body 1 at x=3 and nothing past it.
	got := idx.QuerySpheres(bodies[0].Center, 3, 0, nil)
	found := map[int32]bool{}
	for _, j := range got {
		found[j] = true
	}
	if found[0] {
		t.Fatal("query must exclude the querying body")
	}
	if !found[1] {
		t.Fatal("expected body 1 in range")
	}
	if found[5] {
		t.Fatal("dead bodies must not be indexed")
	}
	if found[4] || found[6] || found[7] {
		t.Fatalf("distant bodies returned: %v", got)
	}
}

func TestSphereIndexRebuildReflectsMovement(t *testing.T) {
	bodies := []Body{
		{Center: rl.Vector3{X: 0}, Radius: 0.5, alive: true},
		{Center: rl.Vector3{X: 10}, Radius: 0.5, alive: true},
	}
	idx := NewSphereIndex(5, 2)
	idx.Rebuild(bodies)

	if got := idx.QuerySpheres(bodies[0].Center, 1, 0, nil); len(got) != 0 {
		t.Fatalf("bodies 10 apart should not neighbor, got %v", got)
	}

	bodies[1].Center.X = 0.8
	idx.Rebuild(bodies)
	got := idx.QuerySpheres(bodies[0].Center, 1, 0, nil)
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("after rebuild expected [1], got %v", got)
	}
}
