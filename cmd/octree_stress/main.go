// Stress test comparing brute-force triangle queries against the octree
package main

import (
	"fmt"
	"math/rand"
	"time"

	"arena3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	testCounts := []int{100, 500, 1000, 5000, 10000, 50000}

	for _, count := range testCounts {
		testQueries(count)
	}
}

func testQueries(count int) {
	rng := rand.New(rand.NewSource(42)) // Consistent results

	// Spawn in a cube, size scales with count to keep density reasonable
	extent := float32(50.0) + float32(count)/100.0
	tris := make([]physics.Triangle, 0, count)
	for len(tris) < count {
		origin := randVec(rng, extent)
		tri := physics.NewTriangle(
			origin,
			rl.Vector3Add(origin, randVec(rng, 2)),
			rl.Vector3Add(origin, randVec(rng, 2)),
		)
		if tri.IsDegenerate() {
			continue
		}
		tris = append(tris, tri)
	}

	buildStart := time.Now()
	tree := physics.BuildOctree(tris, physics.TrianglesBounds(tris).Expand(1), physics.DefaultOctreeConfig())
	buildTime := time.Since(buildStart)

	queries := make([]physics.AABB, 1000)
	for i := range queries {
		queries[i] = physics.NewAABBFromCenter(randVec(rng, extent), rl.Vector3{X: 2, Y: 2, Z: 2})
	}

	// Octree
	var octreeHits int
	var buf []int32
	octreeStart := time.Now()
	for _, q := range queries {
		buf = tree.QueryTriangles(q, buf[:0])
		octreeHits += len(buf)
	}
	octreeTime := time.Since(octreeStart) / time.Duration(len(queries))

	// Brute force O(n) per query
	var bruteHits int
	bruteStart := time.Now()
	for _, q := range queries {
		for i := range tris {
			if tris[i].IntersectsBox(q) {
				bruteHits++
			}
		}
	}
	bruteTime := time.Since(bruteStart) / time.Duration(len(queries))

	speedup := float64(bruteTime) / float64(octreeTime)

	fmt.Printf("%6d triangles: build %8v | octree %8v/query (%5d candidates) | brute %8v/query (%5d hits) | %.1fx speedup\n",
		count, buildTime.Round(time.Microsecond),
		octreeTime.Round(time.Nanosecond), octreeHits,
		bruteTime.Round(time.Nanosecond), bruteHits, speedup)
}

func randVec(rng *rand.Rand, extent float32) rl.Vector3 {
	return rl.Vector3{
		X: (rng.Float32()*2 - 1) * extent,
		Y: (rng.Float32()*2 - 1) * extent,
		Z: (rng.Float32()*2 - 1) * extent,
	}
}
