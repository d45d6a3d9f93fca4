package game

import (
	"arena3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Level is the static arena: a collision triangle soup for the physics
// core plus a matching render list. Both come from the same box and ramp
// definitions so the visuals can't desync from the collision.
type Level struct {
	boxes     []levelBox
	ramps     []levelRamp
	props     []levelProp
	triangles []physics.Triangle
}

type levelBox struct {
	center rl.Vector3
	size   rl.Vector3
	color  rl.Color
}

type levelRamp struct {
	verts [4]rl.Vector3 // quad corners, counter-clockwise seen from above
	color rl.Color
}

type levelProp struct {
	model    rl.Model
	position rl.Vector3
	color    rl.Color
}

// NewArena builds the default playground: a walled floor with pillars,
// crates, a ramp and two floating platforms.
func NewArena() *Level {
	l := &Level{}

	floorCol := rl.NewColor(90, 95, 105, 255)
	wallCol := rl.NewColor(70, 75, 90, 255)
	crateCol := rl.NewColor(140, 105, 70, 255)
	stoneCol := rl.NewColor(110, 110, 120, 255)

	// Floor slab and perimeter walls
	l.addBox(rl.Vector3{Y: -0.5}, rl.Vector3{X: 60, Y: 1, Z: 60}, floorCol)
	l.addBox(rl.Vector3{X: 0, Y: 3, Z: -30.5}, rl.Vector3{X: 62, Y: 8, Z: 1}, wallCol)
	l.addBox(rl.Vector3{X: 0, Y: 3, Z: 30.5}, rl.Vector3{X: 62, Y: 8, Z: 1}, wallCol)
	l.addBox(rl.Vector3{X: -30.5, Y: 3, Z: 0}, rl.Vector3{X: 1, Y: 8, Z: 62}, wallCol)
	l.addBox(rl.Vector3{X: 30.5, Y: 3, Z: 0}, rl.Vector3{X: 1, Y: 8, Z: 62}, wallCol)

	// Pillars
	for _, p := range []rl.Vector3{
		{X: -12, Z: -12}, {X: 12, Z: -12}, {X: -12, Z: 12}, {X: 12, Z: 12},
	} {
		l.addBox(rl.Vector3{X: p.X, Y: 3, Z: p.Z}, rl.Vector3{X: 1.5, Y: 6, Z: 1.5}, stoneCol)
	}

	// Crate clusters to climb and bounce projectiles off
	l.addBox(rl.Vector3{X: 5, Y: 0.75, Z: -6}, rl.Vector3{X: 1.5, Y: 1.5, Z: 1.5}, crateCol)
	l.addBox(rl.Vector3{X: 6.8, Y: 0.6, Z: -4.5}, rl.Vector3{X: 1.2, Y: 1.2, Z: 1.2}, crateCol)
	l.addBox(rl.Vector3{X: 5.6, Y: 2.0, Z: -5.6}, rl.Vector3{X: 1.0, Y: 1.0, Z: 1.0}, crateCol)
	l.addBox(rl.Vector3{X: -8, Y: 1.0, Z: 6}, rl.Vector3{X: 2, Y: 2, Z: 2}, crateCol)

	// Stair steps, sized so the capsule can walk up them
	for i := 0; i < 5; i++ {
		h := float32(i+1) * 0.3
		l.addBox(
			rl.Vector3{X: 14, Y: h / 2, Z: 4 + float32(i)*1.2},
			rl.Vector3{X: 4, Y: h, Z: 1.2},
			stoneCol)
	}

	// Floating platforms, reachable from the ramp
	l.addBox(rl.Vector3{X: -14, Y: 3.25, Z: -4}, rl.Vector3{X: 5, Y: 0.5, Z: 5}, stoneCol)
	l.addBox(rl.Vector3{X: -20, Y: 4.75, Z: 4}, rl.Vector3{X: 4, Y: 0.5, Z: 4}, stoneCol)

	// Ramp up to the first platform
	l.addRamp([4]rl.Vector3{
		{X: -11.5, Y: 0, Z: 2},
		{X: -16.5, Y: 0, Z: 2},
		{X: -16.5, Y: 3.5, Z: -1.5},
		{X: -11.5, Y: 3.5, Z: -1.5},
	}, stoneCol)

	return l
}

// AddProps loads the generated mesh decorations and folds their triangles
// into the collision soup. Requires an initialized window, unlike NewArena.
func (l *Level) AddProps() {
	l.addProp(rl.LoadModelFromMesh(rl.GenMeshCylinder(1.5, 2, 12)),
		rl.Vector3{X: 8, Z: 8}, rl.NewColor(120, 130, 150, 255))
	l.addProp(rl.LoadModelFromMesh(rl.GenMeshCone(1.2, 2.5, 10)),
		rl.Vector3{X: -6, Z: -10}, rl.NewColor(120, 130, 150, 255))
}

func (l *Level) addProp(model rl.Model, position rl.Vector3, color rl.Color) {
	l.props = append(l.props, levelProp{model: model, position: position, color: color})

	transform := physics.TransformMatrix(position, rl.Vector3{}, rl.Vector3{X: 1, Y: 1, Z: 1})
	l.triangles = append(l.triangles, physics.TrianglesFromModel(model, transform)...)
}

// Unload releases the prop models. Call before closing the window.
func (l *Level) Unload() {
	for _, p := range l.props {
		rl.UnloadModel(p.model)
	}
}

// Triangles exposes the collision soup for the physics index.
func (l *Level) Triangles() []physics.Triangle {
	return l.triangles
}

func (l *Level) addBox(center, size rl.Vector3, color rl.Color) {
	l.boxes = append(l.boxes, levelBox{center: center, size: size, color: color})

	h := rl.Vector3Scale(size, 0.5)
	min := rl.Vector3Subtract(center, h)
	max := rl.Vector3Add(center, h)

	v := [8]rl.Vector3{
		{X: min.X, Y: min.Y, Z: min.Z},
		{X: max.X, Y: min.Y, Z: min.Z},
		{X: max.X, Y: max.Y, Z: min.Z},
		{X: min.X, Y: max.Y, Z: min.Z},
		{X: min.X, Y: min.Y, Z: max.Z},
		{X: max.X, Y: min.Y, Z: max.Z},
		{X: max.X, Y: max.Y, Z: max.Z},
		{X: min.X, Y: max.Y, Z: max.Z},
	}

	// Outward-facing winding per face
	quads := [6][4]int{
		{4, 5, 6, 7}, // +Z
		{1, 0, 3, 2}, // -Z
		{5, 1, 2, 6}, // +X
		{0, 4, 7, 3}, // -X
		{7, 6, 2, 3}, // +Y
		{0, 1, 5, 4}, // -Y
	}
	for _, q := range quads {
		l.addQuad(v[q[0]], v[q[1]], v[q[2]], v[q[3]])
	}
}

func (l *Level) addRamp(verts [4]rl.Vector3, color rl.Color) {
	l.ramps = append(l.ramps, levelRamp{verts: verts, color: color})
	l.addQuad(verts[0], verts[1], verts[2], verts[3])
}

func (l *Level) addQuad(a, b, c, d rl.Vector3) {
	for _, tri := range []physics.Triangle{
		physics.NewTriangle(a, b, c),
		physics.NewTriangle(a, c, d),
	} {
		if !tri.IsDegenerate() {
			l.triangles = append(l.triangles, tri)
		}
	}
}

// Draw renders the arena inside an active 3D mode.
func (l *Level) Draw() {
	for _, b := range l.boxes {
		rl.DrawCubeV(b.center, b.size, b.color)
		rl.DrawCubeWiresV(b.center, b.size, rl.NewColor(30, 30, 40, 255))
	}
	for _, p := range l.props {
		rl.DrawModel(p.model, p.position, 1, p.color)
	}
	for _, r := range l.ramps {
		// Both windings so the slope is visible from underneath too
		rl.DrawTriangle3D(r.verts[0], r.verts[1], r.verts[2], r.color)
		rl.DrawTriangle3D(r.verts[0], r.verts[2], r.verts[3], r.color)
		rl.DrawTriangle3D(r.verts[2], r.verts[1], r.verts[0], r.color)
		rl.DrawTriangle3D(r.verts[3], r.verts[2], r.verts[0], r.color)
	}
}
