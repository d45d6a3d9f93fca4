package physics

import (
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// TrianglesFromModel extracts world-space triangles from all meshes of a
// raylib model. This is a one-time data preparation step for static level
// geometry; the result feeds BuildOctree and is never updated afterwards.
func TrianglesFromModel(model rl.Model, transform rl.Matrix) []Triangle {
	var out []Triangle
	meshes := unsafe.Slice(model.Meshes, model.MeshCount)

	for _, mesh := range meshes {
		vertices := unsafe.Slice(mesh.Vertices, mesh.VertexCount*3)

		if mesh.Indices != nil {
			// Indexed mesh
			indices := unsafe.Slice(mesh.Indices, mesh.TriangleCount*3)
			for i := int32(0); i < mesh.TriangleCount; i++ {
				i0 := indices[i*3+0]
				i1 := indices[i*3+1]
				i2 := indices[i*3+2]
				out = appendWorldTriangle(out, transform,
					rl.Vector3{X: vertices[i0*3+0], Y: vertices[i0*3+1], Z: vertices[i0*3+2]},
					rl.Vector3{X: vertices[i1*3+0], Y: vertices[i1*3+1], Z: vertices[i1*3+2]},
					rl.Vector3{X: vertices[i2*3+0], Y: vertices[i2*3+1], Z: vertices[i2*3+2]})
			}
		} else {
			// Non-indexed mesh (every 3 vertices = 1 triangle)
			triCount := mesh.VertexCount / 3
			for i := int32(0); i < triCount; i++ {
				out = appendWorldTriangle(out, transform,
					rl.Vector3{X: vertices[i*9+0], Y: vertices[i*9+1], Z: vertices[i*9+2]},
					rl.Vector3{X: vertices[i*9+3], Y: vertices[i*9+4], Z: vertices[i*9+5]},
					rl.Vector3{X: vertices[i*9+6], Y: vertices[i*9+7], Z: vertices[i*9+8]})
			}
		}
	}

	return out
}

// appendWorldTriangle transforms one triangle to world space and appends it,
// skipping triangles whose area collapses under the transform.
func appendWorldTriangle(out []Triangle, transform rl.Matrix, a, b, c rl.Vector3) []Triangle {
	tri := NewTriangle(
		rl.Vector3Transform(a, transform),
		rl.Vector3Transform(b, transform),
		rl.Vector3Transform(c, transform))
	if tri.IsDegenerate() {
		return out
	}
	return append(out, tri)
}

// TransformMatrix builds the scale*rotation*translation matrix the mesh
// extraction expects, with rotation given in degrees per axis.
func TransformMatrix(position, rotationDeg, scale rl.Vector3) rl.Matrix {
	scaleM := rl.MatrixScale(scale.X, scale.Y, scale.Z)
	rotX := rl.MatrixRotateX(rotationDeg.X * rl.Deg2rad)
	rotY := rl.MatrixRotateY(rotationDeg.Y * rl.Deg2rad)
	rotZ := rl.MatrixRotateZ(rotationDeg.Z * rl.Deg2rad)
	rot := rl.MatrixMultiply(rl.MatrixMultiply(rotX, rotY), rotZ)
	trans := rl.MatrixTranslate(position.X, position.Y, position.Z)
	return rl.MatrixMultiply(rl.MatrixMultiply(scaleM, rot), trans)
}
