// Package scene holds the cube scene: geometry, camera and the per-frame
// uniform sequence. It has no GL dependency.
package scene

import (
	lmath "github.com/Faultbox/learngl/pkg/math"
)

// Stride is the byte size of one vertex: position (xyz) + texcoord (uv).
const Stride = 5 * 4

// CubeVertices holds 36 vertices, six faces of two triangles each.
var CubeVertices = []float32{
	-0.5, -0.5, -0.5, 0.0, 0.0,
	0.5, -0.5, -0.5, 1.0, 0.0,
	0.5, 0.5, -0.5, 1.0, 1.0,
	0.5, 0.5, -0.5, 1.0, 1.0,
	-0.5, 0.5, -0.5, 0.0, 1.0,
	-0.5, -0.5, -0.5, 0.0, 0.0,

	-0.5, -0.5, 0.5, 0.0, 0.0,
	0.5, -0.5, 0.5, 1.0, 0.0,
	0.5, 0.5, 0.5, 1.0, 1.0,
	0.5, 0.5, 0.5, 1.0, 1.0,
	-0.5, 0.5, 0.5, 0.0, 1.0,
	-0.5, -0.5, 0.5, 0.0, 0.0,

	-0.5, 0.5, 0.5, 1.0, 0.0,
	-0.5, 0.5, -0.5, 1.0, 1.0,
	-0.5, -0.5, -0.5, 0.0, 1.0,
	-0.5, -0.5, -0.5, 0.0, 1.0,
	-0.5, -0.5, 0.5, 0.0, 0.0,
	-0.5, 0.5, 0.5, 1.0, 0.0,

	0.5, 0.5, 0.5, 1.0, 0.0,
	0.5, 0.5, -0.5, 1.0, 1.0,
	0.5, -0.5, -0.5, 0.0, 1.0,
	0.5, -0.5, -0.5, 0.0, 1.0,
	0.5, -0.5, 0.5, 0.0, 0.0,
	0.5, 0.5, 0.5, 1.0, 0.0,

	-0.5, -0.5, -0.5, 0.0, 1.0,
	0.5, -0.5, -0.5, 1.0, 1.0,
	0.5, -0.5, 0.5, 1.0, 0.0,
	0.5, -0.5, 0.5, 1.0, 0.0,
	-0.5, -0.5, 0.5, 0.0, 0.0,
	-0.5, -0.5, -0.5, 0.0, 1.0,

	-0.5, 0.5, -0.5, 0.0, 1.0,
	0.5, 0.5, -0.5, 1.0, 1.0,
	0.5, 0.5, 0.5, 1.0, 0.0,
	0.5, 0.5, 0.5, 1.0, 0.0,
	-0.5, 0.5, 0.5, 0.0, 0.0,
	-0.5, 0.5, -0.5, 0.0, 1.0,
}

// CubeVertexCount is the number of vertices drawn per cube.
var CubeVertexCount = int32(len(CubeVertices) * 4 / Stride)

// cubePositions are the world positions of the ten cubes.
var cubePositions = []lmath.Vec3{
	{X: 0.0, Y: 0.0, Z: 0.0},
	{X: 2.0, Y: 5.0, Z: -15.0},
	{X: -1.5, Y: -2.2, Z: -2.5},
	{X: -3.8, Y: -2.0, Z: -12.3},
	{X: 2.4, Y: -0.4, Z: -3.5},
	{X: -1.7, Y: 3.0, Z: -7.5},
	{X: 1.3, Y: -2.0, Z: -2.5},
	{X: 1.5, Y: 2.0, Z: -2.5},
	{X: 1.5, Y: 0.2, Z: -1.5},
	{X: -1.3, Y: 1.0, Z: -1.5},
}

// CubeModels returns one model matrix per cube: translated to its position
// and tilted by 20° per index around a fixed axis.
func CubeModels() []lmath.Mat4 {
	axis := lmath.Vec3{X: 1.0, Y: 0.3, Z: 0.5}
	models := make([]lmath.Mat4, len(cubePositions))
	for i, pos := range cubePositions {
		angle := lmath.Radians(20 * float32(i))
		models[i] = lmath.Translation(pos).Mul(lmath.Rotation(angle, axis))
	}
	return models
}
