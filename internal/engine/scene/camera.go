package scene

import (
	"github.com/chewxy/math32"

	lmath "github.com/Faultbox/learngl/pkg/math"
)

// Camera orbits the origin in the XZ plane at a fixed radius.
type Camera struct {
	FOV    float32 // vertical, degrees
	Radius float32
	Near   float32
	Far    float32
}

// View returns the view matrix at time t seconds.
func (c Camera) View(t float32) lmath.Mat4 {
	sin, cos := math32.Sincos(t)
	eye := lmath.Vec3{X: sin * c.Radius, Z: cos * c.Radius}
	return lmath.LookAt(eye, lmath.Vec3{}, lmath.Vec3{Y: 1})
}

// Projection returns the projection matrix for the given framebuffer size.
func (c Camera) Projection(width, height int) lmath.Mat4 {
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	return lmath.Perspective(lmath.Radians(c.FOV), aspect, c.Near, c.Far)
}
