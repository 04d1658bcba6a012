package math

import "github.com/chewxy/math32"

// Mat4 is a column-major 4x4 matrix, laid out the way glUniformMatrix4fv
// expects with transpose=false. Element (row r, column c) is m[c*4+r].
type Mat4 [16]float32

// Identity returns the identity matrix.
func Identity() Mat4 {
	var m Mat4
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
	return m
}

// At returns the element at row r, column c.
func (m Mat4) At(r, c int) float32 {
	return m[c*4+r]
}

// Mul returns m × o.
func (m Mat4) Mul(o Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+r] * o[c*4+k]
			}
			out[c*4+r] = sum
		}
	}
	return out
}

// MulPoint transforms p as a point (w = 1) and divides by w.
func (m Mat4) MulPoint(p Vec3) Vec3 {
	x := m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12]
	y := m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13]
	z := m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14]
	w := m[3]*p.X + m[7]*p.Y + m[11]*p.Z + m[15]
	if w != 0 && w != 1 {
		return Vec3{x / w, y / w, z / w}
	}
	return Vec3{x, y, z}
}

// Translation returns a matrix translating by t.
func Translation(t Vec3) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = t.X, t.Y, t.Z
	return m
}

// Rotation returns a matrix rotating by angle radians around axis. The axis
// need not be normalized.
func Rotation(angle float32, axis Vec3) Mat4 {
	a := axis.Normalize()
	s, c := math32.Sincos(angle)
	t := 1 - c

	m := Identity()
	m[0] = c + a.X*a.X*t
	m[1] = a.Y*a.X*t + a.Z*s
	m[2] = a.Z*a.X*t - a.Y*s

	m[4] = a.X*a.Y*t - a.Z*s
	m[5] = c + a.Y*a.Y*t
	m[6] = a.Z*a.Y*t + a.X*s

	m[8] = a.X*a.Z*t + a.Y*s
	m[9] = a.Y*a.Z*t - a.X*s
	m[10] = c + a.Z*a.Z*t
	return m
}

// Perspective returns a right-handed projection with clip-space depth in
// [-1, 1]. fovY is in radians; aspect is width/height.
func Perspective(fovY, aspect, near, far float32) Mat4 {
	f := 1 / math32.Tan(fovY/2)

	var m Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = (far + near) / (near - far)
	m[11] = -1
	m[14] = 2 * far * near / (near - far)
	return m
}

// LookAt returns a view matrix for a camera at eye looking at center.
func LookAt(eye, center, up Vec3) Mat4 {
	f := center.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	m := Identity()
	m[0], m[4], m[8] = s.X, s.Y, s.Z
	m[1], m[5], m[9] = u.X, u.Y, u.Z
	m[2], m[6], m[10] = -f.X, -f.Y, -f.Z
	m[12] = -s.Dot(eye)
	m[13] = -u.Dot(eye)
	m[14] = f.Dot(eye)
	return m
}
