// Package gpu implements the GPU program abstraction: shader stage compilation,
// program linking, uniform location caching and driver diagnostics.
//
// Everything here runs on the thread that owns the current GL context. Nothing
// in this package is safe for concurrent use.
package gpu

// NotFound is the location the driver reports for a uniform that is absent
// from the linked program (never declared, or optimized out).
const NotFound int32 = -1

// Driver is the narrow slice of the graphics API the program abstraction
// needs. The production implementation lives in package gldriver; tests use a
// counting fake.
type Driver interface {
	CreateShader(kind StageKind) uint32
	CompileShader(shader uint32, source string) (ok bool)
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32) (ok bool)
	ProgramInfoLog(program uint32) string
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	UniformLocation(program uint32, name string) int32
	Uniform1i(loc int32, v0 int32)
	Uniform2i(loc int32, v0, v1 int32)
	Uniform3i(loc int32, v0, v1, v2 int32)
	Uniform4i(loc int32, v0, v1, v2, v3 int32)
	Uniform1f(loc int32, v0 float32)
	Uniform2f(loc int32, v0, v1 float32)
	Uniform3f(loc int32, v0, v1, v2 float32)
	Uniform4f(loc int32, v0, v1, v2, v3 float32)
	UniformMatrix4f(loc int32, m *[16]float32)
}
