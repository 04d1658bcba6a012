package gpu

import "strings"

// fakeDriver is an in-memory Driver that tracks live objects and calls.
// Sources containing "syntax error" fail to compile; a fragment stage whose
// source contains "mismatch" makes the link fail.
type fakeDriver struct {
	next uint32

	shaders  map[uint32]string // handle -> source
	programs map[uint32][]uint32
	kinds    map[uint32]StageKind

	deletedShaders  int
	deletedPrograms map[uint32]int
	detached        int

	uniforms       map[string]int32
	locationCalls  map[string]int
	uploads        []string
	used           uint32
	linkCheckOrder []string

	// live shader count when the link log was fetched
	shadersAtInfoLog int
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		shaders:         make(map[uint32]string),
		programs:        make(map[uint32][]uint32),
		kinds:           make(map[uint32]StageKind),
		deletedPrograms: make(map[uint32]int),
		uniforms:        map[string]int32{"mvp": 0, "tint": 1, "count": 2, "enabled": 3},
		locationCalls:   make(map[string]int),
	}
}

func (d *fakeDriver) id() uint32 {
	d.next++
	return d.next
}

func (d *fakeDriver) liveShaders() int  { return len(d.shaders) }
func (d *fakeDriver) livePrograms() int { return len(d.programs) }

func (d *fakeDriver) CreateShader(kind StageKind) uint32 {
	h := d.id()
	d.shaders[h] = ""
	d.kinds[h] = kind
	return h
}

func (d *fakeDriver) CompileShader(shader uint32, source string) bool {
	d.shaders[shader] = source
	return !strings.Contains(source, "syntax error")
}

func (d *fakeDriver) ShaderInfoLog(shader uint32) string {
	return "0:1(1): error: syntax error, unexpected IDENTIFIER"
}

func (d *fakeDriver) DeleteShader(shader uint32) {
	if _, ok := d.shaders[shader]; ok {
		delete(d.shaders, shader)
		d.deletedShaders++
	}
}

func (d *fakeDriver) CreateProgram() uint32 {
	h := d.id()
	d.programs[h] = nil
	return h
}

func (d *fakeDriver) AttachShader(program, shader uint32) {
	d.programs[program] = append(d.programs[program], shader)
}

func (d *fakeDriver) DetachShader(program, shader uint32) {
	d.detached++
	d.linkCheckOrder = append(d.linkCheckOrder, "detach")
}

func (d *fakeDriver) LinkProgram(program uint32) bool {
	for _, s := range d.programs[program] {
		if d.kinds[s] == StageFragment && strings.Contains(d.shaders[s], "mismatch") {
			return false
		}
	}
	return true
}

func (d *fakeDriver) ProgramInfoLog(program uint32) string {
	d.linkCheckOrder = append(d.linkCheckOrder, "infolog")
	d.shadersAtInfoLog = len(d.shaders)
	return "error: fragment shader input `vColor' has no matching output"
}

func (d *fakeDriver) DeleteProgram(program uint32) {
	d.deletedPrograms[program]++
	delete(d.programs, program)
}

func (d *fakeDriver) UseProgram(program uint32) { d.used = program }

func (d *fakeDriver) UniformLocation(program uint32, name string) int32 {
	d.locationCalls[name]++
	if loc, ok := d.uniforms[name]; ok {
		return loc
	}
	return NotFound
}

func (d *fakeDriver) record(call string) { d.uploads = append(d.uploads, call) }

func (d *fakeDriver) Uniform1i(loc int32, v0 int32) { d.record("1i") }
func (d *fakeDriver) Uniform2i(loc int32, v0, v1 int32) { d.record("2i") }
func (d *fakeDriver) Uniform3i(loc int32, v0, v1, v2 int32) { d.record("3i") }
func (d *fakeDriver) Uniform4i(loc int32, v0, v1, v2, v3 int32) { d.record("4i") }
func (d *fakeDriver) Uniform1f(loc int32, v0 float32) { d.record("1f") }
func (d *fakeDriver) Uniform2f(loc int32, v0, v1 float32) { d.record("2f") }
func (d *fakeDriver) Uniform3f(loc int32, v0, v1, v2 float32) { d.record("3f") }
func (d *fakeDriver) Uniform4f(loc int32, v0, v1, v2, v3 float32) { d.record("4f") }
func (d *fakeDriver) UniformMatrix4f(loc int32, m *[16]float32) { d.record("mat4") }

var _ Driver = (*fakeDriver)(nil)

const (
	vertSrc = `#version 460 core
layout (location = 0) in vec3 aPos;
out vec3 vColor;
void main() { gl_Position = vec4(aPos, 1.0); vColor = aPos; }
`
	fragSrc = `#version 460 core
in vec3 vColor;
out vec4 FragColor;
void main() { FragColor = vec4(vColor, 1.0); }
`
)

func vertex(text string) ShaderSource {
	return ShaderSource{Kind: StageVertex, Text: text, Name: "test.vert"}
}

func fragment(text string) ShaderSource {
	return ShaderSource{Kind: StageFragment, Text: text, Name: "test.frag"}
}
