// Package gldriver implements gpu.Driver on top of OpenGL 4.6 core.
package gldriver

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/learngl/internal/engine/gpu"
)

// Driver issues GL calls on the current context. It must only be used from
// the thread that owns that context.
type Driver struct {
	log  *zap.Logger
	sink gpu.DebugSink
}

// New loads the GL function pointers for the current context.
// IMPORTANT: Must be called AFTER the context is made current!
func New(log *zap.Logger) (*Driver, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := gl.Init(); err != nil {
		return nil, errors.Wrap(err, "load OpenGL functions")
	}

	log.Info("OpenGL initialized",
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
	)
	return &Driver{log: log}, nil
}

// EnableDebugOutput registers sink with the context's debug-message channel
// if the context was created with the debug flag. Messages are delivered
// synchronously on the calling thread. It reports whether output was enabled.
func (d *Driver) EnableDebugOutput(sink gpu.DebugSink) bool {
	var flags int32
	gl.GetIntegerv(gl.CONTEXT_FLAGS, &flags)
	if flags&gl.CONTEXT_FLAG_DEBUG_BIT == 0 {
		d.log.Info("debug output disabled")
		return false
	}

	// The context keeps a reference to the sink for as long as the
	// callback is installed.
	d.sink = sink
	gl.Enable(gl.DEBUG_OUTPUT)
	gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
	gl.DebugMessageCallback(d.debugCallback, nil)
	gl.DebugMessageControl(gl.DONT_CARE, gl.DONT_CARE, gl.DONT_CARE, 0, nil, true)

	d.log.Info("debug output enabled")
	return true
}

func (d *Driver) debugCallback(source, typ, id, severity uint32, length int32, message string, _ unsafe.Pointer) {
	if d.sink == nil {
		return
	}
	d.sink.Receive(gpu.ClassifyDebugMessage(source, typ, id, severity, message))
}

func stageEnum(kind gpu.StageKind) uint32 {
	switch kind {
	case gpu.StageVertex:
		return gl.VERTEX_SHADER
	case gpu.StageFragment:
		return gl.FRAGMENT_SHADER
	default:
		panic(fmt.Sprintf("gldriver: unsupported stage %v", kind))
	}
}

func (d *Driver) CreateShader(kind gpu.StageKind) uint32 {
	return gl.CreateShader(stageEnum(kind))
}

func (d *Driver) CompileShader(shader uint32, source string) bool {
	csrc, free := gl.Strs(source + "\x00")
	length := int32(len(source))
	gl.ShaderSource(shader, 1, csrc, &length)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (d *Driver) ShaderInfoLog(shader uint32) string {
	var logLen int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
	if logLen == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLen+1))
	gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (d *Driver) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (d *Driver) CreateProgram() uint32 { return gl.CreateProgram() }

func (d *Driver) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }

func (d *Driver) DetachShader(program, shader uint32) { gl.DetachShader(program, shader) }

func (d *Driver) LinkProgram(program uint32) bool {
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (d *Driver) ProgramInfoLog(program uint32) string {
	var logLen int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
	if logLen == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLen+1))
	gl.GetProgramInfoLog(program, logLen, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (d *Driver) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (d *Driver) UseProgram(program uint32) { gl.UseProgram(program) }

func (d *Driver) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *Driver) Uniform1i(loc int32, v0 int32) { gl.Uniform1i(loc, v0) }
func (d *Driver) Uniform2i(loc int32, v0, v1 int32) { gl.Uniform2i(loc, v0, v1) }
func (d *Driver) Uniform3i(loc int32, v0, v1, v2 int32) { gl.Uniform3i(loc, v0, v1, v2) }
func (d *Driver) Uniform4i(loc int32, v0, v1, v2, v3 int32) { gl.Uniform4i(loc, v0, v1, v2, v3) }

func (d *Driver) Uniform1f(loc int32, v0 float32) { gl.Uniform1f(loc, v0) }
func (d *Driver) Uniform2f(loc int32, v0, v1 float32) { gl.Uniform2f(loc, v0, v1) }
func (d *Driver) Uniform3f(loc int32, v0, v1, v2 float32) { gl.Uniform3f(loc, v0, v1, v2) }
func (d *Driver) Uniform4f(loc int32, v0, v1, v2, v3 float32) { gl.Uniform4f(loc, v0, v1, v2, v3) }

func (d *Driver) UniformMatrix4f(loc int32, m *[16]float32) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

var _ gpu.Driver = (*Driver)(nil)
