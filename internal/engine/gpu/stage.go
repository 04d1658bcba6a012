package gpu

import (
	"go.uber.org/zap"
)

// StageKind identifies a shader stage.
type StageKind int

const (
	StageVertex StageKind = iota
	StageFragment
)

func (k StageKind) String() string {
	switch k {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

func (k StageKind) valid() bool {
	return k == StageVertex || k == StageFragment
}

// ShaderSource is the full text of one stage. Name is the origin (usually a
// file path) and only appears in logs.
type ShaderSource struct {
	Kind StageKind
	Text string
	Name string
}

// compiledStage guards a driver-resident shader object between compile and
// link. release is idempotent.
type compiledStage struct {
	drv    Driver
	kind   StageKind
	handle uint32
}

func (s *compiledStage) release() {
	if s == nil || s.handle == 0 {
		return
	}
	s.drv.DeleteShader(s.handle)
	s.handle = 0
}

// builder carries the collaborators shared by the compile and link steps.
type builder struct {
	drv      Driver
	buildLog BuildLogWriter
	log      *zap.Logger
}

// compile turns one stage's source into a driver shader object. On failure no
// handle survives.
func (b *builder) compile(src ShaderSource) (*compiledStage, error) {
	if !src.Kind.valid() {
		return nil, ErrUnknownStage
	}
	if src.Text == "" {
		return nil, ErrEmptySource
	}

	handle := b.drv.CreateShader(src.Kind)
	if !b.drv.CompileShader(handle, src.Text) {
		infoLog := b.drv.ShaderInfoLog(handle)
		b.drv.DeleteShader(handle)

		b.buildLog.WriteBuildLog(src.Kind.String()+" shader", infoLog)
		b.log.Error("shader compile failed",
			zap.Stringer("stage", src.Kind),
			zap.String("source", src.Name),
			zap.String("log", infoLog),
		)
		return nil, &ShaderCompileError{Stage: src.Kind, Log: infoLog}
	}

	b.log.Debug("shader compiled",
		zap.Stringer("stage", src.Kind),
		zap.String("source", src.Name),
		zap.Uint32("handle", handle),
	)
	return &compiledStage{drv: b.drv, kind: src.Kind, handle: handle}, nil
}

// link attaches both stages to a new program and links it. The stages are
// detached and released before the link status is inspected, whatever the
// outcome.
func (b *builder) link(vert, frag *compiledStage) (uint32, error) {
	program := b.drv.CreateProgram()
	b.drv.AttachShader(program, vert.handle)
	b.drv.AttachShader(program, frag.handle)
	ok := b.drv.LinkProgram(program)

	b.drv.DetachShader(program, vert.handle)
	b.drv.DetachShader(program, frag.handle)
	vert.release()
	frag.release()

	if !ok {
		infoLog := b.drv.ProgramInfoLog(program)
		b.drv.DeleteProgram(program)

		b.buildLog.WriteBuildLog("program", infoLog)
		b.log.Error("program link failed",
			zap.Uint32("program", program),
			zap.String("log", infoLog),
		)
		return 0, &LinkError{Log: infoLog}
	}
	return program, nil
}
