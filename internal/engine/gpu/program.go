package gpu

import (
	"go.uber.org/zap"
)

// State is the lifecycle position of a Program.
type State int

const (
	StateUninitialized State = iota
	StateCompiling
	StateLinked
	StateErrored
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateCompiling:
		return "compiling"
	case StateLinked:
		return "linked"
	case StateErrored:
		return "errored"
	case StateDestroyed:
		return "destroyed"
	default:
		return "invalid"
	}
}

// Option configures NewProgram.
type Option func(*builder)

// WithBuildLog sets where compile and link logs are persisted.
func WithBuildLog(w BuildLogWriter) Option {
	return func(b *builder) {
		if w != nil {
			b.buildLog = w
		}
	}
}

// WithLogger sets the logger for build events.
func WithLogger(log *zap.Logger) Option {
	return func(b *builder) {
		if log != nil {
			b.log = log
		}
	}
}

// Program owns one linked GPU program and its uniform location cache.
// A Program returned by NewProgram is always linked; there is no partially
// built value visible to callers.
type Program struct {
	drv      Driver
	log      *zap.Logger
	handle   uint32
	state    State
	uniforms map[string]int32
}

// NewProgram compiles vert and frag and links them. Any failure releases every
// driver object allocated along the way and returns a nil Program.
func NewProgram(drv Driver, vert, frag ShaderSource, opts ...Option) (*Program, error) {
	b := &builder{
		drv:      drv,
		buildLog: DiscardBuildLog,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}

	p := &Program{drv: drv, log: b.log, state: StateCompiling}

	vs, err := b.compile(vert)
	if err != nil {
		p.state = StateErrored
		return nil, err
	}
	fs, err := b.compile(frag)
	if err != nil {
		p.state = StateErrored
		vs.release()
		return nil, err
	}

	handle, err := b.link(vs, fs)
	if err != nil {
		p.state = StateErrored
		return nil, err
	}

	p.handle = handle
	p.state = StateLinked
	p.uniforms = make(map[string]int32)
	b.log.Info("program linked",
		zap.Uint32("program", handle),
		zap.String("vertex", vert.Name),
		zap.String("fragment", frag.Name),
	)
	return p, nil
}

// Handle returns the driver program object, or 0 once destroyed.
func (p *Program) Handle() uint32 {
	return p.handle
}

// State returns the lifecycle state.
func (p *Program) State() State {
	return p.state
}

// Use makes p the active program for subsequent draws. Calling it on a
// program that is not linked is a caller error and does nothing.
func (p *Program) Use() {
	if p.state != StateLinked {
		return
	}
	p.drv.UseProgram(p.handle)
}

// Destroy releases the driver program. Further calls are no-ops.
func (p *Program) Destroy() {
	if p == nil || p.state != StateLinked {
		return
	}
	p.drv.DeleteProgram(p.handle)
	p.log.Debug("program destroyed", zap.Uint32("program", p.handle))
	p.handle = 0
	p.uniforms = nil
	p.state = StateDestroyed
}
