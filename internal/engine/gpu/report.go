package gpu

import (
	"go.uber.org/zap"
)

// UniformReporter logs per-call uniform failures at warn level, once per
// distinct message until Reset. Rendering continues regardless.
type UniformReporter struct {
	log  *zap.Logger
	seen map[string]bool
}

// NewUniformReporter returns a reporter writing to log.
func NewUniformReporter(log *zap.Logger) *UniformReporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &UniformReporter{log: log, seen: make(map[string]bool)}
}

// Report logs each error not reported since the last Reset.
func (r *UniformReporter) Report(errs ...error) {
	for _, err := range errs {
		if err == nil {
			continue
		}
		msg := err.Error()
		if r.seen[msg] {
			continue
		}
		r.seen[msg] = true
		r.log.Warn("uniform update skipped", zap.Error(err))
	}
}

// Reset forgets what was reported, e.g. after the program is rebuilt.
func (r *UniformReporter) Reset() {
	clear(r.seen)
}
