package gpu

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrEmptySource is returned when a stage is compiled from empty text.
	ErrEmptySource = errors.New("empty shader source")

	// ErrUnknownStage is returned for a stage kind other than vertex or fragment.
	ErrUnknownStage = errors.New("unknown shader stage")

	// ErrNotLinked is returned by uniform updates on a destroyed program.
	ErrNotLinked = errors.New("program not linked")
)

// ShaderCompileError reports a stage rejected by the driver.
type ShaderCompileError struct {
	Stage StageKind
	Log   string
}

func (e *ShaderCompileError) Error() string {
	return fmt.Sprintf("compile %s shader: %s", e.Stage, e.Log)
}

// LinkError reports a program rejected by the driver at link time.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "link program: " + e.Log
}

// UniformNotFoundError reports a uniform name with no location in the linked
// program. It is recoverable; the single update is skipped.
type UniformNotFoundError struct {
	Name string
}

func (e *UniformNotFoundError) Error() string {
	return fmt.Sprintf("uniform %q not found", e.Name)
}

// InvalidUniformArityError reports a vector value with 0 or more than 4
// components. It is raised before any driver call.
type InvalidUniformArityError struct {
	Name string
	Size int
}

func (e *InvalidUniformArityError) Error() string {
	return fmt.Sprintf("uniform %q: invalid component count %d (want 1..4)", e.Name, e.Size)
}

// IsUniformError reports whether err is a per-call uniform failure that the
// frame loop can log and continue past.
func IsUniformError(err error) bool {
	var nf *UniformNotFoundError
	var ar *InvalidUniformArityError
	return errors.As(err, &nf) || errors.As(err, &ar)
}
